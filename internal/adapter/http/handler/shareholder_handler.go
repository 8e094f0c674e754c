package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/usecase"
)

// ShareholderHandler handles shareholder HTTP requests.
type ShareholderHandler struct {
	shareholderUC *usecase.ShareholderUseCase
}

// NewShareholderHandler creates a new ShareholderHandler.
func NewShareholderHandler(shareholderUC *usecase.ShareholderUseCase) *ShareholderHandler {
	return &ShareholderHandler{shareholderUC: shareholderUC}
}

// Create registers a shareholder for a location.
func (h *ShareholderHandler) Create(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req dto.CreateShareholderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shareholder, err := h.shareholderUC.CreateShareholder(r.Context(), req.ToUseCaseInput(locationID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create shareholder", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ShareholderFromDomain(shareholder))
}

// Get retrieves a shareholder by ID.
func (h *ShareholderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing shareholder ID", "")
		return
	}

	shareholder, err := h.shareholderUC.GetShareholder(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get shareholder", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ShareholderFromDomain(shareholder))
}

// List lists a location's shareholders.
func (h *ShareholderHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	shareholders, err := h.shareholderUC.ListShareholders(r.Context(), usecase.ListShareholdersInput{
		LocationID: locationID,
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list shareholders", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ShareholdersFromDomain(shareholders))
}
