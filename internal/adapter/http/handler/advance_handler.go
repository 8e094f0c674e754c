package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/usecase"
)

// AdvanceHandler handles cash advance HTTP requests.
type AdvanceHandler struct {
	advanceUC *usecase.AdvanceUseCase
}

// NewAdvanceHandler creates a new AdvanceHandler.
func NewAdvanceHandler(advanceUC *usecase.AdvanceUseCase) *AdvanceHandler {
	return &AdvanceHandler{advanceUC: advanceUC}
}

// Create records a cash advance.
func (h *AdvanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req dto.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	advance, err := h.advanceUC.CreateAdvance(r.Context(), req.ToUseCaseInput(locationID, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record advance", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AdvanceFromDomain(advance))
}

// List lists a location's advances for a period.
func (h *AdvanceHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	advances, err := h.advanceUC.ListAdvances(r.Context(), locationID, period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list advances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AdvancesFromDomain(advances))
}
