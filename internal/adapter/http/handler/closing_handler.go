package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

// ClosingHandler handles closing-related HTTP requests.
type ClosingHandler struct {
	closingUC *usecase.ClosingUseCase
}

// NewClosingHandler creates a new ClosingHandler.
func NewClosingHandler(closingUC *usecase.ClosingUseCase) *ClosingHandler {
	return &ClosingHandler{closingUC: closingUC}
}

// Close runs the monthly closing for a location.
func (h *ClosingHandler) Close(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")
	if locationID == "" {
		writeError(w, http.StatusBadRequest, "missing location ID", "")
		return
	}

	var req dto.CloseMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	closing, err := h.closingUC.CloseMonth(r.Context(), req.ToUseCaseInput(locationID, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to close period", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ClosingFromDomain(closing))
}

// List lists a location's closings, newest first.
func (h *ClosingHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")
	if locationID == "" {
		writeError(w, http.StatusBadRequest, "missing location ID", "")
		return
	}

	closings, err := h.closingUC.ListClosings(r.Context(), usecase.ListClosingsInput{
		LocationID: locationID,
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list closings", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingsFromDomain(closings))
}

// GetForPeriod retrieves the closing for a location period.
func (h *ClosingHandler) GetForPeriod(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	closing, err := h.closingUC.GetClosingForPeriod(r.Context(), locationID, domain.Period{Month: month, Year: year})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get closing", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingFromDomain(closing))
}

// Status reports whether a location period is open or closed.
func (h *ClosingHandler) Status(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	closed, err := h.closingUC.PeriodStatus(r.Context(), locationID, period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check period status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodStatusResponse{
		LocationID: locationID,
		Month:      period.Month,
		Year:       period.Year,
		Closed:     closed,
	})
}
