package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/usecase"
)

// SummaryHandler handles period summary HTTP requests.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC *usecase.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// Get returns the aggregated financials for a location period.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	summary, err := h.summaryUC.PeriodSummary(r.Context(), locationID, period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
