package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/usecase"
)

// ReadingHandler handles meter reading HTTP requests.
type ReadingHandler struct {
	readingUC *usecase.ReadingUseCase
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readingUC *usecase.ReadingUseCase) *ReadingHandler {
	return &ReadingHandler{readingUC: readingUC}
}

// Create records a meter reading.
func (h *ReadingHandler) Create(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req dto.CreateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reading, err := h.readingUC.CreateReading(r.Context(), req.ToUseCaseInput(locationID, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record reading", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ReadingFromDomain(reading))
}

// Update edits a meter reading.
func (h *ReadingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reading, err := h.readingUC.UpdateReading(r.Context(), req.ToUseCaseInput(id, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update reading", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReadingFromDomain(reading))
}

// Delete soft-deletes a meter reading.
func (h *ReadingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.readingUC.DeleteReading(r.Context(), id, userID(r)); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete reading", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists a location's readings for a period.
func (h *ReadingHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	readings, err := h.readingUC.ListReadings(r.Context(), usecase.ListReadingsInput{
		LocationID: locationID,
		Month:      parseIntQuery(r, "month", 0),
		Year:       parseIntQuery(r, "year", 0),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list readings", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReadingsFromDomain(readings))
}
