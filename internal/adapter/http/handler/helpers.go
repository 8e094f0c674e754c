package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/domain"
)

// userIDHeader carries the acting user. Authentication is out of scope;
// the caller is trusted to identify itself.
const userIDHeader = "X-User-ID"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPeriodClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrShareholderNotFound),
		errors.Is(err, domain.ErrClosingNotFound),
		errors.Is(err, domain.ErrReadingNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrAdvanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDistribution),
		errors.Is(err, domain.ErrNoShareholders),
		errors.Is(err, domain.ErrPercentageSumExceeded),
		errors.Is(err, domain.ErrStaleNetProfit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCounterRegression),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrMissingLocation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// userID extracts the acting user from the request headers.
func userID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parsePeriodQuery reads month and year query parameters.
func parsePeriodQuery(r *http.Request) (domain.Period, error) {
	period := domain.Period{
		Month: parseIntQuery(r, "month", 0),
		Year:  parseIntQuery(r, "year", 0),
	}

	return period, period.Validate()
}
