package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/usecase"
)

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	expenseUC *usecase.ExpenseUseCase
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records an expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput(locationID, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Update edits an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), req.ToUseCaseInput(id, userID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update expense", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete soft-deletes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.expenseUC.DeleteExpense(r.Context(), id, userID(r)); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete expense", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists a location's expenses for a period.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	expenses, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		LocationID: locationID,
		Month:      parseIntQuery(r, "month", 0),
		Year:       parseIntQuery(r, "year", 0),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list expenses", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
