package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
)

// ExpenseUseCase handles expense mutations under the period guard.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	guard       *PeriodGuard
	auditRepo   AuditRepository
	summaries   SummaryInvalidator
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	expenseRepo ExpenseRepository,
	guard *PeriodGuard,
	auditRepo AuditRepository,
	summaries SummaryInvalidator,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		guard:       guard,
		auditRepo:   auditRepo,
		summaries:   summaries,
		idGen:       idGen,
		metrics:     metrics,
		logger:      slog.Default(),
	}
}

// CreateExpenseInput represents input for recording an expense.
type CreateExpenseInput struct {
	LocationID  string
	ExpenseDate time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	CreatedBy   string
}

// CreateExpense records an operational expense.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if input.LocationID == "" {
		return nil, domain.ErrMissingLocation
	}

	if input.CreatedBy == "" {
		return nil, domain.ErrMissingUserID
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		LocationID:  input.LocationID,
		ExpenseDate: input.ExpenseDate,
		Category:    input.Category,
		Description: input.Description,
		Amount:      domain.RoundMoney(input.Amount),
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpen(ctx, input.LocationID, input.ExpenseDate); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesRecorded.Inc()
	}

	uc.afterWrite(ctx, expense, input.CreatedBy, domain.AuditActionExpenseCreate)

	return expense, nil
}

// UpdateExpenseInput represents input for editing an expense.
type UpdateExpenseInput struct {
	ID          string
	ExpenseDate time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	UpdatedBy   string
}

// UpdateExpense edits an expense. Both the old and new periods must be
// open.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Expense, error) {
	if input.UpdatedBy == "" {
		return nil, domain.ErrMissingUserID
	}

	expense, err := uc.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	oldPeriod := expense.Period()

	expense.ExpenseDate = input.ExpenseDate
	expense.Category = input.Category
	expense.Description = input.Description
	expense.Amount = domain.RoundMoney(input.Amount)
	expense.UpdatedAt = time.Now().UTC()

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpenPeriod(ctx, expense.LocationID, oldPeriod); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if newPeriod := expense.Period(); newPeriod != oldPeriod {
		if err := uc.guard.EnsureOpenPeriod(ctx, expense.LocationID, newPeriod); err != nil {
			uc.recordRejection(err)
			return nil, err
		}
	}

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, expense, input.UpdatedBy, domain.AuditActionExpenseUpdate)
	uc.invalidateSummary(ctx, expense.LocationID, oldPeriod)

	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id, userID string) error {
	if userID == "" {
		return domain.ErrMissingUserID
	}

	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.guard.EnsureOpenPeriod(ctx, expense.LocationID, expense.Period()); err != nil {
		uc.recordRejection(err)
		return err
	}

	if err := uc.expenseRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	uc.afterWrite(ctx, expense, userID, domain.AuditActionExpenseDelete)

	return nil
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	LocationID string
	Month      int
	Year       int
	Limit      int
	Offset     int
}

// ListExpenses lists a location's expenses for a period.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	period := domain.Period{Month: input.Month, Year: input.Year}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.expenseRepo.ListByPeriod(ctx, input.LocationID, input.Month, input.Year, limit, offset)
}

func (uc *ExpenseUseCase) afterWrite(ctx context.Context, expense *domain.Expense, userID string, action domain.AuditAction) {
	audit := &domain.AuditLog{
		UserID:       userID,
		Action:       string(action),
		ResourceType: "expense",
		ResourceID:   expense.ID,
		Detail:       expense.Category + ": " + expense.Amount.String(),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn("audit write failed", "action", action, "resource_id", expense.ID, "error", err)
	} else if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(audit.Action, audit.Status).Inc()
	}

	uc.invalidateSummary(ctx, expense.LocationID, expense.Period())
}

func (uc *ExpenseUseCase) recordRejection(err error) {
	if uc.metrics != nil && errors.Is(err, domain.ErrPeriodClosed) {
		uc.metrics.GuardRejections.WithLabelValues("expense").Inc()
	}
}

func (uc *ExpenseUseCase) invalidateSummary(ctx context.Context, locationID string, period domain.Period) {
	if uc.summaries == nil {
		return
	}

	if err := uc.summaries.Invalidate(ctx, locationID, period); err != nil {
		uc.logger.Warn("summary cache invalidation failed",
			"location_id", locationID, "period", period.String(), "error", err)
	}
}
