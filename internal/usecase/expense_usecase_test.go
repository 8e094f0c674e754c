package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/internal/usecase/mocks"
)

type expenseFixture struct {
	expenses *mocks.MockExpenseRepository
	closings *mocks.MockClosingRepository
	audit    *mocks.MockAuditRepository
	uc       *usecase.ExpenseUseCase
}

func newExpenseFixture() *expenseFixture {
	f := &expenseFixture{
		expenses: mocks.NewMockExpenseRepository(),
		closings: mocks.NewMockClosingRepository(),
		audit:    mocks.NewMockAuditRepository(),
	}

	f.uc = usecase.NewExpenseUseCase(
		f.expenses, usecase.NewPeriodGuard(f.closings), f.audit, nil, mocks.NewMockIDGenerator(), nil,
	)

	return f
}

func validExpenseInput() usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		LocationID:  "loc-1",
		ExpenseDate: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		Category:    "maintenance",
		Description: "coin mechanism repair",
		Amount:      dec("150.559"),
		CreatedBy:   "user-1",
	}
}

func TestCreateExpense(t *testing.T) {
	f := newExpenseFixture()

	expense, err := f.uc.CreateExpense(context.Background(), validExpenseInput())
	require.NoError(t, err)
	require.NotEmpty(t, expense.ID)
	require.True(t, expense.Amount.Equal(dec("150.56")), "amount rounds to cents, got %s", expense.Amount)

	logs := f.audit.Logs()
	require.Len(t, logs, 1)
	require.Equal(t, string(domain.AuditActionExpenseCreate), logs[0].Action)
}

func TestCreateExpense_ClosedPeriod(t *testing.T) {
	f := newExpenseFixture()
	closePeriod(t, f.closings, "loc-1", 6, 2024)

	_, err := f.uc.CreateExpense(context.Background(), validExpenseInput())
	require.ErrorIs(t, err, domain.ErrPeriodClosed)
	require.Empty(t, f.audit.Logs())
}

func TestCreateExpense_Validation(t *testing.T) {
	f := newExpenseFixture()

	tests := []struct {
		name    string
		mutate  func(*usecase.CreateExpenseInput)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(in *usecase.CreateExpenseInput) { in.Amount = dec("0") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(in *usecase.CreateExpenseInput) { in.Amount = dec("-10") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "empty description",
			mutate:  func(in *usecase.CreateExpenseInput) { in.Description = "  " },
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "missing user",
			mutate:  func(in *usecase.CreateExpenseInput) { in.CreatedBy = "" },
			wantErr: domain.ErrMissingUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validExpenseInput()
			tt.mutate(&input)

			_, err := f.uc.CreateExpense(context.Background(), input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateExpense_PeriodGuards(t *testing.T) {
	f := newExpenseFixture()

	expense, err := f.uc.CreateExpense(context.Background(), validExpenseInput())
	require.NoError(t, err)

	closePeriod(t, f.closings, "loc-1", 7, 2024)

	// Moving into a closed period fails.
	_, err = f.uc.UpdateExpense(context.Background(), usecase.UpdateExpenseInput{
		ID:          expense.ID,
		ExpenseDate: time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
		Category:    expense.Category,
		Description: expense.Description,
		Amount:      expense.Amount,
		UpdatedBy:   "user-1",
	})
	require.ErrorIs(t, err, domain.ErrPeriodClosed)

	closePeriod(t, f.closings, "loc-1", 6, 2024)

	// Once the expense's own period closes, even in-place edits fail.
	_, err = f.uc.UpdateExpense(context.Background(), usecase.UpdateExpenseInput{
		ID:          expense.ID,
		ExpenseDate: expense.ExpenseDate,
		Category:    expense.Category,
		Description: "new description",
		Amount:      expense.Amount,
		UpdatedBy:   "user-1",
	})
	require.ErrorIs(t, err, domain.ErrPeriodClosed)
}

func TestDeleteExpense_ClosedPeriod(t *testing.T) {
	f := newExpenseFixture()

	expense, err := f.uc.CreateExpense(context.Background(), validExpenseInput())
	require.NoError(t, err)

	closePeriod(t, f.closings, "loc-1", 6, 2024)

	err = f.uc.DeleteExpense(context.Background(), expense.ID, "user-1")
	require.ErrorIs(t, err, domain.ErrPeriodClosed)

	// Still readable.
	_, err = f.expenses.GetByID(context.Background(), expense.ID)
	require.NoError(t, err)
}
