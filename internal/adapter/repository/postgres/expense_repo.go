package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `
	id, location_id, expense_date, category, description, amount,
	deleted, created_by, created_at, updated_at
`

// Create creates a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.LocationID,
		timeToPgTimestamptz(expense.ExpenseDate),
		expense.Category,
		expense.Description,
		decimalToNumeric(expense.Amount),
		expense.Deleted,
		expense.CreatedBy,
		timeToPgTimestamptz(expense.CreatedAt),
		timeToPgTimestamptz(expense.UpdatedAt),
	)

	return err
}

// GetByID retrieves a non-deleted expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND NOT deleted`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	return expense, nil
}

// Update rewrites an expense's editable fields.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET expense_date = $2,
		    category = $3,
		    description = $4,
		    amount = $5,
		    updated_at = $6
		WHERE id = $1 AND NOT deleted
	`

	tag, err := r.pool.Exec(ctx, query,
		expense.ID,
		timeToPgTimestamptz(expense.ExpenseDate),
		expense.Category,
		expense.Description,
		decimalToNumeric(expense.Amount),
		timeToPgTimestamptz(expense.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// SoftDelete marks an expense deleted.
func (r *ExpenseRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	query := `UPDATE expenses SET deleted = TRUE, updated_at = $2 WHERE id = $1 AND NOT deleted`

	tag, err := r.pool.Exec(ctx, query, id, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByPeriod lists non-deleted expenses for a location period.
func (r *ExpenseRepository) ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE location_id = $1
		  AND EXTRACT(MONTH FROM expense_date) = $2
		  AND EXTRACT(YEAR FROM expense_date) = $3
		  AND NOT deleted
		ORDER BY expense_date, id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, locationID, month, year, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// SumByPeriod totals non-deleted expenses for the period.
func (r *ExpenseRepository) SumByPeriod(ctx context.Context, locationID string, month, year int) (decimal.Decimal, error) {
	return sumExpenses(ctx, r.pool, locationID, month, year)
}

// SumByPeriodTx is SumByPeriod inside a transaction.
func (r *ExpenseRepository) SumByPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, error) {
	return sumExpenses(ctx, tx.(*Tx).PgxTx(), locationID, month, year)
}

func sumExpenses(ctx context.Context, q queryRower, locationID string, month, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE location_id = $1
		  AND EXTRACT(MONTH FROM expense_date) = $2
		  AND EXTRACT(YEAR FROM expense_date) = $3
		  AND NOT deleted
	`

	var total pgtype.Numeric

	err := q.QueryRow(ctx, query, locationID, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		e                                 domain.Expense
		expenseDate, createdAt, updatedAt pgtype.Timestamptz
		amount                            pgtype.Numeric
	)

	err := row.Scan(
		&e.ID,
		&e.LocationID,
		&expenseDate,
		&e.Category,
		&e.Description,
		&amount,
		&e.Deleted,
		&e.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ExpenseDate = expenseDate.Time
	e.Amount = numericToDecimal(amount)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
