package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

// AdvanceRepository implements usecase.AdvanceRepository.
type AdvanceRepository struct {
	pool *pgxpool.Pool
}

// NewAdvanceRepository creates a new AdvanceRepository.
func NewAdvanceRepository(pool *pgxpool.Pool) *AdvanceRepository {
	return &AdvanceRepository{pool: pool}
}

const advanceColumns = `
	id, location_id, shareholder_id, month, year, amount, note,
	created_by, created_at
`

// Create creates a new advance. Advances are immutable once recorded.
func (r *AdvanceRepository) Create(ctx context.Context, advance *domain.Advance) error {
	query := `
		INSERT INTO advances (` + advanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		advance.ID,
		advance.LocationID,
		advance.ShareholderID,
		advance.Month,
		advance.Year,
		decimalToNumeric(advance.Amount),
		advance.Note,
		advance.CreatedBy,
		timeToPgTimestamptz(advance.CreatedAt),
	)

	return err
}

// ListByPeriod lists advances for a location period.
func (r *AdvanceRepository) ListByPeriod(ctx context.Context, locationID string, month, year int) ([]*domain.Advance, error) {
	query := `
		SELECT ` + advanceColumns + `
		FROM advances
		WHERE location_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, locationID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []*domain.Advance
	for rows.Next() {
		advance, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}

		advances = append(advances, advance)
	}

	return advances, rows.Err()
}

// SumByShareholder returns the advance total per shareholder for the period.
func (r *AdvanceRepository) SumByShareholder(ctx context.Context, locationID string, month, year int) (map[string]decimal.Decimal, error) {
	return sumAdvances(ctx, r.pool, locationID, month, year)
}

// SumByShareholderTx is SumByShareholder inside a transaction.
func (r *AdvanceRepository) SumByShareholderTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (map[string]decimal.Decimal, error) {
	return sumAdvances(ctx, tx.(*Tx).PgxTx(), locationID, month, year)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func sumAdvances(ctx context.Context, q querier, locationID string, month, year int) (map[string]decimal.Decimal, error) {
	query := `
		SELECT shareholder_id, COALESCE(SUM(amount), 0)
		FROM advances
		WHERE location_id = $1 AND month = $2 AND year = $3
		GROUP BY shareholder_id
	`

	rows, err := q.Query(ctx, query, locationID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			shareholderID string
			total         pgtype.Numeric
		)

		if err := rows.Scan(&shareholderID, &total); err != nil {
			return nil, err
		}

		totals[shareholderID] = numericToDecimal(total)
	}

	return totals, rows.Err()
}

func scanAdvance(row rowScanner) (*domain.Advance, error) {
	var (
		a         domain.Advance
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&a.ID,
		&a.LocationID,
		&a.ShareholderID,
		&a.Month,
		&a.Year,
		&amount,
		&a.Note,
		&a.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.Amount = numericToDecimal(amount)
	a.CreatedAt = createdAt.Time

	return &a, nil
}
