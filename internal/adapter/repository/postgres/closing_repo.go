package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// ClosingRepository implements usecase.ClosingRepository. The closings
// table carries a unique (location_id, month, year) index; a concurrent
// closing that slips past both guard checks fails there and is reported
// as PeriodClosedError.
type ClosingRepository struct {
	pool *pgxpool.Pool
}

// NewClosingRepository creates a new ClosingRepository.
func NewClosingRepository(pool *pgxpool.Pool) *ClosingRepository {
	return &ClosingRepository{pool: pool}
}

// ExistsForPeriod reports whether the period already has a closing.
func (r *ClosingRepository) ExistsForPeriod(ctx context.Context, locationID string, month, year int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM closings WHERE location_id = $1 AND month = $2 AND year = $3)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, locationID, month, year).Scan(&exists)

	return exists, err
}

// ExistsForPeriodTx is ExistsForPeriod inside a transaction.
func (r *ClosingRepository) ExistsForPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT EXISTS (SELECT 1 FROM closings WHERE location_id = $1 AND month = $2 AND year = $3)`

	var exists bool
	err := pgxTx.QueryRow(ctx, query, locationID, month, year).Scan(&exists)

	return exists, err
}

// CreateTx inserts the closing record and its settlement rows.
func (r *ClosingRepository) CreateTx(ctx context.Context, tx usecase.Transaction, closing *domain.ClosingRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO closings (
			id, location_id, month, year,
			total_net_profit, retained_amount, distributed_amount,
			closed_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		closing.ID,
		closing.LocationID,
		closing.Month,
		closing.Year,
		decimalToNumeric(closing.TotalNetProfit),
		decimalToNumeric(closing.RetainedAmount),
		decimalToNumeric(closing.DistributedAmount),
		closing.ClosedBy,
		timeToPgTimestamptz(closing.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.PeriodClosedError{
				LocationID: closing.LocationID,
				Month:      closing.Month,
				Year:       closing.Year,
			}
		}

		return err
	}

	settlementQuery := `
		INSERT INTO closing_settlements (
			closing_id, shareholder_id, shareholder_name,
			period_share, prior_balance, advances_deducted,
			final_amount, new_accumulated_balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, s := range closing.Settlements {
		_, err := pgxTx.Exec(ctx, settlementQuery,
			closing.ID,
			s.ShareholderID,
			s.ShareholderName,
			decimalToNumeric(s.PeriodShare),
			decimalToNumeric(s.PriorBalance),
			decimalToNumeric(s.AdvancesDeducted),
			decimalToNumeric(s.FinalAmount),
			decimalToNumeric(s.NewAccumulatedBalance),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a closing with its settlements.
func (r *ClosingRepository) GetByID(ctx context.Context, id string) (*domain.ClosingRecord, error) {
	query := closingSelect + ` WHERE id = $1`

	closing, err := scanClosing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClosingNotFound
		}

		return nil, err
	}

	if err := r.loadSettlements(ctx, closing); err != nil {
		return nil, err
	}

	return closing, nil
}

// GetByPeriod retrieves the closing for a location period.
func (r *ClosingRepository) GetByPeriod(ctx context.Context, locationID string, month, year int) (*domain.ClosingRecord, error) {
	query := closingSelect + ` WHERE location_id = $1 AND month = $2 AND year = $3`

	closing, err := scanClosing(r.pool.QueryRow(ctx, query, locationID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClosingNotFound
		}

		return nil, err
	}

	if err := r.loadSettlements(ctx, closing); err != nil {
		return nil, err
	}

	return closing, nil
}

// ListByLocation lists a location's closings newest first, without
// settlements.
func (r *ClosingRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.ClosingRecord, error) {
	query := closingSelect + `
		WHERE location_id = $1
		ORDER BY year DESC, month DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closings []*domain.ClosingRecord
	for rows.Next() {
		closing, err := scanClosing(rows)
		if err != nil {
			return nil, err
		}

		closings = append(closings, closing)
	}

	return closings, rows.Err()
}

func (r *ClosingRepository) loadSettlements(ctx context.Context, closing *domain.ClosingRecord) error {
	query := `
		SELECT shareholder_id, shareholder_name, period_share, prior_balance,
		       advances_deducted, final_amount, new_accumulated_balance
		FROM closing_settlements
		WHERE closing_id = $1
		ORDER BY shareholder_id
	`

	rows, err := r.pool.Query(ctx, query, closing.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s                                               domain.SettlementDetail
			share, prior, advances, finalAmount, newBalance pgtype.Numeric
		)

		err := rows.Scan(&s.ShareholderID, &s.ShareholderName, &share, &prior, &advances, &finalAmount, &newBalance)
		if err != nil {
			return err
		}

		s.PeriodShare = numericToDecimal(share)
		s.PriorBalance = numericToDecimal(prior)
		s.AdvancesDeducted = numericToDecimal(advances)
		s.FinalAmount = numericToDecimal(finalAmount)
		s.NewAccumulatedBalance = numericToDecimal(newBalance)

		closing.Settlements = append(closing.Settlements, s)
	}

	return rows.Err()
}

const closingSelect = `
	SELECT id, location_id, month, year,
	       total_net_profit, retained_amount, distributed_amount,
	       closed_by, created_at
	FROM closings
`

func scanClosing(row rowScanner) (*domain.ClosingRecord, error) {
	var (
		c                                domain.ClosingRecord
		netProfit, retained, distributed pgtype.Numeric
		createdAt                        pgtype.Timestamptz
	)

	err := row.Scan(
		&c.ID,
		&c.LocationID,
		&c.Month,
		&c.Year,
		&netProfit,
		&retained,
		&distributed,
		&c.ClosedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.TotalNetProfit = numericToDecimal(netProfit)
	c.RetainedAmount = numericToDecimal(retained)
	c.DistributedAmount = numericToDecimal(distributed)
	c.CreatedAt = createdAt.Time

	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
