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

// ShareholderRepository implements usecase.ShareholderRepository.
type ShareholderRepository struct {
	pool *pgxpool.Pool
}

// NewShareholderRepository creates a new ShareholderRepository.
func NewShareholderRepository(pool *pgxpool.Pool) *ShareholderRepository {
	return &ShareholderRepository{pool: pool}
}

const shareholderColumns = `
	id, location_id, name, percentage, participates_in_loss,
	accumulated_balance, last_closing_id, active, version,
	created_at, updated_at
`

// Create creates a new shareholder.
func (r *ShareholderRepository) Create(ctx context.Context, s *domain.Shareholder) error {
	query := `
		INSERT INTO shareholders (` + shareholderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.LocationID,
		s.Name,
		decimalToNumeric(s.Percentage),
		s.ParticipatesInLoss,
		decimalToNumeric(s.AccumulatedBalance),
		s.LastClosingID,
		s.Active,
		s.Version,
		timeToPgTimestamptz(s.CreatedAt),
		timeToPgTimestamptz(s.UpdatedAt),
	)

	return err
}

// GetByID retrieves a shareholder by ID.
func (r *ShareholderRepository) GetByID(ctx context.Context, id string) (*domain.Shareholder, error) {
	query := `SELECT ` + shareholderColumns + ` FROM shareholders WHERE id = $1`

	s, err := scanShareholder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShareholderNotFound
		}

		return nil, err
	}

	return s, nil
}

// ListByLocation lists a location's shareholders with pagination.
func (r *ShareholderRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.Shareholder, error) {
	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE location_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShareholders(rows)
}

// ListActiveByLocation lists a location's active shareholders.
func (r *ShareholderRepository) ListActiveByLocation(ctx context.Context, locationID string) ([]*domain.Shareholder, error) {
	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE location_id = $1 AND active
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShareholders(rows)
}

// ListActiveByLocationForUpdate locks and returns the location's active
// shareholders. Ordering by id keeps concurrent transactions acquiring
// the row locks in the same sequence.
func (r *ShareholderRepository) ListActiveByLocationForUpdate(ctx context.Context, tx usecase.Transaction, locationID string) ([]*domain.Shareholder, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE location_id = $1 AND active
		ORDER BY id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShareholders(rows)
}

// UpdateBalance writes a shareholder's new accumulated balance, stamping
// the closing that produced it.
func (r *ShareholderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, closingID string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE shareholders
		SET accumulated_balance = $2,
		    last_closing_id = $3,
		    version = version + 1,
		    updated_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), closingID, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrShareholderNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShareholder(row rowScanner) (*domain.Shareholder, error) {
	var (
		s          domain.Shareholder
		percentage pgtype.Numeric
		balance    pgtype.Numeric
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&s.ID,
		&s.LocationID,
		&s.Name,
		&percentage,
		&s.ParticipatesInLoss,
		&balance,
		&s.LastClosingID,
		&s.Active,
		&s.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Percentage = numericToDecimal(percentage)
	s.AccumulatedBalance = numericToDecimal(balance)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func collectShareholders(rows pgx.Rows) ([]*domain.Shareholder, error) {
	var shareholders []*domain.Shareholder
	for rows.Next() {
		s, err := scanShareholder(rows)
		if err != nil {
			return nil, err
		}

		shareholders = append(shareholders, s)
	}

	return shareholders, rows.Err()
}
