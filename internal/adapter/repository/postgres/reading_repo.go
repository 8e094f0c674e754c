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

// ReadingRepository implements usecase.ReadingRepository.
type ReadingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository creates a new ReadingRepository.
func NewReadingRepository(pool *pgxpool.Pool) *ReadingRepository {
	return &ReadingRepository{pool: pool}
}

const readingColumns = `
	id, location_id, machine_id, reading_date,
	previous_counter, current_counter, unit_price,
	gross_amount, commission_pct, commission_amount, net_amount,
	deleted, created_by, created_at, updated_at
`

// Create creates a new meter reading.
func (r *ReadingRepository) Create(ctx context.Context, reading *domain.MeterReading) error {
	query := `
		INSERT INTO meter_readings (` + readingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.ID,
		reading.LocationID,
		reading.MachineID,
		timeToPgTimestamptz(reading.ReadingDate),
		reading.PreviousCounter,
		reading.CurrentCounter,
		decimalToNumeric(reading.UnitPrice),
		decimalToNumeric(reading.GrossAmount),
		decimalToNumeric(reading.CommissionPct),
		decimalToNumeric(reading.CommissionAmount),
		decimalToNumeric(reading.NetAmount),
		reading.Deleted,
		reading.CreatedBy,
		timeToPgTimestamptz(reading.CreatedAt),
		timeToPgTimestamptz(reading.UpdatedAt),
	)

	return err
}

// GetByID retrieves a non-deleted reading by ID.
func (r *ReadingRepository) GetByID(ctx context.Context, id string) (*domain.MeterReading, error) {
	query := `SELECT ` + readingColumns + ` FROM meter_readings WHERE id = $1 AND NOT deleted`

	reading, err := scanReading(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReadingNotFound
		}

		return nil, err
	}

	return reading, nil
}

// Update rewrites a reading's editable fields and derived amounts.
func (r *ReadingRepository) Update(ctx context.Context, reading *domain.MeterReading) error {
	query := `
		UPDATE meter_readings
		SET reading_date = $2,
		    previous_counter = $3,
		    current_counter = $4,
		    unit_price = $5,
		    gross_amount = $6,
		    commission_pct = $7,
		    commission_amount = $8,
		    net_amount = $9,
		    updated_at = $10
		WHERE id = $1 AND NOT deleted
	`

	tag, err := r.pool.Exec(ctx, query,
		reading.ID,
		timeToPgTimestamptz(reading.ReadingDate),
		reading.PreviousCounter,
		reading.CurrentCounter,
		decimalToNumeric(reading.UnitPrice),
		decimalToNumeric(reading.GrossAmount),
		decimalToNumeric(reading.CommissionPct),
		decimalToNumeric(reading.CommissionAmount),
		decimalToNumeric(reading.NetAmount),
		timeToPgTimestamptz(reading.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReadingNotFound
	}

	return nil
}

// SoftDelete marks a reading deleted.
func (r *ReadingRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	query := `UPDATE meter_readings SET deleted = TRUE, updated_at = $2 WHERE id = $1 AND NOT deleted`

	tag, err := r.pool.Exec(ctx, query, id, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReadingNotFound
	}

	return nil
}

// ListByPeriod lists non-deleted readings for a location period.
func (r *ReadingRepository) ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.MeterReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM meter_readings
		WHERE location_id = $1
		  AND EXTRACT(MONTH FROM reading_date) = $2
		  AND EXTRACT(YEAR FROM reading_date) = $3
		  AND NOT deleted
		ORDER BY reading_date, machine_id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, locationID, month, year, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*domain.MeterReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}

		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

// SummarizeByPeriod totals gross sales and commissions for the period.
func (r *ReadingRepository) SummarizeByPeriod(ctx context.Context, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	return summarizeReadings(ctx, r.pool, locationID, month, year)
}

// SummarizeByPeriodTx is SummarizeByPeriod inside a transaction.
func (r *ReadingRepository) SummarizeByPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	return summarizeReadings(ctx, tx.(*Tx).PgxTx(), locationID, month, year)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func summarizeReadings(ctx context.Context, q queryRower, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(gross_amount), 0), COALESCE(SUM(commission_amount), 0)
		FROM meter_readings
		WHERE location_id = $1
		  AND EXTRACT(MONTH FROM reading_date) = $2
		  AND EXTRACT(YEAR FROM reading_date) = $3
		  AND NOT deleted
	`

	var gross, commissions pgtype.Numeric

	err := q.QueryRow(ctx, query, locationID, month, year).Scan(&gross, &commissions)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(gross), numericToDecimal(commissions), nil
}

func scanReading(row rowScanner) (*domain.MeterReading, error) {
	var (
		r                                      domain.MeterReading
		readingDate, createdAt, updatedAt      pgtype.Timestamptz
		unitPrice, gross, pct, commission, net pgtype.Numeric
	)

	err := row.Scan(
		&r.ID,
		&r.LocationID,
		&r.MachineID,
		&readingDate,
		&r.PreviousCounter,
		&r.CurrentCounter,
		&unitPrice,
		&gross,
		&pct,
		&commission,
		&net,
		&r.Deleted,
		&r.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.ReadingDate = readingDate.Time
	r.UnitPrice = numericToDecimal(unitPrice)
	r.GrossAmount = numericToDecimal(gross)
	r.CommissionPct = numericToDecimal(pct)
	r.CommissionAmount = numericToDecimal(commission)
	r.NetAmount = numericToDecimal(net)
	r.CreatedAt = createdAt.Time
	r.UpdatedAt = updatedAt.Time

	return &r, nil
}
