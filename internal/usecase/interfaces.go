package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
)

// ShareholderRepository defines data access for shareholders. Balance
// writes go through UpdateBalance only, inside a transaction, so every
// balance mutation is traceable to exactly one closing.
type ShareholderRepository interface {
	Create(ctx context.Context, shareholder *domain.Shareholder) error
	GetByID(ctx context.Context, id string) (*domain.Shareholder, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.Shareholder, error)
	ListActiveByLocation(ctx context.Context, locationID string) ([]*domain.Shareholder, error)
	// ListActiveByLocationForUpdate locks the location's active
	// shareholder rows in id order.
	ListActiveByLocationForUpdate(ctx context.Context, tx Transaction, locationID string) ([]*domain.Shareholder, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, closingID string, updatedAt time.Time) error
}

// ClosingRepository defines data access for closing records. Closings are
// immutable: there is no update or delete.
type ClosingRepository interface {
	ExistsForPeriod(ctx context.Context, locationID string, month, year int) (bool, error)
	ExistsForPeriodTx(ctx context.Context, tx Transaction, locationID string, month, year int) (bool, error)
	CreateTx(ctx context.Context, tx Transaction, closing *domain.ClosingRecord) error
	GetByID(ctx context.Context, id string) (*domain.ClosingRecord, error)
	GetByPeriod(ctx context.Context, locationID string, month, year int) (*domain.ClosingRecord, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.ClosingRecord, error)
}

// ReadingRepository defines data access for meter readings.
type ReadingRepository interface {
	Create(ctx context.Context, reading *domain.MeterReading) error
	GetByID(ctx context.Context, id string) (*domain.MeterReading, error)
	Update(ctx context.Context, reading *domain.MeterReading) error
	SoftDelete(ctx context.Context, id string, updatedAt time.Time) error
	ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.MeterReading, error)
	// SummarizeByPeriod totals gross sales and commissions over
	// non-deleted readings.
	SummarizeByPeriod(ctx context.Context, locationID string, month, year int) (gross, commissions decimal.Decimal, err error)
	SummarizeByPeriodTx(ctx context.Context, tx Transaction, locationID string, month, year int) (gross, commissions decimal.Decimal, err error)
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	SoftDelete(ctx context.Context, id string, updatedAt time.Time) error
	ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.Expense, error)
	SumByPeriod(ctx context.Context, locationID string, month, year int) (decimal.Decimal, error)
	SumByPeriodTx(ctx context.Context, tx Transaction, locationID string, month, year int) (decimal.Decimal, error)
}

// AdvanceRepository defines data access for advances.
type AdvanceRepository interface {
	Create(ctx context.Context, advance *domain.Advance) error
	ListByPeriod(ctx context.Context, locationID string, month, year int) ([]*domain.Advance, error)
	// SumByShareholder returns the advance total per shareholder id for
	// the period.
	SumByShareholder(ctx context.Context, locationID string, month, year int) (map[string]decimal.Decimal, error)
	SumByShareholderTx(ctx context.Context, tx Transaction, locationID string, month, year int) (map[string]decimal.Decimal, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SummaryInvalidator drops cached period summaries after a reading or
// expense write.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, locationID string, period domain.Period) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// Reserve claims the key for the caller. fresh is true when the
	// claim succeeded and the request should proceed; otherwise cached
	// holds the stored response, or nil while the first request is
	// still in flight.
	Reserve(ctx context.Context, key string, ttl time.Duration) (cached []byte, fresh bool, err error)
	// Store records the final response under a previously reserved key.
	Store(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
