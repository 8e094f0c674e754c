package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotavend/fechamento/internal/usecase"
)

// TxManager hands out database transactions for the closing unit of
// work. Repositories unwrap the concrete *Tx to reach pgx.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a transaction at the pool's default isolation level.
// Serialization failures are handled by the retrier around the whole
// closing attempt, not here.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx adapts pgx.Tx to usecase.Transaction.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback after a commit is a no-op error in pgx; callers defer it
// unconditionally.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx exposes the underlying transaction to sibling repositories.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
