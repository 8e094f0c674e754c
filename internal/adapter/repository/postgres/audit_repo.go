package postgres

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

// AuditRepository implements audit log persistence.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditInsert = `
	INSERT INTO audit_logs (
		id, user_id, action, resource_type, resource_id,
		detail, status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	_, err := r.pool.Exec(ctx, auditInsert,
		log.ID,
		log.UserID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.Detail,
		log.Status,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// CreateTx inserts a new audit log entry inside a transaction.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	_, err := tx.(*Tx).PgxTx().Exec(ctx, auditInsert,
		log.ID,
		log.UserID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.Detail,
		log.Status,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// List retrieves audit logs with filtering.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, user_id, action, resource_type, resource_id,
		       detail, status, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	next := func() string {
		p := "$" + strconv.Itoa(argPos)
		argPos++

		return p
	}

	if filter.UserID != "" {
		query += ` AND user_id = ` + next()
		args = append(args, filter.UserID)
	}

	if filter.Action != "" {
		query += ` AND action = ` + next()
		args = append(args, filter.Action)
	}

	if filter.ResourceType != "" {
		query += ` AND resource_type = ` + next()
		args = append(args, filter.ResourceType)
	}

	if filter.ResourceID != "" {
		query += ` AND resource_id = ` + next()
		args = append(args, filter.ResourceID)
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ` + next()
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ` + next()
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog

		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&log.Detail,
			&log.Status,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
