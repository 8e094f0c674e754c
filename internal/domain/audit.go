package domain

import (
	"time"
)

// AuditLog is an append-only record of a mutating action. Outside the
// closing transaction audit writes are best-effort telemetry; inside it
// the entry commits or rolls back with the balance updates.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       string
	Status       string
	CreatedAt    time.Time
}

// AuditAction enumerates auditable actions.
type AuditAction string

const (
	AuditActionClosingCreate AuditAction = "closing.create"

	AuditActionReadingCreate AuditAction = "reading.create"
	AuditActionReadingUpdate AuditAction = "reading.update"
	AuditActionReadingDelete AuditAction = "reading.delete"

	AuditActionExpenseCreate AuditAction = "expense.create"
	AuditActionExpenseUpdate AuditAction = "expense.update"
	AuditActionExpenseDelete AuditAction = "expense.delete"

	AuditActionAdvanceCreate AuditAction = "advance.create"
)

// AuditFilter defines filters for querying audit logs.
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// AuditStatus represents the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)
