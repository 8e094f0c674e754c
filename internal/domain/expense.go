package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operational cost charged against a location's period.
type Expense struct {
	ID          string
	LocationID  string
	ExpenseDate time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	Deleted     bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks expense invariants.
func (e *Expense) Validate() error {
	if err := ValidateName(e.Description); err != nil {
		return err
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Period returns the period the expense is dated in.
func (e *Expense) Period() Period {
	return PeriodFromDate(e.ExpenseDate)
}
