package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a cash draw against a shareholder's future settlement. It
// belongs to exactly one shareholder and one period and is deducted from
// that shareholder's settlement at closing time. The distribution engine
// consumes advances read-only.
type Advance struct {
	ID            string
	LocationID    string
	ShareholderID string
	Month         int
	Year          int
	Amount        decimal.Decimal
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
}

// Validate checks advance invariants.
func (a *Advance) Validate() error {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return a.Period().Validate()
}

// Period returns the period the advance counts against.
func (a *Advance) Period() Period {
	return Period{Month: a.Month, Year: a.Year}
}
