package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingRecord is the immutable result of closing one location's month.
// Its (LocationID, Month, Year) uniqueness is the period lock: once a
// closing exists, no financial record dated inside the period may change.
type ClosingRecord struct {
	ID                string
	LocationID        string
	Month             int
	Year              int
	TotalNetProfit    decimal.Decimal
	RetainedAmount    decimal.Decimal
	DistributedAmount decimal.Decimal
	Settlements       []SettlementDetail
	ClosedBy          string
	CreatedAt         time.Time
}

// Period returns the closing's period.
func (c *ClosingRecord) Period() Period {
	return Period{Month: c.Month, Year: c.Year}
}

// SettlementDetail is one shareholder's computed result for one closing.
// FinalAmount = PeriodShare + PriorBalance - AdvancesDeducted, and the
// shareholder's balance becomes NewAccumulatedBalance (== FinalAmount).
type SettlementDetail struct {
	ShareholderID         string
	ShareholderName       string
	PeriodShare           decimal.Decimal
	PriorBalance          decimal.Decimal
	AdvancesDeducted      decimal.Decimal
	FinalAmount           decimal.Decimal
	NewAccumulatedBalance decimal.Decimal
}

// IsPresentational reports whether the settlement carries any amount a
// reader would care about. Zero-percentage, zero-balance shareholders may
// be hidden from screens but are still persisted.
func (d *SettlementDetail) IsPresentational() bool {
	return !d.PeriodShare.IsZero() ||
		!d.PriorBalance.IsZero() ||
		!d.AdvancesDeducted.IsZero() ||
		!d.FinalAmount.IsZero()
}
