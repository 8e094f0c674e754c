package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterReading records one machine's counter sweep. Amounts are derived
// from the counters once at creation and stored, so period aggregates
// never re-derive them.
type MeterReading struct {
	ID               string
	LocationID       string
	MachineID        string
	ReadingDate      time.Time
	PreviousCounter  int64
	CurrentCounter   int64
	UnitPrice        decimal.Decimal
	GrossAmount      decimal.Decimal
	CommissionPct    decimal.Decimal
	CommissionAmount decimal.Decimal
	NetAmount        decimal.Decimal
	Deleted          bool
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComputeAmounts derives gross, commission and net from the counters.
func (r *MeterReading) ComputeAmounts() {
	plays := decimal.NewFromInt(r.CurrentCounter - r.PreviousCounter)
	r.GrossAmount = plays.Mul(r.UnitPrice)
	r.CommissionAmount = r.GrossAmount.Mul(r.CommissionPct).Div(oneHundred)
	r.NetAmount = r.GrossAmount.Sub(r.CommissionAmount)
}

// Validate checks reading invariants.
func (r *MeterReading) Validate() error {
	if r.CurrentCounter < r.PreviousCounter {
		return ErrCounterRegression
	}

	if r.UnitPrice.IsNegative() {
		return ErrInvalidAmount
	}

	return ValidatePercentage(r.CommissionPct)
}

// Period returns the period the reading is dated in.
func (r *MeterReading) Period() Period {
	return PeriodFromDate(r.ReadingDate)
}
