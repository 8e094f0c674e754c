package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shareholder represents a cota holder entitled to a percentage of a
// location's distributable profit. AccumulatedBalance is a running
// current-account value mutated only by the closing transaction;
// LastClosingID records which closing produced the current balance.
type Shareholder struct {
	ID                 string
	LocationID         string
	Name               string
	Percentage         decimal.Decimal
	ParticipatesInLoss bool
	AccumulatedBalance decimal.Decimal
	LastClosingID      *string
	Active             bool
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate checks shareholder invariants.
func (s *Shareholder) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}

	return ValidatePercentage(s.Percentage)
}

// ValidatePercentageSum checks that active shareholders of a location do
// not claim more than 100% of the distributable base.
func ValidatePercentageSum(shareholders []*Shareholder) error {
	sum := decimal.Zero
	for _, s := range shareholders {
		if !s.Active {
			continue
		}

		sum = sum.Add(s.Percentage)
	}

	if sum.GreaterThan(decimal.NewFromInt(100)) {
		return ErrPercentageSumExceeded
	}

	return nil
}
