package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Period errors
	ErrPeriodClosed  = errors.New("period is closed")
	ErrInvalidPeriod = errors.New("invalid period")

	// Distribution errors
	ErrInvalidDistribution   = errors.New("invalid distribution")
	ErrNoShareholders        = errors.New("shareholder list is empty")
	ErrPercentageSumExceeded = errors.New("shareholder percentages sum above 100")
	ErrInvalidPercentage     = errors.New("percentage must be between 0 and 100")
	ErrInvalidAmount         = errors.New("amount must be positive")

	ErrStaleNetProfit = errors.New("period net profit changed since it was reviewed")

	// Reading errors
	ErrCounterRegression = errors.New("current counter below previous counter")

	// Not-found errors
	ErrShareholderNotFound = errors.New("shareholder not found")
	ErrClosingNotFound     = errors.New("closing not found")
	ErrReadingNotFound     = errors.New("meter reading not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrAdvanceNotFound     = errors.New("advance not found")
)

// PeriodClosedError reports an attempted write into a period that already
// has a closing record.
type PeriodClosedError struct {
	LocationID string
	Month      int
	Year       int
}

func (e *PeriodClosedError) Error() string {
	return fmt.Sprintf("period %d/%d is closed for location %s", e.Month, e.Year, e.LocationID)
}

func (e *PeriodClosedError) Unwrap() error {
	return ErrPeriodClosed
}

// InvalidDistributionError reports a retained amount larger than the
// period's net profit.
type InvalidDistributionError struct {
	RetainedAmount decimal.Decimal
	NetProfit      decimal.Decimal
}

func (e *InvalidDistributionError) Error() string {
	return fmt.Sprintf("retained amount %s exceeds net profit %s",
		e.RetainedAmount.String(), e.NetProfit.String())
}

func (e *InvalidDistributionError) Unwrap() error {
	return ErrInvalidDistribution
}
