package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrMissingUserID   = errors.New("user id is required")
	ErrMissingLocation = errors.New("location id is required")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
)

// MoneyPlaces is the scale monetary values are rounded to at persistence
// and presentation boundaries. Intermediate distribution math keeps full
// precision.
const MoneyPlaces = 2

// ValidateName validates a human-entered name or description.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidatePercentage validates a 0-100 percentage value.
func ValidatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return ErrInvalidPercentage
	}

	return nil
}

// RoundMoney rounds a monetary value to the persisted scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
