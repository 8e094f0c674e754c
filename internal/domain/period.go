package domain

import (
	"fmt"
	"time"
)

// Period identifies a calendar month for a location's financials.
type Period struct {
	Month int
	Year  int
}

// PeriodFromDate derives the period a dated record belongs to.
func PeriodFromDate(date time.Time) Period {
	return Period{
		Month: int(date.Month()),
		Year:  date.Year(),
	}
}

// Validate checks month and year bounds.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, p.Month)
	}

	if p.Year < 1000 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, p.Year)
	}

	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}
