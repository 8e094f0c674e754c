package usecase

import (
	"context"
	"time"

	"github.com/rotavend/fechamento/internal/domain"
)

// PeriodGuard checks whether a (location, month, year) period still
// accepts writes. The existence of a closing record is the lock. The
// guard has no side effects; callers invoke it immediately before the
// write they want to protect, and the closing transaction re-checks it
// a second time inside the transaction.
type PeriodGuard struct {
	closingRepo ClosingRepository
}

// NewPeriodGuard creates a new PeriodGuard.
func NewPeriodGuard(closingRepo ClosingRepository) *PeriodGuard {
	return &PeriodGuard{closingRepo: closingRepo}
}

// EnsureOpen checks that the period a dated record falls in is open.
func (g *PeriodGuard) EnsureOpen(ctx context.Context, locationID string, date time.Time) error {
	return g.EnsureOpenPeriod(ctx, locationID, domain.PeriodFromDate(date))
}

// EnsureOpenPeriod checks that the given period is open.
func (g *PeriodGuard) EnsureOpenPeriod(ctx context.Context, locationID string, period domain.Period) error {
	if err := period.Validate(); err != nil {
		return err
	}

	closed, err := g.closingRepo.ExistsForPeriod(ctx, locationID, period.Month, period.Year)
	if err != nil {
		return err
	}

	if closed {
		return &domain.PeriodClosedError{
			LocationID: locationID,
			Month:      period.Month,
			Year:       period.Year,
		}
	}

	return nil
}

// EnsureOpenPeriodTx re-checks openness inside a transaction. The closing
// transaction calls this right before creating the closing record so a
// concurrent closing either surfaces here or fails on the closing
// record's unique key.
func (g *PeriodGuard) EnsureOpenPeriodTx(ctx context.Context, tx Transaction, locationID string, period domain.Period) error {
	closed, err := g.closingRepo.ExistsForPeriodTx(ctx, tx, locationID, period.Month, period.Year)
	if err != nil {
		return err
	}

	if closed {
		return &domain.PeriodClosedError{
			LocationID: locationID,
			Month:      period.Month,
			Year:       period.Year,
		}
	}

	return nil
}
