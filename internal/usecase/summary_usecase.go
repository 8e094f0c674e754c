package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
)

// SummaryUseCase aggregates a location's period totals from readings and
// expenses. Results are cached briefly; reading and expense writes
// invalidate the cache through the SummaryInvalidator interface.
type SummaryUseCase struct {
	readingRepo ReadingRepository
	expenseRepo ExpenseRepository
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil, in
// which case every call recomputes.
func NewSummaryUseCase(readingRepo ReadingRepository, expenseRepo ExpenseRepository, cache Cache, cacheTTL time.Duration, metrics *metrics.Metrics) *SummaryUseCase {
	return &SummaryUseCase{
		readingRepo: readingRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
		logger:      slog.Default(),
	}
}

// PeriodSummary returns gross sales, commissions, expenses and net profit
// for a location period.
func (uc *SummaryUseCase) PeriodSummary(ctx context.Context, locationID string, period domain.Period) (*domain.PeriodSummary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	key := summaryCacheKey(locationID, period)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached domain.PeriodSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				if uc.metrics != nil {
					uc.metrics.SummaryCacheHits.Inc()
				}
				return &cached, nil
			}
		}
	}

	if uc.metrics != nil {
		uc.metrics.SummaryCacheMisses.Inc()
	}

	gross, commissions, err := uc.readingRepo.SummarizeByPeriod(ctx, locationID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.SumByPeriod(ctx, locationID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}

	summary := &domain.PeriodSummary{
		LocationID:       locationID,
		Month:            period.Month,
		Year:             period.Year,
		GrossSales:       gross,
		TotalCommissions: commissions,
		TotalExpenses:    expenses,
	}
	summary.ComputeNetProfit()

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("summary cache write failed", "key", key, "error", err)
			}
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary for a location period.
func (uc *SummaryUseCase) Invalidate(ctx context.Context, locationID string, period domain.Period) error {
	if uc.cache == nil {
		return nil
	}

	return uc.cache.Delete(ctx, summaryCacheKey(locationID, period))
}

func summaryCacheKey(locationID string, period domain.Period) string {
	return fmt.Sprintf("summary:%s:%d:%d", locationID, period.Year, period.Month)
}
