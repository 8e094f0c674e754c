package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/internal/usecase/mocks"
)

func TestPeriodSummary(t *testing.T) {
	readings := mocks.NewMockReadingRepository()
	expenses := mocks.NewMockExpenseRepository()
	uc := usecase.NewSummaryUseCase(readings, expenses, nil, 0, nil)

	readings.Seed(&domain.MeterReading{
		ID:               "r-1",
		LocationID:       "loc-1",
		ReadingDate:      time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
		GrossAmount:      dec("1200"),
		CommissionAmount: dec("120"),
	})
	expenses.Seed(&domain.Expense{
		ID:          "e-1",
		LocationID:  "loc-1",
		ExpenseDate: time.Date(2024, time.June, 6, 0, 0, 0, 0, time.UTC),
		Amount:      dec("300"),
	})

	summary, err := uc.PeriodSummary(context.Background(), "loc-1", domain.Period{Month: 6, Year: 2024})
	require.NoError(t, err)
	require.True(t, summary.GrossSales.Equal(dec("1200")))
	require.True(t, summary.TotalCommissions.Equal(dec("120")))
	require.True(t, summary.TotalExpenses.Equal(dec("300")))
	require.True(t, summary.NetProfit.Equal(dec("780")), "net profit %s", summary.NetProfit)
}

func TestPeriodSummary_CacheHit(t *testing.T) {
	readings := mocks.NewMockReadingRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewSummaryUseCase(readings, mocks.NewMockExpenseRepository(), cache, time.Minute, nil)

	period := domain.Period{Month: 6, Year: 2024}

	readings.Seed(&domain.MeterReading{
		ID:          "r-1",
		LocationID:  "loc-1",
		ReadingDate: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
		GrossAmount: dec("500"),
	})

	first, err := uc.PeriodSummary(context.Background(), "loc-1", period)
	require.NoError(t, err)
	require.True(t, first.NetProfit.Equal(dec("500")))

	// A later write that bypasses the use cases is invisible until the
	// cached entry expires or is invalidated.
	readings.Seed(&domain.MeterReading{
		ID:          "r-2",
		LocationID:  "loc-1",
		ReadingDate: time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC),
		GrossAmount: dec("500"),
	})

	cached, err := uc.PeriodSummary(context.Background(), "loc-1", period)
	require.NoError(t, err)
	require.True(t, cached.NetProfit.Equal(dec("500")))

	require.NoError(t, uc.Invalidate(context.Background(), "loc-1", period))

	fresh, err := uc.PeriodSummary(context.Background(), "loc-1", period)
	require.NoError(t, err)
	require.True(t, fresh.NetProfit.Equal(dec("1000")))
}

func TestPeriodSummary_InvalidPeriod(t *testing.T) {
	uc := usecase.NewSummaryUseCase(mocks.NewMockReadingRepository(), mocks.NewMockExpenseRepository(), nil, 0, nil)

	_, err := uc.PeriodSummary(context.Background(), "loc-1", domain.Period{Month: 13, Year: 2024})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
