package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/internal/usecase/mocks"
)

type advanceFixture struct {
	advances     *mocks.MockAdvanceRepository
	shareholders *mocks.MockShareholderRepository
	closings     *mocks.MockClosingRepository
	audit        *mocks.MockAuditRepository
	uc           *usecase.AdvanceUseCase
}

func newAdvanceFixture() *advanceFixture {
	f := &advanceFixture{
		advances:     mocks.NewMockAdvanceRepository(),
		shareholders: mocks.NewMockShareholderRepository(),
		closings:     mocks.NewMockClosingRepository(),
		audit:        mocks.NewMockAuditRepository(),
	}

	f.shareholders.Seed(&domain.Shareholder{
		ID:         "sh-1",
		LocationID: "loc-1",
		Name:       "Partner",
		Percentage: dec("50"),
		Active:     true,
	})

	f.uc = usecase.NewAdvanceUseCase(
		f.advances, f.shareholders, usecase.NewPeriodGuard(f.closings), f.audit, mocks.NewMockIDGenerator(), nil,
	)

	return f
}

func TestCreateAdvance(t *testing.T) {
	f := newAdvanceFixture()

	advance, err := f.uc.CreateAdvance(context.Background(), usecase.CreateAdvanceInput{
		LocationID:    "loc-1",
		ShareholderID: "sh-1",
		Month:         6,
		Year:          2024,
		Amount:        dec("250"),
		Note:          "trip to the coast route",
		CreatedBy:     "user-1",
	})
	require.NoError(t, err)
	require.True(t, advance.Amount.Equal(dec("250")))

	sums, err := f.uc.SumByShareholder(context.Background(), "loc-1", domain.Period{Month: 6, Year: 2024})
	require.NoError(t, err)
	require.True(t, sums["sh-1"].Equal(dec("250")))

	logs := f.audit.Logs()
	require.Len(t, logs, 1)
	require.Equal(t, string(domain.AuditActionAdvanceCreate), logs[0].Action)
}

func TestCreateAdvance_ClosedPeriod(t *testing.T) {
	f := newAdvanceFixture()
	closePeriod(t, f.closings, "loc-1", 6, 2024)

	_, err := f.uc.CreateAdvance(context.Background(), usecase.CreateAdvanceInput{
		LocationID:    "loc-1",
		ShareholderID: "sh-1",
		Month:         6,
		Year:          2024,
		Amount:        dec("250"),
		CreatedBy:     "user-1",
	})
	require.ErrorIs(t, err, domain.ErrPeriodClosed)
}

func TestCreateAdvance_UnknownShareholder(t *testing.T) {
	f := newAdvanceFixture()

	_, err := f.uc.CreateAdvance(context.Background(), usecase.CreateAdvanceInput{
		LocationID:    "loc-1",
		ShareholderID: "sh-missing",
		Month:         6,
		Year:          2024,
		Amount:        dec("250"),
		CreatedBy:     "user-1",
	})
	require.ErrorIs(t, err, domain.ErrShareholderNotFound)
}

func TestCreateAdvance_NonPositiveAmount(t *testing.T) {
	f := newAdvanceFixture()

	for _, amount := range []string{"0", "-10"} {
		_, err := f.uc.CreateAdvance(context.Background(), usecase.CreateAdvanceInput{
			LocationID:    "loc-1",
			ShareholderID: "sh-1",
			Month:         6,
			Year:          2024,
			Amount:        dec(amount),
			CreatedBy:     "user-1",
		})
		require.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestListAdvances(t *testing.T) {
	f := newAdvanceFixture()

	for _, month := range []int{5, 6, 6} {
		_, err := f.uc.CreateAdvance(context.Background(), usecase.CreateAdvanceInput{
			LocationID:    "loc-1",
			ShareholderID: "sh-1",
			Month:         month,
			Year:          2024,
			Amount:        dec("100"),
			CreatedBy:     "user-1",
		})
		require.NoError(t, err)
	}

	advances, err := f.uc.ListAdvances(context.Background(), "loc-1", domain.Period{Month: 6, Year: 2024})
	require.NoError(t, err)
	require.Len(t, advances, 2)
}
