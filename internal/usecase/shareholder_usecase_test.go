package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/internal/usecase/mocks"
)

func TestCreateShareholder(t *testing.T) {
	repo := mocks.NewMockShareholderRepository()
	uc := usecase.NewShareholderUseCase(repo, mocks.NewMockIDGenerator())

	s, err := uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		LocationID:         "loc-1",
		Name:               "Partner A",
		Percentage:         dec("60"),
		ParticipatesInLoss: true,
	})
	require.NoError(t, err)
	require.True(t, s.AccumulatedBalance.IsZero(), "opening balance must be zero")
	require.True(t, s.Active)
}

func TestCreateShareholder_PercentageSumCapped(t *testing.T) {
	repo := mocks.NewMockShareholderRepository()
	uc := usecase.NewShareholderUseCase(repo, mocks.NewMockIDGenerator())

	repo.Seed(&domain.Shareholder{
		ID: "sh-1", LocationID: "loc-1", Name: "Existing", Percentage: dec("70"), Active: true,
	})

	_, err := uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		LocationID: "loc-1",
		Name:       "Partner B",
		Percentage: dec("40"),
	})
	require.ErrorIs(t, err, domain.ErrPercentageSumExceeded)

	// Inactive shareholders do not count against the cap.
	repo.Seed(&domain.Shareholder{
		ID: "sh-2", LocationID: "loc-1", Name: "Former", Percentage: dec("90"), Active: false,
	})

	_, err = uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		LocationID: "loc-1",
		Name:       "Partner C",
		Percentage: dec("30"),
	})
	require.NoError(t, err)
}

func TestCreateShareholder_Validation(t *testing.T) {
	uc := usecase.NewShareholderUseCase(mocks.NewMockShareholderRepository(), mocks.NewMockIDGenerator())

	_, err := uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		Name: "No Location", Percentage: dec("10"),
	})
	require.ErrorIs(t, err, domain.ErrMissingLocation)

	_, err = uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		LocationID: "loc-1", Name: " ", Percentage: dec("10"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = uc.CreateShareholder(context.Background(), usecase.CreateShareholderInput{
		LocationID: "loc-1", Name: "Partner", Percentage: dec("101"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPercentage)
}
