package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
)

// ShareholderUseCase exposes shareholder reads and creation. Balances are
// never written here: the closing transaction is the only mutation path
// for accumulated balances.
type ShareholderUseCase struct {
	shareholderRepo ShareholderRepository
	idGen           IDGenerator
}

// NewShareholderUseCase creates a new ShareholderUseCase.
func NewShareholderUseCase(shareholderRepo ShareholderRepository, idGen IDGenerator) *ShareholderUseCase {
	return &ShareholderUseCase{
		shareholderRepo: shareholderRepo,
		idGen:           idGen,
	}
}

// CreateShareholderInput represents input for creating a shareholder.
type CreateShareholderInput struct {
	LocationID         string
	Name               string
	Percentage         decimal.Decimal
	ParticipatesInLoss bool
}

// CreateShareholder creates a shareholder with a zero opening balance.
// The location's active percentages, including the new one, must stay
// within 100.
func (uc *ShareholderUseCase) CreateShareholder(ctx context.Context, input CreateShareholderInput) (*domain.Shareholder, error) {
	if input.LocationID == "" {
		return nil, domain.ErrMissingLocation
	}

	now := time.Now().UTC()
	shareholder := &domain.Shareholder{
		ID:                 uc.idGen.Generate(),
		LocationID:         input.LocationID,
		Name:               input.Name,
		Percentage:         input.Percentage,
		ParticipatesInLoss: input.ParticipatesInLoss,
		AccumulatedBalance: decimal.Zero,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := shareholder.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.shareholderRepo.ListActiveByLocation(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePercentageSum(append(existing, shareholder)); err != nil {
		return nil, err
	}

	if err := uc.shareholderRepo.Create(ctx, shareholder); err != nil {
		return nil, err
	}

	return shareholder, nil
}

// GetShareholder retrieves a shareholder by ID. This is the single read
// accessor for balances.
func (uc *ShareholderUseCase) GetShareholder(ctx context.Context, id string) (*domain.Shareholder, error) {
	return uc.shareholderRepo.GetByID(ctx, id)
}

// ListShareholdersInput represents input for listing shareholders.
type ListShareholdersInput struct {
	LocationID string
	Limit      int
	Offset     int
}

// ListShareholders lists a location's shareholders.
func (uc *ShareholderUseCase) ListShareholders(ctx context.Context, input ListShareholdersInput) ([]*domain.Shareholder, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.shareholderRepo.ListByLocation(ctx, input.LocationID, limit, offset)
}
