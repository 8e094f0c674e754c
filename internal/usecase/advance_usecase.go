package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
)

// AdvanceUseCase handles cash advances against future settlements.
// Advances are period-dated financial records, so creating one inside a
// closed period is rejected the same way readings and expenses are.
type AdvanceUseCase struct {
	advanceRepo     AdvanceRepository
	shareholderRepo ShareholderRepository
	guard           *PeriodGuard
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewAdvanceUseCase creates a new AdvanceUseCase.
func NewAdvanceUseCase(
	advanceRepo AdvanceRepository,
	shareholderRepo ShareholderRepository,
	guard *PeriodGuard,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AdvanceUseCase {
	return &AdvanceUseCase{
		advanceRepo:     advanceRepo,
		shareholderRepo: shareholderRepo,
		guard:           guard,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         metrics,
		logger:          slog.Default(),
	}
}

// CreateAdvanceInput represents input for recording an advance.
type CreateAdvanceInput struct {
	LocationID    string
	ShareholderID string
	Month         int
	Year          int
	Amount        decimal.Decimal
	Note          string
	CreatedBy     string
}

// CreateAdvance records a cash advance for a shareholder.
func (uc *AdvanceUseCase) CreateAdvance(ctx context.Context, input CreateAdvanceInput) (*domain.Advance, error) {
	if input.LocationID == "" {
		return nil, domain.ErrMissingLocation
	}

	if input.CreatedBy == "" {
		return nil, domain.ErrMissingUserID
	}

	shareholder, err := uc.shareholderRepo.GetByID(ctx, input.ShareholderID)
	if err != nil {
		return nil, err
	}

	advance := &domain.Advance{
		ID:            uc.idGen.Generate(),
		LocationID:    input.LocationID,
		ShareholderID: shareholder.ID,
		Month:         input.Month,
		Year:          input.Year,
		Amount:        domain.RoundMoney(input.Amount),
		Note:          input.Note,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     time.Now().UTC(),
	}

	if err := advance.Validate(); err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpenPeriod(ctx, input.LocationID, advance.Period()); err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrPeriodClosed) {
			uc.metrics.GuardRejections.WithLabelValues("advance").Inc()
		}
		return nil, err
	}

	if err := uc.advanceRepo.Create(ctx, advance); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AdvancesRecorded.Inc()
	}

	audit := &domain.AuditLog{
		UserID:       input.CreatedBy,
		Action:       string(domain.AuditActionAdvanceCreate),
		ResourceType: "advance",
		ResourceID:   advance.ID,
		Detail:       shareholder.Name + ": " + advance.Amount.String() + " against " + advance.Period().String(),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn("audit write failed", "action", audit.Action, "resource_id", advance.ID, "error", err)
	} else if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(audit.Action, audit.Status).Inc()
	}

	return advance, nil
}

// ListAdvances lists a location's advances for a period.
func (uc *AdvanceUseCase) ListAdvances(ctx context.Context, locationID string, period domain.Period) ([]*domain.Advance, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return uc.advanceRepo.ListByPeriod(ctx, locationID, period.Month, period.Year)
}

// SumByShareholder returns each shareholder's advance total for a period.
func (uc *AdvanceUseCase) SumByShareholder(ctx context.Context, locationID string, period domain.Period) (map[string]decimal.Decimal, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return uc.advanceRepo.SumByShareholder(ctx, locationID, period.Month, period.Year)
}
