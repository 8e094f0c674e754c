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

// ReadingUseCase handles meter reading mutations. Every mutation checks
// the period guard immediately before the write; readings dated inside a
// closed period are rejected before anything is persisted.
type ReadingUseCase struct {
	readingRepo ReadingRepository
	guard       *PeriodGuard
	auditRepo   AuditRepository
	summaries   SummaryInvalidator
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewReadingUseCase creates a new ReadingUseCase.
func NewReadingUseCase(
	readingRepo ReadingRepository,
	guard *PeriodGuard,
	auditRepo AuditRepository,
	summaries SummaryInvalidator,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ReadingUseCase {
	return &ReadingUseCase{
		readingRepo: readingRepo,
		guard:       guard,
		auditRepo:   auditRepo,
		summaries:   summaries,
		idGen:       idGen,
		metrics:     metrics,
		logger:      slog.Default(),
	}
}

// CreateReadingInput represents input for recording a meter reading.
type CreateReadingInput struct {
	LocationID      string
	MachineID       string
	ReadingDate     time.Time
	PreviousCounter int64
	CurrentCounter  int64
	UnitPrice       decimal.Decimal
	CommissionPct   decimal.Decimal
	CreatedBy       string
}

// CreateReading records a meter reading.
func (uc *ReadingUseCase) CreateReading(ctx context.Context, input CreateReadingInput) (*domain.MeterReading, error) {
	if input.LocationID == "" {
		return nil, domain.ErrMissingLocation
	}

	if input.CreatedBy == "" {
		return nil, domain.ErrMissingUserID
	}

	now := time.Now().UTC()
	reading := &domain.MeterReading{
		ID:              uc.idGen.Generate(),
		LocationID:      input.LocationID,
		MachineID:       input.MachineID,
		ReadingDate:     input.ReadingDate,
		PreviousCounter: input.PreviousCounter,
		CurrentCounter:  input.CurrentCounter,
		UnitPrice:       input.UnitPrice,
		CommissionPct:   input.CommissionPct,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := reading.Validate(); err != nil {
		return nil, err
	}

	reading.ComputeAmounts()

	// Guard check sits directly against the write to keep the race
	// window minimal.
	if err := uc.guard.EnsureOpen(ctx, input.LocationID, input.ReadingDate); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if err := uc.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReadingsRecorded.Inc()
	}

	uc.afterWrite(ctx, reading, input.CreatedBy, domain.AuditActionReadingCreate)

	return reading, nil
}

// UpdateReadingInput represents input for editing a meter reading.
type UpdateReadingInput struct {
	ID              string
	ReadingDate     time.Time
	PreviousCounter int64
	CurrentCounter  int64
	UnitPrice       decimal.Decimal
	CommissionPct   decimal.Decimal
	UpdatedBy       string
}

// UpdateReading edits a reading. Both the reading's current period and
// the new date's period must be open.
func (uc *ReadingUseCase) UpdateReading(ctx context.Context, input UpdateReadingInput) (*domain.MeterReading, error) {
	if input.UpdatedBy == "" {
		return nil, domain.ErrMissingUserID
	}

	reading, err := uc.readingRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	oldPeriod := reading.Period()

	reading.ReadingDate = input.ReadingDate
	reading.PreviousCounter = input.PreviousCounter
	reading.CurrentCounter = input.CurrentCounter
	reading.UnitPrice = input.UnitPrice
	reading.CommissionPct = input.CommissionPct
	reading.UpdatedAt = time.Now().UTC()

	if err := reading.Validate(); err != nil {
		return nil, err
	}

	reading.ComputeAmounts()

	if err := uc.guard.EnsureOpenPeriod(ctx, reading.LocationID, oldPeriod); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if newPeriod := reading.Period(); newPeriod != oldPeriod {
		if err := uc.guard.EnsureOpenPeriod(ctx, reading.LocationID, newPeriod); err != nil {
			uc.recordRejection(err)
			return nil, err
		}
	}

	if err := uc.readingRepo.Update(ctx, reading); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, reading, input.UpdatedBy, domain.AuditActionReadingUpdate)
	uc.invalidateSummary(ctx, reading.LocationID, oldPeriod)

	return reading, nil
}

// DeleteReading soft-deletes a reading.
func (uc *ReadingUseCase) DeleteReading(ctx context.Context, id, userID string) error {
	if userID == "" {
		return domain.ErrMissingUserID
	}

	reading, err := uc.readingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.guard.EnsureOpenPeriod(ctx, reading.LocationID, reading.Period()); err != nil {
		uc.recordRejection(err)
		return err
	}

	if err := uc.readingRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	uc.afterWrite(ctx, reading, userID, domain.AuditActionReadingDelete)

	return nil
}

// ListReadingsInput represents input for listing readings.
type ListReadingsInput struct {
	LocationID string
	Month      int
	Year       int
	Limit      int
	Offset     int
}

// ListReadings lists a location's readings for a period.
func (uc *ReadingUseCase) ListReadings(ctx context.Context, input ListReadingsInput) ([]*domain.MeterReading, error) {
	period := domain.Period{Month: input.Month, Year: input.Year}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.readingRepo.ListByPeriod(ctx, input.LocationID, input.Month, input.Year, limit, offset)
}

// afterWrite records the best-effort audit entry and drops the cached
// summary. Neither failure blocks the primary operation.
func (uc *ReadingUseCase) afterWrite(ctx context.Context, reading *domain.MeterReading, userID string, action domain.AuditAction) {
	audit := &domain.AuditLog{
		UserID:       userID,
		Action:       string(action),
		ResourceType: "meter_reading",
		ResourceID:   reading.ID,
		Detail:       "machine " + reading.MachineID + ", gross " + reading.GrossAmount.String(),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn("audit write failed", "action", action, "resource_id", reading.ID, "error", err)
	} else if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(audit.Action, audit.Status).Inc()
	}

	uc.invalidateSummary(ctx, reading.LocationID, reading.Period())
}

func (uc *ReadingUseCase) recordRejection(err error) {
	if uc.metrics != nil && errors.Is(err, domain.ErrPeriodClosed) {
		uc.metrics.GuardRejections.WithLabelValues("reading").Inc()
	}
}

func (uc *ReadingUseCase) invalidateSummary(ctx context.Context, locationID string, period domain.Period) {
	if uc.summaries == nil {
		return
	}

	if err := uc.summaries.Invalidate(ctx, locationID, period); err != nil {
		uc.logger.Warn("summary cache invalidation failed",
			"location_id", locationID, "period", period.String(), "error", err)
	}
}
