package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
)

// ClosingUseCase runs the monthly closing: it locks a location's period,
// distributes the net profit among shareholders and persists the new
// running balances inside a single transaction.
type ClosingUseCase struct {
	txManager       TransactionManager
	retrier         Retrier
	guard           *PeriodGuard
	shareholderRepo ShareholderRepository
	closingRepo     ClosingRepository
	readingRepo     ReadingRepository
	expenseRepo     ExpenseRepository
	advanceRepo     AdvanceRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewClosingUseCase creates a new ClosingUseCase.
func NewClosingUseCase(
	txManager TransactionManager,
	retrier Retrier,
	guard *PeriodGuard,
	shareholderRepo ShareholderRepository,
	closingRepo ClosingRepository,
	readingRepo ReadingRepository,
	expenseRepo ExpenseRepository,
	advanceRepo AdvanceRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ClosingUseCase {
	return &ClosingUseCase{
		txManager:       txManager,
		retrier:         retrier,
		guard:           guard,
		shareholderRepo: shareholderRepo,
		closingRepo:     closingRepo,
		readingRepo:     readingRepo,
		expenseRepo:     expenseRepo,
		advanceRepo:     advanceRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         metrics,
		logger:          slog.Default(),
	}
}

// CloseMonthInput represents input for closing a month.
type CloseMonthInput struct {
	LocationID     string
	Month          int
	Year           int
	RetainedAmount decimal.Decimal
	ClosedBy       string

	// ExpectedNetProfit, when set, must match the net profit recomputed
	// inside the transaction. It rejects a closing issued against stale
	// numbers on screen.
	ExpectedNetProfit *decimal.Decimal
}

func (in CloseMonthInput) validate() error {
	if in.LocationID == "" {
		return domain.ErrMissingLocation
	}

	if in.ClosedBy == "" {
		return domain.ErrMissingUserID
	}

	if in.RetainedAmount.IsNegative() {
		return domain.ErrInvalidAmount
	}

	return domain.Period{Month: in.Month, Year: in.Year}.Validate()
}

// CloseMonth closes the period. Shareholder balances, the closing
// record with its settlements, and the audit entry all commit
// together or not at all. A second closing of the same period fails with
// PeriodClosedError: once on the fast pre-check, again on the in-
// transaction re-check, and as a last line on the closing table's unique
// (location, month, year) key.
func (uc *ClosingUseCase) CloseMonth(ctx context.Context, input CloseMonthInput) (*domain.ClosingRecord, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	period := domain.Period{Month: input.Month, Year: input.Year}
	start := time.Now()

	// Fail fast before opening a transaction.
	if err := uc.guard.EnsureOpenPeriod(ctx, input.LocationID, period); err != nil {
		uc.recordFailure("closing", err)
		return nil, err
	}

	var closing *domain.ClosingRecord

	err := uc.retrier.Retry(ctx, func() error {
		var attemptErr error

		closing, attemptErr = uc.closeAttempt(ctx, input, period)

		return attemptErr
	})
	if err != nil {
		uc.recordFailure("closing", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ClosingsCompleted.Inc()
		uc.metrics.ClosingDuration.Observe(time.Since(start).Seconds())
		uc.metrics.ClosingNetProfit.Observe(closing.TotalNetProfit.InexactFloat64())
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionClosingCreate), string(domain.AuditStatusSuccess)).Inc()
	}

	return closing, nil
}

func (uc *ClosingUseCase) recordFailure(operation string, err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.ClosingErrors.WithLabelValues(closingErrorType(err)).Inc()

	if errors.Is(err, domain.ErrPeriodClosed) {
		uc.metrics.GuardRejections.WithLabelValues(operation).Inc()
	}
}

func closingErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrPeriodClosed):
		return "period_closed"
	case errors.Is(err, domain.ErrNoShareholders):
		return "no_shareholders"
	case errors.Is(err, domain.ErrPercentageSumExceeded):
		return "percentage_sum"
	case errors.Is(err, domain.ErrInvalidDistribution):
		return "invalid_distribution"
	case errors.Is(err, domain.ErrStaleNetProfit):
		return "stale_net_profit"
	case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingLocation), errors.Is(err, domain.ErrMissingUserID):
		return "validation"
	default:
		return "internal"
	}
}

func (uc *ClosingUseCase) closeAttempt(ctx context.Context, input CloseMonthInput, period domain.Period) (*domain.ClosingRecord, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Re-check openness now that the transaction holds a snapshot.
	if err := uc.guard.EnsureOpenPeriodTx(ctx, tx, input.LocationID, period); err != nil {
		return nil, err
	}

	// Rows come back ordered by id, which keeps concurrent closings from
	// deadlocking on the same shareholder set.
	shareholders, err := uc.shareholderRepo.ListActiveByLocationForUpdate(ctx, tx, input.LocationID)
	if err != nil {
		return nil, err
	}

	if len(shareholders) == 0 {
		return nil, domain.ErrNoShareholders
	}

	if err := domain.ValidatePercentageSum(shareholders); err != nil {
		return nil, err
	}

	summary, err := uc.summarizeTx(ctx, tx, input.LocationID, period)
	if err != nil {
		return nil, err
	}

	if input.ExpectedNetProfit != nil && !input.ExpectedNetProfit.Equal(summary.NetProfit) {
		return nil, fmt.Errorf("%w: reviewed %s, current %s",
			domain.ErrStaleNetProfit, input.ExpectedNetProfit.String(), summary.NetProfit.String())
	}

	advances, err := uc.advanceRepo.SumByShareholderTx(ctx, tx, input.LocationID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}

	result, err := domain.ComputeDistribution(domain.DistributionInput{
		NetProfit:      summary.NetProfit,
		RetainedAmount: input.RetainedAmount,
		Shareholders:   distributionShares(shareholders, advances),
	})
	if err != nil {
		return nil, err
	}

	result.RoundForPersistence()

	if !result.UndistributedRemainder.IsZero() {
		uc.logger.Warn("closing leaves an undistributed remainder on working capital",
			"location_id", input.LocationID,
			"period", period.String(),
			"remainder", result.UndistributedRemainder.String(),
		)
	}

	now := time.Now().UTC()
	closingID := uc.idGen.Generate()

	for _, s := range result.Settlements {
		err = uc.shareholderRepo.UpdateBalance(ctx, tx, s.ShareholderID, s.NewAccumulatedBalance, closingID, now)
		if err != nil {
			return nil, err
		}
	}

	closing := &domain.ClosingRecord{
		ID:                closingID,
		LocationID:        input.LocationID,
		Month:             period.Month,
		Year:              period.Year,
		TotalNetProfit:    domain.RoundMoney(summary.NetProfit),
		RetainedAmount:    domain.RoundMoney(input.RetainedAmount),
		DistributedAmount: result.DistributableBase,
		Settlements:       result.Settlements,
		ClosedBy:          input.ClosedBy,
		CreatedAt:         now,
	}

	if err := uc.closingRepo.CreateTx(ctx, tx, closing); err != nil {
		return nil, err
	}

	// The audit entry is part of the atomic write, unlike the best-effort
	// audits on ordinary mutations.
	audit := &domain.AuditLog{
		UserID:       input.ClosedBy,
		Action:       string(domain.AuditActionClosingCreate),
		ResourceType: "closing",
		ResourceID:   closingID,
		Detail:       closingAuditDetail(closing),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return closing, nil
}

func (uc *ClosingUseCase) summarizeTx(ctx context.Context, tx Transaction, locationID string, period domain.Period) (*domain.PeriodSummary, error) {
	gross, commissions, err := uc.readingRepo.SummarizeByPeriodTx(ctx, tx, locationID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.SumByPeriodTx(ctx, tx, locationID, period.Month, period.Year)
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

	return summary, nil
}

func distributionShares(shareholders []*domain.Shareholder, advances map[string]decimal.Decimal) []domain.ShareholderShare {
	shares := make([]domain.ShareholderShare, 0, len(shareholders))
	for _, s := range shareholders {
		shares = append(shares, domain.ShareholderShare{
			ShareholderID:      s.ID,
			Name:               s.Name,
			Percentage:         s.Percentage,
			ParticipatesInLoss: s.ParticipatesInLoss,
			AccumulatedBalance: s.AccumulatedBalance,
			AdvancesForPeriod:  advances[s.ID],
		})
	}

	return shares
}

func closingAuditDetail(c *domain.ClosingRecord) string {
	return fmt.Sprintf("closed period %d/%d: net profit %s, retained %s, distributed %s across %d shareholders",
		c.Month, c.Year, c.TotalNetProfit.String(), c.RetainedAmount.String(),
		c.DistributedAmount.String(), len(c.Settlements))
}

// GetClosing retrieves a closing by ID.
func (uc *ClosingUseCase) GetClosing(ctx context.Context, id string) (*domain.ClosingRecord, error) {
	return uc.closingRepo.GetByID(ctx, id)
}

// GetClosingForPeriod retrieves the closing for a location period.
func (uc *ClosingUseCase) GetClosingForPeriod(ctx context.Context, locationID string, period domain.Period) (*domain.ClosingRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return uc.closingRepo.GetByPeriod(ctx, locationID, period.Month, period.Year)
}

// ListClosingsInput represents input for listing closings.
type ListClosingsInput struct {
	LocationID string
	Limit      int
	Offset     int
}

// ListClosings lists a location's closings, newest first.
func (uc *ClosingUseCase) ListClosings(ctx context.Context, input ListClosingsInput) ([]*domain.ClosingRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.closingRepo.ListByLocation(ctx, input.LocationID, limit, offset)
}

// PeriodStatus reports whether a period is open or closed.
func (uc *ClosingUseCase) PeriodStatus(ctx context.Context, locationID string, period domain.Period) (closed bool, err error) {
	if err := period.Validate(); err != nil {
		return false, err
	}

	return uc.closingRepo.ExistsForPeriod(ctx, locationID, period.Month, period.Year)
}
