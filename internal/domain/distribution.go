package domain

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ShareholderShare is one shareholder's input to the distribution engine.
// AdvancesForPeriod is the sum of that shareholder's cash advances inside
// the period being closed, fetched by the caller.
type ShareholderShare struct {
	ShareholderID      string
	Name               string
	Percentage         decimal.Decimal
	ParticipatesInLoss bool
	AccumulatedBalance decimal.Decimal
	AdvancesForPeriod  decimal.Decimal
}

// DistributionInput is the full input to ComputeDistribution.
type DistributionInput struct {
	NetProfit      decimal.Decimal
	RetainedAmount decimal.Decimal
	Shareholders   []ShareholderShare
}

// DistributionResult carries the per-shareholder settlements plus the
// aggregates the closing record persists. UndistributedRemainder is the
// part of the base no settlement claims: unallocated percentage, or a
// negative base absorbed by loss-shielded shareholders. It stays on the
// location's working capital and is surfaced, not clamped.
type DistributionResult struct {
	DistributableBase      decimal.Decimal
	Settlements            []SettlementDetail
	UndistributedRemainder decimal.Decimal
}

// ComputeDistribution splits a period's distributable base across
// shareholders. Pure function, no I/O.
//
// For each shareholder:
//
//	rawShare   = base * percentage / 100 (zero when base < 0 and the
//	             shareholder opted out of loss participation)
//	final      = rawShare + accumulatedBalance - advancesForPeriod
//	newBalance = final
//
// The new balance intentionally equals the final amount: balances are a
// perpetual current account, and a positive settlement carries forward
// rather than being zeroed as paid.
func ComputeDistribution(in DistributionInput) (*DistributionResult, error) {
	if len(in.Shareholders) == 0 {
		return nil, ErrNoShareholders
	}

	// A loss month with zero retention is valid; only an actual positive
	// retention can exceed the net profit.
	if in.RetainedAmount.IsPositive() && in.RetainedAmount.GreaterThan(in.NetProfit) {
		return nil, &InvalidDistributionError{
			RetainedAmount: in.RetainedAmount,
			NetProfit:      in.NetProfit,
		}
	}

	pctSum := decimal.Zero
	for _, s := range in.Shareholders {
		if s.Percentage.IsNegative() || s.Percentage.GreaterThan(oneHundred) {
			return nil, ErrInvalidPercentage
		}

		pctSum = pctSum.Add(s.Percentage)
	}

	if pctSum.GreaterThan(oneHundred) {
		return nil, ErrPercentageSumExceeded
	}

	base := in.NetProfit.Sub(in.RetainedAmount)
	shielded := base.IsNegative()

	result := &DistributionResult{
		DistributableBase: base,
		Settlements:       make([]SettlementDetail, 0, len(in.Shareholders)),
	}

	distributed := decimal.Zero
	for _, s := range in.Shareholders {
		rawShare := base.Mul(s.Percentage).Div(oneHundred)
		if shielded && !s.ParticipatesInLoss {
			rawShare = decimal.Zero
		}

		finalAmount := rawShare.Add(s.AccumulatedBalance).Sub(s.AdvancesForPeriod)

		result.Settlements = append(result.Settlements, SettlementDetail{
			ShareholderID:         s.ShareholderID,
			ShareholderName:       s.Name,
			PeriodShare:           rawShare,
			PriorBalance:          s.AccumulatedBalance,
			AdvancesDeducted:      s.AdvancesForPeriod,
			FinalAmount:           finalAmount,
			NewAccumulatedBalance: finalAmount,
		})

		distributed = distributed.Add(rawShare)
	}

	result.UndistributedRemainder = base.Sub(distributed)

	return result, nil
}

// RoundForPersistence rounds every settlement to the persisted money
// scale. Shares are rounded first and the dependent amounts recomputed
// from the rounded values, so the stored balance-continuity identity
// (final = share + prior - advances, newBalance = final) holds exactly
// after rounding. Intermediate math before this call keeps full
// precision.
func (r *DistributionResult) RoundForPersistence() {
	distributed := decimal.Zero

	for i := range r.Settlements {
		s := &r.Settlements[i]

		s.PeriodShare = RoundMoney(s.PeriodShare)
		s.PriorBalance = RoundMoney(s.PriorBalance)
		s.AdvancesDeducted = RoundMoney(s.AdvancesDeducted)
		s.FinalAmount = s.PeriodShare.Add(s.PriorBalance).Sub(s.AdvancesDeducted)
		s.NewAccumulatedBalance = s.FinalAmount

		distributed = distributed.Add(s.PeriodShare)
	}

	r.DistributableBase = RoundMoney(r.DistributableBase)
	r.UndistributedRemainder = r.DistributableBase.Sub(distributed)
}
