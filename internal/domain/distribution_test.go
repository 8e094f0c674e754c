package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeDistribution_ProfitSplit(t *testing.T) {
	result, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("1000"),
		RetainedAmount: dec("200"),
		Shareholders: []ShareholderShare{
			{ShareholderID: "a", Name: "Ana", Percentage: dec("60"), ParticipatesInLoss: true},
			{ShareholderID: "b", Name: "Bruno", Percentage: dec("40"), ParticipatesInLoss: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.DistributableBase.Equal(dec("800")) {
		t.Errorf("base = %s, want 800", result.DistributableBase)
	}

	wantShares := map[string]string{"a": "480", "b": "320"}
	for _, s := range result.Settlements {
		if !s.PeriodShare.Equal(dec(wantShares[s.ShareholderID])) {
			t.Errorf("share[%s] = %s, want %s", s.ShareholderID, s.PeriodShare, wantShares[s.ShareholderID])
		}
		if !s.FinalAmount.Equal(s.PeriodShare) {
			t.Errorf("final[%s] = %s, want %s with zero prior balance", s.ShareholderID, s.FinalAmount, s.PeriodShare)
		}
		if !s.NewAccumulatedBalance.Equal(s.FinalAmount) {
			t.Errorf("new balance must equal final amount, got %s and %s", s.NewAccumulatedBalance, s.FinalAmount)
		}
	}

	if !result.UndistributedRemainder.IsZero() {
		t.Errorf("remainder = %s, want 0", result.UndistributedRemainder)
	}
}

func TestComputeDistribution_LossShielding(t *testing.T) {
	// Base is -500. The shielded shareholder takes nothing; the
	// participating one absorbs its percentage of the loss.
	result, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("-500"),
		RetainedAmount: decimal.Zero,
		Shareholders: []ShareholderShare{
			{ShareholderID: "a", Percentage: dec("60"), ParticipatesInLoss: true},
			{ShareholderID: "b", Percentage: dec("40"), ParticipatesInLoss: false},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Settlements[0].PeriodShare.Equal(dec("-300")) {
		t.Errorf("participating share = %s, want -300", result.Settlements[0].PeriodShare)
	}

	if !result.Settlements[1].PeriodShare.IsZero() {
		t.Errorf("shielded share = %s, want 0", result.Settlements[1].PeriodShare)
	}

	// The shielded 40% of the loss stays on working capital.
	if !result.UndistributedRemainder.Equal(dec("-200")) {
		t.Errorf("remainder = %s, want -200", result.UndistributedRemainder)
	}
}

func TestComputeDistribution_PriorDebtAndAdvances(t *testing.T) {
	// share 200, prior balance -150, advances 50: the settlement nets to
	// exactly zero and the debt is cleared.
	result, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("400"),
		RetainedAmount: decimal.Zero,
		Shareholders: []ShareholderShare{
			{
				ShareholderID:      "a",
				Percentage:         dec("50"),
				ParticipatesInLoss: true,
				AccumulatedBalance: dec("-150"),
				AdvancesForPeriod:  dec("50"),
			},
			{ShareholderID: "b", Percentage: dec("50"), ParticipatesInLoss: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := result.Settlements[0]
	if !s.FinalAmount.IsZero() {
		t.Errorf("final = %s, want 0", s.FinalAmount)
	}
	if !s.NewAccumulatedBalance.IsZero() {
		t.Errorf("new balance = %s, want 0", s.NewAccumulatedBalance)
	}
}

func TestComputeDistribution_SumInvariant(t *testing.T) {
	// Shares plus remainder always reassemble the base.
	result, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("1000.01"),
		RetainedAmount: dec("123.45"),
		Shareholders: []ShareholderShare{
			{ShareholderID: "a", Percentage: dec("33.33"), ParticipatesInLoss: true},
			{ShareholderID: "b", Percentage: dec("33.33"), ParticipatesInLoss: true},
			{ShareholderID: "c", Percentage: dec("20"), ParticipatesInLoss: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := result.UndistributedRemainder
	for _, s := range result.Settlements {
		sum = sum.Add(s.PeriodShare)
	}

	if !sum.Equal(result.DistributableBase) {
		t.Errorf("shares + remainder = %s, want base %s", sum, result.DistributableBase)
	}
}

func TestComputeDistribution_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   DistributionInput
		wantErr error
	}{
		{
			name:    "no shareholders",
			input:   DistributionInput{NetProfit: dec("100")},
			wantErr: ErrNoShareholders,
		},
		{
			name: "retained exceeds net profit",
			input: DistributionInput{
				NetProfit:      dec("100"),
				RetainedAmount: dec("150"),
				Shareholders:   []ShareholderShare{{ShareholderID: "a", Percentage: dec("100")}},
			},
			wantErr: ErrInvalidDistribution,
		},
		{
			name: "negative percentage",
			input: DistributionInput{
				NetProfit:    dec("100"),
				Shareholders: []ShareholderShare{{ShareholderID: "a", Percentage: dec("-1")}},
			},
			wantErr: ErrInvalidPercentage,
		},
		{
			name: "percentages above 100",
			input: DistributionInput{
				NetProfit: dec("100"),
				Shareholders: []ShareholderShare{
					{ShareholderID: "a", Percentage: dec("70")},
					{ShareholderID: "b", Percentage: dec("40")},
				},
			},
			wantErr: ErrPercentageSumExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDistribution(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeDistribution_RetainedOnLossMonth(t *testing.T) {
	// Zero retention on a loss month is valid even though 0 > -500.
	_, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("-500"),
		RetainedAmount: decimal.Zero,
		Shareholders:   []ShareholderShare{{ShareholderID: "a", Percentage: dec("100"), ParticipatesInLoss: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A positive retention on a loss month is not.
	_, err = ComputeDistribution(DistributionInput{
		NetProfit:      dec("-500"),
		RetainedAmount: dec("10"),
		Shareholders:   []ShareholderShare{{ShareholderID: "a", Percentage: dec("100"), ParticipatesInLoss: true}},
	})
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("error = %v, want ErrInvalidDistribution", err)
	}
}

func TestRoundForPersistence_BalanceContinuity(t *testing.T) {
	result, err := ComputeDistribution(DistributionInput{
		NetProfit:      dec("100"),
		RetainedAmount: decimal.Zero,
		Shareholders: []ShareholderShare{
			{ShareholderID: "a", Percentage: dec("33.33"), ParticipatesInLoss: true, AccumulatedBalance: dec("10.005")},
			{ShareholderID: "b", Percentage: dec("66.67"), ParticipatesInLoss: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result.RoundForPersistence()

	for _, s := range result.Settlements {
		if s.PeriodShare.Exponent() < -2 {
			t.Errorf("share %s not rounded to money scale", s.PeriodShare)
		}

		want := s.PeriodShare.Add(s.PriorBalance).Sub(s.AdvancesDeducted)
		if !s.FinalAmount.Equal(want) {
			t.Errorf("final = %s, want %s after rounding", s.FinalAmount, want)
		}

		if !s.NewAccumulatedBalance.Equal(s.FinalAmount) {
			t.Errorf("new balance = %s, want final %s", s.NewAccumulatedBalance, s.FinalAmount)
		}
	}

	// The rounded remainder still reassembles the rounded base.
	sum := result.UndistributedRemainder
	for _, s := range result.Settlements {
		sum = sum.Add(s.PeriodShare)
	}
	if !sum.Equal(result.DistributableBase) {
		t.Errorf("rounded shares + remainder = %s, want base %s", sum, result.DistributableBase)
	}
}
