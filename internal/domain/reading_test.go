package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMeterReading_ComputeAmounts(t *testing.T) {
	reading := &MeterReading{
		PreviousCounter: 1000,
		CurrentCounter:  1500,
		UnitPrice:       dec("2"),
		CommissionPct:   dec("10"),
	}

	reading.ComputeAmounts()

	if !reading.GrossAmount.Equal(dec("1000")) {
		t.Errorf("gross = %s, want 1000", reading.GrossAmount)
	}

	if !reading.CommissionAmount.Equal(dec("100")) {
		t.Errorf("commission = %s, want 100", reading.CommissionAmount)
	}

	if !reading.NetAmount.Equal(dec("900")) {
		t.Errorf("net = %s, want 900", reading.NetAmount)
	}
}

func TestMeterReading_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reading MeterReading
		wantErr error
	}{
		{
			name:    "valid",
			reading: MeterReading{PreviousCounter: 100, CurrentCounter: 200, UnitPrice: dec("1"), CommissionPct: dec("10")},
		},
		{
			name:    "counter regression",
			reading: MeterReading{PreviousCounter: 200, CurrentCounter: 100, UnitPrice: dec("1")},
			wantErr: ErrCounterRegression,
		},
		{
			name:    "equal counters are a zero sweep",
			reading: MeterReading{PreviousCounter: 100, CurrentCounter: 100, UnitPrice: dec("1")},
		},
		{
			name:    "negative unit price",
			reading: MeterReading{PreviousCounter: 0, CurrentCounter: 10, UnitPrice: dec("-1")},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "commission above 100",
			reading: MeterReading{PreviousCounter: 0, CurrentCounter: 10, UnitPrice: dec("1"), CommissionPct: dec("101")},
			wantErr: ErrInvalidPercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePercentageSum(t *testing.T) {
	active := func(pct string) *Shareholder {
		return &Shareholder{Percentage: dec(pct), Active: true}
	}

	if err := ValidatePercentageSum([]*Shareholder{active("60"), active("40")}); err != nil {
		t.Errorf("sum of exactly 100: unexpected error %v", err)
	}

	err := ValidatePercentageSum([]*Shareholder{active("70"), active("40")})
	if !errors.Is(err, ErrPercentageSumExceeded) {
		t.Errorf("error = %v, want ErrPercentageSumExceeded", err)
	}

	// Inactive shareholders do not count against the cap.
	inactive := &Shareholder{Percentage: dec("50"), Active: false}
	if err := ValidatePercentageSum([]*Shareholder{active("80"), inactive}); err != nil {
		t.Errorf("inactive excluded: unexpected error %v", err)
	}
}

func TestRoundMoney(t *testing.T) {
	if got := RoundMoney(decimal.RequireFromString("10.005")); !got.Equal(dec("10.01")) {
		t.Errorf("RoundMoney(10.005) = %s, want 10.01", got)
	}
}
