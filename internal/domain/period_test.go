package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPeriod_Validate(t *testing.T) {
	tests := []struct {
		name        string
		period      Period
		expectError bool
	}{
		{name: "valid", period: Period{Month: 6, Year: 2024}},
		{name: "month zero", period: Period{Month: 0, Year: 2024}, expectError: true},
		{name: "month thirteen", period: Period{Month: 13, Year: 2024}, expectError: true},
		{name: "year too small", period: Period{Month: 1, Year: 999}, expectError: true},
		{name: "year too large", period: Period{Month: 1, Year: 10000}, expectError: true},
		{name: "december boundary", period: Period{Month: 12, Year: 2024}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()

			if tt.expectError && !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("error = %v, want ErrInvalidPeriod", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPeriodFromDate(t *testing.T) {
	date := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	period := PeriodFromDate(date)

	if period.Month != 6 || period.Year != 2024 {
		t.Errorf("period = %v, want 6/2024", period)
	}
}

func TestPeriod_String(t *testing.T) {
	if got := (Period{Month: 6, Year: 2024}).String(); got != "6/2024" {
		t.Errorf("String() = %q, want %q", got, "6/2024")
	}
}
