package domain

import "github.com/shopspring/decimal"

// PeriodSummary aggregates one location's financials for one period:
// gross sales and commissions from non-deleted meter readings, expenses
// from non-deleted expense records.
type PeriodSummary struct {
	LocationID       string
	Month            int
	Year             int
	GrossSales       decimal.Decimal
	TotalCommissions decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal
}

// ComputeNetProfit fills NetProfit from the other totals.
func (s *PeriodSummary) ComputeNetProfit() {
	s.NetProfit = s.GrossSales.Sub(s.TotalCommissions).Sub(s.TotalExpenses)
}
