package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
)

func postClosing(t *testing.T, e *env, locationID string, req dto.CloseMonthRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/locations/"+locationID+"/closings", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-User-ID", "integration-test")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)

	return w
}

func TestMonthlyClosing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const loc = "loc-close"
	a := e.db.CreateTestShareholder(ctx, loc, "Partner A", decimal.NewFromInt(60), true)
	b := e.db.CreateTestShareholder(ctx, loc, "Partner B", decimal.NewFromInt(40), true)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	e.db.CreateTestReading(ctx, loc, "machine-1", date, 0, 650, decimal.NewFromInt(2), decimal.NewFromInt(0))
	e.db.CreateTestExpense(ctx, loc, date, decimal.NewFromInt(100))
	e.db.CreateTestAdvance(ctx, loc, a.ID, 6, 2024, decimal.NewFromInt(50))

	w := postClosing(t, e, loc, dto.CloseMonthRequest{
		Month:          6,
		Year:           2024,
		RetainedAmount: decimal.NewFromInt(200),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.ClosingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// 1300 gross - 100 expenses = 1200 net; base 1000: 600 / 400.
	if !resp.TotalNetProfit.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected net profit 1200, got %s", resp.TotalNetProfit)
	}
	if len(resp.Settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(resp.Settlements))
	}

	final := map[string]decimal.Decimal{}
	for _, s := range resp.Settlements {
		final[s.ShareholderID] = s.FinalAmount
	}
	if !final[a.ID].Equal(decimal.NewFromInt(550)) {
		t.Errorf("expected final 550 for A (600 share - 50 advance), got %s", final[a.ID])
	}
	if !final[b.ID].Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected final 400 for B, got %s", final[b.ID])
	}

	// Balances carried into the shareholders table.
	var balanceStr string
	err := e.db.Pool.QueryRow(ctx, `SELECT accumulated_balance::text FROM shareholders WHERE id = $1`, a.ID).Scan(&balanceStr)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		t.Fatalf("failed to parse balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(550)) {
		t.Errorf("expected persisted balance 550, got %s", balance)
	}

	// The audit entry committed with the closing.
	var auditCount int
	err = e.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE action = 'closing.create' AND resource_id = $1`, resp.ID).Scan(&auditCount)
	if err != nil {
		t.Fatalf("failed to count audit logs: %v", err)
	}
	if auditCount != 1 {
		t.Errorf("expected 1 audit log, got %d", auditCount)
	}
}

func TestClosingLocksThePeriod(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const loc = "loc-lock"
	e.db.CreateTestShareholder(ctx, loc, "Sole Partner", decimal.NewFromInt(100), true)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	e.db.CreateTestReading(ctx, loc, "machine-1", date, 0, 100, decimal.NewFromInt(1), decimal.NewFromInt(0))

	w := postClosing(t, e, loc, dto.CloseMonthRequest{Month: 6, Year: 2024})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Second closing of the same period conflicts.
	w = postClosing(t, e, loc, dto.CloseMonthRequest{Month: 6, Year: 2024})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on second closing, got %d: %s", w.Code, w.Body.String())
	}

	// A reading dated inside the closed period is rejected.
	body, _ := json.Marshal(dto.CreateReadingRequest{
		MachineID:      "machine-1",
		ReadingDate:    time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		CurrentCounter: 500,
		UnitPrice:      decimal.NewFromInt(1),
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/locations/"+loc+"/readings", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-User-ID", "integration-test")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for reading in closed period, got %d: %s", rec.Code, rec.Body.String())
	}

	// The next month stays open.
	w = postClosing(t, e, loc, dto.CloseMonthRequest{Month: 7, Year: 2024})
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201 for the next month, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLossMonthClosing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const loc = "loc-loss"
	shielded := e.db.CreateTestShareholder(ctx, loc, "Shielded", decimal.NewFromInt(40), false)
	exposed := e.db.CreateTestShareholder(ctx, loc, "Exposed", decimal.NewFromInt(60), true)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	e.db.CreateTestReading(ctx, loc, "machine-1", date, 0, 100, decimal.NewFromInt(1), decimal.NewFromInt(0))
	e.db.CreateTestExpense(ctx, loc, date, decimal.NewFromInt(600))

	w := postClosing(t, e, loc, dto.CloseMonthRequest{Month: 6, Year: 2024})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a loss month, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.ClosingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Net profit -500: the shielded partner takes nothing, the exposed
	// partner carries 60% of the loss.
	shares := map[string]decimal.Decimal{}
	for _, s := range resp.Settlements {
		shares[s.ShareholderID] = s.PeriodShare
	}
	if !shares[shielded.ID].IsZero() {
		t.Errorf("expected zero share for shielded partner, got %s", shares[shielded.ID])
	}
	if !shares[exposed.ID].Equal(decimal.NewFromInt(-300)) {
		t.Errorf("expected -300 for exposed partner, got %s", shares[exposed.ID])
	}
}

func TestStaleNetProfitRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const loc = "loc-stale"
	e.db.CreateTestShareholder(ctx, loc, "Sole Partner", decimal.NewFromInt(100), true)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	e.db.CreateTestReading(ctx, loc, "machine-1", date, 0, 1000, decimal.NewFromInt(1), decimal.NewFromInt(0))

	reviewed := decimal.NewFromInt(900)
	w := postClosing(t, e, loc, dto.CloseMonthRequest{
		Month:             6,
		Year:              2024,
		ExpectedNetProfit: &reviewed,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for stale net profit, got %d: %s", w.Code, w.Body.String())
	}
}
