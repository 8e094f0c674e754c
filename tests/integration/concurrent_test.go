package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
)

// TestConcurrentClosings fires parallel closings at one location period.
// Exactly one may win; the unique (location, month, year) key backstops
// the guard under races.
func TestConcurrentClosings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const loc = "loc-race"
	e.db.CreateTestShareholder(ctx, loc, "Partner A", decimal.NewFromInt(50), true)
	e.db.CreateTestShareholder(ctx, loc, "Partner B", decimal.NewFromInt(50), true)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	e.db.CreateTestReading(ctx, loc, "machine-1", date, 0, 1000, decimal.NewFromInt(1), decimal.NewFromInt(0))

	const workers = 8

	var wg sync.WaitGroup
	codes := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := postClosing(t, e, loc, dto.CloseMonthRequest{Month: 6, Year: 2024})
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}

	if created != 1 {
		t.Errorf("expected exactly 1 successful closing, got %d", created)
	}
	if conflicted != workers-1 {
		t.Errorf("expected %d conflicts, got %d", workers-1, conflicted)
	}

	// One closing row, one settlement set, balances written once.
	var closings int
	if err := e.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM closings WHERE location_id = $1`, loc).Scan(&closings); err != nil {
		t.Fatalf("failed to count closings: %v", err)
	}
	if closings != 1 {
		t.Errorf("expected 1 closing row, got %d", closings)
	}

	var totalStr string
	err := e.db.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(accumulated_balance), 0)::text FROM shareholders WHERE location_id = $1`, loc).Scan(&totalStr)
	if err != nil {
		t.Fatalf("failed to sum balances: %v", err)
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		t.Fatalf("failed to parse balance sum: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected distributed balances to sum to 1000, got %s", total)
	}
}
