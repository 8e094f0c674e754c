package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	adaptershttp "github.com/rotavend/fechamento/internal/adapter/http"
	"github.com/rotavend/fechamento/internal/adapter/http/handler"
	"github.com/rotavend/fechamento/internal/adapter/repository/postgres"
	redisrepo "github.com/rotavend/fechamento/internal/adapter/repository/redis"
	infraredis "github.com/rotavend/fechamento/internal/infrastructure/redis"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/tests/testutil"
)

// env wires the full stack against real Postgres and Redis, the way
// cmd/server does.
type env struct {
	db     *testutil.TestDB
	router http.Handler

	closingUC *usecase.ClosingUseCase
	summaryUC *usecase.SummaryUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	idGen := postgres.NewULIDGenerator()

	shareholderRepo := postgres.NewShareholderRepository(pool)
	closingRepo := postgres.NewClosingRepository(pool)
	readingRepo := postgres.NewReadingRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	advanceRepo := postgres.NewAdvanceRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	guard := usecase.NewPeriodGuard(closingRepo)
	summaryUC := usecase.NewSummaryUseCase(readingRepo, expenseRepo, redisrepo.NewCache(redisClient), time.Minute, nil)

	closingUC := usecase.NewClosingUseCase(
		postgres.NewTxManager(pool), postgres.NewRetrier(), guard,
		shareholderRepo, closingRepo, readingRepo, expenseRepo, advanceRepo, auditRepo,
		idGen, nil,
	)
	readingUC := usecase.NewReadingUseCase(readingRepo, guard, auditRepo, summaryUC, idGen, nil)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, guard, auditRepo, summaryUC, idGen, nil)
	advanceUC := usecase.NewAdvanceUseCase(advanceRepo, shareholderRepo, guard, auditRepo, idGen, nil)
	shareholderUC := usecase.NewShareholderUseCase(shareholderRepo, idGen)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ClosingHandler:     handler.NewClosingHandler(closingUC),
		ReadingHandler:     handler.NewReadingHandler(readingUC),
		ExpenseHandler:     handler.NewExpenseHandler(expenseUC),
		AdvanceHandler:     handler.NewAdvanceHandler(advanceUC),
		ShareholderHandler: handler.NewShareholderHandler(shareholderUC),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC),
		AuditHandler:       handler.NewAuditHandler(auditRepo),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:     time.Minute,
	})

	return &env{
		db:        testDB,
		router:    router,
		closingUC: closingUC,
		summaryUC: summaryUC,
	}
}
