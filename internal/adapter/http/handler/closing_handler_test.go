package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rotavend/fechamento/internal/adapter/http/dto"
	"github.com/rotavend/fechamento/internal/adapter/http/handler"
	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
	"github.com/rotavend/fechamento/internal/usecase/mocks"
)

type closingHandlerFixture struct {
	shareholders *mocks.MockShareholderRepository
	readings     *mocks.MockReadingRepository
	router       chi.Router
}

func newClosingHandlerFixture() *closingHandlerFixture {
	f := &closingHandlerFixture{
		shareholders: mocks.NewMockShareholderRepository(),
		readings:     mocks.NewMockReadingRepository(),
	}

	closings := mocks.NewMockClosingRepository()
	uc := usecase.NewClosingUseCase(
		mocks.NewMockTransactionManager(), mocks.NewMockRetrier(), usecase.NewPeriodGuard(closings),
		f.shareholders, closings, f.readings, mocks.NewMockExpenseRepository(),
		mocks.NewMockAdvanceRepository(), mocks.NewMockAuditRepository(),
		mocks.NewMockIDGenerator(), nil,
	)

	h := handler.NewClosingHandler(uc)

	f.router = chi.NewRouter()
	f.router.Route("/locations/{locationID}/closings", func(r chi.Router) {
		r.Post("/", h.Close)
		r.Get("/", h.List)
		r.Get("/status", h.Status)
		r.Get("/{month}/{year}", h.GetForPeriod)
	})

	return f
}

func (f *closingHandlerFixture) seedPeriodData(t *testing.T) {
	t.Helper()

	f.shareholders.Seed(&domain.Shareholder{
		ID:         "sh-1",
		LocationID: "loc-1",
		Name:       "Partner",
		Percentage: decimal.NewFromInt(100),
		Active:     true,
	})
	f.readings.Seed(&domain.MeterReading{
		ID:          "r-1",
		LocationID:  "loc-1",
		ReadingDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		GrossAmount: decimal.NewFromInt(1000),
	})
}

func (f *closingHandlerFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-User-ID", "user-1")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestClosingHandler_Close(t *testing.T) {
	f := newClosingHandlerFixture()
	f.seedPeriodData(t)

	rec := f.do(http.MethodPost, "/locations/loc-1/closings", dto.CloseMonthRequest{
		Month: 6, Year: 2024,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.ClosingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "loc-1", resp.LocationID)
	require.Equal(t, 6, resp.Month)
	require.Len(t, resp.Settlements, 1)
	require.True(t, resp.TotalNetProfit.Equal(decimal.NewFromInt(1000)))
}

func TestClosingHandler_CloseTwiceConflicts(t *testing.T) {
	f := newClosingHandlerFixture()
	f.seedPeriodData(t)

	body := dto.CloseMonthRequest{Month: 6, Year: 2024}

	rec := f.do(http.MethodPost, "/locations/loc-1/closings", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/locations/loc-1/closings", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.NotEmpty(t, errResp.Error)
}

func TestClosingHandler_CloseBadBody(t *testing.T) {
	f := newClosingHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/locations/loc-1/closings", bytes.NewBufferString("{not json"))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClosingHandler_CloseMissingUser(t *testing.T) {
	f := newClosingHandlerFixture()
	f.seedPeriodData(t)

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(dto.CloseMonthRequest{Month: 6, Year: 2024})

	req := httptest.NewRequest(http.MethodPost, "/locations/loc-1/closings", &buf)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClosingHandler_CloseNoShareholders(t *testing.T) {
	f := newClosingHandlerFixture()

	rec := f.do(http.MethodPost, "/locations/loc-1/closings", dto.CloseMonthRequest{
		Month: 6, Year: 2024,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestClosingHandler_Status(t *testing.T) {
	f := newClosingHandlerFixture()
	f.seedPeriodData(t)

	rec := f.do(http.MethodGet, "/locations/loc-1/closings/status?month=6&year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status dto.PeriodStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.False(t, status.Closed)

	rec = f.do(http.MethodPost, "/locations/loc-1/closings", dto.CloseMonthRequest{Month: 6, Year: 2024})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodGet, "/locations/loc-1/closings/status?month=6&year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.Closed)
}

func TestClosingHandler_GetForPeriodNotFound(t *testing.T) {
	f := newClosingHandlerFixture()

	rec := f.do(http.MethodGet, "/locations/loc-1/closings/6/2024", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
