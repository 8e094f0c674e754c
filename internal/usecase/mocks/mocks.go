package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavend/fechamento/internal/domain"
	"github.com/rotavend/fechamento/internal/usecase"
)

// MockShareholderRepository is a mock implementation of ShareholderRepository.
type MockShareholderRepository struct {
	mu           sync.RWMutex
	shareholders map[string]*domain.Shareholder

	CreateFunc                        func(ctx context.Context, shareholder *domain.Shareholder) error
	GetByIDFunc                       func(ctx context.Context, id string) (*domain.Shareholder, error)
	ListByLocationFunc                func(ctx context.Context, locationID string, limit, offset int) ([]*domain.Shareholder, error)
	ListActiveByLocationFunc          func(ctx context.Context, locationID string) ([]*domain.Shareholder, error)
	ListActiveByLocationForUpdateFunc func(ctx context.Context, tx usecase.Transaction, locationID string) ([]*domain.Shareholder, error)
	UpdateBalanceFunc                 func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, closingID string, updatedAt time.Time) error
}

func NewMockShareholderRepository() *MockShareholderRepository {
	return &MockShareholderRepository{
		shareholders: make(map[string]*domain.Shareholder),
	}
}

// Seed stores a shareholder directly, bypassing any override.
func (m *MockShareholderRepository) Seed(shareholders ...*domain.Shareholder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range shareholders {
		m.shareholders[s.ID] = s
	}
}

func (m *MockShareholderRepository) Create(ctx context.Context, shareholder *domain.Shareholder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, shareholder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shareholders[shareholder.ID] = shareholder
	return nil
}

func (m *MockShareholderRepository) GetByID(ctx context.Context, id string) (*domain.Shareholder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.shareholders[id]; ok {
		return s, nil
	}
	return nil, domain.ErrShareholderNotFound
}

func (m *MockShareholderRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.Shareholder, error) {
	if m.ListByLocationFunc != nil {
		return m.ListByLocationFunc(ctx, locationID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Shareholder
	for _, s := range m.shareholders {
		if s.LocationID == locationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockShareholderRepository) ListActiveByLocation(ctx context.Context, locationID string) ([]*domain.Shareholder, error) {
	if m.ListActiveByLocationFunc != nil {
		return m.ListActiveByLocationFunc(ctx, locationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Shareholder
	for _, s := range m.shareholders {
		if s.LocationID == locationID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockShareholderRepository) ListActiveByLocationForUpdate(ctx context.Context, tx usecase.Transaction, locationID string) ([]*domain.Shareholder, error) {
	if m.ListActiveByLocationForUpdateFunc != nil {
		return m.ListActiveByLocationForUpdateFunc(ctx, tx, locationID)
	}
	return m.ListActiveByLocation(ctx, locationID)
}

func (m *MockShareholderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, closingID string, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, closingID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.shareholders[id]; ok {
		s.AccumulatedBalance = balance
		s.LastClosingID = &closingID
		s.Version++
		s.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrShareholderNotFound
}

// MockClosingRepository is a mock implementation of ClosingRepository.
type MockClosingRepository struct {
	mu       sync.RWMutex
	closings map[string]*domain.ClosingRecord

	ExistsForPeriodFunc   func(ctx context.Context, locationID string, month, year int) (bool, error)
	ExistsForPeriodTxFunc func(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (bool, error)
	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, closing *domain.ClosingRecord) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.ClosingRecord, error)
	GetByPeriodFunc       func(ctx context.Context, locationID string, month, year int) (*domain.ClosingRecord, error)
	ListByLocationFunc    func(ctx context.Context, locationID string, limit, offset int) ([]*domain.ClosingRecord, error)
}

func NewMockClosingRepository() *MockClosingRepository {
	return &MockClosingRepository{
		closings: make(map[string]*domain.ClosingRecord),
	}
}

func (m *MockClosingRepository) periodKey(locationID string, month, year int) string {
	return fmt.Sprintf("%s:%d:%d", locationID, month, year)
}

func (m *MockClosingRepository) ExistsForPeriod(ctx context.Context, locationID string, month, year int) (bool, error) {
	if m.ExistsForPeriodFunc != nil {
		return m.ExistsForPeriodFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.closings {
		if c.LocationID == locationID && c.Month == month && c.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockClosingRepository) ExistsForPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (bool, error) {
	if m.ExistsForPeriodTxFunc != nil {
		return m.ExistsForPeriodTxFunc(ctx, tx, locationID, month, year)
	}
	return m.ExistsForPeriod(ctx, locationID, month, year)
}

func (m *MockClosingRepository) CreateTx(ctx context.Context, tx usecase.Transaction, closing *domain.ClosingRecord) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, closing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.closings {
		if c.LocationID == closing.LocationID && c.Month == closing.Month && c.Year == closing.Year {
			return &domain.PeriodClosedError{LocationID: closing.LocationID, Month: closing.Month, Year: closing.Year}
		}
	}
	m.closings[closing.ID] = closing
	return nil
}

func (m *MockClosingRepository) GetByID(ctx context.Context, id string) (*domain.ClosingRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.closings[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClosingNotFound
}

func (m *MockClosingRepository) GetByPeriod(ctx context.Context, locationID string, month, year int) (*domain.ClosingRecord, error) {
	if m.GetByPeriodFunc != nil {
		return m.GetByPeriodFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.closings {
		if c.LocationID == locationID && c.Month == month && c.Year == year {
			return c, nil
		}
	}
	return nil, domain.ErrClosingNotFound
}

func (m *MockClosingRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*domain.ClosingRecord, error) {
	if m.ListByLocationFunc != nil {
		return m.ListByLocationFunc(ctx, locationID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ClosingRecord
	for _, c := range m.closings {
		if c.LocationID == locationID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockReadingRepository is a mock implementation of ReadingRepository.
type MockReadingRepository struct {
	mu       sync.RWMutex
	readings map[string]*domain.MeterReading

	CreateFunc              func(ctx context.Context, reading *domain.MeterReading) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.MeterReading, error)
	UpdateFunc              func(ctx context.Context, reading *domain.MeterReading) error
	SoftDeleteFunc          func(ctx context.Context, id string, updatedAt time.Time) error
	ListByPeriodFunc        func(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.MeterReading, error)
	SummarizeByPeriodFunc   func(ctx context.Context, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error)
	SummarizeByPeriodTxFunc func(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockReadingRepository() *MockReadingRepository {
	return &MockReadingRepository{
		readings: make(map[string]*domain.MeterReading),
	}
}

func (m *MockReadingRepository) Seed(readings ...*domain.MeterReading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range readings {
		m.readings[r.ID] = r
	}
}

func (m *MockReadingRepository) Create(ctx context.Context, reading *domain.MeterReading) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reading)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings[reading.ID] = reading
	return nil
}

func (m *MockReadingRepository) GetByID(ctx context.Context, id string) (*domain.MeterReading, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.readings[id]; ok && !r.Deleted {
		return r, nil
	}
	return nil, domain.ErrReadingNotFound
}

func (m *MockReadingRepository) Update(ctx context.Context, reading *domain.MeterReading) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reading)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.readings[reading.ID]; !ok {
		return domain.ErrReadingNotFound
	}
	m.readings[reading.ID] = reading
	return nil
}

func (m *MockReadingRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.readings[id]; ok {
		r.Deleted = true
		r.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrReadingNotFound
}

func (m *MockReadingRepository) ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.MeterReading, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, locationID, month, year, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.MeterReading
	for _, r := range m.readings {
		p := r.Period()
		if r.LocationID == locationID && p.Month == month && p.Year == year && !r.Deleted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockReadingRepository) SummarizeByPeriod(ctx context.Context, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	if m.SummarizeByPeriodFunc != nil {
		return m.SummarizeByPeriodFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	gross, commissions := decimal.Zero, decimal.Zero
	for _, r := range m.readings {
		p := r.Period()
		if r.LocationID == locationID && p.Month == month && p.Year == year && !r.Deleted {
			gross = gross.Add(r.GrossAmount)
			commissions = commissions.Add(r.CommissionAmount)
		}
	}
	return gross, commissions, nil
}

func (m *MockReadingRepository) SummarizeByPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	if m.SummarizeByPeriodTxFunc != nil {
		return m.SummarizeByPeriodTxFunc(ctx, tx, locationID, month, year)
	}
	return m.SummarizeByPeriod(ctx, locationID, month, year)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc        func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Expense, error)
	UpdateFunc        func(ctx context.Context, expense *domain.Expense) error
	SoftDeleteFunc    func(ctx context.Context, id string, updatedAt time.Time) error
	ListByPeriodFunc  func(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.Expense, error)
	SumByPeriodFunc   func(ctx context.Context, locationID string, month, year int) (decimal.Decimal, error)
	SumByPeriodTxFunc func(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

func (m *MockExpenseRepository) Seed(expenses ...*domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range expenses {
		m.expenses[e.ID] = e
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok && !e.Deleted {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		e.Deleted = true
		e.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) ListByPeriod(ctx context.Context, locationID string, month, year, limit, offset int) ([]*domain.Expense, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, locationID, month, year, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Expense
	for _, e := range m.expenses {
		p := e.Period()
		if e.LocationID == locationID && p.Month == month && p.Year == year && !e.Deleted {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockExpenseRepository) SumByPeriod(ctx context.Context, locationID string, month, year int) (decimal.Decimal, error) {
	if m.SumByPeriodFunc != nil {
		return m.SumByPeriodFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.expenses {
		p := e.Period()
		if e.LocationID == locationID && p.Month == month && p.Year == year && !e.Deleted {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (m *MockExpenseRepository) SumByPeriodTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (decimal.Decimal, error) {
	if m.SumByPeriodTxFunc != nil {
		return m.SumByPeriodTxFunc(ctx, tx, locationID, month, year)
	}
	return m.SumByPeriod(ctx, locationID, month, year)
}

// MockAdvanceRepository is a mock implementation of AdvanceRepository.
type MockAdvanceRepository struct {
	mu       sync.RWMutex
	advances map[string]*domain.Advance

	CreateFunc             func(ctx context.Context, advance *domain.Advance) error
	ListByPeriodFunc       func(ctx context.Context, locationID string, month, year int) ([]*domain.Advance, error)
	SumByShareholderFunc   func(ctx context.Context, locationID string, month, year int) (map[string]decimal.Decimal, error)
	SumByShareholderTxFunc func(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (map[string]decimal.Decimal, error)
}

func NewMockAdvanceRepository() *MockAdvanceRepository {
	return &MockAdvanceRepository{
		advances: make(map[string]*domain.Advance),
	}
}

func (m *MockAdvanceRepository) Seed(advances ...*domain.Advance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range advances {
		m.advances[a.ID] = a
	}
}

func (m *MockAdvanceRepository) Create(ctx context.Context, advance *domain.Advance) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, advance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances[advance.ID] = advance
	return nil
}

func (m *MockAdvanceRepository) ListByPeriod(ctx context.Context, locationID string, month, year int) ([]*domain.Advance, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Advance
	for _, a := range m.advances {
		if a.LocationID == locationID && a.Month == month && a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAdvanceRepository) SumByShareholder(ctx context.Context, locationID string, month, year int) (map[string]decimal.Decimal, error) {
	if m.SumByShareholderFunc != nil {
		return m.SumByShareholderFunc(ctx, locationID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[string]decimal.Decimal)
	for _, a := range m.advances {
		if a.LocationID == locationID && a.Month == month && a.Year == year {
			sums[a.ShareholderID] = sums[a.ShareholderID].Add(a.Amount)
		}
	}
	return sums, nil
}

func (m *MockAdvanceRepository) SumByShareholderTx(ctx context.Context, tx usecase.Transaction, locationID string, month, year int) (map[string]decimal.Decimal, error) {
	if m.SumByShareholderTxFunc != nil {
		return m.SumByShareholderTxFunc(ctx, tx, locationID, month, year)
	}
	return m.SumByShareholder(ctx, locationID, month, year)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc     func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...), nil
}

// Logs returns all recorded audit entries.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu    sync.Mutex
	Last  *MockTransaction
	Begun int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockRetrier is a pass-through Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockIdempotencyStore is an in-memory IdempotencyStore.
type MockIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte

	ReserveFunc func(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error)
	StoreFunc   func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{entries: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[key]; ok {
		return existing, false, nil
	}
	m.entries[key] = nil
	return nil, true, nil
}

func (m *MockIdempotencyStore) Store(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = response
	return nil
}
