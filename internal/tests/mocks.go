package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu  sync.RWMutex
	txs []*domain.Transaction

	// Counters for verification
	CreateCallCount        int32
	ListCompletedCallCount int32

	// Error injection
	CreateError        error
	ListCompletedError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// AddTransaction seeds a transaction into the mock repository.
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
	return nil
}

func (m *MockTransactionRepository) ListCompleted(ctx context.Context, tripID, customerID string) ([]*domain.Transaction, error) {
	atomic.AddInt32(&m.ListCompletedCallCount, 1)
	if m.ListCompletedError != nil {
		return nil, m.ListCompletedError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for _, tx := range m.txs {
		if tx.TripID == tripID && tx.CustomerID == customerID && tx.Status == domain.TransactionStatusCompleted {
			copy := *tx
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountTransactions returns the number of stored transactions.
func (m *MockTransactionRepository) CountTransactions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}

// ──────────────────────────────────────────────
// MOCK ROLLING RECORD REPOSITORY
// ──────────────────────────────────────────────

// MockRollingRecordRepository is a mock implementation of RollingRecordRepository.
type MockRollingRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.RollingRecord

	// Counters
	CreateCallCount       int32
	MarkVerifiedCallCount int32

	// Error injection
	CreateError       error
	MarkVerifiedError error
	ListVerifiedError error
}

// NewMockRollingRecordRepository creates a new mock rolling record repository.
func NewMockRollingRecordRepository() *MockRollingRecordRepository {
	return &MockRollingRecordRepository{
		records: make(map[string]*domain.RollingRecord),
	}
}

// AddRecord seeds a rolling record into the mock repository.
func (m *MockRollingRecordRepository) AddRecord(rec *domain.RollingRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
}

func (m *MockRollingRecordRepository) Create(ctx context.Context, rec *domain.RollingRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return nil
}

func (m *MockRollingRecordRepository) GetByID(ctx context.Context, id string) (*domain.RollingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rec
	return &copy, nil
}

func (m *MockRollingRecordRepository) MarkVerified(ctx context.Context, id string) error {
	atomic.AddInt32(&m.MarkVerifiedCallCount, 1)
	if m.MarkVerifiedError != nil {
		return m.MarkVerifiedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Verified = true
	return nil
}

func (m *MockRollingRecordRepository) ListVerified(ctx context.Context, tripID, customerID string) ([]*domain.RollingRecord, error) {
	if m.ListVerifiedError != nil {
		return nil, m.ListVerifiedError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RollingRecord
	for _, rec := range m.records {
		if rec.TripID == tripID && rec.CustomerID == customerID && rec.Verified {
			copy := *rec
			result = append(result, &copy)
		}
	}
	return result, nil
}

// GetRecord returns a rolling record for test assertions.
func (m *MockRollingRecordRepository) GetRecord(id string) *domain.RollingRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[id]
}

// ──────────────────────────────────────────────
// MOCK EXPENSE REPOSITORY
// ──────────────────────────────────────────────

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	// Counters
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockExpenseRepository creates a new mock expense repository.
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

// AddExpense seeds an expense into the mock repository.
func (m *MockExpenseRepository) AddExpense(exp *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[exp.ID] = exp
}

func (m *MockExpenseRepository) Create(ctx context.Context, exp *domain.Expense) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[exp.ID] = exp
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exp, ok := m.expenses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *exp
	return &copy, nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, exp *domain.Expense) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[exp.ID]; !ok {
		return repository.ErrNotFound
	}
	m.expenses[exp.ID] = exp
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Expense
	for _, exp := range m.expenses {
		if exp.TripID == tripID {
			copy := *exp
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountExpenses returns the number of stored expenses.
func (m *MockExpenseRepository) CountExpenses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.expenses)
}

// ──────────────────────────────────────────────
// MOCK ASSIGNMENT REPOSITORY
// ──────────────────────────────────────────────

// MockAssignmentRepository is a mock implementation of AssignmentRepository.
type MockAssignmentRepository struct {
	mu          sync.RWMutex
	assignments []*domain.AgentCustomerAssignment

	// Counters
	CreateIfAbsentCallCount int32
	UpdateRateCallCount     int32

	// Error injection
	CreateIfAbsentError error
	UpdateRateError     error
	ListByTripError     error
}

// NewMockAssignmentRepository creates a new mock assignment repository.
func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{}
}

// AddAssignment seeds an assignment into the mock repository.
func (m *MockAssignmentRepository) AddAssignment(a *domain.AgentCustomerAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, a)
}

func (m *MockAssignmentRepository) CreateIfAbsent(ctx context.Context, a *domain.AgentCustomerAssignment) error {
	atomic.AddInt32(&m.CreateIfAbsentCallCount, 1)
	if m.CreateIfAbsentError != nil {
		return m.CreateIfAbsentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.assignments {
		if existing.TripID == a.TripID && existing.AgentID == a.AgentID && existing.CustomerID == a.CustomerID {
			return nil
		}
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *MockAssignmentRepository) UpdateRate(ctx context.Context, tripID, agentID, customerID string, rate decimal.Decimal) error {
	atomic.AddInt32(&m.UpdateRateCallCount, 1)
	if m.UpdateRateError != nil {
		return m.UpdateRateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.TripID == tripID && a.AgentID == agentID && a.CustomerID == customerID {
			a.CommissionRate = rate
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockAssignmentRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.AgentCustomerAssignment, error) {
	if m.ListByTripError != nil {
		return nil, m.ListByTripError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AgentCustomerAssignment
	for _, a := range m.assignments {
		if a.TripID == tripID {
			copy := *a
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockAssignmentRepository) DeleteByCustomer(ctx context.Context, tripID, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if !(a.TripID == tripID && a.CustomerID == customerID) {
			kept = append(kept, a)
		}
	}
	m.assignments = kept
	return nil
}

// CountAssignments returns the number of assignments for a trip.
func (m *MockAssignmentRepository) CountAssignments(tripID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, a := range m.assignments {
		if a.TripID == tripID {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK CUSTOMER REPOSITORY
// ──────────────────────────────────────────────

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

// NewMockCustomerRepository creates a new mock customer repository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// AddCustomer seeds a customer into the mock repository.
func (m *MockCustomerRepository) AddCustomer(c *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK AGENT REPOSITORY
// ──────────────────────────────────────────────

// MockAgentRepository is a mock implementation of AgentRepository.
type MockAgentRepository struct {
	mu     sync.RWMutex
	agents map[string]*domain.Agent

	// Counters
	ApplyLifetimeDeltaCallCount int32

	// Error injection
	ApplyLifetimeDeltaError error
}

// NewMockAgentRepository creates a new mock agent repository.
func NewMockAgentRepository() *MockAgentRepository {
	return &MockAgentRepository{
		agents: make(map[string]*domain.Agent),
	}
}

// AddAgent seeds an agent into the mock repository.
func (m *MockAgentRepository) AddAgent(a *domain.Agent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents[a.ID] = a
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (m *MockAgentRepository) ApplyLifetimeDelta(ctx context.Context, agentID string, commissionDelta decimal.Decimal, tripDelta int) error {
	atomic.AddInt32(&m.ApplyLifetimeDeltaCallCount, 1)
	if m.ApplyLifetimeDeltaError != nil {
		return m.ApplyLifetimeDeltaError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.agents[agentID]
	if !ok {
		return repository.ErrNotFound
	}
	a.TotalCommission = a.TotalCommission.Add(commissionDelta)
	a.TotalTrips += tripDelta
	return nil
}

// GetAgent returns an agent for test assertions.
func (m *MockAgentRepository) GetAgent(id string) *domain.Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.agents[id]
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters
	UpdateFinancialsCallCount int32

	// Error injection
	UpdateFinancialsError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip seeds a trip into the mock repository.
func (m *MockTripRepository) AddTrip(t *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = t
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) UpdateFinancials(ctx context.Context, tripID string, totals domain.TripTotals) error {
	atomic.AddInt32(&m.UpdateFinancialsCallCount, 1)
	if m.UpdateFinancialsError != nil {
		return m.UpdateFinancialsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[tripID]
	if !ok {
		return repository.ErrNotFound
	}
	t.TotalWin = totals.TotalWin
	t.TotalLoss = totals.TotalLoss
	t.NetProfit = totals.NetProfit
	return nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK STATS REPOSITORY
// ──────────────────────────────────────────────

type statsKey struct {
	tripID     string
	customerID string
}

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	mu    sync.RWMutex
	stats map[statsKey]*domain.TripCustomerStats

	// Counters
	UpsertCallCount int32
	DeleteCallCount int32

	// Error injection
	UpsertError     error
	DeleteError     error
	ListByTripError error
}

// NewMockStatsRepository creates a new mock stats repository.
func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{
		stats: make(map[statsKey]*domain.TripCustomerStats),
	}
}

// AddStats seeds a stats row into the mock repository.
func (m *MockStatsRepository) AddStats(s *domain.TripCustomerStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[statsKey{s.TripID, s.CustomerID}] = s
}

func (m *MockStatsRepository) Upsert(ctx context.Context, s *domain.TripCustomerStats) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *s
	m.stats[statsKey{s.TripID, s.CustomerID}] = &copy
	return nil
}

func (m *MockStatsRepository) Get(ctx context.Context, tripID, customerID string) (*domain.TripCustomerStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stats[statsKey{tripID, customerID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

func (m *MockStatsRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.TripCustomerStats, error) {
	if m.ListByTripError != nil {
		return nil, m.ListByTripError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripCustomerStats
	for key, s := range m.stats {
		if key.tripID == tripID {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockStatsRepository) Delete(ctx context.Context, tripID, customerID string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stats, statsKey{tripID, customerID})
	return nil
}

// GetStats returns a stats row for test assertions.
func (m *MockStatsRepository) GetStats(tripID, customerID string) *domain.TripCustomerStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[statsKey{tripID, customerID}]
}

// CountStats returns the number of stats rows for a trip.
func (m *MockStatsRepository) CountStats(tripID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for key := range m.stats {
		if key.tripID == tripID {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK SHARING REPOSITORY
// ──────────────────────────────────────────────

// MockSharingRepository is a mock implementation of SharingRepository.
type MockSharingRepository struct {
	mu      sync.RWMutex
	sharing map[string]*domain.TripSharing

	// Counters
	UpsertCallCount int32

	// Error injection
	UpsertError          error
	ListAgentSharesError error
}

// NewMockSharingRepository creates a new mock sharing repository.
func NewMockSharingRepository() *MockSharingRepository {
	return &MockSharingRepository{
		sharing: make(map[string]*domain.TripSharing),
	}
}

// AddSharing seeds a sharing row into the mock repository.
func (m *MockSharingRepository) AddSharing(s *domain.TripSharing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sharing[s.TripID] = s
}

func (m *MockSharingRepository) Upsert(ctx context.Context, s *domain.TripSharing) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *s
	copy.AgentBreakdown = append([]domain.AgentShare(nil), s.AgentBreakdown...)
	m.sharing[s.TripID] = &copy
	return nil
}

func (m *MockSharingRepository) GetByTripID(ctx context.Context, tripID string) (*domain.TripSharing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sharing[tripID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

func (m *MockSharingRepository) ListAgentShares(ctx context.Context, tripID string) ([]domain.AgentShare, error) {
	if m.ListAgentSharesError != nil {
		return nil, m.ListAgentSharesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sharing[tripID]
	if !ok {
		return nil, nil
	}
	return append([]domain.AgentShare(nil), s.AgentBreakdown...), nil
}

// GetSharing returns a sharing row for test assertions.
func (m *MockSharingRepository) GetSharing(tripID string) *domain.TripSharing {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sharing[tripID]
}

// ──────────────────────────────────────────────
// MOCK ATOMIC
// ──────────────────────────────────────────────

// MockAtomic is a pass-through Atomic: it hands the same repository bundle
// to every callback without any real transaction semantics. Rollback is not
// simulated; error-path tests assert on the returned error instead.
type MockAtomic struct {
	Repos repository.Repositories

	// Counters
	WithinCallCount int32

	// Error injection (returned before fn runs)
	BeginError error
}

// NewMockAtomic creates a pass-through Atomic over the given bundle.
func NewMockAtomic(repos repository.Repositories) *MockAtomic {
	return &MockAtomic{Repos: repos}
}

func (m *MockAtomic) Within(ctx context.Context, fn func(r repository.Repositories) error) error {
	atomic.AddInt32(&m.WithinCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(m.Repos)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:reconcile:" + tripID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:reconcile:"+tripID)
	return nil
}

// IsLocked checks if a trip is locked (for test assertions).
func (m *MockLockStore) IsLocked(tripID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:reconcile:"+tripID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK SHARING CACHE
// ──────────────────────────────────────────────

// MockSharingCache is a mock implementation of SharingCacheInterface.
type MockSharingCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.TripSharing

	// Counters
	GetCallCount int32
	SetCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockSharingCache creates a new mock sharing cache.
func NewMockSharingCache() *MockSharingCache {
	return &MockSharingCache{
		entries: make(map[string]*domain.TripSharing),
	}
}

func (m *MockSharingCache) Get(ctx context.Context, tripID string) (*domain.TripSharing, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.entries[tripID]
	if !ok {
		return nil, nil // Cache miss, not an error.
	}
	copy := *s
	return &copy, nil
}

func (m *MockSharingCache) Set(ctx context.Context, sharing *domain.TripSharing) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *sharing
	m.entries[sharing.TripID] = &copy
	return nil
}

func (m *MockSharingCache) Invalidate(ctx context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, tripID)
	return nil
}

// HasEntry checks if a cache entry exists (for test assertions).
func (m *MockSharingCache) HasEntry(tripID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[tripID]
	return ok
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
