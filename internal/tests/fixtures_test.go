package tests

import (
	"time"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
	"junket/internal/service"
)

// engineFixture wires the full reconciliation engine over mocks. The
// Atomic is a pass-through, so every write lands in the mock repositories
// immediately.
type engineFixture struct {
	txRepo       *MockTransactionRepository
	rollingRepo  *MockRollingRecordRepository
	expenseRepo  *MockExpenseRepository
	assignRepo   *MockAssignmentRepository
	customerRepo *MockCustomerRepository
	agentRepo    *MockAgentRepository
	tripRepo     *MockTripRepository
	statsRepo    *MockStatsRepository
	sharingRepo  *MockSharingRepository

	locks  *MockLockStore
	cache  *MockSharingCache
	atomic *MockAtomic

	reconcile *service.ReconcileService
	ledger    *service.LedgerService
	roster    *service.RosterService
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		txRepo:       NewMockTransactionRepository(),
		rollingRepo:  NewMockRollingRecordRepository(),
		expenseRepo:  NewMockExpenseRepository(),
		assignRepo:   NewMockAssignmentRepository(),
		customerRepo: NewMockCustomerRepository(),
		agentRepo:    NewMockAgentRepository(),
		tripRepo:     NewMockTripRepository(),
		statsRepo:    NewMockStatsRepository(),
		sharingRepo:  NewMockSharingRepository(),
		locks:        NewMockLockStore(),
		cache:        NewMockSharingCache(),
	}

	repos := repository.Repositories{
		Transactions: f.txRepo,
		Rolling:      f.rollingRepo,
		Expenses:     f.expenseRepo,
		Assignments:  f.assignRepo,
		Customers:    f.customerRepo,
		Agents:       f.agentRepo,
		Trips:        f.tripRepo,
		Stats:        f.statsRepo,
		Sharing:      f.sharingRepo,
	}
	f.atomic = NewMockAtomic(repos)

	f.reconcile = service.NewReconcileService(
		f.atomic, f.locks, f.cache,
		service.NewStatsService(),
		service.NewSharingService(),
		service.NewAgentStatsService(),
	)
	f.ledger = service.NewLedgerService(repos, f.reconcile)
	f.roster = service.NewRosterService(repos, f.reconcile)

	return f
}

// putCustomerOnTrip seeds the membership stats row a roster add would
// create, without going through the roster service.
func (f *engineFixture) putCustomerOnTrip(tripID, customerID string) {
	f.statsRepo.AddStats(&domain.TripCustomerStats{
		TripID:     tripID,
		CustomerID: customerID,
		UpdatedAt:  time.Now(),
	})
}

// dec parses a decimal literal; tests only use valid literals.
func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}
