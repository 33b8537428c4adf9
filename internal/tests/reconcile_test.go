package tests

import (
	"context"
	"errors"
	"testing"

	"junket/internal/domain"
	"junket/internal/service"
)

// ──────────────────────────────────────────────
// 1. FULL RECONCILIATION CASCADE
// ──────────────────────────────────────────────

func TestReconcile_SingleCustomerWithRollingAndAgent(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()

	f.tripRepo.AddTrip(&domain.Trip{ID: "trip-1", Name: "Macau Weekend", Status: domain.TripStatusActive})
	f.agentRepo.AddAgent(&domain.Agent{ID: "agent-1", CommissionRate: dec("10")})
	f.putCustomerOnTrip("trip-1", "cust-1")

	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("1000"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusCompleted,
	})
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-2", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("1500"), Type: domain.TransactionTypeCashOut,
		Status: domain.TransactionStatusCompleted,
	})
	f.rollingRepo.AddRecord(&domain.RollingRecord{
		ID: "roll-1", TripID: "trip-1", CustomerID: "cust-1",
		RollingAmount: dec("2000"), Verified: true,
	})
	f.assignRepo.AddAssignment(&domain.AgentCustomerAssignment{
		ID: "assign-1", TripID: "trip-1", AgentID: "agent-1",
		CustomerID: "cust-1", CommissionRate: dec("10"),
	})

	result, err := f.reconcile.ReconcileTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Customer stats: net = (1500 + 0) - (1000 + 0) = 500.
	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if stats == nil {
		t.Fatal("stats row not persisted")
	}
	if !stats.NetResult.Equal(dec("500")) {
		t.Errorf("expected net result 500, got %s", stats.NetResult)
	}
	if !stats.RollingAmount.Equal(dec("2000")) {
		t.Errorf("expected rolling 2000, got %s", stats.RollingAmount)
	}
	// Agent takes 10% of the house's result on this customer: the customer
	// won 500, so the agent bears -50.
	if !stats.CommissionEarned.Equal(dec("-50")) {
		t.Errorf("expected commission -50, got %s", stats.CommissionEarned)
	}

	// Trip financials.
	trip := f.tripRepo.GetTrip("trip-1")
	if !trip.NetProfit.Equal(dec("500")) {
		t.Errorf("expected trip net profit 500, got %s", trip.NetProfit)
	}

	// Sharing summary, house perspective.
	sharing := f.sharingRepo.GetSharing("trip-1")
	if sharing == nil {
		t.Fatal("sharing row not persisted")
	}
	if !sharing.TotalWinLoss.Equal(dec("-500")) {
		t.Errorf("expected house win/loss -500, got %s", sharing.TotalWinLoss)
	}
	if !sharing.TotalRollingCommission.Equal(dec("28")) {
		t.Errorf("expected rolling commission 28, got %s", sharing.TotalRollingCommission)
	}
	if !sharing.NetCashFlow.Equal(dec("500")) {
		t.Errorf("expected net cash flow 500, got %s", sharing.NetCashFlow)
	}
	// net result = -500 - 28 - 0 expenses = -528.
	if !sharing.NetResult.Equal(dec("-528")) {
		t.Errorf("expected sharing net result -528, got %s", sharing.NetResult)
	}
	if !sharing.TotalAgentShare.Equal(dec("-50")) {
		t.Errorf("expected agent share -50, got %s", sharing.TotalAgentShare)
	}
	// company = -500 - (-50) + 28 - 0 = -422.
	if !sharing.CompanyShare.Equal(dec("-422")) {
		t.Errorf("expected company share -422, got %s", sharing.CompanyShare)
	}
	if !sharing.AgentSharePercentage.Equal(dec("10.59")) {
		t.Errorf("expected agent pct 10.59, got %s", sharing.AgentSharePercentage)
	}
	if !sharing.CompanySharePercentage.Equal(dec("89.41")) {
		t.Errorf("expected company pct 89.41, got %s", sharing.CompanySharePercentage)
	}

	if len(result.Sharing.AgentBreakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(result.Sharing.AgentBreakdown))
	}
	if !result.Sharing.AgentBreakdown[0].ShareAmount.Equal(dec("-50")) {
		t.Errorf("expected breakdown share -50, got %s", result.Sharing.AgentBreakdown[0].ShareAmount)
	}

	// Fresh result is cached for the contention fallback.
	if !f.cache.HasEntry("trip-1") {
		t.Error("expected sharing cached after reconcile")
	}
}

func TestReconcile_MixedCustomersFlipToHousePerspective(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()

	f.tripRepo.AddTrip(&domain.Trip{ID: "trip-1", Status: domain.TripStatusActive})
	f.agentRepo.AddAgent(&domain.Agent{ID: "agent-1", CommissionRate: dec("10")})
	f.putCustomerOnTrip("trip-1", "cust-1")
	f.putCustomerOnTrip("trip-1", "cust-2")

	// cust-1 loses 300, cust-2 wins 100.
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("300"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusCompleted,
	})
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-2", TripID: "trip-1", CustomerID: "cust-2",
		Amount: dec("100"), Type: domain.TransactionTypeCashOut,
		Status: domain.TransactionStatusCompleted,
	})
	for _, custID := range []string{"cust-1", "cust-2"} {
		f.assignRepo.AddAssignment(&domain.AgentCustomerAssignment{
			ID: "assign-" + custID, TripID: "trip-1", AgentID: "agent-1",
			CustomerID: custID, CommissionRate: dec("10"),
		})
	}

	result, err := f.reconcile.ReconcileTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Customers collectively lost 200, so the house won 200.
	if !result.Totals.NetProfit.Equal(dec("-200")) {
		t.Errorf("expected customer net profit -200, got %s", result.Totals.NetProfit)
	}
	if !result.Sharing.TotalWinLoss.Equal(dec("200")) {
		t.Errorf("expected house win/loss 200, got %s", result.Sharing.TotalWinLoss)
	}

	// Agent: +30 from cust-1's loss, -10 from cust-2's win = +20.
	if !result.Sharing.TotalAgentShare.Equal(dec("20")) {
		t.Errorf("expected agent share 20, got %s", result.Sharing.TotalAgentShare)
	}
	if !result.Sharing.CompanyShare.Equal(dec("180")) {
		t.Errorf("expected company share 180, got %s", result.Sharing.CompanyShare)
	}
	if !result.Sharing.AgentSharePercentage.Equal(dec("10")) {
		t.Errorf("expected agent pct 10, got %s", result.Sharing.AgentSharePercentage)
	}
	if !result.Sharing.CompanySharePercentage.Equal(dec("90")) {
		t.Errorf("expected company pct 90, got %s", result.Sharing.CompanySharePercentage)
	}

	// Both customers accumulate into one breakdown entry.
	if len(result.Sharing.AgentBreakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(result.Sharing.AgentBreakdown))
	}
}

func TestReconcile_EmptyTripKeepsExpenses(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()

	f.tripRepo.AddTrip(&domain.Trip{ID: "trip-1", Status: domain.TripStatusPlanned})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: "exp-1", TripID: "trip-1", Amount: dec("500"), Description: "charter flight",
	})

	result, err := f.reconcile.ReconcileTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No customers: win/loss and cash flow are zero, expenses still count.
	if !result.Sharing.TotalWinLoss.IsZero() {
		t.Errorf("expected zero win/loss, got %s", result.Sharing.TotalWinLoss)
	}
	if !result.Sharing.NetCashFlow.IsZero() {
		t.Errorf("expected zero cash flow, got %s", result.Sharing.NetCashFlow)
	}
	if !result.Sharing.TotalExpenses.Equal(dec("500")) {
		t.Errorf("expected expenses 500, got %s", result.Sharing.TotalExpenses)
	}
	if !result.Sharing.NetResult.Equal(dec("-500")) {
		t.Errorf("expected net result -500, got %s", result.Sharing.NetResult)
	}
	if !result.Sharing.CompanyShare.Equal(dec("-500")) {
		t.Errorf("expected company share -500, got %s", result.Sharing.CompanyShare)
	}
}

func TestReconcile_MissingTripRowTolerated(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()

	// No trip master row, but a customer stats row exists.
	f.putCustomerOnTrip("trip-ghost", "cust-1")

	if _, err := f.reconcile.ReconcileTrip(ctx, "trip-ghost"); err != nil {
		t.Fatalf("expected reconcile to tolerate missing trip row, got %v", err)
	}

	if f.sharingRepo.GetSharing("trip-ghost") == nil {
		t.Error("expected derived sharing row despite missing trip row")
	}
}

func TestReconcile_EmptyTripIDRejected(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()

	_, err := f.reconcile.ReconcileTrip(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidTripID) {
		t.Errorf("expected ErrInvalidTripID, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. CONCURRENCY: TRIP LOCK AND CACHE FALLBACK
// ──────────────────────────────────────────────

func TestReconcile_LockContention(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.locks.ForceAcquireFailure = true

	_, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1")
	if !errors.Is(err, service.ErrReconciliationInProgress) {
		t.Fatalf("expected ErrReconciliationInProgress, got %v", err)
	}

	// The cascade must not have started.
	if f.atomic.WithinCallCount != 0 {
		t.Errorf("expected no transaction attempt, got %d", f.atomic.WithinCallCount)
	}
}

func TestReconcile_LockReleasedAfterRun(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")

	if _, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.locks.IsLocked("trip-1") {
		t.Error("expected trip lock released after reconcile")
	}
	if f.locks.ReleaseCallCount == 0 {
		t.Error("expected release to be called")
	}
}

func TestReconcile_LockReleasedAfterFailure(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")
	f.statsRepo.UpsertError = ErrMockTimeout

	_, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1")
	if !errors.Is(err, ErrMockTimeout) {
		t.Fatalf("expected injected error, got %v", err)
	}

	if f.locks.IsLocked("trip-1") {
		t.Error("expected trip lock released after failed reconcile")
	}
	// A failed run must not poison the cache.
	if f.cache.HasEntry("trip-1") {
		t.Error("expected no cache entry after failed reconcile")
	}
}

func TestGetSharing_ServesCacheDuringContention(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.cache.Set(context.Background(), &domain.TripSharing{
		TripID:       "trip-1",
		CompanyShare: dec("180"),
	})
	f.locks.ForceAcquireFailure = true

	sharing, err := f.reconcile.GetSharing(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sharing.CompanyShare.Equal(dec("180")) {
		t.Errorf("expected cached company share 180, got %s", sharing.CompanyShare)
	}
}

func TestGetSharing_ContentionWithoutCacheFails(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.locks.ForceAcquireFailure = true

	_, err := f.reconcile.GetSharing(context.Background(), "trip-1")
	if !errors.Is(err, service.ErrReconciliationInProgress) {
		t.Errorf("expected ErrReconciliationInProgress, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. PER-CUSTOMER RECOMPUTE
// ──────────────────────────────────────────────

func TestRecomputeCustomer_ReturnsFreshRow(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("250"), Type: domain.TransactionTypeWin,
		Status: domain.TransactionStatusCompleted,
	})

	stats, err := f.reconcile.RecomputeCustomer(context.Background(), "trip-1", "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.NetResult.Equal(dec("250")) {
		t.Errorf("expected net result 250, got %s", stats.NetResult)
	}
}

func TestRecomputeCustomer_NotOnTripYieldsZeroStats(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()

	stats, err := f.reconcile.RecomputeCustomer(context.Background(), "trip-1", "cust-unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.NetResult.IsZero() || !stats.TotalBuyIn.IsZero() {
		t.Errorf("expected zero stats, got net=%s buyin=%s", stats.NetResult, stats.TotalBuyIn)
	}
}
