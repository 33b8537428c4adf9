package tests

import (
	"context"
	"testing"
	"time"

	"junket/internal/domain"
)

// ──────────────────────────────────────────────
// 5. CUSTOMER STATS DERIVATION AND MANUAL EDITS
// ──────────────────────────────────────────────

func TestStats_OnlyCompletedTransactionsCount(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")

	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("1000"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusCompleted,
	})
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-2", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("9999"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusPending,
	})
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-3", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("5000"), Type: domain.TransactionTypeCashOut,
		Status: domain.TransactionStatusCancelled,
	})

	if _, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.TotalBuyIn.Equal(dec("1000")) {
		t.Errorf("expected buy-in 1000, got %s", stats.TotalBuyIn)
	}
	if !stats.TotalCashOut.IsZero() {
		t.Errorf("expected cash-out 0, got %s", stats.TotalCashOut)
	}
}

func TestStats_NonBankrollTypesCarryNoWeight(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")

	for i, typ := range []domain.TransactionType{
		domain.TransactionTypeRolling,
		domain.TransactionTypeCommission,
		domain.TransactionTypeOther,
	} {
		f.txRepo.AddTransaction(&domain.Transaction{
			ID: "tx-" + string(rune('a'+i)), TripID: "trip-1", CustomerID: "cust-1",
			Amount: dec("777"), Type: typ,
			Status: domain.TransactionStatusCompleted,
		})
	}

	if _, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.NetResult.IsZero() {
		t.Errorf("expected zero net result, got %s", stats.NetResult)
	}
}

func TestStats_UnverifiedRollingExcluded(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.putCustomerOnTrip("trip-1", "cust-1")

	f.rollingRepo.AddRecord(&domain.RollingRecord{
		ID: "roll-1", TripID: "trip-1", CustomerID: "cust-1",
		RollingAmount: dec("5000"), Verified: false,
	})
	f.rollingRepo.AddRecord(&domain.RollingRecord{
		ID: "roll-2", TripID: "trip-1", CustomerID: "cust-1",
		RollingAmount: dec("2000"), Verified: true,
	})

	if _, err := f.reconcile.ReconcileTrip(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.RollingAmount.Equal(dec("2000")) {
		t.Errorf("expected only verified rolling 2000, got %s", stats.RollingAmount)
	}
}

func TestStats_ManualEditSurvivesReconcileWithoutLedger(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Name: "Mr. Chan"})
	f.putCustomerOnTrip("trip-1", "cust-1")

	// Back office keys in figures by hand; the ledger is empty.
	f.statsRepo.AddStats(&domain.TripCustomerStats{
		TripID:        "trip-1",
		CustomerID:    "cust-1",
		TotalBuyIn:    dec("8000"),
		TotalCashOut:  dec("6000"),
		RollingAmount: dec("12000"),
		NetResult:     dec("-2000"),
		UpdatedAt:     time.Now(),
	})

	if _, err := f.reconcile.ReconcileTrip(ctx, "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.TotalBuyIn.Equal(dec("8000")) {
		t.Errorf("expected manual buy-in 8000 preserved, got %s", stats.TotalBuyIn)
	}
	if !stats.RollingAmount.Equal(dec("12000")) {
		t.Errorf("expected manual rolling 12000 preserved, got %s", stats.RollingAmount)
	}
	if !stats.NetResult.Equal(dec("-2000")) {
		t.Errorf("expected net result -2000, got %s", stats.NetResult)
	}
}

func TestStats_LedgerOverridesManualTotals(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.putCustomerOnTrip("trip-1", "cust-1")

	f.statsRepo.AddStats(&domain.TripCustomerStats{
		TripID:        "trip-1",
		CustomerID:    "cust-1",
		TotalBuyIn:    dec("8000"),
		RollingAmount: dec("12000"),
		UpdatedAt:     time.Now(),
	})

	// A real completed transaction arrives: the four totals now come from
	// the ledger, but the manual rolling figure stays until verified
	// rolling records exist.
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("500"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusCompleted,
	})

	if _, err := f.reconcile.ReconcileTrip(ctx, "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.TotalBuyIn.Equal(dec("500")) {
		t.Errorf("expected ledger buy-in 500, got %s", stats.TotalBuyIn)
	}
	if !stats.RollingAmount.Equal(dec("12000")) {
		t.Errorf("expected manual rolling 12000 preserved, got %s", stats.RollingAmount)
	}
	if !stats.NetResult.Equal(dec("-500")) {
		t.Errorf("expected net result -500, got %s", stats.NetResult)
	}
}

func TestStats_VerifiedRollingOverridesManualRolling(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.putCustomerOnTrip("trip-1", "cust-1")

	f.statsRepo.AddStats(&domain.TripCustomerStats{
		TripID:        "trip-1",
		CustomerID:    "cust-1",
		RollingAmount: dec("12000"),
		UpdatedAt:     time.Now(),
	})
	f.rollingRepo.AddRecord(&domain.RollingRecord{
		ID: "roll-1", TripID: "trip-1", CustomerID: "cust-1",
		RollingAmount: dec("3000"), Verified: true,
	})

	if _, err := f.reconcile.ReconcileTrip(ctx, "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := f.statsRepo.GetStats("trip-1", "cust-1")
	if !stats.RollingAmount.Equal(dec("3000")) {
		t.Errorf("expected verified rolling 3000 to win, got %s", stats.RollingAmount)
	}
}
