package tests

import (
	"context"
	"errors"
	"testing"

	"junket/internal/domain"
	"junket/internal/repository"
	"junket/internal/service"
)

// ──────────────────────────────────────────────
// 6. TRIP ROSTER MANAGEMENT
// ──────────────────────────────────────────────

func TestRoster_AddCustomerCreatesStatsAndAssignment(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.agentRepo.AddAgent(&domain.Agent{ID: "agent-1", CommissionRate: dec("12.5")})
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Name: "Mr. Chan", AgentID: "agent-1"})

	stats, err := f.roster.AddCustomer(ctx, "trip-1", "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stats.NetResult.IsZero() {
		t.Errorf("expected zeroed stats on join, got net=%s", stats.NetResult)
	}
	if f.statsRepo.CountStats("trip-1") != 1 {
		t.Errorf("expected 1 stats row, got %d", f.statsRepo.CountStats("trip-1"))
	}
	if f.assignRepo.CountAssignments("trip-1") != 1 {
		t.Errorf("expected 1 assignment, got %d", f.assignRepo.CountAssignments("trip-1"))
	}

	// The assignment carries the agent's standing rate.
	assignments, _ := f.assignRepo.ListByTrip(ctx, "trip-1")
	if !assignments[0].CommissionRate.Equal(dec("12.5")) {
		t.Errorf("expected standing rate 12.5, got %s", assignments[0].CommissionRate)
	}
}

func TestRoster_AddWalkInCustomerHasNoAssignment(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Name: "Walk In"})

	if _, err := f.roster.AddCustomer(context.Background(), "trip-1", "cust-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.assignRepo.CountAssignments("trip-1") != 0 {
		t.Errorf("expected no assignments for walk-in, got %d", f.assignRepo.CountAssignments("trip-1"))
	}
}

func TestRoster_AddUnknownCustomerFails(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()

	_, err := f.roster.AddCustomer(context.Background(), "trip-1", "cust-ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if f.statsRepo.CountStats("trip-1") != 0 {
		t.Error("expected no stats row for unknown customer")
	}
}

func TestRoster_AddExistingCustomerKeepsFigures(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Name: "Mr. Chan"})
	f.putCustomerOnTrip("trip-1", "cust-1")

	// Manually edited figures on the existing row.
	edited, err := f.roster.EditCustomerStats(ctx, service.EditStatsRequest{
		TripID:     "trip-1",
		CustomerID: "cust-1",
		TotalBuyIn: dec("4000"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !edited.NetResult.Equal(dec("-4000")) {
		t.Errorf("expected net result -4000, got %s", edited.NetResult)
	}

	// Adding the same customer again must not zero the row.
	stats, err := f.roster.AddCustomer(ctx, "trip-1", "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.TotalBuyIn.Equal(dec("4000")) {
		t.Errorf("expected manual buy-in 4000 preserved, got %s", stats.TotalBuyIn)
	}
	if f.statsRepo.CountStats("trip-1") != 1 {
		t.Errorf("expected 1 stats row, got %d", f.statsRepo.CountStats("trip-1"))
	}
}

func TestRoster_RemoveCustomerDropsDerivedRows(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()
	f.agentRepo.AddAgent(&domain.Agent{ID: "agent-1", CommissionRate: dec("10")})
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", AgentID: "agent-1"})
	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-2", AgentID: "agent-1"})

	if _, err := f.roster.AddCustomer(ctx, "trip-1", "cust-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.roster.AddCustomer(ctx, "trip-1", "cust-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.txRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", TripID: "trip-1", CustomerID: "cust-1",
		Amount: dec("1000"), Type: domain.TransactionTypeBuyIn,
		Status: domain.TransactionStatusCompleted,
	})

	if err := f.roster.RemoveCustomer(ctx, "trip-1", "cust-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.statsRepo.GetStats("trip-1", "cust-1") != nil {
		t.Error("expected stats row removed")
	}
	if f.statsRepo.CountStats("trip-1") != 1 {
		t.Errorf("expected 1 remaining stats row, got %d", f.statsRepo.CountStats("trip-1"))
	}
	if f.assignRepo.CountAssignments("trip-1") != 1 {
		t.Errorf("expected 1 remaining assignment, got %d", f.assignRepo.CountAssignments("trip-1"))
	}

	// The removed customer's ledger no longer counts toward the trip.
	sharing := f.sharingRepo.GetSharing("trip-1")
	if !sharing.TotalWinLoss.IsZero() {
		t.Errorf("expected win/loss 0 after removal, got %s", sharing.TotalWinLoss)
	}
}

func TestRoster_UpdateAssignmentRateValidation(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		rate string
	}{
		{"negative", "-1"},
		{"above hundred", "100.01"},
	}
	for _, tc := range cases {
		err := f.roster.UpdateAssignmentRate(ctx, "trip-1", "agent-1", "cust-1", dec(tc.rate))
		if !errors.Is(err, service.ErrInvalidCommissionRate) {
			t.Errorf("%s: expected ErrInvalidCommissionRate, got %v", tc.name, err)
		}
	}
}

func TestRoster_UpdateRateOnMissingAssignmentFails(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()

	err := f.roster.UpdateAssignmentRate(context.Background(), "trip-1", "agent-1", "cust-1", dec("15"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRoster_EditStatsRequiresMembership(t *testing.T) {
	t.Parallel()

	f := newEngineFixture()

	_, err := f.roster.EditCustomerStats(context.Background(), service.EditStatsRequest{
		TripID:     "trip-1",
		CustomerID: "cust-ghost",
		TotalBuyIn: dec("100"),
	})
	if !errors.Is(err, service.ErrCustomerNotOnTrip) {
		t.Errorf("expected ErrCustomerNotOnTrip, got %v", err)
	}
}
