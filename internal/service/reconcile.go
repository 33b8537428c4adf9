package service

import (
	"context"
	"errors"
	"time"

	"junket/internal/domain"
	"junket/internal/redis"
	"junket/internal/repository"
)

// reconcileLockTTL bounds how long a crashed reconciliation can block a
// trip before the lock expires on its own.
const reconcileLockTTL = 30 * time.Second

// ReconcileService is the recalculation orchestrator. Every ledger
// mutation funnels into ReconcileTrip, which re-derives all per-customer
// stats, trip totals, the sharing summary, and agent lifetime deltas from
// the current ledger inside a single database transaction. A per-trip
// Redis lock keeps two reconciliations of the same trip from interleaving.
type ReconcileService struct {
	atomic  repository.Atomic
	locks   redis.LockStoreInterface
	cache   redis.SharingCacheInterface
	stats   *StatsService
	sharing *SharingService
	agents  *AgentStatsService
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(
	atomic repository.Atomic,
	locks redis.LockStoreInterface,
	cache redis.SharingCacheInterface,
	stats *StatsService,
	sharing *SharingService,
	agents *AgentStatsService,
) *ReconcileService {
	return &ReconcileService{
		atomic:  atomic,
		locks:   locks,
		cache:   cache,
		stats:   stats,
		sharing: sharing,
		agents:  agents,
	}
}

// ReconcileResult holds everything a full trip reconciliation produced.
type ReconcileResult struct {
	Stats   []*domain.TripCustomerStats
	Totals  domain.TripTotals
	Sharing *domain.TripSharing
}

// ReconcileTrip runs the full cascade for a trip: recompute every
// customer's stats, sum trip totals, derive the sharing summary, and apply
// agent lifetime deltas. All writes happen in one transaction; a failure
// at any stage rolls everything back, leaving the previous derived rows in
// place for the next trigger to heal.
func (s *ReconcileService) ReconcileTrip(ctx context.Context, tripID string) (*ReconcileResult, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	acquired, err := s.locks.AcquireTripLock(ctx, tripID, reconcileLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrReconciliationInProgress
	}
	defer func() {
		_ = s.locks.ReleaseTripLock(ctx, tripID)
	}()

	var result *ReconcileResult
	err = s.atomic.Within(ctx, func(r repository.Repositories) error {
		// The trip roster is whatever stats rows currently exist;
		// rows are created when customers join and deleted when they
		// leave.
		existing, err := r.Stats.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}

		statsList := make([]*domain.TripCustomerStats, 0, len(existing))
		for _, row := range existing {
			cs, err := s.stats.ComputeCustomerStats(ctx, r, tripID, row.CustomerID)
			if err != nil {
				return err
			}
			statsList = append(statsList, cs)
		}

		totals := s.stats.ComputeTripTotals(statsList)

		sharing, customerCommissions, err := s.sharing.BuildSharing(ctx, r, tripID, statsList, totals)
		if err != nil {
			return err
		}

		for _, cs := range statsList {
			cs.CommissionEarned = customerCommissions[cs.CustomerID]
			if err := r.Stats.Upsert(ctx, cs); err != nil {
				return err
			}
		}

		// The trip row may be gone if the trip was deleted mid-flight;
		// that is not a reason to abandon the derived rows.
		if err := r.Trips.UpdateFinancials(ctx, tripID, totals); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		previousShares, err := r.Sharing.ListAgentShares(ctx, tripID)
		if err != nil {
			return err
		}

		if err := r.Sharing.Upsert(ctx, sharing); err != nil {
			return err
		}

		if err := s.agents.ApplyDeltas(ctx, r, previousShares, sharing.AgentBreakdown); err != nil {
			return err
		}

		result = &ReconcileResult{
			Stats:   statsList,
			Totals:  totals,
			Sharing: sharing,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a stale or missing cache entry only costs the read
	// path its lock-contention fallback.
	_ = s.cache.Set(ctx, result.Sharing)

	return result, nil
}

// RecomputeCustomer reconciles the trip and returns the named customer's
// fresh stats. A customer with no stats row (e.g. just removed from the
// trip) yields all-zero stats rather than an error.
func (s *ReconcileService) RecomputeCustomer(ctx context.Context, tripID, customerID string) (*domain.TripCustomerStats, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}

	result, err := s.ReconcileTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	for _, cs := range result.Stats {
		if cs.CustomerID == customerID {
			return cs, nil
		}
	}

	return &domain.TripCustomerStats{
		TripID:     tripID,
		CustomerID: customerID,
		UpdatedAt:  time.Now(),
	}, nil
}

// GetSharing reconciles the trip first so the returned sharing summary is
// guaranteed fresh. If a concurrent reconciliation holds the trip lock,
// the last cached value is served instead.
func (s *ReconcileService) GetSharing(ctx context.Context, tripID string) (*domain.TripSharing, error) {
	result, err := s.ReconcileTrip(ctx, tripID)
	if err == nil {
		return result.Sharing, nil
	}

	if errors.Is(err, ErrReconciliationInProgress) {
		cached, cacheErr := s.cache.Get(ctx, tripID)
		if cacheErr == nil && cached != nil {
			return cached, nil
		}
	}

	return nil, err
}
