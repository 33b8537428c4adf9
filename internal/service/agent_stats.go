package service

import (
	"context"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// AgentStatsService maintains agent lifetime figures. Instead of blindly
// accumulating every reconciliation run, it applies the delta between the
// newly computed trip commission and the breakdown persisted by the
// previous run, so reconciling an unchanged trip leaves lifetime totals
// untouched.
type AgentStatsService struct{}

// NewAgentStatsService creates a new AgentStatsService.
func NewAgentStatsService() *AgentStatsService {
	return &AgentStatsService{}
}

// ApplyDeltas updates agent lifetime stats from the difference between the
// previously persisted breakdown and the current one. An agent appearing
// on the trip for the first time also gains a trip count; an agent dropped
// from the trip has its prior contribution and trip count reversed.
// Unknown agents contribute nothing and are skipped.
func (s *AgentStatsService) ApplyDeltas(ctx context.Context, r repository.Repositories, previous, current []domain.AgentShare) error {
	prevShares := make(map[string]domain.AgentShare, len(previous))
	for _, share := range previous {
		prevShares[share.AgentID] = share
	}

	for _, share := range current {
		prev, existed := prevShares[share.AgentID]
		delete(prevShares, share.AgentID)

		commissionDelta := share.ShareAmount.Sub(prev.ShareAmount)
		tripDelta := 0
		if !existed {
			tripDelta = 1
		}

		if commissionDelta.IsZero() && tripDelta == 0 {
			continue
		}

		err := r.Agents.ApplyLifetimeDelta(ctx, share.AgentID, commissionDelta, tripDelta)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	// Agents no longer on the trip: reverse what was applied before.
	for agentID, prev := range prevShares {
		err := r.Agents.ApplyLifetimeDelta(ctx, agentID, prev.ShareAmount.Neg(), -1)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	return nil
}
