package repository

import (
	"context"

	"junket/internal/domain"
)

// SharingRepository defines persistence operations for the derived trip
// sharing summary and its per-agent breakdown.
type SharingRepository interface {
	// Upsert inserts or replaces the sharing row for the trip and
	// reconciles the breakdown child rows: agents in the new breakdown
	// are upserted, agents no longer present are removed.
	Upsert(ctx context.Context, sharing *domain.TripSharing) error

	// GetByTripID retrieves the sharing row and its breakdown.
	GetByTripID(ctx context.Context, tripID string) (*domain.TripSharing, error)

	// ListAgentShares retrieves the currently persisted breakdown rows
	// for a trip. Used to compute lifetime deltas before an upsert
	// replaces them.
	ListAgentShares(ctx context.Context, tripID string) ([]domain.AgentShare, error)
}
