package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
)

// TripRepository defines persistence operations for trips. The engine only
// writes the derived financial fields; trip master data is maintained
// elsewhere.
type TripRepository interface {
	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// UpdateFinancials writes the derived win/loss/profit fields.
	UpdateFinancials(ctx context.Context, tripID string, totals domain.TripTotals) error
}

// CustomerRepository defines read access to customer master data. The
// engine needs it only to resolve a customer's home agent when the customer
// joins a trip.
type CustomerRepository interface {
	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// AgentRepository defines persistence operations for agents. Lifetime
// figures are applied as deltas so that repeated reconciliation of an
// unchanged trip leaves them untouched.
type AgentRepository interface {
	// GetByID retrieves an agent by ID.
	GetByID(ctx context.Context, id string) (*domain.Agent, error)

	// ApplyLifetimeDelta adds commissionDelta to the agent's lifetime
	// commission and tripDelta to the lifetime trip count.
	ApplyLifetimeDelta(ctx context.Context, agentID string, commissionDelta decimal.Decimal, tripDelta int) error
}
