package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
)

// StatsRepository defines persistence operations for the derived
// per-customer trip stats. Rows are keyed by (trip, customer) and upserted,
// never duplicated.
type StatsRepository interface {
	// Upsert inserts or replaces the stats row for (trip, customer).
	Upsert(ctx context.Context, stats *domain.TripCustomerStats) error

	// Get retrieves the stats row for a customer on a trip.
	Get(ctx context.Context, tripID, customerID string) (*domain.TripCustomerStats, error)

	// ListByTrip retrieves all stats rows for a trip.
	ListByTrip(ctx context.Context, tripID string) ([]*domain.TripCustomerStats, error)

	// Delete removes the stats row for a customer on a trip.
	Delete(ctx context.Context, tripID, customerID string) error
}

// AssignmentRepository defines persistence operations for agent-customer
// assignments on a trip.
type AssignmentRepository interface {
	// CreateIfAbsent inserts an assignment unless one already exists for
	// the same (trip, agent, customer).
	CreateIfAbsent(ctx context.Context, a *domain.AgentCustomerAssignment) error

	// UpdateRate changes the per-trip commission rate for one assignment.
	UpdateRate(ctx context.Context, tripID, agentID, customerID string, rate decimal.Decimal) error

	// ListByTrip retrieves all assignments for a trip.
	ListByTrip(ctx context.Context, tripID string) ([]*domain.AgentCustomerAssignment, error)

	// DeleteByCustomer removes all assignments for a customer on a trip.
	DeleteByCustomer(ctx context.Context, tripID, customerID string) error
}
