package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// AssignmentRepository is a PostgreSQL implementation of
// repository.AssignmentRepository.
type AssignmentRepository struct {
	q Querier
}

// NewAssignmentRepository creates a new PostgreSQL assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{q: db}
}

// NewAssignmentRepositoryWithTx creates an assignment repository using a
// database transaction.
func NewAssignmentRepositoryWithTx(tx *sql.Tx) *AssignmentRepository {
	return &AssignmentRepository{q: tx}
}

// CreateIfAbsent inserts an assignment unless one already exists for the
// same (trip, agent, customer).
func (r *AssignmentRepository) CreateIfAbsent(ctx context.Context, a *domain.AgentCustomerAssignment) error {
	query := `
		INSERT INTO agent_customer_assignments (id, trip_id, agent_id, customer_id, commission_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trip_id, agent_id, customer_id) DO NOTHING
	`

	_, err := r.q.ExecContext(ctx, query,
		a.ID,
		a.TripID,
		a.AgentID,
		a.CustomerID,
		a.CommissionRate,
		a.CreatedAt,
	)

	return err
}

// UpdateRate changes the per-trip commission rate for one assignment.
func (r *AssignmentRepository) UpdateRate(ctx context.Context, tripID, agentID, customerID string, rate decimal.Decimal) error {
	query := `
		UPDATE agent_customer_assignments
		SET commission_rate = $1
		WHERE trip_id = $2 AND agent_id = $3 AND customer_id = $4
	`

	result, err := r.q.ExecContext(ctx, query, rate, tripID, agentID, customerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByTrip retrieves all assignments for a trip.
func (r *AssignmentRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.AgentCustomerAssignment, error) {
	query := `
		SELECT id, trip_id, agent_id, customer_id, commission_rate, created_at
		FROM agent_customer_assignments WHERE trip_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.AgentCustomerAssignment
	for rows.Next() {
		var a domain.AgentCustomerAssignment
		if err := rows.Scan(
			&a.ID,
			&a.TripID,
			&a.AgentID,
			&a.CustomerID,
			&a.CommissionRate,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}

// DeleteByCustomer removes all assignments for a customer on a trip.
func (r *AssignmentRepository) DeleteByCustomer(ctx context.Context, tripID, customerID string) error {
	query := `DELETE FROM agent_customer_assignments WHERE trip_id = $1 AND customer_id = $2`

	_, err := r.q.ExecContext(ctx, query, tripID, customerID)
	return err
}

// Ensure AssignmentRepository implements repository.AssignmentRepository.
var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)
