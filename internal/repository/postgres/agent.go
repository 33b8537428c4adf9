package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// AgentRepository is a PostgreSQL implementation of repository.AgentRepository.
type AgentRepository struct {
	q Querier
}

// NewAgentRepository creates a new PostgreSQL agent repository.
func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{q: db}
}

// NewAgentRepositoryWithTx creates an agent repository using a database
// transaction.
func NewAgentRepositoryWithTx(tx *sql.Tx) *AgentRepository {
	return &AgentRepository{q: tx}
}

// GetByID retrieves an agent by ID.
func (r *AgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `
		SELECT id, name, commission_rate, total_commission, total_trips, created_at
		FROM agents WHERE id = $1
	`

	var agent domain.Agent
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&agent.ID,
		&agent.Name,
		&agent.CommissionRate,
		&agent.TotalCommission,
		&agent.TotalTrips,
		&agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &agent, nil
}

// ApplyLifetimeDelta adds commissionDelta to the agent's lifetime commission
// and tripDelta to the lifetime trip count.
func (r *AgentRepository) ApplyLifetimeDelta(ctx context.Context, agentID string, commissionDelta decimal.Decimal, tripDelta int) error {
	query := `
		UPDATE agents
		SET total_commission = total_commission + $1, total_trips = total_trips + $2
		WHERE id = $3
	`

	result, err := r.q.ExecContext(ctx, query, commissionDelta, tripDelta, agentID)
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

// Ensure AgentRepository implements repository.AgentRepository.
var _ repository.AgentRepository = (*AgentRepository)(nil)
