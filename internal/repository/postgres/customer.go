package postgres

import (
	"context"
	"database/sql"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// CustomerRepository is a PostgreSQL implementation of
// repository.CustomerRepository.
type CustomerRepository struct {
	q Querier
}

// NewCustomerRepository creates a new PostgreSQL customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{q: db}
}

// NewCustomerRepositoryWithTx creates a customer repository using a database
// transaction.
func NewCustomerRepositoryWithTx(tx *sql.Tx) *CustomerRepository {
	return &CustomerRepository{q: tx}
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, COALESCE(agent_id, ''), created_at
		FROM customers WHERE id = $1
	`

	var customer domain.Customer
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.AgentID,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &customer, nil
}

// Ensure CustomerRepository implements repository.CustomerRepository.
var _ repository.CustomerRepository = (*CustomerRepository)(nil)
