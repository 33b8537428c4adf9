package postgres

import (
	"context"
	"database/sql"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// ExpenseRepository is a PostgreSQL implementation of
// repository.ExpenseRepository.
type ExpenseRepository struct {
	q Querier
}

// NewExpenseRepository creates a new PostgreSQL expense repository.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{q: db}
}

// NewExpenseRepositoryWithTx creates an expense repository using a database
// transaction.
func NewExpenseRepositoryWithTx(tx *sql.Tx) *ExpenseRepository {
	return &ExpenseRepository{q: tx}
}

// Create persists a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, exp *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, trip_id, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		exp.ID,
		exp.TripID,
		exp.Amount,
		exp.Description,
		exp.CreatedAt,
	)

	return mapError(err)
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `
		SELECT id, trip_id, amount, description, created_at
		FROM expenses WHERE id = $1
	`

	var exp domain.Expense
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&exp.ID,
		&exp.TripID,
		&exp.Amount,
		&exp.Description,
		&exp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &exp, nil
}

// Update updates an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, exp *domain.Expense) error {
	query := `
		UPDATE expenses SET amount = $1, description = $2 WHERE id = $3
	`

	result, err := r.q.ExecContext(ctx, query, exp.Amount, exp.Description, exp.ID)
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

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM expenses WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
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

// ListByTrip retrieves all expenses for a trip.
func (r *ExpenseRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	query := `
		SELECT id, trip_id, amount, description, created_at
		FROM expenses WHERE trip_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []*domain.Expense
	for rows.Next() {
		var exp domain.Expense
		if err := rows.Scan(
			&exp.ID,
			&exp.TripID,
			&exp.Amount,
			&exp.Description,
			&exp.CreatedAt,
		); err != nil {
			return nil, err
		}
		exps = append(exps, &exp)
	}

	return exps, rows.Err()
}

// Ensure ExpenseRepository implements repository.ExpenseRepository.
var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
