package postgres

import (
	"context"
	"database/sql"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a database
// transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, name, status, total_win, total_loss, net_profit, created_at
		FROM trips WHERE id = $1
	`

	var trip domain.Trip
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Status,
		&trip.TotalWin,
		&trip.TotalLoss,
		&trip.NetProfit,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

// GetAll retrieves all trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `
		SELECT id, name, status, total_win, total_loss, net_profit, created_at
		FROM trips ORDER BY created_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Status,
			&trip.TotalWin,
			&trip.TotalLoss,
			&trip.NetProfit,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// UpdateFinancials writes the derived win/loss/profit fields.
func (r *TripRepository) UpdateFinancials(ctx context.Context, tripID string, totals domain.TripTotals) error {
	query := `
		UPDATE trips
		SET total_win = $1, total_loss = $2, net_profit = $3
		WHERE id = $4
	`

	result, err := r.q.ExecContext(ctx, query,
		totals.TotalWin,
		totals.TotalLoss,
		totals.NetProfit,
		tripID,
	)
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

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
