package postgres

import (
	"context"
	"database/sql"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// StatsRepository is a PostgreSQL implementation of repository.StatsRepository.
type StatsRepository struct {
	q Querier
}

// NewStatsRepository creates a new PostgreSQL stats repository.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{q: db}
}

// NewStatsRepositoryWithTx creates a stats repository using a database
// transaction.
func NewStatsRepositoryWithTx(tx *sql.Tx) *StatsRepository {
	return &StatsRepository{q: tx}
}

// Upsert inserts or replaces the stats row for (trip, customer).
func (r *StatsRepository) Upsert(ctx context.Context, stats *domain.TripCustomerStats) error {
	query := `
		INSERT INTO trip_customer_stats
			(trip_id, customer_id, total_buy_in, total_cash_out, total_win, total_loss,
			 net_result, rolling_amount, commission_earned, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (trip_id, customer_id) DO UPDATE SET
			total_buy_in = EXCLUDED.total_buy_in,
			total_cash_out = EXCLUDED.total_cash_out,
			total_win = EXCLUDED.total_win,
			total_loss = EXCLUDED.total_loss,
			net_result = EXCLUDED.net_result,
			rolling_amount = EXCLUDED.rolling_amount,
			commission_earned = EXCLUDED.commission_earned,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.q.ExecContext(ctx, query,
		stats.TripID,
		stats.CustomerID,
		stats.TotalBuyIn,
		stats.TotalCashOut,
		stats.TotalWin,
		stats.TotalLoss,
		stats.NetResult,
		stats.RollingAmount,
		stats.CommissionEarned,
		stats.UpdatedAt,
	)

	return err
}

// Get retrieves the stats row for a customer on a trip.
func (r *StatsRepository) Get(ctx context.Context, tripID, customerID string) (*domain.TripCustomerStats, error) {
	query := `
		SELECT trip_id, customer_id, total_buy_in, total_cash_out, total_win, total_loss,
		       net_result, rolling_amount, commission_earned, updated_at
		FROM trip_customer_stats
		WHERE trip_id = $1 AND customer_id = $2
	`

	var stats domain.TripCustomerStats
	err := r.q.QueryRowContext(ctx, query, tripID, customerID).Scan(
		&stats.TripID,
		&stats.CustomerID,
		&stats.TotalBuyIn,
		&stats.TotalCashOut,
		&stats.TotalWin,
		&stats.TotalLoss,
		&stats.NetResult,
		&stats.RollingAmount,
		&stats.CommissionEarned,
		&stats.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &stats, nil
}

// ListByTrip retrieves all stats rows for a trip.
func (r *StatsRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.TripCustomerStats, error) {
	query := `
		SELECT trip_id, customer_id, total_buy_in, total_cash_out, total_win, total_loss,
		       net_result, rolling_amount, commission_earned, updated_at
		FROM trip_customer_stats
		WHERE trip_id = $1
		ORDER BY customer_id
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.TripCustomerStats
	for rows.Next() {
		var stats domain.TripCustomerStats
		if err := rows.Scan(
			&stats.TripID,
			&stats.CustomerID,
			&stats.TotalBuyIn,
			&stats.TotalCashOut,
			&stats.TotalWin,
			&stats.TotalLoss,
			&stats.NetResult,
			&stats.RollingAmount,
			&stats.CommissionEarned,
			&stats.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &stats)
	}

	return list, rows.Err()
}

// Delete removes the stats row for a customer on a trip.
func (r *StatsRepository) Delete(ctx context.Context, tripID, customerID string) error {
	query := `DELETE FROM trip_customer_stats WHERE trip_id = $1 AND customer_id = $2`

	_, err := r.q.ExecContext(ctx, query, tripID, customerID)
	return err
}

// Ensure StatsRepository implements repository.StatsRepository.
var _ repository.StatsRepository = (*StatsRepository)(nil)
