package postgres

import (
	"context"
	"database/sql"
	"errors"

	"junket/internal/domain"
	"junket/internal/repository"
)

// RollingRecordRepository is a PostgreSQL implementation of
// repository.RollingRecordRepository.
type RollingRecordRepository struct {
	q Querier
}

// NewRollingRecordRepository creates a new PostgreSQL rolling record repository.
func NewRollingRecordRepository(db *sql.DB) *RollingRecordRepository {
	return &RollingRecordRepository{q: db}
}

// NewRollingRecordRepositoryWithTx creates a rolling record repository using
// a database transaction.
func NewRollingRecordRepositoryWithTx(tx *sql.Tx) *RollingRecordRepository {
	return &RollingRecordRepository{q: tx}
}

// Create persists a new rolling record.
func (r *RollingRecordRepository) Create(ctx context.Context, rec *domain.RollingRecord) error {
	query := `
		INSERT INTO rolling_records (id, trip_id, customer_id, rolling_amount, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		rec.ID,
		rec.TripID,
		rec.CustomerID,
		rec.RollingAmount,
		rec.Verified,
		rec.CreatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a rolling record by ID.
func (r *RollingRecordRepository) GetByID(ctx context.Context, id string) (*domain.RollingRecord, error) {
	query := `
		SELECT id, trip_id, customer_id, rolling_amount, verified, created_at
		FROM rolling_records WHERE id = $1
	`

	var rec domain.RollingRecord
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.TripID,
		&rec.CustomerID,
		&rec.RollingAmount,
		&rec.Verified,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// MarkVerified flags a rolling record as verified.
func (r *RollingRecordRepository) MarkVerified(ctx context.Context, id string) error {
	query := `UPDATE rolling_records SET verified = TRUE WHERE id = $1`

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

// ListVerified retrieves all verified rolling records for a customer on a trip.
func (r *RollingRecordRepository) ListVerified(ctx context.Context, tripID, customerID string) ([]*domain.RollingRecord, error) {
	query := `
		SELECT id, trip_id, customer_id, rolling_amount, verified, created_at
		FROM rolling_records
		WHERE trip_id = $1 AND customer_id = $2 AND verified = TRUE
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, tripID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.RollingRecord
	for rows.Next() {
		var rec domain.RollingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.TripID,
			&rec.CustomerID,
			&rec.RollingAmount,
			&rec.Verified,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// Ensure RollingRecordRepository implements repository.RollingRecordRepository.
var _ repository.RollingRecordRepository = (*RollingRecordRepository)(nil)
