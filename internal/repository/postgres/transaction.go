package postgres

import (
	"context"
	"database/sql"

	"junket/internal/domain"
	"junket/internal/repository"
)

// TransactionRepository is a PostgreSQL implementation of
// repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a
// database transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create persists a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, trip_id, customer_id, amount, transaction_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		tx.ID,
		tx.TripID,
		tx.CustomerID,
		tx.Amount,
		tx.Type,
		tx.Status,
		tx.CreatedAt,
	)

	return mapError(err)
}

// ListCompleted retrieves all completed transactions for a customer on a trip.
func (r *TransactionRepository) ListCompleted(ctx context.Context, tripID, customerID string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, trip_id, customer_id, amount, transaction_type, status, created_at
		FROM transactions
		WHERE trip_id = $1 AND customer_id = $2 AND status = $3
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, tripID, customerID, domain.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.TripID,
			&tx.CustomerID,
			&tx.Amount,
			&tx.Type,
			&tx.Status,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}

// Ensure TransactionRepository implements repository.TransactionRepository.
var _ repository.TransactionRepository = (*TransactionRepository)(nil)
