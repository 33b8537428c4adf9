package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"junket/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// mapError converts driver-level errors to repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

// Atomic runs repository operations inside a single database transaction.
type Atomic struct {
	db *sql.DB
}

// NewAtomic creates an Atomic backed by the given database.
func NewAtomic(db *sql.DB) *Atomic {
	return &Atomic{db: db}
}

// Within begins a transaction, builds transaction-scoped repositories, and
// invokes fn. The transaction commits when fn returns nil and rolls back
// otherwise.
func (a *Atomic) Within(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	repos := repository.Repositories{
		Transactions: NewTransactionRepositoryWithTx(tx),
		Rolling:      NewRollingRecordRepositoryWithTx(tx),
		Expenses:     NewExpenseRepositoryWithTx(tx),
		Assignments:  NewAssignmentRepositoryWithTx(tx),
		Customers:    NewCustomerRepositoryWithTx(tx),
		Agents:       NewAgentRepositoryWithTx(tx),
		Trips:        NewTripRepositoryWithTx(tx),
		Stats:        NewStatsRepositoryWithTx(tx),
		Sharing:      NewSharingRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Ensure Atomic implements repository.Atomic.
var _ repository.Atomic = (*Atomic)(nil)
