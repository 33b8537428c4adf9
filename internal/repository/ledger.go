package repository

import (
	"context"

	"junket/internal/domain"
)

// TransactionRepository defines persistence operations for ledger
// transactions. The engine only ever reads completed transactions; writes
// come from the trigger endpoints.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, tx *domain.Transaction) error

	// ListCompleted retrieves all completed transactions for a customer
	// on a trip.
	ListCompleted(ctx context.Context, tripID, customerID string) ([]*domain.Transaction, error)
}

// RollingRecordRepository defines persistence operations for rolling
// (chip turnover) records.
type RollingRecordRepository interface {
	// Create persists a new rolling record.
	Create(ctx context.Context, rec *domain.RollingRecord) error

	// GetByID retrieves a rolling record by ID.
	GetByID(ctx context.Context, id string) (*domain.RollingRecord, error)

	// MarkVerified flags a rolling record as verified so it counts
	// toward rolling totals.
	MarkVerified(ctx context.Context, id string) error

	// ListVerified retrieves all verified rolling records for a customer
	// on a trip.
	ListVerified(ctx context.Context, tripID, customerID string) ([]*domain.RollingRecord, error)
}

// ExpenseRepository defines persistence operations for trip expenses.
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, exp *domain.Expense) error

	// GetByID retrieves an expense by ID.
	GetByID(ctx context.Context, id string) (*domain.Expense, error)

	// Update updates an existing expense.
	Update(ctx context.Context, exp *domain.Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id string) error

	// ListByTrip retrieves all expenses for a trip.
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error)
}
