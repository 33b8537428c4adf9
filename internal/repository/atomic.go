package repository

import "context"

// Repositories bundles every repository the reconciliation cascade touches.
// An Atomic implementation hands a transaction-scoped bundle to the
// callback so the whole cascade commits or rolls back as one unit.
type Repositories struct {
	Transactions TransactionRepository
	Rolling      RollingRecordRepository
	Expenses     ExpenseRepository
	Assignments  AssignmentRepository
	Customers    CustomerRepository
	Agents       AgentRepository
	Trips        TripRepository
	Stats        StatsRepository
	Sharing      SharingRepository
}

// Atomic runs a function against a repository bundle inside a single
// storage transaction.
type Atomic interface {
	// Within begins a transaction, invokes fn with transaction-scoped
	// repositories, and commits if fn returns nil. Any error rolls the
	// transaction back and is returned.
	Within(ctx context.Context, fn func(r Repositories) error) error
}
