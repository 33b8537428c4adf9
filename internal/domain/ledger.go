package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger transaction.
type TransactionType string

const (
	TransactionTypeBuyIn      TransactionType = "BUY_IN"
	TransactionTypeCashOut    TransactionType = "CASH_OUT"
	TransactionTypeWin        TransactionType = "WIN"
	TransactionTypeLoss       TransactionType = "LOSS"
	TransactionTypeRolling    TransactionType = "ROLLING"
	TransactionTypeCommission TransactionType = "COMMISSION"
	TransactionTypeOther      TransactionType = "OTHER"
)

// TransactionStatus represents the current status of a transaction.
// Only completed transactions count toward customer stats.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a single ledger entry for a customer on a trip.
type Transaction struct {
	ID         string
	TripID     string
	CustomerID string
	Amount     decimal.Decimal
	Type       TransactionType
	Status     TransactionStatus
	CreatedAt  time.Time
}

// RollingRecord records chip turnover (rolling volume) for a customer on a
// trip. Only verified records count toward rolling totals.
type RollingRecord struct {
	ID            string
	TripID        string
	CustomerID    string
	RollingAmount decimal.Decimal
	Verified      bool
	CreatedAt     time.Time
}

// Expense is a trip-level cost. Every expense counts toward the trip's
// total cost regardless of what it was for.
type Expense struct {
	ID          string
	TripID      string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeBuyIn, TransactionTypeCashOut, TransactionTypeWin,
		TransactionTypeLoss, TransactionTypeRolling, TransactionTypeCommission,
		TransactionTypeOther:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a known transaction status.
func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusCancelled:
		return true
	}
	return false
}
