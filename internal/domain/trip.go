package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus represents the current status of a junket trip.
type TripStatus string

const (
	TripStatusPlanned   TripStatus = "PLANNED"
	TripStatusActive    TripStatus = "ACTIVE"
	TripStatusCompleted TripStatus = "COMPLETED"
)

// Trip represents a junket trip. The financial fields (TotalWin, TotalLoss,
// NetProfit) are derived and owned by the reconciliation engine; everything
// else is master data maintained by the back office.
type Trip struct {
	ID        string
	Name      string
	Status    TripStatus
	TotalWin  decimal.Decimal
	TotalLoss decimal.Decimal
	NetProfit decimal.Decimal
	CreatedAt time.Time
}

// TripTotals holds the trip-level sums over all customer stats rows.
// NetProfit is from the customer perspective: positive means the customers
// collectively won.
type TripTotals struct {
	TotalBuyIn   decimal.Decimal
	TotalCashOut decimal.Decimal
	TotalWin     decimal.Decimal
	TotalLoss    decimal.Decimal
	NetProfit    decimal.Decimal
}
