package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripCustomerStats is the derived per-customer summary for one trip.
// One row exists per (trip, customer); the engine upserts it on every
// reconciliation and deletes it when the customer leaves the trip.
//
// NetResult is from the customer's perspective:
//
//	net = (cash out + win) - (buy in + loss)
//
// so a positive value means the customer is ahead.
type TripCustomerStats struct {
	TripID           string
	CustomerID       string
	TotalBuyIn       decimal.Decimal
	TotalCashOut     decimal.Decimal
	TotalWin         decimal.Decimal
	TotalLoss        decimal.Decimal
	NetResult        decimal.Decimal
	RollingAmount    decimal.Decimal
	CommissionEarned decimal.Decimal
	UpdatedAt        time.Time
}

// ComputeNetResult recalculates NetResult from the four totals.
func (s *TripCustomerStats) ComputeNetResult() {
	s.NetResult = s.TotalCashOut.Add(s.TotalWin).Sub(s.TotalBuyIn.Add(s.TotalLoss))
}
