package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentShare is one agent's accumulated commission for a trip, as stored in
// the trip sharing breakdown. A positive ShareAmount is owed to the agent; a
// negative one is the agent's share of the house's loss.
type AgentShare struct {
	AgentID        string
	CommissionRate decimal.Decimal
	ShareAmount    decimal.Decimal
}

// TripSharing is the derived profit-sharing summary for a trip: the house
// win/loss, rolling commission, expenses, and the agent/company split. One
// row exists per trip and is replaced on every reconciliation.
//
// TotalWinLoss and NetResult are from the house's perspective (customers
// losing money is positive for the house). The two percentage fields
// describe the magnitude split between agents and company only; direction
// is carried by the signed amounts.
type TripSharing struct {
	TripID                 string
	TotalWinLoss           decimal.Decimal
	TotalExpenses          decimal.Decimal
	TotalRollingCommission decimal.Decimal
	TotalBuyIn             decimal.Decimal
	TotalBuyOut            decimal.Decimal
	NetCashFlow            decimal.Decimal
	NetResult              decimal.Decimal
	TotalAgentShare        decimal.Decimal
	CompanyShare           decimal.Decimal
	AgentSharePercentage   decimal.Decimal
	CompanySharePercentage decimal.Decimal
	AgentBreakdown         []AgentShare
	UpdatedAt              time.Time
}
