package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// rollingCommissionRate is the house take on rolling volume: 1.4%,
// applied uniformly across the trip, not per agent.
var rollingCommissionRate = decimal.NewFromFloat(0.014)

var hundred = decimal.NewFromInt(100)

// SharingService derives the trip sharing summary: rolling commission,
// per-agent commissions, company share, and the agent/company percentage
// split. The calculation always completes; missing agents, rates, or
// stats rows contribute zero rather than failing the run.
type SharingService struct{}

// NewSharingService creates a new SharingService.
func NewSharingService() *SharingService {
	return &SharingService{}
}

// BuildSharing computes the TripSharing value for a trip from the current
// customer stats and trip totals. It also returns each customer's agent
// commission so the orchestrator can write it back into the stats rows.
func (s *SharingService) BuildSharing(
	ctx context.Context,
	r repository.Repositories,
	tripID string,
	statsList []*domain.TripCustomerStats,
	totals domain.TripTotals,
) (*domain.TripSharing, map[string]decimal.Decimal, error) {
	expenses, err := r.Expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	var totalExpenses decimal.Decimal
	for _, exp := range expenses {
		totalExpenses = totalExpenses.Add(exp.Amount)
	}

	var totalRolling decimal.Decimal
	statsByCustomer := make(map[string]*domain.TripCustomerStats, len(statsList))
	for _, cs := range statsList {
		totalRolling = totalRolling.Add(cs.RollingAmount)
		statsByCustomer[cs.CustomerID] = cs
	}
	totalRollingCommission := totalRolling.Mul(rollingCommissionRate)

	assignments, err := r.Assignments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	// Accumulate commissions per agent, preserving first-seen order.
	var breakdown []domain.AgentShare
	agentIndex := make(map[string]int)
	customerCommissions := make(map[string]decimal.Decimal)

	for _, a := range assignments {
		var net decimal.Decimal
		if cs, ok := statsByCustomer[a.CustomerID]; ok {
			net = cs.NetResult
		}
		// An assignment without a stats row contributes zero.

		commission := AgentCommission(net, a.CommissionRate)

		idx, ok := agentIndex[a.AgentID]
		if !ok {
			idx = len(breakdown)
			agentIndex[a.AgentID] = idx
			breakdown = append(breakdown, domain.AgentShare{
				AgentID:        a.AgentID,
				CommissionRate: a.CommissionRate,
			})
		}
		breakdown[idx].ShareAmount = breakdown[idx].ShareAmount.Add(commission)
		customerCommissions[a.CustomerID] = customerCommissions[a.CustomerID].Add(commission)
	}

	var totalAgentShare decimal.Decimal
	for _, share := range breakdown {
		totalAgentShare = totalAgentShare.Add(share.ShareAmount)
	}

	// Flip to house perspective: customers losing money is a house win.
	houseWinLoss := totals.NetProfit.Neg()
	hasCustomers := len(statsList) > 0

	sharing := &domain.TripSharing{
		TripID:                 tripID,
		TotalExpenses:          totalExpenses,
		TotalRollingCommission: totalRollingCommission,
		TotalAgentShare:        totalAgentShare,
		AgentBreakdown:         breakdown,
		UpdatedAt:              time.Now(),
	}

	if hasCustomers {
		sharing.TotalWinLoss = houseWinLoss
		sharing.TotalBuyIn = totals.TotalBuyIn
		sharing.TotalBuyOut = totals.TotalCashOut
		sharing.NetCashFlow = totals.TotalCashOut.Sub(totals.TotalBuyIn)
		sharing.NetResult = houseWinLoss.Sub(totalRollingCommission).Sub(totalExpenses)
	} else {
		// Expenses are preserved even when the trip has no customers;
		// cash flow and win/loss are forced to zero.
		sharing.NetResult = totalExpenses.Neg()
	}

	sharing.CompanyShare = houseWinLoss.Sub(totalAgentShare).
		Add(totalRollingCommission).Sub(totalExpenses)

	sharing.AgentSharePercentage, sharing.CompanySharePercentage =
		SharePercentages(totalAgentShare, sharing.CompanyShare)

	return sharing, customerCommissions, nil
}

// AgentCommission computes an agent's commission for one customer from the
// customer's net result and the assignment's rate (percent).
//
// The agent is paid a cut of the house's win when the customer net-lost,
// and bears a share of the house's loss when the customer net-won:
//
//	net < 0: +|net| * rate / 100
//	net > 0: -|net| * rate / 100
//	net = 0: 0
func AgentCommission(netResult, rate decimal.Decimal) decimal.Decimal {
	return netResult.Mul(rate).Div(hundred).Neg()
}

// SharePercentages normalizes the agent and company shares into magnitude
// percentages rounded to two decimal places. Both are zero when both
// shares are zero; the sign of the split is carried by the raw amounts.
func SharePercentages(agentShare, companyShare decimal.Decimal) (agentPct, companyPct decimal.Decimal) {
	totalAmount := agentShare.Abs().Add(companyShare.Abs())
	if !totalAmount.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	agentPct = agentShare.Abs().Div(totalAmount).Mul(hundred).Round(2)
	companyPct = companyShare.Abs().Div(totalAmount).Mul(hundred).Round(2)
	return agentPct, companyPct
}
