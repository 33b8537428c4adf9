package service

import (
	"context"
	"errors"
	"time"

	"junket/internal/domain"
	"junket/internal/repository"
)

// StatsService computes per-customer stats from the ledger and sums them
// into trip totals. All methods are read-only; persisting the results is
// the reconciliation orchestrator's job.
type StatsService struct{}

// NewStatsService creates a new StatsService.
func NewStatsService() *StatsService {
	return &StatsService{}
}

// ComputeCustomerStats derives a customer's stats for one trip from the
// completed transactions and verified rolling records.
//
// When the ledger holds no verified rolling records for the customer, a
// previously stored stats row (if any) supplies the rolling amount - and,
// when there are no completed transactions either, the four totals as well.
// This preserves manually entered figures until real ledger entries arrive.
// A missing trip or customer yields all-zero stats, never an error.
func (s *StatsService) ComputeCustomerStats(ctx context.Context, r repository.Repositories, tripID, customerID string) (*domain.TripCustomerStats, error) {
	stats := &domain.TripCustomerStats{
		TripID:     tripID,
		CustomerID: customerID,
		UpdatedAt:  time.Now(),
	}

	txs, err := r.Transactions.ListCompleted(ctx, tripID, customerID)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeBuyIn:
			stats.TotalBuyIn = stats.TotalBuyIn.Add(tx.Amount)
		case domain.TransactionTypeCashOut:
			stats.TotalCashOut = stats.TotalCashOut.Add(tx.Amount)
		case domain.TransactionTypeWin:
			stats.TotalWin = stats.TotalWin.Add(tx.Amount)
		case domain.TransactionTypeLoss:
			stats.TotalLoss = stats.TotalLoss.Add(tx.Amount)
		}
		// Other types carry no stats weight.
	}

	rollings, err := r.Rolling.ListVerified(ctx, tripID, customerID)
	if err != nil {
		return nil, err
	}

	if len(rollings) > 0 {
		for _, rec := range rollings {
			stats.RollingAmount = stats.RollingAmount.Add(rec.RollingAmount)
		}
	} else {
		stored, err := r.Stats.Get(ctx, tripID, customerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if stored != nil {
			stats.RollingAmount = stored.RollingAmount
			if len(txs) == 0 {
				stats.TotalBuyIn = stored.TotalBuyIn
				stats.TotalCashOut = stored.TotalCashOut
				stats.TotalWin = stored.TotalWin
				stats.TotalLoss = stored.TotalLoss
			}
		}
	}

	stats.ComputeNetResult()

	return stats, nil
}

// ComputeTripTotals sums all customer stats rows into trip-level totals.
// An empty list yields all-zero totals; a trip with no customers is a
// valid state, not an error.
func (s *StatsService) ComputeTripTotals(statsList []*domain.TripCustomerStats) domain.TripTotals {
	var totals domain.TripTotals

	for _, cs := range statsList {
		totals.TotalBuyIn = totals.TotalBuyIn.Add(cs.TotalBuyIn)
		totals.TotalCashOut = totals.TotalCashOut.Add(cs.TotalCashOut)
		totals.TotalWin = totals.TotalWin.Add(cs.TotalWin)
		totals.TotalLoss = totals.TotalLoss.Add(cs.TotalLoss)
	}

	totals.NetProfit = totals.TotalCashOut.Add(totals.TotalWin).
		Sub(totals.TotalBuyIn.Add(totals.TotalLoss))

	return totals
}
