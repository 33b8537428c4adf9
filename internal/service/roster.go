package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// RosterService manages which customers are on a trip and their agent
// assignments. Roster changes are reconciliation triggers like any other
// ledger mutation.
type RosterService struct {
	repos     repository.Repositories
	reconcile *ReconcileService
}

// NewRosterService creates a new RosterService.
func NewRosterService(repos repository.Repositories, reconcile *ReconcileService) *RosterService {
	return &RosterService{repos: repos, reconcile: reconcile}
}

// AddCustomer puts a customer on a trip: a zeroed stats row marks the
// membership, and if the customer has a home agent an assignment is
// created at the agent's standing rate. Adding a customer who is already
// on the trip is a no-op apart from the reconciliation.
func (s *RosterService) AddCustomer(ctx context.Context, tripID, customerID string) (*domain.TripCustomerStats, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}

	customer, err := s.repos.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	_, err = s.repos.Stats.Get(ctx, tripID, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		zeroed := &domain.TripCustomerStats{
			TripID:     tripID,
			CustomerID: customerID,
			UpdatedAt:  time.Now(),
		}
		if err := s.repos.Stats.Upsert(ctx, zeroed); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if customer.AgentID != "" {
		agent, err := s.repos.Agents.GetByID(ctx, customer.AgentID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if agent != nil {
			assignment := &domain.AgentCustomerAssignment{
				ID:             uuid.New().String(),
				TripID:         tripID,
				AgentID:        agent.ID,
				CustomerID:     customerID,
				CommissionRate: agent.CommissionRate,
				CreatedAt:      time.Now(),
			}
			if err := s.repos.Assignments.CreateIfAbsent(ctx, assignment); err != nil {
				return nil, err
			}
		}
	}

	return s.reconcile.RecomputeCustomer(ctx, tripID, customerID)
}

// RemoveCustomer takes a customer off a trip: the stats row and any agent
// assignments are deleted, and the reconciliation reverses the customer's
// contribution to trip totals, sharing, and agent lifetime stats.
func (s *RosterService) RemoveCustomer(ctx context.Context, tripID, customerID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}
	if customerID == "" {
		return ErrInvalidCustomerID
	}

	if err := s.repos.Stats.Delete(ctx, tripID, customerID); err != nil {
		return err
	}

	if err := s.repos.Assignments.DeleteByCustomer(ctx, tripID, customerID); err != nil {
		return err
	}

	_, err := s.reconcile.ReconcileTrip(ctx, tripID)
	return err
}

// UpdateAssignmentRate changes one assignment's per-trip commission rate
// and reconciles the trip.
func (s *RosterService) UpdateAssignmentRate(ctx context.Context, tripID, agentID, customerID string, rate decimal.Decimal) error {
	if tripID == "" {
		return ErrInvalidTripID
	}
	if agentID == "" {
		return ErrInvalidAgentID
	}
	if customerID == "" {
		return ErrInvalidCustomerID
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return ErrInvalidCommissionRate
	}

	if err := s.repos.Assignments.UpdateRate(ctx, tripID, agentID, customerID, rate); err != nil {
		return err
	}

	_, err := s.reconcile.ReconcileTrip(ctx, tripID)
	return err
}

// EditStatsRequest contains a manual stats edit. Manual figures survive
// reconciliation only while the ledger has no entries for the customer;
// real ledger data always wins once it exists.
type EditStatsRequest struct {
	TripID        string
	CustomerID    string
	TotalBuyIn    decimal.Decimal
	TotalCashOut  decimal.Decimal
	TotalWin      decimal.Decimal
	TotalLoss     decimal.Decimal
	RollingAmount decimal.Decimal
}

// EditCustomerStats applies a manual stats edit for a customer already on
// the trip, then reconciles.
func (s *RosterService) EditCustomerStats(ctx context.Context, req EditStatsRequest) (*domain.TripCustomerStats, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}

	if _, err := s.repos.Stats.Get(ctx, req.TripID, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotOnTrip
		}
		return nil, err
	}

	edited := &domain.TripCustomerStats{
		TripID:        req.TripID,
		CustomerID:    req.CustomerID,
		TotalBuyIn:    req.TotalBuyIn,
		TotalCashOut:  req.TotalCashOut,
		TotalWin:      req.TotalWin,
		TotalLoss:     req.TotalLoss,
		RollingAmount: req.RollingAmount,
		UpdatedAt:     time.Now(),
	}
	edited.ComputeNetResult()

	if err := s.repos.Stats.Upsert(ctx, edited); err != nil {
		return nil, err
	}

	return s.reconcile.RecomputeCustomer(ctx, req.TripID, req.CustomerID)
}
