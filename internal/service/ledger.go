package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
)

// LedgerService records the raw ledger entries (transactions, rolling
// records, expenses) and triggers a trip reconciliation after every
// mutation. The writes themselves carry no numeric logic; all derived
// figures come out of the reconciliation cascade.
type LedgerService struct {
	repos     repository.Repositories
	reconcile *ReconcileService
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repos repository.Repositories, reconcile *ReconcileService) *LedgerService {
	return &LedgerService{repos: repos, reconcile: reconcile}
}

// RecordTransactionRequest contains the parameters for recording a
// transaction.
type RecordTransactionRequest struct {
	TripID     string
	CustomerID string
	Amount     decimal.Decimal
	Type       domain.TransactionType
	Status     domain.TransactionStatus
}

// RecordTransaction persists a transaction and reconciles the trip.
func (s *LedgerService) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*domain.Transaction, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidTransactionType(req.Type) {
		return nil, ErrInvalidTransactionType
	}
	if req.Status == "" {
		req.Status = domain.TransactionStatusCompleted
	}
	if !domain.ValidTransactionStatus(req.Status) {
		return nil, ErrInvalidTransactionStatus
	}

	tx := &domain.Transaction{
		ID:         uuid.New().String(),
		TripID:     req.TripID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Type:       req.Type,
		Status:     req.Status,
		CreatedAt:  time.Now(),
	}

	if err := s.repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.reconcile.ReconcileTrip(ctx, req.TripID); err != nil {
		return nil, err
	}

	return tx, nil
}

// RecordRollingRequest contains the parameters for recording a rolling
// record.
type RecordRollingRequest struct {
	TripID        string
	CustomerID    string
	RollingAmount decimal.Decimal
	Verified      bool
}

// RecordRolling persists a rolling record and reconciles the trip.
func (s *LedgerService) RecordRolling(ctx context.Context, req RecordRollingRequest) (*domain.RollingRecord, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !req.RollingAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	rec := &domain.RollingRecord{
		ID:            uuid.New().String(),
		TripID:        req.TripID,
		CustomerID:    req.CustomerID,
		RollingAmount: req.RollingAmount,
		Verified:      req.Verified,
		CreatedAt:     time.Now(),
	}

	if err := s.repos.Rolling.Create(ctx, rec); err != nil {
		return nil, err
	}

	if _, err := s.reconcile.ReconcileTrip(ctx, req.TripID); err != nil {
		return nil, err
	}

	return rec, nil
}

// VerifyRolling marks a rolling record as verified and reconciles the
// trip, pulling the record into the rolling totals.
func (s *LedgerService) VerifyRolling(ctx context.Context, recordID string) (*domain.RollingRecord, error) {
	if recordID == "" {
		return nil, ErrInvalidRollingRecordID
	}

	rec, err := s.repos.Rolling.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if !rec.Verified {
		if err := s.repos.Rolling.MarkVerified(ctx, recordID); err != nil {
			return nil, err
		}
		rec.Verified = true
	}

	if _, err := s.reconcile.ReconcileTrip(ctx, rec.TripID); err != nil {
		return nil, err
	}

	return rec, nil
}

// RecordExpenseRequest contains the parameters for recording an expense.
type RecordExpenseRequest struct {
	TripID      string
	Amount      decimal.Decimal
	Description string
}

// RecordExpense persists an expense and reconciles the trip.
func (s *LedgerService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*domain.Expense, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	exp := &domain.Expense{
		ID:          uuid.New().String(),
		TripID:      req.TripID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.repos.Expenses.Create(ctx, exp); err != nil {
		return nil, err
	}

	if _, err := s.reconcile.ReconcileTrip(ctx, req.TripID); err != nil {
		return nil, err
	}

	return exp, nil
}

// UpdateExpenseRequest contains the parameters for updating an expense.
type UpdateExpenseRequest struct {
	ExpenseID   string
	Amount      decimal.Decimal
	Description string
}

// UpdateExpense changes an expense and reconciles its trip.
func (s *LedgerService) UpdateExpense(ctx context.Context, req UpdateExpenseRequest) (*domain.Expense, error) {
	if req.ExpenseID == "" {
		return nil, ErrInvalidExpenseID
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	exp, err := s.repos.Expenses.GetByID(ctx, req.ExpenseID)
	if err != nil {
		return nil, err
	}

	exp.Amount = req.Amount
	exp.Description = req.Description

	if err := s.repos.Expenses.Update(ctx, exp); err != nil {
		return nil, err
	}

	if _, err := s.reconcile.ReconcileTrip(ctx, exp.TripID); err != nil {
		return nil, err
	}

	return exp, nil
}

// DeleteExpense removes an expense and reconciles its trip.
func (s *LedgerService) DeleteExpense(ctx context.Context, expenseID string) error {
	if expenseID == "" {
		return ErrInvalidExpenseID
	}

	exp, err := s.repos.Expenses.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}

	if err := s.repos.Expenses.Delete(ctx, expenseID); err != nil {
		return err
	}

	_, err = s.reconcile.ReconcileTrip(ctx, exp.TripID)
	return err
}
