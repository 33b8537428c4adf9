package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/service"
)

// LedgerHandler handles HTTP requests for ledger entries: transactions,
// rolling records, and expenses. Every mutation reconciles the trip before
// responding.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateTransactionRequest is the JSON body for recording a transaction.
type CreateTransactionRequest struct {
	TripID     string          `json:"trip_id" binding:"required"`
	CustomerID string          `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Type       string          `json:"transaction_type" binding:"required"`
	Status     string          `json:"status"`
}

// TransactionResponse is the HTTP response for a recorded transaction.
type TransactionResponse struct {
	ID         string          `json:"id"`
	TripID     string          `json:"trip_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"transaction_type"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
}

// CreateTransaction handles POST /v1/transactions
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tx, err := h.ledgerService.RecordTransaction(c.Request.Context(), service.RecordTransactionRequest{
		TripID:     req.TripID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Type:       domain.TransactionType(req.Type),
		Status:     domain.TransactionStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, TransactionResponse{
		ID:         tx.ID,
		TripID:     tx.TripID,
		CustomerID: tx.CustomerID,
		Amount:     tx.Amount,
		Type:       string(tx.Type),
		Status:     string(tx.Status),
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	})
}

// CreateRollingRequest is the JSON body for recording a rolling record.
type CreateRollingRequest struct {
	TripID        string          `json:"trip_id" binding:"required"`
	CustomerID    string          `json:"customer_id" binding:"required"`
	RollingAmount decimal.Decimal `json:"rolling_amount" binding:"required"`
	Verified      bool            `json:"verified"`
}

// RollingResponse is the HTTP response for a rolling record.
type RollingResponse struct {
	ID            string          `json:"id"`
	TripID        string          `json:"trip_id"`
	CustomerID    string          `json:"customer_id"`
	RollingAmount decimal.Decimal `json:"rolling_amount"`
	Verified      bool            `json:"verified"`
	CreatedAt     string          `json:"created_at"`
}

// CreateRolling handles POST /v1/rolling-records
func (h *LedgerHandler) CreateRolling(c *gin.Context) {
	var req CreateRollingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rec, err := h.ledgerService.RecordRolling(c.Request.Context(), service.RecordRollingRequest{
		TripID:        req.TripID,
		CustomerID:    req.CustomerID,
		RollingAmount: req.RollingAmount,
		Verified:      req.Verified,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newRollingResponse(rec))
}

// VerifyRolling handles POST /v1/rolling-records/:id/verify
func (h *LedgerHandler) VerifyRolling(c *gin.Context) {
	rec, err := h.ledgerService.VerifyRolling(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRollingResponse(rec))
}

// CreateExpenseRequest is the JSON body for recording an expense.
type CreateExpenseRequest struct {
	TripID      string          `json:"trip_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest is the JSON body for updating an expense.
type UpdateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// ExpenseResponse is the HTTP response for an expense.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

// CreateExpense handles POST /v1/expenses
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	exp, err := h.ledgerService.RecordExpense(c.Request.Context(), service.RecordExpenseRequest{
		TripID:      req.TripID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newExpenseResponse(exp))
}

// UpdateExpense handles PUT /v1/expenses/:id
func (h *LedgerHandler) UpdateExpense(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	exp, err := h.ledgerService.UpdateExpense(c.Request.Context(), service.UpdateExpenseRequest{
		ExpenseID:   c.Param("id"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newExpenseResponse(exp))
}

// DeleteExpense handles DELETE /v1/expenses/:id
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	if err := h.ledgerService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func newRollingResponse(rec *domain.RollingRecord) RollingResponse {
	return RollingResponse{
		ID:            rec.ID,
		TripID:        rec.TripID,
		CustomerID:    rec.CustomerID,
		RollingAmount: rec.RollingAmount,
		Verified:      rec.Verified,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}

func newExpenseResponse(exp *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          exp.ID,
		TripID:      exp.TripID,
		Amount:      exp.Amount,
		Description: exp.Description,
		CreatedAt:   exp.CreatedAt.Format(time.RFC3339),
	}
}
