package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"junket/internal/repository"
	"junket/internal/service"
)

// RosterHandler handles HTTP requests for trip rosters and agents.
type RosterHandler struct {
	rosterService    *service.RosterService
	reconcileService *service.ReconcileService
	agentRepo        repository.AgentRepository
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService, reconcileService *service.ReconcileService, agentRepo repository.AgentRepository) *RosterHandler {
	return &RosterHandler{
		rosterService:    rosterService,
		reconcileService: reconcileService,
		agentRepo:        agentRepo,
	}
}

// AddCustomerRequest is the JSON body for putting a customer on a trip.
type AddCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

// AddCustomer handles POST /v1/trips/:id/customers
func (h *RosterHandler) AddCustomer(c *gin.Context) {
	var req AddCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.rosterService.AddCustomer(c.Request.Context(), c.Param("id"), req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newCustomerStatsResponse(stats))
}

// RemoveCustomer handles DELETE /v1/trips/:id/customers/:customerID
func (h *RosterHandler) RemoveCustomer(c *gin.Context) {
	err := h.rosterService.RemoveCustomer(c.Request.Context(), c.Param("id"), c.Param("customerID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EditStatsRequest is the JSON body for a manual customer stats edit.
type EditStatsRequest struct {
	TotalBuyIn    decimal.Decimal `json:"total_buy_in"`
	TotalCashOut  decimal.Decimal `json:"total_cash_out"`
	TotalWin      decimal.Decimal `json:"total_win"`
	TotalLoss     decimal.Decimal `json:"total_loss"`
	RollingAmount decimal.Decimal `json:"rolling_amount"`
}

// EditCustomerStats handles PUT /v1/trips/:id/customers/:customerID/stats
func (h *RosterHandler) EditCustomerStats(c *gin.Context) {
	var req EditStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.rosterService.EditCustomerStats(c.Request.Context(), service.EditStatsRequest{
		TripID:        c.Param("id"),
		CustomerID:    c.Param("customerID"),
		TotalBuyIn:    req.TotalBuyIn,
		TotalCashOut:  req.TotalCashOut,
		TotalWin:      req.TotalWin,
		TotalLoss:     req.TotalLoss,
		RollingAmount: req.RollingAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newCustomerStatsResponse(stats))
}

// RecomputeCustomer handles POST /v1/trips/:id/customers/:customerID/recalculate
func (h *RosterHandler) RecomputeCustomer(c *gin.Context) {
	stats, err := h.reconcileService.RecomputeCustomer(c.Request.Context(), c.Param("id"), c.Param("customerID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newCustomerStatsResponse(stats))
}

// UpdateRateRequest is the JSON body for a per-trip commission rate edit.
type UpdateRateRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// UpdateAssignmentRate handles PUT /v1/trips/:id/agents/:agentID/customers/:customerID/rate
func (h *RosterHandler) UpdateAssignmentRate(c *gin.Context) {
	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.rosterService.UpdateAssignmentRate(
		c.Request.Context(),
		c.Param("id"),
		c.Param("agentID"),
		c.Param("customerID"),
		req.CommissionRate,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AgentResponse is the HTTP response for agent reads, including the
// lifetime figures the engine maintains.
type AgentResponse struct {
	AgentID         string          `json:"agent_id"`
	Name            string          `json:"name"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalTrips      int             `json:"total_trips"`
	CreatedAt       string          `json:"created_at"`
}

// GetAgent handles GET /v1/agents/:id
func (h *RosterHandler) GetAgent(c *gin.Context) {
	agent, err := h.agentRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AgentResponse{
		AgentID:         agent.ID,
		Name:            agent.Name,
		CommissionRate:  agent.CommissionRate,
		TotalCommission: agent.TotalCommission,
		TotalTrips:      agent.TotalTrips,
		CreatedAt:       agent.CreatedAt.Format(time.RFC3339),
	})
}
