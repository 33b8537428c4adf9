package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"junket/internal/domain"
	"junket/internal/repository"
	"junket/internal/service"
)

// TripHandler handles HTTP requests for trips and their derived figures.
type TripHandler struct {
	reconcileService *service.ReconcileService
	tripRepo         repository.TripRepository
	statsRepo        repository.StatsRepository
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(reconcileService *service.ReconcileService, tripRepo repository.TripRepository, statsRepo repository.StatsRepository) *TripHandler {
	return &TripHandler{
		reconcileService: reconcileService,
		tripRepo:         tripRepo,
		statsRepo:        statsRepo,
	}
}

// TripResponse is the HTTP response for trip reads.
type TripResponse struct {
	TripID    string          `json:"trip_id"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	TotalWin  decimal.Decimal `json:"total_win"`
	TotalLoss decimal.Decimal `json:"total_loss"`
	NetProfit decimal.Decimal `json:"net_profit"`
	CreatedAt string          `json:"created_at"`
}

// CustomerStatsResponse is one customer's derived stats on a trip.
type CustomerStatsResponse struct {
	TripID           string          `json:"trip_id"`
	CustomerID       string          `json:"customer_id"`
	TotalBuyIn       decimal.Decimal `json:"total_buy_in"`
	TotalCashOut     decimal.Decimal `json:"total_cash_out"`
	TotalWin         decimal.Decimal `json:"total_win"`
	TotalLoss        decimal.Decimal `json:"total_loss"`
	NetResult        decimal.Decimal `json:"net_result"`
	RollingAmount    decimal.Decimal `json:"rolling_amount"`
	CommissionEarned decimal.Decimal `json:"commission_earned"`
	UpdatedAt        string          `json:"updated_at"`
}

// TripTotalsResponse is the trip-level aggregate.
type TripTotalsResponse struct {
	TotalBuyIn   decimal.Decimal `json:"total_buy_in"`
	TotalCashOut decimal.Decimal `json:"total_cash_out"`
	TotalWin     decimal.Decimal `json:"total_win"`
	TotalLoss    decimal.Decimal `json:"total_loss"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// AgentShareResponse is one agent's slice of the trip sharing breakdown.
type AgentShareResponse struct {
	AgentID        string          `json:"agent_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	ShareAmount    decimal.Decimal `json:"share_amount"`
}

// SharingResponse is the trip sharing summary.
type SharingResponse struct {
	TripID                 string               `json:"trip_id"`
	TotalWinLoss           decimal.Decimal      `json:"total_win_loss"`
	TotalExpenses          decimal.Decimal      `json:"total_expenses"`
	TotalRollingCommission decimal.Decimal      `json:"total_rolling_commission"`
	TotalBuyIn             decimal.Decimal      `json:"total_buy_in"`
	TotalBuyOut            decimal.Decimal      `json:"total_buy_out"`
	NetCashFlow            decimal.Decimal      `json:"net_cash_flow"`
	NetResult              decimal.Decimal      `json:"net_result"`
	TotalAgentShare        decimal.Decimal      `json:"total_agent_share"`
	CompanyShare           decimal.Decimal      `json:"company_share"`
	AgentSharePercentage   decimal.Decimal      `json:"agent_share_percentage"`
	CompanySharePercentage decimal.Decimal      `json:"company_share_percentage"`
	AgentBreakdown         []AgentShareResponse `json:"agent_breakdown"`
	UpdatedAt              string               `json:"updated_at"`
}

// ReconcileResponse is the result of a full trip reconciliation.
type ReconcileResponse struct {
	Totals  TripTotalsResponse      `json:"totals"`
	Sharing SharingResponse         `json:"sharing"`
	Stats   []CustomerStatsResponse `json:"customer_stats"`
}

// Recalculate handles POST /v1/trips/:id/recalculate
func (h *TripHandler) Recalculate(c *gin.Context) {
	tripID := c.Param("id")

	result, err := h.reconcileService.ReconcileTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newReconcileResponse(result))
}

// GetSharing handles GET /v1/trips/:id/sharing
func (h *TripHandler) GetSharing(c *gin.Context) {
	tripID := c.Param("id")

	sharing, err := h.reconcileService.GetSharing(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newSharingResponse(sharing))
}

// GetStats handles GET /v1/trips/:id/stats
func (h *TripHandler) GetStats(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		respondError(c, service.ErrInvalidTripID)
		return
	}

	statsList, err := h.statsRepo.ListByTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CustomerStatsResponse, 0, len(statsList))
	for _, cs := range statsList {
		response = append(response, newCustomerStatsResponse(cs))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, newTripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}

func newTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:    trip.ID,
		Name:      trip.Name,
		Status:    string(trip.Status),
		TotalWin:  trip.TotalWin,
		TotalLoss: trip.TotalLoss,
		NetProfit: trip.NetProfit,
		CreatedAt: trip.CreatedAt.Format(time.RFC3339),
	}
}

func newCustomerStatsResponse(cs *domain.TripCustomerStats) CustomerStatsResponse {
	return CustomerStatsResponse{
		TripID:           cs.TripID,
		CustomerID:       cs.CustomerID,
		TotalBuyIn:       cs.TotalBuyIn,
		TotalCashOut:     cs.TotalCashOut,
		TotalWin:         cs.TotalWin,
		TotalLoss:        cs.TotalLoss,
		NetResult:        cs.NetResult,
		RollingAmount:    cs.RollingAmount,
		CommissionEarned: cs.CommissionEarned,
		UpdatedAt:        cs.UpdatedAt.Format(time.RFC3339),
	}
}

func newSharingResponse(sharing *domain.TripSharing) SharingResponse {
	response := SharingResponse{
		TripID:                 sharing.TripID,
		TotalWinLoss:           sharing.TotalWinLoss,
		TotalExpenses:          sharing.TotalExpenses,
		TotalRollingCommission: sharing.TotalRollingCommission,
		TotalBuyIn:             sharing.TotalBuyIn,
		TotalBuyOut:            sharing.TotalBuyOut,
		NetCashFlow:            sharing.NetCashFlow,
		NetResult:              sharing.NetResult,
		TotalAgentShare:        sharing.TotalAgentShare,
		CompanyShare:           sharing.CompanyShare,
		AgentSharePercentage:   sharing.AgentSharePercentage,
		CompanySharePercentage: sharing.CompanySharePercentage,
		AgentBreakdown:         make([]AgentShareResponse, 0, len(sharing.AgentBreakdown)),
		UpdatedAt:              sharing.UpdatedAt.Format(time.RFC3339),
	}

	for _, share := range sharing.AgentBreakdown {
		response.AgentBreakdown = append(response.AgentBreakdown, AgentShareResponse{
			AgentID:        share.AgentID,
			CommissionRate: share.CommissionRate,
			ShareAmount:    share.ShareAmount,
		})
	}

	return response
}

func newReconcileResponse(result *service.ReconcileResult) ReconcileResponse {
	response := ReconcileResponse{
		Totals: TripTotalsResponse{
			TotalBuyIn:   result.Totals.TotalBuyIn,
			TotalCashOut: result.Totals.TotalCashOut,
			TotalWin:     result.Totals.TotalWin,
			TotalLoss:    result.Totals.TotalLoss,
			NetProfit:    result.Totals.NetProfit,
		},
		Sharing: newSharingResponse(result.Sharing),
		Stats:   make([]CustomerStatsResponse, 0, len(result.Stats)),
	}

	for _, cs := range result.Stats {
		response.Stats = append(response.Stats, newCustomerStatsResponse(cs))
	}

	return response
}
