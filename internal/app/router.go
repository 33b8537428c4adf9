package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"junket/internal/handler"
	"junket/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler   *handler.TripHandler
	LedgerHandler *handler.LedgerHandler
	RosterHandler *handler.RosterHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip routes: reads plus the reconciliation triggers.
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.GET("/:id/stats", deps.TripHandler.GetStats)
			trips.GET("/:id/sharing", deps.TripHandler.GetSharing)
			trips.POST("/:id/recalculate", deps.TripHandler.Recalculate)

			trips.POST("/:id/customers", deps.RosterHandler.AddCustomer)
			trips.DELETE("/:id/customers/:customerID", deps.RosterHandler.RemoveCustomer)
			trips.PUT("/:id/customers/:customerID/stats", deps.RosterHandler.EditCustomerStats)
			trips.POST("/:id/customers/:customerID/recalculate", deps.RosterHandler.RecomputeCustomer)
			trips.PUT("/:id/agents/:agentID/customers/:customerID/rate", deps.RosterHandler.UpdateAssignmentRate)
		}

		// Ledger routes: every mutation triggers a trip reconciliation.
		v1.POST("/transactions", deps.LedgerHandler.CreateTransaction)

		rolling := v1.Group("/rolling-records")
		{
			rolling.POST("", deps.LedgerHandler.CreateRolling)
			rolling.POST("/:id/verify", deps.LedgerHandler.VerifyRolling)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.POST("", deps.LedgerHandler.CreateExpense)
			expenses.PUT("/:id", deps.LedgerHandler.UpdateExpense)
			expenses.DELETE("/:id", deps.LedgerHandler.DeleteExpense)
		}

		// Agent routes.
		v1.GET("/agents/:id", deps.RosterHandler.GetAgent)
	}

	return router
}
