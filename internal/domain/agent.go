package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent represents a junket agent. CommissionRate is the agent's standing
// rate in percent (0-100), used as the default when the agent's customers
// are added to a trip. TotalCommission and TotalTrips are lifetime figures
// owned by the reconciliation engine.
type Agent struct {
	ID              string
	Name            string
	CommissionRate  decimal.Decimal
	TotalCommission decimal.Decimal
	TotalTrips      int
	CreatedAt       time.Time
}

// AgentCustomerAssignment links an agent to one of their customers on a
// specific trip. The commission rate defaults to the agent's standing rate
// but is editable per trip per customer. At most one assignment exists per
// (trip, agent, customer).
type AgentCustomerAssignment struct {
	ID             string
	TripID         string
	AgentID        string
	CustomerID     string
	CommissionRate decimal.Decimal
	CreatedAt      time.Time
}
