package domain

import "time"

// Customer represents a junket customer. AgentID is the customer's home
// agent; it may be empty for walk-in customers with no agent relationship.
type Customer struct {
	ID        string
	Name      string
	AgentID   string
	CreatedAt time.Time
}
