package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"junket/internal/domain"
)

// SharingCache stores the last reconciled TripSharing per trip. It is a
// fallback for the read path when a concurrent reconciliation holds the
// trip lock; the database rows remain the source of truth.
type SharingCache struct {
	client *redis.Client
}

// NewSharingCache creates a new SharingCache.
func NewSharingCache(client *redis.Client) *SharingCache {
	return &SharingCache{client: client}
}

// SharingCacheTTL bounds how stale a cached sharing value can get.
const SharingCacheTTL = 60 * time.Second

const sharingCachePrefix = "cache:sharing:"

type cachedAgentShare struct {
	AgentID        string          `json:"agent_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	ShareAmount    decimal.Decimal `json:"share_amount"`
}

type cachedSharing struct {
	TripID                 string             `json:"trip_id"`
	TotalWinLoss           decimal.Decimal    `json:"total_win_loss"`
	TotalExpenses          decimal.Decimal    `json:"total_expenses"`
	TotalRollingCommission decimal.Decimal    `json:"total_rolling_commission"`
	TotalBuyIn             decimal.Decimal    `json:"total_buy_in"`
	TotalBuyOut            decimal.Decimal    `json:"total_buy_out"`
	NetCashFlow            decimal.Decimal    `json:"net_cash_flow"`
	NetResult              decimal.Decimal    `json:"net_result"`
	TotalAgentShare        decimal.Decimal    `json:"total_agent_share"`
	CompanyShare           decimal.Decimal    `json:"company_share"`
	AgentSharePercentage   decimal.Decimal    `json:"agent_share_percentage"`
	CompanySharePercentage decimal.Decimal    `json:"company_share_percentage"`
	AgentBreakdown         []cachedAgentShare `json:"agent_breakdown"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// Get retrieves the cached sharing value for a trip. Returns nil on a miss.
func (s *SharingCache) Get(ctx context.Context, tripID string) (*domain.TripSharing, error) {
	key := sharingCachePrefix + tripID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cached cachedSharing
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	sharing := &domain.TripSharing{
		TripID:                 cached.TripID,
		TotalWinLoss:           cached.TotalWinLoss,
		TotalExpenses:          cached.TotalExpenses,
		TotalRollingCommission: cached.TotalRollingCommission,
		TotalBuyIn:             cached.TotalBuyIn,
		TotalBuyOut:            cached.TotalBuyOut,
		NetCashFlow:            cached.NetCashFlow,
		NetResult:              cached.NetResult,
		TotalAgentShare:        cached.TotalAgentShare,
		CompanyShare:           cached.CompanyShare,
		AgentSharePercentage:   cached.AgentSharePercentage,
		CompanySharePercentage: cached.CompanySharePercentage,
		UpdatedAt:              cached.UpdatedAt,
	}
	for _, share := range cached.AgentBreakdown {
		sharing.AgentBreakdown = append(sharing.AgentBreakdown, domain.AgentShare{
			AgentID:        share.AgentID,
			CommissionRate: share.CommissionRate,
			ShareAmount:    share.ShareAmount,
		})
	}

	return sharing, nil
}

// Set stores the sharing value for a trip.
func (s *SharingCache) Set(ctx context.Context, sharing *domain.TripSharing) error {
	cached := cachedSharing{
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
		UpdatedAt:              sharing.UpdatedAt,
	}
	for _, share := range sharing.AgentBreakdown {
		cached.AgentBreakdown = append(cached.AgentBreakdown, cachedAgentShare{
			AgentID:        share.AgentID,
			CommissionRate: share.CommissionRate,
			ShareAmount:    share.ShareAmount,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sharingCachePrefix+sharing.TripID, data, SharingCacheTTL).Err()
}

// Invalidate removes the cached sharing value for a trip.
func (s *SharingCache) Invalidate(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, sharingCachePrefix+tripID).Err()
}
