package redis

import (
	"context"
	"time"

	"junket/internal/domain"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleaseTripLock(ctx context.Context, tripID string) error
}

// SharingCacheInterface defines the interface for the trip sharing cache.
type SharingCacheInterface interface {
	Get(ctx context.Context, tripID string) (*domain.TripSharing, error)
	Set(ctx context.Context, sharing *domain.TripSharing) error
	Invalidate(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface    = (*LockStore)(nil)
	_ SharingCacheInterface = (*SharingCache)(nil)
)
