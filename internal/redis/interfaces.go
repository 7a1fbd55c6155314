package redis

import (
	"context"
	"time"
)

// SessionStoreInterface defines the interface for session operations.
type SessionStoreInterface interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePayoutLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleasePayoutLock(ctx context.Context, driverID string) error
}

// CacheStoreInterface defines the interface for dashboard caching.
type CacheStoreInterface interface {
	GetMetrics(ctx context.Context) (*CachedMetrics, error)
	SetMetrics(ctx context.Context, metrics *CachedMetrics) error
	InvalidateMetrics(ctx context.Context) error
	GetTopVehicles(ctx context.Context, limit int) ([]CachedTopVehicle, error)
	SetTopVehicles(ctx context.Context, limit int, vehicles []CachedTopVehicle) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ CacheStoreInterface   = (*CacheStore)(nil)
)
