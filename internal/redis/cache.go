package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles dashboard caching in Redis. Dashboard aggregates are
// recomputed from SQL on every miss; the cache only smooths repeated loads.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	MetricsCacheTTL     = 30 * time.Second // today's revenue moves with every trip
	TopVehiclesCacheTTL = 60 * time.Second
)

// Key prefixes
const (
	metricsCacheKey        = "cache:dashboard:metrics"
	topVehiclesCachePrefix = "cache:dashboard:top_vehicles:"
)

// CachedMetrics represents cached dashboard summary metrics.
type CachedMetrics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	NetProfit      float64 `json:"net_profit"`
	ActiveVehicles int     `json:"active_vehicles"`
	TotalDrivers   int     `json:"total_drivers"`
}

// CachedTopVehicle represents one cached top-performing vehicle row.
type CachedTopVehicle struct {
	VehicleID          string  `json:"vehicle_id"`
	RegistrationNumber string  `json:"registration_number"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	TripCount          int     `json:"trip_count"`
	Revenue            float64 `json:"revenue"`
}

// GetMetrics retrieves dashboard metrics from cache.
func (s *CacheStore) GetMetrics(ctx context.Context) (*CachedMetrics, error) {
	data, err := s.client.Get(ctx, metricsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var metrics CachedMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// SetMetrics stores dashboard metrics in cache.
func (s *CacheStore) SetMetrics(ctx context.Context, metrics *CachedMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, metricsCacheKey, data, MetricsCacheTTL).Err()
}

// InvalidateMetrics removes dashboard metrics from cache. Called when a trip
// or expense mutation would make the cached summary stale.
func (s *CacheStore) InvalidateMetrics(ctx context.Context) error {
	return s.client.Del(ctx, metricsCacheKey).Err()
}

// GetTopVehicles retrieves a cached top-vehicles ranking for the given limit.
func (s *CacheStore) GetTopVehicles(ctx context.Context, limit int) ([]CachedTopVehicle, error) {
	key := topVehiclesCachePrefix + strconv.Itoa(limit)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var vehicles []CachedTopVehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SetTopVehicles stores a top-vehicles ranking in cache.
func (s *CacheStore) SetTopVehicles(ctx context.Context, limit int, vehicles []CachedTopVehicle) error {
	key := topVehiclesCachePrefix + strconv.Itoa(limit)
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, TopVehiclesCacheTTL).Err()
}
