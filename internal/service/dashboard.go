package service

import (
	"context"
	"log"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// DefaultTopVehicles is the ranking size for the dashboard.
const DefaultTopVehicles = 5

// DefaultRecentTrips is the recent-trip list size for the dashboard.
const DefaultRecentTrips = 10

// DashboardMetrics is the today-at-a-glance summary.
type DashboardMetrics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	NetProfit      float64 `json:"net_profit"`
	ActiveVehicles int     `json:"active_vehicles"`
	TotalDrivers   int     `json:"total_drivers"`
}

// DashboardService computes the dashboard summary. Aggregates run as SQL in
// the repositories; Redis smooths repeated loads with a short TTL so a stale
// read is bounded to seconds.
type DashboardService struct {
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	expenseRepo repository.ExpenseRepository
	cacheStore  redis.CacheStoreInterface
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	expenseRepo repository.ExpenseRepository,
	cacheStore redis.CacheStoreInterface,
) *DashboardService {
	return &DashboardService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		expenseRepo: expenseRepo,
		cacheStore:  cacheStore,
	}
}

// startOfToday returns local midnight of the current day.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Metrics returns today's summary metrics, serving from cache when fresh.
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetMetrics(ctx)
		if err != nil {
			log.Printf("dashboard metrics cache read failed: %v", err)
		} else if cached != nil {
			return &DashboardMetrics{
				TotalRevenue:   cached.TotalRevenue,
				NetProfit:      cached.NetProfit,
				ActiveVehicles: cached.ActiveVehicles,
				TotalDrivers:   cached.TotalDrivers,
			}, nil
		}
	}

	since := startOfToday()

	revenue, err := s.tripRepo.CompletedRevenueSince(ctx, since)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.TotalSince(ctx, since)
	if err != nil {
		return nil, err
	}
	activeVehicles, err := s.vehicleRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalDrivers, err := s.driverRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		TotalRevenue:   revenue,
		NetProfit:      revenue - expenses,
		ActiveVehicles: activeVehicles,
		TotalDrivers:   totalDrivers,
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.SetMetrics(ctx, &redis.CachedMetrics{
			TotalRevenue:   metrics.TotalRevenue,
			NetProfit:      metrics.NetProfit,
			ActiveVehicles: metrics.ActiveVehicles,
			TotalDrivers:   metrics.TotalDrivers,
		}); err != nil {
			log.Printf("dashboard metrics cache write failed: %v", err)
		}
	}
	return metrics, nil
}

// TopVehicles returns today's vehicles ranked by completed-trip revenue.
func (s *DashboardService) TopVehicles(ctx context.Context, limit int) ([]repository.TopVehicle, error) {
	if limit <= 0 {
		limit = DefaultTopVehicles
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetTopVehicles(ctx, limit)
		if err != nil {
			log.Printf("top vehicles cache read failed: %v", err)
		} else if cached != nil {
			vehicles := make([]repository.TopVehicle, 0, len(cached))
			for _, v := range cached {
				vehicles = append(vehicles, repository.TopVehicle{
					VehicleID:          v.VehicleID,
					RegistrationNumber: v.RegistrationNumber,
					Make:               v.Make,
					Model:              v.Model,
					TripCount:          v.TripCount,
					Revenue:            v.Revenue,
				})
			}
			return vehicles, nil
		}
	}

	vehicles, err := s.tripRepo.TopVehiclesByRevenue(ctx, startOfToday(), limit)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		cached := make([]redis.CachedTopVehicle, 0, len(vehicles))
		for _, v := range vehicles {
			cached = append(cached, redis.CachedTopVehicle{
				VehicleID:          v.VehicleID,
				RegistrationNumber: v.RegistrationNumber,
				Make:               v.Make,
				Model:              v.Model,
				TripCount:          v.TripCount,
				Revenue:            v.Revenue,
			})
		}
		if err := s.cacheStore.SetTopVehicles(ctx, limit, cached); err != nil {
			log.Printf("top vehicles cache write failed: %v", err)
		}
	}
	return vehicles, nil
}

// RecentTrips returns the most recently started trips.
func (s *DashboardService) RecentTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if limit <= 0 {
		limit = DefaultRecentTrips
	}
	return s.tripRepo.Recent(ctx, limit)
}
