package tests

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// DASHBOARD METRICS
// ──────────────────────────────────────────────

type dashboardFixture struct {
	svc         *service.DashboardService
	tripRepo    *MockTripRepository
	vehicleRepo *MockVehicleRepository
	driverRepo  *MockDriverRepository
	expenseRepo *MockExpenseRepository
	cacheStore  *MockCacheStore
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	f := &dashboardFixture{
		tripRepo:    NewMockTripRepository(),
		vehicleRepo: NewMockVehicleRepository(),
		driverRepo:  NewMockDriverRepository(),
		expenseRepo: NewMockExpenseRepository(),
		cacheStore:  NewMockCacheStore(),
	}
	f.svc = service.NewDashboardService(f.tripRepo, f.vehicleRepo, f.driverRepo, f.expenseRepo, f.cacheStore)
	return f
}

func TestDashboard_MetricsFromTodaysActivity(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)
	now := time.Now()

	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusAvailable})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-2", RegistrationNumber: "KA01CD5678", Status: domain.VehicleStatusInService})
	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-1", IsActive: true})
	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-2", IsActive: false})

	f.tripRepo.AddTrip(completedTrip("trip-1", "vehicle-1", "driver-1", now, 1000, 300, 700))
	f.tripRepo.AddTrip(completedTrip("trip-2", "vehicle-1", "driver-1", now, 3000, 2100, 900))
	// Pending trips do not count toward revenue.
	f.tripRepo.AddTrip(&domain.Trip{ID: "trip-3", VehicleID: "vehicle-1", DriverID: "driver-1", StartTime: now, TotalAmount: 500, Status: domain.TripStatusPending})

	f.expenseRepo.AddExpense(&domain.Expense{ID: "expense-1", VehicleID: "vehicle-1", Type: domain.ExpenseTypeFuel, Amount: 600, ExpenseDate: now})

	metrics, err := f.svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.TotalRevenue != 4000 {
		t.Errorf("expected total revenue 4000, got %.2f", metrics.TotalRevenue)
	}
	if metrics.NetProfit != 3400 {
		t.Errorf("expected net profit 3400, got %.2f", metrics.NetProfit)
	}
	if metrics.ActiveVehicles != 1 {
		t.Errorf("expected 1 active vehicle, got %d", metrics.ActiveVehicles)
	}
	if metrics.TotalDrivers != 1 {
		t.Errorf("expected 1 active driver, got %d", metrics.TotalDrivers)
	}
}

func TestDashboard_MetricsServedFromCache(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)

	if err := f.cacheStore.SetMetrics(context.Background(), &redis.CachedMetrics{
		TotalRevenue:   9999,
		NetProfit:      8888,
		ActiveVehicles: 7,
		TotalDrivers:   3,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The repositories are empty, so a fresh compute would return zeros;
	// the cached figures prove the load was short-circuited.
	metrics, err := f.svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.TotalRevenue != 9999 || metrics.ActiveVehicles != 7 {
		t.Errorf("expected cached metrics, got %+v", metrics)
	}
}

func TestDashboard_MetricsWrittenBackToCache(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)

	if _, err := f.svc.Metrics(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&f.cacheStore.SetMetricsCallCount); n != 1 {
		t.Errorf("expected 1 cache write, got %d", n)
	}

	cached, err := f.cacheStore.GetMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached == nil {
		t.Fatal("expected metrics in cache")
	}
}

// ──────────────────────────────────────────────
// TOP VEHICLES AND RECENT TRIPS
// ──────────────────────────────────────────────

func TestDashboard_TopVehiclesRankedByRevenue(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)
	now := time.Now()

	f.tripRepo.AddTrip(completedTrip("trip-1", "vehicle-a", "driver-1", now, 1000, 300, 700))
	f.tripRepo.AddTrip(completedTrip("trip-2", "vehicle-b", "driver-1", now, 3000, 2100, 900))
	f.tripRepo.AddTrip(completedTrip("trip-3", "vehicle-b", "driver-1", now, 500, 150, 350))

	vehicles, err := f.svc.TopVehicles(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	if vehicles[0].VehicleID != "vehicle-b" || vehicles[0].Revenue != 3500 {
		t.Errorf("expected vehicle-b first with revenue 3500, got %s %.2f", vehicles[0].VehicleID, vehicles[0].Revenue)
	}
	if vehicles[0].TripCount != 2 {
		t.Errorf("expected 2 trips for vehicle-b, got %d", vehicles[0].TripCount)
	}
}

func TestDashboard_TopVehiclesCachedPerLimit(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)
	now := time.Now()

	f.tripRepo.AddTrip(completedTrip("trip-1", "vehicle-a", "driver-1", now, 1000, 300, 700))

	if _, err := f.svc.TopVehicles(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second call with the same limit is served from cache, so removing the
	// underlying trip does not change the ranking.
	if err := f.tripRepo.Delete(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cached, err := f.svc.TopVehicles(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cached) != 1 || cached[0].VehicleID != "vehicle-a" {
		t.Errorf("expected cached ranking for vehicle-a, got %+v", cached)
	}
}

func TestDashboard_RecentTripsLimited(t *testing.T) {
	t.Parallel()

	f := newDashboardFixture(t)
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 4; i++ {
		f.tripRepo.AddTrip(&domain.Trip{
			ID:        "trip-" + string(rune('a'+i)),
			VehicleID: "vehicle-1",
			DriverID:  "driver-1",
			StartTime: base.Add(time.Duration(i) * time.Minute),
			Status:    domain.TripStatusCompleted,
		})
	}

	trips, err := f.svc.RecentTrips(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].ID != "trip-d" || trips[1].ID != "trip-c" {
		t.Errorf("expected newest trips first, got %s, %s", trips[0].ID, trips[1].ID)
	}
}
