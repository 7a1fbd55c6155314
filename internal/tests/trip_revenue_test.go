package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/revenue"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// TRIP CREATION AND REVENUE SPLIT
// ──────────────────────────────────────────────

func newTripFixture(t *testing.T) (*service.TripService, *MockTripRepository, *MockVehicleRepository, *MockDriverRepository, *MockCacheStore) {
	t.Helper()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	cacheStore := NewMockCacheStore()

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		Make:               "Toyota",
		Model:              "Etios",
		Status:             domain.VehicleStatusAvailable,
	})
	driverRepo.AddDriver(&domain.Driver{
		ID:            "driver-1",
		LicenseNumber: "DL-100",
		IsActive:      true,
	})

	// Transactional completion paths need a real *sql.DB; these tests stay
	// on the non-completed paths.
	svc := service.NewTripService(nil, tripRepo, vehicleRepo, driverRepo, cacheStore)
	return svc, tripRepo, vehicleRepo, driverRepo, cacheStore
}

func TestCreateTrip_ComputesLowerTierSplit(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newTripFixture(t)

	trip, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		TotalAmount: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.DriverShare != 300 {
		t.Errorf("expected driver share 300, got %v", trip.DriverShare)
	}
	if trip.CompanyShare != 700 {
		t.Errorf("expected company share 700, got %v", trip.CompanyShare)
	}
	if trip.Status != domain.TripStatusPending {
		t.Errorf("expected status pending, got %s", trip.Status)
	}
}

func TestCreateTrip_ComputesUpperTierSplit(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newTripFixture(t)

	trip, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		TotalAmount: 3000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.DriverShare != 2100 {
		t.Errorf("expected driver share 2100, got %v", trip.DriverShare)
	}
	if trip.CompanyShare != 900 {
		t.Errorf("expected company share 900, got %v", trip.CompanyShare)
	}
}

func TestCreateTrip_RejectsInvalidAmount(t *testing.T) {
	t.Parallel()

	svc, tripRepo, _, _, _ := newTripFixture(t)

	for _, amount := range []float64{0, -50} {
		_, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
			VehicleID:   "vehicle-1",
			DriverID:    "driver-1",
			TotalAmount: amount,
		})
		if !errors.Is(err, revenue.ErrInvalidAmount) {
			t.Errorf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if tripRepo.CountTrips() != 0 {
		t.Error("no trip should be stored after rejected amounts")
	}
}

func TestCreateTrip_UnknownVehicleRejected(t *testing.T) {
	t.Parallel()

	svc, tripRepo, _, _, _ := newTripFixture(t)

	_, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:   "vehicle-missing",
		DriverID:    "driver-1",
		TotalAmount: 500,
	})
	if err == nil {
		t.Fatal("expected error for unknown vehicle")
	}
	if tripRepo.CountTrips() != 0 {
		t.Error("no trip should be stored")
	}
}

func TestUpdateTrip_AmountChangeRecomputesShares(t *testing.T) {
	t.Parallel()

	svc, tripRepo, _, _, _ := newTripFixture(t)

	tripRepo.AddTrip(&domain.Trip{
		ID:           "trip-1",
		VehicleID:    "vehicle-1",
		DriverID:     "driver-1",
		StartTime:    time.Now(),
		TotalAmount:  1000,
		DriverShare:  300,
		CompanyShare: 700,
		Status:       domain.TripStatusPending,
	})

	newAmount := 4000.0
	trip, err := svc.UpdateTrip(context.Background(), service.UpdateTripRequest{
		TripID:      "trip-1",
		TotalAmount: &newAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 4000 is above the tier threshold: driver gets 70%.
	if trip.DriverShare != 2800 {
		t.Errorf("expected driver share 2800, got %v", trip.DriverShare)
	}
	if trip.CompanyShare != 1200 {
		t.Errorf("expected company share 1200, got %v", trip.CompanyShare)
	}
}

func TestUpdateTrip_UnrelatedFieldPreservesShares(t *testing.T) {
	t.Parallel()

	svc, tripRepo, _, _, _ := newTripFixture(t)

	tripRepo.AddTrip(&domain.Trip{
		ID:           "trip-1",
		VehicleID:    "vehicle-1",
		DriverID:     "driver-1",
		StartTime:    time.Now(),
		TotalAmount:  1000,
		DriverShare:  300,
		CompanyShare: 700,
		Status:       domain.TripStatusPending,
	})

	notes := "airport run"
	trip, err := svc.UpdateTrip(context.Background(), service.UpdateTripRequest{
		TripID: "trip-1",
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.DriverShare != 300 || trip.CompanyShare != 700 {
		t.Errorf("shares must not change on an unrelated update, got %v/%v", trip.DriverShare, trip.CompanyShare)
	}
	if trip.Notes != "airport run" {
		t.Errorf("expected notes updated, got %q", trip.Notes)
	}
}

func TestUpdateTrip_SameAmountPreservesShares(t *testing.T) {
	t.Parallel()

	svc, tripRepo, _, _, _ := newTripFixture(t)

	tripRepo.AddTrip(&domain.Trip{
		ID:           "trip-1",
		VehicleID:    "vehicle-1",
		DriverID:     "driver-1",
		StartTime:    time.Now(),
		TotalAmount:  2500,
		DriverShare:  750,
		CompanyShare: 1750,
		Status:       domain.TripStatusPending,
	})

	sameAmount := 2500.0
	trip, err := svc.UpdateTrip(context.Background(), service.UpdateTripRequest{
		TripID:      "trip-1",
		TotalAmount: &sameAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.DriverShare != 750 || trip.CompanyShare != 1750 {
		t.Errorf("shares must be unchanged for an identical amount, got %v/%v", trip.DriverShare, trip.CompanyShare)
	}
}

func TestTripMutation_InvalidatesDashboardCache(t *testing.T) {
	t.Parallel()

	svc, _, _, _, cacheStore := newTripFixture(t)

	_, err := svc.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		TotalAmount: 800,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cacheStore.InvalidateCallCount == 0 {
		t.Error("expected dashboard cache invalidation after trip creation")
	}
}

func TestListTrips_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newTripFixture(t)

	_, err := svc.ListTrips(context.Background(), repository.TripFilter{
		From: time.Now(),
		To:   time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}
