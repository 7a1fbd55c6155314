package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// MAINTENANCE LOG LIFECYCLE
// ──────────────────────────────────────────────

type maintenanceFixture struct {
	svc             *service.MaintenanceService
	maintenanceRepo *MockMaintenanceRepository
	vehicleRepo     *MockVehicleRepository
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()

	f := &maintenanceFixture{
		maintenanceRepo: NewMockMaintenanceRepository(),
		vehicleRepo:     NewMockVehicleRepository(),
	}
	f.svc = service.NewMaintenanceService(f.maintenanceRepo, f.vehicleRepo)

	f.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		Status:             domain.VehicleStatusAvailable,
		Odometer:           41000,
	})
	return f
}

func TestCreateMaintenanceLog_RollsVehicleForward(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture(t)
	serviceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	nextDate := serviceDate.Add(90 * 24 * time.Hour)

	mlog, err := f.svc.CreateMaintenanceLog(context.Background(), service.CreateMaintenanceRequest{
		VehicleID:       "vehicle-1",
		Type:            "general_service",
		Cost:            3500,
		ServiceDate:     serviceDate,
		NextServiceDate: nextDate,
		OdometerReading: 42000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mlog.ID == "" {
		t.Error("expected a generated log id")
	}

	vehicle := f.vehicleRepo.GetVehicle("vehicle-1")
	if !vehicle.LastServiceDate.Equal(serviceDate) {
		t.Errorf("expected last service date %v, got %v", serviceDate, vehicle.LastServiceDate)
	}
	if !vehicle.NextServiceDate.Equal(nextDate) {
		t.Errorf("expected next service date %v, got %v", nextDate, vehicle.NextServiceDate)
	}
	if vehicle.Odometer != 42000 {
		t.Errorf("expected odometer 42000, got %d", vehicle.Odometer)
	}
}

func TestUpdateMaintenanceLog_PartialUpdate(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture(t)
	f.maintenanceRepo.AddLog(&domain.MaintenanceLog{
		ID:          "log-1",
		VehicleID:   "vehicle-1",
		Type:        "oil_change",
		Description: "routine",
		Cost:        1200,
		ServiceDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
	})

	cost := 1450.0
	center := "City Motors"
	updated, err := f.svc.UpdateMaintenanceLog(context.Background(), service.UpdateMaintenanceRequest{
		LogID:         "log-1",
		Cost:          &cost,
		ServiceCenter: &center,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Cost != 1450 {
		t.Errorf("expected cost 1450, got %.2f", updated.Cost)
	}
	if updated.ServiceCenter != "City Motors" {
		t.Errorf("expected service center updated, got %q", updated.ServiceCenter)
	}
	// Untouched fields survive.
	if updated.Type != "oil_change" || updated.Description != "routine" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	stored := f.maintenanceRepo.GetLog("log-1")
	if stored.Cost != 1450 {
		t.Errorf("expected stored cost 1450, got %.2f", stored.Cost)
	}
}

func TestUpdateMaintenanceLog_OdometerRollsVehicleForwardOnly(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture(t)
	f.maintenanceRepo.AddLog(&domain.MaintenanceLog{
		ID:              "log-1",
		VehicleID:       "vehicle-1",
		ServiceDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		OdometerReading: 42000,
	})

	reading := 43000
	if _, err := f.svc.UpdateMaintenanceLog(context.Background(), service.UpdateMaintenanceRequest{
		LogID:           "log-1",
		OdometerReading: &reading,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Odometer; got != 43000 {
		t.Errorf("expected odometer 43000, got %d", got)
	}

	// A correction below the vehicle's reading fixes the log but never rolls
	// the vehicle back.
	lower := 40000
	if _, err := f.svc.UpdateMaintenanceLog(context.Background(), service.UpdateMaintenanceRequest{
		LogID:           "log-1",
		OdometerReading: &lower,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.maintenanceRepo.GetLog("log-1").OdometerReading; got != 40000 {
		t.Errorf("expected corrected log reading 40000, got %d", got)
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Odometer; got != 43000 {
		t.Errorf("expected vehicle odometer unchanged at 43000, got %d", got)
	}
}

func TestUpdateMaintenanceLog_UnknownLog(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture(t)

	cost := 100.0
	_, err := f.svc.UpdateMaintenanceLog(context.Background(), service.UpdateMaintenanceRequest{
		LogID: "log-missing",
		Cost:  &cost,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
