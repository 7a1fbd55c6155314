package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// DUTY SHIFT PRECONDITIONS
// ──────────────────────────────────────────────

type dutyFixture struct {
	svc            *service.DutyService
	dutyLogRepo    *MockDutyLogRepository
	assignmentRepo *MockAssignmentRepository
	driverRepo     *MockDriverRepository
	vehicleRepo    *MockVehicleRepository
}

// newDutyFixture wires a duty service against mocks. The transactional body
// of StartDuty and EndDuty needs a real *sql.DB, so these tests cover the
// precondition checks that run before any transaction opens.
func newDutyFixture(t *testing.T) *dutyFixture {
	t.Helper()

	f := &dutyFixture{
		dutyLogRepo:    NewMockDutyLogRepository(),
		assignmentRepo: NewMockAssignmentRepository(),
		driverRepo:     NewMockDriverRepository(),
		vehicleRepo:    NewMockVehicleRepository(),
	}
	f.svc = service.NewDutyService(nil, f.dutyLogRepo, f.assignmentRepo, f.driverRepo, f.vehicleRepo)

	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-1", LicenseNumber: "DL-100", IsActive: true})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusAvailable})
	return f
}

func TestStartDuty_RejectsInactiveDriver(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)
	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-2", LicenseNumber: "DL-200", IsActive: false})

	_, err := f.svc.StartDuty(context.Background(), "driver-2")
	if !errors.Is(err, service.ErrDriverNotActive) {
		t.Fatalf("expected ErrDriverNotActive, got %v", err)
	}
}

func TestStartDuty_RejectsDriverAlreadyOnShift(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)
	f.dutyLogRepo.AddDutyLog(&domain.DutyLog{
		ID:        "duty-1",
		DriverID:  "driver-1",
		VehicleID: "vehicle-1",
		Status:    domain.DutyStatusOnDuty,
		StartTime: time.Now().Add(-time.Hour),
	})

	_, err := f.svc.StartDuty(context.Background(), "driver-1")
	if !errors.Is(err, service.ErrDriverAlreadyOnDuty) {
		t.Fatalf("expected ErrDriverAlreadyOnDuty, got %v", err)
	}
}

func TestStartDuty_RequiresVehicleAssignment(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)

	_, err := f.svc.StartDuty(context.Background(), "driver-1")
	if !errors.Is(err, service.ErrInvalidVehicleID) {
		t.Fatalf("expected ErrInvalidVehicleID, got %v", err)
	}
}

func TestStartDuty_RejectsUnavailableVehicle(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)
	f.assignmentRepo.AddAssignment(&domain.VehicleAssignment{
		ID:        "assignment-1",
		VehicleID: "vehicle-1",
		DriverID:  "driver-1",
		IsActive:  true,
	})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusInService})

	_, err := f.svc.StartDuty(context.Background(), "driver-1")
	if !errors.Is(err, service.ErrVehicleNotAvailable) {
		t.Fatalf("expected ErrVehicleNotAvailable, got %v", err)
	}
}

func TestEndDuty_RequiresOpenShift(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)

	_, err := f.svc.EndDuty(context.Background(), "driver-1")
	if !errors.Is(err, service.ErrDriverNotOnDuty) {
		t.Fatalf("expected ErrDriverNotOnDuty, got %v", err)
	}
}

func TestDuty_RejectsEmptyDriverID(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)

	if _, err := f.svc.StartDuty(context.Background(), ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("StartDuty: expected ErrInvalidDriverID, got %v", err)
	}
	if _, err := f.svc.EndDuty(context.Background(), ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("EndDuty: expected ErrInvalidDriverID, got %v", err)
	}
	if _, err := f.svc.DutyHistory(context.Background(), ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("DutyHistory: expected ErrInvalidDriverID, got %v", err)
	}
}

func TestDutyHistory_ReturnsDriverShiftsNewestFirst(t *testing.T) {
	t.Parallel()

	f := newDutyFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.dutyLogRepo.AddDutyLog(&domain.DutyLog{ID: "duty-1", DriverID: "driver-1", VehicleID: "vehicle-1", Status: domain.DutyStatusOffDuty, StartTime: base})
	f.dutyLogRepo.AddDutyLog(&domain.DutyLog{ID: "duty-2", DriverID: "driver-1", VehicleID: "vehicle-1", Status: domain.DutyStatusOffDuty, StartTime: base.Add(8 * time.Hour)})
	f.dutyLogRepo.AddDutyLog(&domain.DutyLog{ID: "duty-3", DriverID: "driver-2", VehicleID: "vehicle-2", Status: domain.DutyStatusOffDuty, StartTime: base})

	logs, err := f.svc.DutyHistory(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != "duty-2" || logs[1].ID != "duty-1" {
		t.Errorf("expected newest shift first, got %s, %s", logs[0].ID, logs[1].ID)
	}
}
