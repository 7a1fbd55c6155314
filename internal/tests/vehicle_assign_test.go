package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER ASSIGNMENT PRECONDITIONS
// ──────────────────────────────────────────────

// newAssignFixture wires a vehicle service against mocks. The assignment
// writes themselves run in a transaction needing a real *sql.DB, so these
// tests cover the checks that run before it opens.
func newAssignFixture(t *testing.T) (*service.VehicleService, *MockVehicleRepository, *MockDriverRepository) {
	t.Helper()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	svc := service.NewVehicleService(nil, vehicleRepo, driverRepo, NewMockAssignmentRepository(), NewMockCacheStore())

	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusAvailable})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", LicenseNumber: "DL-100", IsActive: true})
	return svc, vehicleRepo, driverRepo
}

func TestAssignDriver_RequiresExistingDriver(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAssignFixture(t)

	_, err := svc.AssignDriver(context.Background(), "vehicle-1", "driver-ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown driver, got %v", err)
	}
}

func TestAssignDriver_RequiresExistingVehicle(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAssignFixture(t)

	_, err := svc.AssignDriver(context.Background(), "vehicle-ghost", "driver-1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown vehicle, got %v", err)
	}
}

func TestAssignDriver_ReplacesPreviousAssignmentInOneTransaction(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusAvailable})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", LicenseNumber: "DL-100", IsActive: true})
	svc := service.NewVehicleService(db, vehicleRepo, driverRepo, NewMockAssignmentRepository(), nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vehicle_assignments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO vehicle_assignments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assignment, err := svc.AssignDriver(context.Background(), "vehicle-1", "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.VehicleID != "vehicle-1" || assignment.DriverID != "driver-1" || !assignment.IsActive {
		t.Errorf("unexpected assignment: %+v", assignment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignDriver_RollsBackWhenInsertFails(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA01AB1234", Status: domain.VehicleStatusAvailable})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", LicenseNumber: "DL-100", IsActive: true})
	svc := service.NewVehicleService(db, vehicleRepo, driverRepo, NewMockAssignmentRepository(), nil)

	insertErr := errors.New("insert failed")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vehicle_assignments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO vehicle_assignments").
		WillReturnError(insertErr)
	mock.ExpectRollback()

	if _, err := svc.AssignDriver(context.Background(), "vehicle-1", "driver-1"); !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignDriver_RejectsEmptyIDs(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAssignFixture(t)

	if _, err := svc.AssignDriver(context.Background(), "", "driver-1"); !errors.Is(err, service.ErrInvalidVehicleID) {
		t.Errorf("expected ErrInvalidVehicleID, got %v", err)
	}
	if _, err := svc.AssignDriver(context.Background(), "vehicle-1", ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("expected ErrInvalidDriverID, got %v", err)
	}
}
