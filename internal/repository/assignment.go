package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// AssignmentRepository defines the persistence operations for vehicle
// assignments and duty logs.
type AssignmentRepository interface {
	// Assign creates an active assignment of the vehicle to the driver,
	// deactivating any previous active assignment for the vehicle.
	Assign(ctx context.Context, vehicleID, driverID string) (*domain.VehicleAssignment, error)

	// Unassign deactivates an assignment.
	Unassign(ctx context.Context, assignmentID string) error

	// GetActive retrieves all active assignments.
	GetActive(ctx context.Context) ([]*domain.VehicleAssignment, error)

	// GetCurrentByDriverID retrieves the driver's active assignment.
	// Returns nil if the driver has no vehicle assigned.
	GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.VehicleAssignment, error)
}

// DutyLogRepository defines the persistence operations for duty logs.
type DutyLogRepository interface {
	// Create persists a new duty log.
	Create(ctx context.Context, log *domain.DutyLog) error

	// Update updates an existing duty log.
	Update(ctx context.Context, log *domain.DutyLog) error

	// GetByDriverID retrieves all duty logs for a driver, newest first.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.DutyLog, error)

	// GetCurrentByDriverID retrieves the driver's open duty log (on_duty).
	// Returns nil if the driver is off duty.
	GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.DutyLog, error)
}
