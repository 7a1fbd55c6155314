package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles, newest first.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id string) error

	// UpdateStatus sets the status of a vehicle.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// CountActive counts vehicles with status available or on_duty.
	CountActive(ctx context.Context) (int, error)
}
