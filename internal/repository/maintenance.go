package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// MaintenanceRepository defines the persistence operations for maintenance logs.
type MaintenanceRepository interface {
	// Create persists a new maintenance log.
	Create(ctx context.Context, log *domain.MaintenanceLog) error

	// GetByID retrieves a maintenance log by ID.
	GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error)

	// GetAll retrieves all maintenance logs, newest first.
	GetAll(ctx context.Context) ([]*domain.MaintenanceLog, error)

	// GetByVehicleID retrieves maintenance logs for a vehicle, most recent
	// service first.
	GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.MaintenanceLog, error)

	// Update updates an existing maintenance log.
	Update(ctx context.Context, log *domain.MaintenanceLog) error

	// Delete removes a maintenance log.
	Delete(ctx context.Context, id string) error
}
