package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByUserID retrieves the driver record linked to a user account.
	GetByUserID(ctx context.Context, userID string) (*domain.Driver, error)

	// GetAll retrieves all drivers, newest first.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// Update updates an existing driver.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error

	// AddCompletedTrip increments the driver's running totals by one trip
	// and the given earnings.
	AddCompletedTrip(ctx context.Context, id string, earnings float64) error

	// CountActive counts drivers with isActive = true.
	CountActive(ctx context.Context) (int, error)
}
