package repository

import (
	"context"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// TripFilter narrows trip queries. Zero-value fields are ignored. The date
// range is inclusive on both ends and applies to the trip start time.
type TripFilter struct {
	From      time.Time
	To        time.Time
	VehicleID string
	DriverID  string
	Status    domain.TripStatus
}

// TopVehicle is a vehicle ranked by trip revenue, joined with the reference
// fields needed to label it.
type TopVehicle struct {
	VehicleID          string
	RegistrationNumber string
	Make               string
	Model              string
	TripCount          int
	Revenue            float64
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// List retrieves trips matching the filter, most recent start first.
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error

	// Recent retrieves the most recently started trips.
	Recent(ctx context.Context, limit int) ([]*domain.Trip, error)

	// CompletedRevenueSince sums the total amount of completed trips with a
	// start time at or after since.
	CompletedRevenueSince(ctx context.Context, since time.Time) (float64, error)

	// TopVehiclesByRevenue ranks vehicles by summed completed-trip revenue
	// since the given time, descending, ties broken by registration number.
	TopVehiclesByRevenue(ctx context.Context, since time.Time, limit int) ([]TopVehicle, error)
}
