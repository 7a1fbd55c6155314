package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "pending"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// Trip represents a revenue-generating trip run by a driver on a fleet vehicle.
// DriverShare and CompanyShare are derived from TotalAmount by the tiered
// revenue split and are recomputed whenever TotalAmount changes.
type Trip struct {
	ID            string
	VehicleID     string
	DriverID      string
	StartTime     time.Time
	EndTime       time.Time
	StartLocation string
	EndLocation   string
	TotalAmount   float64
	DriverShare   float64
	CompanyShare  float64
	Distance      float64 // kilometers
	Duration      int     // minutes
	Status        TripStatus
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// Completed reports whether the trip counts toward revenue aggregates.
func (t *Trip) Completed() bool {
	return t.Status == TripStatusCompleted
}
