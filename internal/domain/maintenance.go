package domain

import "time"

// MaintenanceLog records a service event for a vehicle.
type MaintenanceLog struct {
	ID              string
	VehicleID       string
	Type            string // oil_change, tire_replacement, general_service
	Description     string
	Cost            float64
	ServiceDate     time.Time
	NextServiceDate time.Time
	OdometerReading int
	ServiceCenter   string
	CreatedBy       string
	CreatedAt       time.Time
}
