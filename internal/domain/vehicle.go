package domain

import "time"

// VehicleStatus represents the current status of a fleet vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusOnDuty    VehicleStatus = "on_duty"
	VehicleStatusInService VehicleStatus = "in_service"
	VehicleStatusAccident  VehicleStatus = "accident"
)

// Vehicle represents a vehicle in the rental fleet.
type Vehicle struct {
	ID                 string
	RegistrationNumber string
	Make               string
	Model              string
	Year               int
	Color              string
	Status             VehicleStatus
	Odometer           int
	InsuranceExpiry    time.Time
	FitnessExpiry      time.Time
	PermitExpiry       time.Time
	LastServiceDate    time.Time
	NextServiceDate    time.Time
	CreatedAt          time.Time
}

// Active reports whether the vehicle counts toward the active-fleet metric.
func (v *Vehicle) Active() bool {
	return v.Status == VehicleStatusAvailable || v.Status == VehicleStatusOnDuty
}

// Label returns the display label used to identify the vehicle in reports.
func (v *Vehicle) Label() string {
	return v.RegistrationNumber + " - " + v.Make + " " + v.Model
}
