package domain

import "time"

// VehicleAssignment links a driver to a vehicle. A vehicle has at most one
// active assignment; assigning it again deactivates the previous one.
type VehicleAssignment struct {
	ID             string
	VehicleID      string
	DriverID       string
	AssignedDate   time.Time
	UnassignedDate time.Time
	IsActive       bool
	CreatedAt      time.Time
}

// DutyStatus represents whether a driver is currently on duty.
type DutyStatus string

const (
	DutyStatusOnDuty  DutyStatus = "on_duty"
	DutyStatusOffDuty DutyStatus = "off_duty"
)

// DutyLog records a driver's duty shift on a vehicle.
type DutyLog struct {
	ID        string
	DriverID  string
	VehicleID string
	Status    DutyStatus
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}
