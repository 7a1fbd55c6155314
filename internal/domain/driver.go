package domain

import "time"

// Driver represents a driver employed on the fleet.
// TotalTrips and TotalEarnings are running totals maintained by the trip
// service as trips complete.
type Driver struct {
	ID            string
	UserID        string
	LicenseNumber string
	LicenseExpiry time.Time
	PhoneNumber   string
	Address       string
	IsActive      bool
	TotalTrips    int
	TotalEarnings float64
	CreatedAt     time.Time
}

// Label returns the display label used to identify the driver in reports.
func (d *Driver) Label() string {
	return d.LicenseNumber + " - " + d.PhoneNumber
}
