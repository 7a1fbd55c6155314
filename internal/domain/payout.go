package domain

import "time"

// PayoutStatus represents the settlement status of a driver payout.
type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusPaid    PayoutStatus = "paid"
	PayoutStatusFailed  PayoutStatus = "failed"
)

// Payout summarizes a driver's earnings over a period. Amount is the sum of
// the driver shares of completed trips with a start time inside
// [FromDate, ToDate]; TotalTrips and TotalRevenue describe the same trip set.
type Payout struct {
	ID               string
	DriverID         string
	Amount           float64
	Status           PayoutStatus
	PayoutDate       time.Time
	PaymentReference string
	PaymentMethod    string
	FromDate         time.Time
	ToDate           time.Time
	TotalTrips       int
	TotalRevenue     float64
	CreatedBy        string
	CreatedAt        time.Time
}
