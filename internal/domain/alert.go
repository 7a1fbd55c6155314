package domain

import "time"

// AlertType represents the kind of operational alert.
type AlertType string

const (
	AlertTypeInsuranceExpiry AlertType = "insurance_expiry"
	AlertTypeFitnessExpiry   AlertType = "fitness_expiry"
	AlertTypePermitExpiry    AlertType = "permit_expiry"
	AlertTypeServiceDue      AlertType = "service_due"
	AlertTypeAccident        AlertType = "accident"
	AlertTypeBreakdown       AlertType = "breakdown"
	AlertTypePayoutPending   AlertType = "payout_pending"
)

// AlertPriority represents the urgency of an alert.
type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "low"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityCritical AlertPriority = "critical"
)

// Alert represents an operational alert surfaced on the dashboard.
type Alert struct {
	ID         string
	Type       AlertType
	Title      string
	Message    string
	VehicleID  string
	DriverID   string
	IsRead     bool
	Priority   AlertPriority
	ExpiryDate time.Time
	CreatedAt  time.Time
}
