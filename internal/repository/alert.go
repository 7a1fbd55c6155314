package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// AlertRepository defines the persistence operations for alerts.
type AlertRepository interface {
	// Create persists a new alert.
	Create(ctx context.Context, alert *domain.Alert) error

	// GetByID retrieves an alert by ID.
	GetByID(ctx context.Context, id string) (*domain.Alert, error)

	// GetAll retrieves all alerts, newest first.
	GetAll(ctx context.Context) ([]*domain.Alert, error)

	// GetUnread retrieves unread alerts, newest first.
	GetUnread(ctx context.Context) ([]*domain.Alert, error)

	// MarkAsRead marks an alert as read.
	MarkAsRead(ctx context.Context, id string) error

	// ExistsOpen reports whether an unread alert of the given type already
	// exists for the vehicle. Used to avoid duplicate expiry alerts.
	ExistsOpen(ctx context.Context, alertType domain.AlertType, vehicleID string) (bool, error)
}
