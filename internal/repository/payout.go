package repository

import (
	"context"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// PayoutRepository defines the persistence operations for driver payouts.
type PayoutRepository interface {
	// Create persists a new payout.
	Create(ctx context.Context, payout *domain.Payout) error

	// GetByID retrieves a payout by ID.
	GetByID(ctx context.Context, id string) (*domain.Payout, error)

	// GetAll retrieves all payouts, newest first.
	GetAll(ctx context.Context) ([]*domain.Payout, error)

	// GetByDriverID retrieves all payouts for a driver, newest first.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Payout, error)

	// GetPending retrieves payouts still awaiting settlement.
	GetPending(ctx context.Context) ([]*domain.Payout, error)

	// Update updates an existing payout.
	Update(ctx context.Context, payout *domain.Payout) error

	// Delete removes a payout.
	Delete(ctx context.Context, id string) error
}
