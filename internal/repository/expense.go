package repository

import (
	"context"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
)

// ExpenseFilter narrows expense queries. Zero-value fields are ignored. The
// date range is inclusive on both ends and applies to the expense date.
type ExpenseFilter struct {
	From      time.Time
	To        time.Time
	VehicleID string
	Type      domain.ExpenseType
}

// ExpenseRepository defines the persistence operations for expenses.
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, expense *domain.Expense) error

	// GetByID retrieves an expense by ID.
	GetByID(ctx context.Context, id string) (*domain.Expense, error)

	// List retrieves expenses matching the filter, most recent first.
	List(ctx context.Context, filter ExpenseFilter) ([]*domain.Expense, error)

	// Update updates an existing expense.
	Update(ctx context.Context, expense *domain.Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id string) error

	// TotalSince sums expense amounts with an expense date at or after since.
	TotalSince(ctx context.Context, since time.Time) (float64, error)
}
