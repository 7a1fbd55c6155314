package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// ExpenseService manages vehicle expenses.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	vehicleRepo repository.VehicleRepository
	cacheStore  redis.CacheStoreInterface
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	vehicleRepo repository.VehicleRepository,
	cacheStore redis.CacheStoreInterface,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		vehicleRepo: vehicleRepo,
		cacheStore:  cacheStore,
	}
}

// CreateExpenseRequest contains the parameters for recording an expense.
type CreateExpenseRequest struct {
	VehicleID   string
	Type        domain.ExpenseType
	Amount      float64
	Description string
	ExpenseDate time.Time
	CreatedBy   string
}

// CreateExpense records an expense against a vehicle.
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*domain.Expense, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if !domain.ValidExpenseType(req.Type) {
		return nil, ErrInvalidExpenseType
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidExpenseAmount
	}

	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &domain.Expense{
		ID:          uuid.New().String(),
		VehicleID:   req.VehicleID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: expenseDate,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   time.Now(),
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return expense, nil
}

// UpdateExpenseRequest contains the parameters for updating an expense. Nil
// fields are left unchanged.
type UpdateExpenseRequest struct {
	ExpenseID   string
	Type        *domain.ExpenseType
	Amount      *float64
	Description *string
	ExpenseDate *time.Time
}

// UpdateExpense applies a partial update.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req UpdateExpenseRequest) (*domain.Expense, error) {
	if req.ExpenseID == "" {
		return nil, repository.ErrNotFound
	}

	expense, err := s.expenseRepo.GetByID(ctx, req.ExpenseID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !domain.ValidExpenseType(*req.Type) {
			return nil, ErrInvalidExpenseType
		}
		expense.Type = *req.Type
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, ErrInvalidExpenseAmount
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if expenseID == "" {
		return nil, repository.ErrNotFound
	}
	return s.expenseRepo.GetByID(ctx, expenseID)
}

// ListExpenses retrieves expenses matching the filter.
func (s *ExpenseService) ListExpenses(ctx context.Context, filter repository.ExpenseFilter) ([]*domain.Expense, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, ErrInvalidDateRange
	}
	if filter.Type != "" && !domain.ValidExpenseType(filter.Type) {
		return nil, ErrInvalidExpenseType
	}
	return s.expenseRepo.List(ctx, filter)
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if expenseID == "" {
		return repository.ErrNotFound
	}

	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx)
	return nil
}

func (s *ExpenseService) invalidateDashboard(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.InvalidateMetrics(ctx); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}
