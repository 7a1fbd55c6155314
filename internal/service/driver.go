package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// DriverService manages driver records. Running totals on a driver are owned
// by the trip service and never writable through here.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// CreateDriverRequest contains the parameters for registering a driver.
type CreateDriverRequest struct {
	UserID        string
	LicenseNumber string
	LicenseExpiry time.Time
	PhoneNumber   string
	Address       string
}

// CreateDriver registers a driver. New drivers start active with zero totals.
func (s *DriverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	if req.LicenseNumber == "" {
		return nil, ErrInvalidDriverID
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// UpdateDriverRequest contains the parameters for updating a driver. Nil
// fields are left unchanged.
type UpdateDriverRequest struct {
	DriverID      string
	LicenseNumber *string
	LicenseExpiry *time.Time
	PhoneNumber   *string
	Address       *string
	IsActive      *bool
}

// UpdateDriver applies a partial update.
func (s *DriverService) UpdateDriver(ctx context.Context, req UpdateDriverRequest) (*domain.Driver, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if req.LicenseNumber != nil {
		driver.LicenseNumber = *req.LicenseNumber
	}
	if req.LicenseExpiry != nil {
		driver.LicenseExpiry = *req.LicenseExpiry
	}
	if req.PhoneNumber != nil {
		driver.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		driver.Address = *req.Address
	}
	if req.IsActive != nil {
		driver.IsActive = *req.IsActive
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// ListDrivers retrieves all drivers.
func (s *DriverService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}

// DeleteDriver removes a driver record.
func (s *DriverService) DeleteDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	return s.driverRepo.Delete(ctx, driverID)
}
