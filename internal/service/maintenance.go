package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// MaintenanceService manages vehicle service records. Logging a service also
// rolls the vehicle's service dates and odometer forward.
type MaintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

// CreateMaintenanceRequest contains the parameters for logging a service.
type CreateMaintenanceRequest struct {
	VehicleID       string
	Type            string
	Description     string
	Cost            float64
	ServiceDate     time.Time
	NextServiceDate time.Time
	OdometerReading int
	ServiceCenter   string
	CreatedBy       string
}

// CreateMaintenanceLog records a service event and updates the vehicle's
// service dates and odometer.
func (s *MaintenanceService) CreateMaintenanceLog(ctx context.Context, req CreateMaintenanceRequest) (*domain.MaintenanceLog, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	serviceDate := req.ServiceDate
	if serviceDate.IsZero() {
		serviceDate = time.Now()
	}

	mlog := &domain.MaintenanceLog{
		ID:              uuid.New().String(),
		VehicleID:       req.VehicleID,
		Type:            req.Type,
		Description:     req.Description,
		Cost:            req.Cost,
		ServiceDate:     serviceDate,
		NextServiceDate: req.NextServiceDate,
		OdometerReading: req.OdometerReading,
		ServiceCenter:   req.ServiceCenter,
		CreatedBy:       req.CreatedBy,
		CreatedAt:       time.Now(),
	}

	if err := s.maintenanceRepo.Create(ctx, mlog); err != nil {
		return nil, err
	}

	vehicle.LastServiceDate = serviceDate
	if !req.NextServiceDate.IsZero() {
		vehicle.NextServiceDate = req.NextServiceDate
	}
	if req.OdometerReading > vehicle.Odometer {
		vehicle.Odometer = req.OdometerReading
	}
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return mlog, nil
}

// UpdateMaintenanceRequest contains the parameters for updating a maintenance
// log. Nil fields are left unchanged.
type UpdateMaintenanceRequest struct {
	LogID           string
	Type            *string
	Description     *string
	Cost            *float64
	ServiceDate     *time.Time
	NextServiceDate *time.Time
	OdometerReading *int
	ServiceCenter   *string
}

// UpdateMaintenanceLog applies a partial update. Corrections to the service
// dates or odometer roll the vehicle's records forward the same way logging
// does; they never roll them back past other logs.
func (s *MaintenanceService) UpdateMaintenanceLog(ctx context.Context, req UpdateMaintenanceRequest) (*domain.MaintenanceLog, error) {
	if req.LogID == "" {
		return nil, repository.ErrNotFound
	}

	mlog, err := s.maintenanceRepo.GetByID(ctx, req.LogID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		mlog.Type = *req.Type
	}
	if req.Description != nil {
		mlog.Description = *req.Description
	}
	if req.Cost != nil {
		mlog.Cost = *req.Cost
	}
	if req.ServiceDate != nil && !req.ServiceDate.IsZero() {
		mlog.ServiceDate = *req.ServiceDate
	}
	if req.NextServiceDate != nil {
		mlog.NextServiceDate = *req.NextServiceDate
	}
	if req.OdometerReading != nil {
		mlog.OdometerReading = *req.OdometerReading
	}
	if req.ServiceCenter != nil {
		mlog.ServiceCenter = *req.ServiceCenter
	}

	if err := s.maintenanceRepo.Update(ctx, mlog); err != nil {
		return nil, err
	}

	if req.ServiceDate != nil || req.NextServiceDate != nil || req.OdometerReading != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, mlog.VehicleID)
		if err != nil {
			return nil, err
		}
		if mlog.ServiceDate.After(vehicle.LastServiceDate) {
			vehicle.LastServiceDate = mlog.ServiceDate
		}
		if !mlog.NextServiceDate.IsZero() && mlog.NextServiceDate.After(vehicle.NextServiceDate) {
			vehicle.NextServiceDate = mlog.NextServiceDate
		}
		if mlog.OdometerReading > vehicle.Odometer {
			vehicle.Odometer = mlog.OdometerReading
		}
		if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
			return nil, err
		}
	}

	return mlog, nil
}

// GetMaintenanceLog retrieves a maintenance log by ID.
func (s *MaintenanceService) GetMaintenanceLog(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.maintenanceRepo.GetByID(ctx, id)
}

// ListMaintenanceLogs retrieves maintenance logs, optionally narrowed to one
// vehicle.
func (s *MaintenanceService) ListMaintenanceLogs(ctx context.Context, vehicleID string) ([]*domain.MaintenanceLog, error) {
	if vehicleID != "" {
		return s.maintenanceRepo.GetByVehicleID(ctx, vehicleID)
	}
	return s.maintenanceRepo.GetAll(ctx)
}

// DeleteMaintenanceLog removes a maintenance log.
func (s *MaintenanceService) DeleteMaintenanceLog(ctx context.Context, id string) error {
	if id == "" {
		return repository.ErrNotFound
	}
	return s.maintenanceRepo.Delete(ctx, id)
}
