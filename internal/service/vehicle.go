package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/repository/postgres"
)

// VehicleService manages the fleet roster.
type VehicleService struct {
	db             *sql.DB
	vehicleRepo    repository.VehicleRepository
	driverRepo     repository.DriverRepository
	assignmentRepo repository.AssignmentRepository
	cacheStore     redis.CacheStoreInterface
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	db *sql.DB,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	assignmentRepo repository.AssignmentRepository,
	cacheStore redis.CacheStoreInterface,
) *VehicleService {
	return &VehicleService{
		db:             db,
		vehicleRepo:    vehicleRepo,
		driverRepo:     driverRepo,
		assignmentRepo: assignmentRepo,
		cacheStore:     cacheStore,
	}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	RegistrationNumber string
	Make               string
	Model              string
	Year               int
	Color              string
	Odometer           int
	InsuranceExpiry    time.Time
	FitnessExpiry      time.Time
	PermitExpiry       time.Time
	LastServiceDate    time.Time
	NextServiceDate    time.Time
}

// CreateVehicle registers a vehicle. New vehicles start as available.
func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if req.RegistrationNumber == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle := &domain.Vehicle{
		ID:                 uuid.New().String(),
		RegistrationNumber: req.RegistrationNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Status:             domain.VehicleStatusAvailable,
		Odometer:           req.Odometer,
		InsuranceExpiry:    req.InsuranceExpiry,
		FitnessExpiry:      req.FitnessExpiry,
		PermitExpiry:       req.PermitExpiry,
		LastServiceDate:    req.LastServiceDate,
		NextServiceDate:    req.NextServiceDate,
		CreatedAt:          time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return vehicle, nil
}

// UpdateVehicleRequest contains the parameters for updating a vehicle. Nil
// fields are left unchanged.
type UpdateVehicleRequest struct {
	VehicleID          string
	RegistrationNumber *string
	Make               *string
	Model              *string
	Year               *int
	Color              *string
	Status             *domain.VehicleStatus
	Odometer           *int
	InsuranceExpiry    *time.Time
	FitnessExpiry      *time.Time
	PermitExpiry       *time.Time
	LastServiceDate    *time.Time
	NextServiceDate    *time.Time
}

// UpdateVehicle applies a partial update.
func (s *VehicleService) UpdateVehicle(ctx context.Context, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if req.RegistrationNumber != nil {
		vehicle.RegistrationNumber = *req.RegistrationNumber
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Status != nil {
		if !validVehicleStatus(*req.Status) {
			return nil, ErrInvalidVehicleStatus
		}
		vehicle.Status = *req.Status
	}
	if req.Odometer != nil {
		vehicle.Odometer = *req.Odometer
	}
	if req.InsuranceExpiry != nil {
		vehicle.InsuranceExpiry = *req.InsuranceExpiry
	}
	if req.FitnessExpiry != nil {
		vehicle.FitnessExpiry = *req.FitnessExpiry
	}
	if req.PermitExpiry != nil {
		vehicle.PermitExpiry = *req.PermitExpiry
	}
	if req.LastServiceDate != nil {
		vehicle.LastServiceDate = *req.LastServiceDate
	}
	if req.NextServiceDate != nil {
		vehicle.NextServiceDate = *req.NextServiceDate
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

// ListVehicles retrieves all vehicles.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

// DeleteVehicle removes a vehicle from the roster.
func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx)
	return nil
}

// AssignDriver assigns a driver to the vehicle, replacing any previous
// active assignment for that vehicle. Deactivating the old assignment and
// inserting the new one share a transaction so the vehicle never carries two
// active assignments.
func (s *VehicleService) AssignDriver(ctx context.Context, vehicleID, driverID string) (*domain.VehicleAssignment, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txAssignmentRepo := postgres.NewAssignmentRepositoryWithTx(tx)

	assignment, err := txAssignmentRepo.Assign(ctx, vehicleID, driverID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return assignment, nil
}

// ActiveAssignments retrieves all active vehicle assignments.
func (s *VehicleService) ActiveAssignments(ctx context.Context) ([]*domain.VehicleAssignment, error) {
	return s.assignmentRepo.GetActive(ctx)
}

func (s *VehicleService) invalidateDashboard(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.InvalidateMetrics(ctx); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}

func validVehicleStatus(status domain.VehicleStatus) bool {
	switch status {
	case domain.VehicleStatusAvailable, domain.VehicleStatusOnDuty,
		domain.VehicleStatusInService, domain.VehicleStatusAccident:
		return true
	}
	return false
}
