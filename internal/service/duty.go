package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/repository/postgres"
)

// DutyService manages driver shifts. Starting a shift opens a duty log and
// flips the assigned vehicle to on_duty; ending it closes the log and flips
// the vehicle back. Both writes run in one transaction so the vehicle status
// never disagrees with the open log.
type DutyService struct {
	db             *sql.DB
	dutyLogRepo    repository.DutyLogRepository
	assignmentRepo repository.AssignmentRepository
	driverRepo     repository.DriverRepository
	vehicleRepo    repository.VehicleRepository
}

// NewDutyService creates a new DutyService.
func NewDutyService(
	db *sql.DB,
	dutyLogRepo repository.DutyLogRepository,
	assignmentRepo repository.AssignmentRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
) *DutyService {
	return &DutyService{
		db:             db,
		dutyLogRepo:    dutyLogRepo,
		assignmentRepo: assignmentRepo,
		driverRepo:     driverRepo,
		vehicleRepo:    vehicleRepo,
	}
}

// StartDuty opens a shift for the driver on their assigned vehicle.
func (s *DutyService) StartDuty(ctx context.Context, driverID string) (*domain.DutyLog, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive {
		return nil, ErrDriverNotActive
	}

	current, err := s.dutyLogRepo.GetCurrentByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, ErrDriverAlreadyOnDuty
	}

	assignment, err := s.assignmentRepo.GetCurrentByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, assignment.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleNotAvailable
	}

	dutyLog := &domain.DutyLog{
		ID:        uuid.New().String(),
		DriverID:  driverID,
		VehicleID: vehicle.ID,
		Status:    domain.DutyStatusOnDuty,
		StartTime: time.Now(),
		CreatedAt: time.Now(),
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

	txDutyLogRepo := postgres.NewDutyLogRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	if err = txDutyLogRepo.Create(ctx, dutyLog); err != nil {
		return nil, err
	}

	if err = txVehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusOnDuty); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return dutyLog, nil
}

// EndDuty closes the driver's open shift.
func (s *DutyService) EndDuty(ctx context.Context, driverID string) (*domain.DutyLog, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	dutyLog, err := s.dutyLogRepo.GetCurrentByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if dutyLog == nil {
		return nil, ErrDriverNotOnDuty
	}

	dutyLog.Status = domain.DutyStatusOffDuty
	dutyLog.EndTime = time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txDutyLogRepo := postgres.NewDutyLogRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	if err = txDutyLogRepo.Update(ctx, dutyLog); err != nil {
		return nil, err
	}

	if err = txVehicleRepo.UpdateStatus(ctx, dutyLog.VehicleID, domain.VehicleStatusAvailable); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return dutyLog, nil
}

// DutyHistory retrieves a driver's duty logs, newest first.
func (s *DutyService) DutyHistory(ctx context.Context, driverID string) ([]*domain.DutyLog, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.dutyLogRepo.GetByDriverID(ctx, driverID)
}
