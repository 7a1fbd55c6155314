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
	"github.com/akuprof/fleetmanager/internal/revenue"
)

// TripService handles trip operations. It owns the revenue-split invariant:
// driver and company shares are derived from the total amount at creation and
// recomputed whenever the total amount changes, never supplied by callers.
type TripService struct {
	db          *sql.DB
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	cacheStore  redis.CacheStoreInterface
}

// NewTripService creates a new TripService.
func NewTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	cacheStore redis.CacheStoreInterface,
) *TripService {
	return &TripService{
		db:          db,
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		cacheStore:  cacheStore,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	VehicleID     string
	DriverID      string
	StartTime     time.Time
	EndTime       time.Time
	StartLocation string
	EndLocation   string
	TotalAmount   float64
	Distance      float64
	Duration      int
	Status        domain.TripStatus
	Notes         string
	CreatedBy     string
}

// CreateTrip creates a trip with its revenue split computed server-side.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	status := req.Status
	if status == "" {
		status = domain.TripStatusPending
	}
	if !validTripStatus(status) {
		return nil, ErrInvalidTripStatus
	}

	share, err := revenue.Split(req.TotalAmount)
	if err != nil {
		return nil, err
	}

	// Verify references exist so reports never aggregate orphan trips.
	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = time.Now()
	}

	trip := &domain.Trip{
		ID:            uuid.New().String(),
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		StartTime:     startTime,
		EndTime:       req.EndTime,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		TotalAmount:   req.TotalAmount,
		DriverShare:   share.DriverShare,
		CompanyShare:  share.CompanyShare,
		Distance:      req.Distance,
		Duration:      req.Duration,
		Status:        status,
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     time.Now(),
	}

	if trip.Status != domain.TripStatusCompleted {
		if err := s.tripRepo.Create(ctx, trip); err != nil {
			return nil, err
		}
		s.invalidateDashboard(ctx)
		return trip, nil
	}

	// A trip created directly as completed also bumps the driver's running
	// totals; both writes happen in one transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

	if err = txTripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	if err = txDriverRepo.AddCompletedTrip(ctx, driver.ID, trip.DriverShare); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return trip, nil
}

// UpdateTripRequest contains the parameters for updating a trip. Nil fields
// are left unchanged.
type UpdateTripRequest struct {
	TripID        string
	VehicleID     *string
	DriverID      *string
	StartTime     *time.Time
	EndTime       *time.Time
	StartLocation *string
	EndLocation   *string
	TotalAmount   *float64
	Distance      *float64
	Duration      *int
	Status        *domain.TripStatus
	Notes         *string
}

// UpdateTrip applies a partial update. The revenue split is recomputed only
// when the total amount changes; updates to unrelated fields leave the
// stored shares untouched.
func (s *TripService) UpdateTrip(ctx context.Context, req UpdateTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	wasCompleted := trip.Completed()

	if req.VehicleID != nil {
		if *req.VehicleID == "" {
			return nil, ErrInvalidVehicleID
		}
		if _, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID); err != nil {
			return nil, err
		}
		trip.VehicleID = *req.VehicleID
	}
	if req.DriverID != nil {
		if *req.DriverID == "" {
			return nil, ErrInvalidDriverID
		}
		if _, err := s.driverRepo.GetByID(ctx, *req.DriverID); err != nil {
			return nil, err
		}
		trip.DriverID = *req.DriverID
	}
	if req.StartTime != nil {
		trip.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		trip.EndTime = *req.EndTime
	}
	if req.StartLocation != nil {
		trip.StartLocation = *req.StartLocation
	}
	if req.EndLocation != nil {
		trip.EndLocation = *req.EndLocation
	}
	if req.Distance != nil {
		trip.Distance = *req.Distance
	}
	if req.Duration != nil {
		trip.Duration = *req.Duration
	}
	if req.Notes != nil {
		trip.Notes = *req.Notes
	}
	if req.Status != nil {
		if !validTripStatus(*req.Status) {
			return nil, ErrInvalidTripStatus
		}
		trip.Status = *req.Status
	}

	if req.TotalAmount != nil && *req.TotalAmount != trip.TotalAmount {
		share, err := revenue.Split(*req.TotalAmount)
		if err != nil {
			return nil, err
		}
		trip.TotalAmount = *req.TotalAmount
		trip.DriverShare = share.DriverShare
		trip.CompanyShare = share.CompanyShare
	}

	nowCompleted := trip.Completed()

	if !wasCompleted && nowCompleted {
		// Completion bumps the driver's running totals in the same
		// transaction as the trip update.
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}

		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		txTripRepo := postgres.NewTripRepositoryWithTx(tx)
		txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

		if err = txTripRepo.Update(ctx, trip); err != nil {
			return nil, err
		}

		if err = txDriverRepo.AddCompletedTrip(ctx, trip.DriverID, trip.DriverShare); err != nil {
			return nil, err
		}

		if err = tx.Commit(); err != nil {
			return nil, err
		}
	} else {
		if err := s.tripRepo.Update(ctx, trip); err != nil {
			return nil, err
		}
	}

	s.invalidateDashboard(ctx)
	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// ListTrips retrieves trips matching the filter.
func (s *TripService) ListTrips(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, ErrInvalidDateRange
	}

	return s.tripRepo.List(ctx, filter)
}

// DeleteTrip removes a trip.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx)
	return nil
}

// invalidateDashboard drops the cached dashboard summary after a mutation.
// Cache failures are logged, not surfaced; the cache is repopulated on the
// next read.
func (s *TripService) invalidateDashboard(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.InvalidateMetrics(ctx); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}

func validTripStatus(status domain.TripStatus) bool {
	switch status {
	case domain.TripStatusPending, domain.TripStatusInProgress,
		domain.TripStatusCompleted, domain.TripStatusCancelled:
		return true
	}
	return false
}
