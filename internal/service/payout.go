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

// payoutLockTTL bounds how long a payout generation can hold a driver's lock
// if the process dies mid-run.
const payoutLockTTL = 30 * time.Second

// PayoutService generates and settles driver payouts. Generation is guarded
// by a per-driver Redis lock so two concurrent requests cannot both sum the
// same trips into two payouts.
type PayoutService struct {
	payoutRepo repository.PayoutRepository
	tripRepo   repository.TripRepository
	driverRepo repository.DriverRepository
	lockStore  redis.LockStoreInterface
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(
	payoutRepo repository.PayoutRepository,
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	lockStore redis.LockStoreInterface,
) *PayoutService {
	return &PayoutService{
		payoutRepo: payoutRepo,
		tripRepo:   tripRepo,
		driverRepo: driverRepo,
		lockStore:  lockStore,
	}
}

// GeneratePayoutRequest contains the parameters for generating a payout.
type GeneratePayoutRequest struct {
	DriverID      string
	FromDate      time.Time
	ToDate        time.Time
	PaymentMethod string
	CreatedBy     string
}

// GeneratePayout sums the driver shares of completed trips started inside
// [FromDate, ToDate] into a new pending payout.
func (s *PayoutService) GeneratePayout(ctx context.Context, req GeneratePayoutRequest) (*domain.Payout, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.FromDate.IsZero() || req.ToDate.IsZero() || req.FromDate.After(req.ToDate) {
		return nil, ErrInvalidDateRange
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive {
		return nil, ErrDriverNotActive
	}

	acquired, err := s.lockStore.AcquirePayoutLock(ctx, req.DriverID, payoutLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrPayoutInProgress
	}
	defer func() {
		if err := s.lockStore.ReleasePayoutLock(ctx, req.DriverID); err != nil {
			log.Printf("failed to release payout lock for driver %s: %v", req.DriverID, err)
		}
	}()

	trips, err := s.tripRepo.List(ctx, repository.TripFilter{
		From:     req.FromDate,
		To:       req.ToDate,
		DriverID: req.DriverID,
		Status:   domain.TripStatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrNoCompletedTrips
	}

	var amount, revenue float64
	for _, t := range trips {
		amount += t.DriverShare
		revenue += t.TotalAmount
	}

	payout := &domain.Payout{
		ID:            uuid.New().String(),
		DriverID:      req.DriverID,
		Amount:        amount,
		Status:        domain.PayoutStatusPending,
		PaymentMethod: req.PaymentMethod,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		TotalTrips:    len(trips),
		TotalRevenue:  revenue,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     time.Now(),
	}

	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// MarkPaid settles a payout with its payment reference. Failed payouts can
// be retried; an already paid payout cannot be settled twice.
func (s *PayoutService) MarkPaid(ctx context.Context, payoutID, paymentReference string) (*domain.Payout, error) {
	if payoutID == "" {
		return nil, ErrInvalidPayoutID
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return nil, ErrPayoutAlreadySettled
	}

	payout.Status = domain.PayoutStatusPaid
	payout.PayoutDate = time.Now()
	payout.PaymentReference = paymentReference

	if err := s.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// MarkFailed records a failed settlement attempt. A failed payout can be
// retried by marking it paid later; it stays out of pending listings.
func (s *PayoutService) MarkFailed(ctx context.Context, payoutID string) (*domain.Payout, error) {
	if payoutID == "" {
		return nil, ErrInvalidPayoutID
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return nil, ErrPayoutAlreadySettled
	}

	payout.Status = domain.PayoutStatusFailed

	if err := s.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// GetPayout retrieves a payout by ID.
func (s *PayoutService) GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error) {
	if payoutID == "" {
		return nil, ErrInvalidPayoutID
	}
	return s.payoutRepo.GetByID(ctx, payoutID)
}

// ListPayouts retrieves all payouts, optionally narrowed to one driver.
func (s *PayoutService) ListPayouts(ctx context.Context, driverID string) ([]*domain.Payout, error) {
	if driverID != "" {
		return s.payoutRepo.GetByDriverID(ctx, driverID)
	}
	return s.payoutRepo.GetAll(ctx)
}

// PendingPayouts retrieves payouts awaiting settlement.
func (s *PayoutService) PendingPayouts(ctx context.Context) ([]*domain.Payout, error) {
	return s.payoutRepo.GetPending(ctx)
}
