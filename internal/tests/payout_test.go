package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// PAYOUT GENERATION AND SETTLEMENT
// ──────────────────────────────────────────────

func newPayoutFixture(t *testing.T) (*service.PayoutService, *MockPayoutRepository, *MockTripRepository, *MockDriverRepository, *MockLockStore) {
	t.Helper()

	payoutRepo := NewMockPayoutRepository()
	tripRepo := NewMockTripRepository()
	driverRepo := NewMockDriverRepository()
	lockStore := NewMockLockStore()

	driverRepo.AddDriver(&domain.Driver{
		ID:            "driver-1",
		LicenseNumber: "DL-100",
		IsActive:      true,
	})

	svc := service.NewPayoutService(payoutRepo, tripRepo, driverRepo, lockStore)
	return svc, payoutRepo, tripRepo, driverRepo, lockStore
}

func payoutPeriod() (time.Time, time.Time) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 0, 7)
}

func TestGeneratePayout_SumsDriverShares(t *testing.T) {
	t.Parallel()

	svc, _, tripRepo, _, lockStore := newPayoutFixture(t)
	from, to := payoutPeriod()

	tripRepo.AddTrip(completedTrip("trip-1", "vehicle-1", "driver-1", from.Add(24*time.Hour), 1000, 300, 700))
	tripRepo.AddTrip(completedTrip("trip-2", "vehicle-1", "driver-1", from.Add(48*time.Hour), 3000, 2100, 900))
	// Outside the window, must not count.
	tripRepo.AddTrip(completedTrip("trip-3", "vehicle-1", "driver-1", to.Add(24*time.Hour), 5000, 3500, 1500))

	payout, err := svc.GeneratePayout(context.Background(), service.GeneratePayoutRequest{
		DriverID: "driver-1",
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payout.Amount != 2400 {
		t.Errorf("expected amount 2400, got %v", payout.Amount)
	}
	if payout.TotalTrips != 2 {
		t.Errorf("expected 2 trips, got %d", payout.TotalTrips)
	}
	if payout.TotalRevenue != 4000 {
		t.Errorf("expected revenue 4000, got %v", payout.TotalRevenue)
	}
	if payout.Status != domain.PayoutStatusPending {
		t.Errorf("expected pending status, got %s", payout.Status)
	}
	if lockStore.Locked("driver-1") {
		t.Error("lock must be released after generation")
	}
}

func TestGeneratePayout_NoCompletedTrips(t *testing.T) {
	t.Parallel()

	svc, payoutRepo, tripRepo, _, _ := newPayoutFixture(t)
	from, to := payoutPeriod()

	// Only a pending trip in the window.
	tripRepo.AddTrip(&domain.Trip{
		ID:          "trip-1",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		StartTime:   from.Add(time.Hour),
		TotalAmount: 1000,
		Status:      domain.TripStatusPending,
	})

	_, err := svc.GeneratePayout(context.Background(), service.GeneratePayoutRequest{
		DriverID: "driver-1",
		FromDate: from,
		ToDate:   to,
	})
	if !errors.Is(err, service.ErrNoCompletedTrips) {
		t.Errorf("expected ErrNoCompletedTrips, got %v", err)
	}
	if payoutRepo.CountPayouts() != 0 {
		t.Error("no payout should be stored")
	}
}

func TestGeneratePayout_LockContention(t *testing.T) {
	t.Parallel()

	svc, _, tripRepo, _, lockStore := newPayoutFixture(t)
	from, to := payoutPeriod()

	tripRepo.AddTrip(completedTrip("trip-1", "vehicle-1", "driver-1", from.Add(time.Hour), 1000, 300, 700))

	// Simulate a concurrent generation holding the driver's lock.
	acquired, err := lockStore.AcquirePayoutLock(context.Background(), "driver-1", time.Minute)
	if err != nil || !acquired {
		t.Fatalf("failed to pre-acquire lock: %v", err)
	}

	_, err = svc.GeneratePayout(context.Background(), service.GeneratePayoutRequest{
		DriverID: "driver-1",
		FromDate: from,
		ToDate:   to,
	})
	if !errors.Is(err, service.ErrPayoutInProgress) {
		t.Errorf("expected ErrPayoutInProgress, got %v", err)
	}
}

func TestGeneratePayout_InactiveDriverRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, driverRepo, _ := newPayoutFixture(t)
	from, to := payoutPeriod()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", LicenseNumber: "DL-200", IsActive: false})

	_, err := svc.GeneratePayout(context.Background(), service.GeneratePayoutRequest{
		DriverID: "driver-2",
		FromDate: from,
		ToDate:   to,
	})
	if !errors.Is(err, service.ErrDriverNotActive) {
		t.Errorf("expected ErrDriverNotActive, got %v", err)
	}
}

func TestGeneratePayout_InvalidRangeRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newPayoutFixture(t)
	from, to := payoutPeriod()

	_, err := svc.GeneratePayout(context.Background(), service.GeneratePayoutRequest{
		DriverID: "driver-1",
		FromDate: to,
		ToDate:   from,
	})
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestMarkPaid_SettlesPendingPayout(t *testing.T) {
	t.Parallel()

	svc, payoutRepo, _, _, _ := newPayoutFixture(t)

	payoutRepo.AddPayout(&domain.Payout{
		ID:       "payout-1",
		DriverID: "driver-1",
		Amount:   2400,
		Status:   domain.PayoutStatusPending,
	})

	payout, err := svc.MarkPaid(context.Background(), "payout-1", "TXN-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payout.Status != domain.PayoutStatusPaid {
		t.Errorf("expected paid, got %s", payout.Status)
	}
	if payout.PaymentReference != "TXN-123" {
		t.Errorf("expected payment reference recorded, got %q", payout.PaymentReference)
	}
	if payout.PayoutDate.IsZero() {
		t.Error("expected payout date set")
	}
}

func TestMarkPaid_AlreadyPaidRejected(t *testing.T) {
	t.Parallel()

	svc, payoutRepo, _, _, _ := newPayoutFixture(t)

	payoutRepo.AddPayout(&domain.Payout{
		ID:       "payout-1",
		DriverID: "driver-1",
		Status:   domain.PayoutStatusPaid,
	})

	_, err := svc.MarkPaid(context.Background(), "payout-1", "TXN-999")
	if !errors.Is(err, service.ErrPayoutAlreadySettled) {
		t.Errorf("expected ErrPayoutAlreadySettled, got %v", err)
	}
}

func TestMarkFailed_ThenRetryPaid(t *testing.T) {
	t.Parallel()

	svc, payoutRepo, _, _, _ := newPayoutFixture(t)

	payoutRepo.AddPayout(&domain.Payout{
		ID:       "payout-1",
		DriverID: "driver-1",
		Status:   domain.PayoutStatusPending,
	})

	failed, err := svc.MarkFailed(context.Background(), "payout-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed.Status != domain.PayoutStatusFailed {
		t.Errorf("expected failed, got %s", failed.Status)
	}

	// A failed settlement can be retried.
	paid, err := svc.MarkPaid(context.Background(), "payout-1", "TXN-RETRY")
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if paid.Status != domain.PayoutStatusPaid {
		t.Errorf("expected paid after retry, got %s", paid.Status)
	}
}
