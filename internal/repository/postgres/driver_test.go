package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

func testDriver() *domain.Driver {
	return &domain.Driver{
		ID:            "driver-1",
		UserID:        "user-1",
		LicenseNumber: "DL-100",
		LicenseExpiry: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		PhoneNumber:   "9876543210",
		IsActive:      true,
		CreatedAt:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestDriverRepository_Create_DuplicateLicense(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewDriverRepository(db)

	mock.ExpectExec("INSERT INTO drivers").
		WillReturnError(&pq.Error{Code: "23505"})

	if err := repo.Create(context.Background(), testDriver()); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDriverRepository_GetByUserID(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewDriverRepository(db)
	driver := testDriver()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "license_number", "license_expiry", "phone_number",
		"address", "is_active", "total_trips", "total_earnings", "created_at",
	}).AddRow(
		driver.ID, driver.UserID, driver.LicenseNumber, driver.LicenseExpiry,
		driver.PhoneNumber, driver.Address, driver.IsActive, 12, 8400.0, driver.CreatedAt,
	)

	mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE user_id = \$1`).
		WithArgs(driver.UserID).
		WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), driver.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != driver.ID || got.TotalTrips != 12 || got.TotalEarnings != 8400 {
		t.Errorf("unexpected driver: %+v", got)
	}
}

func TestDriverRepository_AddCompletedTrip(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewDriverRepository(db)

	mock.ExpectExec(`UPDATE drivers SET total_trips = total_trips \+ 1, total_earnings = total_earnings \+ \$1 WHERE id = \$2`).
		WithArgs(700.0, "driver-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddCompletedTrip(context.Background(), "driver-1", 700); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDriverRepository_AddCompletedTrip_UnknownDriver(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewDriverRepository(db)

	mock.ExpectExec("UPDATE drivers").
		WithArgs(700.0, "driver-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddCompletedTrip(context.Background(), "driver-missing", 700)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDriverRepository_CountActive(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewDriverRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM drivers WHERE is_active = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 active drivers, got %d", count)
	}
}
