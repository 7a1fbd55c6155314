package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

func setupMockDB(t testing.TB) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

func testTrip() *domain.Trip {
	return &domain.Trip{
		ID:            "trip-1",
		VehicleID:     "vehicle-1",
		DriverID:      "driver-1",
		StartTime:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		StartLocation: "Koramangala",
		EndLocation:   "Whitefield",
		TotalAmount:   3000,
		DriverShare:   2100,
		CompanyShare:  900,
		Distance:      22.5,
		Duration:      55,
		Status:        domain.TripStatusCompleted,
		Notes:         "airport run",
		CreatedBy:     "user-1",
		CreatedAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func tripRows(trips ...*domain.Trip) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "vehicle_id", "driver_id", "start_time", "end_time", "start_location", "end_location",
		"total_amount", "driver_share", "company_share", "distance", "duration_minutes", "status",
		"notes", "created_by", "created_at",
	})
	for _, trip := range trips {
		rows.AddRow(
			trip.ID, trip.VehicleID, trip.DriverID, trip.StartTime, toNullTime(trip.EndTime),
			trip.StartLocation, trip.EndLocation, trip.TotalAmount, trip.DriverShare,
			trip.CompanyShare, trip.Distance, trip.Duration, trip.Status,
			trip.Notes, trip.CreatedBy, trip.CreatedAt,
		)
	}
	return rows
}

func TestTripRepository_Create(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	trip := testTrip()

	mock.ExpectExec("INSERT INTO trips").
		WithArgs(
			trip.ID, trip.VehicleID, trip.DriverID, trip.StartTime, sqlmock.AnyArg(),
			trip.StartLocation, trip.EndLocation, trip.TotalAmount, trip.DriverShare,
			trip.CompanyShare, trip.Distance, trip.Duration, string(trip.Status),
			trip.Notes, trip.CreatedBy, trip.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_GetByID(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	trip := testTrip()

	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id = \$1`).
		WithArgs(trip.ID).
		WillReturnRows(tripRows(trip))

	got, err := repo.GetByID(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalAmount != 3000 || got.DriverShare != 2100 || got.CompanyShare != 900 {
		t.Errorf("unexpected amounts: %.2f / %.2f / %.2f", got.TotalAmount, got.DriverShare, got.CompanyShare)
	}
	// NULL end_time comes back as a zero time.
	if !got.EndTime.IsZero() {
		t.Errorf("expected zero end time, got %v", got.EndTime)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_GetByID_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTripRepository_List_AppliesFilters(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE 1=1 AND start_time >= \$1 AND start_time <= \$2 AND driver_id = \$3 AND status = \$4 ORDER BY start_time DESC`).
		WithArgs(from, to, "driver-1", string(domain.TripStatusCompleted)).
		WillReturnRows(tripRows(testTrip()))

	trips, err := repo.List(context.Background(), repository.TripFilter{
		From:     from,
		To:       to,
		DriverID: "driver-1",
		Status:   domain.TripStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_List_NoFilters(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE 1=1 ORDER BY start_time DESC`).
		WillReturnRows(tripRows())

	trips, err := repo.List(context.Background(), repository.TripFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 0 {
		t.Errorf("expected no trips, got %d", len(trips))
	}
}

func TestTripRepository_Update_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	trip := testTrip()

	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), trip); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTripRepository_Delete(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)

	mock.ExpectExec(`DELETE FROM trips WHERE id = \$1`).
		WithArgs("trip-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "trip-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTripRepository_CompletedRevenueSince(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	since := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\)`).
		WithArgs(string(domain.TripStatusCompleted), since).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4000.0))

	total, err := repo.CompletedRevenueSince(context.Background(), since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4000 {
		t.Errorf("expected 4000, got %.2f", total)
	}
}

func TestTripRepository_TopVehiclesByRevenue(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTripRepository(db)
	since := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "registration_number", "make", "model", "count", "revenue"}).
		AddRow("vehicle-b", "KA01CD5678", "Maruti", "Dzire", 2, 3500.0).
		AddRow("vehicle-a", "KA01AB1234", "Toyota", "Etios", 1, 1000.0)

	mock.ExpectQuery(`LEFT JOIN trips t ON t.vehicle_id = v.id`).
		WithArgs(string(domain.TripStatusCompleted), since, 5).
		WillReturnRows(rows)

	top, err := repo.TopVehiclesByRevenue(context.Background(), since, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(top))
	}
	if top[0].VehicleID != "vehicle-b" || top[0].Revenue != 3500 {
		t.Errorf("unexpected leader: %+v", top[0])
	}
	if top[0].TripCount != 2 {
		t.Errorf("expected 2 trips for leader, got %d", top[0].TripCount)
	}
}
