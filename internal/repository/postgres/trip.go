package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, vehicle_id, driver_id, start_time, end_time, start_location, end_location,
		total_amount, driver_share, company_share, distance, duration_minutes, status,
		COALESCE(notes, ''), COALESCE(created_by, ''), created_at`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, vehicle_id, driver_id, start_time, end_time, start_location, end_location,
			total_amount, driver_share, company_share, distance, duration_minutes, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.VehicleID,
		trip.DriverID,
		trip.StartTime,
		toNullTime(trip.EndTime),
		trip.StartLocation,
		trip.EndLocation,
		trip.TotalAmount,
		trip.DriverShare,
		trip.CompanyShare,
		trip.Distance,
		trip.Duration,
		trip.Status,
		trip.Notes,
		trip.CreatedBy,
		trip.CreatedAt,
	)

	return err
}

func scanTrip(scan func(dest ...any) error) (*domain.Trip, error) {
	var trip domain.Trip
	var endTime sql.NullTime

	err := scan(
		&trip.ID,
		&trip.VehicleID,
		&trip.DriverID,
		&trip.StartTime,
		&endTime,
		&trip.StartLocation,
		&trip.EndLocation,
		&trip.TotalAmount,
		&trip.DriverShare,
		&trip.CompanyShare,
		&trip.Distance,
		&trip.Duration,
		&trip.Status,
		&trip.Notes,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip.EndTime = fromNullTime(endTime)
	return &trip, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	trip, err := scanTrip(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// List retrieves trips matching the filter, most recent start first.
func (r *TripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	var args []any

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += ` AND start_time >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += ` AND start_time <= $` + strconv.Itoa(len(args))
	}
	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		query += ` AND vehicle_id = $` + strconv.Itoa(len(args))
	}
	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		query += ` AND driver_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY start_time DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET vehicle_id = $1, driver_id = $2, start_time = $3, end_time = $4,
			start_location = $5, end_location = $6, total_amount = $7, driver_share = $8,
			company_share = $9, distance = $10, duration_minutes = $11, status = $12, notes = $13
		WHERE id = $14
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.VehicleID,
		trip.DriverID,
		trip.StartTime,
		toNullTime(trip.EndTime),
		trip.StartLocation,
		trip.EndLocation,
		trip.TotalAmount,
		trip.DriverShare,
		trip.CompanyShare,
		trip.Distance,
		trip.Duration,
		trip.Status,
		trip.Notes,
		trip.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Recent retrieves the most recently started trips.
func (r *TripRepository) Recent(ctx context.Context, limit int) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_time DESC LIMIT $1`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// CompletedRevenueSince sums the total amount of completed trips with a start
// time at or after since.
func (r *TripRepository) CompletedRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM trips
		WHERE status = $1 AND start_time >= $2
	`

	var total float64
	err := r.q.QueryRowContext(ctx, query, domain.TripStatusCompleted, since).Scan(&total)
	return total, err
}

// TopVehiclesByRevenue ranks vehicles by summed completed-trip revenue since
// the given time. Ties are broken by registration number so the ordering is
// deterministic.
func (r *TripRepository) TopVehiclesByRevenue(ctx context.Context, since time.Time, limit int) ([]repository.TopVehicle, error) {
	query := `
		SELECT v.id, v.registration_number, v.make, v.model,
			COUNT(t.id), COALESCE(SUM(t.total_amount), 0) AS revenue
		FROM vehicles v
		LEFT JOIN trips t ON t.vehicle_id = v.id AND t.status = $1 AND t.start_time >= $2
		GROUP BY v.id, v.registration_number, v.make, v.model
		ORDER BY revenue DESC, v.registration_number ASC
		LIMIT $3
	`

	rows, err := r.q.QueryContext(ctx, query, domain.TripStatusCompleted, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []repository.TopVehicle
	for rows.Next() {
		var tv repository.TopVehicle
		if err := rows.Scan(&tv.VehicleID, &tv.RegistrationNumber, &tv.Make, &tv.Model, &tv.TripCount, &tv.Revenue); err != nil {
			return nil, err
		}
		top = append(top, tv)
	}

	return top, rows.Err()
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
