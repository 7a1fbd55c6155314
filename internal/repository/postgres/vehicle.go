package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, registration_number, make, model, year, COALESCE(color, ''), status, odometer,
		insurance_expiry, fitness_expiry, permit_expiry, last_service_date, next_service_date, created_at`

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, registration_number, make, model, year, color, status, odometer,
			insurance_expiry, fitness_expiry, permit_expiry, last_service_date, next_service_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.RegistrationNumber,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Status,
		vehicle.Odometer,
		toNullTime(vehicle.InsuranceExpiry),
		toNullTime(vehicle.FitnessExpiry),
		toNullTime(vehicle.PermitExpiry),
		toNullTime(vehicle.LastServiceDate),
		toNullTime(vehicle.NextServiceDate),
		vehicle.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}

	return err
}

func scanVehicle(scan func(dest ...any) error) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var insurance, fitness, permit, lastService, nextService sql.NullTime

	err := scan(
		&vehicle.ID,
		&vehicle.RegistrationNumber,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Color,
		&vehicle.Status,
		&vehicle.Odometer,
		&insurance,
		&fitness,
		&permit,
		&lastService,
		&nextService,
		&vehicle.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	vehicle.InsuranceExpiry = fromNullTime(insurance)
	vehicle.FitnessExpiry = fromNullTime(fitness)
	vehicle.PermitExpiry = fromNullTime(permit)
	vehicle.LastServiceDate = fromNullTime(lastService)
	vehicle.NextServiceDate = fromNullTime(nextService)

	return &vehicle, nil
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	vehicle, err := scanVehicle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetAll retrieves all vehicles, newest first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET registration_number = $1, make = $2, model = $3, year = $4, color = $5, status = $6,
			odometer = $7, insurance_expiry = $8, fitness_expiry = $9, permit_expiry = $10,
			last_service_date = $11, next_service_date = $12
		WHERE id = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.RegistrationNumber,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Status,
		vehicle.Odometer,
		toNullTime(vehicle.InsuranceExpiry),
		toNullTime(vehicle.FitnessExpiry),
		toNullTime(vehicle.PermitExpiry),
		toNullTime(vehicle.LastServiceDate),
		toNullTime(vehicle.NextServiceDate),
		vehicle.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
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

// Delete removes a vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
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

// UpdateStatus sets the status of a vehicle.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, status, id)
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

// CountActive counts vehicles with status available or on_duty.
func (r *VehicleRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM vehicles WHERE status = $1 OR status = $2`

	var count int
	err := r.q.QueryRowContext(ctx, query, domain.VehicleStatusAvailable, domain.VehicleStatusOnDuty).Scan(&count)
	return count, err
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
