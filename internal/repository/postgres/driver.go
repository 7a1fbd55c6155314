package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, user_id, license_number, license_expiry, COALESCE(phone_number, ''),
		COALESCE(address, ''), is_active, total_trips, total_earnings, created_at`

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, user_id, license_number, license_expiry, phone_number, address,
			is_active, total_trips, total_earnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.UserID,
		driver.LicenseNumber,
		toNullTime(driver.LicenseExpiry),
		driver.PhoneNumber,
		driver.Address,
		driver.IsActive,
		driver.TotalTrips,
		driver.TotalEarnings,
		driver.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}

	return err
}

func scanDriver(scan func(dest ...any) error) (*domain.Driver, error) {
	var driver domain.Driver
	var licenseExpiry sql.NullTime

	err := scan(
		&driver.ID,
		&driver.UserID,
		&driver.LicenseNumber,
		&licenseExpiry,
		&driver.PhoneNumber,
		&driver.Address,
		&driver.IsActive,
		&driver.TotalTrips,
		&driver.TotalEarnings,
		&driver.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	driver.LicenseExpiry = fromNullTime(licenseExpiry)
	return &driver, nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	driver, err := scanDriver(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return driver, nil
}

// GetByUserID retrieves the driver record linked to a user account.
func (r *DriverRepository) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`

	row := r.q.QueryRowContext(ctx, query, userID)
	driver, err := scanDriver(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return driver, nil
}

// GetAll retrieves all drivers, newest first.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows.Scan)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

// Update updates an existing driver.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET license_number = $1, license_expiry = $2, phone_number = $3, address = $4, is_active = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		driver.LicenseNumber,
		toNullTime(driver.LicenseExpiry),
		driver.PhoneNumber,
		driver.Address,
		driver.IsActive,
		driver.ID,
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

// Delete removes a driver.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
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

// AddCompletedTrip increments the driver's running totals.
func (r *DriverRepository) AddCompletedTrip(ctx context.Context, id string, earnings float64) error {
	query := `
		UPDATE drivers
		SET total_trips = total_trips + 1, total_earnings = total_earnings + $1
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, earnings, id)
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

// CountActive counts drivers with isActive = true.
func (r *DriverRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)
