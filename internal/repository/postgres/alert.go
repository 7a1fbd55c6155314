package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// AlertRepository is a PostgreSQL implementation of repository.AlertRepository.
type AlertRepository struct {
	q Querier
}

// NewAlertRepository creates a new PostgreSQL alert repository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{q: db}
}

const alertColumns = `id, type, title, message, COALESCE(vehicle_id, ''), COALESCE(driver_id, ''),
		is_read, priority, expiry_date, created_at`

// Create persists a new alert.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (id, type, title, message, vehicle_id, driver_id, is_read, priority, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		alert.ID,
		alert.Type,
		alert.Title,
		alert.Message,
		alert.VehicleID,
		alert.DriverID,
		alert.IsRead,
		alert.Priority,
		toNullTime(alert.ExpiryDate),
		alert.CreatedAt,
	)

	return err
}

func scanAlert(scan func(dest ...any) error) (*domain.Alert, error) {
	var alert domain.Alert
	var expiry sql.NullTime

	err := scan(
		&alert.ID,
		&alert.Type,
		&alert.Title,
		&alert.Message,
		&alert.VehicleID,
		&alert.DriverID,
		&alert.IsRead,
		&alert.Priority,
		&expiry,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	alert.ExpiryDate = fromNullTime(expiry)
	return &alert, nil
}

// GetByID retrieves an alert by ID.
func (r *AlertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	alert, err := scanAlert(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return alert, nil
}

func (r *AlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]*domain.Alert, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// GetAll retrieves all alerts, newest first.
func (r *AlertRepository) GetAll(ctx context.Context) ([]*domain.Alert, error) {
	return r.queryAlerts(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC`)
}

// GetUnread retrieves unread alerts, newest first.
func (r *AlertRepository) GetUnread(ctx context.Context) ([]*domain.Alert, error) {
	return r.queryAlerts(ctx, `SELECT `+alertColumns+` FROM alerts WHERE is_read = FALSE ORDER BY created_at DESC`)
}

// MarkAsRead marks an alert as read.
func (r *AlertRepository) MarkAsRead(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, id)
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

// ExistsOpen reports whether an unread alert of the given type already exists
// for the vehicle.
func (r *AlertRepository) ExistsOpen(ctx context.Context, alertType domain.AlertType, vehicleID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM alerts WHERE type = $1 AND vehicle_id = $2 AND is_read = FALSE)`

	var exists bool
	err := r.q.QueryRowContext(ctx, query, alertType, vehicleID).Scan(&exists)
	return exists, err
}

// Ensure AlertRepository implements repository.AlertRepository.
var _ repository.AlertRepository = (*AlertRepository)(nil)
