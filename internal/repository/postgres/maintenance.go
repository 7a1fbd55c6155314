package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

const maintenanceColumns = `id, vehicle_id, type, COALESCE(description, ''), cost, service_date,
		next_service_date, odometer_reading, COALESCE(service_center, ''), COALESCE(created_by, ''), created_at`

// Create persists a new maintenance log.
func (r *MaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	query := `
		INSERT INTO maintenance_logs (id, vehicle_id, type, description, cost, service_date,
			next_service_date, odometer_reading, service_center, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.VehicleID,
		log.Type,
		log.Description,
		log.Cost,
		log.ServiceDate,
		toNullTime(log.NextServiceDate),
		log.OdometerReading,
		log.ServiceCenter,
		log.CreatedBy,
		log.CreatedAt,
	)

	return err
}

func scanMaintenanceLog(scan func(dest ...any) error) (*domain.MaintenanceLog, error) {
	var log domain.MaintenanceLog
	var nextService sql.NullTime

	err := scan(
		&log.ID,
		&log.VehicleID,
		&log.Type,
		&log.Description,
		&log.Cost,
		&log.ServiceDate,
		&nextService,
		&log.OdometerReading,
		&log.ServiceCenter,
		&log.CreatedBy,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	log.NextServiceDate = fromNullTime(nextService)
	return &log, nil
}

// GetByID retrieves a maintenance log by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_logs WHERE id = $1`, id)
	log, err := scanMaintenanceLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return log, nil
}

func (r *MaintenanceRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*domain.MaintenanceLog, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.MaintenanceLog
	for rows.Next() {
		log, err := scanMaintenanceLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// GetAll retrieves all maintenance logs, newest first.
func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceLog, error) {
	return r.queryLogs(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_logs ORDER BY created_at DESC`)
}

// GetByVehicleID retrieves maintenance logs for a vehicle, most recent service first.
func (r *MaintenanceRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.MaintenanceLog, error) {
	return r.queryLogs(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_logs WHERE vehicle_id = $1 ORDER BY service_date DESC`, vehicleID)
}

// Update updates an existing maintenance log.
func (r *MaintenanceRepository) Update(ctx context.Context, log *domain.MaintenanceLog) error {
	query := `
		UPDATE maintenance_logs
		SET vehicle_id = $1, type = $2, description = $3, cost = $4, service_date = $5,
			next_service_date = $6, odometer_reading = $7, service_center = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		log.VehicleID,
		log.Type,
		log.Description,
		log.Cost,
		log.ServiceDate,
		toNullTime(log.NextServiceDate),
		log.OdometerReading,
		log.ServiceCenter,
		log.ID,
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

// Delete removes a maintenance log.
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM maintenance_logs WHERE id = $1`, id)
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

// Ensure MaintenanceRepository implements repository.MaintenanceRepository.
var _ repository.MaintenanceRepository = (*MaintenanceRepository)(nil)
