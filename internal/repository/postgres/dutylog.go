package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// DutyLogRepository is a PostgreSQL implementation of repository.DutyLogRepository.
type DutyLogRepository struct {
	q Querier
}

// NewDutyLogRepository creates a new PostgreSQL duty log repository.
func NewDutyLogRepository(db *sql.DB) *DutyLogRepository {
	return &DutyLogRepository{q: db}
}

// NewDutyLogRepositoryWithTx creates a duty log repository using a transaction.
func NewDutyLogRepositoryWithTx(tx *sql.Tx) *DutyLogRepository {
	return &DutyLogRepository{q: tx}
}

const dutyLogColumns = `id, driver_id, vehicle_id, status, start_time, end_time, created_at`

// Create persists a new duty log.
func (r *DutyLogRepository) Create(ctx context.Context, log *domain.DutyLog) error {
	query := `
		INSERT INTO duty_logs (id, driver_id, vehicle_id, status, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.DriverID,
		log.VehicleID,
		log.Status,
		log.StartTime,
		toNullTime(log.EndTime),
		log.CreatedAt,
	)

	return err
}

func scanDutyLog(scan func(dest ...any) error) (*domain.DutyLog, error) {
	var log domain.DutyLog
	var endTime sql.NullTime

	err := scan(
		&log.ID,
		&log.DriverID,
		&log.VehicleID,
		&log.Status,
		&log.StartTime,
		&endTime,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	log.EndTime = fromNullTime(endTime)
	return &log, nil
}

// Update updates an existing duty log.
func (r *DutyLogRepository) Update(ctx context.Context, log *domain.DutyLog) error {
	query := `UPDATE duty_logs SET status = $1, end_time = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, log.Status, toNullTime(log.EndTime), log.ID)
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

// GetByDriverID retrieves all duty logs for a driver, newest first.
func (r *DutyLogRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.DutyLog, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+dutyLogColumns+` FROM duty_logs WHERE driver_id = $1 ORDER BY start_time DESC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.DutyLog
	for rows.Next() {
		log, err := scanDutyLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// GetCurrentByDriverID retrieves the driver's open duty log.
// Returns nil if the driver is off duty.
func (r *DutyLogRepository) GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.DutyLog, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+dutyLogColumns+`
		FROM duty_logs
		WHERE driver_id = $1 AND status = $2
		ORDER BY start_time DESC
		LIMIT 1
	`, driverID, domain.DutyStatusOnDuty)

	log, err := scanDutyLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return log, nil
}

// Ensure DutyLogRepository implements repository.DutyLogRepository.
var _ repository.DutyLogRepository = (*DutyLogRepository)(nil)
