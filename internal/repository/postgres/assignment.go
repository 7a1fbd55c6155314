package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// AssignmentRepository is a PostgreSQL implementation of repository.AssignmentRepository.
type AssignmentRepository struct {
	q Querier
}

// NewAssignmentRepository creates a new PostgreSQL assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{q: db}
}

// NewAssignmentRepositoryWithTx creates an assignment repository using a transaction.
func NewAssignmentRepositoryWithTx(tx *sql.Tx) *AssignmentRepository {
	return &AssignmentRepository{q: tx}
}

const assignmentColumns = `id, vehicle_id, driver_id, assigned_date, unassigned_date, is_active, created_at`

// Assign creates an active assignment, deactivating any previous active
// assignment for the vehicle.
func (r *AssignmentRepository) Assign(ctx context.Context, vehicleID, driverID string) (*domain.VehicleAssignment, error) {
	now := time.Now()

	_, err := r.q.ExecContext(ctx, `
		UPDATE vehicle_assignments
		SET is_active = FALSE, unassigned_date = $1
		WHERE vehicle_id = $2 AND is_active = TRUE
	`, now, vehicleID)
	if err != nil {
		return nil, err
	}

	assignment := &domain.VehicleAssignment{
		ID:           uuid.New().String(),
		VehicleID:    vehicleID,
		DriverID:     driverID,
		AssignedDate: now,
		IsActive:     true,
		CreatedAt:    now,
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO vehicle_assignments (id, vehicle_id, driver_id, assigned_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, assignment.ID, assignment.VehicleID, assignment.DriverID, assignment.AssignedDate, assignment.IsActive, assignment.CreatedAt)
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// Unassign deactivates an assignment.
func (r *AssignmentRepository) Unassign(ctx context.Context, assignmentID string) error {
	result, err := r.q.ExecContext(ctx, `
		UPDATE vehicle_assignments
		SET is_active = FALSE, unassigned_date = $1
		WHERE id = $2
	`, time.Now(), assignmentID)
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

func scanAssignment(scan func(dest ...any) error) (*domain.VehicleAssignment, error) {
	var assignment domain.VehicleAssignment
	var unassigned sql.NullTime

	err := scan(
		&assignment.ID,
		&assignment.VehicleID,
		&assignment.DriverID,
		&assignment.AssignedDate,
		&unassigned,
		&assignment.IsActive,
		&assignment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	assignment.UnassignedDate = fromNullTime(unassigned)
	return &assignment, nil
}

// GetActive retrieves all active assignments.
func (r *AssignmentRepository) GetActive(ctx context.Context) ([]*domain.VehicleAssignment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM vehicle_assignments WHERE is_active = TRUE ORDER BY assigned_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.VehicleAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// GetCurrentByDriverID retrieves the driver's active assignment.
// Returns nil if the driver has no vehicle assigned.
func (r *AssignmentRepository) GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM vehicle_assignments
		WHERE driver_id = $1 AND is_active = TRUE
		LIMIT 1
	`, driverID)

	assignment, err := scanAssignment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return assignment, nil
}

// Ensure AssignmentRepository implements repository.AssignmentRepository.
var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)
