package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// PayoutRepository is a PostgreSQL implementation of repository.PayoutRepository.
type PayoutRepository struct {
	q Querier
}

// NewPayoutRepository creates a new PostgreSQL payout repository.
func NewPayoutRepository(db *sql.DB) *PayoutRepository {
	return &PayoutRepository{q: db}
}

// NewPayoutRepositoryWithTx creates a payout repository using a transaction.
func NewPayoutRepositoryWithTx(tx *sql.Tx) *PayoutRepository {
	return &PayoutRepository{q: tx}
}

const payoutColumns = `id, driver_id, amount, status, payout_date, COALESCE(payment_reference, ''),
		COALESCE(payment_method, ''), from_date, to_date, total_trips, total_revenue,
		COALESCE(created_by, ''), created_at`

// Create persists a new payout.
func (r *PayoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	query := `
		INSERT INTO payouts (id, driver_id, amount, status, payout_date, payment_reference,
			payment_method, from_date, to_date, total_trips, total_revenue, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.ExecContext(ctx, query,
		payout.ID,
		payout.DriverID,
		payout.Amount,
		payout.Status,
		toNullTime(payout.PayoutDate),
		payout.PaymentReference,
		payout.PaymentMethod,
		payout.FromDate,
		payout.ToDate,
		payout.TotalTrips,
		payout.TotalRevenue,
		payout.CreatedBy,
		payout.CreatedAt,
	)

	return err
}

func scanPayout(scan func(dest ...any) error) (*domain.Payout, error) {
	var payout domain.Payout
	var payoutDate sql.NullTime

	err := scan(
		&payout.ID,
		&payout.DriverID,
		&payout.Amount,
		&payout.Status,
		&payoutDate,
		&payout.PaymentReference,
		&payout.PaymentMethod,
		&payout.FromDate,
		&payout.ToDate,
		&payout.TotalTrips,
		&payout.TotalRevenue,
		&payout.CreatedBy,
		&payout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	payout.PayoutDate = fromNullTime(payoutDate)
	return &payout, nil
}

// GetByID retrieves a payout by ID.
func (r *PayoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	payout, err := scanPayout(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return payout, nil
}

func (r *PayoutRepository) queryPayouts(ctx context.Context, query string, args ...any) ([]*domain.Payout, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*domain.Payout
	for rows.Next() {
		payout, err := scanPayout(rows.Scan)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, payout)
	}

	return payouts, rows.Err()
}

// GetAll retrieves all payouts, newest first.
func (r *PayoutRepository) GetAll(ctx context.Context) ([]*domain.Payout, error) {
	return r.queryPayouts(ctx, `SELECT `+payoutColumns+` FROM payouts ORDER BY created_at DESC`)
}

// GetByDriverID retrieves all payouts for a driver, newest first.
func (r *PayoutRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Payout, error) {
	return r.queryPayouts(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE driver_id = $1 ORDER BY created_at DESC`, driverID)
}

// GetPending retrieves payouts still awaiting settlement.
func (r *PayoutRepository) GetPending(ctx context.Context) ([]*domain.Payout, error) {
	return r.queryPayouts(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE status = $1 ORDER BY created_at DESC`, domain.PayoutStatusPending)
}

// Update updates an existing payout.
func (r *PayoutRepository) Update(ctx context.Context, payout *domain.Payout) error {
	query := `
		UPDATE payouts
		SET amount = $1, status = $2, payout_date = $3, payment_reference = $4, payment_method = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		payout.Amount,
		payout.Status,
		toNullTime(payout.PayoutDate),
		payout.PaymentReference,
		payout.PaymentMethod,
		payout.ID,
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

// Delete removes a payout.
func (r *PayoutRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM payouts WHERE id = $1`, id)
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

// Ensure PayoutRepository implements repository.PayoutRepository.
var _ repository.PayoutRepository = (*PayoutRepository)(nil)
