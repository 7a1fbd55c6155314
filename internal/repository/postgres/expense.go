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

// ExpenseRepository is a PostgreSQL implementation of repository.ExpenseRepository.
type ExpenseRepository struct {
	q Querier
}

// NewExpenseRepository creates a new PostgreSQL expense repository.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{q: db}
}

// NewExpenseRepositoryWithTx creates an expense repository using a transaction.
func NewExpenseRepositoryWithTx(tx *sql.Tx) *ExpenseRepository {
	return &ExpenseRepository{q: tx}
}

const expenseColumns = `id, vehicle_id, type, amount, COALESCE(description, ''), expense_date,
		COALESCE(created_by, ''), created_at`

// Create persists a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, vehicle_id, type, amount, description, expense_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		expense.ID,
		expense.VehicleID,
		expense.Type,
		expense.Amount,
		expense.Description,
		expense.ExpenseDate,
		expense.CreatedBy,
		expense.CreatedAt,
	)

	return err
}

func scanExpense(scan func(dest ...any) error) (*domain.Expense, error) {
	var expense domain.Expense

	err := scan(
		&expense.ID,
		&expense.VehicleID,
		&expense.Type,
		&expense.Amount,
		&expense.Description,
		&expense.ExpenseDate,
		&expense.CreatedBy,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	expense, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return expense, nil
}

// List retrieves expenses matching the filter, most recent first.
func (r *ExpenseRepository) List(ctx context.Context, filter repository.ExpenseFilter) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	var args []any

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}
	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		query += ` AND vehicle_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY expense_date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// Update updates an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET vehicle_id = $1, type = $2, amount = $3, description = $4, expense_date = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		expense.VehicleID,
		expense.Type,
		expense.Amount,
		expense.Description,
		expense.ExpenseDate,
		expense.ID,
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

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
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

// TotalSince sums expense amounts with an expense date at or after since.
func (r *ExpenseRepository) TotalSince(ctx context.Context, since time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date >= $1`

	var total float64
	err := r.q.QueryRowContext(ctx, query, since).Scan(&total)
	return total, err
}

// Ensure ExpenseRepository implements repository.ExpenseRepository.
var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
