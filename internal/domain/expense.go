package domain

import "time"

// ExpenseType represents the category of a vehicle expense.
type ExpenseType string

const (
	ExpenseTypeFuel        ExpenseType = "fuel"
	ExpenseTypeTolls       ExpenseType = "tolls"
	ExpenseTypeRepairs     ExpenseType = "repairs"
	ExpenseTypeEMI         ExpenseType = "emi"
	ExpenseTypeInsurance   ExpenseType = "insurance"
	ExpenseTypeMaintenance ExpenseType = "maintenance"
	ExpenseTypeOther       ExpenseType = "other"
)

// ValidExpenseType reports whether t is a known expense category.
func ValidExpenseType(t ExpenseType) bool {
	switch t {
	case ExpenseTypeFuel, ExpenseTypeTolls, ExpenseTypeRepairs,
		ExpenseTypeEMI, ExpenseTypeInsurance, ExpenseTypeMaintenance, ExpenseTypeOther:
		return true
	}
	return false
}

// Expense represents a cost incurred against a vehicle. Expenses are
// independent of trips and feed profit/loss and expense-analysis reports only.
type Expense struct {
	ID          string
	VehicleID   string
	Type        ExpenseType
	Amount      float64
	Description string
	ExpenseDate time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
