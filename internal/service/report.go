package service

import (
	"context"
	"sort"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// ReportType identifies a report kind.
type ReportType string

const (
	ReportTypeRevenue            ReportType = "revenue"
	ReportTypeVehiclePerformance ReportType = "vehicle_performance"
	ReportTypeDriverPerformance  ReportType = "driver_performance"
	ReportTypeExpenseAnalysis    ReportType = "expense_analysis"
	ReportTypeProfitLoss         ReportType = "profit_loss"
)

// DefaultReportLimit caps top-N performance reports when no limit is given.
const DefaultReportLimit = 10

// ReportFilter narrows report queries. Zero-value fields are ignored.
type ReportFilter struct {
	From      time.Time
	To        time.Time
	VehicleID string
	DriverID  string
	Limit     int
}

// ReportService computes aggregated reports over trips and expenses. All
// trip-based measures count completed trips only; expenses are filtered by
// expense date and vehicle but never by driver.
type ReportService struct {
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	expenseRepo repository.ExpenseRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	expenseRepo repository.ExpenseRepository,
) *ReportService {
	return &ReportService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		expenseRepo: expenseRepo,
	}
}

// aggregate folds items into groups keyed by key. init seeds a group from its
// first item, fold merges each subsequent item into the existing group. Every
// report reduces to one call of this combinator plus an ordering pass.
func aggregate[T any, G any](items []T, key func(T) string, init func(T) *G, fold func(*G, T)) map[string]*G {
	groups := make(map[string]*G)
	for _, item := range items {
		k := key(item)
		if g, ok := groups[k]; ok {
			fold(g, item)
		} else {
			groups[k] = init(item)
		}
	}
	return groups
}

// completedTrips fetches trips matching the filter and drops everything that
// is not completed. Status on the filter is forced so the store does the
// narrowing where it can.
func (s *ReportService) completedTrips(ctx context.Context, filter ReportFilter) ([]*domain.Trip, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, ErrInvalidDateRange
	}

	trips, err := s.tripRepo.List(ctx, repository.TripFilter{
		From:      filter.From,
		To:        filter.To,
		VehicleID: filter.VehicleID,
		DriverID:  filter.DriverID,
		Status:    domain.TripStatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *ReportService) expenses(ctx context.Context, filter ReportFilter) ([]*domain.Expense, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, ErrInvalidDateRange
	}

	return s.expenseRepo.List(ctx, repository.ExpenseFilter{
		From:      filter.From,
		To:        filter.To,
		VehicleID: filter.VehicleID,
	})
}

// vehicleLabels maps vehicle IDs to display labels. IDs with no matching
// vehicle fall back to the raw id so a dangling reference never hides a row.
func (s *ReportService) vehicleLabels(ctx context.Context) (map[string]string, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		labels[v.ID] = v.Label()
	}
	return labels, nil
}

func (s *ReportService) driverLabels(ctx context.Context) (map[string]string, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(drivers))
	for _, d := range drivers {
		labels[d.ID] = d.Label()
	}
	return labels, nil
}

func labelFor(labels map[string]string, id string) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return id
}

// RevenueReportRow is one calendar day of completed-trip revenue.
type RevenueReportRow struct {
	Date         string  `json:"date"`
	TripCount    int     `json:"trip_count"`
	TotalRevenue float64 `json:"total_revenue"`
	DriverShare  float64 `json:"driver_share"`
	CompanyShare float64 `json:"company_share"`
}

// RevenueReport is the daily revenue report.
type RevenueReport struct {
	Rows         []RevenueReportRow `json:"rows"`
	TotalTrips   int                `json:"total_trips"`
	TotalRevenue float64            `json:"total_revenue"`
	DriverShare  float64            `json:"driver_share"`
	CompanyShare float64            `json:"company_share"`
}

// Revenue groups completed trips by the local calendar date of their start
// time, ascending.
func (s *ReportService) Revenue(ctx context.Context, filter ReportFilter) (*RevenueReport, error) {
	trips, err := s.completedTrips(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := aggregate(trips,
		func(t *domain.Trip) string { return t.StartTime.Local().Format("2006-01-02") },
		func(t *domain.Trip) *RevenueReportRow {
			return &RevenueReportRow{
				Date:         t.StartTime.Local().Format("2006-01-02"),
				TripCount:    1,
				TotalRevenue: t.TotalAmount,
				DriverShare:  t.DriverShare,
				CompanyShare: t.CompanyShare,
			}
		},
		func(g *RevenueReportRow, t *domain.Trip) {
			g.TripCount++
			g.TotalRevenue += t.TotalAmount
			g.DriverShare += t.DriverShare
			g.CompanyShare += t.CompanyShare
		},
	)

	report := &RevenueReport{Rows: make([]RevenueReportRow, 0, len(groups))}
	for _, row := range groups {
		report.Rows = append(report.Rows, *row)
		report.TotalTrips += row.TripCount
		report.TotalRevenue += row.TotalRevenue
		report.DriverShare += row.DriverShare
		report.CompanyShare += row.CompanyShare
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Date < report.Rows[j].Date
	})
	return report, nil
}

// VehiclePerformanceRow is one vehicle's completed-trip totals.
type VehiclePerformanceRow struct {
	VehicleID string  `json:"vehicle_id"`
	Label     string  `json:"label"`
	TripCount int     `json:"trip_count"`
	Revenue   float64 `json:"revenue"`
	Distance  float64 `json:"distance"`
}

// VehiclePerformanceReport ranks vehicles by completed-trip revenue.
type VehiclePerformanceReport struct {
	Rows         []VehiclePerformanceRow `json:"rows"`
	TotalTrips   int                     `json:"total_trips"`
	TotalRevenue float64                 `json:"total_revenue"`
}

// VehiclePerformance ranks vehicles by completed-trip revenue, descending,
// ties broken by ascending vehicle id, capped at the filter limit.
func (s *ReportService) VehiclePerformance(ctx context.Context, filter ReportFilter) (*VehiclePerformanceReport, error) {
	trips, err := s.completedTrips(ctx, filter)
	if err != nil {
		return nil, err
	}
	labels, err := s.vehicleLabels(ctx)
	if err != nil {
		return nil, err
	}

	groups := aggregate(trips,
		func(t *domain.Trip) string { return t.VehicleID },
		func(t *domain.Trip) *VehiclePerformanceRow {
			return &VehiclePerformanceRow{
				VehicleID: t.VehicleID,
				Label:     labelFor(labels, t.VehicleID),
				TripCount: 1,
				Revenue:   t.TotalAmount,
				Distance:  t.Distance,
			}
		},
		func(g *VehiclePerformanceRow, t *domain.Trip) {
			g.TripCount++
			g.Revenue += t.TotalAmount
			g.Distance += t.Distance
		},
	)

	report := &VehiclePerformanceReport{Rows: make([]VehiclePerformanceRow, 0, len(groups))}
	for _, row := range groups {
		report.Rows = append(report.Rows, *row)
		report.TotalTrips += row.TripCount
		report.TotalRevenue += row.Revenue
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Revenue != report.Rows[j].Revenue {
			return report.Rows[i].Revenue > report.Rows[j].Revenue
		}
		return report.Rows[i].VehicleID < report.Rows[j].VehicleID
	})
	report.Rows = capRows(report.Rows, filter.Limit)
	return report, nil
}

// DriverPerformanceRow is one driver's completed-trip totals.
type DriverPerformanceRow struct {
	DriverID  string  `json:"driver_id"`
	Label     string  `json:"label"`
	TripCount int     `json:"trip_count"`
	Revenue   float64 `json:"revenue"`
	Earnings  float64 `json:"earnings"`
}

// DriverPerformanceReport ranks drivers by completed-trip earnings.
type DriverPerformanceReport struct {
	Rows          []DriverPerformanceRow `json:"rows"`
	TotalTrips    int                    `json:"total_trips"`
	TotalEarnings float64                `json:"total_earnings"`
}

// DriverPerformance ranks drivers by their share of completed-trip revenue,
// descending, ties broken by ascending driver id, capped at the filter limit.
func (s *ReportService) DriverPerformance(ctx context.Context, filter ReportFilter) (*DriverPerformanceReport, error) {
	trips, err := s.completedTrips(ctx, filter)
	if err != nil {
		return nil, err
	}
	labels, err := s.driverLabels(ctx)
	if err != nil {
		return nil, err
	}

	groups := aggregate(trips,
		func(t *domain.Trip) string { return t.DriverID },
		func(t *domain.Trip) *DriverPerformanceRow {
			return &DriverPerformanceRow{
				DriverID:  t.DriverID,
				Label:     labelFor(labels, t.DriverID),
				TripCount: 1,
				Revenue:   t.TotalAmount,
				Earnings:  t.DriverShare,
			}
		},
		func(g *DriverPerformanceRow, t *domain.Trip) {
			g.TripCount++
			g.Revenue += t.TotalAmount
			g.Earnings += t.DriverShare
		},
	)

	report := &DriverPerformanceReport{Rows: make([]DriverPerformanceRow, 0, len(groups))}
	for _, row := range groups {
		report.Rows = append(report.Rows, *row)
		report.TotalTrips += row.TripCount
		report.TotalEarnings += row.Earnings
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Earnings != report.Rows[j].Earnings {
			return report.Rows[i].Earnings > report.Rows[j].Earnings
		}
		return report.Rows[i].DriverID < report.Rows[j].DriverID
	})
	report.Rows = capRows(report.Rows, filter.Limit)
	return report, nil
}

// ExpenseAnalysisRow is one expense category's totals.
type ExpenseAnalysisRow struct {
	Type   domain.ExpenseType `json:"type"`
	Count  int                `json:"count"`
	Amount float64            `json:"amount"`
}

// ExpenseAnalysisReport breaks down expenses by category.
type ExpenseAnalysisReport struct {
	Rows        []ExpenseAnalysisRow `json:"rows"`
	TotalCount  int                  `json:"total_count"`
	TotalAmount float64              `json:"total_amount"`
}

// ExpenseAnalysis groups expenses by category, largest amount first.
func (s *ReportService) ExpenseAnalysis(ctx context.Context, filter ReportFilter) (*ExpenseAnalysisReport, error) {
	expenses, err := s.expenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := aggregate(expenses,
		func(e *domain.Expense) string { return string(e.Type) },
		func(e *domain.Expense) *ExpenseAnalysisRow {
			return &ExpenseAnalysisRow{Type: e.Type, Count: 1, Amount: e.Amount}
		},
		func(g *ExpenseAnalysisRow, e *domain.Expense) {
			g.Count++
			g.Amount += e.Amount
		},
	)

	report := &ExpenseAnalysisReport{Rows: make([]ExpenseAnalysisRow, 0, len(groups))}
	for _, row := range groups {
		report.Rows = append(report.Rows, *row)
		report.TotalCount += row.Count
		report.TotalAmount += row.Amount
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Amount != report.Rows[j].Amount {
			return report.Rows[i].Amount > report.Rows[j].Amount
		}
		return report.Rows[i].Type < report.Rows[j].Type
	})
	return report, nil
}

// ProfitLossRow is one calendar day of revenue against expenses.
type ProfitLossRow struct {
	Date           string  `json:"date"`
	Revenue        float64 `json:"revenue"`
	CompanyRevenue float64 `json:"company_revenue"`
	Expenses       float64 `json:"expenses"`
	NetProfit      float64 `json:"net_profit"`
}

// ProfitLossReport sets completed-trip revenue against expenses. NetProfit is
// company revenue minus expenses; the driver share already left the company.
type ProfitLossReport struct {
	Rows           []ProfitLossRow `json:"rows"`
	TotalRevenue   float64         `json:"total_revenue"`
	CompanyRevenue float64         `json:"company_revenue"`
	DriverPayouts  float64         `json:"driver_payouts"`
	TotalExpenses  float64         `json:"total_expenses"`
	NetProfit      float64         `json:"net_profit"`
	ProfitMargin   float64         `json:"profit_margin"`
}

// ProfitLoss combines completed-trip revenue with expenses, grouped by local
// calendar date. ProfitMargin is net profit over total revenue as a
// percentage, and 0 when there is no revenue.
func (s *ReportService) ProfitLoss(ctx context.Context, filter ReportFilter) (*ProfitLossReport, error) {
	trips, err := s.completedTrips(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := aggregate(trips,
		func(t *domain.Trip) string { return t.StartTime.Local().Format("2006-01-02") },
		func(t *domain.Trip) *ProfitLossRow {
			return &ProfitLossRow{
				Date:           t.StartTime.Local().Format("2006-01-02"),
				Revenue:        t.TotalAmount,
				CompanyRevenue: t.CompanyShare,
			}
		},
		func(g *ProfitLossRow, t *domain.Trip) {
			g.Revenue += t.TotalAmount
			g.CompanyRevenue += t.CompanyShare
		},
	)

	// Expenses merge into the same day rows; a day with expenses but no
	// trips still gets a row.
	for _, e := range expenses {
		day := e.ExpenseDate.Local().Format("2006-01-02")
		if g, ok := groups[day]; ok {
			g.Expenses += e.Amount
		} else {
			groups[day] = &ProfitLossRow{Date: day, Expenses: e.Amount}
		}
	}

	report := &ProfitLossReport{Rows: make([]ProfitLossRow, 0, len(groups))}
	for _, row := range groups {
		row.NetProfit = row.CompanyRevenue - row.Expenses
		report.Rows = append(report.Rows, *row)
		report.TotalRevenue += row.Revenue
		report.CompanyRevenue += row.CompanyRevenue
		report.TotalExpenses += row.Expenses
	}
	report.DriverPayouts = report.TotalRevenue - report.CompanyRevenue
	report.NetProfit = report.CompanyRevenue - report.TotalExpenses
	if report.TotalRevenue > 0 {
		report.ProfitMargin = report.NetProfit / report.TotalRevenue * 100
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Date < report.Rows[j].Date
	})
	return report, nil
}

func capRows[T any](rows []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// ValidReportType reports whether t is a known report kind.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeRevenue, ReportTypeVehiclePerformance, ReportTypeDriverPerformance,
		ReportTypeExpenseAnalysis, ReportTypeProfitLoss:
		return true
	}
	return false
}
