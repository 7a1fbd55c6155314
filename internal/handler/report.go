package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/service"
)

// ReportHandler handles HTTP requests for reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportResponse is the HTTP envelope shared by all report kinds. ChartData
// carries the rows shaped for plotting, TableData the same rows for tabular
// display, Summary the report-wide totals.
type ReportResponse struct {
	Type      string `json:"type"`
	ChartData any    `json:"chart_data"`
	TableData any    `json:"table_data"`
	Summary   any    `json:"summary"`
}

// chartPoint is one labeled value in chart data.
type chartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// GetReport handles GET /v1/reports
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportType := service.ReportType(c.Query("type"))
	if !service.ValidReportType(reportType) {
		respondError(c, service.ErrInvalidReportType)
		return
	}

	from, err := parseTime(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		return
	}
	to, err := parseTime(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
	}

	filter := service.ReportFilter{
		From:      from,
		To:        to,
		VehicleID: c.Query("vehicle_id"),
		DriverID:  c.Query("driver_id"),
		Limit:     limit,
	}

	ctx := c.Request.Context()
	var resp ReportResponse
	resp.Type = string(reportType)

	switch reportType {
	case service.ReportTypeRevenue:
		report, err := h.reportService.Revenue(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		chart := make([]chartPoint, 0, len(report.Rows))
		for _, row := range report.Rows {
			chart = append(chart, chartPoint{Label: row.Date, Value: row.TotalRevenue})
		}
		resp.ChartData = chart
		resp.TableData = report.Rows
		resp.Summary = gin.H{
			"total_trips":   report.TotalTrips,
			"total_revenue": report.TotalRevenue,
			"driver_share":  report.DriverShare,
			"company_share": report.CompanyShare,
		}

	case service.ReportTypeVehiclePerformance:
		report, err := h.reportService.VehiclePerformance(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		chart := make([]chartPoint, 0, len(report.Rows))
		for _, row := range report.Rows {
			chart = append(chart, chartPoint{Label: row.Label, Value: row.Revenue})
		}
		resp.ChartData = chart
		resp.TableData = report.Rows
		resp.Summary = gin.H{
			"total_trips":   report.TotalTrips,
			"total_revenue": report.TotalRevenue,
		}

	case service.ReportTypeDriverPerformance:
		report, err := h.reportService.DriverPerformance(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		chart := make([]chartPoint, 0, len(report.Rows))
		for _, row := range report.Rows {
			chart = append(chart, chartPoint{Label: row.Label, Value: row.Earnings})
		}
		resp.ChartData = chart
		resp.TableData = report.Rows
		resp.Summary = gin.H{
			"total_trips":    report.TotalTrips,
			"total_earnings": report.TotalEarnings,
		}

	case service.ReportTypeExpenseAnalysis:
		report, err := h.reportService.ExpenseAnalysis(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		chart := make([]chartPoint, 0, len(report.Rows))
		for _, row := range report.Rows {
			chart = append(chart, chartPoint{Label: string(row.Type), Value: row.Amount})
		}
		resp.ChartData = chart
		resp.TableData = report.Rows
		resp.Summary = gin.H{
			"total_count":  report.TotalCount,
			"total_amount": report.TotalAmount,
		}

	case service.ReportTypeProfitLoss:
		report, err := h.reportService.ProfitLoss(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		chart := make([]chartPoint, 0, len(report.Rows))
		for _, row := range report.Rows {
			chart = append(chart, chartPoint{Label: row.Date, Value: row.NetProfit})
		}
		resp.ChartData = chart
		resp.TableData = report.Rows
		resp.Summary = gin.H{
			"total_revenue":   report.TotalRevenue,
			"company_revenue": report.CompanyRevenue,
			"driver_payouts":  report.DriverPayouts,
			"total_expenses":  report.TotalExpenses,
			"net_profit":      report.NetProfit,
			"profit_margin":   report.ProfitMargin,
		}
	}

	c.JSON(http.StatusOK, resp)
}
