package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// TopVehicleResponse is one row of the top-performing vehicles list.
type TopVehicleResponse struct {
	VehicleID          string  `json:"vehicle_id"`
	RegistrationNumber string  `json:"registration_number"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	TripCount          int     `json:"trip_count"`
	Revenue            float64 `json:"revenue"`
}

// GetMetrics handles GET /v1/dashboard/metrics
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboardService.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetTopVehicles handles GET /v1/dashboard/top-vehicles
func (h *DashboardHandler) GetTopVehicles(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
	}

	vehicles, err := h.dashboardService.TopVehicles(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]TopVehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, TopVehicleResponse{
			VehicleID:          v.VehicleID,
			RegistrationNumber: v.RegistrationNumber,
			Make:               v.Make,
			Model:              v.Model,
			TripCount:          v.TripCount,
			Revenue:            v.Revenue,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetRecentTrips handles GET /v1/dashboard/recent-trips
func (h *DashboardHandler) GetRecentTrips(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
	}

	trips, err := h.dashboardService.RecentTrips(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripResponses(trips))
}
