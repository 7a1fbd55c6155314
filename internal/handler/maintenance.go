package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/service"
)

// MaintenanceHandler handles HTTP requests for maintenance logs.
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// CreateMaintenanceRequest is the HTTP request body for logging a service.
type CreateMaintenanceRequest struct {
	VehicleID       string  `json:"vehicle_id"`
	Type            string  `json:"type,omitempty"` // oil_change, tire_replacement, general_service
	Description     string  `json:"description,omitempty"`
	Cost            float64 `json:"cost,omitempty"`
	ServiceDate     string  `json:"service_date,omitempty"`
	NextServiceDate string  `json:"next_service_date,omitempty"`
	OdometerReading int     `json:"odometer_reading,omitempty"`
	ServiceCenter   string  `json:"service_center,omitempty"`
}

// MaintenanceResponse is the HTTP representation of a maintenance log.
type MaintenanceResponse struct {
	ID              string  `json:"id"`
	VehicleID       string  `json:"vehicle_id"`
	Type            string  `json:"type,omitempty"`
	Description     string  `json:"description,omitempty"`
	Cost            float64 `json:"cost"`
	ServiceDate     string  `json:"service_date"`
	NextServiceDate string  `json:"next_service_date,omitempty"`
	OdometerReading int     `json:"odometer_reading,omitempty"`
	ServiceCenter   string  `json:"service_center,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func maintenanceResponse(m *domain.MaintenanceLog) MaintenanceResponse {
	return MaintenanceResponse{
		ID:              m.ID,
		VehicleID:       m.VehicleID,
		Type:            m.Type,
		Description:     m.Description,
		Cost:            m.Cost,
		ServiceDate:     formatTime(m.ServiceDate),
		NextServiceDate: formatTime(m.NextServiceDate),
		OdometerReading: m.OdometerReading,
		ServiceCenter:   m.ServiceCenter,
		CreatedAt:       formatTime(m.CreatedAt),
	}
}

// CreateMaintenanceLog handles POST /v1/maintenance
func (h *MaintenanceHandler) CreateMaintenanceLog(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	serviceDate, err := parseTime(req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid service_date"})
		return
	}
	nextServiceDate, err := parseTime(req.NextServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid next_service_date"})
		return
	}

	var createdBy string
	if session := middleware.SessionFromContext(c); session != nil {
		createdBy = session.UserID
	}

	mlog, err := h.maintenanceService.CreateMaintenanceLog(c.Request.Context(), service.CreateMaintenanceRequest{
		VehicleID:       req.VehicleID,
		Type:            req.Type,
		Description:     req.Description,
		Cost:            req.Cost,
		ServiceDate:     serviceDate,
		NextServiceDate: nextServiceDate,
		OdometerReading: req.OdometerReading,
		ServiceCenter:   req.ServiceCenter,
		CreatedBy:       createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, maintenanceResponse(mlog))
}

// UpdateMaintenanceRequest is the HTTP request body for updating a maintenance
// log. Absent fields are left unchanged.
type UpdateMaintenanceRequest struct {
	Type            *string  `json:"type,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
	ServiceDate     *string  `json:"service_date,omitempty"`
	NextServiceDate *string  `json:"next_service_date,omitempty"`
	OdometerReading *int     `json:"odometer_reading,omitempty"`
	ServiceCenter   *string  `json:"service_center,omitempty"`
}

// UpdateMaintenanceLog handles PATCH /v1/maintenance/:id
func (h *MaintenanceHandler) UpdateMaintenanceLog(c *gin.Context) {
	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateMaintenanceRequest{
		LogID:           c.Param("id"),
		Type:            req.Type,
		Description:     req.Description,
		Cost:            req.Cost,
		OdometerReading: req.OdometerReading,
		ServiceCenter:   req.ServiceCenter,
	}

	if req.ServiceDate != nil {
		t, err := parseTime(*req.ServiceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid service_date"})
			return
		}
		update.ServiceDate = &t
	}
	if req.NextServiceDate != nil {
		t, err := parseTime(*req.NextServiceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid next_service_date"})
			return
		}
		update.NextServiceDate = &t
	}

	mlog, err := h.maintenanceService.UpdateMaintenanceLog(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenanceResponse(mlog))
}

// GetMaintenanceLog handles GET /v1/maintenance/:id
func (h *MaintenanceHandler) GetMaintenanceLog(c *gin.Context) {
	mlog, err := h.maintenanceService.GetMaintenanceLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenanceResponse(mlog))
}

// ListMaintenanceLogs handles GET /v1/maintenance
func (h *MaintenanceHandler) ListMaintenanceLogs(c *gin.Context) {
	logs, err := h.maintenanceService.ListMaintenanceLogs(c.Request.Context(), c.Query("vehicle_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]MaintenanceResponse, 0, len(logs))
	for _, m := range logs {
		out = append(out, maintenanceResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

// DeleteMaintenanceLog handles DELETE /v1/maintenance/:id
func (h *MaintenanceHandler) DeleteMaintenanceLog(c *gin.Context) {
	if err := h.maintenanceService.DeleteMaintenanceLog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
