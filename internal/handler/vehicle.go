package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicleRequest is the HTTP request body for registering a vehicle.
type CreateVehicleRequest struct {
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year,omitempty"`
	Color              string `json:"color,omitempty"`
	Odometer           int    `json:"odometer,omitempty"`
	InsuranceExpiry    string `json:"insurance_expiry,omitempty"`
	FitnessExpiry      string `json:"fitness_expiry,omitempty"`
	PermitExpiry       string `json:"permit_expiry,omitempty"`
	LastServiceDate    string `json:"last_service_date,omitempty"`
	NextServiceDate    string `json:"next_service_date,omitempty"`
}

// UpdateVehicleRequest is the HTTP request body for updating a vehicle.
// Absent fields are left unchanged.
type UpdateVehicleRequest struct {
	RegistrationNumber *string `json:"registration_number,omitempty"`
	Make               *string `json:"make,omitempty"`
	Model              *string `json:"model,omitempty"`
	Year               *int    `json:"year,omitempty"`
	Color              *string `json:"color,omitempty"`
	Status             *string `json:"status,omitempty"`
	Odometer           *int    `json:"odometer,omitempty"`
	InsuranceExpiry    *string `json:"insurance_expiry,omitempty"`
	FitnessExpiry      *string `json:"fitness_expiry,omitempty"`
	PermitExpiry       *string `json:"permit_expiry,omitempty"`
	LastServiceDate    *string `json:"last_service_date,omitempty"`
	NextServiceDate    *string `json:"next_service_date,omitempty"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year,omitempty"`
	Color              string `json:"color,omitempty"`
	Status             string `json:"status"`
	Odometer           int    `json:"odometer"`
	InsuranceExpiry    string `json:"insurance_expiry,omitempty"`
	FitnessExpiry      string `json:"fitness_expiry,omitempty"`
	PermitExpiry       string `json:"permit_expiry,omitempty"`
	LastServiceDate    string `json:"last_service_date,omitempty"`
	NextServiceDate    string `json:"next_service_date,omitempty"`
	CreatedAt          string `json:"created_at"`
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		RegistrationNumber: v.RegistrationNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Color:              v.Color,
		Status:             string(v.Status),
		Odometer:           v.Odometer,
		InsuranceExpiry:    formatTime(v.InsuranceExpiry),
		FitnessExpiry:      formatTime(v.FitnessExpiry),
		PermitExpiry:       formatTime(v.PermitExpiry),
		LastServiceDate:    formatTime(v.LastServiceDate),
		NextServiceDate:    formatTime(v.NextServiceDate),
		CreatedAt:          formatTime(v.CreatedAt),
	}
}

// CreateVehicle handles POST /v1/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	dates, err := parseTimes(req.InsuranceExpiry, req.FitnessExpiry, req.PermitExpiry, req.LastServiceDate, req.NextServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), service.CreateVehicleRequest{
		RegistrationNumber: req.RegistrationNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Odometer:           req.Odometer,
		InsuranceExpiry:    dates[0],
		FitnessExpiry:      dates[1],
		PermitExpiry:       dates[2],
		LastServiceDate:    dates[3],
		NextServiceDate:    dates[4],
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicleResponse(vehicle))
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicleResponse(vehicle))
}

// ListVehicles handles GET /v1/vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleResponse(v))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateVehicle handles PATCH /v1/vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateVehicleRequest{
		VehicleID:          c.Param("id"),
		RegistrationNumber: req.RegistrationNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Odometer:           req.Odometer,
	}

	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		update.Status = &status
	}

	for _, field := range []struct {
		raw  *string
		dest **time.Time
	}{
		{req.InsuranceExpiry, &update.InsuranceExpiry},
		{req.FitnessExpiry, &update.FitnessExpiry},
		{req.PermitExpiry, &update.PermitExpiry},
		{req.LastServiceDate, &update.LastServiceDate},
		{req.NextServiceDate, &update.NextServiceDate},
	} {
		if field.raw == nil {
			continue
		}
		t, err := parseTime(*field.raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
			return
		}
		*field.dest = &t
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicleResponse(vehicle))
}

// DeleteVehicle handles DELETE /v1/vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// AssignmentResponse is the HTTP representation of a vehicle assignment.
type AssignmentResponse struct {
	ID           string `json:"id"`
	VehicleID    string `json:"vehicle_id"`
	DriverID     string `json:"driver_id"`
	AssignedDate string `json:"assigned_date"`
	IsActive     bool   `json:"is_active"`
}

// AssignDriver handles POST /v1/vehicles/:id/assign
func (h *VehicleHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	assignment, err := h.vehicleService.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AssignmentResponse{
		ID:           assignment.ID,
		VehicleID:    assignment.VehicleID,
		DriverID:     assignment.DriverID,
		AssignedDate: formatTime(assignment.AssignedDate),
		IsActive:     assignment.IsActive,
	})
}

// ListAssignments handles GET /v1/vehicles/assignments
func (h *VehicleHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.vehicleService.ActiveAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, AssignmentResponse{
			ID:           a.ID,
			VehicleID:    a.VehicleID,
			DriverID:     a.DriverID,
			AssignedDate: formatTime(a.AssignedDate),
			IsActive:     a.IsActive,
		})
	}
	c.JSON(http.StatusOK, out)
}

// parseTimes parses a batch of optional timestamps.
func parseTimes(values ...string) ([]time.Time, error) {
	out := make([]time.Time, len(values))
	for i, v := range values {
		t, err := parseTime(v)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
