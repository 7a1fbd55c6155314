package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	VehicleID     string  `json:"vehicle_id"`
	DriverID      string  `json:"driver_id"`
	StartTime     string  `json:"start_time,omitempty"`
	EndTime       string  `json:"end_time,omitempty"`
	StartLocation string  `json:"start_location,omitempty"`
	EndLocation   string  `json:"end_location,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	Distance      float64 `json:"distance,omitempty"`
	Duration      int     `json:"duration,omitempty"`
	Status        string  `json:"status,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// UpdateTripRequest is the HTTP request body for updating a trip. Absent
// fields are left unchanged.
type UpdateTripRequest struct {
	VehicleID     *string  `json:"vehicle_id,omitempty"`
	DriverID      *string  `json:"driver_id,omitempty"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
	StartLocation *string  `json:"start_location,omitempty"`
	EndLocation   *string  `json:"end_location,omitempty"`
	TotalAmount   *float64 `json:"total_amount,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
	Duration      *int     `json:"duration,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicle_id"`
	DriverID      string  `json:"driver_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time,omitempty"`
	StartLocation string  `json:"start_location,omitempty"`
	EndLocation   string  `json:"end_location,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	DriverShare   float64 `json:"driver_share"`
	CompanyShare  float64 `json:"company_share"`
	Distance      float64 `json:"distance,omitempty"`
	Duration      int     `json:"duration,omitempty"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func tripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		VehicleID:     t.VehicleID,
		DriverID:      t.DriverID,
		StartTime:     formatTime(t.StartTime),
		EndTime:       formatTime(t.EndTime),
		StartLocation: t.StartLocation,
		EndLocation:   t.EndLocation,
		TotalAmount:   t.TotalAmount,
		DriverShare:   t.DriverShare,
		CompanyShare:  t.CompanyShare,
		Distance:      t.Distance,
		Duration:      t.Duration,
		Status:        string(t.Status),
		Notes:         t.Notes,
		CreatedAt:     formatTime(t.CreatedAt),
	}
}

func tripResponses(trips []*domain.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripResponse(t))
	}
	return out
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_time"})
		return
	}
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_time"})
		return
	}

	var createdBy string
	if session := middleware.SessionFromContext(c); session != nil {
		createdBy = session.UserID
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		StartTime:     startTime,
		EndTime:       endTime,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		TotalAmount:   req.TotalAmount,
		Distance:      req.Distance,
		Duration:      req.Duration,
		Status:        domain.TripStatus(req.Status),
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Driver accounts only see their own trips. Foreign trips answer 404 so
	// the id space leaks nothing.
	if session := middleware.SessionFromContext(c); session != nil &&
		session.Role == string(domain.UserRoleDriver) && trip.DriverID != session.DriverID {
		respondError(c, repository.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, tripResponse(trip))
}

// ListTrips handles GET /v1/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
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

	filter := repository.TripFilter{
		From:      from,
		To:        to,
		VehicleID: c.Query("vehicle_id"),
		DriverID:  c.Query("driver_id"),
		Status:    domain.TripStatus(c.Query("status")),
	}

	// Driver accounts only see their own trips.
	if session := middleware.SessionFromContext(c); session != nil && session.Role == string(domain.UserRoleDriver) {
		filter.DriverID = session.DriverID
	}

	trips, err := h.tripService.ListTrips(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripResponses(trips))
}

// UpdateTrip handles PATCH /v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateTripRequest{
		TripID:        c.Param("id"),
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		TotalAmount:   req.TotalAmount,
		Distance:      req.Distance,
		Duration:      req.Duration,
		Notes:         req.Notes,
	}

	if req.StartTime != nil {
		t, err := parseTime(*req.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_time"})
			return
		}
		update.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := parseTime(*req.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_time"})
			return
		}
		update.EndTime = &t
	}
	if req.Status != nil {
		status := domain.TripStatus(*req.Status)
		update.Status = &status
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripResponse(trip))
}

// DeleteTrip handles DELETE /v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
