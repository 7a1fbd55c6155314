package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverRequest is the HTTP request body for registering a driver.
type CreateDriverRequest struct {
	UserID        string `json:"user_id,omitempty"`
	LicenseNumber string `json:"license_number"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Address       string `json:"address,omitempty"`
}

// UpdateDriverRequest is the HTTP request body for updating a driver. Absent
// fields are left unchanged.
type UpdateDriverRequest struct {
	LicenseNumber *string `json:"license_number,omitempty"`
	LicenseExpiry *string `json:"license_expiry,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id,omitempty"`
	LicenseNumber string  `json:"license_number"`
	LicenseExpiry string  `json:"license_expiry,omitempty"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Address       string  `json:"address,omitempty"`
	IsActive      bool    `json:"is_active"`
	TotalTrips    int     `json:"total_trips"`
	TotalEarnings float64 `json:"total_earnings"`
	CreatedAt     string  `json:"created_at"`
}

func driverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		LicenseNumber: d.LicenseNumber,
		LicenseExpiry: formatTime(d.LicenseExpiry),
		PhoneNumber:   d.PhoneNumber,
		Address:       d.Address,
		IsActive:      d.IsActive,
		TotalTrips:    d.TotalTrips,
		TotalEarnings: d.TotalEarnings,
		CreatedAt:     formatTime(d.CreatedAt),
	}
}

// CreateDriver handles POST /v1/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	licenseExpiry, err := parseTime(req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid license_expiry"})
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: licenseExpiry,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driverResponse(driver))
}

// GetDriver handles GET /v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driverResponse(driver))
}

// ListDrivers handles GET /v1/drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, driverResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateDriver handles PATCH /v1/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateDriverRequest{
		DriverID:      c.Param("id"),
		LicenseNumber: req.LicenseNumber,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		IsActive:      req.IsActive,
	}

	if req.LicenseExpiry != nil {
		t, err := parseTime(*req.LicenseExpiry)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid license_expiry"})
			return
		}
		update.LicenseExpiry = &t
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driverResponse(driver))
}

// DeleteDriver handles DELETE /v1/drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.driverService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
