package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// AlertHandler handles HTTP requests for alerts.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// AlertResponse is the HTTP representation of an alert.
type AlertResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message,omitempty"`
	VehicleID  string `json:"vehicle_id,omitempty"`
	DriverID   string `json:"driver_id,omitempty"`
	IsRead     bool   `json:"is_read"`
	Priority   string `json:"priority"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func alertResponse(a *domain.Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		Type:       string(a.Type),
		Title:      a.Title,
		Message:    a.Message,
		VehicleID:  a.VehicleID,
		DriverID:   a.DriverID,
		IsRead:     a.IsRead,
		Priority:   string(a.Priority),
		ExpiryDate: formatTime(a.ExpiryDate),
		CreatedAt:  formatTime(a.CreatedAt),
	}
}

func alertResponses(alerts []*domain.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertResponse(a))
	}
	return out
}

// ListAlerts handles GET /v1/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alertResponses(alerts))
}

// ScanDocuments handles POST /v1/alerts/scan
func (h *AlertHandler) ScanDocuments(c *gin.Context) {
	created, err := h.alertService.ScanVehicleDocuments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"created": len(created),
		"alerts":  alertResponses(created),
	})
}

// MarkRead handles POST /v1/alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	if err := h.alertService.MarkAlertRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
