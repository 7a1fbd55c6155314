package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/service"
)

// DutyHandler handles HTTP requests for duty shifts.
type DutyHandler struct {
	dutyService *service.DutyService
}

// NewDutyHandler creates a new DutyHandler.
func NewDutyHandler(dutyService *service.DutyService) *DutyHandler {
	return &DutyHandler{dutyService: dutyService}
}

// DutyLogResponse is the HTTP representation of a duty log.
type DutyLogResponse struct {
	ID        string `json:"id"`
	DriverID  string `json:"driver_id"`
	VehicleID string `json:"vehicle_id"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

func dutyLogResponse(d *domain.DutyLog) DutyLogResponse {
	return DutyLogResponse{
		ID:        d.ID,
		DriverID:  d.DriverID,
		VehicleID: d.VehicleID,
		Status:    string(d.Status),
		StartTime: formatTime(d.StartTime),
		EndTime:   formatTime(d.EndTime),
	}
}

// dutyDriverID resolves which driver a duty request targets. Driver accounts
// always act on themselves; managers pass driver_id explicitly.
func dutyDriverID(c *gin.Context) string {
	if session := middleware.SessionFromContext(c); session != nil && session.Role == string(domain.UserRoleDriver) {
		return session.DriverID
	}
	return c.Query("driver_id")
}

// StartDuty handles POST /v1/duty/start
func (h *DutyHandler) StartDuty(c *gin.Context) {
	dutyLog, err := h.dutyService.StartDuty(c.Request.Context(), dutyDriverID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dutyLogResponse(dutyLog))
}

// EndDuty handles POST /v1/duty/end
func (h *DutyHandler) EndDuty(c *gin.Context) {
	dutyLog, err := h.dutyService.EndDuty(c.Request.Context(), dutyDriverID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dutyLogResponse(dutyLog))
}

// DutyHistory handles GET /v1/duty/history
func (h *DutyHandler) DutyHistory(c *gin.Context) {
	logs, err := h.dutyService.DutyHistory(c.Request.Context(), dutyDriverID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]DutyLogResponse, 0, len(logs))
	for _, d := range logs {
		out = append(out, dutyLogResponse(d))
	}
	c.JSON(http.StatusOK, out)
}
