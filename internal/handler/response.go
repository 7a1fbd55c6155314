package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/revenue"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidPayoutID),
		errors.Is(err, service.ErrInvalidTripStatus),
		errors.Is(err, service.ErrInvalidVehicleStatus),
		errors.Is(err, service.ErrInvalidExpenseType),
		errors.Is(err, service.ErrInvalidExpenseAmount),
		errors.Is(err, service.ErrInvalidReportType),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, revenue.ErrInvalidAmount):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, service.ErrPayoutInProgress),
		errors.Is(err, service.ErrPayoutAlreadySettled),
		errors.Is(err, service.ErrDriverAlreadyOnDuty),
		errors.Is(err, service.ErrDriverNotOnDuty),
		errors.Is(err, service.ErrVehicleNotAvailable):
		return http.StatusConflict

	// Business rule errors
	case errors.Is(err, service.ErrNoCompletedTrips),
		errors.Is(err, service.ErrDriverNotActive):
		return http.StatusUnprocessableEntity

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// formatTime renders a timestamp for responses, empty when unset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// parseTime parses an RFC 3339 timestamp or a bare date. Returns the zero
// time for an empty input.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
