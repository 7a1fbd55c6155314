package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/service"
)

// PayoutHandler handles HTTP requests for driver payouts.
type PayoutHandler struct {
	payoutService *service.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutService *service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// GeneratePayoutRequest is the HTTP request body for generating a payout.
type GeneratePayoutRequest struct {
	DriverID      string `json:"driver_id"`
	FromDate      string `json:"from_date"`
	ToDate        string `json:"to_date"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// MarkPaidRequest is the HTTP request body for settling a payout.
type MarkPaidRequest struct {
	PaymentReference string `json:"payment_reference,omitempty"`
}

// PayoutResponse is the HTTP representation of a payout.
type PayoutResponse struct {
	ID               string  `json:"id"`
	DriverID         string  `json:"driver_id"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	PayoutDate       string  `json:"payout_date,omitempty"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	FromDate         string  `json:"from_date"`
	ToDate           string  `json:"to_date"`
	TotalTrips       int     `json:"total_trips"`
	TotalRevenue     float64 `json:"total_revenue"`
	CreatedAt        string  `json:"created_at"`
}

func payoutResponse(p *domain.Payout) PayoutResponse {
	return PayoutResponse{
		ID:               p.ID,
		DriverID:         p.DriverID,
		Amount:           p.Amount,
		Status:           string(p.Status),
		PayoutDate:       formatTime(p.PayoutDate),
		PaymentReference: p.PaymentReference,
		PaymentMethod:    p.PaymentMethod,
		FromDate:         formatTime(p.FromDate),
		ToDate:           formatTime(p.ToDate),
		TotalTrips:       p.TotalTrips,
		TotalRevenue:     p.TotalRevenue,
		CreatedAt:        formatTime(p.CreatedAt),
	}
}

// GeneratePayout handles POST /v1/payouts/generate
func (h *PayoutHandler) GeneratePayout(c *gin.Context) {
	var req GeneratePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fromDate, err := parseTime(req.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from_date"})
		return
	}
	toDate, err := parseTime(req.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to_date"})
		return
	}

	var createdBy string
	if session := middleware.SessionFromContext(c); session != nil {
		createdBy = session.UserID
	}

	payout, err := h.payoutService.GeneratePayout(c.Request.Context(), service.GeneratePayoutRequest{
		DriverID:      req.DriverID,
		FromDate:      fromDate,
		ToDate:        toDate,
		PaymentMethod: req.PaymentMethod,
		CreatedBy:     createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payoutResponse(payout))
}

// GetPayout handles GET /v1/payouts/:id
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	payout, err := h.payoutService.GetPayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Driver accounts only see their own payouts. Foreign payouts answer 404
	// so the id space leaks nothing.
	if session := middleware.SessionFromContext(c); session != nil &&
		session.Role == string(domain.UserRoleDriver) && payout.DriverID != session.DriverID {
		respondError(c, repository.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, payoutResponse(payout))
}

// ListPayouts handles GET /v1/payouts
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	driverID := c.Query("driver_id")

	// Driver accounts only see their own payouts.
	if session := middleware.SessionFromContext(c); session != nil && session.Role == string(domain.UserRoleDriver) {
		driverID = session.DriverID
	}

	payouts, err := h.payoutService.ListPayouts(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, payoutResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// ListPending handles GET /v1/payouts/pending
func (h *PayoutHandler) ListPending(c *gin.Context) {
	payouts, err := h.payoutService.PendingPayouts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, payoutResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// MarkPaid handles POST /v1/payouts/:id/paid
func (h *PayoutHandler) MarkPaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payout, err := h.payoutService.MarkPaid(c.Request.Context(), c.Param("id"), req.PaymentReference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payoutResponse(payout))
}

// MarkFailed handles POST /v1/payouts/:id/failed
func (h *PayoutHandler) MarkFailed(c *gin.Context) {
	payout, err := h.payoutService.MarkFailed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payoutResponse(payout))
}
