package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/repository"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest is the HTTP request body for recording an expense.
type CreateExpenseRequest struct {
	VehicleID   string  `json:"vehicle_id"`
	Type        string  `json:"type"` // fuel, tolls, repairs, emi, insurance, maintenance, other
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	ExpenseDate string  `json:"expense_date,omitempty"`
}

// UpdateExpenseRequest is the HTTP request body for updating an expense.
// Absent fields are left unchanged.
type UpdateExpenseRequest struct {
	Type        *string  `json:"type,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	ExpenseDate *string  `json:"expense_date,omitempty"`
}

// ExpenseResponse is the HTTP representation of an expense.
type ExpenseResponse struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	ExpenseDate string  `json:"expense_date"`
	CreatedAt   string  `json:"created_at"`
}

func expenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: formatTime(e.ExpenseDate),
		CreatedAt:   formatTime(e.CreatedAt),
	}
}

// CreateExpense handles POST /v1/expenses
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	expenseDate, err := parseTime(req.ExpenseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expense_date"})
		return
	}

	var createdBy string
	if session := middleware.SessionFromContext(c); session != nil {
		createdBy = session.UserID
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), service.CreateExpenseRequest{
		VehicleID:   req.VehicleID,
		Type:        domain.ExpenseType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: expenseDate,
		CreatedBy:   createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expenseResponse(expense))
}

// GetExpense handles GET /v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseResponse(expense))
}

// ListExpenses handles GET /v1/expenses
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
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

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), repository.ExpenseFilter{
		From:      from,
		To:        to,
		VehicleID: c.Query("vehicle_id"),
		Type:      domain.ExpenseType(c.Query("type")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateExpense handles PATCH /v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateExpenseRequest{
		ExpenseID:   c.Param("id"),
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Type != nil {
		expenseType := domain.ExpenseType(*req.Type)
		update.Type = &expenseType
	}
	if req.ExpenseDate != nil {
		t, err := parseTime(*req.ExpenseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expense_date"})
			return
		}
		update.ExpenseDate = &t
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseResponse(expense))
}

// DeleteExpense handles DELETE /v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
