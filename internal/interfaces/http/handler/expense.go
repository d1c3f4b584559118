package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appexpense "github.com/invoicemonk/backend/internal/application/expense"
	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

// ExpenseHandler serves expense tracking endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appexpense.Service
}

func NewExpenseHandler(expenseService *appexpense.Service) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type recordExpenseRequest struct {
	CurrencyAccountID uuid.UUID       `json:"currency_account_id" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	IncurredAt        time.Time       `json:"incurred_at" binding:"required"`
}

type updateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
}

type cancelExpenseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type listExpensesRequest struct {
	dto.ListRequest
	Category  string `form:"category"`
	AccountID string `form:"account_id"`
	From      string `form:"from"`
	To        string `form:"to"`
}

func (r *listExpensesRequest) toFilter() (expense.Filter, error) {
	r.Normalize()
	filter := expense.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Category != "" {
		category := expense.Category(r.Category)
		if !category.IsValid() {
			return filter, fmt.Errorf("unknown category %q", r.Category)
		}
		filter.Category = &category
	}
	if r.AccountID != "" {
		id, err := uuid.Parse(r.AccountID)
		if err != nil {
			return filter, fmt.Errorf("invalid account_id")
		}
		filter.CurrencyAccountID = &id
	}
	if r.From != "" {
		t, err := time.Parse("2006-01-02", r.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		filter.FromDate = &t
	}
	if r.To != "" {
		t, err := time.Parse("2006-01-02", r.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		filter.ToDate = &t
	}
	return filter, nil
}

// Record handles POST /businesses/:businessId/expenses
func (h *ExpenseHandler) Record(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req recordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.expenseService.Record(c.Request.Context(), appexpense.RecordInput{
		BusinessID:        bizID,
		ActorID:           userID,
		CurrencyAccountID: req.CurrencyAccountID,
		Category:          expense.Category(req.Category),
		Amount:            req.Amount,
		Description:       req.Description,
		IncurredAt:        req.IncurredAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /businesses/:businessId/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req listExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.expenseService.List(c.Request.Context(), bizID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Expenses, result.Total, result.Page, result.PageSize)
}

// Get handles GET /businesses/:businessId/expenses/:expenseId
func (h *ExpenseHandler) Get(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	expenseID, err := pathUUID(c, "expenseId")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	result, err := h.expenseService.Get(c.Request.Context(), bizID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update handles PUT /businesses/:businessId/expenses/:expenseId
func (h *ExpenseHandler) Update(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	expenseID, err := pathUUID(c, "expenseId")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.expenseService.Update(c.Request.Context(), bizID, expenseID, appexpense.UpdateInput{
		Category:    expense.Category(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		IncurredAt:  req.IncurredAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel handles POST /businesses/:businessId/expenses/:expenseId/cancel
func (h *ExpenseHandler) Cancel(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	expenseID, err := pathUUID(c, "expenseId")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req cancelExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.expenseService.Cancel(c.Request.Context(), bizID, userID, expenseID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Import accepts a multipart CSV upload and records an expense per row.
// POST /businesses/:businessId/expenses/import
func (h *ExpenseHandler) Import(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := uuid.Parse(c.PostForm("currency_account_id"))
	if err != nil {
		h.BadRequest(c, "currency_account_id form field is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file upload named 'file' is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.expenseService.Import(c.Request.Context(), appexpense.ImportInput{
		BusinessID:        bizID,
		ActorID:           userID,
		CurrencyAccountID: accountID,
		File:              file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
