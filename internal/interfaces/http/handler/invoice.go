package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

// InvoiceHandler serves the invoice lifecycle endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appinvoicing.InvoiceService
}

func NewInvoiceHandler(invoiceService *appinvoicing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type draftRequest struct {
	CurrencyAccountID uuid.UUID                   `json:"currency_account_id" binding:"required"`
	Client            appinvoicing.ClientInput    `json:"client" binding:"required"`
	LineItems         []appinvoicing.LineItemInput `json:"line_items" binding:"required,min=1"`
	Notes             string                      `json:"notes"`
	DueDate           *time.Time                  `json:"due_date"`
}

type voidRequest struct {
	Reason string `json:"reason" binding:"required"`
}


type recordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
}

type listInvoicesRequest struct {
	dto.ListRequest
	Status    string `form:"status"`
	AccountID string `form:"account_id"`
	Client    string `form:"client"`
	From      string `form:"from"`
	To        string `form:"to"`
}

func (r *listInvoicesRequest) toFilter() (invoicing.InvoiceFilter, error) {
	r.Normalize()
	filter := invoicing.InvoiceFilter{
		ClientName: r.Client,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
	if r.Status != "" {
		status := invoicing.InvoiceStatus(r.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("unknown status %q", r.Status)
		}
		filter.Status = &status
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

// CreateDraft handles POST /businesses/:businessId/invoices
func (h *InvoiceHandler) CreateDraft(c *gin.Context) {
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

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateDraft(c.Request.Context(), appinvoicing.CreateDraftInput{
		BusinessID:        bizID,
		ActorID:           userID,
		CurrencyAccountID: req.CurrencyAccountID,
		Client:            req.Client,
		LineItems:         req.LineItems,
		Notes:             req.Notes,
		DueDate:           req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// List handles GET /businesses/:businessId/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req listInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), bizID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// Get handles GET /businesses/:businessId/invoices/:invoiceId
func (h *InvoiceHandler) Get(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), bizID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// UpdateDraft handles PUT /businesses/:businessId/invoices/:invoiceId
func (h *InvoiceHandler) UpdateDraft(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateDraft(c.Request.Context(), appinvoicing.UpdateDraftInput{
		BusinessID: bizID,
		InvoiceID:  invoiceID,
		Client:     req.Client,
		LineItems:  req.LineItems,
		Notes:      req.Notes,
		DueDate:    req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// DeleteDraft handles DELETE /businesses/:businessId/invoices/:invoiceId
func (h *InvoiceHandler) DeleteDraft(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteDraft(c.Request.Context(), bizID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Issue handles POST /businesses/:businessId/invoices/:invoiceId/issue
func (h *InvoiceHandler) Issue(c *gin.Context) {
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
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Issue(c.Request.Context(), bizID, invoiceID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Send handles POST /businesses/:businessId/invoices/:invoiceId/send
func (h *InvoiceHandler) Send(c *gin.Context) {
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
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), bizID, invoiceID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Void handles POST /businesses/:businessId/invoices/:invoiceId/void.
// The credit note for the full amount is issued in the same operation.
func (h *InvoiceHandler) Void(c *gin.Context) {
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
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req voidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.invoiceService.Void(c.Request.Context(), bizID, invoiceID, userID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetCreditNote handles GET /businesses/:businessId/credit-notes/:creditNoteId
func (h *InvoiceHandler) GetCreditNote(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	creditNoteID, err := pathUUID(c, "creditNoteId")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	creditNote, err := h.invoiceService.GetCreditNote(c.Request.Context(), bizID, creditNoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, creditNote)
}

// RecordPayment handles POST /businesses/:businessId/invoices/:invoiceId/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
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
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.invoiceService.RecordPayment(c.Request.Context(), appinvoicing.RecordPaymentInput{
		BusinessID: bizID,
		InvoiceID:  invoiceID,
		ActorID:    userID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		PaidAt:     req.PaidAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments handles GET /businesses/:businessId/invoices/:invoiceId/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), bizID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// DownloadPDF handles GET /businesses/:businessId/invoices/:invoiceId/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdf, filename, err := h.invoiceService.RenderPDF(c.Request.Context(), bizID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
