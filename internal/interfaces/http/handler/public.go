package handler

import (
	"github.com/gin-gonic/gin"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
)

// PublicHandler serves the unauthenticated verification endpoints.
// These are the only routes that expose invoice data without a token,
// keyed by the unguessable verification ID.
type PublicHandler struct {
	BaseHandler
	invoiceService *appinvoicing.InvoiceService
}

func NewPublicHandler(invoiceService *appinvoicing.InvoiceService) *PublicHandler {
	return &PublicHandler{invoiceService: invoiceService}
}

// Verify handles GET /verify/:verificationId. The content hash is
// recomputed from the stored invoice on every call so a tampered row
// reports hash_valid=false instead of echoing the stored digest.
func (h *PublicHandler) Verify(c *gin.Context) {
	verificationID := c.Param("verificationId")
	if verificationID == "" {
		h.BadRequest(c, "Verification ID is required")
		return
	}

	result, err := h.invoiceService.PublicVerify(c.Request.Context(), verificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkViewed handles POST /view/:verificationId. Recipients hit this
// from the invoice link; the first call moves a sent invoice to
// viewed, later calls are no-ops.
func (h *PublicHandler) MarkViewed(c *gin.Context) {
	verificationID := c.Param("verificationId")
	if verificationID == "" {
		h.BadRequest(c, "Verification ID is required")
		return
	}

	if err := h.invoiceService.MarkViewed(c.Request.Context(), verificationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Recorded"})
}
