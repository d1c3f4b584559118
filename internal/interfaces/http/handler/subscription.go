package handler

import (
	"github.com/gin-gonic/gin"

	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/interfaces/http/middleware"
)

// SubscriptionHandler serves subscription, usage and API token
// endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *appbilling.SubscriptionService
	apiTokenService     *appbilling.APITokenService
}

func NewSubscriptionHandler(subscriptionService *appbilling.SubscriptionService, apiTokenService *appbilling.APITokenService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		apiTokenService:     apiTokenService,
	}
}

type changeTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// Get handles GET /businesses/:businessId/subscription
func (h *SubscriptionHandler) Get(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	subscription, err := h.subscriptionService.Get(c.Request.Context(), bizID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subscription)
}

// ChangeTier handles PUT /businesses/:businessId/subscription
func (h *SubscriptionHandler) ChangeTier(c *gin.Context) {
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

	var req changeTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	subscription, err := h.subscriptionService.ChangeTier(c.Request.Context(), bizID, userID, billing.Tier(req.Tier))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subscription)
}

// Cancel handles POST /businesses/:businessId/subscription/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
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

	subscription, err := h.subscriptionService.Cancel(c.Request.Context(), bizID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subscription)
}

// Usage handles GET /businesses/:businessId/subscription/usage
func (h *SubscriptionHandler) Usage(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	usage, err := h.subscriptionService.Usage(c.Request.Context(), bizID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usage)
}

// IssueAPIToken handles POST /businesses/:businessId/subscription/api-token.
// Tiers without the api_access entitlement are refused with
// upgrade_required.
func (h *SubscriptionHandler) IssueAPIToken(c *gin.Context) {
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

	var email string
	if claims := middleware.GetClaims(c); claims != nil {
		email = claims.Email
	}

	token, err := h.apiTokenService.Issue(c.Request.Context(), bizID, userID, email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, token)
}
