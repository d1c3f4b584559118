package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appledger "github.com/invoicemonk/backend/internal/application/ledger"
)

// AccountHandler serves currency account endpoints
type AccountHandler struct {
	BaseHandler
	accountService *appledger.CurrencyAccountService
}

func NewAccountHandler(accountService *appledger.CurrencyAccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type createAccountRequest struct {
	Name          string          `json:"name" binding:"required"`
	Currency      string          `json:"currency" binding:"required,currency"`
	RateToPrimary decimal.Decimal `json:"rate_to_primary" binding:"required"`
}

type updateRateRequest struct {
	RateToPrimary decimal.Decimal `json:"rate_to_primary" binding:"required"`
}

type renameAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /businesses/:businessId/accounts
func (h *AccountHandler) Create(c *gin.Context) {
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

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), appledger.CreateAccountInput{
		BusinessID:    bizID,
		ActorID:       userID,
		Name:          req.Name,
		Currency:      req.Currency,
		RateToPrimary: req.RateToPrimary,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List handles GET /businesses/:businessId/accounts
func (h *AccountHandler) List(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	accounts, err := h.accountService.List(c.Request.Context(), bizID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// Get handles GET /businesses/:businessId/accounts/:accountId
func (h *AccountHandler) Get(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := pathUUID(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), bizID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// UpdateRate handles PUT /businesses/:businessId/accounts/:accountId/rate
func (h *AccountHandler) UpdateRate(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := pathUUID(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req updateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.UpdateRate(c.Request.Context(), bizID, accountID, req.RateToPrimary)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Rename handles PUT /businesses/:businessId/accounts/:accountId/name
func (h *AccountHandler) Rename(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := pathUUID(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req renameAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Rename(c.Request.Context(), bizID, accountID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Archive handles POST /businesses/:businessId/accounts/:accountId/archive
func (h *AccountHandler) Archive(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := pathUUID(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.Archive(c.Request.Context(), bizID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}
