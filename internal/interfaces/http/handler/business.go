package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/invoicemonk/backend/internal/application/identity"
	domainidentity "github.com/invoicemonk/backend/internal/domain/identity"
)

// BusinessHandler serves business profile and team membership endpoints
type BusinessHandler struct {
	BaseHandler
	businessService   *appidentity.BusinessService
	membershipService *appidentity.MembershipService
}

func NewBusinessHandler(businessService *appidentity.BusinessService, membershipService *appidentity.MembershipService) *BusinessHandler {
	return &BusinessHandler{
		businessService:   businessService,
		membershipService: membershipService,
	}
}

type createBusinessRequest struct {
	Name            string `json:"name" binding:"required"`
	Jurisdiction    string `json:"jurisdiction" binding:"required"`
	PrimaryCurrency string `json:"primary_currency" binding:"required,currency"`
}

type updateBusinessRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logo_url"`
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Create handles POST /businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), appidentity.CreateBusinessInput{
		OwnerID:         userID,
		Name:            req.Name,
		Jurisdiction:    req.Jurisdiction,
		PrimaryCurrency: req.PrimaryCurrency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, business)
}

// List handles GET /businesses
func (h *BusinessHandler) List(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	businesses, err := h.businessService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, businesses)
}

// Get handles GET /businesses/:businessId
func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// Update handles PUT /businesses/:businessId
func (h *BusinessHandler) Update(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req updateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	business, err := h.businessService.UpdateProfile(c.Request.Context(), id, appidentity.UpdateBusinessInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// ListMembers handles GET /businesses/:businessId/members
func (h *BusinessHandler) ListMembers(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	members, err := h.membershipService.List(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// AddMember handles POST /businesses/:businessId/members
func (h *BusinessHandler) AddMember(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.membershipService.Add(c.Request.Context(), appidentity.AddMemberInput{
		BusinessID: id,
		ActorID:    userID,
		Email:      req.Email,
		Role:       domainidentity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, member)
}

// ChangeMemberRole handles PUT /businesses/:businessId/members/:memberId
func (h *BusinessHandler) ChangeMemberRole(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.membershipService.ChangeRole(c.Request.Context(), id, userID, memberID, domainidentity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, member)
}

// RemoveMember handles DELETE /businesses/:businessId/members/:memberId
func (h *BusinessHandler) RemoveMember(c *gin.Context) {
	id, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.membershipService.Remove(c.Request.Context(), id, userID, memberID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
