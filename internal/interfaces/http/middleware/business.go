package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemonk/backend/internal/application/identity"
	domainidentity "github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

const (
	// BusinessIDContextKey is the gin context key for the acting business
	BusinessIDContextKey = "business_id"
	// RoleContextKey is the gin context key for the caller's role in
	// the acting business
	RoleContextKey = "business_role"
)

// BusinessScope resolves the business named in the URL, verifies the
// authenticated user is a member, and stores the business ID and role.
// Every tenant-scoped route sits behind this: data of one business is
// never reachable through another's URL.
func BusinessScope(memberships *identity.MembershipService) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, err := uuid.Parse(c.Param("businessId"))
		if err != nil {
			abortWithCode(c, dto.ErrCodeBadRequest, "Invalid business ID")
			return
		}

		userID, err := uuid.Parse(c.GetString(UserIDContextKey))
		if err != nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		role, err := memberships.RoleFor(c.Request.Context(), businessID, userID)
		if err != nil {
			// Membership absence reads as the business not existing
			if shared.IsNotFound(err) {
				abortWithCode(c, dto.ErrCodeNotFound, "Business not found")
				return
			}
			abortWithCode(c, dto.ErrCodeInternal, "Failed to resolve membership")
			return
		}

		c.Set(BusinessIDContextKey, businessID.String())
		c.Set(RoleContextKey, role)
		c.Next()
	}
}

// RequirePermission rejects callers whose role in the acting business
// does not grant the permission
func RequirePermission(permission domainidentity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" || !role.HasPermission(permission) {
			abortWithCode(c, dto.ErrCodeForbidden, "Your role does not allow this operation")
			return
		}
		c.Next()
	}
}

// GetBusinessID retrieves the acting business from the gin context
func GetBusinessID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(BusinessIDContextKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRole retrieves the caller's role in the acting business
func GetRole(c *gin.Context) domainidentity.Role {
	if v, ok := c.Get(RoleContextKey); ok {
		if role, ok := v.(domainidentity.Role); ok {
			return role
		}
	}
	return ""
}
