package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/invoicemonk/backend/internal/infrastructure/auth"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

const (
	// ClaimsContextKey is the gin context key holding validated claims
	ClaimsContextKey = "jwt_claims"
	// UserIDContextKey is the gin context key holding the user ID
	UserIDContextKey = "user_id"

	bearerPrefix = "Bearer "
)

// JWTAuth validates the Authorization bearer token, rejects revoked
// tokens and stores the claims on the context
func JWTAuth(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithCode(c, "TOKEN_EXPIRED", "Access token has expired")
				return
			}
			abortUnauthorized(c, "Invalid access token")
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err == nil && !revoked {
				revoked, err = blacklist.IsRevokedForUser(c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
			}
			if err != nil {
				// Fail closed: an unreachable blacklist must not let
				// revoked tokens through
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					dto.NewErrorResponse(dto.ErrCodeInternal, "Authorization service unavailable"))
				return
			}
			if revoked {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithCode(c, dto.ErrCodeUnauthorized, message)
}

func abortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, c.GetString("request_id")))
}

// GetClaims retrieves the validated claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsContextKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
