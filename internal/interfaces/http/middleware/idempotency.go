package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoicemonk/backend/internal/infrastructure/cache"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

const idempotencyKeyHeader = "Idempotency-Key"

// Idempotency guards mutating endpoints against client retries. When
// the caller supplies an Idempotency-Key header, a repeat of the same
// key within the TTL is rejected with 409 instead of double-applying
// the mutation. Requests without the header pass through unchanged.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope the key to the business so different tenants cannot
		// collide on client-generated keys
		scoped := c.GetString(BusinessIDContextKey) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		fresh, err := store.Reserve(c.Request.Context(), scoped, ttl)
		if err != nil {
			// fail open on store errors
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID("DUPLICATE_REQUEST",
					"This request was already processed", c.GetString("request_id")))
			return
		}
		c.Next()
	}
}
