package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
	"github.com/invoicemonk/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestActorID(t *testing.T) {
	t.Run("parses user ID from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		userID := uuid.New()
		c.Set(middleware.UserIDContextKey, userID.String())

		got, err := actorID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("fails when context empty", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := actorID(c)
		assert.Error(t, err)
	})

	t.Run("fails on malformed ID", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set(middleware.UserIDContextKey, "not-a-uuid")

		_, err := actorID(c)
		assert.Error(t, err)
	})
}

func TestBusinessID(t *testing.T) {
	t.Run("parses business ID from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		bizID := uuid.New()
		c.Set(middleware.BusinessIDContextKey, bizID.String())

		got, err := businessID(c)
		require.NoError(t, err)
		assert.Equal(t, bizID, got)
	})

	t.Run("fails when scope middleware did not run", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := businessID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 11, 2, 5)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found"),
			expectedCode: http.StatusNotFound,
			expectedErr:  "INVOICE_NOT_FOUND",
		},
		{
			name:         "tier gate",
			err:          shared.NewDomainError("UPGRADE_REQUIRED", "Monthly invoice limit reached"),
			expectedCode: http.StatusForbidden,
			expectedErr:  "UPGRADE_REQUIRED",
		},
		{
			name:         "invalid state",
			err:          shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "INVALID_STATE",
		},
		{
			name:         "unknown error hides detail",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}
