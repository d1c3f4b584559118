package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainidentity "github.com/invoicemonk/backend/internal/domain/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name         string
		role         domainidentity.Role
		permission   domainidentity.Permission
		expectedCode int
	}{
		{
			name:         "owner can manage team",
			role:         domainidentity.RoleOwner,
			permission:   domainidentity.PermissionManageTeam,
			expectedCode: http.StatusOK,
		},
		{
			name:         "member cannot export data",
			role:         domainidentity.RoleMember,
			permission:   domainidentity.PermissionExportData,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "auditor can run reports",
			role:         domainidentity.RoleAuditor,
			permission:   domainidentity.PermissionRunReports,
			expectedCode: http.StatusOK,
		},
		{
			name:         "auditor cannot manage invoices",
			role:         domainidentity.RoleAuditor,
			permission:   domainidentity.PermissionManageInvoices,
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Set(RoleContextKey, tt.role)

			handlerCalled := false
			RequirePermission(tt.permission)(c)
			if !c.IsAborted() {
				handlerCalled = true
				c.Status(http.StatusOK)
			}

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedCode == http.StatusOK, handlerCalled)
		})
	}
}

func TestGetBusinessID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := GetBusinessID(c)
	assert.False(t, ok)

	bizID := uuid.New()
	c.Set(BusinessIDContextKey, bizID.String())

	got, ok := GetBusinessID(c)
	require.True(t, ok)
	assert.Equal(t, bizID, got)
}
