package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		role    Role
		isValid bool
	}{
		{RoleOwner, true},
		{RoleAdmin, true},
		{RoleMember, true},
		{RoleAuditor, true},
		{Role("superuser"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.role.IsValid())
		})
	}
}

func TestRole_Permissions(t *testing.T) {
	assert.True(t, RoleOwner.HasPermission(PermissionManageSubscription))
	assert.True(t, RoleAdmin.HasPermission(PermissionManageTeam))
	assert.False(t, RoleAdmin.HasPermission(PermissionManageSubscription))
	assert.True(t, RoleMember.HasPermission(PermissionManageInvoices))
	assert.False(t, RoleMember.HasPermission(PermissionManageTeam))
	assert.False(t, RoleMember.HasPermission(PermissionExportData))

	// Auditors are read-only but may run reports and exports
	assert.True(t, RoleAuditor.HasPermission(PermissionViewRecords))
	assert.True(t, RoleAuditor.HasPermission(PermissionExportData))
	assert.False(t, RoleAuditor.HasPermission(PermissionManageInvoices))
	assert.False(t, RoleAuditor.HasPermission(PermissionRecordPayments))
}

func TestNewMembership(t *testing.T) {
	businessID := uuid.New()
	userID := uuid.New()

	m, err := NewMembership(businessID, userID, RoleMember)
	require.NoError(t, err)
	assert.Equal(t, businessID, m.BusinessID)
	assert.Equal(t, userID, m.UserID)
	assert.Len(t, m.GetDomainEvents(), 1)

	_, err = NewMembership(businessID, uuid.Nil, RoleMember)
	assert.Error(t, err)

	_, err = NewMembership(businessID, userID, Role("bogus"))
	assert.Error(t, err)
}

func TestMembership_ChangeRole(t *testing.T) {
	m, err := NewMembership(uuid.New(), uuid.New(), RoleMember)
	require.NoError(t, err)

	require.NoError(t, m.ChangeRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, m.Role)

	// Ownership cannot be granted via role change
	assert.Error(t, m.ChangeRole(RoleOwner))

	owner, err := NewMembership(uuid.New(), uuid.New(), RoleOwner)
	require.NoError(t, err)
	assert.Error(t, owner.ChangeRole(RoleAdmin))
	assert.False(t, owner.CanBeRemoved())
	assert.True(t, m.CanBeRemoved())
}
