package identity

import (
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a user's role within a business
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleMember  Role = "member"
	RoleAuditor Role = "auditor" // Read-only compliance access
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleAuditor:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Permission represents a named capability within a business
type Permission string

const (
	PermissionViewRecords        Permission = "records:view"
	PermissionManageInvoices     Permission = "invoices:manage"
	PermissionManageExpenses     Permission = "expenses:manage"
	PermissionRecordPayments     Permission = "payments:record"
	PermissionRunReports         Permission = "reports:run"
	PermissionExportData         Permission = "data:export"
	PermissionManageAccounts     Permission = "accounts:manage"
	PermissionManageTeam         Permission = "team:manage"
	PermissionManageSubscription Permission = "subscription:manage"
	PermissionManageBusiness     Permission = "business:manage"
)

// rolePermissions maps each role to its capabilities. Auditors are
// strictly read-only; members transact but cannot administer.
var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionViewRecords, PermissionManageInvoices, PermissionManageExpenses,
		PermissionRecordPayments, PermissionRunReports, PermissionExportData,
		PermissionManageAccounts, PermissionManageTeam, PermissionManageSubscription,
		PermissionManageBusiness,
	},
	RoleAdmin: {
		PermissionViewRecords, PermissionManageInvoices, PermissionManageExpenses,
		PermissionRecordPayments, PermissionRunReports, PermissionExportData,
		PermissionManageAccounts, PermissionManageTeam,
	},
	RoleMember: {
		PermissionViewRecords, PermissionManageInvoices, PermissionManageExpenses,
		PermissionRecordPayments, PermissionRunReports,
	},
	RoleAuditor: {
		PermissionViewRecords, PermissionRunReports, PermissionExportData,
	},
}

// HasPermission returns true if the role grants the given permission
func (r Role) HasPermission(p Permission) bool {
	for _, perm := range rolePermissions[r] {
		if perm == p {
			return true
		}
	}
	return false
}

// Permissions returns all permissions granted by the role
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Membership links a user to a business with a role
type Membership struct {
	shared.BusinessAggregateRoot
	UserID uuid.UUID
	Role   Role
}

// NewMembership creates a new membership
func NewMembership(businessID, userID uuid.UUID, role Role) (*Membership, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}

	m := &Membership{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		UserID:                userID,
		Role:                  role,
	}

	m.AddDomainEvent(NewMemberAddedEvent(m))

	return m, nil
}

// ChangeRole changes the member's role. The owner role is fixed: it can
// be neither granted nor removed through role changes.
func (m *Membership) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	if m.Role == RoleOwner {
		return shared.NewDomainError("INVALID_STATE", "The owner's role cannot be changed")
	}
	if role == RoleOwner {
		return shared.NewDomainError("INVALID_ROLE", "Ownership cannot be granted through a role change")
	}
	m.Role = role
	m.Touch()
	m.AddDomainEvent(NewMemberRoleChangedEvent(m))
	return nil
}

// CanBeRemoved returns false for the business owner
func (m *Membership) CanBeRemoved() bool {
	return m.Role != RoleOwner
}
