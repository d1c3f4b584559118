package identity

import (
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRegisteredEvent is raised when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return "UserRegistered"
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserRegistered", "User", user.ID, uuid.Nil),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// BusinessCreatedEvent is raised when a new business tenant is created
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	Name            string `json:"name"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Jurisdiction    string `json:"jurisdiction"`
	PrimaryCurrency string `json:"primary_currency"`
}

// EventType returns the event type name
func (e *BusinessCreatedEvent) EventType() string {
	return "BusinessCreated"
}

// NewBusinessCreatedEvent creates a new BusinessCreatedEvent
func NewBusinessCreatedEvent(b *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BusinessCreated", "Business", b.ID, b.ID),
		Name:            b.Name,
		OwnerID:         b.OwnerID,
		Jurisdiction:    b.Jurisdiction,
		PrimaryCurrency: b.PrimaryCurrency.String(),
	}
}

// MemberAddedEvent is raised when a user joins a business
type MemberAddedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// EventType returns the event type name
func (e *MemberAddedEvent) EventType() string {
	return "MemberAdded"
}

// NewMemberAddedEvent creates a new MemberAddedEvent
func NewMemberAddedEvent(m *Membership) *MemberAddedEvent {
	return &MemberAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MemberAdded", "Membership", m.ID, m.BusinessID),
		UserID:          m.UserID,
		Role:            m.Role,
	}
}

// MemberRoleChangedEvent is raised when a member's role changes
type MemberRoleChangedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// EventType returns the event type name
func (e *MemberRoleChangedEvent) EventType() string {
	return "MemberRoleChanged"
}

// NewMemberRoleChangedEvent creates a new MemberRoleChangedEvent
func NewMemberRoleChangedEvent(m *Membership) *MemberRoleChangedEvent {
	return &MemberRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MemberRoleChanged", "Membership", m.ID, m.BusinessID),
		UserID:          m.UserID,
		Role:            m.Role,
	}
}
