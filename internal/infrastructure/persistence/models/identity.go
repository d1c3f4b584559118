package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for identity.User
type UserModel struct {
	AggregateModel
	Email             string `gorm:"uniqueIndex;not null;size:320"`
	PasswordHash      string `gorm:"not null;size:255"`
	FullName          string `gorm:"not null;size:200"`
	Status            string `gorm:"not null;size:20;default:'active'"`
	LastLoginAt       *time.Time
	FailedAttempts    int `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// UserModelFromDomain converts a domain User to a persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		FullName:          u.FullName,
		Status:            string(u.Status),
		LastLoginAt:       u.LastLoginAt,
		FailedAttempts:    u.FailedAttempts,
		LockedUntil:       u.LockedUntil,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Status:            identity.UserStatus(m.Status),
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// BusinessModel is the persistence model for identity.Business
type BusinessModel struct {
	AggregateModel
	Name            string    `gorm:"not null;size:200"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Jurisdiction    string    `gorm:"not null;size:2"`
	PrimaryCurrency string    `gorm:"not null;size:3"`
	TaxID           string    `gorm:"size:100"`
	Address         string    `gorm:"size:500"`
	Email           string    `gorm:"size:320"`
	Phone           string    `gorm:"size:50"`
	LogoURL         string    `gorm:"size:500"`
	Status          string    `gorm:"not null;size:20;default:'active'"`
}

// TableName returns the table name for BusinessModel
func (BusinessModel) TableName() string {
	return "businesses"
}

// BusinessModelFromDomain converts a domain Business to a persistence model
func BusinessModelFromDomain(b *identity.Business) *BusinessModel {
	m := &BusinessModel{
		Name:            b.Name,
		OwnerID:         b.OwnerID,
		Jurisdiction:    b.Jurisdiction,
		PrimaryCurrency: b.PrimaryCurrency.String(),
		TaxID:           b.TaxID,
		Address:         b.Address,
		Email:           b.Email,
		Phone:           b.Phone,
		LogoURL:         b.LogoURL,
		Status:          string(b.Status),
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Business
func (m *BusinessModel) ToDomain() *identity.Business {
	b := &identity.Business{
		Name:            m.Name,
		OwnerID:         m.OwnerID,
		Jurisdiction:    m.Jurisdiction,
		PrimaryCurrency: valueobject.Currency(m.PrimaryCurrency),
		TaxID:           m.TaxID,
		Address:         m.Address,
		Email:           m.Email,
		Phone:           m.Phone,
		LogoURL:         m.LogoURL,
		Status:          identity.BusinessStatus(m.Status),
	}
	m.PopulateAggregateRoot(&b.BaseAggregateRoot)
	return b
}

// MembershipModel is the persistence model for identity.Membership
type MembershipModel struct {
	BusinessAggregateModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role   string    `gorm:"not null;size:20"`
}

// TableName returns the table name for MembershipModel
func (MembershipModel) TableName() string {
	return "memberships"
}

// MembershipModelFromDomain converts a domain Membership to a persistence model
func MembershipModelFromDomain(ms *identity.Membership) *MembershipModel {
	m := &MembershipModel{
		UserID: ms.UserID,
		Role:   string(ms.Role),
	}
	m.FromDomainBusinessAggregateRoot(ms.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Membership
func (m *MembershipModel) ToDomain() *identity.Membership {
	ms := &identity.Membership{
		UserID: m.UserID,
		Role:   identity.Role(m.Role),
	}
	m.PopulateBusinessAggregateRoot(&ms.BusinessAggregateRoot)
	return ms
}
