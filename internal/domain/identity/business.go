package identity

import (
	"strings"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BusinessStatus represents the status of a business tenant
type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusSuspended BusinessStatus = "suspended" // Suspended for billing/compliance reasons
	BusinessStatusClosed    BusinessStatus = "closed"
)

// IsValid checks if the status is a valid BusinessStatus
func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessStatusActive, BusinessStatusSuspended, BusinessStatusClosed:
		return true
	}
	return false
}

// Business is the tenant root. All invoices, expenses, currency
// accounts, and audit records are partitioned by business.
type Business struct {
	shared.BaseAggregateRoot
	Name            string
	OwnerID         uuid.UUID
	Jurisdiction    string // ISO 3166-1 alpha-2 country code
	PrimaryCurrency valueobject.Currency
	TaxID           string
	Address         string
	Email           string
	Phone           string
	LogoURL         string
	Status          BusinessStatus
}

// NewBusiness creates a new business owned by the given user
func NewBusiness(ownerID uuid.UUID, name, jurisdiction string, primaryCurrency valueobject.Currency) (*Business, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}
	jurisdiction = strings.ToUpper(strings.TrimSpace(jurisdiction))
	if len(jurisdiction) != 2 {
		return nil, shared.NewDomainError("INVALID_JURISDICTION", "Jurisdiction must be a 2-letter country code")
	}
	if !primaryCurrency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Primary currency is not a valid ISO 4217 code")
	}

	business := &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerID:           ownerID,
		Jurisdiction:      jurisdiction,
		PrimaryCurrency:   primaryCurrency,
		Status:            BusinessStatusActive,
	}

	business.AddDomainEvent(NewBusinessCreatedEvent(business))

	return business, nil
}

// UpdateProfile updates the business's descriptive fields
func (b *Business) UpdateProfile(name, taxID, address, email, phone, logoURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	b.Name = name
	b.TaxID = strings.TrimSpace(taxID)
	b.Address = strings.TrimSpace(address)
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Phone = strings.TrimSpace(phone)
	b.LogoURL = strings.TrimSpace(logoURL)
	b.Touch()
	return nil
}

// Suspend suspends the business
func (b *Business) Suspend() error {
	if b.Status == BusinessStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot suspend a closed business")
	}
	b.Status = BusinessStatusSuspended
	b.Touch()
	return nil
}

// Reactivate restores a suspended business
func (b *Business) Reactivate() error {
	if b.Status != BusinessStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only suspended businesses can be reactivated")
	}
	b.Status = BusinessStatusActive
	b.Touch()
	return nil
}

// IsActive returns true when the business can transact
func (b *Business) IsActive() bool {
	return b.Status == BusinessStatusActive
}
