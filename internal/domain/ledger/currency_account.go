package ledger

import (
	"strings"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the status of a currency account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusArchived AccountStatus = "archived" // No new documents may be created
)

// IsValid checks if the status is a valid AccountStatus
func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusArchived
}

// CurrencyAccount is a business's sub-ledger scoped to one currency.
// Invoices, expenses, and payments are strictly partitioned by account:
// a document's currency always equals its account's currency.
type CurrencyAccount struct {
	shared.BusinessAggregateRoot
	Name                  string
	Currency              valueobject.Currency
	IsPrimary             bool
	ExchangeRateToPrimary decimal.Decimal // Rate snapshotted onto documents at creation
	Status                AccountStatus
}

// NewCurrencyAccount creates a currency account for a business.
// The primary account's rate is fixed at 1.
func NewCurrencyAccount(businessID uuid.UUID, name string, currency valueobject.Currency, isPrimary bool, rateToPrimary decimal.Decimal) (*CurrencyAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not a valid ISO 4217 code")
	}
	if isPrimary {
		rateToPrimary = decimal.NewFromInt(1)
	} else if rateToPrimary.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate to primary must be positive")
	}

	account := &CurrencyAccount{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Currency:              currency,
		IsPrimary:             isPrimary,
		ExchangeRateToPrimary: rateToPrimary,
		Status:                AccountStatusActive,
	}

	account.AddDomainEvent(NewCurrencyAccountCreatedEvent(account))

	return account, nil
}

// UpdateExchangeRate updates the rate used for new documents. Existing
// documents keep the rate captured when they were created.
func (a *CurrencyAccount) UpdateExchangeRate(rate decimal.Decimal) error {
	if a.IsPrimary {
		return shared.NewDomainError("INVALID_STATE", "The primary account's rate is fixed at 1")
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATE", "Exchange rate to primary must be positive")
	}
	a.ExchangeRateToPrimary = rate
	a.Touch()
	return nil
}

// Rename changes the account's display name
func (a *CurrencyAccount) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.Touch()
	return nil
}

// Archive closes the account for new documents
func (a *CurrencyAccount) Archive() error {
	if a.IsPrimary {
		return shared.NewDomainError("INVALID_STATE", "The primary account cannot be archived")
	}
	if a.Status == AccountStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Account is already archived")
	}
	a.Status = AccountStatusArchived
	a.Touch()
	return nil
}

// CanCreateDocuments returns true when new invoices/expenses may be
// created against this account
func (a *CurrencyAccount) CanCreateDocuments() bool {
	return a.Status == AccountStatusActive
}
