package ledger

import (
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CurrencyAccountCreatedEvent is raised when a currency account is created
type CurrencyAccountCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	IsPrimary bool            `json:"is_primary"`
	Rate      decimal.Decimal `json:"exchange_rate_to_primary"`
}

// EventType returns the event type name
func (e *CurrencyAccountCreatedEvent) EventType() string {
	return "CurrencyAccountCreated"
}

// NewCurrencyAccountCreatedEvent creates a new CurrencyAccountCreatedEvent
func NewCurrencyAccountCreatedEvent(a *CurrencyAccount) *CurrencyAccountCreatedEvent {
	return &CurrencyAccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CurrencyAccountCreated", "CurrencyAccount", a.ID, a.BusinessID),
		Name:            a.Name,
		Currency:        a.Currency.String(),
		IsPrimary:       a.IsPrimary,
		Rate:            a.ExchangeRateToPrimary,
	}
}
