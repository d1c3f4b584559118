package invoicing

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceCreatedEvent is raised when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber     string    `json:"invoice_number"`
	CurrencyAccountID uuid.UUID `json:"currency_account_id"`
	Currency          string    `json:"currency"`
	ClientName        string    `json:"client_name"`
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return "InvoiceCreated"
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(i *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("InvoiceCreated", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:     i.InvoiceNumber,
		CurrencyAccountID: i.CurrencyAccountID,
		Currency:          i.Currency.String(),
		ClientName:        i.Client.Name,
	}
}

// InvoiceIssuedEvent is raised when an invoice is issued and sealed
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber  string          `json:"invoice_number"`
	VerificationID string          `json:"verification_id"`
	ContentHash    string          `json:"content_hash"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	ClientName     string          `json:"client_name"`
	ClientEmail    string          `json:"client_email"`
}

// EventType returns the event type name
func (e *InvoiceIssuedEvent) EventType() string {
	return "InvoiceIssued"
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(i *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceIssued", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:   i.InvoiceNumber,
		VerificationID:  i.VerificationID,
		ContentHash:     i.ContentHash,
		Total:           i.Total(),
		Currency:        i.Currency.String(),
		ClientName:      i.Client.Name,
		ClientEmail:     i.Client.Email,
	}
}

// InvoiceSentEvent is raised when an invoice is emailed to the client
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	ClientEmail   string `json:"client_email"`
}

// EventType returns the event type name
func (e *InvoiceSentEvent) EventType() string {
	return "InvoiceSent"
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(i *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceSent", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:   i.InvoiceNumber,
		ClientEmail:     i.Client.Email,
	}
}

// InvoiceViewedEvent is raised the first time the client opens an invoice
type InvoiceViewedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// EventType returns the event type name
func (e *InvoiceViewedEvent) EventType() string {
	return "InvoiceViewed"
}

// NewInvoiceViewedEvent creates a new InvoiceViewedEvent
func NewInvoiceViewedEvent(i *Invoice) *InvoiceViewedEvent {
	return &InvoiceViewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceViewed", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:   i.InvoiceNumber,
	}
}

// InvoicePaidEvent is raised when the balance reaches zero
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PaidAt        time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return "InvoicePaid"
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(i *Invoice) *InvoicePaidEvent {
	paidAt := time.Now()
	if i.PaidAt != nil {
		paidAt = *i.PaidAt
	}
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoicePaid", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:   i.InvoiceNumber,
		Total:           i.Total(),
		Currency:        i.Currency.String(),
		PaidAt:          paidAt,
	}
}

// InvoiceVoidedEvent is raised when an invoice is voided
type InvoiceVoidedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Reason        string `json:"reason"`
}

// EventType returns the event type name
func (e *InvoiceVoidedEvent) EventType() string {
	return "InvoiceVoided"
}

// NewInvoiceVoidedEvent creates a new InvoiceVoidedEvent
func NewInvoiceVoidedEvent(i *Invoice) *InvoiceVoidedEvent {
	return &InvoiceVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceVoided", "Invoice", i.ID, i.BusinessID),
		InvoiceNumber:   i.InvoiceNumber,
		Reason:          i.VoidReason,
	}
}

// CreditNoteIssuedEvent is raised when a credit note is issued
type CreditNoteIssuedEvent struct {
	shared.BaseDomainEvent
	CreditNoteNumber string          `json:"credit_note_number"`
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
}

// EventType returns the event type name
func (e *CreditNoteIssuedEvent) EventType() string {
	return "CreditNoteIssued"
}

// NewCreditNoteIssuedEvent creates a new CreditNoteIssuedEvent
func NewCreditNoteIssuedEvent(cn *CreditNote) *CreditNoteIssuedEvent {
	return &CreditNoteIssuedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("CreditNoteIssued", "CreditNote", cn.ID, cn.BusinessID),
		CreditNoteNumber: cn.CreditNoteNumber,
		InvoiceID:        cn.InvoiceID,
		InvoiceNumber:    cn.InvoiceNumber,
		Amount:           cn.Amount,
		Currency:         cn.Currency.String(),
	}
}

// PaymentRecordedEvent is raised when a payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        PaymentMethod   `json:"method"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment, i *Invoice) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID, p.BusinessID),
		InvoiceID:       p.InvoiceID,
		InvoiceNumber:   i.InvoiceNumber,
		Amount:          p.Amount,
		Currency:        p.Currency.String(),
		Method:          p.Method,
	}
}
