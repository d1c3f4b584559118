package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusIssued   InvoiceStatus = "issued"
	InvoiceStatusSent     InvoiceStatus = "sent"
	InvoiceStatusViewed   InvoiceStatus = "viewed"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusVoided   InvoiceStatus = "voided"
	InvoiceStatusCredited InvoiceStatus = "credited"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusSent,
		InvoiceStatusViewed, InvoiceStatusPaid, InvoiceStatusVoided, InvoiceStatusCredited:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for end states of the lifecycle
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCredited
}

// IsIssued returns true once the invoice has left draft
func (s InvoiceStatus) IsIssued() bool {
	return s != InvoiceStatusDraft
}

// CanEdit returns true while financial fields may still change
func (s InvoiceStatus) CanEdit() bool {
	return s == InvoiceStatusDraft
}

// CanSend returns true if the invoice may be emailed in this status
func (s InvoiceStatus) CanSend() bool {
	return s == InvoiceStatusIssued || s == InvoiceStatusSent
}

// CanAcceptPayment returns true if payments may be recorded in this status
func (s InvoiceStatus) CanAcceptPayment() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusSent, InvoiceStatusViewed:
		return true
	}
	return false
}

// CanVoid returns true if the invoice may be voided in this status
func (s InvoiceStatus) CanVoid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusSent, InvoiceStatusViewed:
		return true
	}
	return false
}

// LineItem is a single billable line on an invoice
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // Percentage, e.g. 7.5
}

// NewLineItem creates a validated line item
func NewLineItem(description string, quantity, unitPrice, taxRate decimal.Decimal) (LineItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item unit price must be positive")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item tax rate must be between 0 and 100")
	}
	return LineItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
	}, nil
}

// Net returns quantity * unit price
func (li LineItem) Net() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Tax returns the tax portion of the line
func (li LineItem) Tax() decimal.Decimal {
	return li.Net().Mul(li.TaxRate).Div(decimal.NewFromInt(100))
}

// ClientDetails identifies the invoice recipient
type ClientDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// Validate checks the minimum recipient fields
func (c ClientDetails) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}
	return nil
}

// Invoice is the central aggregate of the system. Once issued, its
// financial fields are frozen: the aggregate rejects every mutation of
// line items, client details, and currency after the draft stage, and a
// SHA-256 content hash over the frozen fields makes later tampering
// detectable through the public verification endpoint.
type Invoice struct {
	shared.BusinessAggregateRoot
	InvoiceNumber     string
	CurrencyAccountID uuid.UUID
	Currency          valueobject.Currency
	RateToPrimary     decimal.Decimal // Captured from the account at creation
	Client            ClientDetails
	LineItems         []LineItem
	Notes             string
	DueDate           *time.Time
	Status            InvoiceStatus

	// Set at issuance
	IssuedAt       *time.Time
	VerificationID string
	ContentHash    string
	Snapshot       *IssuerSnapshot

	// Payment tracking
	AmountPaid decimal.Decimal
	PaidAt     *time.Time

	// Void tracking
	VoidedAt     *time.Time
	VoidReason   string
	CreditNoteID *uuid.UUID

	// Delivery tracking
	SentAt   *time.Time
	ViewedAt *time.Time
}

// NewInvoice creates a draft invoice against a currency account.
// The invoice number is assigned by the caller from the business's
// yearly sequence (INV-YYYY-NNNN).
func NewInvoice(
	businessID uuid.UUID,
	invoiceNumber string,
	currencyAccountID uuid.UUID,
	currency valueobject.Currency,
	rateToPrimary decimal.Decimal,
	client ClientDetails,
	lineItems []LineItem,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if currencyAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Currency account ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not a valid ISO 4217 code")
	}
	if rateToPrimary.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate to primary must be positive")
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}

	invoice := &Invoice{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		InvoiceNumber:         invoiceNumber,
		CurrencyAccountID:     currencyAccountID,
		Currency:              currency,
		RateToPrimary:         rateToPrimary,
		Client:                client,
		LineItems:             lineItems,
		Status:                InvoiceStatusDraft,
		AmountPaid:            decimal.Zero,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// Subtotal returns the sum of line nets
func (i *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range i.LineItems {
		sum = sum.Add(li.Net())
	}
	return sum
}

// TaxTotal returns the sum of line taxes
func (i *Invoice) TaxTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range i.LineItems {
		sum = sum.Add(li.Tax())
	}
	return sum
}

// Total returns the grand total, rounded to the currency's minor unit
func (i *Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxTotal()).Round(i.Currency.DecimalPlaces())
}

// AmountRemaining returns the unpaid balance
func (i *Invoice) AmountRemaining() decimal.Decimal {
	return i.Total().Sub(i.AmountPaid)
}

// PrimaryEquivalent returns the total converted into the business's
// primary currency using the rate captured at creation
func (i *Invoice) PrimaryEquivalent(primary valueobject.Currency) decimal.Decimal {
	if i.Currency == primary {
		return i.Total()
	}
	return i.Total().Mul(i.RateToPrimary)
}

// UpdateDraft replaces the editable fields of a draft invoice
func (i *Invoice) UpdateDraft(client ClientDetails, lineItems []LineItem, notes string, dueDate *time.Time) error {
	if !i.Status.CanEdit() {
		return shared.ErrImmutableRecord
	}
	if err := client.Validate(); err != nil {
		return err
	}
	i.Client = client
	i.LineItems = lineItems
	i.Notes = notes
	i.DueDate = dueDate
	i.Touch()
	return nil
}

// Issue freezes the invoice, captures the issuer snapshot, assigns the
// public verification ID, and seals the content with a SHA-256 hash.
func (i *Invoice) Issue(verificationID string, snapshot IssuerSnapshot) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue invoice in %s status", i.Status))
	}
	if len(i.LineItems) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot issue an invoice with no line items")
	}
	if verificationID == "" {
		return shared.NewDomainError("INVALID_VERIFICATION_ID", "Verification ID cannot be empty")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	i.Status = InvoiceStatusIssued
	i.IssuedAt = &now
	i.VerificationID = verificationID
	i.Snapshot = &snapshot
	i.ContentHash = i.ComputeContentHash()
	i.Touch()

	i.AddDomainEvent(NewInvoiceIssuedEvent(i))

	return nil
}

// MarkSent records that the invoice was delivered to the client
func (i *Invoice) MarkSent() error {
	if !i.Status.CanSend() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", i.Status))
	}
	now := time.Now()
	if i.Status == InvoiceStatusIssued {
		i.Status = InvoiceStatusSent
	}
	i.SentAt = &now
	i.Touch()
	i.AddDomainEvent(NewInvoiceSentEvent(i))
	return nil
}

// MarkViewed records that the client opened the invoice. Viewing is
// tracked from the public document link and is idempotent.
func (i *Invoice) MarkViewed() error {
	switch i.Status {
	case InvoiceStatusSent:
		now := time.Now()
		i.Status = InvoiceStatusViewed
		i.ViewedAt = &now
		i.Touch()
		i.AddDomainEvent(NewInvoiceViewedEvent(i))
		return nil
	case InvoiceStatusViewed, InvoiceStatusPaid, InvoiceStatusVoided, InvoiceStatusCredited:
		// Repeat opens after the first are not state changes
		return nil
	default:
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice viewed in %s status", i.Status))
	}
}

// ApplyPayment records a payment amount against the invoice. The
// invoice transitions to paid exactly when the balance reaches zero.
func (i *Invoice) ApplyPayment(amount valueobject.Money) error {
	if !i.Status.CanAcceptPayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record a payment on a %s invoice", i.Status))
	}
	if amount.Currency() != i.Currency {
		return shared.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.AmountRemaining()) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds the amount remaining on the invoice")
	}

	i.AmountPaid = i.AmountPaid.Add(amount.Amount())
	if i.AmountRemaining().IsZero() {
		now := time.Now()
		i.Status = InvoiceStatusPaid
		i.PaidAt = &now
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	}
	i.Touch()
	return nil
}

// Void cancels an issued invoice that has received no payments. The
// caller must issue exactly one credit note and link it via
// LinkCreditNote, completing the voided → credited transition.
func (i *Invoice) Void(reason string) error {
	if !i.Status.CanVoid() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void invoice in %s status", i.Status))
	}
	if i.AmountPaid.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot void an invoice with recorded payments")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason cannot be empty")
	}

	now := time.Now()
	i.Status = InvoiceStatusVoided
	i.VoidedAt = &now
	i.VoidReason = reason
	i.Touch()

	i.AddDomainEvent(NewInvoiceVoidedEvent(i))

	return nil
}

// LinkCreditNote attaches the credit note produced for a voided invoice
// and moves the invoice to its credited terminal state
func (i *Invoice) LinkCreditNote(creditNoteID uuid.UUID) error {
	if i.Status != InvoiceStatusVoided {
		return shared.NewDomainError("INVALID_STATE", "Only voided invoices can be credited")
	}
	if i.CreditNoteID != nil {
		return shared.NewDomainError("INVALID_STATE", "Invoice already has a credit note")
	}
	if creditNoteID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Credit note ID cannot be empty")
	}
	i.CreditNoteID = &creditNoteID
	i.Status = InvoiceStatusCredited
	i.Touch()
	return nil
}

// CanDelete returns true only for drafts; issued invoices are part of
// the compliance record and are never deleted
func (i *Invoice) CanDelete() bool {
	return i.Status == InvoiceStatusDraft
}

// VerifyIntegrity recomputes the content hash over the frozen fields
// and compares it with the hash sealed at issuance
func (i *Invoice) VerifyIntegrity() bool {
	if !i.Status.IsIssued() || i.ContentHash == "" {
		return false
	}
	return i.ComputeContentHash() == i.ContentHash
}
