package invoicing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNote reverses a voided invoice. Exactly one credit note is
// issued per voided invoice, for the invoice's full total, and it is
// immutable from creation.
type CreditNote struct {
	shared.BusinessAggregateRoot
	CreditNoteNumber string
	InvoiceID        uuid.UUID
	InvoiceNumber    string
	Currency         valueobject.Currency
	RateToPrimary    decimal.Decimal
	Amount           decimal.Decimal
	Reason           string
	IssuedAt         time.Time
	ContentHash      string
}

// NewCreditNote issues a credit note for a voided invoice
func NewCreditNote(creditNoteNumber string, invoice *Invoice, reason string) (*CreditNote, error) {
	if creditNoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Credit note number cannot be empty")
	}
	if invoice == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice cannot be nil")
	}
	if invoice.Status != InvoiceStatusVoided {
		return nil, shared.NewDomainError("INVALID_STATE", "Credit notes are only issued for voided invoices")
	}
	if invoice.CreditNoteID != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoice already has a credit note")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = invoice.VoidReason
	}

	cn := &CreditNote{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(invoice.BusinessID),
		CreditNoteNumber:      creditNoteNumber,
		InvoiceID:             invoice.ID,
		InvoiceNumber:         invoice.InvoiceNumber,
		Currency:              invoice.Currency,
		RateToPrimary:         invoice.RateToPrimary,
		Amount:                invoice.Total(),
		Reason:                reason,
		IssuedAt:              time.Now().UTC(),
	}
	cn.ContentHash = cn.computeHash()

	cn.AddDomainEvent(NewCreditNoteIssuedEvent(cn))

	return cn, nil
}

type creditNoteContent struct {
	CreditNoteNumber string `json:"credit_note_number"`
	BusinessID       string `json:"business_id"`
	InvoiceID        string `json:"invoice_id"`
	InvoiceNumber    string `json:"invoice_number"`
	Currency         string `json:"currency"`
	Amount           string `json:"amount"`
	Reason           string `json:"reason"`
	IssuedAt         string `json:"issued_at"`
}

func (cn *CreditNote) computeHash() string {
	data, err := json.Marshal(creditNoteContent{
		CreditNoteNumber: cn.CreditNoteNumber,
		BusinessID:       cn.BusinessID.String(),
		InvoiceID:        cn.InvoiceID.String(),
		InvoiceNumber:    cn.InvoiceNumber,
		Currency:         cn.Currency.String(),
		Amount:           cn.Amount.String(),
		Reason:           cn.Reason,
		IssuedAt:         cn.IssuedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		panic(err)
	}
	return HashBytes(data)
}

// VerifyIntegrity recomputes the hash and compares with the sealed one
func (cn *CreditNote) VerifyIntegrity() bool {
	return cn.ContentHash != "" && cn.computeHash() == cn.ContentHash
}
