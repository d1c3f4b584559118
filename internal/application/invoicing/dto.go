package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/invoicemonk/backend/internal/domain/invoicing"
)

// LineItemDTO is the API view of one invoice line
type LineItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Net         decimal.Decimal `json:"net"`
	Tax         decimal.Decimal `json:"tax"`
}

// ClientDTO is the API view of the invoice recipient
type ClientDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// IssuerDTO is the API view of the issuer snapshot on an issued invoice
type IssuerDTO struct {
	BusinessName string `json:"business_name"`
	TaxID        string `json:"tax_id,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	Jurisdiction string `json:"jurisdiction"`
}

// InvoiceDTO is the API view of an invoice
type InvoiceDTO struct {
	ID                uuid.UUID       `json:"id"`
	BusinessID        uuid.UUID       `json:"business_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	CurrencyAccountID uuid.UUID       `json:"currency_account_id"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	Client            ClientDTO       `json:"client"`
	LineItems         []LineItemDTO   `json:"line_items"`
	Notes             string          `json:"notes,omitempty"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxTotal          decimal.Decimal `json:"tax_total"`
	Total             decimal.Decimal `json:"total"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	AmountRemaining   decimal.Decimal `json:"amount_remaining"`
	Issuer            *IssuerDTO      `json:"issuer,omitempty"`
	IssuedAt          *time.Time      `json:"issued_at,omitempty"`
	SentAt            *time.Time      `json:"sent_at,omitempty"`
	ViewedAt          *time.Time      `json:"viewed_at,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	VoidedAt          *time.Time      `json:"voided_at,omitempty"`
	VoidReason        string          `json:"void_reason,omitempty"`
	CreditNoteID      *uuid.UUID      `json:"credit_note_id,omitempty"`
	VerificationID    string          `json:"verification_id,omitempty"`
	ContentHash       string          `json:"content_hash,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PaymentDTO is the API view of a recorded payment
type PaymentDTO struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ReceiptDTO is the API view of a payment receipt
type ReceiptDTO struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	IssuedAt      time.Time       `json:"issued_at"`
	ContentHash   string          `json:"content_hash"`
}

// CreditNoteDTO is the API view of a credit note
type CreditNoteDTO struct {
	ID               uuid.UUID       `json:"id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	Currency         string          `json:"currency"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	IssuedAt         time.Time       `json:"issued_at"`
	ContentHash      string          `json:"content_hash"`
}

// VerificationDTO is the public view returned by the verification
// endpoint. It carries no client contact details beyond the name and
// never exposes internal identifiers.
type VerificationDTO struct {
	InvoiceNumber string          `json:"invoice_number"`
	IssuerName    string          `json:"issuer_name"`
	ClientName    string          `json:"client_name"`
	Currency      string          `json:"currency"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	IssuedAt      time.Time       `json:"issued_at"`
	ContentHash   string          `json:"content_hash"`
	HashValid     bool            `json:"hash_valid"`
}

func toLineItemDTO(li invoicing.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:          li.ID,
		Description: li.Description,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		TaxRate:     li.TaxRate,
		Net:         li.Net(),
		Tax:         li.Tax(),
	}
}

func toInvoiceDTO(i *invoicing.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		ID:                i.ID,
		BusinessID:        i.BusinessID,
		InvoiceNumber:     i.InvoiceNumber,
		CurrencyAccountID: i.CurrencyAccountID,
		Currency:          i.Currency.String(),
		Status:            i.Status.String(),
		Client: ClientDTO{
			Name:    i.Client.Name,
			Email:   i.Client.Email,
			Address: i.Client.Address,
			TaxID:   i.Client.TaxID,
		},
		LineItems:       lo.Map(i.LineItems, func(li invoicing.LineItem, _ int) LineItemDTO { return toLineItemDTO(li) }),
		Notes:           i.Notes,
		DueDate:         i.DueDate,
		Subtotal:        i.Subtotal(),
		TaxTotal:        i.TaxTotal(),
		Total:           i.Total(),
		AmountPaid:      i.AmountPaid,
		AmountRemaining: i.AmountRemaining(),
		IssuedAt:        i.IssuedAt,
		SentAt:          i.SentAt,
		ViewedAt:        i.ViewedAt,
		PaidAt:          i.PaidAt,
		VoidedAt:        i.VoidedAt,
		VoidReason:      i.VoidReason,
		CreditNoteID:    i.CreditNoteID,
		VerificationID:  i.VerificationID,
		ContentHash:     i.ContentHash,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
	if i.Snapshot != nil {
		dto.Issuer = &IssuerDTO{
			BusinessName: i.Snapshot.BusinessName,
			TaxID:        i.Snapshot.TaxID,
			Address:      i.Snapshot.Address,
			Email:        i.Snapshot.Email,
			Jurisdiction: i.Snapshot.Jurisdiction,
		}
	}
	return dto
}

func toPaymentDTO(p *invoicing.Payment) *PaymentDTO {
	return &PaymentDTO{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Currency:  p.Currency.String(),
		Method:    string(p.Method),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

func toReceiptDTO(r *invoicing.Receipt) *ReceiptDTO {
	return &ReceiptDTO{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		PaymentID:     r.PaymentID,
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		Currency:      r.Currency.String(),
		Amount:        r.Amount,
		IssuedAt:      r.IssuedAt,
		ContentHash:   r.ContentHash,
	}
}

func toCreditNoteDTO(cn *invoicing.CreditNote) *CreditNoteDTO {
	return &CreditNoteDTO{
		ID:               cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		InvoiceID:        cn.InvoiceID,
		InvoiceNumber:    cn.InvoiceNumber,
		Currency:         cn.Currency.String(),
		Amount:           cn.Amount,
		Reason:           cn.Reason,
		IssuedAt:         cn.IssuedAt,
		ContentHash:      cn.ContentHash,
	}
}
