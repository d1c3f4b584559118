package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for invoicing.Invoice. Line
// items, client details and the issuer snapshot are stored as JSONB:
// they are frozen value objects, never queried field-by-field.
type InvoiceModel struct {
	BusinessAggregateModel
	InvoiceNumber     string          `gorm:"not null;size:20;index"`
	CurrencyAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Currency          string          `gorm:"not null;size:3"`
	RateToPrimary     decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Client            string          `gorm:"type:jsonb;not null"`
	LineItems         string          `gorm:"type:jsonb;not null;default:'[]'"`
	Notes             string          `gorm:"size:2000"`
	DueDate           *time.Time
	Status            string `gorm:"not null;size:20;index"`
	IssuedAt          *time.Time
	VerificationID    *string `gorm:"size:20;uniqueIndex"`
	ContentHash       string  `gorm:"size:64"`
	Snapshot          *string `gorm:"type:jsonb"`
	AmountPaid        decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	PaidAt            *time.Time
	VoidedAt          *time.Time
	VoidReason        string `gorm:"size:500"`
	CreditNoteID      *uuid.UUID `gorm:"type:uuid"`
	SentAt            *time.Time
	ViewedAt          *time.Time
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceModelFromDomain converts a domain Invoice to a persistence model
func InvoiceModelFromDomain(i *invoicing.Invoice) (*InvoiceModel, error) {
	clientJSON, err := json.Marshal(i.Client)
	if err != nil {
		return nil, err
	}
	lineItemsJSON, err := json.Marshal(i.LineItems)
	if err != nil {
		return nil, err
	}

	m := &InvoiceModel{
		InvoiceNumber:     i.InvoiceNumber,
		CurrencyAccountID: i.CurrencyAccountID,
		Currency:          i.Currency.String(),
		RateToPrimary:     i.RateToPrimary,
		Client:            string(clientJSON),
		LineItems:         string(lineItemsJSON),
		Notes:             i.Notes,
		DueDate:           i.DueDate,
		Status:            i.Status.String(),
		IssuedAt:          i.IssuedAt,
		ContentHash:       i.ContentHash,
		AmountPaid:        i.AmountPaid,
		PaidAt:            i.PaidAt,
		VoidedAt:          i.VoidedAt,
		VoidReason:        i.VoidReason,
		CreditNoteID:      i.CreditNoteID,
		SentAt:            i.SentAt,
		ViewedAt:          i.ViewedAt,
	}
	if i.VerificationID != "" {
		verificationID := i.VerificationID
		m.VerificationID = &verificationID
	}
	if i.Snapshot != nil {
		snapshotJSON, err := json.Marshal(i.Snapshot)
		if err != nil {
			return nil, err
		}
		snapshot := string(snapshotJSON)
		m.Snapshot = &snapshot
	}
	m.FromDomainBusinessAggregateRoot(i.BusinessAggregateRoot)
	return m, nil
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() (*invoicing.Invoice, error) {
	var client invoicing.ClientDetails
	if err := json.Unmarshal([]byte(m.Client), &client); err != nil {
		return nil, err
	}
	var lineItems []invoicing.LineItem
	if err := json.Unmarshal([]byte(m.LineItems), &lineItems); err != nil {
		return nil, err
	}

	i := &invoicing.Invoice{
		InvoiceNumber:     m.InvoiceNumber,
		CurrencyAccountID: m.CurrencyAccountID,
		Currency:          valueobject.Currency(m.Currency),
		RateToPrimary:     m.RateToPrimary,
		Client:            client,
		LineItems:         lineItems,
		Notes:             m.Notes,
		DueDate:           m.DueDate,
		Status:            invoicing.InvoiceStatus(m.Status),
		IssuedAt:          m.IssuedAt,
		ContentHash:       m.ContentHash,
		AmountPaid:        m.AmountPaid,
		PaidAt:            m.PaidAt,
		VoidedAt:          m.VoidedAt,
		VoidReason:        m.VoidReason,
		CreditNoteID:      m.CreditNoteID,
		SentAt:            m.SentAt,
		ViewedAt:          m.ViewedAt,
	}
	if m.VerificationID != nil {
		i.VerificationID = *m.VerificationID
	}
	if m.Snapshot != nil {
		var snapshot invoicing.IssuerSnapshot
		if err := json.Unmarshal([]byte(*m.Snapshot), &snapshot); err != nil {
			return nil, err
		}
		i.Snapshot = &snapshot
	}
	m.PopulateBusinessAggregateRoot(&i.BusinessAggregateRoot)
	return i, nil
}

// CreditNoteModel is the persistence model for invoicing.CreditNote
type CreditNoteModel struct {
	BusinessAggregateModel
	CreditNoteNumber string          `gorm:"not null;size:20;index"`
	InvoiceID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber    string          `gorm:"not null;size:20"`
	Currency         string          `gorm:"not null;size:3"`
	RateToPrimary    decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Reason           string          `gorm:"not null;size:500"`
	IssuedAt         time.Time       `gorm:"not null"`
	ContentHash      string          `gorm:"not null;size:64"`
}

// TableName returns the table name for CreditNoteModel
func (CreditNoteModel) TableName() string {
	return "credit_notes"
}

// CreditNoteModelFromDomain converts a domain CreditNote to a persistence model
func CreditNoteModelFromDomain(cn *invoicing.CreditNote) *CreditNoteModel {
	m := &CreditNoteModel{
		CreditNoteNumber: cn.CreditNoteNumber,
		InvoiceID:        cn.InvoiceID,
		InvoiceNumber:    cn.InvoiceNumber,
		Currency:         cn.Currency.String(),
		RateToPrimary:    cn.RateToPrimary,
		Amount:           cn.Amount,
		Reason:           cn.Reason,
		IssuedAt:         cn.IssuedAt,
		ContentHash:      cn.ContentHash,
	}
	m.FromDomainBusinessAggregateRoot(cn.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain CreditNote
func (m *CreditNoteModel) ToDomain() *invoicing.CreditNote {
	cn := &invoicing.CreditNote{
		CreditNoteNumber: m.CreditNoteNumber,
		InvoiceID:        m.InvoiceID,
		InvoiceNumber:    m.InvoiceNumber,
		Currency:         valueobject.Currency(m.Currency),
		RateToPrimary:    m.RateToPrimary,
		Amount:           m.Amount,
		Reason:           m.Reason,
		IssuedAt:         m.IssuedAt,
		ContentHash:      m.ContentHash,
	}
	m.PopulateBusinessAggregateRoot(&cn.BusinessAggregateRoot)
	return cn
}

// PaymentModel is the persistence model for invoicing.Payment
type PaymentModel struct {
	BusinessAggregateModel
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency   string          `gorm:"not null;size:3"`
	Method     string          `gorm:"not null;size:20"`
	Reference  string          `gorm:"size:100"`
	PaidAt     time.Time       `gorm:"not null"`
	RecordedBy uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentModelFromDomain converts a domain Payment to a persistence model
func PaymentModelFromDomain(p *invoicing.Payment) *PaymentModel {
	m := &PaymentModel{
		InvoiceID:  p.InvoiceID,
		Amount:     p.Amount,
		Currency:   p.Currency.String(),
		Method:     string(p.Method),
		Reference:  p.Reference,
		PaidAt:     p.PaidAt,
		RecordedBy: p.RecordedBy,
	}
	m.FromDomainBusinessAggregateRoot(p.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *invoicing.Payment {
	p := &invoicing.Payment{
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Currency:   valueobject.Currency(m.Currency),
		Method:     invoicing.PaymentMethod(m.Method),
		Reference:  m.Reference,
		PaidAt:     m.PaidAt,
		RecordedBy: m.RecordedBy,
	}
	m.PopulateBusinessAggregateRoot(&p.BusinessAggregateRoot)
	return p
}

// ReceiptModel is the persistence model for invoicing.Receipt
type ReceiptModel struct {
	BusinessAggregateModel
	ReceiptNumber string          `gorm:"not null;size:20;index"`
	PaymentID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"not null;size:20"`
	Currency      string          `gorm:"not null;size:3"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	IssuedAt      time.Time       `gorm:"not null"`
	ContentHash   string          `gorm:"not null;size:64"`
}

// TableName returns the table name for ReceiptModel
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ReceiptModelFromDomain converts a domain Receipt to a persistence model
func ReceiptModelFromDomain(r *invoicing.Receipt) *ReceiptModel {
	m := &ReceiptModel{
		ReceiptNumber: r.ReceiptNumber,
		PaymentID:     r.PaymentID,
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		Currency:      r.Currency.String(),
		Amount:        r.Amount,
		IssuedAt:      r.IssuedAt,
		ContentHash:   r.ContentHash,
	}
	m.FromDomainBusinessAggregateRoot(r.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Receipt
func (m *ReceiptModel) ToDomain() *invoicing.Receipt {
	r := &invoicing.Receipt{
		ReceiptNumber: m.ReceiptNumber,
		PaymentID:     m.PaymentID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Currency:      valueobject.Currency(m.Currency),
		Amount:        m.Amount,
		IssuedAt:      m.IssuedAt,
		ContentHash:   m.ContentHash,
	}
	m.PopulateBusinessAggregateRoot(&r.BusinessAggregateRoot)
	return r
}
