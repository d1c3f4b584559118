package invoicing

import (
	"context"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter defines filtering options for invoice list queries
type InvoiceFilter struct {
	Status            *InvoiceStatus
	CurrencyAccountID *uuid.UUID
	ClientName        string
	FromDate          *time.Time
	ToDate            *time.Time
	Page              int
	PageSize          int
}

// InvoiceRepository persists Invoice aggregates
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Invoice, error)
	FindByVerificationID(ctx context.Context, verificationID string) (*Invoice, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter) ([]Invoice, int64, error)
	FindIssuedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]Invoice, error)
	CountIssuedInPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error)
	// NextInvoiceNumber reserves the next number in the business's
	// yearly sequence, formatted INV-YYYY-NNNN
	NextInvoiceNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreditNoteRepository persists CreditNote aggregates
type CreditNoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CreditNote, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*CreditNote, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]CreditNote, error)
	NextCreditNoteNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error)
	Save(ctx context.Context, creditNote *CreditNote) error
}

// PaymentRepository persists Payment records
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// ReceiptRepository persists Receipt records
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*Receipt, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Receipt, error)
	NextReceiptNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error)
	Save(ctx context.Context, receipt *Receipt) error
}
