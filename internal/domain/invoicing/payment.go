package invoicing

import (
	"encoding/json"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCard,
		PaymentMethodMobileMoney, PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records money received against an issued invoice
type Payment struct {
	shared.BusinessAggregateRoot
	InvoiceID  uuid.UUID
	Amount     decimal.Decimal
	Currency   valueobject.Currency
	Method     PaymentMethod
	Reference  string
	PaidAt     time.Time
	RecordedBy uuid.UUID
}

// NewPayment creates a payment record for an invoice. The amount has
// already been validated and applied by Invoice.ApplyPayment.
func NewPayment(invoice *Invoice, amount valueobject.Money, method PaymentMethod, reference string, paidAt time.Time, recordedBy uuid.UUID) (*Payment, error) {
	if invoice == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice cannot be nil")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recording user ID cannot be empty")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	p := &Payment{
		BusinessAggregateRoot: shared.NewBusinessAggregateRootWithCreator(invoice.BusinessID, recordedBy),
		InvoiceID:             invoice.ID,
		Amount:                amount.Amount(),
		Currency:              amount.Currency(),
		Method:                method,
		Reference:             reference,
		PaidAt:                paidAt,
		RecordedBy:            recordedBy,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p, invoice))

	return p, nil
}

// Receipt is the immutable proof generated for each recorded payment
type Receipt struct {
	shared.BusinessAggregateRoot
	ReceiptNumber string
	PaymentID     uuid.UUID
	InvoiceID     uuid.UUID
	InvoiceNumber string
	Currency      valueobject.Currency
	Amount        decimal.Decimal
	IssuedAt      time.Time
	ContentHash   string
}

// NewReceipt issues a receipt for a recorded payment
func NewReceipt(receiptNumber string, payment *Payment, invoiceNumber string) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number cannot be empty")
	}
	if payment == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment cannot be nil")
	}

	r := &Receipt{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(payment.BusinessID),
		ReceiptNumber:         receiptNumber,
		PaymentID:             payment.ID,
		InvoiceID:             payment.InvoiceID,
		InvoiceNumber:         invoiceNumber,
		Currency:              payment.Currency,
		Amount:                payment.Amount,
		IssuedAt:              time.Now().UTC(),
	}
	r.ContentHash = r.computeHash()

	return r, nil
}

type receiptContent struct {
	ReceiptNumber string `json:"receipt_number"`
	BusinessID    string `json:"business_id"`
	PaymentID     string `json:"payment_id"`
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	IssuedAt      string `json:"issued_at"`
}

func (r *Receipt) computeHash() string {
	data, err := json.Marshal(receiptContent{
		ReceiptNumber: r.ReceiptNumber,
		BusinessID:    r.BusinessID.String(),
		PaymentID:     r.PaymentID.String(),
		InvoiceID:     r.InvoiceID.String(),
		InvoiceNumber: r.InvoiceNumber,
		Currency:      r.Currency.String(),
		Amount:        r.Amount.String(),
		IssuedAt:      r.IssuedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		panic(err)
	}
	return HashBytes(data)
}

// VerifyIntegrity recomputes the hash and compares with the sealed one
func (r *Receipt) VerifyIntegrity() bool {
	return r.ContentHash != "" && r.computeHash() == r.ContentHash
}
