package invoicing

import (
	"testing"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	inv := issuedInvoice(t)
	amount := valueobject.MustNewMoney(decimal.NewFromInt(850000), valueobject.NGN)
	recordedBy := uuid.New()

	p, err := NewPayment(inv, amount, PaymentMethodBankTransfer, "TRF/0091", time.Time{}, recordedBy)
	require.NoError(t, err)

	assert.Equal(t, inv.ID, p.InvoiceID)
	assert.Equal(t, inv.BusinessID, p.BusinessID)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(850000)))
	assert.Equal(t, valueobject.NGN, p.Currency)
	assert.Equal(t, recordedBy, p.RecordedBy)
	assert.False(t, p.PaidAt.IsZero())
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestNewPayment_Rejections(t *testing.T) {
	inv := issuedInvoice(t)
	amount := valueobject.MustNewMoney(decimal.NewFromInt(100), valueobject.NGN)

	_, err := NewPayment(inv, amount, PaymentMethod("wire-ish"), "", time.Now(), uuid.New())
	assert.Error(t, err)

	_, err = NewPayment(inv, amount, PaymentMethodCash, "", time.Now(), uuid.Nil)
	assert.Error(t, err)

	_, err = NewPayment(nil, amount, PaymentMethodCash, "", time.Now(), uuid.New())
	assert.Error(t, err)
}

func TestNewReceipt(t *testing.T) {
	inv := issuedInvoice(t)
	amount := valueobject.MustNewMoney(decimal.NewFromInt(850000), valueobject.NGN)
	p, err := NewPayment(inv, amount, PaymentMethodBankTransfer, "TRF/0091", time.Now(), uuid.New())
	require.NoError(t, err)

	r, err := NewReceipt("RCT-2026-0001", p, inv.InvoiceNumber)
	require.NoError(t, err)

	assert.Equal(t, p.ID, r.PaymentID)
	assert.Equal(t, inv.ID, r.InvoiceID)
	assert.Equal(t, inv.InvoiceNumber, r.InvoiceNumber)
	assert.True(t, r.Amount.Equal(p.Amount))
	assert.NotEmpty(t, r.ContentHash)
	assert.True(t, r.VerifyIntegrity())

	// Tampering with the sealed amount is detectable
	r.Amount = decimal.NewFromInt(1)
	assert.False(t, r.VerifyIntegrity())
}

func TestNewReceipt_Rejections(t *testing.T) {
	_, err := NewReceipt("", &Payment{}, "INV-2026-0001")
	assert.Error(t, err)

	_, err = NewReceipt("RCT-2026-0001", nil, "INV-2026-0001")
	assert.Error(t, err)
}
