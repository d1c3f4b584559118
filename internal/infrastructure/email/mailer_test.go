package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
	"github.com/invoicemonk/backend/internal/infrastructure/config"
)

func TestNewMailer(t *testing.T) {
	t.Run("returns disabled mailer when email is off", func(t *testing.T) {
		mailer := NewMailer(config.EmailConfig{Enabled: false}, zap.NewNop())
		_, ok := mailer.(*DisabledMailer)
		assert.True(t, ok)
	})

	t.Run("returns disabled mailer without API key", func(t *testing.T) {
		mailer := NewMailer(config.EmailConfig{Enabled: true}, zap.NewNop())
		_, ok := mailer.(*DisabledMailer)
		assert.True(t, ok)
	})

	t.Run("returns resend mailer when configured", func(t *testing.T) {
		mailer := NewMailer(config.EmailConfig{
			Enabled:     true,
			APIKey:      "re_test_key",
			FromName:    "Invoicemonk",
			FromAddress: "invoices@invoicemonk.test",
		}, zap.NewNop())
		_, ok := mailer.(*ResendMailer)
		assert.True(t, ok)
	})
}

func TestDisabledMailer_SendInvoice(t *testing.T) {
	mailer := NewDisabledMailer(zap.NewNop())

	err := mailer.SendInvoice(context.Background(), appinvoicing.InvoiceEmail{
		To:            "billing@acme.test",
		InvoiceNumber: "INV-2026-0001",
	})

	assert.Error(t, err)
}

func TestRenderInvoiceBodies(t *testing.T) {
	mail := appinvoicing.InvoiceEmail{
		To:              "billing@acme.test",
		ClientName:      "Acme Ltd",
		BusinessName:    "Studio North",
		InvoiceNumber:   "INV-2026-0007",
		Total:           "1612.50",
		Currency:        "USD",
		DueDate:         "2026-04-15",
		VerificationURL: "https://app.invoicemonk.test/verify/v5Kq2xR9z",
	}

	html := renderInvoiceHTML(mail)
	assert.Contains(t, html, "INV-2026-0007")
	assert.Contains(t, html, "Studio North")
	assert.Contains(t, html, "https://app.invoicemonk.test/verify/v5Kq2xR9z")
	assert.Contains(t, html, "due on 2026-04-15")

	text := renderInvoiceText(mail)
	assert.Contains(t, text, "USD 1612.50")
	assert.Contains(t, text, "verify/v5Kq2xR9z")
}
