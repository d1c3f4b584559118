package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
)

func TestInvoiceHTML(t *testing.T) {
	t.Run("renders all invoice sections", func(t *testing.T) {
		html, err := invoiceHTML(appinvoicing.RenderRequest{
			InvoiceNumber: "INV-2026-0007",
			Status:        "issued",
			IssuerName:    "Studio North",
			IssuerTaxID:   "NG-998877",
			IssuerEmail:   "billing@studionorth.test",
			ClientName:    "Acme Ltd",
			ClientEmail:   "accounts@acme.test",
			Currency:      "USD",
			LineItems: []appinvoicing.RenderLineItem{
				{Description: "Consulting", Quantity: "10", UnitPrice: "150.00", TaxRate: "7.5", Net: "1500.00", Tax: "112.50"},
			},
			Subtotal:        "1500.00",
			TaxTotal:        "112.50",
			Total:           "1612.50",
			IssuedAt:        "2026-03-14",
			DueDate:         "2026-04-13",
			VerificationID:  "v5Kq2xR9z",
			VerificationURL: "https://app.invoicemonk.test/verify/v5Kq2xR9z",
		})

		require.NoError(t, err)
		assert.Contains(t, html, "Invoice INV-2026-0007")
		assert.Contains(t, html, "Studio North")
		assert.Contains(t, html, "Acme Ltd")
		assert.Contains(t, html, "Consulting")
		assert.Contains(t, html, "USD 1612.50")
		assert.Contains(t, html, "verify/v5Kq2xR9z")
	})

	t.Run("escapes markup in client supplied fields", func(t *testing.T) {
		html, err := invoiceHTML(appinvoicing.RenderRequest{
			InvoiceNumber: "INV-2026-0008",
			Status:        "issued",
			IssuerName:    "Studio North",
			ClientName:    "<script>alert(1)</script>",
			Currency:      "USD",
			Subtotal:      "0.00",
			TaxTotal:      "0.00",
			Total:         "0.00",
		})

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}
