package docgen

import (
	"bytes"
	"fmt"
	"html/template"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
)

var invoiceDocumentTemplate = template.Must(template.New("invoice_pdf").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; font-size: 12px; margin: 0; }
  .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .header h1 { font-size: 22px; margin: 0 0 4px 0; }
  .muted { color: #52606d; }
  .parties { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .party { max-width: 45%; }
  .party h3 { font-size: 11px; text-transform: uppercase; letter-spacing: 0.05em; color: #52606d; margin: 0 0 6px 0; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  th { text-align: left; font-size: 11px; text-transform: uppercase; letter-spacing: 0.05em; color: #52606d; border-bottom: 1px solid #cbd2d9; padding: 6px 8px; }
  td { padding: 6px 8px; border-bottom: 1px solid #e4e7eb; }
  .num { text-align: right; }
  .totals { width: 280px; margin-left: auto; }
  .totals td { border: none; padding: 3px 8px; }
  .totals .grand td { border-top: 1px solid #cbd2d9; font-weight: bold; font-size: 14px; }
  .status { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 11px; text-transform: uppercase; background: #e4e7eb; }
  .verify { margin-top: 32px; padding-top: 12px; border-top: 1px solid #e4e7eb; font-size: 10px; color: #52606d; }
  .notes { margin-top: 16px; white-space: pre-wrap; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <h1>Invoice {{.InvoiceNumber}}</h1>
      {{if .IssuedAt}}<div class="muted">Issued {{.IssuedAt}}</div>{{end}}
      {{if .DueDate}}<div class="muted">Due {{.DueDate}}</div>{{end}}
    </div>
    <div><span class="status">{{.Status}}</span></div>
  </div>
  <div class="parties">
    <div class="party">
      <h3>From</h3>
      <div><strong>{{.IssuerName}}</strong></div>
      {{if .IssuerAddress}}<div>{{.IssuerAddress}}</div>{{end}}
      {{if .IssuerEmail}}<div>{{.IssuerEmail}}</div>{{end}}
      {{if .IssuerTaxID}}<div class="muted">Tax ID: {{.IssuerTaxID}}</div>{{end}}
    </div>
    <div class="party">
      <h3>Bill to</h3>
      <div><strong>{{.ClientName}}</strong></div>
      {{if .ClientAddress}}<div>{{.ClientAddress}}</div>{{end}}
      {{if .ClientEmail}}<div>{{.ClientEmail}}</div>{{end}}
      {{if .ClientTaxID}}<div class="muted">Tax ID: {{.ClientTaxID}}</div>{{end}}
    </div>
  </div>
  <table>
    <thead>
      <tr>
        <th>Description</th>
        <th class="num">Qty</th>
        <th class="num">Unit price</th>
        <th class="num">Tax</th>
        <th class="num">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range .LineItems}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPrice}}</td>
        <td class="num">{{.TaxRate}}%</td>
        <td class="num">{{.Net}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Currency}} {{.Subtotal}}</td></tr>
    <tr><td>Tax</td><td class="num">{{.Currency}} {{.TaxTotal}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{.Currency}} {{.Total}}</td></tr>
    {{if .AmountPaid}}<tr><td>Paid</td><td class="num">{{.Currency}} {{.AmountPaid}}</td></tr>{{end}}
  </table>
  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
  {{if .VerificationURL}}
  <div class="verify">
    Verify this invoice at {{.VerificationURL}}<br>
    Verification code: {{.VerificationID}}
  </div>
  {{end}}
</body>
</html>`))

// invoiceHTML renders the printable invoice document
func invoiceHTML(req appinvoicing.RenderRequest) (string, error) {
	var buf bytes.Buffer
	if err := invoiceDocumentTemplate.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}
