package email

import (
	"bytes"
	"fmt"
	"html/template"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
)

var invoiceEmailTemplate = template.Must(template.New("invoice_email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto;">
    <h2 style="margin-bottom: 4px;">Invoice {{.InvoiceNumber}}</h2>
    <p style="margin-top: 0; color: #52606d;">from {{.BusinessName}}</p>
    <p>Hello {{.ClientName}},</p>
    <p>{{.BusinessName}} has sent you an invoice for <strong>{{.Currency}} {{.Total}}</strong>{{if .DueDate}}, due on {{.DueDate}}{{end}}.</p>
    <p>The invoice is attached as a PDF. You can confirm its authenticity at any time:</p>
    <p><a href="{{.VerificationURL}}" style="color: #2563eb;">{{.VerificationURL}}</a></p>
    <p style="color: #52606d; font-size: 13px;">The verification page recomputes the invoice fingerprint from its contents, so any alteration after issuance is detected.</p>
  </div>
</body>
</html>`))

func renderInvoiceHTML(mail appinvoicing.InvoiceEmail) string {
	var buf bytes.Buffer
	if err := invoiceEmailTemplate.Execute(&buf, mail); err != nil {
		// Template fields are all plain strings; an execute failure
		// means a programming error, fall back to the text body.
		return "<pre>" + template.HTMLEscapeString(renderInvoiceText(mail)) + "</pre>"
	}
	return buf.String()
}

func renderInvoiceText(mail appinvoicing.InvoiceEmail) string {
	due := ""
	if mail.DueDate != "" {
		due = fmt.Sprintf(", due on %s", mail.DueDate)
	}
	return fmt.Sprintf(
		"Hello %s,\n\n%s has sent you invoice %s for %s %s%s.\n\nThe invoice is attached as a PDF. Verify its authenticity at:\n%s\n",
		mail.ClientName, mail.BusinessName, mail.InvoiceNumber,
		mail.Currency, mail.Total, due, mail.VerificationURL,
	)
}
