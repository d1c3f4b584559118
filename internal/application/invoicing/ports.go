package invoicing

import "context"

// InvoiceEmail is the outbound message sent when an invoice is issued
// to a client
type InvoiceEmail struct {
	To              string
	ClientName      string
	BusinessName    string
	InvoiceNumber   string
	Total           string
	Currency        string
	DueDate         string
	VerificationURL string
	PDF             []byte
}

// Mailer delivers invoice emails. The production implementation sends
// through Resend; a disabled implementation is used when outbound email
// is turned off.
type Mailer interface {
	SendInvoice(ctx context.Context, email InvoiceEmail) error
}

// RenderRequest carries everything the document renderer needs to
// produce an invoice PDF
type RenderRequest struct {
	InvoiceNumber   string
	Status          string
	IssuerName      string
	IssuerTaxID     string
	IssuerAddress   string
	IssuerEmail     string
	ClientName      string
	ClientEmail     string
	ClientAddress   string
	ClientTaxID     string
	Currency        string
	LineItems       []RenderLineItem
	Subtotal        string
	TaxTotal        string
	Total           string
	AmountPaid      string
	Notes           string
	IssuedAt        string
	DueDate         string
	VerificationID  string
	VerificationURL string
}

// RenderLineItem is one invoice line in a rendered document
type RenderLineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	TaxRate     string
	Net         string
	Tax         string
}

// DocumentRenderer produces the PDF artifact for an issued invoice
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, req RenderRequest) ([]byte, error)
}
