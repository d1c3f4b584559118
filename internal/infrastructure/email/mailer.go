package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
	"github.com/invoicemonk/backend/internal/infrastructure/config"
)

// ResendMailer sends invoice emails through the Resend API
type ResendMailer struct {
	client      *resend.Client
	fromName    string
	fromAddress string
	replyTo     string
	logger      *zap.Logger
}

// NewResendMailer creates a mailer for the given configuration
func NewResendMailer(cfg config.EmailConfig, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client:      resend.NewClient(cfg.APIKey),
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		replyTo:     cfg.ReplyTo,
		logger:      logger,
	}
}

// SendInvoice delivers the invoice email with the PDF attached
func (m *ResendMailer) SendInvoice(ctx context.Context, mail appinvoicing.InvoiceEmail) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress),
		To:      []string{mail.To},
		Subject: fmt.Sprintf("Invoice %s from %s", mail.InvoiceNumber, mail.BusinessName),
		Html:    renderInvoiceHTML(mail),
		Text:    renderInvoiceText(mail),
	}
	if m.replyTo != "" {
		params.ReplyTo = m.replyTo
	}
	if len(mail.PDF) > 0 {
		params.Attachments = []*resend.Attachment{{
			Filename: fmt.Sprintf("%s.pdf", mail.InvoiceNumber),
			Content:  mail.PDF,
		}}
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}

	m.logger.Info("invoice email sent",
		zap.String("invoice_number", mail.InvoiceNumber),
		zap.String("recipient", mail.To),
		zap.String("message_id", sent.Id),
	)
	return nil
}

var _ appinvoicing.Mailer = (*ResendMailer)(nil)

// DisabledMailer is used when outbound email is turned off. Sends are
// logged and reported as failures so callers surface the condition.
type DisabledMailer struct {
	logger *zap.Logger
}

// NewDisabledMailer creates a mailer that refuses to send
func NewDisabledMailer(logger *zap.Logger) *DisabledMailer {
	return &DisabledMailer{logger: logger}
}

// SendInvoice always fails
func (m *DisabledMailer) SendInvoice(ctx context.Context, mail appinvoicing.InvoiceEmail) error {
	m.logger.Warn("outbound email is disabled, invoice not sent",
		zap.String("invoice_number", mail.InvoiceNumber),
		zap.String("recipient", mail.To),
	)
	return fmt.Errorf("outbound email is disabled")
}

var _ appinvoicing.Mailer = (*DisabledMailer)(nil)

// NewMailer returns the Resend mailer when email is enabled and
// configured, otherwise the disabled mailer
func NewMailer(cfg config.EmailConfig, logger *zap.Logger) appinvoicing.Mailer {
	if !cfg.Enabled || cfg.APIKey == "" {
		return NewDisabledMailer(logger)
	}
	return NewResendMailer(cfg, logger)
}
