package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teris-io/shortid"
	"go.uber.org/zap"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// Verification IDs are unguessable short identifiers embedded in the
// public document and verification links
var verificationIDGenerator = shortid.MustNew(1, shortid.DefaultABC, 7354)

// InvoiceService drives the invoice lifecycle from draft through the
// terminal paid, voided and credited states
type InvoiceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	creditNoteRepo invoicing.CreditNoteRepository
	paymentRepo    invoicing.PaymentRepository
	receiptRepo    invoicing.ReceiptRepository
	accountRepo    ledger.CurrencyAccountRepository
	businessRepo   identity.BusinessRepository
	entitlements   *appbilling.EntitlementService
	auditor        appaudit.Recorder
	mailer         Mailer
	renderer       DocumentRenderer
	eventBus       shared.EventPublisher
	baseURL        string
	logger         *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	creditNoteRepo invoicing.CreditNoteRepository,
	paymentRepo invoicing.PaymentRepository,
	receiptRepo invoicing.ReceiptRepository,
	accountRepo ledger.CurrencyAccountRepository,
	businessRepo identity.BusinessRepository,
	entitlements *appbilling.EntitlementService,
	auditor appaudit.Recorder,
	mailer Mailer,
	renderer DocumentRenderer,
	eventBus shared.EventPublisher,
	baseURL string,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		creditNoteRepo: creditNoteRepo,
		paymentRepo:    paymentRepo,
		receiptRepo:    receiptRepo,
		accountRepo:    accountRepo,
		businessRepo:   businessRepo,
		entitlements:   entitlements,
		auditor:        auditor,
		mailer:         mailer,
		renderer:       renderer,
		eventBus:       eventBus,
		baseURL:        baseURL,
		logger:         logger,
	}
}

// LineItemInput describes one invoice line in create and update requests
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// ClientInput identifies the invoice recipient
type ClientInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// CreateDraftInput is the request to create a draft invoice
type CreateDraftInput struct {
	BusinessID        uuid.UUID
	ActorID           uuid.UUID
	CurrencyAccountID uuid.UUID       `json:"currency_account_id" binding:"required"`
	Client            ClientInput     `json:"client" binding:"required"`
	LineItems         []LineItemInput `json:"line_items" binding:"required,min=1"`
	Notes             string          `json:"notes"`
	DueDate           *time.Time      `json:"due_date"`
}

// UpdateDraftInput is the request to edit a draft invoice
type UpdateDraftInput struct {
	BusinessID uuid.UUID
	InvoiceID  uuid.UUID
	Client     ClientInput     `json:"client" binding:"required"`
	LineItems  []LineItemInput `json:"line_items" binding:"required,min=1"`
	Notes      string          `json:"notes"`
	DueDate    *time.Time      `json:"due_date"`
}

// RecordPaymentInput is the request to record money received against an
// issued invoice
type RecordPaymentInput struct {
	BusinessID uuid.UUID
	InvoiceID  uuid.UUID
	ActorID    uuid.UUID
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required"`
	Reference  string          `json:"reference"`
	PaidAt     *time.Time      `json:"paid_at"`
}

// PaymentResult bundles the payment with the receipt issued for it
type PaymentResult struct {
	Payment *PaymentDTO `json:"payment"`
	Receipt *ReceiptDTO `json:"receipt"`
	Invoice *InvoiceDTO `json:"invoice"`
}

func buildLineItems(inputs []LineItemInput) ([]invoicing.LineItem, error) {
	items := make([]invoicing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		li, err := invoicing.NewLineItem(in.Description, in.Quantity, in.UnitPrice, in.TaxRate)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

// CreateDraft creates a draft invoice against one of the business's
// currency accounts. Drafts are free to create at every tier; the
// invoice quota is checked at issuance.
func (s *InvoiceService) CreateDraft(ctx context.Context, input CreateDraftInput) (*InvoiceDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, input.BusinessID, input.CurrencyAccountID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to load currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load currency account")
	}
	if !account.CanCreateDocuments() {
		return nil, shared.NewDomainError("ACCOUNT_ARCHIVED", "Cannot create invoices on an archived account")
	}

	lineItems, err := buildLineItems(input.LineItems)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, input.BusinessID, time.Now().UTC().Year())
	if err != nil {
		s.logger.Error("Failed to reserve invoice number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reserve invoice number")
	}

	invoice, err := invoicing.NewInvoice(
		input.BusinessID,
		number,
		account.ID,
		account.Currency,
		account.ExchangeRateToPrimary,
		invoicing.ClientDetails{
			Name:    input.Client.Name,
			Email:   input.Client.Email,
			Address: input.Client.Address,
			TaxID:   input.Client.TaxID,
		},
		lineItems,
	)
	if err != nil {
		return nil, err
	}
	invoice.Notes = input.Notes
	invoice.DueDate = input.DueDate
	invoice.SetCreatedBy(input.ActorID)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()

	s.logger.Info("Draft invoice created",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber))

	return toInvoiceDTO(invoice), nil
}

// UpdateDraft replaces the client, lines, notes and due date of a draft
func (s *InvoiceService) UpdateDraft(ctx context.Context, input UpdateDraftInput) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, input.BusinessID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	lineItems, err := buildLineItems(input.LineItems)
	if err != nil {
		return nil, err
	}

	client := invoicing.ClientDetails{
		Name:    input.Client.Name,
		Email:   input.Client.Email,
		Address: input.Client.Address,
		TaxID:   input.Client.TaxID,
	}
	if err := invoice.UpdateDraft(client, lineItems, input.Notes, input.DueDate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	return toInvoiceDTO(invoice), nil
}

// DeleteDraft removes a draft invoice. Issued invoices are part of the
// compliance record and can only be voided.
func (s *InvoiceService) DeleteDraft(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}
	if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
		s.logger.Error("Failed to delete invoice", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete invoice")
	}
	return nil
}

// Issue seals a draft: it freezes the financial content, snapshots the
// issuer identity, assigns the verification ID and computes the content
// hash. Issuance counts against the tier's monthly invoice quota.
func (s *InvoiceService) Issue(ctx context.Context, businessID, invoiceID, actorID uuid.UUID) (*InvoiceDTO, error) {
	ent, err := s.entitlements.CheckMonthly(ctx, businessID, billing.FeatureInvoices, 1)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		s.logger.Error("Failed to load business", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load business")
	}

	verificationID, err := verificationIDGenerator.Generate()
	if err != nil {
		s.logger.Error("Failed to generate verification ID", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification ID")
	}

	snapshot := invoicing.IssuerSnapshot{
		BusinessName: business.Name,
		TaxID:        business.TaxID,
		Address:      business.Address,
		Email:        business.Email,
		Jurisdiction: business.Jurisdiction,
	}
	if err := invoice.Issue(verificationID, snapshot); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save issued invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	if err := s.entitlements.Consume(ctx, businessID, billing.FeatureInvoices, 1); err != nil {
		s.logger.Warn("Failed to consume invoice quota", zap.Error(err))
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()

	s.audit(ctx, businessID, &actorID, audit.ActionInvoiceIssued, invoice.ID, map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"content_hash":   invoice.ContentHash,
	})

	s.logger.Info("Invoice issued",
		zap.String("business_id", businessID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("verification_id", invoice.VerificationID))

	return toInvoiceDTO(invoice), nil
}

// Send renders the invoice PDF and emails it to the client with the
// public verification link. Sending counts against the tier's monthly
// email quota.
func (s *InvoiceService) Send(ctx context.Context, businessID, invoiceID, actorID uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanSend() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", invoice.Status))
	}
	if invoice.Client.Email == "" {
		return nil, shared.NewDomainError("MISSING_CLIENT_EMAIL", "Invoice client has no email address")
	}

	ent, err := s.entitlements.CheckMonthly(ctx, businessID, billing.FeatureEmailSends, 1)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderInvoice(ctx, s.renderRequest(invoice))
	if err != nil {
		s.logger.Error("Failed to render invoice PDF", zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render invoice document")
	}

	email := InvoiceEmail{
		To:              invoice.Client.Email,
		ClientName:      invoice.Client.Name,
		BusinessName:    invoice.Snapshot.BusinessName,
		InvoiceNumber:   invoice.InvoiceNumber,
		Total:           invoice.Total().StringFixed(invoice.Currency.DecimalPlaces()),
		Currency:        invoice.Currency.String(),
		VerificationURL: s.verificationURL(invoice.VerificationID),
		PDF:             pdf,
	}
	if invoice.DueDate != nil {
		email.DueDate = invoice.DueDate.Format("2006-01-02")
	}
	if err := s.mailer.SendInvoice(ctx, email); err != nil {
		s.logger.Error("Failed to send invoice email", zap.Error(err))
		return nil, shared.NewDomainError("SEND_FAILED", "Failed to send invoice email")
	}

	if err := invoice.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	if err := s.entitlements.Consume(ctx, businessID, billing.FeatureEmailSends, 1); err != nil {
		s.logger.Warn("Failed to consume email quota", zap.Error(err))
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()

	s.audit(ctx, businessID, &actorID, audit.ActionInvoiceSent, invoice.ID, map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"recipient":      invoice.Client.Email,
	})

	return toInvoiceDTO(invoice), nil
}

// MarkViewed records the first open of the public document link. The
// viewer is anonymous, so the audit entry carries no actor.
func (s *InvoiceService) MarkViewed(ctx context.Context, verificationID string) error {
	invoice, err := s.invoiceRepo.FindByVerificationID(ctx, verificationID)
	if err != nil {
		if shared.IsNotFound(err) {
			return err
		}
		s.logger.Error("Failed to load invoice by verification ID", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load invoice")
	}

	// Only the sent invoice transitions on an open; repeat opens and
	// opens of terminal-state invoices change nothing and record nothing
	wasSent := invoice.Status == invoicing.InvoiceStatusSent
	if err := invoice.MarkViewed(); err != nil {
		return err
	}
	if !wasSent {
		return nil
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()

	s.audit(ctx, invoice.BusinessID, nil, audit.ActionInvoiceViewed, invoice.ID, map[string]string{
		"invoice_number": invoice.InvoiceNumber,
	})

	return nil
}

// RecordPayment applies a payment to an issued invoice and issues the
// receipt for it in the same operation
func (s *InvoiceService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentResult, error) {
	invoice, err := s.findInvoice(ctx, input.BusinessID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	method := invoicing.PaymentMethod(input.Method)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	amount, err := valueobject.NewMoney(input.Amount, invoice.Currency)
	if err != nil {
		return nil, err
	}
	if err := invoice.ApplyPayment(amount); err != nil {
		return nil, err
	}

	paidAt := time.Now().UTC()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}
	payment, err := invoicing.NewPayment(invoice, amount, method, input.Reference, paidAt, input.ActorID)
	if err != nil {
		return nil, err
	}

	receiptNumber, err := s.receiptRepo.NextReceiptNumber(ctx, input.BusinessID, time.Now().UTC().Year())
	if err != nil {
		s.logger.Error("Failed to reserve receipt number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reserve receipt number")
	}
	receipt, err := invoicing.NewReceipt(receiptNumber, payment, invoice.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		s.logger.Error("Failed to save payment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save payment")
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to save receipt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save receipt")
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()
	s.publishEvents(ctx, payment.GetDomainEvents())
	payment.ClearDomainEvents()

	s.audit(ctx, input.BusinessID, &input.ActorID, audit.ActionPaymentRecorded, payment.ID, map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"amount":         payment.Amount.String(),
		"method":         string(payment.Method),
	})
	s.audit(ctx, input.BusinessID, &input.ActorID, audit.ActionReceiptIssued, receipt.ID, map[string]string{
		"receipt_number": receipt.ReceiptNumber,
		"invoice_number": invoice.InvoiceNumber,
	})

	s.logger.Info("Payment recorded",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("receipt_number", receipt.ReceiptNumber))

	return &PaymentResult{
		Payment: toPaymentDTO(payment),
		Receipt: toReceiptDTO(receipt),
		Invoice: toInvoiceDTO(invoice),
	}, nil
}

// VoidResult carries the voided invoice together with the credit note
// that cancels it
type VoidResult struct {
	Invoice    *InvoiceDTO    `json:"invoice"`
	CreditNote *CreditNoteDTO `json:"credit_note"`
}

// Void cancels an issued, unpaid invoice. Voiding always issues the
// credit note for the full amount in the same call, so the invoice
// never rests in the voided state without one; it lands in its
// credited terminal state.
func (s *InvoiceService) Void(ctx context.Context, businessID, invoiceID, actorID uuid.UUID, reason string) (*VoidResult, error) {
	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(reason); err != nil {
		return nil, err
	}

	number, err := s.creditNoteRepo.NextCreditNoteNumber(ctx, businessID, time.Now().UTC().Year())
	if err != nil {
		s.logger.Error("Failed to reserve credit note number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reserve credit note number")
	}

	creditNote, err := invoicing.NewCreditNote(number, invoice, reason)
	if err != nil {
		return nil, err
	}
	creditNote.SetCreatedBy(actorID)
	if err := invoice.LinkCreditNote(creditNote.ID); err != nil {
		return nil, err
	}

	if err := s.creditNoteRepo.Save(ctx, creditNote); err != nil {
		s.logger.Error("Failed to save credit note", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save credit note")
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save invoice")
	}

	s.publishEvents(ctx, invoice.GetDomainEvents())
	invoice.ClearDomainEvents()
	s.publishEvents(ctx, creditNote.GetDomainEvents())
	creditNote.ClearDomainEvents()

	s.audit(ctx, businessID, &actorID, audit.ActionInvoiceVoided, invoice.ID, map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"reason":         invoice.VoidReason,
	})
	s.audit(ctx, businessID, &actorID, audit.ActionCreditNoteIssued, creditNote.ID, map[string]string{
		"credit_note_number": creditNote.CreditNoteNumber,
		"invoice_number":     invoice.InvoiceNumber,
		"amount":             creditNote.Amount.String(),
	})

	s.logger.Info("Invoice voided and credited",
		zap.String("business_id", businessID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("credit_note_number", creditNote.CreditNoteNumber))

	return &VoidResult{
		Invoice:    toInvoiceDTO(invoice),
		CreditNote: toCreditNoteDTO(creditNote),
	}, nil
}

// Get returns one invoice scoped to the business
func (s *InvoiceService) Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceDTO(invoice), nil
}

// List returns invoices for the business with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, businessID uuid.UUID, filter invoicing.InvoiceFilter) ([]InvoiceDTO, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	invoices, total, err := s.invoiceRepo.FindAllForBusiness(ctx, businessID, filter)
	if err != nil {
		s.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list invoices")
	}
	dtos := make([]InvoiceDTO, 0, len(invoices))
	for idx := range invoices {
		dtos = append(dtos, *toInvoiceDTO(&invoices[idx]))
	}
	return dtos, total, nil
}

// ListPayments returns the payments recorded against one invoice
func (s *InvoiceService) ListPayments(ctx context.Context, businessID, invoiceID uuid.UUID) ([]PaymentDTO, error) {
	if _, err := s.findInvoice(ctx, businessID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list payments")
	}
	dtos := make([]PaymentDTO, 0, len(payments))
	for idx := range payments {
		dtos = append(dtos, *toPaymentDTO(&payments[idx]))
	}
	return dtos, nil
}

// GetCreditNote returns one credit note scoped to the business
func (s *InvoiceService) GetCreditNote(ctx context.Context, businessID, creditNoteID uuid.UUID) (*CreditNoteDTO, error) {
	cn, err := s.creditNoteRepo.FindByID(ctx, creditNoteID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to load credit note", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load credit note")
	}
	if cn.BusinessID != businessID {
		return nil, shared.ErrNotFound
	}
	return toCreditNoteDTO(cn), nil
}

// PublicVerify resolves an invoice by its verification ID and verifies
// its integrity by recomputing the content hash from the stored fields.
// A stored flag is never trusted; tampering with any frozen field after
// issuance makes the recomputed hash diverge.
func (s *InvoiceService) PublicVerify(ctx context.Context, verificationID string) (*VerificationDTO, error) {
	invoice, err := s.invoiceRepo.FindByVerificationID(ctx, verificationID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to load invoice by verification ID", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load invoice")
	}
	if invoice.Snapshot == nil || invoice.IssuedAt == nil {
		return nil, shared.ErrNotFound
	}

	return &VerificationDTO{
		InvoiceNumber: invoice.InvoiceNumber,
		IssuerName:    invoice.Snapshot.BusinessName,
		ClientName:    invoice.Client.Name,
		Currency:      invoice.Currency.String(),
		Total:         invoice.Total(),
		Status:        invoice.Status.String(),
		IssuedAt:      *invoice.IssuedAt,
		ContentHash:   invoice.ContentHash,
		HashValid:     invoice.VerifyIntegrity(),
	}, nil
}

// RenderPDF produces the PDF artifact for an issued invoice on demand
func (s *InvoiceService) RenderPDF(ctx context.Context, businessID, invoiceID uuid.UUID) ([]byte, string, error) {
	invoice, err := s.findInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if !invoice.Status.IsIssued() {
		return nil, "", shared.NewDomainError("INVALID_STATE", "Only issued invoices can be rendered")
	}
	pdf, err := s.renderer.RenderInvoice(ctx, s.renderRequest(invoice))
	if err != nil {
		s.logger.Error("Failed to render invoice PDF", zap.Error(err))
		return nil, "", shared.NewDomainError("RENDER_FAILED", "Failed to render invoice document")
	}
	return pdf, invoice.InvoiceNumber + ".pdf", nil
}

func (s *InvoiceService) findInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDForBusiness(ctx, businessID, invoiceID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to load invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) renderRequest(i *invoicing.Invoice) RenderRequest {
	places := i.Currency.DecimalPlaces()
	req := RenderRequest{
		InvoiceNumber:   i.InvoiceNumber,
		Status:          i.Status.String(),
		ClientName:      i.Client.Name,
		ClientEmail:     i.Client.Email,
		ClientAddress:   i.Client.Address,
		ClientTaxID:     i.Client.TaxID,
		Currency:        i.Currency.String(),
		Subtotal:        i.Subtotal().StringFixed(places),
		TaxTotal:        i.TaxTotal().StringFixed(places),
		Total:           i.Total().StringFixed(places),
		AmountPaid:      i.AmountPaid.StringFixed(places),
		Notes:           i.Notes,
		VerificationID:  i.VerificationID,
		VerificationURL: s.verificationURL(i.VerificationID),
	}
	if i.Snapshot != nil {
		req.IssuerName = i.Snapshot.BusinessName
		req.IssuerTaxID = i.Snapshot.TaxID
		req.IssuerAddress = i.Snapshot.Address
		req.IssuerEmail = i.Snapshot.Email
	}
	if i.IssuedAt != nil {
		req.IssuedAt = i.IssuedAt.Format("2006-01-02")
	}
	if i.DueDate != nil {
		req.DueDate = i.DueDate.Format("2006-01-02")
	}
	for _, li := range i.LineItems {
		req.LineItems = append(req.LineItems, RenderLineItem{
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			UnitPrice:   li.UnitPrice.StringFixed(places),
			TaxRate:     li.TaxRate.String(),
			Net:         li.Net().StringFixed(places),
			Tax:         li.Tax().StringFixed(places),
		})
	}
	return req
}

func (s *InvoiceService) verificationURL(verificationID string) string {
	return s.baseURL + "/verify/" + verificationID
}

func (s *InvoiceService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}

func (s *InvoiceService) audit(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityID uuid.UUID, metadata map[string]string) {
	entityType := "invoice"
	switch action {
	case audit.ActionPaymentRecorded:
		entityType = "payment"
	case audit.ActionReceiptIssued:
		entityType = "receipt"
	case audit.ActionCreditNoteIssued:
		entityType = "credit_note"
	}
	if err := s.auditor.Record(ctx, businessID, actorID, action, entityType, entityID, metadata); err != nil {
		s.logger.Warn("Failed to record audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
