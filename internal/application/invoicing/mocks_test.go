package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByVerificationID(ctx context.Context, verificationID string) (*invoicing.Invoice, error) {
	args := m.Called(ctx, verificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]invoicing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindIssuedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, businessID, accountID, from, to)
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountIssuedInPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, businessID, year)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCreditNoteRepository is a mock implementation of CreditNoteRepository
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.CreditNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*invoicing.CreditNote, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]invoicing.CreditNote, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]invoicing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) NextCreditNoteNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, businessID, year)
	return args.String(0), args.Error(1)
}

func (m *MockCreditNoteRepository) Save(ctx context.Context, creditNote *invoicing.CreditNote) error {
	args := m.Called(ctx, creditNote)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]invoicing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]invoicing.Payment, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]invoicing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *invoicing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockReceiptRepository is a mock implementation of ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*invoicing.Receipt, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]invoicing.Receipt, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]invoicing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) NextReceiptNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, businessID, year)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *invoicing.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

// MockCurrencyAccountRepository is a mock implementation of CurrencyAccountRepository
type MockCurrencyAccountRepository struct {
	mock.Mock
}

func (m *MockCurrencyAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindByCurrency(ctx context.Context, businessID uuid.UUID, currency valueobject.Currency) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindPrimary(ctx context.Context, businessID uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyAccountRepository) Save(ctx context.Context, account *ledger.CurrencyAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockBusinessRepository is a mock implementation of BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]identity.Business, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]identity.Business, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*billing.Subscription, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// MockUsageRepository is a mock implementation of UsageRepository
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) FindOrCreate(ctx context.Context, businessID uuid.UUID, feature billing.Feature, period string) (*billing.UsageCounter, error) {
	args := m.Called(ctx, businessID, feature, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) FindAllForPeriod(ctx context.Context, businessID uuid.UUID, period string) ([]billing.UsageCounter, error) {
	args := m.Called(ctx, businessID, period)
	return args.Get(0).([]billing.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) Save(ctx context.Context, counter *billing.UsageCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

// MockRecorder is a mock implementation of the audit Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]string) error {
	args := m.Called(ctx, businessID, actorID, action, entityType, entityID, metadata)
	return args.Error(0)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendInvoice(ctx context.Context, email InvoiceEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockRenderer is a mock implementation of DocumentRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderInvoice(ctx context.Context, req RenderRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
