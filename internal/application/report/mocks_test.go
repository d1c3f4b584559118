package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
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

// MockExpenseRepository is a mock implementation of expense.Repository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter expense.Filter) ([]expense.Expense, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]expense.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) FindRecordedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]expense.Expense, error) {
	args := m.Called(ctx, businessID, accountID, from, to)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) NextExpenseNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, businessID, year)
	return args.String(0), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
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

// MockEntryRepository is a mock implementation of audit EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) LatestForBusiness(ctx context.Context, businessID uuid.UUID) (*audit.Entry, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter audit.EntryFilter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindChain(ctx context.Context, businessID uuid.UUID) ([]audit.Entry, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockManifestRepository is a mock implementation of audit ManifestRepository
type MockManifestRepository struct {
	mock.Mock
}

func (m *MockManifestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.ExportManifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.ExportManifest), args.Error(1)
}

func (m *MockManifestRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]audit.ExportManifest, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]audit.ExportManifest), args.Error(1)
}

func (m *MockManifestRepository) Save(ctx context.Context, manifest *audit.ExportManifest) error {
	args := m.Called(ctx, manifest)
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
