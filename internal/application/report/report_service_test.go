package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/report"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

func newReportService(t *testing.T) (*ReportService, *MockInvoiceRepository, *MockExpenseRepository, *MockCurrencyAccountRepository) {
	t.Helper()
	invoiceRepo := new(MockInvoiceRepository)
	expenseRepo := new(MockExpenseRepository)
	accountRepo := new(MockCurrencyAccountRepository)
	svc := NewReportService(invoiceRepo, expenseRepo, accountRepo, zap.NewNop())
	return svc, invoiceRepo, expenseRepo, accountRepo
}

func primaryAccount(t *testing.T, businessID uuid.UUID) *ledger.CurrencyAccount {
	t.Helper()
	account, err := ledger.NewCurrencyAccount(businessID, "NGN account", valueobject.Currency("NGN"), true, decimal.NewFromInt(1))
	require.NoError(t, err)
	return account
}

// issuedInvoice builds an issued invoice with a single zero-tax line
// and pins its issue date for bucketing
func issuedInvoice(t *testing.T, businessID uuid.UUID, client string, total int64, rate string, issuedAt time.Time) invoicing.Invoice {
	t.Helper()
	li, err := invoicing.NewLineItem("Work", decimal.NewFromInt(1), decimal.NewFromInt(total), decimal.Zero)
	require.NoError(t, err)
	inv, err := invoicing.NewInvoice(
		businessID, "INV-2026-0001", uuid.New(), valueobject.Currency("USD"), decimal.RequireFromString(rate),
		invoicing.ClientDetails{Name: client}, []invoicing.LineItem{li},
	)
	require.NoError(t, err)
	require.NoError(t, inv.Issue("vrf"+uuid.NewString()[:8], invoicing.IssuerSnapshot{BusinessName: "Studio North", Jurisdiction: "NG"}))
	inv.IssuedAt = &issuedAt
	return *inv
}

func recordedExpense(t *testing.T, businessID uuid.UUID, category expense.Category, amount int64, rate string) expense.Expense {
	t.Helper()
	e, err := expense.NewExpense(
		businessID, "EXP-2026-0001", uuid.New(), valueobject.Currency("USD"),
		decimal.RequireFromString(rate), category,
		valueobject.MustNewMoney(decimal.NewFromInt(amount), valueobject.Currency("USD")),
		"expense", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return *e
}

func TestReportService_RevenueByPeriod(t *testing.T) {
	svc, invoiceRepo, _, accountRepo := newReportService(t)
	businessID := uuid.New()

	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	paid := issuedInvoice(t, businessID, "Acme Ltd", 100, "2", march)
	require.NoError(t, paid.ApplyPayment(valueobject.MustNewMoney(decimal.NewFromInt(100), paid.Currency)))
	open := issuedInvoice(t, businessID, "Beta GmbH", 50, "2", march)
	late := issuedInvoice(t, businessID, "Acme Ltd", 40, "2", april)
	voided := issuedInvoice(t, businessID, "Gone Inc", 999, "2", march)
	require.NoError(t, voided.Void("duplicate"))

	accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	invoiceRepo.On("FindIssuedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]invoicing.Invoice{paid, open, late, voided}, nil)

	result, err := svc.Generate(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeRevenueByPeriod,
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, result.RevenueRows, 2)
	assert.Equal(t, "NGN", result.Currency.String())

	marchRow := result.RevenueRows[0]
	assert.Equal(t, "2026-03", marchRow.Bucket)
	assert.Equal(t, 2, marchRow.InvoiceCount)
	assert.True(t, marchRow.Invoiced.Amount().Equal(decimal.NewFromInt(300)))
	assert.True(t, marchRow.Collected.Amount().Equal(decimal.NewFromInt(200)))
	assert.True(t, marchRow.Outstanding.Amount().Equal(decimal.NewFromInt(100)))

	aprilRow := result.RevenueRows[1]
	assert.Equal(t, "2026-04", aprilRow.Bucket)
	assert.True(t, aprilRow.Invoiced.Amount().Equal(decimal.NewFromInt(80)))
}

func TestReportService_RevenueByClient(t *testing.T) {
	svc, invoiceRepo, _, accountRepo := newReportService(t)
	businessID := uuid.New()
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	big := issuedInvoice(t, businessID, "Acme Ltd", 500, "1", march)
	small := issuedInvoice(t, businessID, "Beta GmbH", 100, "1", march)

	accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	invoiceRepo.On("FindIssuedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]invoicing.Invoice{small, big}, nil)

	result, err := svc.Generate(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeRevenueByClient,
		From:       march,
		To:         march.AddDate(0, 1, 0),
	})

	require.NoError(t, err)
	require.Len(t, result.ClientRows, 2)
	assert.Equal(t, "Acme Ltd", result.ClientRows[0].ClientName)
	assert.True(t, result.ClientRows[0].Invoiced.Amount().Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Beta GmbH", result.ClientRows[1].ClientName)
}

func TestReportService_TaxSummary(t *testing.T) {
	svc, invoiceRepo, _, accountRepo := newReportService(t)
	businessID := uuid.New()
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	standard, err := invoicing.NewLineItem("Taxed work", decimal.NewFromInt(1), decimal.NewFromInt(200), decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	exempt, err := invoicing.NewLineItem("Exempt work", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)
	inv, err := invoicing.NewInvoice(
		businessID, "INV-2026-0009", uuid.New(), valueobject.Currency("NGN"), decimal.NewFromInt(1),
		invoicing.ClientDetails{Name: "Acme Ltd"}, []invoicing.LineItem{standard, exempt},
	)
	require.NoError(t, err)
	require.NoError(t, inv.Issue("vrfTax01", invoicing.IssuerSnapshot{BusinessName: "Studio North", Jurisdiction: "NG"}))
	inv.IssuedAt = &march

	accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	invoiceRepo.On("FindIssuedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]invoicing.Invoice{*inv}, nil)

	result, err := svc.Generate(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeTaxSummary,
		From:       march,
		To:         march.AddDate(0, 1, 0),
	})

	require.NoError(t, err)
	require.Len(t, result.TaxRows, 2)
	assert.True(t, result.TaxRows[0].TaxRate.IsZero())
	assert.True(t, result.TaxRows[0].TaxableBase.Amount().Equal(decimal.NewFromInt(100)))
	assert.True(t, result.TaxRows[1].TaxRate.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, result.TaxRows[1].TaxableBase.Amount().Equal(decimal.NewFromInt(200)))
	assert.True(t, result.TaxRows[1].TaxCollected.Amount().Equal(decimal.NewFromInt(15)))
}

func TestReportService_ExpensesByCategory(t *testing.T) {
	svc, _, expenseRepo, accountRepo := newReportService(t)
	businessID := uuid.New()

	rent := recordedExpense(t, businessID, expense.CategoryRent, 1000, "1")
	software := recordedExpense(t, businessID, expense.CategorySoftware, 30, "2")
	moreSoftware := recordedExpense(t, businessID, expense.CategorySoftware, 20, "2")
	cancelled := recordedExpense(t, businessID, expense.CategoryTravel, 400, "1")
	require.NoError(t, cancelled.Cancel("booked twice"))

	accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	expenseRepo.On("FindRecordedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]expense.Expense{rent, software, moreSoftware, cancelled}, nil)

	result, err := svc.Generate(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeExpensesByCategory,
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, result.CategoryRows, 2)
	assert.Equal(t, "rent", result.CategoryRows[0].Category)
	assert.True(t, result.CategoryRows[0].Total.Amount().Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "software", result.CategoryRows[1].Category)
	assert.Equal(t, 2, result.CategoryRows[1].ExpenseCount)
	assert.True(t, result.CategoryRows[1].Total.Amount().Equal(decimal.NewFromInt(100)))
}

func TestReportService_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := newReportService(t)

	_, err := svc.Generate(context.Background(), GenerateInput{
		BusinessID: uuid.New(),
		Type:       report.TypeRevenueByPeriod,
		From:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
}
