package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/report"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

type exportMocks struct {
	invoiceRepo  *MockInvoiceRepository
	expenseRepo  *MockExpenseRepository
	accountRepo  *MockCurrencyAccountRepository
	entryRepo    *MockEntryRepository
	manifestRepo *MockManifestRepository
	subRepo      *MockSubscriptionRepository
	usageRepo    *MockUsageRepository
}

func newExportService(t *testing.T) (*ExportService, *exportMocks) {
	t.Helper()
	m := &exportMocks{
		invoiceRepo:  new(MockInvoiceRepository),
		expenseRepo:  new(MockExpenseRepository),
		accountRepo:  new(MockCurrencyAccountRepository),
		entryRepo:    new(MockEntryRepository),
		manifestRepo: new(MockManifestRepository),
		subRepo:      new(MockSubscriptionRepository),
		usageRepo:    new(MockUsageRepository),
	}
	reports := NewReportService(m.invoiceRepo, m.expenseRepo, m.accountRepo, zap.NewNop())
	entitlements := appbilling.NewEntitlementService(m.subRepo, m.usageRepo, zap.NewNop())
	audits := appaudit.NewService(m.entryRepo, m.manifestRepo, zap.NewNop())
	return NewExportService(reports, entitlements, audits, zap.NewNop()), m
}

func subscription(t *testing.T, businessID uuid.UUID, tier billing.Tier) *billing.Subscription {
	t.Helper()
	sub, err := billing.NewSubscription(businessID, tier)
	require.NoError(t, err)
	return sub
}

func usage(t *testing.T, businessID uuid.UUID, used int64) *billing.UsageCounter {
	t.Helper()
	counter, err := billing.NewUsageCounter(businessID, billing.FeatureExports, "2026-09")
	require.NoError(t, err)
	counter.Used = used
	return counter
}

func TestExportService_ExportCSV(t *testing.T) {
	svc, m := newExportService(t)
	businessID := uuid.New()
	actorID := uuid.New()
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	inv := issuedInvoice(t, businessID, "Acme Ltd", 100, "2", march)

	m.subRepo.On("FindByBusinessID", mock.Anything, businessID).
		Return(subscription(t, businessID, billing.TierProfessional), nil)
	m.usageRepo.On("FindOrCreate", mock.Anything, businessID, billing.FeatureExports, mock.AnythingOfType("string")).
		Return(usage(t, businessID, 2), nil)
	m.usageRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.UsageCounter")).Return(nil)
	m.accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	m.invoiceRepo.On("FindIssuedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]invoicing.Invoice{inv}, nil)
	m.entryRepo.On("LatestForBusiness", mock.Anything, businessID).Return(nil, nil)
	m.entryRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

	var savedManifest *audit.ExportManifest
	m.manifestRepo.On("Save", mock.Anything, mock.AnythingOfType("*audit.ExportManifest")).
		Run(func(args mock.Arguments) { savedManifest = args.Get(1).(*audit.ExportManifest) }).
		Return(nil)

	export, err := svc.Export(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeRevenueByPeriod,
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}, FormatCSV, actorID)

	require.NoError(t, err)
	assert.Equal(t, "revenue_by_period_20260301_20260331.csv", export.Filename)

	lines := strings.Split(strings.TrimSpace(string(export.Content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "period,invoice_count,invoiced,collected,outstanding,currency", lines[0])
	assert.Equal(t, "2026-03,1,200.00,0.00,200.00,NGN", lines[1])

	sum := sha256.Sum256(export.Content)
	assert.Equal(t, hex.EncodeToString(sum[:]), export.Manifest.ContentDigest)
	require.NotNil(t, savedManifest)
	assert.Equal(t, 1, savedManifest.RowCount)
	assert.Equal(t, "csv", savedManifest.Scope.Format)
	m.usageRepo.AssertExpectations(t)
	m.entryRepo.AssertExpectations(t)
}

func TestExportService_ExportJSON(t *testing.T) {
	svc, m := newExportService(t)
	businessID := uuid.New()
	actorID := uuid.New()
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	inv := issuedInvoice(t, businessID, "Acme Ltd", 100, "2", march)

	m.subRepo.On("FindByBusinessID", mock.Anything, businessID).
		Return(subscription(t, businessID, billing.TierProfessional), nil)
	m.usageRepo.On("FindOrCreate", mock.Anything, businessID, billing.FeatureExports, mock.AnythingOfType("string")).
		Return(usage(t, businessID, 2), nil)
	m.usageRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.UsageCounter")).Return(nil)
	m.accountRepo.On("FindPrimary", mock.Anything, businessID).Return(primaryAccount(t, businessID), nil)
	m.invoiceRepo.On("FindIssuedInPeriod", mock.Anything, businessID, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]invoicing.Invoice{inv}, nil)
	m.entryRepo.On("LatestForBusiness", mock.Anything, businessID).Return(nil, nil)
	m.entryRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

	var savedManifest *audit.ExportManifest
	m.manifestRepo.On("Save", mock.Anything, mock.AnythingOfType("*audit.ExportManifest")).
		Run(func(args mock.Arguments) { savedManifest = args.Get(1).(*audit.ExportManifest) }).
		Return(nil)

	export, err := svc.Export(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeRevenueByPeriod,
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}, FormatJSON, actorID)

	require.NoError(t, err)
	assert.Equal(t, "revenue_by_period_20260301_20260331.json", export.Filename)

	var doc struct {
		ReportType string `json:"report_type"`
		Currency   string `json:"currency"`
		Rows       []struct {
			Period      string `json:"period"`
			Invoiced    string `json:"invoiced"`
			Outstanding string `json:"outstanding"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(export.Content, &doc))
	assert.Equal(t, "revenue_by_period", doc.ReportType)
	assert.Equal(t, "NGN", doc.Currency)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "2026-03", doc.Rows[0].Period)
	assert.Equal(t, "200.00", doc.Rows[0].Invoiced)
	assert.Equal(t, "200.00", doc.Rows[0].Outstanding)

	// the manifest digests the JSON bytes exactly as served
	sum := sha256.Sum256(export.Content)
	assert.Equal(t, hex.EncodeToString(sum[:]), export.Manifest.ContentDigest)
	require.NotNil(t, savedManifest)
	assert.Equal(t, 1, savedManifest.RowCount)
	assert.Equal(t, "json", savedManifest.Scope.Format)
	m.usageRepo.AssertExpectations(t)
	m.entryRepo.AssertExpectations(t)
}

func TestParseFormat(t *testing.T) {
	t.Run("defaults to csv", func(t *testing.T) {
		format, err := ParseFormat("")
		require.NoError(t, err)
		assert.Equal(t, FormatCSV, format)
	})

	t.Run("json", func(t *testing.T) {
		format, err := ParseFormat("json")
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, format)
		assert.Equal(t, "application/json", format.ContentType())
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := ParseFormat("xlsx")
		require.Error(t, err)
		assert.Equal(t, "INVALID_FORMAT", err.(*shared.DomainError).Code)
	})
}

func TestExportService_StarterTierDenied(t *testing.T) {
	svc, m := newExportService(t)
	businessID := uuid.New()

	m.subRepo.On("FindByBusinessID", mock.Anything, businessID).
		Return(subscription(t, businessID, billing.TierStarter), nil)

	_, err := svc.Export(context.Background(), GenerateInput{
		BusinessID: businessID,
		Type:       report.TypeRevenueByPeriod,
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}, FormatCSV, uuid.New())

	require.Error(t, err)
	assert.Equal(t, shared.CodeUpgradeRequired, err.(*shared.DomainError).Code)
	m.accountRepo.AssertNotCalled(t, "FindPrimary", mock.Anything, mock.Anything)
	m.usageRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.manifestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEncodeCSV_ExpensesByCategory(t *testing.T) {
	result := &report.Result{
		Type:     report.TypeExpensesByCategory,
		Currency: valueobject.Currency("NGN"),
		CategoryRows: []report.CategoryRow{
			{Category: "rent", ExpenseCount: 1, Total: valueobject.MustNewMoney(decimal.NewFromInt(1000), valueobject.Currency("NGN"))},
			{Category: "software", ExpenseCount: 2, Total: valueobject.MustNewMoney(decimal.RequireFromString("100.5"), valueobject.Currency("NGN"))},
		},
	}

	content, err := EncodeCSV(result)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "category,expense_count,total,currency", lines[0])
	assert.Equal(t, "rent,1,1000.00,NGN", lines[1])
	assert.Equal(t, "software,2,100.50,NGN", lines[2])
}
