package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/report"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// ReportService generates financial reports over issued invoices and
// recorded expenses. All amounts are converted into the business's
// primary currency using the rate each document captured at creation.
type ReportService struct {
	invoiceRepo invoicing.InvoiceRepository
	expenseRepo expense.Repository
	accountRepo ledger.CurrencyAccountRepository
	logger      *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	invoiceRepo invoicing.InvoiceRepository,
	expenseRepo expense.Repository,
	accountRepo ledger.CurrencyAccountRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// GenerateInput is the request to generate a report
type GenerateInput struct {
	BusinessID  uuid.UUID
	Type        report.Type
	From        time.Time
	To          time.Time
	Granularity report.Granularity
	AccountID   *uuid.UUID
}

// Generate produces the requested report
func (s *ReportService) Generate(ctx context.Context, input GenerateInput) (*report.Result, error) {
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_REPORT_TYPE", "Unknown report type")
	}
	granularity := input.Granularity
	if granularity == "" {
		granularity = report.GranularityMonth
	}
	if !granularity.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRANULARITY", "Unknown report granularity")
	}
	period, err := report.NewPeriod(input.From, input.To)
	if err != nil {
		return nil, err
	}

	primary, err := s.accountRepo.FindPrimary(ctx, input.BusinessID)
	if err != nil {
		s.logger.Error("Failed to load primary account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load primary account")
	}

	result := &report.Result{
		BusinessID:  input.BusinessID,
		Type:        input.Type,
		Period:      period,
		Granularity: granularity,
		Currency:    primary.Currency,
		GeneratedAt: time.Now().UTC(),
	}

	switch input.Type {
	case report.TypeExpensesByCategory:
		err = s.fillExpensesByCategory(ctx, result, input.AccountID)
	case report.TypeRevenueByClient:
		err = s.fillRevenueByClient(ctx, result, input.AccountID)
	case report.TypeTaxSummary:
		err = s.fillTaxSummary(ctx, result, input.AccountID)
	default:
		err = s.fillRevenueByPeriod(ctx, result, input.AccountID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reportableInvoices loads issued invoices in the period, dropping
// voided and credited ones whose revenue was reversed
func (s *ReportService) reportableInvoices(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, period report.Period) ([]invoicing.Invoice, error) {
	invoices, err := s.invoiceRepo.FindIssuedInPeriod(ctx, businessID, accountID, period.From, period.To)
	if err != nil {
		s.logger.Error("Failed to load invoices for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load invoices")
	}
	return lo.Filter(invoices, func(i invoicing.Invoice, _ int) bool {
		return i.Status != invoicing.InvoiceStatusVoided && i.Status != invoicing.InvoiceStatusCredited
	}), nil
}

func (s *ReportService) fillRevenueByPeriod(ctx context.Context, result *report.Result, accountID *uuid.UUID) error {
	invoices, err := s.reportableInvoices(ctx, result.BusinessID, accountID, result.Period)
	if err != nil {
		return err
	}

	grouped := lo.GroupBy(invoices, func(i invoicing.Invoice) string {
		return result.Granularity.Bucket(*i.IssuedAt)
	})
	buckets := lo.Keys(grouped)
	sort.Strings(buckets)

	for _, bucket := range buckets {
		invoiced, collected := decimal.Zero, decimal.Zero
		for _, inv := range grouped[bucket] {
			invoiced = invoiced.Add(inv.Total().Mul(inv.RateToPrimary))
			collected = collected.Add(inv.AmountPaid.Mul(inv.RateToPrimary))
		}
		result.RevenueRows = append(result.RevenueRows, report.RevenueRow{
			Bucket:       bucket,
			InvoiceCount: len(grouped[bucket]),
			Invoiced:     valueobject.MustNewMoney(invoiced, result.Currency),
			Collected:    valueobject.MustNewMoney(collected, result.Currency),
			Outstanding:  valueobject.MustNewMoney(invoiced.Sub(collected), result.Currency),
		})
	}
	return nil
}

func (s *ReportService) fillRevenueByClient(ctx context.Context, result *report.Result, accountID *uuid.UUID) error {
	invoices, err := s.reportableInvoices(ctx, result.BusinessID, accountID, result.Period)
	if err != nil {
		return err
	}

	grouped := lo.GroupBy(invoices, func(i invoicing.Invoice) string {
		return i.Client.Name
	})

	for _, client := range lo.Keys(grouped) {
		invoiced, collected := decimal.Zero, decimal.Zero
		for _, inv := range grouped[client] {
			invoiced = invoiced.Add(inv.Total().Mul(inv.RateToPrimary))
			collected = collected.Add(inv.AmountPaid.Mul(inv.RateToPrimary))
		}
		result.ClientRows = append(result.ClientRows, report.ClientRow{
			ClientName:   client,
			InvoiceCount: len(grouped[client]),
			Invoiced:     valueobject.MustNewMoney(invoiced, result.Currency),
			Collected:    valueobject.MustNewMoney(collected, result.Currency),
		})
	}
	// Largest clients first
	sort.Slice(result.ClientRows, func(a, b int) bool {
		return result.ClientRows[a].Invoiced.Amount().GreaterThan(result.ClientRows[b].Invoiced.Amount())
	})
	return nil
}

func (s *ReportService) fillTaxSummary(ctx context.Context, result *report.Result, accountID *uuid.UUID) error {
	invoices, err := s.reportableInvoices(ctx, result.BusinessID, accountID, result.Period)
	if err != nil {
		return err
	}

	type taxAgg struct {
		base     decimal.Decimal
		tax      decimal.Decimal
		invoices map[uuid.UUID]struct{}
	}
	byRate := map[string]*taxAgg{}

	for idx := range invoices {
		inv := &invoices[idx]
		for _, li := range inv.LineItems {
			key := li.TaxRate.String()
			agg, ok := byRate[key]
			if !ok {
				agg = &taxAgg{invoices: map[uuid.UUID]struct{}{}}
				byRate[key] = agg
			}
			agg.base = agg.base.Add(li.Net().Mul(inv.RateToPrimary))
			agg.tax = agg.tax.Add(li.Tax().Mul(inv.RateToPrimary))
			agg.invoices[inv.ID] = struct{}{}
		}
	}

	rates := lo.Keys(byRate)
	sort.Slice(rates, func(a, b int) bool {
		return decimal.RequireFromString(rates[a]).LessThan(decimal.RequireFromString(rates[b]))
	})
	for _, rate := range rates {
		agg := byRate[rate]
		result.TaxRows = append(result.TaxRows, report.TaxRow{
			TaxRate:      decimal.RequireFromString(rate),
			InvoiceCount: len(agg.invoices),
			TaxableBase:  valueobject.MustNewMoney(agg.base, result.Currency),
			TaxCollected: valueobject.MustNewMoney(agg.tax, result.Currency),
		})
	}
	return nil
}

func (s *ReportService) fillExpensesByCategory(ctx context.Context, result *report.Result, accountID *uuid.UUID) error {
	expenses, err := s.expenseRepo.FindRecordedInPeriod(ctx, result.BusinessID, accountID, result.Period.From, result.Period.To)
	if err != nil {
		s.logger.Error("Failed to load expenses for report", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load expenses")
	}
	active := lo.Filter(expenses, func(e expense.Expense, _ int) bool {
		return e.Status == expense.StatusRecorded
	})

	grouped := lo.GroupBy(active, func(e expense.Expense) string {
		return e.Category.String()
	})
	categories := lo.Keys(grouped)
	sort.Strings(categories)

	for _, category := range categories {
		total := decimal.Zero
		for _, e := range grouped[category] {
			total = total.Add(e.Amount.Mul(e.RateToPrimary))
		}
		result.CategoryRows = append(result.CategoryRows, report.CategoryRow{
			Category:     category,
			ExpenseCount: len(grouped[category]),
			Total:        valueobject.MustNewMoney(total, result.Currency),
		})
	}
	return nil
}
