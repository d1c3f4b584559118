package report

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies a report kind
type Type string

const (
	TypeRevenueByPeriod    Type = "revenue_by_period"
	TypeExpensesByCategory Type = "expenses_by_category"
	TypeRevenueByClient    Type = "revenue_by_client"
	TypeTaxSummary         Type = "tax_summary"
)

// IsValid checks if the report type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeRevenueByPeriod, TypeExpensesByCategory, TypeRevenueByClient, TypeTaxSummary:
		return true
	}
	return false
}

// String returns the string representation of the report type
func (t Type) String() string {
	return string(t)
}

// Granularity controls how revenue periods are bucketed
type Granularity string

const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// IsValid checks if the granularity is known
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityMonth, GranularityQuarter, GranularityYear:
		return true
	}
	return false
}

// Period is an inclusive date range. Reports operate on issue and
// expense dates, never creation timestamps.
type Period struct {
	From time.Time
	To   time.Time
}

// NewPeriod validates and builds a report period
func NewPeriod(from, to time.Time) (Period, error) {
	if from.IsZero() || to.IsZero() {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Report period requires both dates")
	}
	if to.Before(from) {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Report period end cannot precede its start")
	}
	return Period{From: from, To: to}, nil
}

// Contains reports whether d falls inside the period
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.From) && !d.After(p.To)
}

// Bucket returns the label for the granularity bucket d falls in,
// e.g. "2026-03", "2026-Q1" or "2026".
func (g Granularity) Bucket(d time.Time) string {
	switch g {
	case GranularityQuarter:
		q := (int(d.Month())-1)/3 + 1
		return d.Format("2006") + "-Q" + string(rune('0'+q))
	case GranularityYear:
		return d.Format("2006")
	default:
		return d.Format("2006-01")
	}
}

// RevenueRow is one bucket of the revenue-by-period report. Amounts
// are converted into the business's primary currency at each document's
// account rate.
type RevenueRow struct {
	Bucket       string
	InvoiceCount int
	Invoiced     valueobject.Money
	Collected    valueobject.Money
	Outstanding  valueobject.Money
}

// CategoryRow is one bucket of the expenses-by-category report
type CategoryRow struct {
	Category     string
	ExpenseCount int
	Total        valueobject.Money
}

// ClientRow is one bucket of the revenue-by-client report
type ClientRow struct {
	ClientName   string
	InvoiceCount int
	Invoiced     valueobject.Money
	Collected    valueobject.Money
}

// TaxRow is one bucket of the tax summary, grouped by applied rate
type TaxRow struct {
	TaxRate      decimal.Decimal
	InvoiceCount int
	TaxableBase  valueobject.Money
	TaxCollected valueobject.Money
}

// Result carries any generated report plus the inputs that produced it
type Result struct {
	BusinessID  uuid.UUID
	Type        Type
	Period      Period
	Granularity Granularity
	Currency    valueobject.Currency
	GeneratedAt time.Time

	RevenueRows  []RevenueRow
	CategoryRows []CategoryRow
	ClientRows   []ClientRow
	TaxRows      []TaxRow
}

// RowCount returns the number of rows in the populated section
func (r *Result) RowCount() int {
	switch r.Type {
	case TypeExpensesByCategory:
		return len(r.CategoryRows)
	case TypeRevenueByClient:
		return len(r.ClientRows)
	case TypeTaxSummary:
		return len(r.TaxRows)
	default:
		return len(r.RevenueRows)
	}
}
