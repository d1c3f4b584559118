package report

import (
	"encoding/json"

	"github.com/invoicemonk/backend/internal/domain/report"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// jsonDocument is the JSON export envelope. Rows reuse the CSV column
// names so the two formats describe the same report identically.
type jsonDocument struct {
	ReportType string `json:"report_type"`
	From       string `json:"from"`
	To         string `json:"to"`
	Currency   string `json:"currency"`
	Rows       any    `json:"rows"`
}

type jsonRevenueRow struct {
	Period       string `json:"period"`
	InvoiceCount int    `json:"invoice_count"`
	Invoiced     string `json:"invoiced"`
	Collected    string `json:"collected"`
	Outstanding  string `json:"outstanding"`
}

type jsonCategoryRow struct {
	Category     string `json:"category"`
	ExpenseCount int    `json:"expense_count"`
	Total        string `json:"total"`
}

type jsonClientRow struct {
	Client       string `json:"client"`
	InvoiceCount int    `json:"invoice_count"`
	Invoiced     string `json:"invoiced"`
	Collected    string `json:"collected"`
}

type jsonTaxRow struct {
	TaxRate      string `json:"tax_rate"`
	InvoiceCount int    `json:"invoice_count"`
	TaxableBase  string `json:"taxable_base"`
	TaxCollected string `json:"tax_collected"`
}

// EncodeJSON renders a generated report as JSON bytes. Like EncodeCSV
// the output is deterministic, because the encoded bytes are what the
// export manifest digests.
func EncodeJSON(result *report.Result) ([]byte, error) {
	money := func(m valueobject.Money) string {
		return m.Amount().StringFixed(result.Currency.DecimalPlaces())
	}

	doc := jsonDocument{
		ReportType: result.Type.String(),
		From:       result.Period.From.Format("2006-01-02"),
		To:         result.Period.To.Format("2006-01-02"),
		Currency:   result.Currency.String(),
	}

	switch result.Type {
	case report.TypeExpensesByCategory:
		rows := make([]jsonCategoryRow, 0, len(result.CategoryRows))
		for _, row := range result.CategoryRows {
			rows = append(rows, jsonCategoryRow{
				Category:     row.Category,
				ExpenseCount: row.ExpenseCount,
				Total:        money(row.Total),
			})
		}
		doc.Rows = rows
	case report.TypeRevenueByClient:
		rows := make([]jsonClientRow, 0, len(result.ClientRows))
		for _, row := range result.ClientRows {
			rows = append(rows, jsonClientRow{
				Client:       row.ClientName,
				InvoiceCount: row.InvoiceCount,
				Invoiced:     money(row.Invoiced),
				Collected:    money(row.Collected),
			})
		}
		doc.Rows = rows
	case report.TypeTaxSummary:
		rows := make([]jsonTaxRow, 0, len(result.TaxRows))
		for _, row := range result.TaxRows {
			rows = append(rows, jsonTaxRow{
				TaxRate:      row.TaxRate.String(),
				InvoiceCount: row.InvoiceCount,
				TaxableBase:  money(row.TaxableBase),
				TaxCollected: money(row.TaxCollected),
			})
		}
		doc.Rows = rows
	default:
		rows := make([]jsonRevenueRow, 0, len(result.RevenueRows))
		for _, row := range result.RevenueRows {
			rows = append(rows, jsonRevenueRow{
				Period:       row.Bucket,
				InvoiceCount: row.InvoiceCount,
				Invoiced:     money(row.Invoiced),
				Collected:    money(row.Collected),
				Outstanding:  money(row.Outstanding),
			})
		}
		doc.Rows = rows
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return nil, shared.NewDomainError("ENCODE_FAILED", "Failed to encode report as JSON")
	}
	return content, nil
}
