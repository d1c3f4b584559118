package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/invoicemonk/backend/internal/domain/report"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// EncodeCSV renders a generated report as CSV bytes. The exact bytes
// are what export manifests digest, so the encoding is deterministic:
// rows keep the report's order and amounts use the primary currency's
// decimal places.
func EncodeCSV(result *report.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	money := func(m valueobject.Money) string {
		return m.Amount().StringFixed(result.Currency.DecimalPlaces())
	}

	var err error
	switch result.Type {
	case report.TypeExpensesByCategory:
		err = w.Write([]string{"category", "expense_count", "total", "currency"})
		for _, row := range result.CategoryRows {
			if err != nil {
				break
			}
			err = w.Write([]string{
				row.Category,
				strconv.Itoa(row.ExpenseCount),
				money(row.Total),
				result.Currency.String(),
			})
		}
	case report.TypeRevenueByClient:
		err = w.Write([]string{"client", "invoice_count", "invoiced", "collected", "currency"})
		for _, row := range result.ClientRows {
			if err != nil {
				break
			}
			err = w.Write([]string{
				row.ClientName,
				strconv.Itoa(row.InvoiceCount),
				money(row.Invoiced),
				money(row.Collected),
				result.Currency.String(),
			})
		}
	case report.TypeTaxSummary:
		err = w.Write([]string{"tax_rate", "invoice_count", "taxable_base", "tax_collected", "currency"})
		for _, row := range result.TaxRows {
			if err != nil {
				break
			}
			err = w.Write([]string{
				row.TaxRate.String(),
				strconv.Itoa(row.InvoiceCount),
				money(row.TaxableBase),
				money(row.TaxCollected),
				result.Currency.String(),
			})
		}
	default:
		err = w.Write([]string{"period", "invoice_count", "invoiced", "collected", "outstanding", "currency"})
		for _, row := range result.RevenueRows {
			if err != nil {
				break
			}
			err = w.Write([]string{
				row.Bucket,
				strconv.Itoa(row.InvoiceCount),
				money(row.Invoiced),
				money(row.Collected),
				money(row.Outstanding),
				result.Currency.String(),
			})
		}
	}
	if err != nil {
		return nil, shared.NewDomainError("ENCODE_FAILED", "Failed to encode report as CSV")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, shared.NewDomainError("ENCODE_FAILED", "Failed to encode report as CSV")
	}
	return buf.Bytes(), nil
}
