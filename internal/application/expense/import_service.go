package expense

import (
	"context"
	"fmt"
	"io"
	"time"

	csvimport "github.com/invoicemonk/backend/internal/infrastructure/import"

	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// requiredImportHeaders are the columns an expense CSV must carry
var requiredImportHeaders = []string{"category", "amount", "description", "incurred_at"}

const (
	importDateLayout = "2006-01-02"
	maxImportRows    = 1000
	maxImportErrors  = 100
)

// ImportInput contains the uploaded file and its owning scope
type ImportInput struct {
	BusinessID        uuid.UUID
	ActorID           uuid.UUID
	CurrencyAccountID uuid.UUID
	File              io.Reader
}

// ImportResult summarizes a finished import run
type ImportResult struct {
	Imported int                  `json:"imported"`
	Failed   int                  `json:"failed"`
	Errors   []csvimport.RowError `json:"errors,omitempty"`
}

// Import records expenses from a CSV file with columns category, amount,
// description and incurred_at. Rows are validated independently so one
// bad row does not block the rest of the file.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	reader, err := csvimport.NewReader(input.File)
	if err != nil {
		return nil, shared.NewDomainError("IMPORT_INVALID_FILE", err.Error())
	}

	if missing := reader.MissingHeaders(requiredImportHeaders); len(missing) > 0 {
		return nil, shared.NewDomainError("IMPORT_INVALID_FILE",
			fmt.Sprintf("Missing required columns: %v", missing))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, shared.NewDomainError("IMPORT_INVALID_FILE", err.Error())
	}
	if len(rows) > maxImportRows {
		return nil, shared.NewDomainError("IMPORT_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d row limit", maxImportRows))
	}

	errs := csvimport.NewErrorList(maxImportErrors)
	imported := 0

	for _, row := range rows {
		record, rowErr := s.parseImportRow(row)
		if rowErr != nil {
			errs.Add(*rowErr)
			continue
		}

		record.BusinessID = input.BusinessID
		record.ActorID = input.ActorID
		record.CurrencyAccountID = input.CurrencyAccountID

		if _, err := s.Record(ctx, *record); err != nil {
			errs.Add(csvimport.NewRowError(row.Line, "", err.Error()))
			continue
		}
		imported++
	}

	s.logger.Info("expense import finished",
		zap.String("business_id", input.BusinessID.String()),
		zap.Int("imported", imported),
		zap.Int("failed", errs.Total()))

	return &ImportResult{
		Imported: imported,
		Failed:   errs.Total(),
		Errors:   errs.Errors(),
	}, nil
}

func (s *Service) parseImportRow(row *csvimport.Row) (*RecordInput, *csvimport.RowError) {
	category := expense.Category(row.Get("category"))
	if !category.IsValid() {
		e := csvimport.NewRowError(row.Line, "category", "Unknown expense category")
		return nil, &e
	}

	amount, err := decimal.NewFromString(row.Get("amount"))
	if err != nil {
		e := csvimport.NewRowError(row.Line, "amount", "Amount must be a decimal number")
		return nil, &e
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		e := csvimport.NewRowError(row.Line, "amount", "Amount must be positive")
		return nil, &e
	}

	description := row.Get("description")
	if description == "" {
		e := csvimport.NewRowError(row.Line, "description", "Description is required")
		return nil, &e
	}

	incurredAt, err := time.Parse(importDateLayout, row.Get("incurred_at"))
	if err != nil {
		e := csvimport.NewRowError(row.Line, "incurred_at", "Date must be in YYYY-MM-DD format")
		return nil, &e
	}

	return &RecordInput{
		Category:    category,
		Amount:      amount,
		Description: description,
		IncurredAt:  incurredAt,
	}, nil
}
