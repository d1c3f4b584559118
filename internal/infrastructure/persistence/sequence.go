package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document number prefixes per sequence kind
const (
	sequenceInvoice    = "invoice"
	sequenceCreditNote = "credit_note"
	sequenceReceipt    = "receipt"
	sequenceExpense    = "expense"
)

var sequencePrefixes = map[string]string{
	sequenceInvoice:    "INV",
	sequenceCreditNote: "CN",
	sequenceReceipt:    "RCT",
	sequenceExpense:    "EXP",
}

// nextDocumentNumber reserves the next number in the business's yearly
// sequence for a document kind and formats it as PREFIX-YYYY-NNNN.
// The upsert is atomic, so concurrent callers never receive the same
// number and gaps only appear when a surrounding transaction rolls back.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, businessID uuid.UUID, kind string, year int) (string, error) {
	var next int64
	err := db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (business_id, kind, year, next_value)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (business_id, kind, year)
		DO UPDATE SET next_value = document_sequences.next_value + 1
		RETURNING next_value`,
		businessID, kind, year,
	).Scan(&next).Error
	if err != nil {
		return "", fmt.Errorf("failed to reserve %s number: %w", kind, err)
	}
	return fmt.Sprintf("%s-%d-%04d", sequencePrefixes[kind], year, next), nil
}
