package invoicing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IssuerSnapshot is a point-in-time copy of the issuing business's
// identity, frozen at invoice issuance. Later edits to the business
// profile never change what an issued invoice attests to.
type IssuerSnapshot struct {
	BusinessName string `json:"business_name"`
	TaxID        string `json:"tax_id,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	Jurisdiction string `json:"jurisdiction"`
}

// Validate checks the minimum issuer fields
func (s IssuerSnapshot) Validate() error {
	if strings.TrimSpace(s.BusinessName) == "" {
		return shared.NewDomainError("INVALID_SNAPSHOT", "Issuer snapshot must carry the business name")
	}
	return nil
}

// hashedLineItem is the canonical wire form of a line item used for
// hashing. Decimal fields are normalized to plain strings so that the
// hash does not depend on internal decimal exponents.
type hashedLineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxRate     string `json:"tax_rate"`
}

// hashedContent is the canonical form of the frozen invoice fields.
// Field order is fixed by the struct definition; encoding/json emits
// struct fields in declaration order, making the digest deterministic.
type hashedContent struct {
	InvoiceNumber  string           `json:"invoice_number"`
	BusinessID     string           `json:"business_id"`
	VerificationID string           `json:"verification_id"`
	Currency       string           `json:"currency"`
	RateToPrimary  string           `json:"rate_to_primary"`
	Client         ClientDetails    `json:"client"`
	LineItems      []hashedLineItem `json:"line_items"`
	Subtotal       string           `json:"subtotal"`
	TaxTotal       string           `json:"tax_total"`
	Total          string           `json:"total"`
	IssuedAt       string           `json:"issued_at"`
	Snapshot       IssuerSnapshot   `json:"issuer_snapshot"`
}

func canonicalDecimal(d decimal.Decimal) string {
	return d.String()
}

// ComputeContentHash returns the SHA-256 digest of the invoice's
// canonical frozen content. It is stable for a given issued invoice
// and changes if any sealed field is altered.
func (i *Invoice) ComputeContentHash() string {
	items := make([]hashedLineItem, len(i.LineItems))
	for idx, li := range i.LineItems {
		items[idx] = hashedLineItem{
			Description: li.Description,
			Quantity:    canonicalDecimal(li.Quantity),
			UnitPrice:   canonicalDecimal(li.UnitPrice),
			TaxRate:     canonicalDecimal(li.TaxRate),
		}
	}

	issuedAt := ""
	if i.IssuedAt != nil {
		issuedAt = i.IssuedAt.UTC().Format(time.RFC3339)
	}
	var snapshot IssuerSnapshot
	if i.Snapshot != nil {
		snapshot = *i.Snapshot
	}

	content := hashedContent{
		InvoiceNumber:  i.InvoiceNumber,
		BusinessID:     i.BusinessID.String(),
		VerificationID: i.VerificationID,
		Currency:       i.Currency.String(),
		RateToPrimary:  canonicalDecimal(i.RateToPrimary),
		Client:         i.Client,
		LineItems:      items,
		Subtotal:       canonicalDecimal(i.Subtotal()),
		TaxTotal:       canonicalDecimal(i.TaxTotal()),
		Total:          canonicalDecimal(i.Total()),
		IssuedAt:       issuedAt,
		Snapshot:       snapshot,
	}

	data, err := json.Marshal(content)
	if err != nil {
		// Marshalling a struct of strings cannot fail at runtime
		panic(err)
	}
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// HashBytes computes the SHA-256 digest of arbitrary content, used for
// receipts, credit notes, and export artifacts
func HashBytes(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
