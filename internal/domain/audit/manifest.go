package audit

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExportScope describes what a bulk export covered
type ExportScope struct {
	ReportType string     `json:"report_type"`
	Format     string     `json:"format"`
	AccountID  *uuid.UUID `json:"currency_account_id,omitempty"`
	FromDate   time.Time  `json:"from_date"`
	ToDate     time.Time  `json:"to_date"`
}

// ExportManifest is the chain-of-custody record written alongside
// every bulk data export: who exported what, when, and the digest of
// the exact bytes that left the system.
type ExportManifest struct {
	shared.BaseEntity
	BusinessID    uuid.UUID
	ActorID       uuid.UUID
	Scope         ExportScope
	RowCount      int
	ContentDigest string // SHA-256 of the exported artifact
	ExportedAt    time.Time
}

// NewExportManifest records a completed export
func NewExportManifest(businessID, actorID uuid.UUID, scope ExportScope, rowCount int, contentDigest string) (*ExportManifest, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}
	if scope.ReportType == "" {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Export scope must name a report type")
	}
	if contentDigest == "" {
		return nil, shared.NewDomainError("INVALID_DIGEST", "Content digest cannot be empty")
	}
	if rowCount < 0 {
		return nil, shared.NewDomainError("INVALID_ROW_COUNT", "Row count cannot be negative")
	}

	return &ExportManifest{
		BaseEntity:    shared.NewBaseEntity(),
		BusinessID:    businessID,
		ActorID:       actorID,
		Scope:         scope,
		RowCount:      rowCount,
		ContentDigest: contentDigest,
		ExportedAt:    time.Now().UTC(),
	}, nil
}
