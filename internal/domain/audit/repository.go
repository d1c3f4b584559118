package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryFilter defines filtering options for audit log queries
type EntryFilter struct {
	Action   *Action
	ActorID  *uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// EntryRepository persists audit chain entries
type EntryRepository interface {
	// LatestForBusiness returns the newest entry of the business's
	// chain, or nil when the chain is empty
	LatestForBusiness(ctx context.Context, businessID uuid.UUID) (*Entry, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter EntryFilter) ([]Entry, int64, error)
	// FindChain returns the full chain in append order for verification
	FindChain(ctx context.Context, businessID uuid.UUID) ([]Entry, error)
	Append(ctx context.Context, entry *Entry) error
}

// ManifestRepository persists export manifests
type ManifestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExportManifest, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]ExportManifest, error)
	Save(ctx context.Context, manifest *ExportManifest) error
}
