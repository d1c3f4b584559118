package audit

import (
	"context"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder appends entries to a business's audit chain. Lifecycle
// services depend on this rather than the full service so tests can
// swap in a mock.
type Recorder interface {
	Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]string) error
}

// Service handles the append-only audit trail and export manifests
type Service struct {
	entryRepo    audit.EntryRepository
	manifestRepo audit.ManifestRepository
	logger       *zap.Logger
}

// NewService creates a new audit service
func NewService(
	entryRepo audit.EntryRepository,
	manifestRepo audit.ManifestRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		entryRepo:    entryRepo,
		manifestRepo: manifestRepo,
		logger:       logger,
	}
}

// Record appends one entry to the business's hash chain. The new
// entry links to the hash of the current chain head.
func (s *Service) Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]string) error {
	latest, err := s.entryRepo.LatestForBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("Failed to load audit chain head", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load audit trail")
	}

	prevHash := ""
	if latest != nil {
		prevHash = latest.EntryHash
	}

	entry, err := audit.NewEntry(businessID, actorID, action, entityType, entityID, metadata, prevHash)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			zap.String("business_id", businessID.String()),
			zap.String("action", action.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to append audit entry")
	}

	return nil
}

// EntryDTO represents one audit trail record
type EntryDTO struct {
	ID         uuid.UUID         `json:"id"`
	ActorID    *uuid.UUID        `json:"actor_id,omitempty"`
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   uuid.UUID         `json:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt string            `json:"occurred_at"`
	EntryHash  string            `json:"entry_hash"`
}

// ListResult represents a paginated audit trail page
type ListResult struct {
	Entries    []EntryDTO `json:"entries"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// List returns a page of the business's audit trail, newest first
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter audit.EntryFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	entries, total, err := s.entryRepo.FindAllForBusiness(ctx, businessID, filter)
	if err != nil {
		s.logger.Error("Failed to list audit entries", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list audit entries")
	}

	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(&e)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResult{
		Entries:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ChainStatus reports the outcome of an audit chain verification
type ChainStatus struct {
	Intact     bool `json:"intact"`
	EntryCount int  `json:"entry_count"`
	BrokenAt   *int `json:"broken_at,omitempty"`
}

// VerifyChain replays the full chain and reports the first broken link
func (s *Service) VerifyChain(ctx context.Context, businessID uuid.UUID) (*ChainStatus, error) {
	entries, err := s.entryRepo.FindChain(ctx, businessID)
	if err != nil {
		s.logger.Error("Failed to load audit chain", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load audit trail")
	}

	status := &ChainStatus{EntryCount: len(entries)}
	if idx := audit.VerifyChain(entries); idx >= 0 {
		status.BrokenAt = &idx
		s.logger.Warn("Audit chain verification failed",
			zap.String("business_id", businessID.String()),
			zap.Int("broken_at", idx))
	} else {
		status.Intact = true
	}

	return status, nil
}

// RecordExport writes the manifest for a completed data export and
// appends the matching DATA_EXPORTED entry to the chain.
func (s *Service) RecordExport(ctx context.Context, businessID, actorID uuid.UUID, scope audit.ExportScope, rowCount int, contentDigest string) (*audit.ExportManifest, error) {
	manifest, err := audit.NewExportManifest(businessID, actorID, scope, rowCount, contentDigest)
	if err != nil {
		return nil, err
	}

	if err := s.manifestRepo.Save(ctx, manifest); err != nil {
		s.logger.Error("Failed to save export manifest", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save export manifest")
	}

	metadata := map[string]string{
		"report_type": scope.ReportType,
		"format":      scope.Format,
		"digest":      contentDigest,
	}
	if err := s.Record(ctx, businessID, &actorID, audit.ActionDataExported, "ExportManifest", manifest.ID, metadata); err != nil {
		return nil, err
	}

	return manifest, nil
}

// ManifestDTO represents an export manifest
type ManifestDTO struct {
	ID            uuid.UUID         `json:"id"`
	ActorID       uuid.UUID         `json:"actor_id"`
	Scope         audit.ExportScope `json:"scope"`
	RowCount      int               `json:"row_count"`
	ContentDigest string            `json:"content_digest"`
	ExportedAt    string            `json:"exported_at"`
}

// ListManifests returns every export manifest for the business
func (s *Service) ListManifests(ctx context.Context, businessID uuid.UUID) ([]ManifestDTO, error) {
	manifests, err := s.manifestRepo.FindAllForBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("Failed to list export manifests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list export manifests")
	}

	dtos := make([]ManifestDTO, len(manifests))
	for i, m := range manifests {
		dtos[i] = ManifestDTO{
			ID:            m.ID,
			ActorID:       m.ActorID,
			Scope:         m.Scope,
			RowCount:      m.RowCount,
			ContentDigest: m.ContentDigest,
			ExportedAt:    m.ExportedAt.Format(timeFormat),
		}
	}
	return dtos, nil
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

func toEntryDTO(e *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Metadata:   e.Metadata,
		OccurredAt: e.OccurredAt.Format(timeFormat),
		EntryHash:  e.EntryHash,
	}
}
