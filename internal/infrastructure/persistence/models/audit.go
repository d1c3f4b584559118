package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/invoicemonk/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit.Entry. Rows are
// append-only: the repository never updates or deletes them.
type AuditEntryModel struct {
	BaseModel
	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_entries_business_seq"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"not null;size:30;index"`
	EntityType string     `gorm:"not null;size:50"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Metadata   string     `gorm:"type:jsonb;default:'{}'"`
	OccurredAt time.Time  `gorm:"not null;index:idx_audit_entries_business_seq"`
	PrevHash   string     `gorm:"not null;size:64"`
	EntryHash  string     `gorm:"not null;size:64;uniqueIndex"`
}

// TableName returns the table name for AuditEntryModel
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// AuditEntryModelFromDomain converts a domain audit Entry to a persistence model
func AuditEntryModelFromDomain(e *audit.Entry) (*AuditEntryModel, error) {
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	m := &AuditEntryModel{
		BusinessID: e.BusinessID,
		ActorID:    e.ActorID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Metadata:   string(metadataJSON),
		OccurredAt: e.OccurredAt,
		PrevHash:   e.PrevHash,
		EntryHash:  e.EntryHash,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m, nil
}

// ToDomain converts the persistence model to a domain audit Entry
func (m *AuditEntryModel) ToDomain() (*audit.Entry, error) {
	var metadata map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, err
		}
	}

	e := &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		ActorID:    m.ActorID,
		Action:     audit.Action(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Metadata:   metadata,
		OccurredAt: m.OccurredAt,
		PrevHash:   m.PrevHash,
		EntryHash:  m.EntryHash,
	}
	return e, nil
}

// ExportManifestModel is the persistence model for audit.ExportManifest
type ExportManifestModel struct {
	BaseModel
	BusinessID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID       uuid.UUID `gorm:"type:uuid;not null"`
	Scope         string    `gorm:"type:jsonb;not null"`
	RowCount      int       `gorm:"not null"`
	ContentDigest string    `gorm:"not null;size:64"`
	ExportedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for ExportManifestModel
func (ExportManifestModel) TableName() string {
	return "export_manifests"
}

// ExportManifestModelFromDomain converts a domain ExportManifest to a persistence model
func ExportManifestModelFromDomain(em *audit.ExportManifest) (*ExportManifestModel, error) {
	scopeJSON, err := json.Marshal(em.Scope)
	if err != nil {
		return nil, err
	}

	m := &ExportManifestModel{
		BusinessID:    em.BusinessID,
		ActorID:       em.ActorID,
		Scope:         string(scopeJSON),
		RowCount:      em.RowCount,
		ContentDigest: em.ContentDigest,
		ExportedAt:    em.ExportedAt,
	}
	m.FromDomainBaseEntity(em.BaseEntity)
	return m, nil
}

// ToDomain converts the persistence model to a domain ExportManifest
func (m *ExportManifestModel) ToDomain() (*audit.ExportManifest, error) {
	var scope audit.ExportScope
	if err := json.Unmarshal([]byte(m.Scope), &scope); err != nil {
		return nil, err
	}

	em := &audit.ExportManifest{
		BaseEntity:    m.BaseModel.ToDomain(),
		BusinessID:    m.BusinessID,
		ActorID:       m.ActorID,
		Scope:         scope,
		RowCount:      m.RowCount,
		ContentDigest: m.ContentDigest,
		ExportedAt:    m.ExportedAt,
	}
	return em, nil
}
