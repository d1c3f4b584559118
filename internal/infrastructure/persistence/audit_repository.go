package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormAuditEntryRepository implements audit.EntryRepository using GORM.
// Entries are append-only: there is no update or delete path.
type GormAuditEntryRepository struct {
	db *gorm.DB
}

// NewGormAuditEntryRepository creates a new GormAuditEntryRepository
func NewGormAuditEntryRepository(db *gorm.DB) *GormAuditEntryRepository {
	return &GormAuditEntryRepository{db: db}
}

// LatestForBusiness returns the newest entry of the business's chain,
// or nil when the chain is empty
func (r *GormAuditEntryRepository) LatestForBusiness(ctx context.Context, businessID uuid.UUID) (*audit.Entry, error) {
	var model models.AuditEntryModel
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("occurred_at DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForBusiness finds audit entries of a business matching the
// filter, newest first, returning the page and the unpaged total
func (r *GormAuditEntryRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter audit.EntryFilter) ([]audit.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).
		Where("business_id = ?", businessID)

	if filter.Action != nil {
		query = query.Where("action = ?", filter.Action.String())
	}
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.FromDate != nil {
		query = query.Where("occurred_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("occurred_at <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var list []models.AuditEntryModel
	if err := query.Order("occurred_at DESC, created_at DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]audit.Entry, 0, len(list))
	for i := range list {
		entry, err := list[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

// FindChain returns the business's full chain in append order so the
// caller can re-link and verify every hash
func (r *GormAuditEntryRepository) FindChain(ctx context.Context, businessID uuid.UUID) ([]audit.Entry, error) {
	var list []models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("occurred_at ASC, created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	entries := make([]audit.Entry, 0, len(list))
	for i := range list {
		entry, err := list[i].ToDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Append inserts a new entry. Create is used instead of Save so an
// existing row can never be overwritten.
func (r *GormAuditEntryRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := models.AuditEntryModelFromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// GormExportManifestRepository implements audit.ManifestRepository using GORM
type GormExportManifestRepository struct {
	db *gorm.DB
}

// NewGormExportManifestRepository creates a new GormExportManifestRepository
func NewGormExportManifestRepository(db *gorm.DB) *GormExportManifestRepository {
	return &GormExportManifestRepository{db: db}
}

// FindByID finds an export manifest by ID
func (r *GormExportManifestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.ExportManifest, error) {
	var model models.ExportManifestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForBusiness finds export manifests of a business, newest first
func (r *GormExportManifestRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]audit.ExportManifest, error) {
	var list []models.ExportManifestModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	manifests := make([]audit.ExportManifest, 0, len(list))
	for i := range list {
		manifest, err := list[i].ToDomain()
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, *manifest)
	}
	return manifests, nil
}

// Save creates or updates an export manifest
func (r *GormExportManifestRepository) Save(ctx context.Context, manifest *audit.ExportManifest) error {
	model, err := models.ExportManifestModelFromDomain(manifest)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}
