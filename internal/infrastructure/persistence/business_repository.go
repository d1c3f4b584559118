package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormBusinessRepository implements identity.BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds businesses owned by the user
func (r *GormBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]identity.Business, error) {
	var list []models.BusinessModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	businesses := make([]identity.Business, 0, len(list))
	for i := range list {
		businesses = append(businesses, *list[i].ToDomain())
	}
	return businesses, nil
}

// FindForUser finds all businesses the user is a member of
func (r *GormBusinessRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]identity.Business, error) {
	var list []models.BusinessModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.business_id = businesses.id").
		Where("memberships.user_id = ?", userID).
		Order("businesses.created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	businesses := make([]identity.Business, 0, len(list))
	for i := range list {
		businesses = append(businesses, *list[i].ToDomain())
	}
	return businesses, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	model := models.BusinessModelFromDomain(business)
	return r.db.WithContext(ctx).Save(model).Error
}
