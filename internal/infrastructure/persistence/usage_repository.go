package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormUsageRepository implements billing.UsageRepository using GORM
type GormUsageRepository struct {
	db *gorm.DB
}

// NewGormUsageRepository creates a new GormUsageRepository
func NewGormUsageRepository(db *gorm.DB) *GormUsageRepository {
	return &GormUsageRepository{db: db}
}

// FindOrCreate loads the counter for a feature and period, creating a
// zero counter when none exists yet
func (r *GormUsageRepository) FindOrCreate(ctx context.Context, businessID uuid.UUID, feature billing.Feature, period string) (*billing.UsageCounter, error) {
	var model models.UsageCounterModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND feature = ? AND period = ?", businessID, feature, period).
		First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	counter, err := billing.NewUsageCounter(businessID, feature, period)
	if err != nil {
		return nil, err
	}
	created := models.UsageCounterModelFromDomain(counter)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		// Another request created the counter concurrently
		var existing models.UsageCounterModel
		if findErr := r.db.WithContext(ctx).
			Where("business_id = ? AND feature = ? AND period = ?", businessID, feature, period).
			First(&existing).Error; findErr == nil {
			return existing.ToDomain(), nil
		}
		return nil, err
	}
	return counter, nil
}

// FindAllForPeriod finds all counters of a business for a period
func (r *GormUsageRepository) FindAllForPeriod(ctx context.Context, businessID uuid.UUID, period string) ([]billing.UsageCounter, error) {
	var list []models.UsageCounterModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND period = ?", businessID, period).
		Find(&list).Error; err != nil {
		return nil, err
	}
	counters := make([]billing.UsageCounter, 0, len(list))
	for i := range list {
		counters = append(counters, *list[i].ToDomain())
	}
	return counters, nil
}

// Save creates or updates a usage counter
func (r *GormUsageRepository) Save(ctx context.Context, counter *billing.UsageCounter) error {
	model := models.UsageCounterModelFromDomain(counter)
	return r.db.WithContext(ctx).Save(model).Error
}
