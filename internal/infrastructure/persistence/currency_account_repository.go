package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormCurrencyAccountRepository implements ledger.CurrencyAccountRepository using GORM
type GormCurrencyAccountRepository struct {
	db *gorm.DB
}

// NewGormCurrencyAccountRepository creates a new GormCurrencyAccountRepository
func NewGormCurrencyAccountRepository(db *gorm.DB) *GormCurrencyAccountRepository {
	return &GormCurrencyAccountRepository{db: db}
}

// FindByID finds a currency account by ID
func (r *GormCurrencyAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	var model models.CurrencyAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds a currency account by ID scoped to a business
func (r *GormCurrencyAccountRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	var model models.CurrencyAccountModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCurrency finds the business's account for a currency
func (r *GormCurrencyAccountRepository) FindByCurrency(ctx context.Context, businessID uuid.UUID, currency valueobject.Currency) (*ledger.CurrencyAccount, error) {
	var model models.CurrencyAccountModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND currency = ?", businessID, currency.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPrimary finds the business's primary currency account
func (r *GormCurrencyAccountRepository) FindPrimary(ctx context.Context, businessID uuid.UUID) (*ledger.CurrencyAccount, error) {
	var model models.CurrencyAccountModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_primary = true", businessID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness finds all currency accounts of a business
func (r *GormCurrencyAccountRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]ledger.CurrencyAccount, error) {
	var list []models.CurrencyAccountModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("is_primary DESC, created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.CurrencyAccount, 0, len(list))
	for i := range list {
		accounts = append(accounts, *list[i].ToDomain())
	}
	return accounts, nil
}

// CountForBusiness counts the currency accounts of a business
func (r *GormCurrencyAccountRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CurrencyAccountModel{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a currency account
func (r *GormCurrencyAccountRepository) Save(ctx context.Context, account *ledger.CurrencyAccount) error {
	model := models.CurrencyAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}
