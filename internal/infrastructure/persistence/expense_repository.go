package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements expense.Repository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForBusiness finds an expense by ID scoped to a business
func (r *GormExpenseRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForBusiness finds expenses of a business matching the filter,
// newest first, returning the page and the unpaged total
func (r *GormExpenseRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter expense.Filter) ([]expense.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("business_id = ?", businessID)

	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.CurrencyAccountID != nil {
		query = query.Where("currency_account_id = ?", *filter.CurrencyAccountID)
	}
	if filter.FromDate != nil {
		query = query.Where("incurred_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("incurred_at <= ?", *filter.ToDate)
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

	var list []models.ExpenseModel
	if err := query.Order("incurred_at DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	expenses := make([]expense.Expense, 0, len(list))
	for i := range list {
		expenses = append(expenses, *list[i].ToDomain())
	}
	return expenses, total, nil
}

// FindRecordedInPeriod finds recorded expenses incurred inside [from, to],
// optionally restricted to one currency account. Cancelled expenses are
// returned too so callers can audit the full set; report code filters by
// status.
func (r *GormExpenseRepository) FindRecordedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]expense.Expense, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ? AND incurred_at >= ? AND incurred_at <= ?", businessID, from, to)
	if accountID != nil {
		query = query.Where("currency_account_id = ?", *accountID)
	}
	var list []models.ExpenseModel
	if err := query.Order("incurred_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	expenses := make([]expense.Expense, 0, len(list))
	for i := range list {
		expenses = append(expenses, *list[i].ToDomain())
	}
	return expenses, nil
}

// NextExpenseNumber reserves the next expense number for the year
func (r *GormExpenseRepository) NextExpenseNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	return nextDocumentNumber(ctx, r.db, businessID, sequenceExpense, year)
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, exp *expense.Expense) error {
	model := models.ExpenseModelFromDomain(exp)
	return r.db.WithContext(ctx).Save(model).Error
}
