package persistence

import (
	"context"
	"errors"

	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements invoicing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForBusiness finds an invoice by ID scoped to a business
func (r *GormInvoiceRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByVerificationID finds an invoice by its public verification ID
func (r *GormInvoiceRepository) FindByVerificationID(ctx context.Context, verificationID string) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("verification_id = ?", verificationID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForBusiness finds invoices of a business matching the filter,
// newest first, returning the page and the unpaged total
func (r *GormInvoiceRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("business_id = ?", businessID)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.CurrencyAccountID != nil {
		query = query.Where("currency_account_id = ?", *filter.CurrencyAccountID)
	}
	if filter.ClientName != "" {
		query = query.Where("client ->> 'name' ILIKE ?", "%"+filter.ClientName+"%")
	}
	if filter.FromDate != nil {
		query = query.Where("issued_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("issued_at <= ?", *filter.ToDate)
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

	var list []models.InvoiceModel
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	invoices := make([]invoicing.Invoice, 0, len(list))
	for i := range list {
		inv, err := list[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, total, nil
}

// FindIssuedInPeriod finds invoices issued inside [from, to], optionally
// restricted to one currency account
func (r *GormInvoiceRepository) FindIssuedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]invoicing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ? AND issued_at >= ? AND issued_at <= ?", businessID, from, to)
	if accountID != nil {
		query = query.Where("currency_account_id = ?", *accountID)
	}
	var list []models.InvoiceModel
	if err := query.Order("issued_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	invoices := make([]invoicing.Invoice, 0, len(list))
	for i := range list {
		inv, err := list[i].ToDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

// CountIssuedInPeriod counts invoices issued inside [from, to]
func (r *GormInvoiceRepository) CountIssuedInPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("business_id = ? AND issued_at >= ? AND issued_at <= ?", businessID, from, to).
		Count(&count).Error
	return count, err
}

// NextInvoiceNumber reserves the next invoice number for the year
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	return nextDocumentNumber(ctx, r.db, businessID, sequenceInvoice, year)
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	model, err := models.InvoiceModelFromDomain(invoice)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an invoice. The caller enforces that only drafts are
// deletable.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id).Error
}
