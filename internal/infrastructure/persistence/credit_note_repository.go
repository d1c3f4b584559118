package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

// GormCreditNoteRepository implements invoicing.CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{db: db}
}

// FindByID finds a credit note by ID
func (r *GormCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.CreditNote, error) {
	var model models.CreditNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceID finds the credit note issued against an invoice
func (r *GormCreditNoteRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*invoicing.CreditNote, error) {
	var model models.CreditNoteModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness finds credit notes of a business, newest first
func (r *GormCreditNoteRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]invoicing.CreditNote, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.Limit()).Offset(filter.Offset())
	}
	var list []models.CreditNoteModel
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	notes := make([]invoicing.CreditNote, 0, len(list))
	for i := range list {
		notes = append(notes, *list[i].ToDomain())
	}
	return notes, nil
}

// NextCreditNoteNumber reserves the next credit note number for the year
func (r *GormCreditNoteRepository) NextCreditNoteNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error) {
	return nextDocumentNumber(ctx, r.db, businessID, sequenceCreditNote, year)
}

// Save creates or updates a credit note
func (r *GormCreditNoteRepository) Save(ctx context.Context, creditNote *invoicing.CreditNote) error {
	model := models.CreditNoteModelFromDomain(creditNote)
	return r.db.WithContext(ctx).Save(model).Error
}
