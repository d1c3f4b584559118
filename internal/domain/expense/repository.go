package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter defines filtering options for expense list queries
type Filter struct {
	Category          *Category
	CurrencyAccountID *uuid.UUID
	FromDate          *time.Time
	ToDate            *time.Time
	Page              int
	PageSize          int
}

// Repository persists Expense aggregates
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Expense, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter Filter) ([]Expense, int64, error)
	FindRecordedInPeriod(ctx context.Context, businessID uuid.UUID, accountID *uuid.UUID, from, to time.Time) ([]Expense, error)
	NextExpenseNumber(ctx context.Context, businessID uuid.UUID, year int) (string, error)
	Save(ctx context.Context, expense *Expense) error
}
