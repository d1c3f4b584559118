package ledger

import (
	"context"

	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CurrencyAccountRepository persists CurrencyAccount aggregates
type CurrencyAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CurrencyAccount, error)
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*CurrencyAccount, error)
	FindByCurrency(ctx context.Context, businessID uuid.UUID, currency valueobject.Currency) (*CurrencyAccount, error)
	FindPrimary(ctx context.Context, businessID uuid.UUID) (*CurrencyAccount, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]CurrencyAccount, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error)
	Save(ctx context.Context, account *CurrencyAccount) error
}
