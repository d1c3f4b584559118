package ledger

import (
	"context"
	"time"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CurrencyAccountService manages a business's currency accounts
type CurrencyAccountService struct {
	accountRepo  ledger.CurrencyAccountRepository
	entitlements *appbilling.EntitlementService
	auditor      appaudit.Recorder
	logger       *zap.Logger
}

// NewCurrencyAccountService creates a new currency account service
func NewCurrencyAccountService(
	accountRepo ledger.CurrencyAccountRepository,
	entitlements *appbilling.EntitlementService,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *CurrencyAccountService {
	return &CurrencyAccountService{
		accountRepo:  accountRepo,
		entitlements: entitlements,
		auditor:      auditor,
		logger:       logger,
	}
}

// CreateAccountInput contains input for creating a currency account
type CreateAccountInput struct {
	BusinessID    uuid.UUID
	ActorID       uuid.UUID
	Name          string
	Currency      string
	RateToPrimary decimal.Decimal
}

// AccountDTO represents a currency account
type AccountDTO struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Currency              string          `json:"currency"`
	IsPrimary             bool            `json:"is_primary"`
	ExchangeRateToPrimary decimal.Decimal `json:"exchange_rate_to_primary"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
}

// Create opens a secondary currency account. The primary account is
// created during business onboarding; one account exists per currency.
func (s *CurrencyAccountService) Create(ctx context.Context, input CreateAccountInput) (*AccountDTO, error) {
	currency, err := valueobject.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	current, err := s.accountRepo.CountForBusiness(ctx, input.BusinessID)
	if err != nil {
		s.logger.Error("Failed to count currency accounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check account limit")
	}

	ent, err := s.entitlements.CheckStructural(ctx, input.BusinessID, billing.FeatureCurrencyAccounts, current)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	if existing, err := s.accountRepo.FindByCurrency(ctx, input.BusinessID, currency); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account already exists for this currency")
	}

	account, err := ledger.NewCurrencyAccount(input.BusinessID, input.Name, currency, false, input.RateToPrimary)
	if err != nil {
		return nil, err
	}
	account.SetCreatedBy(input.ActorID)

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Currency account created",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("currency", currency.String()))

	if err := s.auditor.Record(ctx, input.BusinessID, &input.ActorID, audit.ActionAccountCreated, "CurrencyAccount", account.ID,
		map[string]string{"currency": currency.String(), "rate": input.RateToPrimary.String()}); err != nil {
		s.logger.Warn("Failed to audit account creation", zap.Error(err))
	}

	dto := toAccountDTO(account)
	return &dto, nil
}

// UpdateRate changes a secondary account's exchange rate. Documents
// already created keep the rate captured at their creation.
func (s *CurrencyAccountService) UpdateRate(ctx context.Context, businessID, accountID uuid.UUID, rate decimal.Decimal) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := account.UpdateExchangeRate(rate); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update rate")
	}

	dto := toAccountDTO(account)
	return &dto, nil
}

// Rename updates the account's display name
func (s *CurrencyAccountService) Rename(ctx context.Context, businessID, accountID uuid.UUID, name string) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := account.Rename(name); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rename account")
	}

	dto := toAccountDTO(account)
	return &dto, nil
}

// Archive closes a secondary account for new documents. Existing
// documents stay readable.
func (s *CurrencyAccountService) Archive(ctx context.Context, businessID, accountID uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := account.Archive(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to archive account")
	}

	dto := toAccountDTO(account)
	return &dto, nil
}

// List returns all of the business's currency accounts
func (s *CurrencyAccountService) List(ctx context.Context, businessID uuid.UUID) ([]AccountDTO, error) {
	accounts, err := s.accountRepo.FindAllForBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("Failed to list currency accounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(&a)
	}
	return dtos, nil
}

// Get returns one currency account
func (s *CurrencyAccountService) Get(ctx context.Context, businessID, accountID uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	dto := toAccountDTO(account)
	return &dto, nil
}

func toAccountDTO(a *ledger.CurrencyAccount) AccountDTO {
	return AccountDTO{
		ID:                    a.ID,
		Name:                  a.Name,
		Currency:              a.Currency.String(),
		IsPrimary:             a.IsPrimary,
		ExchangeRateToPrimary: a.ExchangeRateToPrimary,
		Status:                string(a.Status),
		CreatedAt:             a.CreatedAt,
	}
}
