package identity

import (
	"context"
	"time"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BusinessService handles business lifecycle and onboarding
type BusinessService struct {
	businessRepo     identity.BusinessRepository
	membershipRepo   identity.MembershipRepository
	accountRepo      ledger.CurrencyAccountRepository
	subscriptionRepo billing.SubscriptionRepository
	eventBus         shared.EventPublisher
	auditor          appaudit.Recorder
	logger           *zap.Logger
}

// NewBusinessService creates a new business service
func NewBusinessService(
	businessRepo identity.BusinessRepository,
	membershipRepo identity.MembershipRepository,
	accountRepo ledger.CurrencyAccountRepository,
	subscriptionRepo billing.SubscriptionRepository,
	eventBus shared.EventPublisher,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *BusinessService {
	return &BusinessService{
		businessRepo:     businessRepo,
		membershipRepo:   membershipRepo,
		accountRepo:      accountRepo,
		subscriptionRepo: subscriptionRepo,
		eventBus:         eventBus,
		auditor:          auditor,
		logger:           logger,
	}
}

// CreateBusinessInput contains input for creating a business
type CreateBusinessInput struct {
	OwnerID         uuid.UUID
	Name            string
	Jurisdiction    string
	PrimaryCurrency string
}

// UpdateBusinessInput contains input for updating a business profile
type UpdateBusinessInput struct {
	Name    string
	TaxID   string
	Address string
	Email   string
	Phone   string
	LogoURL string
}

// BusinessDTO represents business data returned to clients
type BusinessDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Jurisdiction    string    `json:"jurisdiction"`
	PrimaryCurrency string    `json:"primary_currency"`
	TaxID           string    `json:"tax_id,omitempty"`
	Address         string    `json:"address,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	LogoURL         string    `json:"logo_url,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Create provisions a new business: the business itself, the owner's
// membership, the primary currency account pinned at rate 1, and a
// free starter subscription.
func (s *BusinessService) Create(ctx context.Context, input CreateBusinessInput) (*BusinessDTO, error) {
	currency, err := valueobject.ParseCurrency(input.PrimaryCurrency)
	if err != nil {
		return nil, err
	}

	business, err := identity.NewBusiness(input.OwnerID, input.Name, input.Jurisdiction, currency)
	if err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		s.logger.Error("Failed to save business", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create business")
	}

	membership, err := identity.NewMembership(business.ID, input.OwnerID, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		s.logger.Error("Failed to save owner membership", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create business")
	}

	primaryAccount, err := ledger.NewCurrencyAccount(business.ID, currency.String()+" account", currency, true, decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}
	primaryAccount.SetCreatedBy(input.OwnerID)
	if err := s.accountRepo.Save(ctx, primaryAccount); err != nil {
		s.logger.Error("Failed to save primary currency account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create business")
	}

	subscription, err := billing.NewSubscription(business.ID, billing.TierStarter)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		s.logger.Error("Failed to save subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create business")
	}

	s.publishEvents(ctx, business.GetDomainEvents())
	business.ClearDomainEvents()

	s.logger.Info("Business created",
		zap.String("business_id", business.ID.String()),
		zap.String("owner_id", input.OwnerID.String()),
		zap.String("primary_currency", currency.String()))

	if err := s.auditor.Record(ctx, business.ID, &input.OwnerID, audit.ActionAccountCreated, "CurrencyAccount", primaryAccount.ID,
		map[string]string{"currency": currency.String(), "primary": "true"}); err != nil {
		s.logger.Warn("Failed to audit primary account creation", zap.Error(err))
	}

	dto := toBusinessDTO(business)
	return &dto, nil
}

// Get returns one business the user belongs to
func (s *BusinessService) Get(ctx context.Context, businessID uuid.UUID) (*BusinessDTO, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	dto := toBusinessDTO(business)
	return &dto, nil
}

// ListForUser returns all businesses the user is a member of
func (s *BusinessService) ListForUser(ctx context.Context, userID uuid.UUID) ([]BusinessDTO, error) {
	businesses, err := s.businessRepo.FindForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list businesses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list businesses")
	}

	dtos := make([]BusinessDTO, len(businesses))
	for i, b := range businesses {
		dtos[i] = toBusinessDTO(&b)
	}
	return dtos, nil
}

// UpdateProfile updates the business's descriptive fields. Issued
// invoices keep the issuer snapshot captured at issuance.
func (s *BusinessService) UpdateProfile(ctx context.Context, businessID uuid.UUID, input UpdateBusinessInput) (*BusinessDTO, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := business.UpdateProfile(input.Name, input.TaxID, input.Address, input.Email, input.Phone, input.LogoURL); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		s.logger.Error("Failed to save business", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business")
	}

	dto := toBusinessDTO(business)
	return &dto, nil
}

func (s *BusinessService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	for _, event := range events {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event", event.EventType()),
				zap.Error(err))
		}
	}
}

func toBusinessDTO(b *identity.Business) BusinessDTO {
	return BusinessDTO{
		ID:              b.ID,
		Name:            b.Name,
		OwnerID:         b.OwnerID,
		Jurisdiction:    b.Jurisdiction,
		PrimaryCurrency: b.PrimaryCurrency.String(),
		TaxID:           b.TaxID,
		Address:         b.Address,
		Email:           b.Email,
		Phone:           b.Phone,
		LogoURL:         b.LogoURL,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}
