package billing

import (
	"context"
	"time"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionService manages a business's plan and reports its usage
type SubscriptionService struct {
	subscriptionRepo billing.SubscriptionRepository
	usageRepo        billing.UsageRepository
	auditor          appaudit.Recorder
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptionRepo billing.SubscriptionRepository,
	usageRepo billing.UsageRepository,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		auditor:          auditor,
		logger:           logger,
	}
}

// SubscriptionDTO represents the business's current plan
type SubscriptionDTO struct {
	BusinessID    uuid.UUID          `json:"business_id"`
	Tier          string             `json:"tier"`
	EffectiveTier string             `json:"effective_tier"`
	Status        string             `json:"status"`
	PeriodStart   time.Time          `json:"period_start"`
	PeriodEnd     time.Time          `json:"period_end"`
	Limits        billing.TierLimits `json:"limits"`
}

// UsageDTO represents one feature's consumption this month
type UsageDTO struct {
	Feature string `json:"feature"`
	Period  string `json:"period"`
	Used    int64  `json:"used"`
	Limit   int64  `json:"limit"`
}

// Get returns the business's subscription, falling back to the free
// starter tier when no record exists yet
func (s *SubscriptionService) Get(ctx context.Context, businessID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if shared.IsNotFound(err) {
			return &SubscriptionDTO{
				BusinessID:    businessID,
				Tier:          billing.TierStarter.String(),
				EffectiveTier: billing.TierStarter.String(),
				Status:        string(billing.SubscriptionStatusActive),
				Limits:        billing.LimitsFor(billing.TierStarter),
			}, nil
		}
		s.logger.Error("Failed to load subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
	}
	return toSubscriptionDTO(sub), nil
}

// ChangeTier moves the business onto a new plan and records the change
func (s *SubscriptionService) ChangeTier(ctx context.Context, businessID, actorID uuid.UUID, tier billing.Tier) (*SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if !shared.IsNotFound(err) {
			s.logger.Error("Failed to load subscription", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
		}
		sub, err = billing.NewSubscription(businessID, billing.TierStarter)
		if err != nil {
			return nil, err
		}
	}

	previous := sub.Tier
	if err := sub.ChangeTier(tier); err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
	}

	s.logger.Info("Subscription tier changed",
		zap.String("business_id", businessID.String()),
		zap.String("from", previous.String()),
		zap.String("to", tier.String()))

	if err := s.auditor.Record(ctx, businessID, &actorID, audit.ActionTierChanged, "Subscription", sub.ID,
		map[string]string{"from": previous.String(), "to": tier.String()}); err != nil {
		s.logger.Warn("Failed to audit tier change", zap.Error(err))
	}

	return toSubscriptionDTO(sub), nil
}

// Cancel stops renewal. Paid entitlements last until the period ends.
func (s *SubscriptionService) Cancel(ctx context.Context, businessID, actorID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.subscriptionRepo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_STATE", "Business has no paid subscription to cancel")
		}
		s.logger.Error("Failed to load subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
	}

	if err := sub.Cancel(); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
	}

	if err := s.auditor.Record(ctx, businessID, &actorID, audit.ActionTierChanged, "Subscription", sub.ID,
		map[string]string{"from": sub.Tier.String(), "to": "cancelled"}); err != nil {
		s.logger.Warn("Failed to audit cancellation", zap.Error(err))
	}

	return toSubscriptionDTO(sub), nil
}

// Usage reports this month's consumption across metered features
func (s *SubscriptionService) Usage(ctx context.Context, businessID uuid.UUID) ([]UsageDTO, error) {
	sub, err := s.subscriptionRepo.FindByBusinessID(ctx, businessID)
	tier := billing.TierStarter
	if err == nil {
		tier = sub.EffectiveTier()
	} else if !shared.IsNotFound(err) {
		s.logger.Error("Failed to load subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
	}

	period := billing.UsagePeriod(time.Now().UTC())
	counters, err := s.usageRepo.FindAllForPeriod(ctx, businessID, period)
	if err != nil {
		s.logger.Error("Failed to load usage counters", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load usage")
	}

	used := make(map[billing.Feature]int64, len(counters))
	for _, c := range counters {
		used[c.Feature] = c.Used
	}

	metered := []billing.Feature{billing.FeatureInvoices, billing.FeatureEmailSends, billing.FeatureExports}
	dtos := make([]UsageDTO, 0, len(metered))
	for _, f := range metered {
		dtos = append(dtos, UsageDTO{
			Feature: f.String(),
			Period:  period,
			Used:    used[f],
			Limit:   billing.LimitFor(tier, f),
		})
	}
	return dtos, nil
}

func toSubscriptionDTO(sub *billing.Subscription) *SubscriptionDTO {
	effective := sub.EffectiveTier()
	return &SubscriptionDTO{
		BusinessID:    sub.BusinessID,
		Tier:          sub.Tier.String(),
		EffectiveTier: effective.String(),
		Status:        string(sub.Status),
		PeriodStart:   sub.PeriodStart,
		PeriodEnd:     sub.PeriodEnd,
		Limits:        billing.LimitsFor(effective),
	}
}
