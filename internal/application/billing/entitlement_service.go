package billing

import (
	"context"
	"time"

	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entitlement is the outcome of a feature gate check
type Entitlement struct {
	Feature billing.Feature `json:"feature"`
	Tier    billing.Tier    `json:"tier"`
	Limit   int64           `json:"limit"`
	Used    int64           `json:"used"`
	Allowed bool            `json:"allowed"`
}

// EntitlementService gates every feature behind the business's
// subscription tier. A denied check never mutates state: usage is
// consumed only after the gated operation succeeds.
type EntitlementService struct {
	subscriptionRepo billing.SubscriptionRepository
	usageRepo        billing.UsageRepository
	logger           *zap.Logger
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	subscriptionRepo billing.SubscriptionRepository,
	usageRepo billing.UsageRepository,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		logger:           logger,
	}
}

// EffectiveTier resolves the business's current tier. A business with
// no subscription record is on the free starter tier.
func (s *EntitlementService) EffectiveTier(ctx context.Context, businessID uuid.UUID) (billing.Tier, error) {
	sub, err := s.subscriptionRepo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if shared.IsNotFound(err) {
			return billing.TierStarter, nil
		}
		s.logger.Error("Failed to load subscription", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
	}
	return sub.EffectiveTier(), nil
}

// CheckMonthly gates a metered feature against this month's usage
// counter. Checking pass n=1 for single operations.
func (s *EntitlementService) CheckMonthly(ctx context.Context, businessID uuid.UUID, feature billing.Feature, n int64) (*Entitlement, error) {
	tier, err := s.EffectiveTier(ctx, businessID)
	if err != nil {
		return nil, err
	}

	limit := billing.LimitFor(tier, feature)
	ent := &Entitlement{Feature: feature, Tier: tier, Limit: limit}

	if limit == billing.Unlimited {
		ent.Allowed = true
		return ent, nil
	}
	if limit == 0 {
		return ent, nil
	}

	counter, err := s.usageRepo.FindOrCreate(ctx, businessID, feature, billing.UsagePeriod(time.Now().UTC()))
	if err != nil {
		s.logger.Error("Failed to load usage counter", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load usage")
	}

	ent.Used = counter.Used
	ent.Allowed = counter.Used+n <= limit
	return ent, nil
}

// CheckStructural gates a feature limited by a standing count, such as
// currency accounts or team seats. The caller supplies the current
// count; the check passes when one more still fits the limit.
func (s *EntitlementService) CheckStructural(ctx context.Context, businessID uuid.UUID, feature billing.Feature, current int64) (*Entitlement, error) {
	tier, err := s.EffectiveTier(ctx, businessID)
	if err != nil {
		return nil, err
	}

	limit := billing.LimitFor(tier, feature)
	ent := &Entitlement{Feature: feature, Tier: tier, Limit: limit, Used: current}
	ent.Allowed = limit == billing.Unlimited || current+1 <= limit
	return ent, nil
}

// CheckSwitch gates an on/off feature such as api_access, where the
// tier limit is 0 or 1 rather than a quota.
func (s *EntitlementService) CheckSwitch(ctx context.Context, businessID uuid.UUID, feature billing.Feature) (*Entitlement, error) {
	tier, err := s.EffectiveTier(ctx, businessID)
	if err != nil {
		return nil, err
	}

	limit := billing.LimitFor(tier, feature)
	ent := &Entitlement{Feature: feature, Tier: tier, Limit: limit}
	ent.Allowed = limit == billing.Unlimited || limit >= 1
	return ent, nil
}

// Require turns a failed check into the upgrade error surfaced to the
// API as 403 upgrade_required.
func (s *EntitlementService) Require(ent *Entitlement) error {
	if ent.Allowed {
		return nil
	}
	s.logger.Info("Entitlement denied",
		zap.String("feature", ent.Feature.String()),
		zap.String("tier", ent.Tier.String()),
		zap.Int64("limit", ent.Limit),
		zap.Int64("used", ent.Used))
	return shared.NewDomainError(shared.CodeUpgradeRequired,
		ent.Feature.DisplayName()+" limit reached for the "+ent.Tier.String()+" plan")
}

// Consume records n units of a metered feature against this month's
// counter. Call only after the gated operation has succeeded.
func (s *EntitlementService) Consume(ctx context.Context, businessID uuid.UUID, feature billing.Feature, n int64) error {
	counter, err := s.usageRepo.FindOrCreate(ctx, businessID, feature, billing.UsagePeriod(time.Now().UTC()))
	if err != nil {
		s.logger.Error("Failed to load usage counter", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load usage")
	}
	if err := counter.Consume(n); err != nil {
		return err
	}
	if err := s.usageRepo.Save(ctx, counter); err != nil {
		s.logger.Error("Failed to save usage counter", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to save usage")
	}
	return nil
}
