package billing

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// IsValid checks if the status is a valid SubscriptionStatus
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPastDue, SubscriptionStatusCancelled:
		return true
	}
	return false
}

// Subscription carries a business's tier and billing period
type Subscription struct {
	shared.BusinessAggregateRoot
	Tier        Tier
	Status      SubscriptionStatus
	PeriodStart time.Time
	PeriodEnd   time.Time
	CancelledAt *time.Time
}

// NewSubscription creates a subscription for a business. New businesses
// start on the free starter tier.
func NewSubscription(businessID uuid.UUID, tier Tier) (*Subscription, error) {
	if !tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIER", "Tier is not valid")
	}

	now := time.Now()
	return &Subscription{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Tier:                  tier,
		Status:                SubscriptionStatusActive,
		PeriodStart:           now,
		PeriodEnd:             now.AddDate(0, 1, 0),
	}, nil
}

// ChangeTier moves the subscription to a new tier and restarts the
// billing period
func (s *Subscription) ChangeTier(tier Tier) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Tier is not valid")
	}
	if s.Status == SubscriptionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled subscriptions cannot change tier")
	}
	if tier == s.Tier {
		return shared.NewDomainError("INVALID_STATE", "Subscription is already on this tier")
	}

	now := time.Now()
	s.Tier = tier
	s.Status = SubscriptionStatusActive
	s.PeriodStart = now
	s.PeriodEnd = now.AddDate(0, 1, 0)
	s.Touch()
	return nil
}

// MarkPastDue flags a payment failure on the subscription
func (s *Subscription) MarkPastDue() error {
	if s.Status != SubscriptionStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active subscriptions can become past due")
	}
	s.Status = SubscriptionStatusPastDue
	s.Touch()
	return nil
}

// Cancel drops the subscription back to the free starter tier at the
// end of the current period
func (s *Subscription) Cancel() error {
	if s.Status == SubscriptionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Subscription is already cancelled")
	}
	now := time.Now()
	s.Status = SubscriptionStatusCancelled
	s.CancelledAt = &now
	s.Touch()
	return nil
}

// EffectiveTier returns the tier used for entitlement checks. A
// cancelled or expired paid subscription falls back to starter.
func (s *Subscription) EffectiveTier() Tier {
	if s.Status == SubscriptionStatusCancelled && time.Now().After(s.PeriodEnd) {
		return TierStarter
	}
	return s.Tier
}
