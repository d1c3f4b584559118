package billing

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository persists Subscription aggregates
type SubscriptionRepository interface {
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*Subscription, error)
	Save(ctx context.Context, subscription *Subscription) error
}

// UsageRepository persists monthly usage counters
type UsageRepository interface {
	// FindOrCreate loads the counter for a feature/period, creating a
	// zero counter when none exists yet
	FindOrCreate(ctx context.Context, businessID uuid.UUID, feature Feature, period string) (*UsageCounter, error)
	FindAllForPeriod(ctx context.Context, businessID uuid.UUID, period string) ([]UsageCounter, error)
	Save(ctx context.Context, counter *UsageCounter) error
}
