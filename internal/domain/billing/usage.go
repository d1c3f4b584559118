package billing

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UsageCounter tracks consumption of a metered feature for one business
// in one calendar month. Absolute features (accounts, members) are
// counted directly from their tables and do not use counters.
type UsageCounter struct {
	shared.BusinessAggregateRoot
	Feature Feature
	Period  string // Calendar month, formatted YYYY-MM
	Used    int64
}

// UsagePeriod formats a time as the counter period key
func UsagePeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// NewUsageCounter creates an empty counter for a feature and period
func NewUsageCounter(businessID uuid.UUID, feature Feature, period string) (*UsageCounter, error) {
	if !feature.IsValid() {
		return nil, shared.NewDomainError("INVALID_FEATURE", "Feature is not valid")
	}
	if period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Usage period cannot be empty")
	}
	return &UsageCounter{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Feature:               feature,
		Period:                period,
		Used:                  0,
	}, nil
}

// Consume adds to the counter
func (c *UsageCounter) Consume(n int64) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Consumption amount must be positive")
	}
	c.Used += n
	c.Touch()
	return nil
}
