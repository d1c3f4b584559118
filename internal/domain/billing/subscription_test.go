package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	s, err := NewSubscription(uuid.New(), TierStarter)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionStatusActive, s.Status)
	assert.Equal(t, TierStarter, s.EffectiveTier())

	_, err = NewSubscription(uuid.New(), Tier("bogus"))
	assert.Error(t, err)
}

func TestSubscription_ChangeTier(t *testing.T) {
	s, err := NewSubscription(uuid.New(), TierStarter)
	require.NoError(t, err)

	require.NoError(t, s.ChangeTier(TierProfessional))
	assert.Equal(t, TierProfessional, s.Tier)

	assert.Error(t, s.ChangeTier(TierProfessional))
	assert.Error(t, s.ChangeTier(Tier("bogus")))
}

func TestSubscription_Cancel(t *testing.T) {
	s, err := NewSubscription(uuid.New(), TierProfessional)
	require.NoError(t, err)

	require.NoError(t, s.Cancel())
	assert.Equal(t, SubscriptionStatusCancelled, s.Status)
	assert.Error(t, s.Cancel())
	assert.Error(t, s.ChangeTier(TierBusiness))

	// Tier is kept until the paid period runs out
	assert.Equal(t, TierProfessional, s.EffectiveTier())
	s.PeriodEnd = time.Now().Add(-time.Hour)
	assert.Equal(t, TierStarter, s.EffectiveTier())
}

func TestUsageCounter(t *testing.T) {
	c, err := NewUsageCounter(uuid.New(), FeatureInvoices, "2026-09")
	require.NoError(t, err)
	assert.EqualValues(t, 0, c.Used)

	require.NoError(t, c.Consume(3))
	require.NoError(t, c.Consume(1))
	assert.EqualValues(t, 4, c.Used)

	assert.Error(t, c.Consume(0))
	assert.Error(t, c.Consume(-2))
}

func TestUsagePeriod(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-09", UsagePeriod(ts))
}
