package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	p, err := NewPeriod(from, to)
	require.NoError(t, err)
	assert.True(t, p.Contains(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(from))
	assert.True(t, p.Contains(to))
	assert.False(t, p.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))

	_, err = NewPeriod(to, from)
	assert.Error(t, err)
	_, err = NewPeriod(time.Time{}, to)
	assert.Error(t, err)
}

func TestGranularity_Bucket(t *testing.T) {
	d := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08", GranularityMonth.Bucket(d))
	assert.Equal(t, "2026-Q3", GranularityQuarter.Bucket(d))
	assert.Equal(t, "2026", GranularityYear.Bucket(d))
}

func TestType_IsValid(t *testing.T) {
	assert.True(t, TypeRevenueByPeriod.IsValid())
	assert.True(t, TypeTaxSummary.IsValid())
	assert.False(t, Type("profit_and_loss").IsValid())
}
