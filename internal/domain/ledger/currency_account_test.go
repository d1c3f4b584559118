package ledger

import (
	"testing"

	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrencyAccount_Primary(t *testing.T) {
	a, err := NewCurrencyAccount(uuid.New(), "Main (NGN)", valueobject.NGN, true, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, a.IsPrimary)
	// Primary account rate is pinned to 1 regardless of input
	assert.True(t, a.ExchangeRateToPrimary.Equal(decimal.NewFromInt(1)))
	assert.True(t, a.CanCreateDocuments())
}

func TestNewCurrencyAccount_Foreign(t *testing.T) {
	rate := decimal.RequireFromString("1650.25")
	a, err := NewCurrencyAccount(uuid.New(), "USD Sales", valueobject.USD, false, rate)
	require.NoError(t, err)
	assert.False(t, a.IsPrimary)
	assert.True(t, a.ExchangeRateToPrimary.Equal(rate))
}

func TestNewCurrencyAccount_Validation(t *testing.T) {
	businessID := uuid.New()

	_, err := NewCurrencyAccount(businessID, "", valueobject.USD, false, decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewCurrencyAccount(businessID, "Bad", valueobject.Currency("???"), false, decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewCurrencyAccount(businessID, "Bad rate", valueobject.USD, false, decimal.Zero)
	assert.Error(t, err)

	_, err = NewCurrencyAccount(businessID, "Negative rate", valueobject.USD, false, decimal.NewFromInt(-3))
	assert.Error(t, err)
}

func TestCurrencyAccount_UpdateExchangeRate(t *testing.T) {
	a, err := NewCurrencyAccount(uuid.New(), "USD Sales", valueobject.USD, false, decimal.NewFromInt(1500))
	require.NoError(t, err)

	require.NoError(t, a.UpdateExchangeRate(decimal.NewFromInt(1600)))
	assert.True(t, a.ExchangeRateToPrimary.Equal(decimal.NewFromInt(1600)))

	assert.Error(t, a.UpdateExchangeRate(decimal.Zero))

	primary, err := NewCurrencyAccount(uuid.New(), "Main", valueobject.NGN, true, decimal.Zero)
	require.NoError(t, err)
	assert.Error(t, primary.UpdateExchangeRate(decimal.NewFromInt(2)))
}

func TestCurrencyAccount_Archive(t *testing.T) {
	a, err := NewCurrencyAccount(uuid.New(), "USD Sales", valueobject.USD, false, decimal.NewFromInt(1500))
	require.NoError(t, err)

	require.NoError(t, a.Archive())
	assert.False(t, a.CanCreateDocuments())
	assert.Error(t, a.Archive())

	primary, err := NewCurrencyAccount(uuid.New(), "Main", valueobject.NGN, true, decimal.Zero)
	require.NoError(t, err)
	assert.Error(t, primary.Archive())
}
