package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{"NGN", NGN, false},
		{"usd", USD, false},
		{" eur ", EUR, false},
		{"", "", true},
		{"XXXX", "", true},
		{"NAIRA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMoney_RejectsInvalidCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(100), "BOGUS")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := MustNewMoney(decimal.NewFromInt(500000), NGN)
	b := MustNewMoney(decimal.NewFromInt(350000), NGN)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(850000)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(150000)))
}

func TestMoney_CrossCurrencyArithmeticRejected(t *testing.T) {
	ngn := MustNewMoney(decimal.NewFromInt(100), NGN)
	usd := MustNewMoney(decimal.NewFromInt(100), USD)

	_, err := ngn.Add(usd)
	assert.Error(t, err)
	_, err = ngn.Subtract(usd)
	assert.Error(t, err)
	_, err = ngn.Compare(usd)
	assert.Error(t, err)
}

func TestMoney_ConvertToPrimary(t *testing.T) {
	rate := decimal.RequireFromString("0.00065")

	t.Run("same currency passes through unchanged", func(t *testing.T) {
		m := MustNewMoney(decimal.NewFromInt(850000), NGN)
		got := m.ConvertToPrimary(NGN, rate)
		assert.True(t, got.Amount().Equal(decimal.NewFromInt(850000)))
		assert.Equal(t, NGN, got.Currency())
	})

	t.Run("foreign currency multiplies by captured rate", func(t *testing.T) {
		m := MustNewMoney(decimal.NewFromInt(850000), NGN)
		got := m.ConvertToPrimary(USD, rate)
		assert.True(t, got.Amount().Equal(decimal.RequireFromString("552.5")))
		assert.Equal(t, USD, got.Currency())
	})
}

func TestMoney_Round(t *testing.T) {
	m := MustNewMoney(decimal.RequireFromString("10.005"), USD)
	assert.Equal(t, "10.01", m.Round().Amount().String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := MustNewMoney(decimal.RequireFromString("1234.56"), GBP)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m.Equals(got))
}

func TestMoney_JSONRejectsInvalidCurrency(t *testing.T) {
	var got Money
	err := json.Unmarshal([]byte(`{"amount":"1","currency":"NOPE"}`), &got)
	assert.Error(t, err)
}
