package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code
type Currency string

// Commonly used currencies. Any ISO 4217 code known to the go-money
// currency table is accepted; these constants exist for convenience.
const (
	NGN Currency = "NGN" // Nigerian Naira
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	KES Currency = "KES" // Kenyan Shilling
	GHS Currency = "GHS" // Ghanaian Cedi
	ZAR Currency = "ZAR" // South African Rand
	CAD Currency = "CAD" // Canadian Dollar
)

// ParseCurrency validates a currency code against the ISO 4217 table
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", errors.New("currency code cannot be empty")
	}
	if gomoney.GetCurrency(code) == nil {
		return "", fmt.Errorf("unknown currency code: %s", code)
	}
	return Currency(code), nil
}

// IsValid returns true if the currency is a known ISO 4217 code
func (c Currency) IsValid() bool {
	return gomoney.GetCurrency(string(c)) != nil
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol for the currency (e.g. "$", "₦")
func (c Currency) Symbol() string {
	if cur := gomoney.GetCurrency(string(c)); cur != nil {
		return cur.Grapheme
	}
	return string(c)
}

// DecimalPlaces returns the number of minor units for the currency
func (c Currency) DecimalPlaces() int32 {
	if cur := gomoney.GetCurrency(string(c)); cur != nil {
		return int32(cur.Fraction)
	}
	return 2
}

// Money is an immutable value object for monetary amounts.
// All operations return new Money instances; arithmetic across
// different currencies is rejected.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("invalid currency: %q", currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustNewMoney creates Money and panics on an invalid currency.
// Intended for constants and tests.
func MustNewMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromString creates Money from a decimal string representation
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of both amounts.
// Returns an error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of both amounts.
// Returns an error if currencies don't match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns the amount multiplied by the given factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Negate returns the amount with the sign reversed
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Round returns the amount rounded to the currency's minor unit
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(m.currency.DecimalPlaces()), currency: m.currency}
}

// ConvertToPrimary converts the amount into the business's primary
// currency using the exchange rate captured when the owning document
// was created. When the currency already is the primary currency the
// amount passes through unchanged regardless of the stored rate.
func (m Money) ConvertToPrimary(primary Currency, rateToPrimary decimal.Decimal) Money {
	if m.currency == primary {
		return Money{amount: m.amount, currency: primary}
	}
	return Money{amount: m.amount.Mul(rateToPrimary), currency: primary}
}

// Equals returns true if both Money values have the same amount and currency
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Compare returns -1, 0, or 1 comparing this Money to the other.
// Returns an error if currencies don't match.
func (m Money) Compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.Cmp(other.amount), nil
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) (bool, error) {
	cmp, err := m.Compare(other)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// GreaterThan returns true if this Money is greater than the other
func (m Money) GreaterThan(other Money) (bool, error) {
	cmp, err := m.Compare(other)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

// String returns a human-readable representation, e.g. "NGN 850000.00"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(m.currency.DecimalPlaces()))
}

// moneyJSON is the wire representation of Money
type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
