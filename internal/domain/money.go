package domain

import (
	"github.com/shopspring/decimal"
)

// Currency is the closed set of currencies the system accounts in.
type Currency string

// Supported currency codes.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyARS Currency = "ARS"
)

// ParseCurrency validates a currency code and returns the typed value.
// Returns ErrInvalidCurrency for anything outside the supported set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(code)
	if !isValidCurrency(c) {
		return "", NewValidationError("currency", "not supported: "+code, ErrInvalidCurrency)
	}
	return c, nil
}

// isValidCurrency checks if the given code is a supported Currency.
func isValidCurrency(c Currency) bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyMXN, CurrencyARS:
		return true
	default:
		return false
	}
}

// Amount is an immutable, non-negative monetary value. Display semantics are
// two decimal places; internally the full decimal precision is kept so that
// intermediate arithmetic does not accumulate rounding error.
type Amount struct {
	value decimal.Decimal
}

// NewAmount creates an Amount from a decimal value.
// Returns ErrNegativeAmount if the value is negative.
func NewAmount(v decimal.Decimal) (Amount, error) {
	if v.IsNegative() {
		return Amount{}, NewValidationError("amount", "cannot be negative", ErrNegativeAmount)
	}
	return Amount{value: v}, nil
}

// NewAmountFromFloat creates an Amount from a float64.
// Returns ErrNegativeAmount if the value is negative.
func NewAmountFromFloat(v float64) (Amount, error) {
	return NewAmount(decimal.NewFromFloat(v))
}

// ZeroAmount returns the zero monetary value.
func ZeroAmount() Amount {
	return Amount{value: decimal.Zero}
}

// Add returns the sum of the two amounts.
// The result is re-validated through NewAmount like every arithmetic operation.
func (a Amount) Add(b Amount) (Amount, error) {
	return NewAmount(a.value.Add(b.value))
}

// Sub returns the difference of the two amounts.
// Fails with ErrNegativeAmount when the subtrahend exceeds the amount.
func (a Amount) Sub(b Amount) (Amount, error) {
	return NewAmount(a.value.Sub(b.value))
}

// Mul returns the amount scaled by the given factor.
// Fails with ErrNegativeAmount for negative factors.
func (a Amount) Mul(factor decimal.Decimal) (Amount, error) {
	return NewAmount(a.value.Mul(factor))
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Round2 returns the value rounded to two decimal places for display.
func (a Amount) Round2() decimal.Decimal {
	return a.value.Round(2)
}

// StringFixed renders the amount with exactly two decimal places.
func (a Amount) StringFixed() string {
	return a.value.StringFixed(2)
}

// MarshalJSON renders the amount the way the underlying decimal does.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

// UnmarshalJSON parses a decimal value and re-validates it through NewAmount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	amount, err := NewAmount(v)
	if err != nil {
		return err
	}

	*a = amount
	return nil
}

// Equal reports whether two amounts represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.value.Equal(b.value)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}
