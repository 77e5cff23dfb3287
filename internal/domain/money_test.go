package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAmount(t *testing.T) {
	t.Parallel()

	amount, err := NewAmount(decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !amount.Decimal().Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected 100, got %s", amount.Decimal())
	}

	_, err = NewAmount(decimal.NewFromInt(-1))
	if !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestAmountArithmetic(t *testing.T) {
	t.Parallel()

	a, _ := NewAmountFromFloat(10.50)
	b, _ := NewAmountFromFloat(4.25)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sum.StringFixed() != "14.75" {
		t.Errorf("Expected 14.75, got %s", sum.StringFixed())
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff.StringFixed() != "6.25" {
		t.Errorf("Expected 6.25, got %s", diff.StringFixed())
	}

	// Subtraction below zero re-validates and fails.
	_, err = b.Sub(a)
	if !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestAmountKeepsPrecision(t *testing.T) {
	t.Parallel()

	// A third of a dollar times three comes back to a dollar exactly when
	// full precision is carried through intermediate values.
	one, _ := NewAmount(decimal.NewFromInt(1))
	third, err := one.Mul(decimal.NewFromInt(1).Div(decimal.NewFromInt(3)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	back, err := third.Mul(decimal.NewFromInt(3))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if back.Round2().String() != "1" {
		t.Errorf("Expected 1, got %s", back.Round2())
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	t.Parallel()

	amount, _ := NewAmountFromFloat(1234.56)

	data, err := json.Marshal(amount)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded Amount
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !decoded.Equal(amount) {
		t.Errorf("Expected %s after round trip, got %s", amount.Decimal(), decoded.Decimal())
	}

	// A negative value must not sneak in through deserialization.
	var rejected Amount
	if err := json.Unmarshal([]byte(`"-5"`), &rejected); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"USD", "EUR", "MXN", "ARS"} {
		if _, err := ParseCurrency(code); err != nil {
			t.Errorf("Expected %s to parse, got %v", code, err)
		}
	}

	if _, err := ParseCurrency("GBP"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("Expected ErrInvalidCurrency, got %v", err)
	}
}
