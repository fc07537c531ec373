// Package types provides common types used across Boxoffice.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BpsScale is the divisor for basis-point rates: 10000 bps == 100%.
// All percentage-style rates in Boxoffice (price modifiers, discount
// rates, fee rates, tax rates) are expressed in basis points so that
// price arithmetic never touches binary floating point.
const BpsScale int64 = 10000

// Money represents a monetary value in the smallest currency unit.
// All arithmetic is integer-only — no floating point.
//
// Examples:
//   - USD(5000) = $50.00 (5000 cents)
//   - EUR(12550) = €125.50 (12550 cents)
type Money struct {
	Amount   int64  `json:"amount"`   // Smallest unit (cents, pence, etc)
	Currency string `json:"currency"` // ISO 4217 lowercase: "usd", "eur", "gbp"
}

// Common currency constructors

// USD creates a Money value in US Dollars (cents).
func USD(cents int64) Money { return Money{Amount: cents, Currency: "usd"} }

// EUR creates a Money value in Euros (cents).
func EUR(cents int64) Money { return Money{Amount: cents, Currency: "eur"} }

// GBP creates a Money value in British Pounds (pence).
func GBP(pence int64) Money { return Money{Amount: pence, Currency: "gbp"} }

// AUD creates a Money value in Australian Dollars (cents).
func AUD(cents int64) Money { return Money{Amount: cents, Currency: "aud"} }

// Zero returns a zero Money value in the specified currency.
func Zero(currency string) Money { return Money{Amount: 0, Currency: strings.ToLower(currency)} }

// Arithmetic operations

// Add adds two Money values. Panics if currencies don't match.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// Subtract subtracts another Money value. Panics if currencies don't match.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}
}

// Multiply multiplies the Money by a quantity.
func (m Money) Multiply(qty int64) Money {
	return Money{Amount: m.Amount * qty, Currency: m.Currency}
}

// Negate returns the negative of the Money value.
func (m Money) Negate() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// ApplyBps scales the Money by a basis-point rate, rounding half away
// from zero. ApplyBps(10000) is the identity; ApplyBps(300) is 3%.
// This is the single rounding point for all pricing stages.
func (m Money) ApplyBps(bps int64) Money {
	prod := m.Amount * bps
	var amt int64
	if prod >= 0 {
		amt = (prod + BpsScale/2) / BpsScale
	} else {
		amt = (prod - BpsScale/2) / BpsScale
	}
	return Money{Amount: amt, Currency: m.Currency}
}

// Clamp bounds the Money between optional minimum and maximum values.
// A nil bound is ignored. Panics if a bound carries another currency.
func (m Money) Clamp(minimum, maximum *Money) Money {
	if minimum != nil {
		m.assertSameCurrency(*minimum)
		if m.Amount < minimum.Amount {
			return *minimum
		}
	}
	if maximum != nil {
		m.assertSameCurrency(*maximum)
		if m.Amount > maximum.Amount {
			return *maximum
		}
	}
	return m
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Equal returns true if both Money values are equal (same amount and currency).
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// LessThan returns true if this Money is less than other. Panics if currencies don't match.
func (m Money) LessThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount < other.Amount
}

// GreaterThanOrEqual returns true if this Money is at least other.
// Panics if currencies don't match.
func (m Money) GreaterThanOrEqual(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount >= other.Amount
}

// Formatting methods

// FormatMajor returns the major unit string without currency symbol,
// e.g. "50.00" for USD(5000).
func (m Money) FormatMajor() string {
	isNegative := m.Amount < 0
	absAmount := m.Amount
	if isNegative {
		absAmount = -absAmount
	}

	result := fmt.Sprintf("%d.%02d", absAmount/100, absAmount%100)
	if isNegative {
		return "-" + result
	}
	return result
}

// String returns a human-readable string with currency symbol.
// Examples: "$50.00", "€125.50", "£99.00"
func (m Money) String() string {
	return currencySymbol(m.Currency) + m.FormatMajor()
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount,
		Currency: m.Currency,
		Display:  m.String(),
	})
}

// Helper functions

// assertSameCurrency panics if currencies don't match.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}

// currencySymbol returns the symbol for a currency code.
func currencySymbol(currency string) string {
	symbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
		"cad": "C$",
		"aud": "A$",
		"nzd": "NZ$",
	}
	if sym, ok := symbols[strings.ToLower(currency)]; ok {
		return sym
	}
	return strings.ToUpper(currency) + " "
}

// Sum calculates the sum of multiple Money values. All must have the same currency.
func Sum(values ...Money) Money {
	if len(values) == 0 {
		return Zero("usd")
	}

	result := values[0]
	for i := 1; i < len(values); i++ {
		result = result.Add(values[i])
	}
	return result
}
