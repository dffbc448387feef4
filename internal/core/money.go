// Package core holds the domain model shared by storage, services, and the
// HTTP layer: entities, validation, the error taxonomy, and money handling.
package core

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units. Arithmetic on balances happens
// on Cents; decimal is used only at the boundary to parse and format amounts
// without floating-point drift.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string (e.g. "12.34") into Money, rounding
// half-up past two decimal places. Zero and negative amounts are rejected;
// magnitudes are always positive, direction comes from the transaction type.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, validationf("invalid amount %q", s)
	}
	if d.Sign() <= 0 {
		return Money{}, validationf("amount must be greater than zero")
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, validationf("amount %q out of range", s)
	}
	v := cents.IntPart()
	if v <= 0 {
		return Money{}, validationf("amount must be greater than zero")
	}
	return Money{Cents: v}, nil
}

// ParseSignedAmount is ParseAmount without the positivity requirement, for
// values that legitimately carry a sign such as corrected account balances.
func ParseSignedAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, validationf("invalid amount %q", s)
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, validationf("amount %q out of range", s)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// String renders the amount with two decimal places, e.g. "12.34" or "-0.05".
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}
