package product

import (
	"github.com/shopspring/decimal"
)

// Money is a value object for monetary amounts. It wraps decimal.Decimal so
// pricing arithmetic never goes through binary floating point.
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoneyFromDecimal wraps an existing decimal amount.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromInt creates an amount from whole currency units.
func NewMoneyFromInt(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// NewMoneyFromString parses an amount from its decimal string form.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRateRounded applies a fractional rate and rounds the result to whole
// currency units, half away from zero. Used for percentage discounts.
func (m Money) MulRateRounded(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(0)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount for persistence adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the decimal string form of the amount.
func (m Money) String() string {
	return m.amount.String()
}
