package kernel

import (
	"fmt"

	"intimacoes/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary amount with exact decimal arithmetic.
// It is used for the per-item delivery fee and every payable total derived from it.
// Money carries no currency: formatting for display belongs to the presentation layer.
//
// The zero value is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the additive identity.
var ZeroMoney = Money{}

// NewMoney wraps a decimal amount, rejecting negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal literal such as "3" or "2.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for literals known to be valid; it panics otherwise.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times returns m multiplied by a non-negative item count.
func (m Money) Times(items int) Money {
	if items <= 0 {
		return ZeroMoney
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(items)))}
}

// Decimal exposes the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 27 equals 27.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(data []byte) error {
	parsed, err := MoneyFromString(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
