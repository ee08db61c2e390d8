package fifo

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// Decimal returns the raw decimal value of the money.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// Simple wrappers around the decimal value.

func (m Money) Currency() string       { return m.cur }
func (m Money) Equal(n Money) bool     { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) IsPositive() bool       { return m.value.IsPositive() }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool  { return m.value.LessThan(n.value) }
func (m Money) Neg() Money             { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(shares int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(shares)), cur: m.cur}
}
func (m Money) Div(shares int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(shares)), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// WithCurrency returns a copy of m denominated in the given currency code.
// The numeric value is untouched, this tool never converts between currencies.
func (m Money) WithCurrency(currency string) Money {
	m.cur = currency
	return m
}
