package recon

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents a trade amount as read from a source file.
//
// An Amount is exact (decimal) and carries a validity flag: text that cannot be
// read as a number produces an invalid Amount, which never equals any other
// Amount, itself included.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// A creates a valid Amount from a numeric constant.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case float64:
		return Amount{value: decimal.NewFromFloat(v), valid: true}
	case int:
		return Amount{value: decimal.NewFromInt(int64(v)), valid: true}
	case int64:
		return Amount{value: decimal.NewFromInt(v), valid: true}
	case decimal.Decimal:
		return Amount{value: v, valid: true}
	}
	return Amount{}
}

// ParseAmount reads an amount from its text representation.
//
// Surrounding spaces are ignored. An empty or non-numeric text returns an
// invalid Amount and no error: a bad amount is a property of the record, not a
// failure of the file.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{value: d, valid: true}
}

func (a Amount) IsValid() bool { return a.valid }
func (a Amount) IsZero() bool  { return a.valid && a.value.IsZero() }

// Equal reports whether both amounts are valid and hold the exact same value.
func (a Amount) Equal(b Amount) bool { return a.valid && b.valid && a.value.Equal(b.value) }

func (a Amount) LessThan(b Amount) bool    { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }

// Sub returns a-b. The result is invalid if any operand is.
func (a Amount) Sub(b Amount) Amount {
	return Amount{value: a.value.Sub(b.value), valid: a.valid && b.valid}
}

// String returns the shortest exact text for the amount, "NaN" when invalid.
func (a Amount) String() string {
	if !a.valid {
		return "NaN"
	}
	return a.value.String()
}

// Format returns the amount formatted in the given ISO currency, e.g. "$2,050.00".
// An unknown currency falls back to the plain exact value.
func (a Amount) Format(currency string) string {
	if !a.valid {
		return "NaN"
	}
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return a.value.String()
	}
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// MarshalJSON encodes a valid amount as a JSON number and an invalid one as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}
