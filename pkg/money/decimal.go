// Package money provides a fixed-point decimal amount that always renders
// with exactly two fraction digits on the wire.
package money

import (
	"bytes"
	"database/sql/driver"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const places = 2

// Decimal is a two-decimal-place amount. The zero value is "0.00".
type Decimal struct {
	d decimal.Decimal
}

// FromString parses a decimal string like "150.00" or "25.5". Values with
// more than two fraction digits are rejected.
func FromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, errors.WithStack(err)
	}
	if d.Exponent() < -places {
		return Decimal{}, errors.Errorf("%q has more than %d decimal places", s, places)
	}
	return Decimal{d}, nil
}

// FromInt returns the Decimal for a whole number.
func FromInt(n int64) Decimal {
	return Decimal{decimal.NewFromInt(n)}
}

// Ratio returns sum/count rounded half-up to two decimal places. It is used
// for averages that must be exact, like ratings.
func Ratio(sum, count int64) Decimal {
	return Decimal{decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(count), places)}
}

func (m Decimal) Sub(o Decimal) Decimal {
	return Decimal{m.d.Sub(o.d)}
}

func (m Decimal) LessThan(o Decimal) bool {
	return m.d.LessThan(o.d)
}

func (m Decimal) Equal(o Decimal) bool {
	return m.d.Equal(o.d)
}

func (m Decimal) IsNegative() bool {
	return m.d.IsNegative()
}

// String renders with exactly two fraction digits, e.g. "100.00".
func (m Decimal) String() string {
	return m.d.StringFixed(places)
}

// MarshalJSON renders the amount as a JSON string, matching the wire format
// for prices and ratings.
func (m Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string ("150.00") or a bare number
// (150.00).
func (m *Decimal) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" {
		return nil
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalText lets query parameters bind to a Decimal.
func (m *Decimal) UnmarshalText(text []byte) error {
	parsed, err := FromString(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the amount in its canonical two-digit form. Numeric column
// affinity converts it on write, so comparisons and ordering stay numeric.
func (m Decimal) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Decimal) Scan(value interface{}) error {
	return m.d.Scan(value)
}
