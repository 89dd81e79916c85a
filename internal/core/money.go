// Package core provides the expense tracker's domain types.
//
// This file contains the Money type together with its parsing, arithmetic
// and display helpers. Amounts are held as integer cents; decimal text is
// converted with shopspring/decimal so no float ever touches a stored value.
package core

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Money struct {
	Cents int64
}

// MaxAmount is the largest magnitude a parsed amount may have, in whole
// currency units.
const MaxAmount = 1_000_000_000_000

var maxAmount = decimal.NewFromInt(MaxAmount)

// ParseMoney converts a decimal string to Money with half-up rounding to cents.
//
// A lone comma is a decimal separator (12,34). When both separators appear,
// the last one is the decimal separator and the other groups thousands
// (1,234.56 and 1.234,56). Several commas and no dot group thousands
// (1,234,567). Negative and zero values are returned as parsed; callers
// decide what range is valid. Magnitudes above MaxAmount are rejected.
//
// Examples:
//
//	ParseMoney("12.34")    -> 1234 cents
//	ParseMoney("12,34")    -> 1234 cents
//	ParseMoney("1,234.56") -> 123456 cents
//	ParseMoney("12.345")   -> 1235 cents
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return MoneyFromDecimal(d)
}

func normalizeSeparators(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma < 0:
		return s
	case dot < 0 && strings.Count(s, ",") == 1:
		return strings.Replace(s, ",", ".", 1)
	case dot < 0:
		return strings.ReplaceAll(s, ",", "")
	case dot > comma:
		return strings.ReplaceAll(s, ",", "")
	default:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	}
}

// ParseAmount is ParseMoney restricted to strictly positive values.
func ParseAmount(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromDecimal rounds d half away from zero to two places. Magnitudes
// above MaxAmount are rejected with ErrInvalidAmount.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	d = d.Round(2)
	if d.Abs().GreaterThan(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Shift(2).IntPart()}, nil
}

// FromUnits builds Money from a whole amount, e.g. FromUnits(2000) is 2000.00.
func FromUnits(units int64) Money {
	return Money{Cents: units * 100}
}

// Validate requires a positive amount no larger than MaxAmount.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmount*100 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Add saturates at the int64 bounds instead of wrapping.
func (m Money) Add(o Money) Money {
	sum := m.Cents + o.Cents
	switch {
	case o.Cents > 0 && sum < m.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents < 0 && sum > m.Cents:
		return Money{Cents: math.MinInt64}
	}
	return Money{Cents: sum}
}

// Sub saturates at the int64 bounds instead of wrapping.
func (m Money) Sub(o Money) Money {
	if o.Cents == math.MinInt64 {
		return m.Add(Money{Cents: math.MaxInt64}).Add(Money{Cents: 1})
	}
	return m.Add(Money{Cents: -o.Cents})
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// String renders the shortest exact decimal form ("2500", "12.5").
func (m Money) String() string {
	return m.Decimal().String()
}

// Format renders m for display with thousands separators, e.g. "PHP 2,500.00".
func (m Money) Format(currency string) string {
	fixed := m.Decimal().Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if currency != "" {
		b.WriteString(currency)
		b.WriteByte(' ')
	}
	if m.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// MarshalJSON writes m as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string. Quoted
// strings follow the ParseMoney separator rules.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidAmount
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return ErrInvalidAmount
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
