package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"1,234.56", 123456, true},
		{"1.234,56", 123456, true},
		{"1,234,567", 123456700, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"1000000000000", 100000000000000, true},
		{"1000000000000.01", 0, false},
		{"-1000000000000.01", 0, false},
		{"100000000000000000000", 0, false},
		{"92233720368547758.08", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseAmountRejectsNonPositive(t *testing.T) {
	for _, in := range []string{"0", "-3", "0.001"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
	if m, err := ParseAmount("0.005"); err != nil || m.Cents != 1 {
		t.Fatalf("expected 1 cent, got %d (err=%v)", m.Cents, err)
	}
}

func TestParseAmountRejectsAboveMax(t *testing.T) {
	if _, err := ParseAmount("1000000000000"); err != nil {
		t.Fatalf("max amount rejected: %v", err)
	}
	if err := (Money{Cents: MaxAmount*100 + 1}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("Validate() = %v, want ErrInvalidAmount", err)
	}
}

func TestMoneyArithmeticSaturates(t *testing.T) {
	top := Money{Cents: math.MaxInt64 - 1}
	if got := top.Add(Money{Cents: 5}); got.Cents != math.MaxInt64 {
		t.Fatalf("Add overflowed to %d", got.Cents)
	}
	bottom := Money{Cents: math.MinInt64 + 1}
	if got := bottom.Add(Money{Cents: -5}); got.Cents != math.MinInt64 {
		t.Fatalf("Add underflowed to %d", got.Cents)
	}
	if got := bottom.Sub(Money{Cents: 5}); got.Cents != math.MinInt64 {
		t.Fatalf("Sub underflowed to %d", got.Cents)
	}
	if got := (Money{Cents: 0}).Sub(Money{Cents: math.MinInt64}); got.Cents != math.MaxInt64 {
		t.Fatalf("Sub of MinInt64 = %d", got.Cents)
	}
	if got := FromUnits(3).Sub(FromUnits(5)); got.Cents != -200 {
		t.Fatalf("Sub = %d, want -200", got.Cents)
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		m    Money
		cur  string
		want string
	}{
		{FromUnits(2500), "PHP", "PHP 2,500.00"},
		{Money{Cents: 123456789}, "USD", "USD 1,234,567.89"},
		{Money{Cents: -50000}, "PHP", "PHP -500.00"},
		{Money{Cents: 5}, "", "0.05"},
	}
	for _, tc := range cases {
		if got := tc.m.Format(tc.cur); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.m.Cents, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 1250})
	if err != nil || string(b) != "12.5" {
		t.Fatalf("unexpected encoding %s (err=%v)", b, err)
	}
	for _, raw := range []string{`12.5`, `"12.50"`, `"12,50"`} {
		var m Money
		if err := json.Unmarshal([]byte(raw), &m); err != nil || m.Cents != 1250 {
			t.Fatalf("%s decoded to %d (err=%v)", raw, m.Cents, err)
		}
	}
	var m Money
	if err := json.Unmarshal([]byte(`"twelve"`), &m); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
	for _, raw := range []string{`100000000000000000000`, `"100000000000000000000"`} {
		if err := json.Unmarshal([]byte(raw), &m); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%s: out of range amount decoded (err=%v)", raw, err)
		}
	}
	if err := json.Unmarshal([]byte(`"1,234.50"`), &m); err != nil || m.Cents != 123450 {
		t.Fatalf("grouped amount decoded to %d (err=%v)", m.Cents, err)
	}
}
