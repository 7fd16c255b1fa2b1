package core

import (
	"errors"
	"testing"
)

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		err error
	}{
		{"1", 100, nil},
		{"1.0", 100, nil},
		{"1.23", 123, nil},
		{"1,23", 123, nil},
		{"12.50", 1250, nil},
		{"0.01", 1, nil},
		{"1.005", 101, nil}, // half-up on the third decimal
		{" 2.50 ", 250, nil},
		{"100", 10000, nil},
		{"0", 0, ErrAmountNotPositive},
		{"0.00", 0, ErrAmountNotPositive},
		{"-1", 0, ErrAmountNotPositive},
		{"-abc", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
		{"1.2.3", 0, ErrInvalidAmount},
		{"1,2,3", 0, ErrInvalidAmount},
		{"", 0, ErrInvalidAmount},
		{"  ", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.err == nil {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, tc.err) {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.err, err)
		}
	}
}

func TestNormalizeAmountText(t *testing.T) {
	cases := []struct{ in, out string }{
		{"12,50", "12.50"},
		{" 12.50 ", "12.50"},
		{"3,5", "3.5"},
	}
	for _, tc := range cases {
		if got := NormalizeAmountText(tc.in); got != tc.out {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestParseRate(t *testing.T) {
	if r, err := ParseRate("1,10"); err != nil || r != 1.10 {
		t.Fatalf("expected 1.10, got %v (err=%v)", r, err)
	}
	if r, err := ParseRate("0.85"); err != nil || r != 0.85 {
		t.Fatalf("expected 0.85, got %v (err=%v)", r, err)
	}
	for _, in := range []string{"", "abc", "0", "-2"} {
		if _, err := ParseRate(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestMoneyConvert(t *testing.T) {
	// 100 at a "1,10" rate must record 110.00 in the base currency.
	rate, err := ParseRate("1,10")
	if err != nil {
		t.Fatal(err)
	}
	got := Money{Cents: 10000}.Convert(rate)
	if got.Cents != 11000 {
		t.Fatalf("expected 11000 cents, got %d", got.Cents)
	}
	if got.Format() != "110.00" {
		t.Fatalf("expected 110.00, got %s", got.Format())
	}

	// Fractional results round half-up to the cent.
	if got := (Money{Cents: 333}).Convert(1.115); got.Cents != 371 {
		t.Fatalf("expected 371 cents, got %d", got.Cents)
	}
}
