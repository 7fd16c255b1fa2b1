package core

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		in      string
		display string
		known   bool
	}{
		{"efectivo", "Efectivo", true},
		{"Tarjeta credito", "Tarjeta de crédito", true},
		{"TARJETA_DEBITO", "Tarjeta de débito", true},
		{"bizum", "Bizum", true},
		{"gift card", FallbackPaymentMethod, false},
		{"", FallbackPaymentMethod, false},
	}
	for _, tc := range cases {
		got := ParsePaymentMethod(tc.in)
		if got.Display != tc.display || got.Known != tc.known {
			t.Fatalf("%q: expected (%s, %v), got (%s, %v)", tc.in, tc.display, tc.known, got.Display, got.Known)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		display string
		known   bool
	}{
		{"pendiente", "Pendiente", true},
		{"PENDIENTE", "Pendiente", true},
		{"Confirmado", "Confirmado", true},
		{"reembolsado", "Reembolsado", true},
		{"whatever", FallbackStatus, false},
		{"", FallbackStatus, false},
	}
	for _, tc := range cases {
		got := ParseStatus(tc.in)
		if got.Display != tc.display || got.Known != tc.known {
			t.Fatalf("%q: expected (%s, %v), got (%s, %v)", tc.in, tc.display, tc.known, got.Display, got.Known)
		}
	}
}

func TestIsDeductible(t *testing.T) {
	cases := []struct {
		category string
		want     bool
	}{
		{"Transporte", true},
		{"transporte", true},
		{"Software", true},
		{"Formación", true},
		{"Alimentación", false},
		{"Mascotas", false},
		{"General", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsDeductible(tc.category); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.category, tc.want, got)
		}
	}
}

func TestDeductibleFlag(t *testing.T) {
	if DeductibleFlag(true) != "Sí" || DeductibleFlag(false) != "No" {
		t.Fatal("unexpected deductibility flags")
	}
}
