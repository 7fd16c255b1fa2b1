package core

import "testing"

func TestReceiptIDDeterministic(t *testing.T) {
	a := ReceiptID("Coffee", "3.50", "2024-01-0109:00:00")
	b := ReceiptID("Coffee", "3.50", "2024-01-0109:00:00")
	if a != b {
		t.Fatalf("same inputs produced %s and %s", a, b)
	}
	if len(a) != 8 {
		t.Fatalf("expected 8 characters, got %q", a)
	}
	for _, r := range a {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')) {
			t.Fatalf("expected uppercase hex, got %q", a)
		}
	}
}

func TestReceiptIDDivergesPerSecond(t *testing.T) {
	a := ReceiptID("Coffee", "3.50", "2024-01-0109:00:00")
	b := ReceiptID("Coffee", "3.50", "2024-01-0109:00:01")
	if a == b {
		t.Fatalf("timestamps one second apart produced the same token %s", a)
	}
}

func TestReceiptIDDivergesPerInput(t *testing.T) {
	base := ReceiptID("Taxi", "12.50", "2024-01-0109:00:00")
	if got := ReceiptID("Taxi", "12.51", "2024-01-0109:00:00"); got == base {
		t.Fatalf("different amounts produced the same token %s", base)
	}
	if got := ReceiptID("Tram", "12.50", "2024-01-0109:00:00"); got == base {
		t.Fatalf("different descriptions produced the same token %s", base)
	}
}
