// Package core implements the expense record normalizer: amount parsing,
// receipt identifiers, closed label tables and column-profile row assembly.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary value in integer cents of whatever currency the
// surrounding record declares. Calculations stay in cents to avoid
// floating-point drift.
type Money struct {
	Cents int64
}

// NormalizeAmountText trims the raw amount and normalizes a decimal comma to
// a dot. This is the canonical amount text written to the sheet and hashed
// into the receipt identifier.
func NormalizeAmountText(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
}

// ParseAmountToCents converts a locale-flexible decimal string to cents.
//
// Both dot (12.34) and comma (12,34) separators are accepted; the third
// decimal digit is rounded half-up. Non-numeric input fails with
// ErrInvalidAmount, zero or negative input with ErrAmountNotPositive. Either
// failure must stop the pipeline before any identifier derivation or
// collaborator call.
func ParseAmountToCents(raw string) (int64, error) {
	s := NormalizeAmountText(raw)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		// Sign is parsed so "-3" rejects as non-positive, not malformed.
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return 0, ErrInvalidAmount
		}
		return 0, ErrAmountNotPositive
	}
	s = strings.TrimPrefix(s, "+")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrAmountNotPositive
	}
	return cents, nil
}

// ParseRate parses a conversion-rate cell value, tolerating a decimal comma.
// Rates must be positive.
func ParseRate(raw string) (float64, error) {
	s := NormalizeAmountText(raw)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if f <= 0 {
		return 0, ErrAmountNotPositive
	}
	return f, nil
}

// Convert applies a conversion rate and rounds half-up to the cent.
func (m Money) Convert(rate float64) Money {
	return Money{Cents: int64(float64(m.Cents)*rate + 0.5)}
}

// Amount returns the decimal value, for USER_ENTERED numeric cells.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the value with exactly two decimals, e.g. "110.00".
func (m Money) Format() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}
