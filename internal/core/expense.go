package core

import (
	"errors"
	"strings"
)

// DefaultCategory is applied when a caller omits the expense category.
const DefaultCategory = "General"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrUnknownProfile    = errors.New("unknown column profile")
)

type (
	// ExpenseInput is the per-call payload of the add-expense tool. Amount is
	// kept as free-form text; everything else is optional and defaulted or
	// label-mapped during normalization.
	ExpenseInput struct {
		Description   string
		Amount        string
		Category      string
		Currency      string
		PaymentMethod string
		Status        string
		Notes         string
		SheetName     string
		SpreadsheetID string
	}
)

// ApplyDefaults trims the free-text fields and fills category and currency
// defaults. baseCurrency is the configured reporting currency.
func (in *ExpenseInput) ApplyDefaults(baseCurrency string) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Currency = strings.TrimSpace(in.Currency)
	in.Notes = strings.TrimSpace(in.Notes)
	in.SheetName = strings.TrimSpace(in.SheetName)
	in.SpreadsheetID = strings.TrimSpace(in.SpreadsheetID)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if in.Currency == "" {
		in.Currency = baseCurrency
	}
}
