package core

import "strings"

// Closed label tables for enum-like free-text inputs. Lookups normalize the
// input by uppercasing and joining words with underscores; an unrecognized
// value falls back to a canonical default and never fails the call.

const (
	FallbackPaymentMethod = "Otro"
	FallbackStatus        = "Confirmado"
)

// Label is the result of parsing an enum-like input: the canonical display
// label plus whether the input matched the closed table.
type Label struct {
	Display string
	Known   bool
}

var paymentMethods = map[string]string{
	"EFECTIVO":        "Efectivo",
	"TARJETA":         "Tarjeta",
	"TARJETA_CREDITO": "Tarjeta de crédito",
	"TARJETA_DEBITO":  "Tarjeta de débito",
	"TRANSFERENCIA":   "Transferencia",
	"BIZUM":           "Bizum",
	"PAYPAL":          "PayPal",
}

var statuses = map[string]string{
	"PENDIENTE":   "Pendiente",
	"CONFIRMADO":  "Confirmado",
	"REEMBOLSADO": "Reembolsado",
	"CANCELADO":   "Cancelado",
}

// deductibleCategories lists the categories counted as tax deductible.
// Anything not listed, including General, is non-deductible.
var deductibleCategories = map[string]bool{
	"TRANSPORTE": true,
	"OFICINA":    true,
	"MATERIAL":   true,
	"SOFTWARE":   true,
	"FORMACIÓN":  true,
	"FORMACION":  true,
	"VIAJES":     true,
}

func normalizeKey(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(strings.TrimSpace(raw)), "_"))
}

// ParsePaymentMethod maps a free-text payment method onto the closed table.
func ParsePaymentMethod(raw string) Label {
	if display, ok := paymentMethods[normalizeKey(raw)]; ok {
		return Label{Display: display, Known: true}
	}
	return Label{Display: FallbackPaymentMethod}
}

// ParseStatus maps a free-text status onto the closed table.
func ParseStatus(raw string) Label {
	if display, ok := statuses[normalizeKey(raw)]; ok {
		return Label{Display: display, Known: true}
	}
	return Label{Display: FallbackStatus}
}

// IsDeductible reports whether a category counts as deductible.
func IsDeductible(category string) bool {
	return deductibleCategories[normalizeKey(category)]
}

// DeductibleFlag renders the deductibility column value.
func DeductibleFlag(deductible bool) string {
	if deductible {
		return "Sí"
	}
	return "No"
}
