package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Carlosbarranquero/spending-tracker/internal/amqp"
	"github.com/Carlosbarranquero/spending-tracker/internal/config"
	"github.com/Carlosbarranquero/spending-tracker/internal/core"
	"github.com/Carlosbarranquero/spending-tracker/internal/sheets/memory"
)

type capturePublisher struct {
	messages []*amqp.ExpenseRecordedMessage
}

func (p *capturePublisher) PublishExpenseRecorded(_ context.Context, msg *amqp.ExpenseRecordedMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func testConfig(profile core.Profile) *config.Config {
	return &config.Config{
		Port:            "3001",
		DataBackend:     "memory",
		SpreadsheetID:   "sid",
		Profile:         profile,
		BaseCurrency:    "EUR",
		ConversionSheet: "conversion",
		ConversionCell:  "B2",
	}
}

func newTestRecorder(t *testing.T, profile core.Profile) (*Recorder, *memory.Store, *capturePublisher) {
	t.Helper()
	store := memory.New()
	store.AddSheet("sid", "Gastos")
	pub := &capturePublisher{}
	rec := NewRecorder(testConfig(profile), store, store, store, pub)
	// 09:00:00 on 2024-01-01 in the record zone (UTC+7)
	rec.now = func() time.Time { return time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC) }
	return rec, store, pub
}

func TestRecordBaseCurrencyNoConversion(t *testing.T) {
	rec, store, pub := newTestRecorder(t, core.ProfileWithConversion)

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Taxi",
		Amount:      "12.50",
		Category:    "Transporte",
		Currency:    "EUR",
	})
	if !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}

	rows := store.Rows("sid", "Gastos")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != 8 {
		t.Fatalf("expected 8 columns, got %d (%v)", len(row), row)
	}
	if row[0] != "2024-01-01" || row[2] != "Taxi" || row[4] != "12.50" || row[5] != "EUR" || row[6] != "09:00:00" {
		t.Fatalf("unexpected row %v", row)
	}
	// Base currency: the recorded base amount equals the original, no cell read.
	if row[7] != 12.50 {
		t.Fatalf("expected converted 12.50, got %v", row[7])
	}

	wantID := core.ReceiptID("Taxi", "12.50", "2024-01-0109:00:00")
	if row[1] != wantID {
		t.Fatalf("expected receipt id %s, got %v", wantID, row[1])
	}
	if !strings.Contains(got, wantID) {
		t.Fatalf("confirmation should embed receipt id %s: %q", wantID, got)
	}

	if len(pub.messages) != 1 || pub.messages[0].ReceiptID != wantID {
		t.Fatalf("expected one published event for %s, got %+v", wantID, pub.messages)
	}
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	rec, store, pub := newTestRecorder(t, core.ProfileWithConversion)

	got := rec.Record(context.Background(), core.ExpenseInput{Description: "Taxi", Amount: "0"})
	if got != "❌ El monto debe ser mayor a 0" {
		t.Fatalf("unexpected rejection %q", got)
	}
	if store.RowCount() != 0 {
		t.Fatal("rejected amount must not reach the collaborator")
	}
	if len(pub.messages) != 0 {
		t.Fatal("rejected amount must not publish events")
	}
}

func TestRecordRejectsMalformedAmount(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileWithConversion)

	got := rec.Record(context.Background(), core.ExpenseInput{Description: "Taxi", Amount: "abc"})
	if got != "❌ Monto inválido: abc" {
		t.Fatalf("unexpected rejection %q", got)
	}
	if store.RowCount() != 0 {
		t.Fatal("rejected amount must not reach the collaborator")
	}
}

func TestRecordConvertsForeignCurrency(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileWithConversion)
	store.SetCell("sid", "conversion!B2", "1,10")

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Hotel",
		Amount:      "100",
		Currency:    "USD",
	})
	if !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}
	if !strings.Contains(got, "110.00") {
		t.Fatalf("confirmation should embed the converted amount: %q", got)
	}

	rows := store.Rows("sid", "Gastos")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][7] != 110.00 {
		t.Fatalf("expected converted 110.00, got %v", rows[0][7])
	}
}

func TestRecordRejectsWhenConversionCellMissing(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileWithConversion)

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Hotel",
		Amount:      "100",
		Currency:    "USD",
	})
	if !strings.Contains(got, "No se encontró el valor de conversión en 'conversion!B2'") {
		t.Fatalf("unexpected rejection %q", got)
	}
	if store.RowCount() != 0 {
		t.Fatal("no row may be appended when the rate is unavailable")
	}
}

func TestRecordRejectsWhenConversionCellMalformed(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileWithConversion)
	store.SetCell("sid", "conversion!B2", "n/a")

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Hotel",
		Amount:      "100",
		Currency:    "USD",
	})
	if !strings.HasPrefix(got, "❌ Tasa de conversión inválida") {
		t.Fatalf("unexpected rejection %q", got)
	}
	if store.RowCount() != 0 {
		t.Fatal("no row may be appended when the rate is malformed")
	}
}

func TestRecordBasicProfile(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileBasic)

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Café",
		Amount:      "3,50",
	})
	if !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}
	rows := store.Rows("sid", "Gastos")
	if len(rows) != 1 || len(rows[0]) != 7 {
		t.Fatalf("expected one 7-column row, got %v", rows)
	}
	// Amount text is normalized to a dot, category and currency defaulted.
	if rows[0][3] != "General" || rows[0][4] != "3.50" || rows[0][5] != "EUR" {
		t.Fatalf("unexpected row %v", rows[0])
	}
}

func TestRecordEnrichedProfile(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileEnriched)

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description:   "Taxi",
		Amount:        "12.50",
		Category:      "Transporte",
		PaymentMethod: "gift card",
		Status:        "pendiente",
		Notes:         "aeropuerto",
	})
	if !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}
	rows := store.Rows("sid", "Gastos")
	if len(rows) != 1 || len(rows[0]) != 12 {
		t.Fatalf("expected one 12-column row, got %v", rows)
	}
	row := rows[0]
	if row[6] != core.FallbackPaymentMethod {
		t.Fatalf("expected payment fallback, got %v", row[6])
	}
	if row[7] != "Sí" {
		t.Fatalf("expected deductible Sí, got %v", row[7])
	}
	if row[8] != "Pendiente" {
		t.Fatalf("expected status Pendiente, got %v", row[8])
	}
	if row[10] != "aeropuerto" || row[11] != "Enero 2024" {
		t.Fatalf("unexpected notes or month label: %v", row)
	}
	if !strings.Contains(got, "Deducible: Sí") {
		t.Fatalf("confirmation should report deductibility: %q", got)
	}
}

func TestRecordExplicitSheetNameSkipsMetadata(t *testing.T) {
	rec, store, _ := newTestRecorder(t, core.ProfileBasic)

	got := rec.Record(context.Background(), core.ExpenseInput{
		Description: "Taxi",
		Amount:      "5",
		SheetName:   "Otra",
	})
	if !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}
	if len(store.Rows("sid", "Otra")) != 1 {
		t.Fatal("row should land on the explicit tab")
	}
}

func TestRecordNoTargetSheet(t *testing.T) {
	store := memory.New() // no tabs registered
	rec := NewRecorder(testConfig(core.ProfileBasic), store, store, store, nil)

	got := rec.Record(context.Background(), core.ExpenseInput{Description: "Taxi", Amount: "5"})
	if got != "❌ La hoja de cálculo no tiene pestañas" {
		t.Fatalf("unexpected rejection %q", got)
	}
}

func TestRecordMissingSpreadsheet(t *testing.T) {
	cfg := testConfig(core.ProfileBasic)
	cfg.SpreadsheetID = ""
	store := memory.New()
	rec := NewRecorder(cfg, store, store, store, nil)

	got := rec.Record(context.Background(), core.ExpenseInput{Description: "Taxi", Amount: "5"})
	if !strings.HasPrefix(got, "❌ Falta el identificador") {
		t.Fatalf("unexpected rejection %q", got)
	}
}

func TestRecordErrorTaxonomy(t *testing.T) {
	rec, _, _ := newTestRecorder(t, core.ProfileWithConversion)

	_, err := rec.record(context.Background(), core.ExpenseInput{
		Description: "Hotel",
		Amount:      "100",
		Currency:    "USD",
	})
	if !errors.Is(err, ErrConversionRateUnavailable) {
		t.Fatalf("expected ErrConversionRateUnavailable, got %v", err)
	}

	_, err = rec.record(context.Background(), core.ExpenseInput{Description: "Taxi", Amount: "-3"})
	if !errors.Is(err, core.ErrAmountNotPositive) {
		t.Fatalf("expected ErrAmountNotPositive, got %v", err)
	}
}

func TestFirstSheetTitleCached(t *testing.T) {
	rec, _, _ := newTestRecorder(t, core.ProfileBasic)

	if got := rec.Record(context.Background(), core.ExpenseInput{Description: "A", Amount: "1"}); !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected confirmation, got %q", got)
	}
	if title, ok := rec.titles.Get("sid"); !ok || title != "Gastos" {
		t.Fatalf("expected cached title Gastos, got %q (%v)", title, ok)
	}
}
