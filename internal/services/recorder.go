// Package services orchestrates the expense recording pipeline: validate,
// derive, resolve conversion, assemble and append, returning human-readable
// result strings at the tool boundary.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Carlosbarranquero/spending-tracker/internal/amqp"
	"github.com/Carlosbarranquero/spending-tracker/internal/cache"
	"github.com/Carlosbarranquero/spending-tracker/internal/config"
	"github.com/Carlosbarranquero/spending-tracker/internal/core"
	applog "github.com/Carlosbarranquero/spending-tracker/internal/log"
	"github.com/Carlosbarranquero/spending-tracker/internal/sheets"
)

// Error taxonomy of the recording pipeline. Every error is converted into a
// user-facing rejection string at the Record boundary; these sentinels exist
// so the failure class stays observable in logs and tests.
var (
	ErrConversionRateUnavailable = errors.New("conversion rate unavailable")
	ErrNoTargetSheet             = errors.New("no target sheet")
	ErrNoSpreadsheet             = errors.New("no spreadsheet configured")
	ErrCollaborator              = errors.New("collaborator failure")
)

// EventPublisher announces recorded expenses to downstream consumers.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error
}

// Recorder runs the normalize-derive-append pipeline for one column profile.
// It is stateless per call; the only shared state is the tab-title cache.
type Recorder struct {
	profile         core.Profile
	baseCurrency    string
	spreadsheetID   string
	sheetName       string
	conversionRange string

	appender sheets.RowAppender
	cells    sheets.CellReader
	meta     sheets.MetadataReader
	events   EventPublisher

	titles *cache.LRUCache[string]
	now    func() time.Time
}

// NewRecorder wires a recorder from the process configuration and the
// collaborator ports. events may be nil when no AMQP stream is configured.
func NewRecorder(cfg *config.Config, ap sheets.RowAppender, cr sheets.CellReader, mr sheets.MetadataReader, events EventPublisher) *Recorder {
	return &Recorder{
		profile:         cfg.Profile,
		baseCurrency:    cfg.BaseCurrency,
		spreadsheetID:   cfg.SpreadsheetID,
		sheetName:       cfg.SheetName,
		conversionRange: cfg.ConversionRange(),
		appender:        ap,
		cells:           cr,
		meta:            mr,
		events:          events,
		titles:          cache.NewLRUCache[string](50, 10*time.Minute),
		now:             time.Now,
	}
}

// rejection pairs a taxonomy sentinel with the user-facing message text.
type rejection struct {
	kind error
	msg  string
}

func (r *rejection) Error() string { return r.msg }
func (r *rejection) Unwrap() error { return r.kind }

func reject(kind error, format string, args ...any) error {
	return &rejection{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Record runs the full pipeline for one expense and returns the user-facing
// result string. Failures become rejection strings prefixed with "❌"; no
// structured error crosses this boundary.
func (r *Recorder) Record(ctx context.Context, in core.ExpenseInput) string {
	msg, err := r.record(ctx, in)
	if err != nil {
		slog.WarnContext(ctx, "Expense rejected",
			applog.FieldComponent, applog.ComponentRecorder,
			applog.FieldOperation, applog.OpRecord,
			applog.FieldError, err,
			applog.FieldDescription, in.Description)
		return "❌ " + err.Error()
	}
	return msg
}

func (r *Recorder) record(ctx context.Context, in core.ExpenseInput) (string, error) {
	in.ApplyDefaults(r.baseCurrency)

	// Amount validation short-circuits everything downstream: no receipt
	// identifier, no collaborator call.
	amountText := core.NormalizeAmountText(in.Amount)
	cents, err := core.ParseAmountToCents(in.Amount)
	if err != nil {
		if errors.Is(err, core.ErrAmountNotPositive) {
			return "", reject(err, "El monto debe ser mayor a 0")
		}
		return "", reject(err, "Monto inválido: %s", amountText)
	}

	spreadsheetID := in.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = r.spreadsheetID
	}
	if spreadsheetID == "" {
		return "", reject(ErrNoSpreadsheet, "Falta el identificador de la hoja de cálculo")
	}

	ts := core.TimestampAt(r.now())
	d := core.RowData{
		Timestamp:   ts,
		Description: in.Description,
		Category:    in.Category,
		AmountText:  amountText,
		Currency:    strings.ToUpper(in.Currency),
	}

	if r.profile.NeedsConversion() {
		converted := core.Money{Cents: cents}
		if !strings.EqualFold(in.Currency, r.baseCurrency) {
			converted, err = r.convert(ctx, spreadsheetID, converted)
			if err != nil {
				return "", err
			}
		}
		d.Converted = converted
	}

	if r.profile == core.ProfileEnriched {
		d.PaymentMethod = core.ParsePaymentMethod(in.PaymentMethod)
		d.Status = core.ParseStatus(in.Status)
		d.Deductible = core.IsDeductible(in.Category)
		d.Notes = in.Notes
	}

	d.ReceiptID = core.ReceiptID(in.Description, amountText, ts.Key())
	row := core.BuildRow(r.profile, d)

	title := in.SheetName
	if title == "" {
		title = r.sheetName
	}
	if title == "" {
		title, err = r.firstSheetTitle(ctx, spreadsheetID)
		if err != nil {
			if errors.Is(err, sheets.ErrNoSheets) {
				return "", reject(ErrNoTargetSheet, "La hoja de cálculo no tiene pestañas")
			}
			return "", reject(ErrCollaborator, "Error al registrar en Google Sheets: %v", err)
		}
	}

	ref, err := r.appender.AppendRow(ctx, spreadsheetID, title, row)
	if err != nil {
		return "", reject(ErrCollaborator, "Error al registrar en Google Sheets: %v", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		applog.FieldComponent, applog.ComponentRecorder,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldReceiptID, d.ReceiptID,
		applog.FieldAmountCents, cents,
		applog.FieldCurrency, d.Currency,
		applog.FieldCategory, d.Category,
		applog.FieldProfile, string(r.profile),
		applog.FieldSheetRef, ref)

	r.publishRecorded(ctx, d, cents, ref)

	return r.confirmation(d), nil
}

// convert resolves the conversion rate from the designated cell and applies
// it. Only called when the requested currency differs from the base.
func (r *Recorder) convert(ctx context.Context, spreadsheetID string, m core.Money) (core.Money, error) {
	raw, err := r.cells.ReadCell(ctx, spreadsheetID, r.conversionRange)
	if err != nil {
		if errors.Is(err, sheets.ErrEmptyCell) {
			return core.Money{}, reject(ErrConversionRateUnavailable, "No se encontró el valor de conversión en '%s'", r.conversionRange)
		}
		return core.Money{}, reject(ErrConversionRateUnavailable, "Error al obtener tasa de conversión: %v", err)
	}
	rate, err := core.ParseRate(raw)
	if err != nil {
		return core.Money{}, reject(ErrConversionRateUnavailable, "Tasa de conversión inválida: %s", raw)
	}
	return m.Convert(rate), nil
}

func (r *Recorder) firstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	if title, ok := r.titles.Get(spreadsheetID); ok {
		return title, nil
	}
	title, err := r.meta.FirstSheetTitle(ctx, spreadsheetID)
	if err != nil {
		return "", err
	}
	r.titles.Set(spreadsheetID, title)
	return title, nil
}

// publishRecorded is best effort: a failed publish never fails the call.
func (r *Recorder) publishRecorded(ctx context.Context, d core.RowData, cents int64, sheetRef string) {
	if r.events == nil {
		return
	}
	msg := amqp.NewExpenseRecordedMessage(r.profile, d, cents, sheetRef, r.now())
	if err := r.events.PublishExpenseRecorded(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recorded event",
			applog.FieldComponent, applog.ComponentRecorder,
			applog.FieldReceiptID, d.ReceiptID,
			applog.FieldError, err)
	}
}

func (r *Recorder) confirmation(d core.RowData) string {
	var b strings.Builder
	b.WriteString("✅ GASTO REGISTRADO CON ÉXITO\n")
	fmt.Fprintf(&b, "🆔 ID: %s\n", d.ReceiptID)
	switch r.profile {
	case core.ProfileWithConversion:
		fmt.Fprintf(&b, "💰 Original: %s %s\n", d.AmountText, d.Currency)
		fmt.Fprintf(&b, "💶 Total %s: %s\n", r.baseCurrency, d.Converted.Format())
	default:
		fmt.Fprintf(&b, "💰 Importe: %s %s\n", d.AmountText, d.Currency)
	}
	fmt.Fprintf(&b, "🏷️ Categoría: %s\n", d.Category)
	if r.profile == core.ProfileEnriched {
		fmt.Fprintf(&b, "💳 Pago: %s\n", d.PaymentMethod.Display)
		fmt.Fprintf(&b, "🧾 Deducible: %s\n", core.DeductibleFlag(d.Deductible))
		fmt.Fprintf(&b, "📌 Estado: %s\n", d.Status.Display)
	}
	fmt.Fprintf(&b, "📝 Concepto: %s", d.Description)
	return b.String()
}
