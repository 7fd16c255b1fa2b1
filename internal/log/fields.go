// Package log defines the shared field and component names used for
// structured logging with log/slog.
package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldReceiptID   = "receipt_id"
	FieldDescription = "description"
	FieldAmountCents = "amount_cents"
	FieldCurrency    = "currency"
	FieldCategory    = "category"
	FieldProfile     = "profile"
	FieldSheetRef    = "sheet_ref"
	FieldSheetName   = "sheet_name"
	FieldSpreadsheet = "spreadsheet_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentRecorder = "recorder"
	ComponentSheets   = "sheets"
	ComponentJournal  = "journal"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
)

// Operations defines standard operation names
const (
	OpRecord   = "record"
	OpAppend   = "append"
	OpConvert  = "convert"
	OpConsume  = "consume"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
