package amqp

import (
	"encoding/json"
	"time"

	"github.com/Carlosbarranquero/spending-tracker/internal/core"
)

// ExpenseRecordedMessage announces that one expense row was appended to the
// spreadsheet. The journal worker consumes these to build the audit trail.
type ExpenseRecordedMessage struct {
	ReceiptID   string    `json:"receipt_id"`
	Description string    `json:"description"`
	AmountText  string    `json:"amount"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Profile     string    `json:"profile"`
	SheetRef    string    `json:"sheet_ref"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// NewExpenseRecordedMessage builds the event for a freshly appended row.
func NewExpenseRecordedMessage(profile core.Profile, d core.RowData, amountCents int64, sheetRef string, recordedAt time.Time) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ReceiptID:   d.ReceiptID,
		Description: d.Description,
		AmountText:  d.AmountText,
		AmountCents: amountCents,
		Currency:    d.Currency,
		Category:    d.Category,
		Profile:     string(profile),
		SheetRef:    sheetRef,
		RecordedAt:  recordedAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes.
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
