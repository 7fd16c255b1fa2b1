// Package worker consumes recorded-expense events and maintains the
// receipt journal.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Carlosbarranquero/spending-tracker/internal/amqp"
	"github.com/Carlosbarranquero/spending-tracker/internal/journal"
	applog "github.com/Carlosbarranquero/spending-tracker/internal/log"
)

// RecordedStore is the slice of the journal the worker needs.
type RecordedStore interface {
	Insert(ctx context.Context, e journal.Entry) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// JournalWorker writes one journal entry per recorded-expense event.
type JournalWorker struct {
	store RecordedStore
}

func NewJournalWorker(store RecordedStore) *JournalWorker {
	return &JournalWorker{store: store}
}

// HandleRecordedMessage journals a single recorded expense. Returning an
// error requeues the message.
func (w *JournalWorker) HandleRecordedMessage(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	id, err := w.store.Insert(ctx, journal.Entry{
		ReceiptID:   msg.ReceiptID,
		Description: msg.Description,
		AmountText:  msg.AmountText,
		AmountCents: msg.AmountCents,
		Currency:    msg.Currency,
		Category:    msg.Category,
		Profile:     msg.Profile,
		SheetRef:    msg.SheetRef,
		RecordedAt:  msg.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("journal recorded expense: %w", err)
	}

	slog.InfoContext(ctx, "Journaled expense",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpConsume,
		"entry_id", id,
		applog.FieldReceiptID, msg.ReceiptID,
		applog.FieldAmountCents, msg.AmountCents,
		applog.FieldProfile, msg.Profile)

	return nil
}

// LogStats reports the journal size. Called periodically by the worker main.
func (w *JournalWorker) LogStats(ctx context.Context) {
	count, err := w.store.Count(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to count journal entries",
			applog.FieldComponent, applog.ComponentWorker,
			applog.FieldError, err)
		return
	}
	slog.InfoContext(ctx, "Journal stats",
		applog.FieldComponent, applog.ComponentWorker,
		"entries", count)
}
