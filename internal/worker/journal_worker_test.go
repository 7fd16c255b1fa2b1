package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carlosbarranquero/spending-tracker/internal/amqp"
	"github.com/Carlosbarranquero/spending-tracker/internal/journal"
)

type fakeStore struct {
	inserted  []journal.Entry
	insertErr error
}

func (f *fakeStore) Insert(ctx context.Context, e journal.Entry) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, e)
	return int64(len(f.inserted)), nil
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.inserted)), nil
}

func TestHandleRecordedMessage(t *testing.T) {
	store := &fakeStore{}
	w := NewJournalWorker(store)

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	msg := &amqp.ExpenseRecordedMessage{
		ReceiptID:   "A1B2C3D4",
		Description: "Taxi",
		AmountText:  "12.50",
		AmountCents: 1250,
		Currency:    "EUR",
		Category:    "Transporte",
		Profile:     "conversion",
		SheetRef:    "Gastos!A42",
		RecordedAt:  now,
	}

	if err := w.HandleRecordedMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleRecordedMessage() error = %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d entries, want 1", len(store.inserted))
	}
	got := store.inserted[0]
	if got.ReceiptID != "A1B2C3D4" || got.AmountCents != 1250 || got.SheetRef != "Gastos!A42" {
		t.Errorf("entry = %+v", got)
	}
	if !got.RecordedAt.Equal(now) {
		t.Errorf("RecordedAt = %v, want %v", got.RecordedAt, now)
	}
}

func TestHandleRecordedMessageInsertError(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("disk full")}
	w := NewJournalWorker(store)

	err := w.HandleRecordedMessage(context.Background(), &amqp.ExpenseRecordedMessage{ReceiptID: "X"})
	if err == nil {
		t.Fatal("expected error so the message gets requeued")
	}
}
