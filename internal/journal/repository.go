// Package journal persists an audit trail of recorded expenses in SQLite.
// The journal is advisory: duplicate receipt identifiers are stored as-is,
// mirroring the permissive behavior of the spreadsheet itself.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded expense as remembered by the journal.
type Entry struct {
	ID          int64     `json:"id"`
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

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert appends one entry to the journal and returns its row id.
func (r *Repository) Insert(ctx context.Context, e Entry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (receipt_id, description, amount_text, amount_cents, currency, category, profile, sheet_ref, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ReceiptID, e.Description, e.AmountText, e.AmountCents, e.Currency, e.Category, e.Profile, e.SheetRef, e.RecordedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert receipt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Receipt journaled",
		"id", id,
		"receipt_id", e.ReceiptID,
		"amount_cents", e.AmountCents,
		"currency", e.Currency)
	return id, nil
}

// Recent returns the most recently journaled entries, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, receipt_id, description, amount_text, amount_cents, currency, category, profile, sheet_ref, recorded_at
		FROM receipts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent receipts: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ReceiptID, &e.Description, &e.AmountText, &e.AmountCents,
			&e.Currency, &e.Category, &e.Profile, &e.SheetRef, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return out, nil
}

// Count reports the total number of journaled receipts.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return n, nil
}
