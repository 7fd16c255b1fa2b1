package memory

import (
	"context"
	"errors"
	"testing"

	ports "github.com/Carlosbarranquero/spending-tracker/internal/sheets"
)

func TestAppendRowAndRows(t *testing.T) {
	s := New()
	ref, err := s.AppendRow(context.Background(), "sid", "Gastos", []any{"2024-01-01", "AB12CD34"})
	if err != nil {
		t.Fatal(err)
	}
	if ref != "Gastos!A1" {
		t.Fatalf("unexpected ref %s", ref)
	}
	ref, _ = s.AppendRow(context.Background(), "sid", "Gastos", []any{"2024-01-02", "EF56AB78"})
	if ref != "Gastos!A2" {
		t.Fatalf("unexpected ref %s", ref)
	}
	rows := s.Rows("sid", "Gastos")
	if len(rows) != 2 || rows[0][1] != "AB12CD34" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestReadCell(t *testing.T) {
	s := New()
	if _, err := s.ReadCell(context.Background(), "sid", "conversion!B2"); !errors.Is(err, ports.ErrEmptyCell) {
		t.Fatalf("expected ErrEmptyCell, got %v", err)
	}
	s.SetCell("sid", "conversion!B2", "1,10")
	v, err := s.ReadCell(context.Background(), "sid", "conversion!B2")
	if err != nil || v != "1,10" {
		t.Fatalf("expected 1,10, got %q (err=%v)", v, err)
	}
}

func TestFirstSheetTitle(t *testing.T) {
	s := New()
	if _, err := s.FirstSheetTitle(context.Background(), "sid"); !errors.Is(err, ports.ErrNoSheets) {
		t.Fatalf("expected ErrNoSheets, got %v", err)
	}
	s.AddSheet("sid", "Gastos")
	s.AddSheet("sid", "conversion")
	title, err := s.FirstSheetTitle(context.Background(), "sid")
	if err != nil || title != "Gastos" {
		t.Fatalf("expected Gastos, got %q (err=%v)", title, err)
	}
}
