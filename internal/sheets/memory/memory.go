// Package memory provides an in-memory spreadsheet collaborator used for
// development without credentials and in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "github.com/Carlosbarranquero/spending-tracker/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	tabs  map[string][]string // spreadsheet id -> ordered tab titles
	rows  map[string][][]any  // "<sid>/<tab>" -> appended rows
	cells map[string]string   // "<sid>/<range>" -> cell value
}

// Ensure interface conformance
var (
	_ ports.RowAppender    = (*Store)(nil)
	_ ports.CellReader     = (*Store)(nil)
	_ ports.MetadataReader = (*Store)(nil)
)

func New() *Store {
	return &Store{
		tabs:  make(map[string][]string),
		rows:  make(map[string][][]any),
		cells: make(map[string]string),
	}
}

// AddSheet registers a tab for a spreadsheet, preserving insertion order.
func (s *Store) AddSheet(spreadsheetID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[spreadsheetID] = append(s.tabs[spreadsheetID], title)
}

// SetCell seeds a cell value, e.g. SetCell(sid, "conversion!B2", "1,10").
func (s *Store) SetCell(spreadsheetID, cellRange, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[spreadsheetID+"/"+cellRange] = value
}

// AppendRow stores the row and returns a synthetic range reference.
func (s *Store) AppendRow(_ context.Context, spreadsheetID, sheetName string, row []any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := spreadsheetID + "/" + sheetName
	s.rows[key] = append(s.rows[key], row)
	return fmt.Sprintf("%s!A%d", sheetName, len(s.rows[key])), nil
}

func (s *Store) ReadCell(_ context.Context, spreadsheetID, cellRange string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cells[spreadsheetID+"/"+cellRange]
	if !ok || v == "" {
		return "", ports.ErrEmptyCell
	}
	return v, nil
}

func (s *Store) FirstSheetTitle(_ context.Context, spreadsheetID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabs := s.tabs[spreadsheetID]
	if len(tabs) == 0 {
		return "", ports.ErrNoSheets
	}
	return tabs[0], nil
}

// Rows returns a copy of the rows appended to a tab, for assertions.
func (s *Store) Rows(spreadsheetID, sheetName string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.rows[spreadsheetID+"/"+sheetName]
	out := make([][]any, len(src))
	for i, r := range src {
		out[i] = append([]any(nil), r...)
	}
	return out
}

// RowCount reports the total number of rows appended across all tabs.
func (s *Store) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rows := range s.rows {
		n += len(rows)
	}
	return n
}
