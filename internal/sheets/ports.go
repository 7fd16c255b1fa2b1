package sheets

import (
	"context"
	"errors"
)

// Sentinel errors shared by collaborator adapters.
var (
	// ErrEmptyCell is returned by ReadCell when the target cell has no value.
	ErrEmptyCell = errors.New("cell is empty")
	// ErrNoSheets is returned by FirstSheetTitle when the spreadsheet has no tabs.
	ErrNoSheets = errors.New("spreadsheet has no tabs")
)

// Ports for the spreadsheet collaborator.
type (
	// RowAppender appends one row of values to the first free row of a tab.
	// Values are interpreted USER_ENTERED by the backing store. Returns a
	// reference to the written range.
	RowAppender interface {
		AppendRow(ctx context.Context, spreadsheetID, sheetName string, row []any) (rowRef string, err error)
	}

	// CellReader reads a single cell value as text. Used once per call, only
	// for the currency conversion rate.
	CellReader interface {
		ReadCell(ctx context.Context, spreadsheetID, cellRange string) (string, error)
	}

	// MetadataReader resolves the title of the first tab of a spreadsheet,
	// used when no explicit sheet name is supplied.
	MetadataReader interface {
		FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error)
	}
)
