package parser

import "errors"

var (
	// ErrContainer indicates the deck (or an embedded workbook) is not a readable zip archive.
	ErrContainer = errors.New("unreadable container")
	// ErrEntryNotFound indicates a part path is absent from the container.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrSheetNotFound indicates a sheet name is absent from a workbook's sheet directory.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrMalformedFormula indicates a range formula that cannot be parsed.
	ErrMalformedFormula = errors.New("malformed formula")
)
