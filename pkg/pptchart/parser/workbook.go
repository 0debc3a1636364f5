package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/xuri/excelize/v2"
)

// maxRangeCells bounds the grid materialized for one formula.
const maxRangeCells = 1 << 20

// Workbook is the cell model of one embedded spreadsheet. Sheets are decoded
// on first access and cached for the lifetime of the instance; the cache is
// safe for concurrent use.
type Workbook struct {
	name       string
	f          *excelize.File
	sheetNames []string

	mu     sync.Mutex
	sheets map[string]*Sheet
}

// NewWorkbook builds the model of the embedded spreadsheet held in data.
// name is the entry path of the spreadsheet inside the deck.
func NewWorkbook(name string, data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContainer, name, err)
	}

	return &Workbook{
		name:       name,
		f:          f,
		sheetNames: f.GetSheetList(),
		sheets:     make(map[string]*Sheet),
	}, nil
}

// Name returns the entry path of the workbook inside the deck.
func (wb *Workbook) Name() string { return wb.name }

// SheetNames returns the sheet directory in workbook order.
func (wb *Workbook) SheetNames() []string { return wb.sheetNames }

// Close releases the spreadsheet.
func (wb *Workbook) Close() error { return wb.f.Close() }

// lookupSheet returns the directory spelling of name. An exact match wins
// over a case-insensitive one.
func (wb *Workbook) lookupSheet(name string) (string, bool) {
	for _, n := range wb.sheetNames {
		if n == name {
			return n, true
		}
	}
	for _, n := range wb.sheetNames {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Sheet returns the decoded sheet, loading it on first access.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	canonical, ok := wb.lookupSheet(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in workbook %s", ErrSheetNotFound, name, wb.name)
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()

	if s, ok := wb.sheets[canonical]; ok {
		return s, nil
	}
	s, err := loadSheet(wb.f, canonical)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: %q in workbook %s: %v", ErrSheetNotFound, name, wb.name, err)
		}
		return nil, fmt.Errorf("sheet %q in workbook %s: %w", canonical, wb.name, err)
	}
	wb.sheets[canonical] = s
	return s, nil
}

// SheetRange returns the values of rng as a row-major grid.
func (wb *Workbook) SheetRange(sheetName string, rng models.CellRange) ([][]models.Value, error) {
	if rng.Cells() > maxRangeCells {
		return nil, fmt.Errorf("%w: range of %d cells exceeds limit", ErrMalformedFormula, rng.Cells())
	}
	s, err := wb.Sheet(sheetName)
	if err != nil {
		return nil, err
	}
	grid := make([][]models.Value, 0, rng.Height())
	for r := rng.R1; r <= rng.R2; r++ {
		row := make([]models.Value, 0, rng.Width())
		for c := rng.C1; c <= rng.C2; c++ {
			row = append(row, s.Cell(r, c))
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// Resolve parses formula and returns the flattened values of its range.
func (wb *Workbook) Resolve(formula string) ([]models.Value, error) {
	rng, err := ParseRangeFormula(formula)
	if err != nil {
		return nil, err
	}
	grid, err := wb.SheetRange(rng.Sheet, rng)
	if err != nil {
		return nil, err
	}
	return Flatten(grid), nil
}
