package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is a sparse grid of decoded cell values.
type Sheet struct {
	Name  string
	cells map[int]map[int]models.Value
}

// Cell returns the value at (row, col), 1-based. Absent cells are Empty.
func (s *Sheet) Cell(row, col int) models.Value {
	return s.cells[row][col]
}

// Len returns the number of non-empty cells.
func (s *Sheet) Len() int {
	n := 0
	for _, row := range s.cells {
		n += len(row)
	}
	return n
}

// loadSheet decodes every non-empty cell of a worksheet. Raw values keep
// numbers free of display formats; the stored cell type decides how each is
// read.
func loadSheet(f *excelize.File, name string) (*Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name, cells: make(map[int]map[int]models.Value)}
	for r, row := range rows {
		values := make(map[int]models.Value)
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, cell)
			if err != nil {
				return nil, err
			}
			values[c+1] = decodeCell(typ, raw)
		}
		if len(values) > 0 {
			sheet.cells[r+1] = values
		}
	}

	return sheet, nil
}

// decodeCell converts a raw cell value to a Value. Booleans become TRUE or
// FALSE, string-typed cells stay text, and everything else is a number when
// it parses as one.
func decodeCell(typ excelize.CellType, raw string) models.Value {
	switch typ {
	case excelize.CellTypeBool:
		v := strings.TrimSpace(raw)
		return models.Bool(v == "1" || strings.EqualFold(v, "TRUE"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return models.Text(raw)
	}
	if raw == "" {
		return models.Empty()
	}
	return parseValue(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns a Number, or the original string as Text.
func parseValue(s string) models.Value {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return models.Number(f)
	}
	return models.Text(s)
}
