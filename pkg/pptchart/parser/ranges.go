package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/xuri/excelize/v2"
)

// ColumnIndex converts column letters to a 1-based index (A=1, Z=26, AA=27).
func ColumnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %v", ErrMalformedFormula, letters, err)
	}
	return n, nil
}

// ParseRangeFormula parses a range formula.
// Format: 'Sheet Name'!$A$1:$D$10, Sheet1!B2:B9 or Sheet1!$C$4.
// Corners are normalized so the first is the top-left one.
func ParseRangeFormula(formula string) (models.CellRange, error) {
	ref := strings.TrimPrefix(strings.TrimSpace(formula), "=")

	// Split by the last ! to separate sheet name and cells
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return models.CellRange{}, fmt.Errorf("%w: %q has no sheet reference", ErrMalformedFormula, formula)
	}
	sheet := unquoteSheetName(strings.TrimSpace(ref[:idx]))
	if sheet == "" {
		return models.CellRange{}, fmt.Errorf("%w: %q has an empty sheet name", ErrMalformedFormula, formula)
	}

	// Remove $ signs
	cells := strings.ReplaceAll(strings.TrimSpace(ref[idx+1:]), "$", "")
	parts := strings.Split(cells, ":")
	if len(parts) > 2 {
		return models.CellRange{}, fmt.Errorf("%w: %q has more than two corners", ErrMalformedFormula, formula)
	}
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}

	startCol, startRow, err := parseCellToken(parts[0])
	if err != nil {
		return models.CellRange{}, fmt.Errorf("%w: %q: %v", ErrMalformedFormula, formula, err)
	}
	endCol, endRow, err := parseCellToken(parts[1])
	if err != nil {
		return models.CellRange{}, fmt.Errorf("%w: %q: %v", ErrMalformedFormula, formula, err)
	}

	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}

	return models.CellRange{
		Sheet: sheet,
		C1:    startCol,
		R1:    startRow,
		C2:    endCol,
		R2:    endRow,
	}, nil
}

// parseCellToken parses a column-letters/row-number token such as B12.
func parseCellToken(token string) (col, row int, err error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	return excelize.CellNameToCoordinates(token)
}

// unquoteSheetName removes the quotes spreadsheet formulas put around sheet
// names containing spaces or punctuation.
func unquoteSheetName(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// Flatten turns a range grid into a value sequence. A single-column grid
// yields one value per row; wider grids are emitted row by row.
func Flatten(grid [][]models.Value) []models.Value {
	if len(grid) == 0 {
		return nil
	}
	if len(grid[0]) == 1 {
		out := make([]models.Value, 0, len(grid))
		for _, row := range grid {
			out = append(out, row[0])
		}
		return out
	}
	out := make([]models.Value, 0, len(grid)*len(grid[0]))
	for _, row := range grid {
		out = append(out, row...)
	}
	return out
}
