package models

// CellRange represents the rectangular target of a range formula.
// Corners are normalized so that C1 <= C2 and R1 <= R2.
type CellRange struct {
	// Sheet is the worksheet name, unquoted.
	Sheet string `json:"sheet"`
	// C1 is the left column (1-based).
	C1 int `json:"c1"`
	// R1 is the top row (1-based).
	R1 int `json:"r1"`
	// C2 is the right column (1-based, inclusive).
	C2 int `json:"c2"`
	// R2 is the bottom row (1-based, inclusive).
	R2 int `json:"r2"`
}

// Width returns the number of columns in the range.
func (r CellRange) Width() int { return r.C2 - r.C1 + 1 }

// Height returns the number of rows in the range.
func (r CellRange) Height() int { return r.R2 - r.R1 + 1 }

// Cells returns the number of cells covered by the range.
func (r CellRange) Cells() int { return r.Width() * r.Height() }
