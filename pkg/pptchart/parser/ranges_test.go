package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letters  string
		expected int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"BA", 53},
		{"XFD", 16384},
	}

	for _, tt := range tests {
		result, err := ColumnIndex(tt.letters)
		if err != nil {
			t.Errorf("ColumnIndex(%q) returned error: %v", tt.letters, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ColumnIndex(%q) = %d, expected %d", tt.letters, result, tt.expected)
		}
	}
}

func TestColumnIndexInvalid(t *testing.T) {
	for _, letters := range []string{"", "1", "A1"} {
		if _, err := ColumnIndex(letters); !errors.Is(err, ErrMalformedFormula) {
			t.Errorf("ColumnIndex(%q) error = %v, expected ErrMalformedFormula", letters, err)
		}
	}
}

func TestParseRangeFormula(t *testing.T) {
	tests := []struct {
		formula  string
		expected models.CellRange
	}{
		{"Sheet1!$A$2:$B$5", models.CellRange{Sheet: "Sheet1", C1: 1, R1: 2, C2: 2, R2: 5}},
		{"Sheet1!$B$5:$A$2", models.CellRange{Sheet: "Sheet1", C1: 1, R1: 2, C2: 2, R2: 5}},
		{"Sheet1!A2:B5", models.CellRange{Sheet: "Sheet1", C1: 1, R1: 2, C2: 2, R2: 5}},
		{"=Sheet1!C4", models.CellRange{Sheet: "Sheet1", C1: 3, R1: 4, C2: 3, R2: 4}},
		{"'My Sheet'!$A$1:$D$10", models.CellRange{Sheet: "My Sheet", C1: 1, R1: 1, C2: 4, R2: 10}},
		{"'Bob''s'!C3:C1", models.CellRange{Sheet: "Bob's", C1: 3, R1: 1, C2: 3, R2: 3}},
		{"'a!b'!b2", models.CellRange{Sheet: "a!b", C1: 2, R1: 2, C2: 2, R2: 2}},
	}

	for _, tt := range tests {
		result, err := ParseRangeFormula(tt.formula)
		if err != nil {
			t.Errorf("ParseRangeFormula(%q) returned error: %v", tt.formula, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseRangeFormula(%q) = %+v, expected %+v", tt.formula, result, tt.expected)
		}
	}
}

func TestParseRangeFormulaMalformed(t *testing.T) {
	for _, formula := range []string{
		"A1:B2",
		"Sheet1!",
		"!A1",
		"Sheet1!1A",
		"Sheet1!A1:B2:C3",
		"Sheet1!A:B",
	} {
		_, err := ParseRangeFormula(formula)
		if !errors.Is(err, ErrMalformedFormula) {
			t.Errorf("ParseRangeFormula(%q) error = %v, expected ErrMalformedFormula", formula, err)
		}
	}
}

func TestFlatten(t *testing.T) {
	a, b, c, d := models.Number(1), models.Number(2), models.Text("c"), models.Empty()

	t.Run("column", func(t *testing.T) {
		out := Flatten([][]models.Value{{a}, {b}, {c}})
		assert.Equal(t, []models.Value{a, b, c}, out)
	})

	t.Run("row", func(t *testing.T) {
		out := Flatten([][]models.Value{{a, b, c}})
		assert.Equal(t, []models.Value{a, b, c}, out)
	})

	t.Run("grid is row major", func(t *testing.T) {
		out := Flatten([][]models.Value{{a, b}, {c, d}})
		assert.Equal(t, []models.Value{a, b, c, d}, out)
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, Flatten(nil))
	})
}
