package output

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// Table is the category × series grid of one chart.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable lays out a chart with one row per category index and one column
// per series. ok is false when the chart has no categories or no series.
func BuildTable(chart *models.ChartData) (t Table, ok bool) {
	if len(chart.CategoryValues) == 0 || len(chart.Series) == 0 {
		return Table{}, false
	}

	t.Header = append(t.Header, "Category")
	rowCount := len(chart.CategoryValues)
	for i, s := range chart.Series {
		t.Header = append(t.Header, s.DisplayName(i))
		rowCount = max(rowCount, len(s.Values))
	}

	for idx := 0; idx < rowCount; idx++ {
		row := make([]string, 0, len(t.Header))
		row = append(row, cellAt(chart.CategoryValues, idx))
		for _, s := range chart.Series {
			row = append(row, cellAt(s.Values, idx))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}

func cellAt(values []models.Value, idx int) string {
	if idx >= len(values) {
		return ""
	}
	return FormatValue(values[idx])
}

// Markdown renders the table in pipe syntax.
func (t Table) Markdown() string {
	var b strings.Builder
	writeRow(&b, t.Header)
	sep := make([]string, len(t.Header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, row := range t.Rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(escapeCell(c))
	}
	b.WriteString(" |\n")
}

// escapeCell keeps cell text on one line and away from column separators.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// FormatValue renders a value for reports. Whole numbers print without a
// fraction; other numbers use at most six decimals with trailing zeros
// removed. Empty values render as "".
func FormatValue(v models.Value) string {
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	if f == 0 {
		return "0"
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
