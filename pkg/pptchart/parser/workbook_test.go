package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pptchart-go/internal/testutil"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/xuri/excelize/v2"
)

func salesWorkbook(t *testing.T) []byte {
	t.Helper()
	return testutil.Workbook(t,
		testutil.Sheet{Name: "Data", Rows: [][]any{
			{"Year", "Sales", "Cost"},
			{2021, 10, 4.5},
			{2022, 20, true},
			{"2023", nil, "x"},
		}},
		testutil.Sheet{Name: "Other Sheet", Rows: [][]any{
			{1, 2, 3},
		}},
	)
}

func TestWorkbookResolve(t *testing.T) {
	wb, err := NewWorkbook("ppt/embeddings/Book1.xlsx", salesWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, "ppt/embeddings/Book1.xlsx", wb.Name())
	assert.Equal(t, []string{"Data", "Other Sheet"}, wb.SheetNames())

	tests := []struct {
		formula  string
		expected []models.Value
	}{
		{"Data!$B$2:$B$3", []models.Value{models.Number(10), models.Number(20)}},
		{"Data!$A$1", []models.Value{models.Text("Year")}},
		{"Data!A4:C4", []models.Value{models.Text("2023"), models.Empty(), models.Text("x")}},
		{"Data!C2:C3", []models.Value{models.Number(4.5), models.Bool(true)}},
		{"data!B1", []models.Value{models.Text("Sales")}},
		{"'Other Sheet'!A1:C1", []models.Value{models.Number(1), models.Number(2), models.Number(3)}},
		{"Data!E10:E11", []models.Value{models.Empty(), models.Empty()}},
	}

	for _, tt := range tests {
		values, err := wb.Resolve(tt.formula)
		if !assert.NoError(t, err, tt.formula) {
			continue
		}
		assert.Equal(t, tt.expected, values, tt.formula)
	}
}

func TestWorkbookErrors(t *testing.T) {
	wb, err := NewWorkbook("Book1.xlsx", salesWorkbook(t))
	require.NoError(t, err)

	_, err = wb.Resolve("Missing!A1:A3")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = wb.Resolve("Data B2")
	assert.ErrorIs(t, err, ErrMalformedFormula)

	_, err = wb.Resolve("Data!A1:XFD1048576")
	assert.ErrorIs(t, err, ErrMalformedFormula)

	_, err = NewWorkbook("broken.xlsx", []byte("PK?"))
	assert.ErrorIs(t, err, ErrContainer)
}

func TestWorkbookSheetGrid(t *testing.T) {
	wb, err := NewWorkbook("Book1.xlsx", salesWorkbook(t))
	require.NoError(t, err)

	rng, err := ParseRangeFormula("Data!A1:B2")
	require.NoError(t, err)
	grid, err := wb.SheetRange("Data", rng)
	require.NoError(t, err)
	assert.Equal(t, [][]models.Value{
		{models.Text("Year"), models.Text("Sales")},
		{models.Number(2021), models.Number(10)},
	}, grid)
}

func TestWorkbookConcurrentSheets(t *testing.T) {
	wb, err := NewWorkbook("Book1.xlsx", salesWorkbook(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	sheets := make([]*Sheet, 8)
	for i := range sheets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := wb.Sheet("Data")
			assert.NoError(t, err)
			sheets[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range sheets[1:] {
		assert.Same(t, sheets[0], s)
	}
}

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		name     string
		typ      excelize.CellType
		raw      string
		expected models.Value
	}{
		{"shared string", excelize.CellTypeSharedString, "beta", models.Text("beta")},
		{"numeric shared string", excelize.CellTypeSharedString, "2023", models.Text("2023")},
		{"boolean true", excelize.CellTypeBool, "1", models.Bool(true)},
		{"boolean false", excelize.CellTypeBool, "0", models.Bool(false)},
		{"boolean word", excelize.CellTypeBool, "TRUE", models.Bool(true)},
		{"formula string", excelize.CellTypeFormula, "12", models.Text("12")},
		{"inline string", excelize.CellTypeInlineString, "hello", models.Text("hello")},
		{"error", excelize.CellTypeError, "#N/A", models.Text("#N/A")},
		{"number", excelize.CellTypeUnset, "3.5", models.Number(3.5)},
		{"typed number", excelize.CellTypeNumber, "-2", models.Number(-2)},
		{"non numeric", excelize.CellTypeUnset, "abc", models.Text("abc")},
		{"empty", excelize.CellTypeUnset, "", models.Empty()},
	}

	for _, tt := range tests {
		result := decodeCell(tt.typ, tt.raw)
		if result != tt.expected {
			t.Errorf("decodeCell(%s) = %+v, expected %+v", tt.name, result, tt.expected)
		}
	}
}

func TestSheetInfersAddresses(t *testing.T) {
	data := testutil.RawWorkbook(t, "S",
		`<row><c><v>1</v></c><c><v>2</v></c></row>`+
			`<row r="5"><c r="C5"><v>3</v></c><c><v>4</v></c></row>`+
			`<row><c r="B6" t="s"><v>0</v></c><c r="C6" t="inlineStr"><is><t>inline</t></is></c></row>`,
		"shared")

	wb, err := NewWorkbook("Book1.xlsx", data)
	require.NoError(t, err)
	s, err := wb.Sheet("S")
	require.NoError(t, err)

	assert.Equal(t, models.Number(1), s.Cell(1, 1))
	assert.Equal(t, models.Number(2), s.Cell(1, 2))
	assert.Equal(t, models.Number(3), s.Cell(5, 3))
	assert.Equal(t, models.Number(4), s.Cell(5, 4))
	assert.Equal(t, models.Text("shared"), s.Cell(6, 2))
	assert.Equal(t, models.Text("inline"), s.Cell(6, 3))
	assert.True(t, s.Cell(2, 1).IsEmpty())
	assert.Equal(t, 6, s.Len())
}
