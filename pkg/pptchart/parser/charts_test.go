package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pptchart-go/internal/testutil"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

func TestChartTypeMap(t *testing.T) {
	tests := []struct {
		tag      string
		expected models.ChartType
	}{
		{"barChart", models.BarChart},
		{"lineChart", models.LineChart},
		{"scatterChart", models.ScatterChart},
		{"doughnutChart", models.DoughnutChart},
		{"surface3DChart", models.Surface3DChart},
	}

	for _, tt := range tests {
		result, ok := ChartTypeMap[tt.tag]
		if !ok {
			t.Errorf("ChartTypeMap[%q] not found", tt.tag)
			continue
		}
		if result != tt.expected {
			t.Errorf("ChartTypeMap[%q] = %q, expected %q", tt.tag, result, tt.expected)
		}
	}

	for _, tag := range []string{"catAx", "valAx", "dateAx", "layout"} {
		if _, ok := ChartTypeMap[tag]; ok {
			t.Errorf("ChartTypeMap[%q] should not be a chart family", tag)
		}
	}
}

func TestParseChartXML(t *testing.T) {
	xml := testutil.ChartXML("Revenue by Year", true,
		testutil.Family{Tag: "barChart", Series: []testutil.Series{
			{
				Name:     "Revenue",
				Cat:      "Data!$A$2:$A$3",
				CatCache: []string{"2021", "2022"},
				Val:      "Data!$B$2:$B$3",
				ValCache: []string{"10", "20"},
				RGB:      "FF0000",
			},
			{NameRef: "Data!$C$1", Val: "Data!$C$2:$C$3", Scheme: "accent2"},
		}},
		testutil.Family{Tag: "lineChart", Series: []testutil.Series{{Name: "Margin", ValCache: []string{"0.1", "0.2"}}}},
	)

	part, err := parseChartXML([]byte(xml))
	require.NoError(t, err)

	assert.Equal(t, "Revenue by Year", part.title)
	assert.True(t, part.hasDateAxis)
	require.Len(t, part.families, 2)
	assert.Equal(t, models.BarChart, part.families[0].chartType)
	assert.Equal(t, models.LineChart, part.families[1].chartType)

	first := part.families[0].series[0]
	assert.Equal(t, "Revenue", first.name)
	assert.Equal(t, "FF0000", first.srgb)
	require.NotNil(t, first.cat)
	assert.Equal(t, "Data!$A$2:$A$3", first.cat.formula)
	assert.True(t, first.cat.ref)
	assert.True(t, first.cat.str)
	assert.Equal(t, []models.Value{models.Text("2021"), models.Text("2022")}, first.cat.cached())
	assert.Equal(t, []models.Value{models.Number(10), models.Number(20)}, first.val.cached())

	second := part.families[0].series[1]
	assert.Empty(t, second.name)
	require.NotNil(t, second.nameRef)
	assert.Equal(t, "Data!$C$1", second.nameRef.formula)
	assert.Equal(t, "accent2", second.scheme)
	assert.Nil(t, second.val.cached())

	lit := part.families[1].series[0]
	assert.False(t, lit.val.ref)
	assert.Equal(t, []models.Value{models.Number(0.1), models.Number(0.2)}, lit.val.cached())
}

func TestParseChartXMLSparseCache(t *testing.T) {
	data := []byte(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart><c:plotArea>` +
		`<c:lineChart><c:ser><c:val><c:numRef><c:f>S!B1:B4</c:f><c:numCache><c:formatCode>General</c:formatCode>` +
		`<c:ptCount val="4"/><c:pt idx="0"><c:v>1.5</c:v></c:pt><c:pt idx="3"><c:v>4</c:v></c:pt>` +
		`</c:numCache></c:numRef></c:val></c:ser></c:lineChart></c:plotArea></c:chart></c:chartSpace>`)

	part, err := parseChartXML(data)
	require.NoError(t, err)
	require.Len(t, part.families, 1)

	values := part.families[0].series[0].val.cached()
	assert.Equal(t, []models.Value{models.Number(1.5), models.Empty(), models.Empty(), models.Number(4)}, values)
}

func TestParseChartXMLMultiLevelCategories(t *testing.T) {
	data := []byte(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart><c:plotArea>` +
		`<c:barChart><c:ser><c:cat><c:multiLvlStrRef><c:f>S!A2:B3</c:f><c:multiLvlStrCache><c:ptCount val="2"/>` +
		`<c:lvl><c:pt idx="0"><c:v>Q1</c:v></c:pt><c:pt idx="1"><c:v>Q2</c:v></c:pt></c:lvl>` +
		`<c:lvl><c:pt idx="0"><c:v>2024</c:v></c:pt></c:lvl>` +
		`</c:multiLvlStrCache></c:multiLvlStrRef></c:cat></c:ser></c:barChart></c:plotArea></c:chart></c:chartSpace>`)

	part, err := parseChartXML(data)
	require.NoError(t, err)

	cats := part.families[0].series[0].cat.cached()
	assert.Equal(t, []models.Value{models.Text("Q1"), models.Text("Q2")}, cats)
}

func TestParseChartXMLIgnoresNestedSeries(t *testing.T) {
	// c:ser elements only count as direct children of a family element.
	data := []byte(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart><c:plotArea>` +
		`<c:barChart><c:extLst><c:ext><c:ser/></c:ext></c:extLst></c:barChart>` +
		`</c:plotArea></c:chart></c:chartSpace>`)

	part, err := parseChartXML(data)
	require.NoError(t, err)
	require.Len(t, part.families, 1)
	assert.Empty(t, part.families[0].series)
}

func TestParseChartXMLSyntaxError(t *testing.T) {
	_, err := parseChartXML([]byte(`<c:chartSpace><c:chart><c:plotArea>`))
	assert.Error(t, err)
}
