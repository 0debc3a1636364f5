package models

import (
	"strconv"
	"strings"
)

// ChartType is the plot-area element that carries a chart's series.
type ChartType string

// Known chart families. The value is the element's local name.
const (
	AreaChart      ChartType = "areaChart"
	Area3DChart    ChartType = "area3DChart"
	BarChart       ChartType = "barChart"
	Bar3DChart     ChartType = "bar3DChart"
	BubbleChart    ChartType = "bubbleChart"
	DoughnutChart  ChartType = "doughnutChart"
	LineChart      ChartType = "lineChart"
	Line3DChart    ChartType = "line3DChart"
	OfPieChart     ChartType = "ofPieChart"
	PieChart       ChartType = "pieChart"
	Pie3DChart     ChartType = "pie3DChart"
	RadarChart     ChartType = "radarChart"
	ScatterChart   ChartType = "scatterChart"
	StockChart     ChartType = "stockChart"
	SurfaceChart   ChartType = "surfaceChart"
	Surface3DChart ChartType = "surface3DChart"

	// ComboChart marks a chart whose series come from more than one family.
	ComboChart ChartType = "comboChart"
	// UnknownChart marks a chart part without a series-bearing family element.
	UnknownChart ChartType = "unknown"
)

// IsLine reports whether series of this family render as lines.
func (t ChartType) IsLine() bool {
	return strings.Contains(strings.ToLower(string(t)), "line")
}

// RenderAs returns the combo rendering hint for series of this family.
func (t ChartType) RenderAs() string {
	if t.IsLine() {
		return "line"
	}
	return "bar"
}

// SeriesData is one plotted series of a chart.
type SeriesData struct {
	// Name is the series display name; empty when it could not be resolved.
	Name string
	// Values are the series points, in category order.
	Values []Value
	// RangeRef is the value-reference formula, if any.
	RangeRef string
	// Color is "#RRGGBB" or "scheme:<name>" when the theme lacks the slot.
	Color string
	// RenderAs is "bar" or "line" for series extracted in combo mode.
	RenderAs string
}

// DisplayName returns Name, or a positional placeholder for unnamed series.
func (s SeriesData) DisplayName(index int) string {
	if s.Name != "" {
		return s.Name
	}
	return "Series " + strconv.Itoa(index+1)
}

// ChartData is everything recovered from one chart part.
type ChartData struct {
	// Path is the chart part path inside the container.
	Path string
	// Type is the chart family.
	Type ChartType
	// Slides are the slide numbers embedding this chart, ascending.
	Slides []int
	// SlideTitles holds the title of each slide in Slides.
	SlideTitles []string
	// Title is the chart's own title text.
	Title string
	// WorkbookPath is the embedded workbook entry backing the chart.
	WorkbookPath string
	// CategoryValues are the category axis labels.
	CategoryValues []Value
	// CategoryRef is the category-reference formula, if any.
	CategoryRef string
	// Series are the plotted series.
	Series []SeriesData
	// Notes are human-readable extraction problems.
	Notes []string
	// HasDateAxis reports a date category axis.
	HasDateAxis bool
}

// NumericValues returns every finite number across all series.
func (c *ChartData) NumericValues() []float64 {
	var out []float64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if f, ok := v.Float(); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// AxisDomain is a suggested value-axis display range.
type AxisDomain struct {
	DataMin      float64 `json:"dataMin"`
	DataMax      float64 `json:"dataMax"`
	SuggestedMin float64 `json:"suggestedMin"`
	SuggestedMax float64 `json:"suggestedMax"`
}
