package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// ChartTypeMap maps plot-area element tags to chart families. Elements not
// listed here never carry series for extraction.
var ChartTypeMap = map[string]models.ChartType{
	"areaChart":      models.AreaChart,
	"area3DChart":    models.Area3DChart,
	"barChart":       models.BarChart,
	"bar3DChart":     models.Bar3DChart,
	"bubbleChart":    models.BubbleChart,
	"doughnutChart":  models.DoughnutChart,
	"lineChart":      models.LineChart,
	"line3DChart":    models.Line3DChart,
	"ofPieChart":     models.OfPieChart,
	"pieChart":       models.PieChart,
	"pie3DChart":     models.Pie3DChart,
	"radarChart":     models.RadarChart,
	"scatterChart":   models.ScatterChart,
	"stockChart":     models.StockChart,
	"surfaceChart":   models.SurfaceChart,
	"surface3DChart": models.Surface3DChart,
}

// chartPart is the structural content of a chart part, before any workbook
// or theme lookups.
type chartPart struct {
	title       string
	hasDateAxis bool
	families    []chartFamily
}

// chartFamily is one chart-type element of the plot area with its series.
type chartFamily struct {
	chartType models.ChartType
	series    []seriesPart
}

// seriesPart holds the raw references of one c:ser element.
type seriesPart struct {
	name    string
	nameRef *dataSource
	cat     *dataSource
	val     *dataSource
	srgb    string
	scheme  string
}

// dataSource is a c:cat, c:val or c:tx payload: a reference formula with its
// cached points, or a literal point list.
type dataSource struct {
	formula   string
	ref       bool
	str       bool
	ptCount   int
	points    []cachedPoint
	hasPoints bool
	seenLvl   bool
}

type cachedPoint struct {
	idx int
	v   string
}

// cached returns the cached or literal points as values, placed by index.
// String sources yield text, numeric sources yield numbers or Empty.
func (ds *dataSource) cached() []models.Value {
	if ds == nil || !ds.hasPoints {
		return nil
	}
	n := ds.ptCount
	for _, p := range ds.points {
		if p.idx+1 > n {
			n = p.idx + 1
		}
	}
	n = min(n, maxRangeCells)
	out := make([]models.Value, n)
	for _, p := range ds.points {
		if p.idx >= n {
			continue
		}
		if ds.str {
			out[p.idx] = models.Text(p.v)
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(p.v), 64); err == nil {
			out[p.idx] = models.Number(f)
		}
	}
	return out
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) (*chartPart, error) {
	part := &chartPart{}
	decoder := newDecoder(data)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return part, err
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, part)
		}
	}

	return part, nil
}

// parseChartElement parses c:chart element.
func parseChartElement(decoder *xml.Decoder, part *chartPart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct {
				continue
			}
			switch t.Name.Local {
			case "title":
				part.title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				parsePlotArea(decoder, part)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartTitle parses chart title element. Rich text runs are joined per
// paragraph; a title bound to a cell falls back to its cached value.
func parseChartTitle(decoder *xml.Decoder) string {
	var paragraphs []string
	var current strings.Builder
	var cachedValue string
	depth := 1

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			paragraphs = append(paragraphs, s)
		}
		current.Reset()
	}

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "p":
				flush()
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					current.WriteString(txt)
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil && cachedValue == "" {
					cachedValue = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	flush()

	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, " ")
	}
	return cachedValue
}

// parsePlotArea parses plot area element.
func parsePlotArea(decoder *xml.Decoder, part *chartPart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct {
				continue
			}
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				part.families = append(part.families, chartFamily{
					chartType: ct,
					series:    parseChartSeries(decoder),
				})
				depth--
			} else if t.Name.Local == "dateAx" {
				part.hasDateAxis = true
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartSeries parses series elements within a chart type.
func parseChartSeries(decoder *xml.Decoder) []seriesPart {
	var series []seriesPart
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if direct && t.Name.Local == "ser" {
				series = append(series, parseSingleSeries(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return series
}

// parseSingleSeries parses a single series element.
// Scatter and bubble series use xVal/yVal in place of cat/val.
func parseSingleSeries(decoder *xml.Decoder) seriesPart {
	var s seriesPart
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct {
				continue
			}
			switch t.Name.Local {
			case "tx":
				s.name, s.nameRef = parseSeriesName(decoder)
				depth--
			case "cat", "xVal":
				s.cat = parseDataSource(decoder)
				depth--
			case "val", "yVal":
				s.val = parseDataSource(decoder)
				depth--
			case "spPr":
				s.srgb, s.scheme = parseSolidFill(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseSeriesName parses series name from tx element. The literal is a
// direct c:v, or else the first cached value of the name reference.
func parseSeriesName(decoder *xml.Decoder) (name string, ref *dataSource) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct {
				continue
			}
			switch t.Name.Local {
			case "v":
				if txt, err := readElementText(decoder); err == nil {
					name = txt
				}
				depth--
			case "strRef":
				ref = parseRef(decoder, true)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if name == "" && ref != nil {
		for _, p := range ref.points {
			if p.v != "" {
				name = p.v
				break
			}
		}
	}
	return name, ref
}

// parseDataSource parses the reference or literal inside cat or val element.
func parseDataSource(decoder *xml.Decoder) *dataSource {
	var ds *dataSource
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct || ds != nil {
				continue
			}
			switch t.Name.Local {
			case "strRef", "multiLvlStrRef":
				ds = parseRef(decoder, true)
				depth--
			case "numRef":
				ds = parseRef(decoder, false)
				depth--
			case "strLit", "numLit":
				ds = &dataSource{str: t.Name.Local == "strLit", hasPoints: true}
				parsePoints(decoder, ds)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return ds
}

// parseRef parses a strRef/numRef element: its formula and cached points.
func parseRef(decoder *xml.Decoder, str bool) *dataSource {
	ds := &dataSource{ref: true, str: str}
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			direct := depth == 1
			depth++
			if !direct {
				continue
			}
			switch t.Name.Local {
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					ds.formula = strings.TrimSpace(txt)
				}
				depth--
			case "strCache", "numCache", "multiLvlStrCache":
				ds.hasPoints = true
				parsePoints(decoder, ds)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return ds
}

// parsePoints reads ptCount and pt children of a cache or literal element.
// Of a multi-level cache only the first (innermost) level is kept.
func parsePoints(decoder *xml.Decoder, ds *dataSource) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "lvl":
				if ds.seenLvl {
					if err := decoder.Skip(); err != nil {
						return
					}
					continue
				}
				ds.seenLvl = true
				depth++
			case "ptCount":
				if n, err := strconv.Atoi(attr(t, "val")); err == nil && n > 0 {
					ds.ptCount = n
				}
				depth++
			case "pt":
				idx, err := strconv.Atoi(attr(t, "idx"))
				if err != nil || idx < 0 {
					idx = len(ds.points)
				}
				ds.points = append(ds.points, cachedPoint{idx: idx, v: parsePointValue(decoder)})
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parsePointValue returns the c:v text of a c:pt element.
func parsePointValue(decoder *xml.Decoder) string {
	var v string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "v" {
				if txt, err := readElementText(decoder); err == nil {
					v = txt
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return v
}

// parseSolidFill returns the first RGB and first scheme color found under a
// solidFill of a series shape-properties element.
func parseSolidFill(decoder *xml.Decoder) (srgb, scheme string) {
	depth := 1
	inFill := 0

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "solidFill":
				inFill++
			case "srgbClr":
				if inFill > 0 && srgb == "" {
					srgb = attr(t, "val")
				}
			case "schemeClr":
				if inFill > 0 && scheme == "" {
					scheme = attr(t, "val")
				}
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "solidFill" && inFill > 0 {
				inFill--
			}
		}
	}

	return srgb, scheme
}
