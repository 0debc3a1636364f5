// Package output turns extracted deck data into per-slide payloads, JSON
// files and Markdown or HTML reports.
package output

import (
	"slices"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/parser"
)

// OrphanSlide is the payload bucket for charts no slide references.
const OrphanSlide = 0

// OrphanTitle is the title of the orphan bucket.
const OrphanTitle = "Charts Without Slide Reference"

// domainDecimals is the rounding applied to axis domains in payloads.
const domainDecimals = 6

// GroupBySlide buckets charts by slide number. A chart on several slides
// appears in each bucket; charts without slides go to OrphanSlide. Charts
// within a bucket are ordered by path.
func GroupBySlide(charts []models.ChartData) map[int][]models.ChartData {
	grouped := make(map[int][]models.ChartData)
	for _, chart := range charts {
		if len(chart.Slides) == 0 {
			grouped[OrphanSlide] = append(grouped[OrphanSlide], chart)
			continue
		}
		for _, slide := range chart.Slides {
			grouped[slide] = append(grouped[slide], chart)
		}
	}
	for _, list := range grouped {
		slices.SortStableFunc(list, func(a, b models.ChartData) int {
			return strings.Compare(a.Path, b.Path)
		})
	}
	return grouped
}

// SortedSlides returns the keys of grouped in ascending order.
func SortedSlides(grouped map[int][]models.ChartData) []int {
	slides := make([]int, 0, len(grouped))
	for slide := range grouped {
		slides = append(slides, slide)
	}
	slices.Sort(slides)
	return slides
}

// SlideTitle returns the payload title of a slide.
func SlideTitle(deck *models.Deck, slide int) string {
	if slide == OrphanSlide {
		return OrphanTitle
	}
	return deck.TitleFor(slide)
}

// BuildPayloads returns one payload per slide, ordered by slide number.
func BuildPayloads(deck *models.Deck) []models.SlidePayload {
	grouped := GroupBySlide(deck.Charts)
	payloads := make([]models.SlidePayload, 0, len(grouped))
	for _, slide := range SortedSlides(grouped) {
		charts := grouped[slide]
		payload := models.SlidePayload{
			Slide:  slide,
			Title:  SlideTitle(deck, slide),
			Charts: make([]models.ChartRecord, 0, len(charts)),
		}
		for i := range charts {
			payload.Charts = append(payload.Charts, ChartRecordFor(&charts[i]))
		}
		payloads = append(payloads, payload)
	}
	return payloads
}

// ChartRecordFor converts a chart to its payload record. The value range is
// present only when the chart has numeric values.
func ChartRecordFor(chart *models.ChartData) models.ChartRecord {
	rec := models.ChartRecord{
		ChartPath:      chart.Path,
		ChartType:      chart.Type,
		Title:          optional(chart.Title),
		Workbook:       optional(chart.WorkbookPath),
		CategoryLabels: nonNil(chart.CategoryValues),
		CategoryRange:  optional(chart.CategoryRef),
		Series:         SeriesRecords(chart.Series),
		Notes:          chart.Notes,
		HasDateAxis:    chart.HasDateAxis,
		ValueRange:     parser.RoundDomain(parser.ComputeAxisDomain(chart), domainDecimals),
	}
	if rec.Notes == nil {
		rec.Notes = []string{}
	}
	return rec
}

// SeriesRecords converts series to payload records.
func SeriesRecords(series []models.SeriesData) []models.SeriesRecord {
	out := make([]models.SeriesRecord, 0, len(series))
	for _, s := range series {
		out = append(out, models.SeriesRecord{
			Name:     s.Name,
			Values:   nonNil(s.Values),
			Range:    optional(s.RangeRef),
			Color:    optional(s.Color),
			RenderAs: s.RenderAs,
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(values []models.Value) []models.Value {
	if values == nil {
		return []models.Value{}
	}
	return values
}
