package output

import (
	"fmt"
	"path"
	"strings"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// DefaultHeading is the report's top-level heading.
const DefaultHeading = "Annual Report Chart Data"

const noDataLine = "_(no structured data detected)_"

// BuildMarkdown renders the consolidated report with one section per slide
// and one subsection per chart. Slides are ascending, so the orphan bucket
// comes first. An empty heading uses DefaultHeading.
func BuildMarkdown(deck *models.Deck, heading string) string {
	if heading == "" {
		heading = DefaultHeading
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	if deck.Name != "" {
		fmt.Fprintf(&b, "> Generated from %s using embedded workbook ranges.\n\n", deck.Name)
	}

	grouped := GroupBySlide(deck.Charts)
	for _, slide := range SortedSlides(grouped) {
		if slide == OrphanSlide {
			fmt.Fprintf(&b, "## %s\n\n", OrphanTitle)
		} else if title := deck.TitleFor(slide); title != "" {
			fmt.Fprintf(&b, "## Slide %d: %s\n\n", slide, title)
		} else {
			fmt.Fprintf(&b, "## Slide %d\n\n", slide)
		}

		for i := range grouped[slide] {
			writeChartSection(&b, &grouped[slide][i])
		}
	}

	return strings.TrimSpace(b.String()) + "\n"
}

func writeChartSection(b *strings.Builder, chart *models.ChartData) {
	heading := path.Base(chart.Path)
	if chart.Title != "" {
		heading += " (" + chart.Title + ")"
	}
	fmt.Fprintf(b, "### %s\n\n", heading)

	fmt.Fprintf(b, "- Chart type: %s\n", chart.Type)
	if chart.WorkbookPath != "" {
		fmt.Fprintf(b, "- Data source: %s\n", chart.WorkbookPath)
	}
	if chart.CategoryRef != "" {
		fmt.Fprintf(b, "- Category range: %s\n", chart.CategoryRef)
	}
	if len(chart.Series) > 0 {
		desc := make([]string, 0, len(chart.Series))
		for i, s := range chart.Series {
			d := s.DisplayName(i)
			if s.RangeRef != "" {
				d += " (" + s.RangeRef + ")"
			}
			if s.Color != "" {
				d += ", color " + s.Color
			}
			desc = append(desc, d)
		}
		fmt.Fprintf(b, "- Series: %s\n", strings.Join(desc, "; "))
	}
	if len(chart.Notes) > 0 {
		fmt.Fprintf(b, "- Notes: %s\n", strings.Join(chart.Notes, "; "))
	}
	b.WriteString("\n")

	if table, ok := BuildTable(chart); ok {
		b.WriteString(table.Markdown())
	} else {
		b.WriteString(noDataLine + "\n")
	}
	b.WriteString("\n")
}
