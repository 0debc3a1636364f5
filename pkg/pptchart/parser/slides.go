package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
)

var (
	slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	chartPartRe = regexp.MustCompile(`^ppt/charts/chart\d*\.xml$`)
)

// titlePlaceholders are the placeholder roles that name a slide.
var titlePlaceholders = map[string]bool{
	"title":    true,
	"ctrTitle": true,
	"subTitle": true,
}

// SlideIndex holds slide titles and the slides embedding each chart part.
type SlideIndex struct {
	titles map[int]string
	charts map[string][]int
	slides []int
}

// LoadSlideIndex scans every slide part and its relationships. A slide that
// cannot be read is left out; the returned index is usable even when err
// reports such slides.
func LoadSlideIndex(c *Container) (*SlideIndex, error) {
	idx := &SlideIndex{
		titles: make(map[int]string),
		charts: make(map[string][]int),
	}
	var errs []error

	for _, name := range c.ListEntries("ppt/slides/") {
		m := slidePartRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		data, err := c.ReadEntry(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("slide %d: %w", num, err))
			continue
		}
		idx.titles[num] = extractSlideTitle(data)
		idx.slides = append(idx.slides, num)

		rels, err := ResolvePartRelationships(c, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("slide %d relationships: %w", num, err))
			continue
		}
		for _, rel := range rels.ByType(relKindChart) {
			if rel.External {
				continue
			}
			if !slices.Contains(idx.charts[rel.Target], num) {
				idx.charts[rel.Target] = append(idx.charts[rel.Target], num)
			}
		}
	}

	sort.Ints(idx.slides)
	for _, nums := range idx.charts {
		sort.Ints(nums)
	}
	return idx, errors.Join(errs...)
}

// TitleFor returns the title of the given slide, or "" when the slide has
// no text or does not exist.
func (s *SlideIndex) TitleFor(slide int) string {
	return s.titles[slide]
}

// Titles returns a copy of the slide number → title mapping.
func (s *SlideIndex) Titles() map[int]string {
	out := make(map[int]string, len(s.titles))
	for k, v := range s.titles {
		out[k] = v
	}
	return out
}

// Slides returns the slide numbers found, ascending.
func (s *SlideIndex) Slides() []int {
	return slices.Clone(s.slides)
}

// SlidesFor returns the slides embedding chartPath, ascending and
// deduplicated. Orphan charts yield nil.
func (s *SlideIndex) SlidesFor(chartPath string) []int {
	return slices.Clone(s.charts[chartPath])
}

// ChartsForSlide returns the chart path → slides mapping.
func (s *SlideIndex) ChartsForSlide() map[string][]int {
	out := make(map[string][]int, len(s.charts))
	for k, v := range s.charts {
		out[k] = slices.Clone(v)
	}
	return out
}

// ChartParts returns every chart part of the container in path order.
func ChartParts(c *Container) []string {
	var parts []string
	for _, name := range c.ListEntries("ppt/charts/") {
		if chartPartRe.MatchString(name) {
			parts = append(parts, name)
		}
	}
	sort.Strings(parts)
	return parts
}

// slideShape is the text and placeholder role of one p:sp element.
type slideShape struct {
	placeholder string
	text        string
}

// extractSlideTitle prefers a title-role placeholder and otherwise falls
// back to the first shape with text.
func extractSlideTitle(data []byte) string {
	shapes := parseSlideShapes(data)
	for _, sh := range shapes {
		if titlePlaceholders[sh.placeholder] && sh.text != "" {
			return sh.text
		}
	}
	for _, sh := range shapes {
		if sh.text != "" {
			return sh.text
		}
	}
	return ""
}

// parseSlideShapes returns all p:sp shapes in document order, including
// those nested in group shapes.
func parseSlideShapes(data []byte) []slideShape {
	var shapes []slideShape
	decoder := newDecoder(data)

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sp" {
			shapes = append(shapes, parseSlideShape(decoder))
		}
	}

	return shapes
}

// parseSlideShape parses a single p:sp element.
func parseSlideShape(decoder *xml.Decoder) slideShape {
	var sh slideShape
	var text strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "ph":
				sh.placeholder = attr(t, "type")
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					text.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	sh.text = strings.TrimSpace(text.String())
	return sh
}
