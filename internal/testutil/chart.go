package testutil

import (
	"fmt"
	"strings"
)

// Series describes one c:ser element. Ref fields hold formulas; Cache fields
// hold the cached points written under the reference (or as a literal when
// the formula is empty).
type Series struct {
	Name     string
	NameRef  string
	Cat      string
	CatCache []string
	// NumCat writes the category reference as numRef instead of strRef.
	NumCat   bool
	Val      string
	ValCache []string
	RGB      string
	Scheme   string
}

// Family is one chart-type element of the plot area.
type Family struct {
	Tag    string
	Series []Series
}

// ChartXML renders a chart part.
func ChartXML(title string, dateAxis bool, families ...Family) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" ` +
		`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><c:chart>`)
	if title != "" {
		fmt.Fprintf(&b, `<c:title><c:tx><c:rich><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></c:rich></c:tx></c:title>`, title)
	}
	b.WriteString(`<c:plotArea><c:layout/>`)
	for _, fam := range families {
		fmt.Fprintf(&b, `<c:%s><c:varyColors val="0"/>`, fam.Tag)
		for i, s := range fam.Series {
			b.WriteString(seriesXML(i, s))
		}
		fmt.Fprintf(&b, `<c:axId val="1"/><c:axId val="2"/></c:%s>`, fam.Tag)
	}
	if dateAxis {
		b.WriteString(`<c:dateAx><c:axId val="1"/></c:dateAx>`)
	} else {
		b.WriteString(`<c:catAx><c:axId val="1"/></c:catAx>`)
	}
	b.WriteString(`<c:valAx><c:axId val="2"/></c:valAx></c:plotArea></c:chart></c:chartSpace>`)
	return b.String()
}

func seriesXML(i int, s Series) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
	switch {
	case s.NameRef != "":
		fmt.Fprintf(&b, `<c:tx><c:strRef><c:f>%s</c:f></c:strRef></c:tx>`, s.NameRef)
	case s.Name != "":
		fmt.Fprintf(&b, `<c:tx><c:v>%s</c:v></c:tx>`, s.Name)
	}
	if s.RGB != "" {
		fmt.Fprintf(&b, `<c:spPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill></c:spPr>`, s.RGB)
	} else if s.Scheme != "" {
		fmt.Fprintf(&b, `<c:spPr><a:solidFill><a:schemeClr val="%s"/></a:solidFill></c:spPr>`, s.Scheme)
	}
	if s.Cat != "" || s.CatCache != nil {
		kind := "str"
		if s.NumCat {
			kind = "num"
		}
		b.WriteString(`<c:cat>` + dataSourceXML(kind, s.Cat, s.CatCache) + `</c:cat>`)
	}
	if s.Val != "" || s.ValCache != nil {
		b.WriteString(`<c:val>` + dataSourceXML("num", s.Val, s.ValCache) + `</c:val>`)
	}
	b.WriteString(`</c:ser>`)
	return b.String()
}

func dataSourceXML(kind, formula string, cache []string) string {
	var pts strings.Builder
	if cache != nil {
		fmt.Fprintf(&pts, `<c:ptCount val="%d"/>`, len(cache))
		for i, v := range cache {
			if v == "" {
				continue
			}
			fmt.Fprintf(&pts, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, v)
		}
	}
	if formula == "" {
		return fmt.Sprintf(`<c:%sLit>%s</c:%sLit>`, kind, pts.String(), kind)
	}
	out := fmt.Sprintf(`<c:%sRef><c:f>%s</c:f>`, kind, formula)
	if cache != nil {
		out += fmt.Sprintf(`<c:%sCache>%s</c:%sCache>`, kind, pts.String(), kind)
	}
	return out + fmt.Sprintf(`</c:%sRef>`, kind)
}
