// Package testutil builds in-memory decks and embedded workbooks for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	relTypeChart   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	relTypePackage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
)

// Deck accumulates zip entries in insertion order.
type Deck struct {
	names []string
	data  map[string][]byte
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{data: make(map[string][]byte)}
}

// Add stores an entry, replacing an earlier one with the same name.
func (d *Deck) Add(name string, data []byte) *Deck {
	if _, ok := d.data[name]; !ok {
		d.names = append(d.names, name)
	}
	d.data[name] = data
	return d
}

// AddString stores a text entry.
func (d *Deck) AddString(name, content string) *Deck {
	return d.Add(name, []byte(content))
}

// Slide adds slide n with the given XML and relationships to charts.
// chartTargets are relative to ppt/slides, e.g. "../charts/chart1.xml".
func (d *Deck) Slide(n int, slideXML string, chartTargets ...string) *Deck {
	d.AddString(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML)
	if len(chartTargets) > 0 {
		rels := make([]Rel, 0, len(chartTargets))
		for i, target := range chartTargets {
			rels = append(rels, Rel{ID: fmt.Sprintf("rId%d", i+2), Type: relTypeChart, Target: target})
		}
		d.AddString(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), RelsXML(rels...))
	}
	return d
}

// Chart adds a chart part and, when workbook is non-empty, its package
// relationship and the embedded workbook bytes at ppt/embeddings/<workbook>.
func (d *Deck) Chart(name, chartXML, workbook string, workbookData []byte) *Deck {
	d.AddString("ppt/charts/"+name, chartXML)
	if workbook != "" {
		d.AddString("ppt/charts/_rels/"+name+".rels",
			RelsXML(Rel{ID: "rId1", Type: relTypePackage, Target: "../embeddings/" + workbook}))
		if workbookData != nil {
			d.Add("ppt/embeddings/"+workbook, workbookData)
		}
	}
	return d
}

// Bytes returns the zip archive.
func (d *Deck) Bytes(t testing.TB) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(d.data[name]); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes the archive to dir/name and returns its path.
func (d *Deck) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, d.Bytes(t), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return p
}

// Rel is one relationship of a .rels part.
type Rel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// RelsXML renders a relationships part.
func RelsXML(rels ...Rel) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		mode := ""
		if r.External {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.ID, r.Type, r.Target, mode)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// SlideXML renders a slide with an optional title placeholder followed by
// plain text boxes.
func SlideXML(title string, texts ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
	for _, txt := range texts {
		b.WriteString(shapeXML("", txt))
	}
	if title != "" {
		b.WriteString(shapeXML("title", title))
	}
	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func shapeXML(placeholder, text string) string {
	ph := ""
	if placeholder != "" {
		ph = fmt.Sprintf(`<p:ph type="%s"/>`, placeholder)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Shape"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
		`<p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, ph, text)
}

// ThemeXML renders a theme part whose color scheme holds the given accent
// slots, e.g. {"accent1": "4472C4"}.
func ThemeXML(accents map[string]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme">`)
	b.WriteString(`<a:themeElements><a:clrScheme name="Office">`)
	b.WriteString(`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>`)
	for i := 1; i <= 10; i++ {
		slot := fmt.Sprintf("accent%d", i)
		if hex, ok := accents[slot]; ok {
			fmt.Fprintf(&b, `<a:%s><a:srgbClr val="%s"/></a:%s>`, slot, hex, slot)
		}
	}
	b.WriteString(`</a:clrScheme></a:themeElements></a:theme>`)
	return b.String()
}
