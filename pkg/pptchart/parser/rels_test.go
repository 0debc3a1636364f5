package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pptchart-go/internal/testutil"
)

func TestRelsPathFor(t *testing.T) {
	tests := []struct {
		part     string
		expected string
	}{
		{"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
		{"ppt/charts/chart12.xml", "ppt/charts/_rels/chart12.xml.rels"},
		{"xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
	}

	for _, tt := range tests {
		if result := RelsPathFor(tt.part); result != tt.expected {
			t.Errorf("RelsPathFor(%q) = %q, expected %q", tt.part, result, tt.expected)
		}
		if owner := ownerOf(tt.expected); owner != tt.part {
			t.Errorf("ownerOf(%q) = %q, expected %q", tt.expected, owner, tt.part)
		}
	}

	if owner := ownerOf("_rels/.rels"); owner != "" {
		t.Errorf("ownerOf(%q) = %q, expected package root", "_rels/.rels", owner)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		owner    string
		expected string
	}{
		{"../charts/chart1.xml", "ppt/slides/slide1.xml", "ppt/charts/chart1.xml"},
		{"../embeddings/Book1.xlsx", "ppt/charts/chart1.xml", "ppt/embeddings/Book1.xlsx"},
		{"worksheets/sheet1.xml", "xl/workbook.xml", "xl/worksheets/sheet1.xml"},
		{"/xl/worksheets/sheet2.xml", "xl/workbook.xml", "xl/worksheets/sheet2.xml"},
		{"xl/workbook.xml", "", "xl/workbook.xml"},
		{"./a/../b.xml", "ppt/x.xml", "ppt/b.xml"},
	}

	for _, tt := range tests {
		result := resolveRelativePath(tt.target, tt.owner)
		if result != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q",
				tt.target, tt.owner, result, tt.expected)
		}
	}
}

func TestResolveRelationships(t *testing.T) {
	deck := testutil.NewDeck().AddString("ppt/slides/_rels/slide3.xml.rels", testutil.RelsXML(
		testutil.Rel{ID: "rId2", Type: nsR + "/chart", Target: "../charts/chart5.xml"},
		testutil.Rel{ID: "rId1", Type: nsR + "/slideLayout", Target: "../slideLayouts/slideLayout2.xml"},
		testutil.Rel{ID: "rId3", Type: nsR + "/hyperlink", Target: "https://example.com/x", External: true},
		testutil.Rel{ID: "rId4", Type: nsR + "/chart", Target: "../charts/chart6.xml"},
		testutil.Rel{ID: "rId5", Type: "http://purl.oclc.org/ooxml/officeDocument/relationships/chart", Target: "../charts/chart7.xml"},
		testutil.Rel{ID: "rId6", Type: nsR + "/chartUserShapes", Target: "../drawings/drawing1.xml"},
	))
	c, err := OpenBytes("deck.pptx", deck.Bytes(t))
	require.NoError(t, err)

	rels, err := ResolvePartRelationships(c, "ppt/slides/slide3.xml")
	require.NoError(t, err)
	require.Equal(t, 6, rels.Len())

	rel, ok := rels.Get("rId2")
	require.True(t, ok)
	assert.Equal(t, "ppt/charts/chart5.xml", rel.Target)

	ext, ok := rels.Get("rId3")
	require.True(t, ok)
	assert.True(t, ext.External)
	assert.Equal(t, "https://example.com/x", ext.Target)

	charts := rels.ByType(relKindChart)
	require.Len(t, charts, 3)
	assert.Equal(t, "rId2", charts[0].ID)
	assert.Equal(t, "rId4", charts[1].ID)
	assert.Equal(t, "ppt/charts/chart7.xml", charts[2].Target)

	_, ok = rels.Get("rId9")
	assert.False(t, ok)
}

func TestResolveRelationshipsMissingPart(t *testing.T) {
	c, err := OpenBytes("deck.pptx", testutil.NewDeck().AddString("ppt/charts/chart1.xml", "<c/>").Bytes(t))
	require.NoError(t, err)

	rels, err := ResolvePartRelationships(c, "ppt/charts/chart1.xml")
	require.NoError(t, err)
	assert.Equal(t, 0, rels.Len())
	assert.Empty(t, rels.ByType(relKindPackage))
}

func TestContainer(t *testing.T) {
	deck := testutil.NewDeck().
		AddString("ppt/slides/slide2.xml", "<a/>").
		AddString("ppt/slides/slide1.xml", "<b/>").
		AddString("ppt/charts/chart1.xml", "<c/>")
	c, err := OpenBytes("deck.pptx", deck.Bytes(t))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"ppt/slides/slide2.xml", "ppt/slides/slide1.xml"}, c.ListEntries("ppt/slides/"))
	assert.Empty(t, c.ListEntries("ppt/media/"))

	data, err := c.ReadEntry("ppt/slides/slide1.xml")
	require.NoError(t, err)
	assert.Equal(t, "<b/>", string(data))

	_, err = c.ReadEntry("ppt/slides/slide9.xml")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestOpenInvalidContainer(t *testing.T) {
	_, err := OpenBytes("bad.pptx", []byte("not a zip"))
	assert.ErrorIs(t, err, ErrContainer)

	_, err = Open(t.TempDir() + "/missing.pptx")
	assert.ErrorIs(t, err, ErrContainer)
}
