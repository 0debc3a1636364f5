package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const (
	nsSpreadsheet         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	relTypeOfficeDocument = nsRelationships + "/officeDocument"
)

// Sheet is a worksheet of a test workbook. Rows start at A1.
type Sheet struct {
	Name string
	Rows [][]any
}

// Workbook returns the xlsx bytes of a workbook holding sheets in order.
func Workbook(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			t.Fatalf("new sheet %s: %v", sh.Name, err)
		}
		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
				t.Fatalf("set row %s!%s: %v", sh.Name, cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// RawWorkbook returns a minimal xlsx whose single sheet name holds the given
// sheetData inner XML verbatim, backed by the given shared strings.
func RawWorkbook(t testing.TB, name, sheetData string, sharedStrings ...string) []byte {
	t.Helper()
	var sst strings.Builder
	fmt.Fprintf(&sst, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, nsSpreadsheet, len(sharedStrings), len(sharedStrings))
	for _, s := range sharedStrings {
		fmt.Fprintf(&sst, `<si><t>%s</t></si>`, s)
	}
	sst.WriteString(`</sst>`)

	return NewDeck().
		AddString("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
			`<Default Extension="xml" ContentType="application/xml"/>`+
			`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`+
			`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`+
			`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>`+
			`</Types>`).
		AddString("_rels/.rels", RelsXML(Rel{ID: "rId1", Type: relTypeOfficeDocument, Target: "xl/workbook.xml"})).
		AddString("xl/workbook.xml", fmt.Sprintf(`<workbook xmlns="%s" xmlns:r="%s"><sheets><sheet name="%s" sheetId="1" r:id="rId1"/></sheets></workbook>`,
			nsSpreadsheet, nsRelationships, name)).
		AddString("xl/_rels/workbook.xml.rels", RelsXML(
			Rel{ID: "rId1", Type: nsRelationships + "/worksheet", Target: "worksheets/sheet1.xml"},
			Rel{ID: "rId2", Type: nsRelationships + "/sharedStrings", Target: "sharedStrings.xml"},
		)).
		AddString("xl/worksheets/sheet1.xml", fmt.Sprintf(`<worksheet xmlns="%s"><sheetData>%s</sheetData></worksheet>`, nsSpreadsheet, sheetData)).
		AddString("xl/sharedStrings.xml", sst.String()).
		Bytes(t)
}
