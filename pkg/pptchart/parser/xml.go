package parser

import (
	"bytes"
	"encoding/xml"
)

// XML namespaces used across PresentationML, DrawingML and SpreadsheetML parts.
const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsC   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkg = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsS   = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
)

// Relationship kinds referenced by the extractor: the last path segment of
// a relationship type, the same under transitional and strict namespaces.
const (
	relKindChart   = "chart"
	relKindPackage = "package"
)

func newDecoder(data []byte) *xml.Decoder {
	return xml.NewDecoder(bytes.NewReader(data))
}

// readElementText returns the concatenated character data of the current
// element, consuming it through its end tag.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

// attr returns the value of the attribute with the given local name.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// attrNS returns the value of the attribute with the given namespace and local name.
func attrNS(se xml.StartElement, space, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
