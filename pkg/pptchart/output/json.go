package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// prettyOptions is the layout of every JSON file written by the tool.
// Short arrays stay on one line.
var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// ToJSON serializes v to JSON. HTML characters are not escaped.
func ToJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if indent {
		return Format(buf.Bytes()), nil
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Format re-indents JSON in the canonical file layout, ending in a newline.
// Formatting its own output returns it unchanged.
func Format(data []byte) []byte {
	return pretty.PrettyOptions(data, prettyOptions)
}

// SlideFileName returns the payload file name of a slide, e.g. slide-04.json.
func SlideFileName(slide int) string {
	return fmt.Sprintf("slide-%02d.json", slide)
}

// WriteSlideFiles writes one formatted file per payload into dir and
// returns the written paths.
func WriteSlideFiles(payloads []models.SlidePayload, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(payloads))
	for i := range payloads {
		data, err := ToJSON(&payloads[i], true)
		if err != nil {
			return paths, fmt.Errorf("slide %d: %w", payloads[i].Slide, err)
		}
		filename := filepath.Join(dir, SlideFileName(payloads[i].Slide))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return paths, err
		}
		paths = append(paths, filename)
	}

	return paths, nil
}
