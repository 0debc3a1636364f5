package pptchart

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/output"
)

// PatchOptions configures a single-chart refresh of a slide payload file.
type PatchOptions struct {
	// Deck is the deck to read. If empty, FindDeck(DocsDir) locates it.
	Deck    string
	DocsDir string
	// Payload is the slide payload file to update in place.
	Payload string
	// Chart is the chart part path, e.g. ppt/charts/chart6.xml.
	Chart string
	// Combo reads every chart family of the plot area.
	Combo  bool
	Logger arbor.ILogger
}

// PatchResult describes a completed patch.
type PatchResult struct {
	Deck    string
	Payload string
	Chart   string
	Series  int
	// Changed is false when the payload already held the extracted data.
	Changed bool
}

// Patch re-extracts one chart and merges it into the matching chart record
// of an existing payload file. The record's series, chart type and value
// range are replaced, and the value range is removed when the chart no longer
// has numeric values. Category labels and range are replaced only when the
// extraction found some. Every other field and chart is left as it was.
// Patching twice with the same deck leaves the file byte-identical.
func Patch(opts PatchOptions) (*PatchResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = arbor.NewLogger()
	}

	deck := opts.Deck
	if deck == "" {
		found, err := FindDeck(opts.DocsDir)
		if err != nil {
			return nil, err
		}
		deck = found
	}

	original, err := os.ReadFile(opts.Payload)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if !gjson.ValidBytes(original) {
		return nil, NewExtractionError(opts.Chart, "payload", fmt.Errorf("%s is not valid JSON", opts.Payload))
	}

	pos := chartRecordIndex(original, opts.Chart)
	if pos < 0 {
		return nil, NewExtractionError(opts.Chart, "payload",
			fmt.Errorf("%w: %s", ErrChartNotInPayload, filepath.Base(opts.Payload)))
	}

	chart, err := ExtractChart(deck, opts.Chart, Options{Combo: opts.Combo, Logger: logger})
	if err != nil {
		return nil, err
	}
	rec := output.ChartRecordFor(&chart)

	prefix := fmt.Sprintf("charts.%d.", pos)
	// skip keeps the stored field; drop removes it.
	updates := []struct {
		key   string
		value any
		skip  bool
		drop  bool
	}{
		{"chartType", rec.ChartType, false, false},
		{"categoryLabels", rec.CategoryLabels, len(rec.CategoryLabels) == 0, false},
		{"categoryRange", rec.CategoryRange, rec.CategoryRange == nil, false},
		{"series", rec.Series, false, false},
		{"valueRange", rec.ValueRange, false, rec.ValueRange == nil},
	}

	patched := original
	for _, u := range updates {
		if u.skip {
			continue
		}
		if u.drop {
			patched, err = sjson.DeleteBytes(patched, prefix+u.key)
			if err != nil {
				return nil, fmt.Errorf("delete %s: %w", u.key, err)
			}
			continue
		}
		raw, err := output.ToJSON(u.value, false)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", u.key, err)
		}
		patched, err = sjson.SetRawBytes(patched, prefix+u.key, raw)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", u.key, err)
		}
	}
	patched = output.Format(patched)

	result := &PatchResult{
		Deck:    deck,
		Payload: opts.Payload,
		Chart:   opts.Chart,
		Series:  len(rec.Series),
		Changed: !bytes.Equal(patched, original),
	}
	if result.Changed {
		if err := os.WriteFile(opts.Payload, patched, 0644); err != nil {
			return nil, fmt.Errorf("write payload: %w", err)
		}
	}

	logger.Info().
		Str("deck", filepath.Base(deck)).
		Str("chart", opts.Chart).
		Str("payload", opts.Payload).
		Int("series", result.Series).
		Bool("changed", result.Changed).
		Msg("Payload patched")

	return result, nil
}

// chartRecordIndex returns the position of the chart record with the given
// path in the payload's charts array, or -1.
func chartRecordIndex(payload []byte, chartPath string) int {
	pos, i := -1, 0
	gjson.GetBytes(payload, "charts").ForEach(func(_, chart gjson.Result) bool {
		if chart.Get("chartPath").String() == chartPath {
			pos = i
			return false
		}
		i++
		return true
	})
	return pos
}

// FindDeck returns the first .pptx file under root in lexical walk order,
// skipping Office lock files (~$ prefix).
func FindDeck(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".pptx") {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil {
		return "", fmt.Errorf("search %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w under %s", ErrDeckNotFound, root)
	}
	return found, nil
}
