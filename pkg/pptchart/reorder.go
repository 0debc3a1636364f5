package pptchart

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/output"
)

// ReorderResult reports what Reorder did to one payload file.
type ReorderResult struct {
	Path string
	// Charts holds the positions of the reordered charts in the file.
	Charts []int
	// Written is true when the file was rewritten.
	Written bool
}

// Reorder puts the categories of every chart whose labels are all ISO dates
// into chronological order, permuting each series' values to match. Labels
// that are already in order, or that are not all dates, are left alone.
// Files without changes, and every file when dryRun is set, are not written.
func Reorder(paths []string, dryRun bool, logger arbor.ILogger) ([]ReorderResult, error) {
	if logger == nil {
		logger = arbor.NewLogger()
	}

	results := make([]ReorderResult, 0, len(paths))
	for _, path := range paths {
		res, err := reorderFile(path, dryRun)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if len(res.Charts) == 0 {
			logger.Info().Str("file", path).Msg("Already in chronological order or unsupported labels")
			continue
		}
		logger.Info().
			Str("file", path).
			Str("charts", fmt.Sprint(res.Charts)).
			Bool("dry_run", dryRun).
			Msg("Reordered charts")
	}
	return results, nil
}

func reorderFile(path string, dryRun bool) (ReorderResult, error) {
	res := ReorderResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	if !gjson.ValidBytes(data) {
		return res, fmt.Errorf("%s: invalid JSON", path)
	}

	charts := gjson.GetBytes(data, "charts")
	if !charts.IsArray() {
		return res, nil
	}

	for i, chart := range charts.Array() {
		order := chronologicalOrder(chart.Get("categoryLabels"))
		if order == nil {
			continue
		}

		prefix := fmt.Sprintf("charts.%d.", i)
		data, err = sjson.SetRawBytes(data, prefix+"categoryLabels", permute(chart.Get("categoryLabels"), order))
		if err != nil {
			return res, err
		}
		for j, series := range chart.Get("series").Array() {
			values := series.Get("values")
			if !values.IsArray() {
				continue
			}
			data, err = sjson.SetRawBytes(data, fmt.Sprintf("%sseries.%d.values", prefix, j), permute(values, order))
			if err != nil {
				return res, err
			}
		}
		res.Charts = append(res.Charts, i)
	}

	if len(res.Charts) == 0 || dryRun {
		return res, nil
	}
	if err := os.WriteFile(path, output.Format(data), 0644); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// chronologicalOrder returns the index permutation that sorts labels by
// date, or nil when labels are empty, not all dates, or already sorted.
func chronologicalOrder(labels gjson.Result) []int {
	items := labels.Array()
	if !labels.IsArray() || len(items) == 0 {
		return nil
	}

	dates := make([]time.Time, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil
		}
		t, ok := parseISODate(item.Str)
		if !ok {
			return nil
		}
		dates[i] = t
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return dates[a].Compare(dates[b])
	})

	for i, idx := range order {
		if i != idx {
			return order
		}
	}
	return nil
}

var isoLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// permute returns the JSON array of arr's elements in the given order.
// Positions beyond arr's length become null.
func permute(arr gjson.Result, order []int) []byte {
	items := arr.Array()
	out := make([]byte, 0, len(arr.Raw))
	out = append(out, '[')
	for i, idx := range order {
		if i > 0 {
			out = append(out, ',')
		}
		if idx < len(items) {
			out = append(out, items[idx].Raw...)
		} else {
			out = append(out, "null"...)
		}
	}
	return append(out, ']')
}
