package pptchart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const unorderedPayload = `{
  "slide": 4,
  "title": "Monthly",
  "charts": [
    {
      "chartPath": "ppt/charts/chart4.xml",
      "categoryLabels": ["2025-03-01", "2025-01-01", "2025-02-01"],
      "series": [
        {"name": "Price", "values": [3, 1]},
        {"name": "Volume", "values": [30, 10, 20]}
      ]
    },
    {
      "chartPath": "ppt/charts/chart5.xml",
      "categoryLabels": ["Q1", "Q2"],
      "series": []
    },
    {
      "chartPath": "ppt/charts/chart6.xml",
      "categoryLabels": ["2025-01-01", "2025-02-01"],
      "series": []
    }
  ]
}`

func writePayload(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "slide-04.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestReorder(t *testing.T) {
	path := writePayload(t, unorderedPayload)

	results, err := Reorder([]string{path}, false, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{0}, results[0].Charts)
	assert.True(t, results[0].Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["2025-01-01","2025-02-01","2025-03-01"]`, compactArray(gjson.GetBytes(data, "charts.0.categoryLabels")))
	assert.Equal(t, `[1,null,3]`, compactArray(gjson.GetBytes(data, "charts.0.series.0.values")))
	assert.Equal(t, `[10,20,30]`, compactArray(gjson.GetBytes(data, "charts.0.series.1.values")))
	assert.Equal(t, `["Q1","Q2"]`, compactArray(gjson.GetBytes(data, "charts.1.categoryLabels")))
	assert.Equal(t, "Monthly", gjson.GetBytes(data, "title").String())

	results, err = Reorder([]string{path}, false, nil)
	require.NoError(t, err)
	assert.Empty(t, results[0].Charts)
	assert.False(t, results[0].Written)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestReorderDryRun(t *testing.T) {
	path := writePayload(t, unorderedPayload)

	results, err := Reorder([]string{path}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, results[0].Charts)
	assert.False(t, results[0].Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unorderedPayload, string(data))
}

func TestReorderErrors(t *testing.T) {
	_, err := Reorder([]string{filepath.Join(t.TempDir(), "missing.json")}, false, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Reorder([]string{writePayload(t, "{")}, false, nil)
	assert.Error(t, err)

	results, err := Reorder([]string{writePayload(t, `{"slide": 1}`)}, false, nil)
	require.NoError(t, err)
	assert.Empty(t, results[0].Charts)
}

func TestChronologicalOrder(t *testing.T) {
	tests := []struct {
		labels   string
		expected []int
	}{
		{`["2025-02-01","2025-01-01","2025-02-01"]`, []int{1, 0, 2}},
		{`["2024-12-31T00:00:00","2024-01-01"]`, []int{1, 0}},
		{`["2024-01-01","2024-12-31"]`, nil},
		{`["2024-01-01","Q2"]`, nil},
		{`["2024-01-01",45658]`, nil},
		{`[]`, nil},
		{`"2024-01-01"`, nil},
	}

	for _, tt := range tests {
		result := chronologicalOrder(gjson.Parse(tt.labels))
		assert.Equal(t, tt.expected, result, tt.labels)
	}
}

func compactArray(r gjson.Result) string {
	out := "["
	for i, item := range r.Array() {
		if i > 0 {
			out += ","
		}
		out += item.Raw
	}
	return out + "]"
}
