package models

// SeriesRecord is the serialized form of a series inside a slide payload.
type SeriesRecord struct {
	Name     string  `json:"name"`
	Values   []Value `json:"values"`
	Range    *string `json:"range"`
	Color    *string `json:"color"`
	RenderAs string  `json:"renderAs,omitempty"`
}

// ChartRecord is the serialized form of a chart inside a slide payload.
type ChartRecord struct {
	ChartPath      string         `json:"chartPath"`
	ChartType      ChartType      `json:"chartType"`
	Title          *string        `json:"title"`
	Workbook       *string        `json:"workbook"`
	CategoryLabels []Value        `json:"categoryLabels"`
	CategoryRange  *string        `json:"categoryRange"`
	Series         []SeriesRecord `json:"series"`
	Notes          []string       `json:"notes"`
	HasDateAxis    bool           `json:"hasDateAxis"`
	ValueRange     *AxisDomain    `json:"valueRange,omitempty"`
}

// SlidePayload is the per-slide output unit. Slide 0 collects charts that
// no slide references.
type SlidePayload struct {
	Slide  int           `json:"slide"`
	Title  string        `json:"title"`
	Charts []ChartRecord `json:"charts"`
}
