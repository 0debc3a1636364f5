package parser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// WorkbookSource resolves an embedded workbook entry to its cell model.
type WorkbookSource interface {
	Workbook(entry string) (*Workbook, error)
}

// WorkbookCache builds each embedded workbook of a container at most once and
// shares it between charts. It is safe for concurrent use.
type WorkbookCache struct {
	c *Container

	mu    sync.Mutex
	books map[string]*cachedWorkbook
}

type cachedWorkbook struct {
	once sync.Once
	wb   *Workbook
	err  error
}

// NewWorkbookCache returns a cache over the embedded workbooks of c.
func NewWorkbookCache(c *Container) *WorkbookCache {
	return &WorkbookCache{c: c, books: make(map[string]*cachedWorkbook)}
}

// Workbook returns the model of the workbook stored at entry.
func (wc *WorkbookCache) Workbook(entry string) (*Workbook, error) {
	wc.mu.Lock()
	cw, ok := wc.books[entry]
	if !ok {
		cw = &cachedWorkbook{}
		wc.books[entry] = cw
	}
	wc.mu.Unlock()

	cw.once.Do(func() {
		data, err := wc.c.ReadEntry(entry)
		if err != nil {
			cw.err = err
			return
		}
		cw.wb, cw.err = NewWorkbook(entry, data)
	})
	return cw.wb, cw.err
}

// Close releases every workbook opened so far.
func (wc *WorkbookCache) Close() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	var errs []error
	for _, cw := range wc.books {
		if cw.wb != nil {
			errs = append(errs, cw.wb.Close())
		}
	}
	return errors.Join(errs...)
}

// ChartExtractor recovers chart data from chart parts of one container.
type ChartExtractor struct {
	Container *Container
	Theme     ThemeColors
	Workbooks WorkbookSource
	// Combo collects series from every chart-family element of the plot
	// area instead of only the first one carrying series.
	Combo bool
}

// chartRun accumulates notes while one chart is resolved.
type chartRun struct {
	wb    *Workbook
	notes []string
}

func (r *chartRun) note(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

// Extract returns the data of the chart part at chartPath. Problems that
// affect part of the chart are reported as notes on the result; the error is
// non-nil only when the chart part itself cannot be read or parsed, in which
// case the result still carries the path and a note.
func (x *ChartExtractor) Extract(chartPath string) (models.ChartData, error) {
	chart := models.ChartData{
		Path:           chartPath,
		Type:           models.UnknownChart,
		CategoryValues: []models.Value{},
		Series:         []models.SeriesData{},
		Notes:          []string{},
	}

	data, err := x.Container.ReadEntry(chartPath)
	if err != nil {
		chart.Notes = append(chart.Notes, fmt.Sprintf("cannot read chart part: %v", err))
		return chart, err
	}
	part, err := parseChartXML(data)
	if err != nil {
		chart.Notes = append(chart.Notes, fmt.Sprintf("cannot parse chart part: %v", err))
		return chart, fmt.Errorf("parse %s: %w", chartPath, err)
	}

	run := &chartRun{}
	x.attachWorkbook(chartPath, run)
	if run.wb != nil {
		chart.WorkbookPath = run.wb.Name()
	}

	chart.Title = part.title
	chart.HasDateAxis = part.hasDateAxis

	families := x.seriesFamilies(part)
	if len(families) > 0 {
		chart.Type = families[0].chartType
		if x.Combo && len(families) > 1 {
			chart.Type = models.ComboChart
		}
	}

	index := 0
	for _, fam := range families {
		for _, s := range fam.series {
			sd := x.resolveSeries(index, s, run)
			if x.Combo {
				sd.RenderAs = fam.chartType.RenderAs()
			}
			chart.Series = append(chart.Series, sd)
			index++
		}
	}

	chart.CategoryValues, chart.CategoryRef = x.resolveCategories(families, run)
	if chart.HasDateAxis {
		for i, v := range chart.CategoryValues {
			if f, ok := v.Float(); ok {
				chart.CategoryValues[i] = models.Text(SerialToISO(f))
			}
		}
	}

	chart.Notes = append(chart.Notes, run.notes...)
	return chart, nil
}

// seriesFamilies selects the series containers: the first family element
// with at least one series, or in combo mode every such element.
func (x *ChartExtractor) seriesFamilies(part *chartPart) []chartFamily {
	var out []chartFamily
	for _, fam := range part.families {
		if len(fam.series) == 0 {
			continue
		}
		out = append(out, fam)
		if !x.Combo {
			break
		}
	}
	return out
}

// attachWorkbook finds the embedded workbook declared by the chart's package
// relationship. Charts without one are valid and keep their cached values.
func (x *ChartExtractor) attachWorkbook(chartPath string, run *chartRun) {
	if x.Workbooks == nil {
		return
	}
	rels, err := ResolvePartRelationships(x.Container, chartPath)
	if err != nil {
		run.note("cannot read chart relationships: %v", err)
		return
	}
	for _, rel := range rels.ByType(relKindPackage) {
		if rel.External {
			continue
		}
		wb, err := x.Workbooks.Workbook(rel.Target)
		if err != nil {
			run.note("cannot open embedded workbook %s: %v", rel.Target, err)
			continue
		}
		run.wb = wb
		return
	}
}

// resolveRange reads formula from the chart's workbook.
func (x *ChartExtractor) resolveRange(formula string, run *chartRun) []models.Value {
	if run.wb == nil || formula == "" {
		return nil
	}
	values, err := run.wb.Resolve(formula)
	if err != nil {
		if errors.Is(err, ErrMalformedFormula) {
			run.note("cannot parse formula %s: %v", formula, err)
		} else {
			run.note("cannot resolve formula %s: %v", formula, err)
		}
		return nil
	}
	return values
}

// resolveSource returns the live workbook values of ds, falling back to its
// cached or literal points.
func (x *ChartExtractor) resolveSource(ds *dataSource, run *chartRun) (values []models.Value, formula string) {
	if ds == nil {
		return []models.Value{}, ""
	}
	if ds.ref {
		formula = ds.formula
		values = x.resolveRange(formula, run)
	}
	if len(values) == 0 {
		values = ds.cached()
	}
	if values == nil {
		values = []models.Value{}
	}
	return values, formula
}

// resolveSeries resolves name, values and color of one series.
// Name order: literal text, then the name reference against the workbook.
func (x *ChartExtractor) resolveSeries(index int, s seriesPart, run *chartRun) models.SeriesData {
	sd := models.SeriesData{Name: s.name}

	if sd.Name == "" && s.nameRef != nil {
		if vals := x.resolveRange(s.nameRef.formula, run); len(vals) > 0 && !vals[0].IsEmpty() {
			sd.Name = vals[0].String()
		}
	}
	if sd.Name == "" {
		if s.nameRef != nil && s.nameRef.formula != "" {
			run.note("series %d name reference %s did not resolve", index+1, s.nameRef.formula)
		} else {
			run.note("series %d has no name", index+1)
		}
	}

	sd.Values, sd.RangeRef = x.resolveSource(s.val, run)

	switch {
	case s.srgb != "":
		sd.Color = "#" + s.srgb
	case s.scheme != "":
		sd.Color = x.Theme.Resolve(s.scheme)
	}

	return sd
}

// resolveCategories reads the category axis from the first series. In combo
// mode later series are tried while the result is empty.
func (x *ChartExtractor) resolveCategories(families []chartFamily, run *chartRun) ([]models.Value, string) {
	for _, fam := range families {
		for _, s := range fam.series {
			values, formula := x.resolveSource(s.cat, run)
			if len(values) > 0 || !x.Combo {
				return values, formula
			}
		}
	}
	return []models.Value{}, ""
}
