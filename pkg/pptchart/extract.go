package pptchart

import (
	"fmt"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/parser"
	"golang.org/x/sync/errgroup"
)

// session holds the deck-wide state shared by every chart of one run.
type session struct {
	c         *parser.Container
	index     *parser.SlideIndex
	workbooks *parser.WorkbookCache
	extractor *parser.ChartExtractor
}

func openSession(path string, opts Options, logger arbor.ILogger) (*session, error) {
	c, err := parser.Open(path)
	if err != nil {
		return nil, err
	}

	theme, err := parser.LoadThemeColors(c)
	if err != nil {
		logger.Warn().Err(err).Str("deck", path).Msg("Theme unreadable, scheme colors stay unresolved")
	}

	index, err := parser.LoadSlideIndex(c)
	if err != nil {
		logger.Warn().Err(err).Str("deck", path).Msg("Some slides could not be indexed")
	}

	workbooks := parser.NewWorkbookCache(c)
	return &session{
		c:         c,
		index:     index,
		workbooks: workbooks,
		extractor: &parser.ChartExtractor{
			Container: c,
			Theme:     theme,
			Workbooks: workbooks,
			Combo:     opts.Combo,
		},
	}, nil
}

func (s *session) close(logger arbor.ILogger) {
	if err := s.workbooks.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to release embedded workbooks")
	}
	s.c.Close()
}

// extract returns the chart at chartPath with its slide placement. The
// error is non-nil only when the chart part itself is unreadable; the
// returned record then still carries the path and a note.
func (s *session) extract(chartPath string, logger arbor.ILogger) (models.ChartData, error) {
	chart, err := s.extractor.Extract(chartPath)
	for _, note := range chart.Notes {
		logger.Warn().Str("chart", chartPath).Str("note", note).Msg("Chart extracted with notes")
	}
	chart.Slides = s.index.SlidesFor(chartPath)
	chart.SlideTitles = make([]string, len(chart.Slides))
	for i, n := range chart.Slides {
		chart.SlideTitles[i] = s.index.TitleFor(n)
	}
	return chart, err
}

// Extract extracts the data of every chart in the deck at path. Charts are
// processed concurrently and returned in chart-path order. Only a deck that
// cannot be opened fails the run; per-chart problems become notes.
func Extract(path string, opts Options) (*models.Deck, error) {
	logger := opts.logger()

	s, err := openSession(path, opts, logger)
	if err != nil {
		return nil, err
	}
	defer s.close(logger)

	parts := parser.ChartParts(s.c)
	charts := make([]models.ChartData, len(parts))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, part := range parts {
		g.Go(func() error {
			chart, err := s.extract(part, logger)
			if err != nil {
				logger.Warn().Err(err).Str("chart", part).Msg("Chart part unreadable")
			}
			charts[i] = chart
			return nil
		})
	}
	_ = g.Wait()

	deck := &models.Deck{
		Name:        filepath.Base(path),
		SlideTitles: s.index.Titles(),
		Charts:      charts,
	}

	withNotes := 0
	for i := range charts {
		if len(charts[i].Notes) > 0 {
			withNotes++
		}
	}
	logger.Info().
		Str("deck", deck.Name).
		Int("slides", len(s.index.Slides())).
		Int("charts", len(charts)).
		Int("with_notes", withNotes).
		Msg("Extraction complete")

	return deck, nil
}

// ExtractChart extracts a single chart part of the deck at path. A chart part
// that cannot be read or parsed is an *ExtractionError.
func ExtractChart(path, chartPath string, opts Options) (models.ChartData, error) {
	logger := opts.logger()

	s, err := openSession(path, opts, logger)
	if err != nil {
		return models.ChartData{}, err
	}
	defer s.close(logger)

	if !s.c.Has(chartPath) {
		return models.ChartData{}, NewExtractionError(chartPath, "chart",
			fmt.Errorf("%w in %s", ErrChartNotFound, filepath.Base(path)))
	}
	chart, err := s.extract(chartPath, logger)
	if err != nil {
		return chart, NewExtractionError(chartPath, "chart", err)
	}
	return chart, nil
}
