package pptchart

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/parser"
)

// Errors surfaced by the parser layer.
var (
	ErrContainer        = parser.ErrContainer
	ErrEntryNotFound    = parser.ErrEntryNotFound
	ErrSheetNotFound    = parser.ErrSheetNotFound
	ErrMalformedFormula = parser.ErrMalformedFormula
)

// ErrChartNotFound indicates the requested chart part is not in the deck.
var ErrChartNotFound = errors.New("chart part not found")

// ErrChartNotInPayload indicates the slide payload has no record for the chart.
var ErrChartNotInPayload = errors.New("chart not present in payload")

// ErrDeckNotFound indicates no deck file was found under the search root.
var ErrDeckNotFound = errors.New("no deck found")

// ExtractionError represents a failure to complete work on a single chart.
type ExtractionError struct {
	ChartPath string
	Component string // "chart", "payload"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in %q (%s): %v", e.ChartPath, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(chartPath, component string, err error) *ExtractionError {
	return &ExtractionError{
		ChartPath: chartPath,
		Component: component,
		Err:       err,
	}
}
