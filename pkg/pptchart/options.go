// Package pptchart extracts chart data from slide decks.
package pptchart

import (
	"runtime"

	"github.com/ternarybob/arbor"
)

// MaxWorkers bounds Options.Workers.
const MaxWorkers = 64

// Options configures extraction behavior.
type Options struct {
	// Workers is the number of charts extracted concurrently.
	// Zero means one per CPU.
	Workers int
	// Combo collects series from every chart family of a plot area and
	// tags each with how it is drawn.
	Combo bool
	// Logger receives per-chart warnings and the run summary.
	// If nil, nothing is logged.
	Logger arbor.ILogger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() arbor.ILogger {
	if o.Logger != nil {
		return o.Logger
	}
	return arbor.NewLogger()
}

func (o Options) workers() int {
	switch {
	case o.Workers <= 0:
		return min(runtime.NumCPU(), MaxWorkers)
	case o.Workers > MaxWorkers:
		return MaxWorkers
	}
	return o.Workers
}
