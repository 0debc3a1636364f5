package pptchart

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ternarybob/arbor"
)

// DefaultDebounce is the quiet period Watch waits for after the last change.
const DefaultDebounce = 500 * time.Millisecond

// Watch calls fn every time the deck at deckPath is created or written, once
// the file has been quiet for debounce. It watches the deck's directory so
// that editors which replace the file on save are still seen. Errors from fn
// are logged and do not stop the watch. Watch returns when ctx is cancelled.
func Watch(ctx context.Context, deckPath string, debounce time.Duration, logger arbor.ILogger, fn func() error) error {
	if logger == nil {
		logger = arbor.NewLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(deckPath)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info().Str("deck", abs).Msg("Watcher started")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info().Msg("Watcher stopped")
			return nil

		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				logger.Warn().Err(err).Str("deck", abs).Msg("Refresh failed")
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Msg("Deck changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(watchErr).Msg("Watcher error")
		}
	}
}
