// Package watch runs a conversion again each time its source file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when Watcher.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// A Watcher calls Convert once when it starts, then again whenever Source is
// written or replaced.  Bursts of changes closer together than Debounce cause
// a single conversion.
type Watcher struct {
	Source   string
	Debounce time.Duration
	Convert  func() error
	Logger   *zerolog.Logger
}

// Run watches until ctx is cancelled.  A failed conversion is logged and does
// not stop the watcher.  Conversions never overlap as they all run on the
// calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.logger()
	source, err := filepath.Abs(w.Source)
	if err != nil {
		return errors.Wrapf(err, "bad path %q", w.Source)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer fsw.Close()

	// Watch the directory so the source is still seen after being replaced
	// by a rename.
	dir := filepath.Dir(source)
	if err := fsw.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch dir %q", dir)
	}
	log.Info().Str("source", source).Msg("watching")

	w.convert(log)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != source {
				continue
			}
			log.Debug().Str("event", event.Op.String()).Msg("source changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			w.convert(log)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) convert(log *zerolog.Logger) {
	if err := w.Convert(); err != nil {
		log.Error().Err(err).Str("source", w.Source).Msg("conversion failed")
	}
}

func (w *Watcher) logger() *zerolog.Logger {
	if w.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return w.Logger
}
