// Package watch re-runs the pipeline when the input workbook changes.
// Editors and sync clients replace files rather than writing in place, so
// the watch sits on the parent directory and filters to the target name.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/errors"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs onChange whenever the watched file is written or
// recreated. Processing errors are logged and the watch continues.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func() error
	log      *internal.Logger
}

// New creates a watcher for one file.
func New(path string, debounce time.Duration, onChange func() error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		log:      internal.DefaultLogger,
	}
}

// Run blocks until ctx is cancelled, reprocessing on every settled change.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %s", dir)
	}
	w.log.Info("[Watch] Watching %s", w.path)

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.log.Info("[Watch] %s changed, reprocessing", w.path)
			if err := w.onChange(); err != nil {
				w.log.Error("[Watch] Reprocess failed: %v", err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("[Watch] Watcher error: %v", err)
		}
	}
}
