// Package watch reports changes to a fixed set of files, debounced.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename-and-replace keep triggering events.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/rs2ts/am"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
)

// ChangeFunc is called with the sorted, de-duplicated set of watched paths
// that changed during one debounce window. Calls never overlap.
type ChangeFunc func(changed []string)

// Watcher watches files for changes and triggers debounced callbacks
type Watcher struct {
	watcher        *fsnotify.Watcher
	paths          map[string]string // cleaned absolute path -> path as given
	onChange       ChangeFunc
	debouncePeriod time.Duration
	logger         *zap.SugaredLogger

	mu            sync.Mutex
	debounceTimer *time.Timer
	pending       map[string]struct{}

	runMu sync.Mutex // serializes onChange
}

// New creates a watcher for paths. A debounce of zero reports every event
// immediately.
func New(paths []string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths to watch")
	}
	if onChange == nil {
		return nil, errors.New("watch: nil change callback")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fsw,
		paths:          make(map[string]string, len(paths)),
		onChange:       onChange,
		debouncePeriod: debounce,
		pending:        make(map[string]struct{}),
		logger:         logger.ComponentLogger("watch"),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.paths[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run processes file system events until ctx is done or Close is called
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("File watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// Only Write, Create and Rename (editor atomic saves) matter
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if am.IsBackupFile(event.Name) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	original, watched := w.paths[abs]
	if !watched {
		return
	}

	w.logger.Debugw("File watcher detected change",
		logger.FieldFile, original,
		"op", event.Op.String())
	w.schedule(original)
}

// schedule debounces rapid file changes and triggers the callback
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.onChange(changed)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
