// Package watch regenerates output when input files change.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by renaming a temporary file are still noticed.
// Bursts of events are debounced into a single handler call.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to settle
const DefaultDebounce = 300 * time.Millisecond

// Handler is called with the sorted set of changed files
type Handler func(changed []string) error

// Watcher watches a fixed set of files
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	handler  Handler
	debounce time.Duration
	log      *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool

	runMu sync.Mutex // serialises handler calls
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger; the default discards
func WithLogger(log *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.log = log }
}

// New starts watching the directories holding files
func New(files []string, handler Handler, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("nothing to watch")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]bool, len(files)),
		handler:  handler,
		debounce: DefaultDebounce,
		log:      zap.NewNop().Sugar(),
		pending:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// Run delivers debounced changes to the handler until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			w.log.Debugw("watched file changed", logger.FieldFile, abs, "op", event.Op.String())
			w.schedule(abs)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	w.runMu.Lock()
	defer w.runMu.Unlock()
	if err := w.handler(changed); err != nil {
		w.log.Errorw("regeneration failed", "files", changed, "error", err)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.fs.Close()
}
