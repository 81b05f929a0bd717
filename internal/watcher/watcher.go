// Package watcher reloads a styles document when its file changes.
//
// The watcher observes the document's directory rather than the file so
// that atomic saves (write to a temporary file, then rename) are seen.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/stylebag/internal/document"
	"github.com/dshills/stylebag/internal/logging"
	"github.com/dshills/stylebag/internal/notify"
	"github.com/dshills/stylebag/internal/objpath"
)

// ErrWatcherClosed indicates the watcher has been closed.
var ErrWatcherClosed = errors.New("watcher is closed")

// Reload describes one reload of the document.
type Reload struct {
	// Document is the freshly loaded document, nil if loading failed.
	Document *document.Document

	// Added, Modified and Removed list changed paths as
	// "<entity>/<plugin path>", sorted.
	Added    []string
	Modified []string
	Removed  []string

	// Err is set when the file could not be loaded.
	Err error

	// Time is when the reload happened.
	Time time.Time
}

// Changed reports whether the reload changed anything.
func (r Reload) Changed() bool {
	return len(r.Added)+len(r.Modified)+len(r.Removed) > 0
}

// Handler is called after each reload.
type Handler func(Reload)

// Watcher reloads a document on change.
type Watcher struct {
	mu sync.Mutex

	store    *document.Store
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *logging.Logger
	notifier *notify.Notifier

	current  *document.Document
	handlers []Handler
	closed   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long to wait for writes to settle before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithNotifier publishes a reload change after each successful reload.
func WithNotifier(n *notify.Notifier) Option {
	return func(w *Watcher) {
		w.notifier = n
	}
}

// New creates a watcher for the document behind store and loads it once.
func New(store *document.Store, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		store:    store,
		fsw:      fsw,
		debounce: 100 * time.Millisecond,
		logger:   logging.Default().WithComponent("watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}

	doc, err := store.Load()
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.current = doc

	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Document returns the most recently loaded document.
func (w *Watcher) Document() *document.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// OnReload registers a handler for reloads.
func (w *Watcher) OnReload(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.mu.Unlock()

	target, err := filepath.Abs(w.store.Path())
	if err != nil {
		return err
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(target, event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)

		case <-timer.C:
			w.reload()
		}
	}
}

// Reload loads the document now and notifies handlers.
func (w *Watcher) Reload() Reload {
	return w.reload()
}

// Close stops the watcher. It is safe to call Close multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) relevant(target string, event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove)
}

func (w *Watcher) reload() Reload {
	r := Reload{Time: time.Now()}

	doc, err := w.store.Load()
	if err != nil {
		r.Err = err
		w.logger.Error("reload %s: %v", w.store.Path(), err)
		w.dispatch(r)
		return r
	}

	w.mu.Lock()
	prev := w.current
	w.current = doc
	w.mu.Unlock()

	r.Document = doc
	r.Added, r.Modified, r.Removed = objpath.Diff(bagsOf(prev), bagsOf(doc))
	sort.Strings(r.Added)
	sort.Strings(r.Modified)
	sort.Strings(r.Removed)

	w.logger.Info("reloaded %s: %d added, %d modified, %d removed",
		w.store.Path(), len(r.Added), len(r.Modified), len(r.Removed))
	if w.notifier != nil && r.Changed() {
		w.notifier.NotifyReload(w.store.Path())
	}

	w.dispatch(r)
	return r
}

func (w *Watcher) dispatch(r Reload) {
	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(r)
	}
}

func bagsOf(d *document.Document) map[string]any {
	out := make(map[string]any)
	if d == nil {
		return out
	}
	for id, bag := range d.Bags() {
		out[id] = bag
	}
	return out
}
