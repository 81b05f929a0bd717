// Package notify delivers style change events and user-visible alerts.
//
// Observers subscribe to every change or to a path prefix such as
// "components/button". Alerts carry a title and message meant for the
// person editing styles and are delivered to alert handlers.
package notify

import (
	"strings"
	"sync"
)

// ChangeType represents the type of style change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReset indicates a value was cleared with a nil write.
	ChangeReset

	// ChangeOptimize indicates redundant breakpoint entries were collapsed.
	ChangeOptimize

	// ChangeReload indicates the whole document was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReset:
		return "reset"
	case ChangeOptimize:
		return "optimize"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a style change event.
type Change struct {
	// Path is the slash-separated plugin path. Empty for reload events.
	Path string

	// Viewport is the breakpoint written, empty when all viewports were.
	Viewport string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value (may be nil for resets).
	NewValue any

	// Source identifies where the change came from.
	Source string
}

// Alert is a user-visible, non-fatal message.
type Alert struct {
	Title   string
	Message string
}

// Observer is called when style changes occur.
type Observer func(change Change)

// AlertHandler is called when an alert is raised.
type AlertHandler func(alert Alert)

// Subscription represents an active subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.remove(s.id)
	}
}

// observer is a registered change observer. An empty prefix matches
// every change.
type observer struct {
	prefix string
	fn     Observer
}

// matches reports whether a change at path concerns the observer.
// Reload events have no path and reach everyone.
func (o observer) matches(path string) bool {
	if o.prefix == "" || path == "" || path == o.prefix {
		return true
	}
	return strings.HasPrefix(path, o.prefix+"/")
}

// Notifier fans out style changes to observers and alerts to handlers.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	closed bool

	observers map[uint64]observer
	alerts    map[uint64]AlertHandler

	queue chan Change
	done  chan struct{}
	wg    sync.WaitGroup
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync queues changes for delivery on a background goroutine.
// Alerts are always delivered synchronously.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.queue = make(chan Change, bufferSize)
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		observers: make(map[uint64]observer),
		alerts:    make(map[uint64]AlertHandler),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	if n.queue != nil {
		n.wg.Add(1)
		go n.drain()
	}
	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(fn Observer) *Subscription {
	return n.SubscribePath("", fn)
}

// SubscribePath registers an observer for changes at path or below it.
// Subscribing to "components" receives changes to "components/button/primary/size".
func (n *Notifier) SubscribePath(path string, fn Observer) *Subscription {
	return n.register(func(id uint64) {
		n.observers[id] = observer{prefix: path, fn: fn}
	})
}

// OnAlert registers a handler for alerts.
func (n *Notifier) OnAlert(handler AlertHandler) *Subscription {
	return n.register(func(id uint64) {
		n.alerts[id] = handler
	})
}

func (n *Notifier) register(add func(id uint64)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	add(n.nextID)
	return &Subscription{id: n.nextID, notifier: n}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.observers, id)
	delete(n.alerts, id)
}

// Alert raises a user-visible message with the given title.
func (n *Notifier) Alert(title, message string) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	handlers := make([]AlertHandler, 0, len(n.alerts))
	for _, h := range n.alerts {
		handlers = append(handlers, h)
	}
	n.mu.RUnlock()

	a := Alert{Title: title, Message: message}
	for _, h := range handlers {
		h(a)
	}
}

// Notify publishes a change to the observers it concerns.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	closed := n.closed
	n.mu.RUnlock()
	if closed {
		return
	}

	if n.queue == nil {
		n.deliver(change)
		return
	}
	select {
	case n.queue <- change:
	case <-n.done:
	}
}

// NotifySet publishes a write at path. A nil newValue is a reset.
func (n *Notifier) NotifySet(path, viewport string, oldValue, newValue any, source string) {
	typ := ChangeSet
	if newValue == nil {
		typ = ChangeReset
	}
	n.Notify(Change{
		Path:     path,
		Viewport: viewport,
		Type:     typ,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// NotifyReload publishes a whole-document reload.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close stops delivery, flushing queued changes first. Calling it again
// is a no-op.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// deliver calls the matching observers outside the lock.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	var targets []Observer
	for _, o := range n.observers {
		if o.matches(change.Path) {
			targets = append(targets, o.fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
}

func (n *Notifier) drain() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.queue:
			n.deliver(change)
		case <-n.done:
			for {
				select {
				case change := <-n.queue:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}

// Batch collects multiple changes and delivers them as a group.
type Batch struct {
	notifier *Notifier
	changes  []Change
	mu       sync.Mutex
}

// NewBatch creates a new batch for collecting changes.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Add adds a change to the batch.
func (b *Batch) Add(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, change)
}

// Commit sends all batched changes to observers.
func (b *Batch) Commit() {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	for _, change := range changes {
		b.notifier.Notify(change)
	}
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}
