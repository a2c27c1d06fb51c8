package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler receives the full current sample list whenever the feed changes.
type Handler func(samples []CursorSample)

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithTTL sets the sample time-to-live. Samples older than the TTL are
// dropped at delivery time. Zero disables expiry: a collaborator is then
// removed only by an explicit Remove.
func WithTTL(ttl time.Duration) FeedOption {
	return func(f *Feed) {
		if ttl >= 0 {
			f.ttl = ttl
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) FeedOption {
	return func(f *Feed) {
		if now != nil {
			f.now = now
		}
	}
}

// Feed is an in-memory presence feed. It keeps the latest sample per
// collaborator and notifies subscribers with a complete, sorted sample
// list on every change. Deliveries are serialized: concurrent publishes
// notify subscribers in the same order the samples were recorded, so a
// subscriber never ends up holding an older list than the feed. Handlers
// must not call Publish or Remove re-entrantly.
type Feed struct {
	// deliverMu serializes the record-then-notify sequence.
	deliverMu sync.Mutex

	mu sync.RWMutex

	// sessionID identifies this feed instance to transports.
	sessionID string

	// samples holds the latest sample per user ID.
	samples map[string]CursorSample

	// handlers receive the full list on every change.
	handlers []Handler

	ttl time.Duration
	now func() time.Time
}

// NewFeed creates an empty presence feed.
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{
		sessionID: uuid.NewString(),
		samples:   make(map[string]CursorSample),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SessionID returns the feed's session identifier.
func (f *Feed) SessionID() string {
	return f.sessionID
}

// Subscribe registers a handler for sample-list changes.
func (f *Feed) Subscribe(h Handler) {
	if h == nil {
		return
	}
	f.mu.Lock()
	f.handlers = append(f.handlers, h)
	f.mu.Unlock()
}

// Publish records a sample, replacing any prior sample for the same user,
// and notifies subscribers. Samples without a user ID are ignored. A zero
// timestamp is stamped with the current time.
func (f *Feed) Publish(sample CursorSample) {
	if sample.UserID == "" {
		return
	}
	sample = sample.Normalize()

	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.mu.Lock()
	if sample.Timestamp.IsZero() {
		sample.Timestamp = f.now()
	}
	f.samples[sample.UserID] = sample
	list := f.samplesLocked()
	handlers := make([]Handler, len(f.handlers))
	copy(handlers, f.handlers)
	f.mu.Unlock()

	for _, h := range handlers {
		h(list)
	}
}

// Remove drops a collaborator's sample and notifies subscribers.
func (f *Feed) Remove(userID string) {
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.mu.Lock()
	if _, ok := f.samples[userID]; !ok {
		f.mu.Unlock()
		return
	}
	delete(f.samples, userID)
	list := f.samplesLocked()
	handlers := make([]Handler, len(f.handlers))
	copy(handlers, f.handlers)
	f.mu.Unlock()

	for _, h := range handlers {
		h(list)
	}
}

// Samples returns the current sample list, TTL applied, sorted by user ID.
func (f *Feed) Samples() []CursorSample {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.samplesLocked()
}

// samplesLocked builds the delivered list. Expired samples are evicted
// here so every delivery reflects the TTL policy. Callers must hold f.mu.
func (f *Feed) samplesLocked() []CursorSample {
	if f.ttl > 0 {
		cutoff := f.now().Add(-f.ttl)
		for id, s := range f.samples {
			if s.Timestamp.Before(cutoff) {
				delete(f.samples, id)
			}
		}
	}

	list := make([]CursorSample, 0, len(f.samples))
	for _, s := range f.samples {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UserID < list[j].UserID
	})
	return list
}
