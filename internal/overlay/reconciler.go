package overlay

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/cursorcast/internal/layout"
	"github.com/dshills/cursorcast/internal/logging"
	"github.com/dshills/cursorcast/internal/presence"
)

// phase is the reconciler's state in its event machine. The machine reacts
// to three events: CursorsChanged, ContentMutated, and DebounceElapsed.
type phase uint8

const (
	// phaseIdle means no recompute is pending.
	phaseIdle phase = iota

	// phaseDebouncing means a content mutation is waiting out the
	// settle delay.
	phaseDebouncing
)

// ReconcilerConfig holds configuration for the overlay reconciler.
type ReconcilerConfig struct {
	// LocalUserID is the observing user. Their own cursor is never part
	// of the overlay state.
	LocalUserID string

	// DebounceDelay is how long content-mutation recomputes are deferred
	// so layout can settle after a patch. Repeated mutations within the
	// window collapse into one recompute.
	DebounceDelay time.Duration

	// TrailingBias shifts projected carets by the measured rect width.
	TrailingBias bool
}

// DefaultReconcilerConfig returns the default reconciler configuration.
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		DebounceDelay: 150 * time.Millisecond,
	}
}

// Reconciler owns the live overlay state. It is the single writer: every
// recompute builds a fresh State and replaces the old one wholesale, so
// readers never observe a mix of stale and fresh positions.
type Reconciler struct {
	mu sync.Mutex

	config    ReconcilerConfig
	provider  layout.Provider
	projector *Projector
	logger    *logging.Logger

	// cursors is the most recent sample list from the presence feed.
	cursors []presence.CursorSample

	// state is the current renderable set.
	state State

	// Debounce machinery. seq invalidates timers superseded by a newer
	// content mutation.
	phase phase
	seq   uint64
	timer *time.Timer

	// recomputes counts completed reconciliation passes.
	recomputes uint64
}

// NewReconciler creates a reconciler measuring through the given provider.
// A nil provider is allowed: positions then default to the origin until a
// provider is attached.
func NewReconciler(provider layout.Provider, config ReconcilerConfig, logger *logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Nop()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = DefaultReconcilerConfig().DebounceDelay
	}
	return &Reconciler{
		config:    config,
		provider:  provider,
		projector: NewProjector(provider, config.TrailingBias),
		logger:    logger,
		state:     make(State),
	}
}

// SetProvider attaches or replaces the measurement provider, e.g. when the
// rendering container mounts or unmounts. Triggers an immediate recompute.
func (r *Reconciler) SetProvider(provider layout.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider = provider
	r.projector = NewProjector(provider, r.config.TrailingBias)
	r.recomputeLocked()
}

// CursorsChanged delivers a new cursor list from the presence feed.
// Recomputes immediately: stale remote positions are visually worse than
// the recompute cost.
func (r *Reconciler) CursorsChanged(cursors []presence.CursorSample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cursors = make([]presence.CursorSample, len(cursors))
	copy(r.cursors, cursors)
	r.recomputeLocked()
}

// ContentMutated signals that the document content changed. The recompute
// is deferred by the debounce delay; a newer signal within the window
// cancels and restarts it, so a burst collapses into a single pass using
// the freshest inputs.
func (r *Reconciler) ContentMutated() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	seq := r.seq
	r.phase = phaseDebouncing

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.config.DebounceDelay, func() {
		r.debounceElapsed(seq)
	})
}

// debounceElapsed fires when the settle delay runs out. Timers superseded
// by a newer mutation are ignored.
func (r *Reconciler) debounceElapsed(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseDebouncing || seq != r.seq {
		return
	}
	r.phase = phaseIdle
	r.timer = nil
	r.recomputeLocked()
}

// Flush runs any pending debounced recompute immediately. Used at shutdown
// and by callers that need the state current right now.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseDebouncing {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.phase = phaseIdle
	r.recomputeLocked()
}

// Stop cancels any pending recompute without running it.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.phase = phaseIdle
}

// Snapshot returns the current overlay state. The returned map is an
// independent copy; mutating it does not affect the reconciler.
func (r *Reconciler) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

// Recomputes returns the number of completed reconciliation passes.
func (r *Reconciler) Recomputes() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recomputes
}

// recomputeLocked rebuilds the overlay state from the current cursor list.
// The new state replaces the old one atomically; there is no per-entry
// patching even when a single cursor moved. Callers must hold r.mu.
func (r *Reconciler) recomputeLocked() {
	next := make(State, len(r.cursors))

	for _, sample := range r.cursors {
		if sample.UserID == "" || sample.UserID == r.config.LocalUserID {
			continue
		}

		entry := Entry{Sample: sample}
		pos, err := r.projector.Project(sample.Offset)
		switch {
		case err == nil:
			entry.Pos = pos
		case errors.Is(err, layout.ErrNoContainer):
			// No live container: best effort is the origin.
			r.logger.Debugf("no container for %s, defaulting to origin", sample.UserID)
		default:
			entry.Pos = layout.Estimate(sample.Offset, r.metricsLocked())
			entry.Estimated = true
			r.logger.Debugf("measurement failed for %s at %d, estimated: %v",
				sample.UserID, sample.Offset, err)
		}

		next[sample.UserID] = entry
	}

	r.state = next
	r.recomputes++
}

// metricsLocked returns the provider metrics, or zero metrics without a
// provider. Callers must hold r.mu.
func (r *Reconciler) metricsLocked() layout.Metrics {
	if r.provider == nil {
		return layout.Metrics{}
	}
	return r.provider.Metrics()
}
