package overlay

import (
	"github.com/dshills/cursorcast/internal/layout"
	"github.com/dshills/cursorcast/internal/presence"
)

// Entry is one collaborator's reconciled position.
type Entry struct {
	// Sample is the cursor sample the position was computed from.
	Sample presence.CursorSample

	// Pos is the container-relative position of the caret.
	Pos layout.Point

	// Estimated is true when precise measurement failed and the position
	// came from the fallback estimator.
	Estimated bool
}

// State is the renderable set: one entry per remote collaborator, keyed by
// user ID. It never contains the local user. A State is an immutable
// snapshot; the reconciler replaces the whole value on every pass rather
// than patching individual entries.
type State map[string]Entry

// clone returns an independent copy of the state.
func (s State) clone() State {
	out := make(State, len(s))
	for id, e := range s {
		out[id] = e
	}
	return out
}
