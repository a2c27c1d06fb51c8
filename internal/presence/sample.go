package presence

import "time"

// CursorSample is one collaborator's current cursor and selection state.
// Samples are supplied wholesale by the presence feed; the overlay engine
// only reads them.
type CursorSample struct {
	// UserID is the opaque collaborator identifier.
	UserID string

	// Username is the collaborator's display name.
	Username string

	// Offset is the linear character offset of the caret.
	Offset int

	// SelectionStart and SelectionEnd delimit the selection.
	// Equal values mean no selection.
	SelectionStart int
	SelectionEnd   int

	// Timestamp is when the sample was taken.
	Timestamp time.Time
}

// HasSelection returns true if the sample carries a non-empty selection.
func (s CursorSample) HasSelection() bool {
	return s.SelectionStart != s.SelectionEnd
}

// Normalize returns a copy with out-of-range fields repaired: negative
// offsets raised to zero and inverted selections swapped. Offsets beyond
// the document length are left alone; the resolver clamps those.
func (s CursorSample) Normalize() CursorSample {
	if s.Offset < 0 {
		s.Offset = 0
	}
	if s.SelectionStart < 0 {
		s.SelectionStart = 0
	}
	if s.SelectionEnd < 0 {
		s.SelectionEnd = 0
	}
	if s.SelectionStart > s.SelectionEnd {
		s.SelectionStart, s.SelectionEnd = s.SelectionEnd, s.SelectionStart
	}
	return s
}
