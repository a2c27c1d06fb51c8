package document

// Location is the result of resolving a linear offset: the target text
// fragment and the character offset within it.
type Location struct {
	// Fragment is the resolved leaf text node. When the document has no
	// text fragments at all, Fragment is the document root itself.
	Fragment *Node

	// LocalOffset is the character offset within Fragment.
	LocalOffset int

	// LengthBefore is the cumulative character count preceding Fragment.
	LengthBefore int
}

// Resolve maps a linear character offset to a fragment-local position.
//
// The traversal counts only text content; structural boundaries contribute
// no length. The first fragment whose inclusive cumulative length reaches
// offset is the target. Out-of-range offsets clamp: negative offsets resolve
// to the start of the first fragment, offsets at or beyond the total length
// resolve to the end of the last fragment.
//
// Callers must guard against a nil root.
func Resolve(root *Node, offset int) Location {
	frags := root.Fragments()
	if len(frags) == 0 {
		return Location{Fragment: root}
	}

	if offset < 0 {
		offset = 0
	}

	before := 0
	for _, f := range frags {
		length := f.Length()
		if before+length >= offset {
			return Location{
				Fragment:     f,
				LocalOffset:  offset - before,
				LengthBefore: before,
			}
		}
		before += length
	}

	// Beyond total length: clamp to the end of the last fragment.
	last := frags[len(frags)-1]
	return Location{
		Fragment:     last,
		LocalOffset:  last.Length(),
		LengthBefore: before - last.Length(),
	}
}
