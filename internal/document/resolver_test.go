package document

import "testing"

func TestResolveZeroOffset(t *testing.T) {
	doc := sampleDoc()
	loc := Resolve(doc, 0)

	if loc.Fragment.Text != "Title" {
		t.Errorf("Resolve(0) fragment = %q, want %q", loc.Fragment.Text, "Title")
	}
	if loc.LocalOffset != 0 {
		t.Errorf("Resolve(0) local offset = %d, want 0", loc.LocalOffset)
	}
}

func TestResolveTotalLength(t *testing.T) {
	doc := sampleDoc()
	total := doc.TotalLength()
	loc := Resolve(doc, total)

	if loc.Fragment.Text != "!" {
		t.Errorf("Resolve(total) fragment = %q, want last fragment", loc.Fragment.Text)
	}
	if loc.LocalOffset != loc.Fragment.Length() {
		t.Errorf("Resolve(total) local offset = %d, want %d", loc.LocalOffset, loc.Fragment.Length())
	}
}

func TestResolveClampsBeyondTotal(t *testing.T) {
	doc := sampleDoc()
	loc := Resolve(doc, doc.TotalLength()+100)

	if loc.Fragment.Text != "!" {
		t.Errorf("clamped fragment = %q, want last fragment", loc.Fragment.Text)
	}
	if loc.LocalOffset != loc.Fragment.Length() {
		t.Errorf("clamped local offset = %d, want fragment end", loc.LocalOffset)
	}
}

func TestResolveClampsNegative(t *testing.T) {
	doc := sampleDoc()
	loc := Resolve(doc, -5)

	if loc.Fragment.Text != "Title" || loc.LocalOffset != 0 {
		t.Errorf("Resolve(-5) = (%q, %d), want first fragment at 0", loc.Fragment.Text, loc.LocalOffset)
	}
}

func TestResolveFragmentBoundary(t *testing.T) {
	doc := NewElement("doc", NewText("abc"), NewText("defg"))

	// An offset that lands exactly on a boundary resolves to the end of
	// the earlier fragment, not the start of the later one.
	loc := Resolve(doc, 3)
	if loc.Fragment.Text != "abc" {
		t.Errorf("Resolve(3) fragment = %q, want %q", loc.Fragment.Text, "abc")
	}
	if loc.LocalOffset != 3 {
		t.Errorf("Resolve(3) local offset = %d, want 3", loc.LocalOffset)
	}

	loc = Resolve(doc, 4)
	if loc.Fragment.Text != "defg" {
		t.Errorf("Resolve(4) fragment = %q, want %q", loc.Fragment.Text, "defg")
	}
	if loc.LocalOffset != 1 {
		t.Errorf("Resolve(4) local offset = %d, want 1", loc.LocalOffset)
	}
}

func TestResolveNoFragments(t *testing.T) {
	doc := NewElement("doc", NewElement("p"))
	loc := Resolve(doc, 7)

	if loc.Fragment != doc {
		t.Error("Resolve on an empty document should return the root itself")
	}
	if loc.LocalOffset != 0 {
		t.Errorf("local offset = %d, want 0", loc.LocalOffset)
	}
}

// TestResolveBracketing verifies that for every offset in [0, total] the
// resolved fragment brackets the offset: lengthBefore <= offset <=
// lengthBefore + fragment length.
func TestResolveBracketing(t *testing.T) {
	doc := sampleDoc()
	total := doc.TotalLength()

	for o := 0; o <= total; o++ {
		loc := Resolve(doc, o)
		if loc.LengthBefore > o {
			t.Errorf("offset %d: lengthBefore %d exceeds offset", o, loc.LengthBefore)
		}
		if loc.LengthBefore+loc.Fragment.Length() < o {
			t.Errorf("offset %d: fragment ends at %d, before offset",
				o, loc.LengthBefore+loc.Fragment.Length())
		}
		if loc.LocalOffset != o-loc.LengthBefore {
			t.Errorf("offset %d: local offset %d, want %d", o, loc.LocalOffset, o-loc.LengthBefore)
		}
	}
}
