package overlay

import "testing"

func TestColorOfDeterministic(t *testing.T) {
	a := NewAssigner()

	first := a.ColorOf("u2")
	for i := 0; i < 10; i++ {
		if got := a.ColorOf("u2"); got != first {
			t.Fatalf("ColorOf(u2) diverged on call %d: %v vs %v", i, got, first)
		}
	}

	// A fresh assigner produces the identical color: the mapping is a
	// pure function of the identifier.
	if got := NewAssigner().ColorOf("u2"); got != first {
		t.Errorf("fresh assigner ColorOf(u2) = %v, want %v", got, first)
	}
}

func TestColorOfDistinctIDs(t *testing.T) {
	a := NewAssigner()
	if a.ColorOf("alice") == a.ColorOf("bob") {
		t.Error("alice and bob should not share a color")
	}
}

func TestHueOfRange(t *testing.T) {
	ids := []string{"", "u1", "u2", "a-very-long-identifier-with-unicode-ü"}
	for _, id := range ids {
		h := hueOf(id)
		if h < 0 || h >= hueSlots {
			t.Errorf("hueOf(%q) = %d, want [0, %d)", id, h, hueSlots)
		}
	}
}

func TestHexFormat(t *testing.T) {
	hex := NewAssigner().Hex("u2")
	if len(hex) != 7 || hex[0] != '#' {
		t.Errorf("Hex(u2) = %q, want #rrggbb", hex)
	}
}
