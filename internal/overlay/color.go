package overlay

import (
	"github.com/lucasb-eyer/go-colorful"
)

// hueSlots is the hue circle resolution for assigned colors.
const hueSlots = 360

// Assigner maps collaborator identifiers to stable badge colors.
//
// The mapping is a pure function of the identifier's bytes: the same ID
// yields the same color across calls and across processes. Distinct IDs
// may collide; uniqueness is not required.
type Assigner struct {
	// Saturation and Lightness fix the HSL channels so assigned colors
	// differ only in hue.
	Saturation float64
	Lightness  float64
}

// NewAssigner creates an assigner with the default saturation and
// lightness.
func NewAssigner() *Assigner {
	return &Assigner{Saturation: 0.65, Lightness: 0.55}
}

// ColorOf returns the color assigned to a user ID.
func (a *Assigner) ColorOf(userID string) colorful.Color {
	return colorful.Hsl(float64(hueOf(userID)), a.Saturation, a.Lightness)
}

// Hex returns the assigned color as a "#rrggbb" string.
func (a *Assigner) Hex(userID string) string {
	return a.ColorOf(userID).Hex()
}

// hueOf reduces an identifier to a hue slot with a polynomial rolling
// hash over its code points.
func hueOf(userID string) int {
	var h uint32
	for _, r := range userID {
		h = h*31 + uint32(r)
	}
	return int(h % hueSlots)
}
