package layout

import "errors"

// Sentinel errors for measurement failures.
var (
	// ErrNoContainer is returned when no live container or document
	// reference is available to measure against.
	ErrNoContainer = errors.New("layout: no container")

	// ErrMarker is returned when a measurement marker cannot be
	// constructed, e.g. the resolved fragment is no longer part of the
	// live tree.
	ErrMarker = errors.New("layout: marker not constructible")

	// ErrUnsettled is returned when the measured geometry is degenerate
	// in a way that indicates the layout has not settled after a content
	// mutation.
	ErrUnsettled = errors.New("layout: geometry not settled")
)

// Point is a container-relative pixel position.
type Point struct {
	X float64
	Y float64
}

// Rect is a rectangle in a measurement coordinate space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsDegenerate returns true if the rect has no usable extent.
func (r Rect) IsDegenerate() bool {
	return r.Height <= 0
}

// Metrics describes the measurable geometry of a rendering container.
type Metrics struct {
	// Width is the container's inner width in pixels.
	Width float64

	// Height is the container's inner height in pixels.
	Height float64

	// FontSize is the effective font size in pixels. Zero means unknown;
	// consumers fall back to DefaultFontSize.
	FontSize float64

	// LineHeight is the computed line height in pixels. Zero means
	// unknown; consumers derive it from the font size.
	LineHeight float64

	// Origin is the container's own origin in the measurement space.
	// Measured rects are converted to container-relative coordinates by
	// subtracting it.
	Origin Point
}

// Provider resolves linear document offsets to measured rectangles.
//
// A provider measures a zero-width marker at the offset and reports its
// bounding rect in the provider's measurement space. Implementations must
// be read-only over the document and container they measure.
type Provider interface {
	// OffsetRect returns the marker rect for the given character offset.
	// Offsets beyond the content clamp to the end of the content.
	OffsetRect(offset int) (Rect, error)

	// Metrics returns the container's current metrics.
	Metrics() Metrics
}
