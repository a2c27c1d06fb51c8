package overlay

import (
	"fmt"

	"github.com/dshills/cursorcast/internal/layout"
)

// Projector computes precise container-relative caret positions by
// measuring offsets through a layout.Provider.
type Projector struct {
	provider layout.Provider

	// trailingBias shifts the result right by the measured rect width,
	// biasing placement toward the trailing edge of the resolved
	// character. This is an approximation, not guaranteed caret
	// placement: for multi-column target clusters it overshoots the
	// insertion point. Preserved as configured behavior.
	trailingBias bool
}

// NewProjector creates a projector over the given provider. The provider
// may be nil, in which case every projection fails with
// layout.ErrNoContainer.
func NewProjector(provider layout.Provider, trailingBias bool) *Projector {
	return &Projector{provider: provider, trailingBias: trailingBias}
}

// Project measures the container-relative position for a character offset.
//
// Failures are local: callers are expected to fall back to the estimator
// rather than propagate the error.
func (p *Projector) Project(offset int) (layout.Point, error) {
	if p.provider == nil {
		return layout.Point{}, layout.ErrNoContainer
	}

	rect, err := p.provider.OffsetRect(offset)
	if err != nil {
		return layout.Point{}, fmt.Errorf("measuring offset %d: %w", offset, err)
	}
	if rect.IsDegenerate() {
		return layout.Point{}, fmt.Errorf("measuring offset %d: %w", offset, layout.ErrUnsettled)
	}

	origin := p.provider.Metrics().Origin
	pos := layout.Point{X: rect.X - origin.X, Y: rect.Y - origin.Y}
	if p.trailingBias {
		pos.X += rect.Width
	}
	return pos, nil
}
