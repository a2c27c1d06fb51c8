package overlay

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/cursorcast/internal/layout"
)

// RenderDescriptor is one collaborator's renderable geometry: a name badge
// anchored at the caret, the caret line itself, and an optional selection
// rectangle. Consumers must not mutate descriptors; the full sequence is
// recomputed on every reconciliation pass.
type RenderDescriptor struct {
	UserID   string
	Username string

	// Color is the collaborator's assigned badge color.
	Color colorful.Color

	// Badge is the name badge box, anchored immediately above the caret.
	Badge layout.Rect

	// Caret is the caret line, anchored at the reconciled position.
	Caret layout.Rect

	// Selection is the selection highlight, nil when the sample carries
	// no selection.
	Selection *layout.Rect

	// Label is a diagnostic annotation ("name@offset~" for estimated
	// positions). Empty outside diagnostic mode.
	Label string
}

// RendererConfig holds configuration for descriptor geometry.
type RendererConfig struct {
	// BadgeWidth and BadgeHeight size the name badge box.
	BadgeWidth  float64
	BadgeHeight float64

	// CaretWidth is the caret line thickness.
	CaretWidth float64

	// LineHeight is the caret and selection height.
	LineHeight float64

	// CharWidth scales selection extents from character counts.
	CharWidth float64

	// Diagnostic enables diagnostic annotations on descriptors. The same
	// renderer serves production and diagnostic output; there is no
	// separate diagnostic code path.
	Diagnostic bool
}

// DefaultRendererConfig returns the default descriptor geometry for a 16px
// monospace surface.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		BadgeWidth:  14,
		BadgeHeight: 14,
		CaretWidth:  2,
		LineHeight:  19.2,
		CharWidth:   9.6,
	}
}

// Renderer projects overlay state into render descriptors. It is pure:
// rendering the same state twice yields identical descriptors and has no
// side effects.
type Renderer struct {
	mu       sync.RWMutex
	config   RendererConfig
	assigner *Assigner
}

// NewRenderer creates a renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.LineHeight <= 0 {
		config.LineHeight = DefaultRendererConfig().LineHeight
	}
	if config.CharWidth <= 0 {
		config.CharWidth = DefaultRendererConfig().CharWidth
	}
	return &Renderer{config: config, assigner: NewAssigner()}
}

// SetDiagnostic toggles diagnostic annotations. Safe to call while another
// goroutine renders, e.g. on a config reload.
func (r *Renderer) SetDiagnostic(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Diagnostic = on
}

// SetCellGeometry rescales descriptor geometry to the measurement cell
// size, so descriptors come out in the same units as reconciled positions.
// A terminal backend measuring in 1x1 cells gets one-cell carets, badges,
// and selection extents; a pixel backend keeps pixel geometry.
func (r *Renderer) SetCellGeometry(cellWidth, cellHeight float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cellWidth > 0 {
		r.config.CharWidth = cellWidth
		r.config.CaretWidth = cellWidth
		r.config.BadgeWidth = cellWidth
	}
	if cellHeight > 0 {
		r.config.LineHeight = cellHeight
		r.config.BadgeHeight = cellHeight
	}
}

// Render produces the descriptor sequence for an overlay state, ordered by
// user ID for stable output.
func (r *Renderer) Render(state State) []RenderDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(state))
	for id := range state {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	descs := make([]RenderDescriptor, 0, len(ids))
	for _, id := range ids {
		descs = append(descs, r.describe(id, state[id]))
	}
	return descs
}

func (r *Renderer) describe(id string, e Entry) RenderDescriptor {
	cfg := r.config
	desc := RenderDescriptor{
		UserID:   id,
		Username: e.Sample.Username,
		Color:    r.assigner.ColorOf(id),
		Badge: layout.Rect{
			X:      e.Pos.X,
			Y:      e.Pos.Y - cfg.BadgeHeight,
			Width:  cfg.BadgeWidth,
			Height: cfg.BadgeHeight,
		},
		Caret: layout.Rect{
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			Width:  cfg.CaretWidth,
			Height: cfg.LineHeight,
		},
	}

	if e.Sample.HasSelection() {
		// Selection geometry lives on the caret's own line: the extent is
		// scaled from raw offsets without re-projecting the selection
		// ends, so wrapped or multi-fragment selections are approximate.
		start := e.Sample.SelectionStart
		end := e.Sample.SelectionEnd
		sel := layout.Rect{
			X:      e.Pos.X - float64(e.Sample.Offset-start)*cfg.CharWidth,
			Y:      e.Pos.Y,
			Width:  float64(end-start) * cfg.CharWidth,
			Height: cfg.LineHeight,
		}
		desc.Selection = &sel
	}

	if cfg.Diagnostic {
		desc.Label = diagnosticLabel(e)
	}

	return desc
}

// diagnosticLabel renders "name@offset", with a trailing marker when the
// position came from the fallback estimator.
func diagnosticLabel(e Entry) string {
	name := e.Sample.Username
	if name == "" {
		name = e.Sample.UserID
	}
	label := fmt.Sprintf("%s@%d", name, e.Sample.Offset)
	if e.Estimated {
		label += "~"
	}
	return label
}
