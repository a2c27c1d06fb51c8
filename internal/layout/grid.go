package layout

import (
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/cursorcast/internal/document"
)

// GridConfig holds configuration for the monospace grid provider.
type GridConfig struct {
	// CellWidth is the pixel width of one grid column.
	CellWidth float64

	// CellHeight is the pixel height of one grid row.
	CellHeight float64

	// Metrics describes the container being measured.
	Metrics Metrics
}

// DefaultGridConfig returns the default grid configuration: a 16px font on
// an 800px container.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellWidth:  9.6,
		CellHeight: 19.2,
		Metrics: Metrics{
			Width:    800,
			Height:   600,
			FontSize: 16,
		},
	}
}

// Grid is a monospace Provider. It lays the document's text content onto a
// character grid, wrapping at the container width, and measures offsets as
// grid cells scaled to pixels. Display widths are grapheme-cluster aware,
// so wide runes occupy two columns and combining marks occupy none.
type Grid struct {
	mu     sync.RWMutex
	config GridConfig
	root   *document.Node
}

// NewGrid creates a grid provider over the given document root.
func NewGrid(root *document.Node, config GridConfig) *Grid {
	return &Grid{config: config, root: root}
}

// SetRoot replaces the measured document root.
func (g *Grid) SetRoot(root *document.Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.root = root
}

// SetMetrics updates the container metrics, e.g. after a resize.
func (g *Grid) SetMetrics(m Metrics) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.Metrics = m
}

// SetCellSize changes the pixel size of one grid cell. A terminal backend
// uses 1x1 cells so measured positions are row/column coordinates.
func (g *Grid) SetCellSize(width, height float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if width > 0 {
		g.config.CellWidth = width
	}
	if height > 0 {
		g.config.CellHeight = height
	}
}

// Metrics returns the container metrics.
func (g *Grid) Metrics() Metrics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.Metrics
}

// Columns returns the number of grid columns that fit the container width.
func (g *Grid) Columns() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.columnsLocked()
}

func (g *Grid) columnsLocked() int {
	if g.config.CellWidth <= 0 {
		return 1
	}
	cols := int(g.config.Metrics.Width / g.config.CellWidth)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// OffsetRect measures the marker rect for a character offset.
//
// The rect's width is the display width of the grapheme cluster following
// the offset (zero at end of content or before a line break), which lets
// callers bias placement toward the trailing edge of the character.
func (g *Grid) OffsetRect(offset int) (Rect, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.root == nil {
		return Rect{}, ErrNoContainer
	}
	if g.config.Metrics.Width <= 0 || g.config.CellWidth <= 0 || g.config.CellHeight <= 0 {
		return Rect{}, ErrUnsettled
	}

	// Resolve the offset into the fragment tree first; this clamps
	// out-of-range offsets to the content bounds.
	loc := document.Resolve(g.root, offset)
	offset = loc.LengthBefore + loc.LocalOffset

	cols := g.columnsLocked()
	text := g.root.PlainText()

	line, col := 0, 0
	consumed := 0

	state := -1
	for len(text) > 0 {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := len([]rune(cluster))
		w := g.clusterColumns(cluster, width)

		// A cluster that no longer fits wraps to the next row; a marker
		// pointing at it wraps with it.
		if cluster != "\n" && col+w > cols {
			line++
			col = 0
		}

		if consumed >= offset {
			return g.cellRect(line, col, w), nil
		}

		if cluster == "\n" {
			line++
			col = 0
		} else {
			col += w
		}
		consumed += runes
	}

	// Offset at or beyond end of content: zero-width marker after the
	// final cluster.
	return g.cellRect(line, col, 0), nil
}

// clusterColumns returns the column count a grapheme cluster occupies.
// Line breaks occupy no columns.
func (g *Grid) clusterColumns(cluster string, width int) int {
	if cluster == "\n" {
		return 0
	}
	return width
}

func (g *Grid) cellRect(line, col, widthCols int) Rect {
	m := g.config.Metrics
	return Rect{
		X:      m.Origin.X + float64(col)*g.config.CellWidth,
		Y:      m.Origin.Y + float64(line)*g.config.CellHeight,
		Width:  float64(widthCols) * g.config.CellWidth,
		Height: g.config.CellHeight,
	}
}
