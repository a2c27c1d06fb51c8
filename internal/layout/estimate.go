package layout

// DefaultFontSize is assumed when a container reports no font size.
const DefaultFontSize = 16.0

// charWidthRatio approximates a monospace advance as a fraction of the
// font size.
const charWidthRatio = 0.6

// lineHeightRatio derives a line height from the font size when the
// container reports none.
const lineHeightRatio = 1.2

// Estimate computes an approximate position for a character offset without
// measuring the document. It never fails: degraded accuracy is accepted for
// proportional or wrapped text where precise measurement is unreliable.
//
// The result is a pure function of the offset, the container width, and the
// font metrics: characters per line is the container width divided by an
// approximate character width of 0.6 times the font size, and the offset is
// laid out row-major across those columns.
func Estimate(offset int, m Metrics) Point {
	if offset < 0 {
		offset = 0
	}

	fontSize := m.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	charWidth := charWidthRatio * fontSize
	lineHeight := m.LineHeight
	if lineHeight <= 0 {
		lineHeight = lineHeightRatio * fontSize
	}

	charsPerLine := int(m.Width / charWidth)
	if charsPerLine < 1 {
		charsPerLine = 1
	}

	line := offset / charsPerLine
	return Point{
		X: float64(offset%charsPerLine) * charWidth,
		Y: float64(line) * lineHeight,
	}
}
