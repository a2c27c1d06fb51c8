package layout

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateDeterministic(t *testing.T) {
	// charWidth = 0.6 * fontSize = 10, lineHeight = 1.2 * fontSize = 20,
	// charsPerLine = floor(85/10) = 8.
	m := Metrics{Width: 85, FontSize: 50.0 / 3.0}

	got := Estimate(11, m)
	if !approx(got.X, 30) || !approx(got.Y, 20) {
		t.Errorf("Estimate(11) = (%v, %v), want (30, 20)", got.X, got.Y)
	}

	// Pure function: identical inputs, identical outputs.
	again := Estimate(11, m)
	if again != got {
		t.Errorf("Estimate(11) not reproducible: %v vs %v", again, got)
	}
}

func TestEstimateTable(t *testing.T) {
	m := Metrics{Width: 85, FontSize: 50.0 / 3.0}

	tests := []struct {
		name   string
		offset int
		wantX  float64
		wantY  float64
	}{
		{"origin", 0, 0, 0},
		{"first line", 7, 70, 0},
		{"wrap boundary", 8, 0, 20},
		{"third line", 16, 0, 40},
		{"negative clamps", -3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.offset, m)
			if !approx(got.X, tt.wantX) || !approx(got.Y, tt.wantY) {
				t.Errorf("Estimate(%d) = (%v, %v), want (%v, %v)",
					tt.offset, got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestEstimateDefaultFontSize(t *testing.T) {
	// No font size: assume 16px, charWidth 9.6, lineHeight 19.2.
	m := Metrics{Width: 100}

	got := Estimate(10, m)
	if !approx(got.X, 0) || !approx(got.Y, 19.2) {
		t.Errorf("Estimate(10) = (%v, %v), want (0, 19.2)", got.X, got.Y)
	}
}

func TestEstimateExplicitLineHeight(t *testing.T) {
	m := Metrics{Width: 85, FontSize: 50.0 / 3.0, LineHeight: 24}

	got := Estimate(8, m)
	if !approx(got.Y, 24) {
		t.Errorf("Estimate(8).Y = %v, want explicit line height 24", got.Y)
	}
}

func TestEstimateNarrowContainer(t *testing.T) {
	// Zero-width container: at least one character per line, no division
	// by zero.
	m := Metrics{Width: 0, FontSize: 10}

	got := Estimate(3, m)
	if !approx(got.X, 0) || !approx(got.Y, 36) {
		t.Errorf("Estimate(3) = (%v, %v), want (0, 36)", got.X, got.Y)
	}
}

func TestEstimateNeverFails(t *testing.T) {
	// Entirely empty metrics still produce a best-effort value: default
	// 16px font, one character per zero-width line.
	got := Estimate(5, Metrics{})
	if !approx(got.X, 0) || !approx(got.Y, 96) {
		t.Errorf("Estimate(5) with empty metrics = (%v, %v), want (0, 96)", got.X, got.Y)
	}
}
