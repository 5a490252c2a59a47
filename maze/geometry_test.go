package maze

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPointLineDist(t *testing.T) {
	tests := []struct {
		name      string
		l1, l2, p Point
		want      float64
	}{
		{"above horizontal line", Point{0, 0}, Point{1, 0}, Point{0.5, 2}, 2},
		{"on the line", Point{0, 0}, Point{2, 2}, Point{1, 1}, 0},
		{"right of vertical line", Point{1, 0}, Point{1, 5}, Point{3, 2}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PointLineDist(tc.l1, tc.l2, tc.p)
			if !almostEqual(got, tc.want) {
				t.Errorf("PointLineDist(%v, %v, %v) = %v, want %v", tc.l1, tc.l2, tc.p, got, tc.want)
			}
		})
	}
}

func TestPointLineDistDegenerate(t *testing.T) {
	if got := PointLineDist(Point{1, 1}, Point{1, 1}, Point{0, 0}); got != -1.0 {
		t.Errorf("degenerate segment: got %v, want -1", got)
	}
}

func TestPointSegmentDist(t *testing.T) {
	v1, v2 := Point{0, 0}, Point{1, 0}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"beyond first endpoint", Point{-1, 0}, 1},
		{"beyond second endpoint", Point{2, 0}, 1},
		{"perpendicular within span", Point{0.5, 1}, 1},
		{"diagonal to endpoint", Point{-3, 4}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PointSegmentDist(v1, v2, tc.p)
			if !almostEqual(got, tc.want) {
				t.Errorf("PointSegmentDist(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestTriArea(t *testing.T) {
	if got := triArea(Point{0, 0}, Point{1, 0}, Point{0, 1}); !almostEqual(got, 0.5) {
		t.Errorf("triArea = %v, want 0.5", got)
	}
	// Degenerate triangle has zero area.
	if got := triArea(Point{0, 0}, Point{1, 1}, Point{2, 2}); !almostEqual(got, 0) {
		t.Errorf("collinear triArea = %v, want 0", got)
	}
}

func TestInTriMargin(t *testing.T) {
	p1, p2, p3 := Point{0, 0}, Point{1, 0}, Point{0, 1}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{0.25, 0.25}, true},
		{"far outside", Point{1.2, 1.2}, false},
		{"within margin of an edge", Point{-0.05, 0.5}, true},
		{"just past the margin", Point{-0.15, 0.5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := inTriMargin(p1, p2, p3, tc.p); got != tc.want {
				t.Errorf("inTriMargin(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	if got := roundTo(1.23456, 4); !almostEqual(got, 1.2346) {
		t.Errorf("roundTo(1.23456, 4) = %v", got)
	}
	if got := roundTo(1.24, 1); !almostEqual(got, 1.2) {
		t.Errorf("roundTo(1.24, 1) = %v", got)
	}
}
