package tracker

import (
	"image"
	"math"
	"testing"
)

// almostEqual checks if two float32 values are approximately equal
func almostEqual(a, b, tolerance float32) bool {
	return float32(math.Abs(float64(a)-float64(b))) <= tolerance
}

// rectsEqual compares the components of two rects within tolerance
func rectsEqual(a, b Rect, tolerance float32) bool {
	return almostEqual(a.X, b.X, tolerance) &&
		almostEqual(a.Y, b.Y, tolerance) &&
		almostEqual(a.Width, b.Width, tolerance) &&
		almostEqual(a.Height, b.Height, tolerance)
}

func TestRectContainsInclusive(t *testing.T) {

	r := NewRect(10, 20, 30, 40)

	tests := []struct {
		x, y float32
		want bool
	}{
		{10, 20, true},
		{40, 60, true},
		{25, 40, true},
		{9.9, 20, false},
		{40.1, 60, false},
		{25, 60.5, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectClamp(t *testing.T) {

	tests := []struct {
		in       Rect
		expected Rect
	}{
		{NewRect(10, 10, 20, 20), NewRect(10, 10, 20, 20)},
		{NewRect(-5, -10, 20, 20), NewRect(0, 0, 15, 10)},
		{NewRect(90, 40, 20, 20), NewRect(90, 40, 10, 10)},
		{NewRect(120, 10, 20, 20), NewRect(100, 10, 0, 20)},
	}

	for _, tc := range tests {
		got := tc.in.Clamp(100, 50)

		if !rectsEqual(got, tc.expected, 1e-4) {
			t.Errorf("Clamp(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}

	if !NewRect(120, 10, 20, 20).Clamp(100, 50).Empty() {
		t.Errorf("expected rect outside bounds to clamp to empty")
	}
}

func TestRectConversions(t *testing.T) {

	r := NewRect(100, 200, 50, 100)

	xyah := r.GetXyah()
	expectedXyah := Xyah{125, 250, 0.5, 100}

	for i := range xyah {
		if !almostEqual(xyah[i], expectedXyah[i], 1e-4) {
			t.Fatalf("GetXyah() = %v, expected %v", xyah, expectedXyah)
		}
	}

	if back := GenerateRectByXyah(xyah); !rectsEqual(back, r, 1e-3) {
		t.Errorf("GenerateRectByXyah() = %v, expected %v", back, r)
	}

	rect := NewRect(10.7, 20.2, 30.9, 40.1).Rectangle()

	if rect != image.Rect(10, 20, 40, 60) {
		t.Errorf("Rectangle() = %v, expected %v", rect, image.Rect(10, 20, 40, 60))
	}

	if got := RectFromRectangle(image.Rect(40, 60, 10, 20)); !rectsEqual(got, NewRect(10, 20, 30, 40), 0) {
		t.Errorf("RectFromRectangle() = %v", got)
	}
}
