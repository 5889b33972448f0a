package roitrack

import (
	"math"
	"testing"

	"github.com/swdee/go-roitrack/tracker"
)

func TestToFrameSpace(t *testing.T) {

	display := Extent{Width: 640, Height: 480}

	tests := []struct {
		frame    Extent
		in       Point
		expected Point
	}{
		{Extent{1920, 1080}, Point{100, 100}, Point{300, 225}},
		{Extent{640, 480}, Point{17, 33}, Point{17, 33}},
		{Extent{320, 960}, Point{640, 480}, Point{320, 960}},
		{Extent{1280, 720}, Point{0, 0}, Point{0, 0}},
	}

	for _, tc := range tests {
		got := ToFrameSpace(tc.in, display, tc.frame)

		if math.Abs(float64(got.X-tc.expected.X)) > 1e-3 ||
			math.Abs(float64(got.Y-tc.expected.Y)) > 1e-3 {
			t.Errorf("ToFrameSpace(%v, %v) = %v, expected %v", tc.in, tc.frame, got, tc.expected)
		}
	}
}

func TestMapperRoundTrip(t *testing.T) {

	display := Extent{Width: 640, Height: 480}
	frames := []Extent{{1920, 1080}, {1280, 720}, {333, 777}, {3840, 2160}}

	for _, frame := range frames {
		m := Mapper{Display: display, Frame: frame}

		for x := 0; x <= display.Width; x += 37 {
			for y := 0; y <= display.Height; y += 29 {
				p := Point{float32(x), float32(y)}
				back := m.ToDisplay(m.ToFrame(p))

				if math.Abs(float64(back.X-p.X)) > 1 || math.Abs(float64(back.Y-p.Y)) > 1 {
					t.Fatalf("round trip of %v through %v gave %v", p, frame, back)
				}
			}
		}
	}
}

func TestMapperRects(t *testing.T) {

	m := Mapper{Display: Extent{640, 480}, Frame: Extent{1920, 1080}}

	if m.ScaleX() != 3 || m.ScaleY() != 2.25 {
		t.Fatalf("unexpected scale factors %v, %v", m.ScaleX(), m.ScaleY())
	}

	box := tracker.NewRect(100, 100, 100, 60)
	frameBox := m.RectToFrame(box)
	expected := tracker.NewRect(300, 225, 300, 135)

	if frameBox != expected {
		t.Errorf("RectToFrame(%v) = %v, expected %v", box, frameBox, expected)
	}

	if back := m.RectToDisplay(frameBox); !rectNear(back, box, 1e-3) {
		t.Errorf("RectToDisplay(%v) = %v, expected %v", frameBox, back, box)
	}
}

// rectNear compares rect components within tolerance
func rectNear(a, b tracker.Rect, tolerance float64) bool {
	return math.Abs(float64(a.X-b.X)) <= tolerance &&
		math.Abs(float64(a.Y-b.Y)) <= tolerance &&
		math.Abs(float64(a.Width-b.Width)) <= tolerance &&
		math.Abs(float64(a.Height-b.Height)) <= tolerance
}
