package roitrack

import (
	"image"

	"github.com/swdee/go-roitrack/tracker"
)

// Extent is the pixel width and height of a display surface or video frame
type Extent struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Empty reports whether either dimension is zero or negative
func (e Extent) Empty() bool {
	return e.Width <= 0 || e.Height <= 0
}

// Point is a position in display or frame space
type Point struct {
	X, Y float32
}

// PointFrom converts an integer pointer position to a Point
func PointFrom(p image.Point) Point {
	return Point{X: float32(p.X), Y: float32(p.Y)}
}

// ToFrameSpace maps a display space point into frame space.  Each axis is
// scaled independently.  The display extent must not be empty.
func ToFrameSpace(p Point, display, frame Extent) Point {
	return Point{
		X: p.X * float32(frame.Width) / float32(display.Width),
		Y: p.Y * float32(frame.Height) / float32(display.Height),
	}
}

// ToDisplaySpace maps a frame space point into display space.  The frame
// extent must not be empty.
func ToDisplaySpace(p Point, display, frame Extent) Point {
	return Point{
		X: p.X * float32(display.Width) / float32(frame.Width),
		Y: p.Y * float32(display.Height) / float32(frame.Height),
	}
}

// Mapper converts between the display and frame coordinate systems of a
// loaded video
type Mapper struct {
	Display Extent
	Frame   Extent
}

// ScaleX returns the display to frame scale factor of the x axis
func (m Mapper) ScaleX() float32 {
	return float32(m.Frame.Width) / float32(m.Display.Width)
}

// ScaleY returns the display to frame scale factor of the y axis
func (m Mapper) ScaleY() float32 {
	return float32(m.Frame.Height) / float32(m.Display.Height)
}

// ToFrame maps a display space point into frame space
func (m Mapper) ToFrame(p Point) Point {
	return ToFrameSpace(p, m.Display, m.Frame)
}

// ToDisplay maps a frame space point into display space
func (m Mapper) ToDisplay(p Point) Point {
	return ToDisplaySpace(p, m.Display, m.Frame)
}

// RectToFrame maps all four components of a display space box into frame
// space
func (m Mapper) RectToFrame(r tracker.Rect) tracker.Rect {
	return tracker.NewRect(r.X*m.ScaleX(), r.Y*m.ScaleY(),
		r.Width*m.ScaleX(), r.Height*m.ScaleY())
}

// RectToDisplay maps a frame space box into display space
func (m Mapper) RectToDisplay(r tracker.Rect) tracker.Rect {
	sx := float32(m.Display.Width) / float32(m.Frame.Width)
	sy := float32(m.Display.Height) / float32(m.Frame.Height)
	return tracker.NewRect(r.X*sx, r.Y*sy, r.Width*sx, r.Height*sy)
}
