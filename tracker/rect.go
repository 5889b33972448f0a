package tracker

import (
	"image"
)

// Xyah (center x, center y, aspect ratio, height) represents a 1x4 matrix
type Xyah [4]float32

// Rect is an axis aligned box in (top, left, width, height) format.  Regions
// and tracker results are kept in frame pixel units.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// NewRect creates a new Rect with given coordinates
func NewRect(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromRectangle converts an integer image.Rectangle into a Rect
func RectFromRectangle(r image.Rectangle) Rect {
	r = r.Canon()
	return NewRect(float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()))
}

// BRX returns the bottom-right x coordinate of the rectangle
func (r Rect) BRX() float32 {
	return r.X + r.Width
}

// BRY returns the bottom-right y coordinate of the rectangle
func (r Rect) BRY() float32 {
	return r.Y + r.Height
}

// Center returns the center point of the rectangle
func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle, edges
// included
func (r Rect) Contains(x, y float32) bool {
	return r.X <= x && x <= r.BRX() && r.Y <= y && y <= r.BRY()
}

// Clamp restricts the rectangle to lie within [0,width) x [0,height).  The
// result may be empty if the rectangle lies entirely outside the bounds.
func (r Rect) Clamp(width, height int) Rect {

	maxX := float32(width)
	maxY := float32(height)

	x1 := clampf(r.X, 0, maxX)
	y1 := clampf(r.Y, 0, maxY)
	x2 := clampf(r.BRX(), 0, maxX)
	y2 := clampf(r.BRY(), 0, maxY)

	return NewRect(x1, y1, x2-x1, y2-y1)
}

// Rectangle converts to an integer image.Rectangle, truncating each
// component as the tracking backends expect
func (r Rect) Rectangle() image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}

// GetXyah converts the rectangle to Xyah (center x, center y, aspect ratio,
// height) format
func (r Rect) GetXyah() Xyah {
	cx, cy := r.Center()
	return Xyah{cx, cy, r.Width / r.Height, r.Height}
}

// GenerateRectByXyah creates a Rect from Xyah (center x, center y,
// aspect ratio, height) format
func GenerateRectByXyah(xyah Xyah) Rect {
	width := xyah[2] * xyah[3]
	return NewRect(xyah[0]-width/2, xyah[1]-xyah[3]/2, width, xyah[3])
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
