package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering region labels using the GoCV
// Hershey fonts
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     Black,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}

// ScaledFont returns the font with its size, thickness and padding multiplied
// by the given factor, eg: the frame to display scale so labels keep a
// readable size after the frame is shrunk for display
func (f Font) ScaledFont(factor float64) Font {

	if factor <= 1 {
		return f
	}

	f.Scale *= factor
	f.Thickness = scaleInt(f.Thickness, factor)
	f.LeftPad = scaleInt(f.LeftPad, factor)
	f.RightPad = scaleInt(f.RightPad, factor)
	f.TopPad = scaleInt(f.TopPad, factor)
	f.BottomPad = scaleInt(f.BottomPad, factor)

	return f
}

func scaleInt(v int, factor float64) int {
	return int(float64(v)*factor + 0.5)
}
