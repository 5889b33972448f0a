package render

import "image/color"

var (
	// regionColors is the palette cycled through to color each tracked region
	regionColors = []color.RGBA{
		{R: 72, G: 249, B: 10, A: 255},   // #48F90A
		{R: 255, G: 56, B: 56, A: 255},   // #FF3838
		{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 203, G: 56, B: 255, A: 255},  // #CB38FF
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
		{R: 100, G: 115, B: 255, A: 255}, // #6473FF
		{R: 207, G: 210, B: 49, A: 255},  // #CFD231
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 26, G: 147, B: 52, A: 255},   // #1A9334
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
	}

	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Grey   = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	// LostColor is used for regions whose tracker lost the target
	LostColor = Grey
)

// RegionColor returns the palette color for the region at the given index
func RegionColor(index int) color.RGBA {
	if index < 0 {
		index = -index
	}
	return regionColors[index%len(regionColors)]
}
