package preprocess

import (
	"image"

	"gocv.io/x/gocv"
)

// Resizer scales composite video frames onto the fixed size display surface.
// The display is a letterboxless stretch, each axis is scaled independently
// and aspect ratio distortion is accepted.
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width to scale to
	destWidth int
	// destHeight is the height to scale to
	destHeight int
	// interpolation used by the resize
	interpolation gocv.InterpolationFlags
}

// NewResizer returns a resizer used for scaling a video frame of the given
// source size to the display size
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {
	return &Resizer{
		srcWidth:      srcWidth,
		srcHeight:     srcHeight,
		destWidth:     destWidth,
		destHeight:    destHeight,
		interpolation: pickInterpolation(srcWidth, srcHeight, destWidth, destHeight),
	}
}

// pickInterpolation uses area interpolation when shrinking and linear when
// enlarging, which is what OpenCV recommends for each direction
func pickInterpolation(srcWidth, srcHeight, destWidth, destHeight int) gocv.InterpolationFlags {
	if destWidth*destHeight < srcWidth*srcHeight {
		return gocv.InterpolationArea
	}
	return gocv.InterpolationLinear
}

// Stretch resizes src to the display dimensions into dest
func (r *Resizer) Stretch(src gocv.Mat, dest *gocv.Mat) {

	if src.Cols() == r.destWidth && src.Rows() == r.destHeight {
		src.CopyTo(dest)
		return
	}

	gocv.Resize(src, dest, image.Pt(r.destWidth, r.destHeight), 0, 0, r.interpolation)
}
