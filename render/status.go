package render

import (
	"image"
	"image/color"
	"os"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// StatusBar renders a line of text across the top of the display image using
// a TrueType font
type StatusBar struct {
	face       font.Face
	height     int
	Background color.RGBA
	TextColor  color.RGBA
}

// NewStatusBar loads the TTF font at fontPath, or the bundled Go Regular
// font if fontPath is empty, and returns a StatusBar drawing text at the
// given point size
func NewStatusBar(fontPath string, size float64) (*StatusBar, error) {

	fontBytes := goregular.TTF

	if fontPath != "" {
		var err error
		fontBytes, err = os.ReadFile(fontPath)

		if err != nil {
			return nil, errors.Wrap(err, "failed to load font")
		}
	}

	f, err := opentype.Parse(fontBytes)

	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font")
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create type face")
	}

	metrics := face.Metrics()

	return &StatusBar{
		face:       face,
		height:     (metrics.Ascent + metrics.Descent).Ceil() + 8,
		Background: Black,
		TextColor:  Pink,
	}, nil
}

// Height returns the pixel height of the bar
func (s *StatusBar) Height() int {
	return s.height
}

// Close releases the font face
func (s *StatusBar) Close() error {
	return s.face.Close()
}

// Draw blanks out the top of the image and writes the text over it.  The image
// must be a 3 channel BGR Mat.
func (s *StatusBar) Draw(img *gocv.Mat, text string) error {

	width := img.Cols()
	height := s.height

	if height > img.Rows() {
		height = img.Rows()
	}

	if width == 0 || height == 0 {
		return nil
	}

	// render text onto an RGBA strip
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(s.TextColor),
		Face: s.face,
		Dot:  fixed.P(4, 4+s.face.Metrics().Ascent.Ceil()),
	}
	dr.DrawString(text)

	strip, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, rgba.Pix)

	if err != nil {
		return errors.Wrap(err, "error creating Mat from RGBA")
	}

	defer strip.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(strip, &bgr, gocv.ColorRGBAToBGR)

	// copy strip over the top of the image
	roi := img.Region(image.Rect(0, 0, width, height))
	defer roi.Close()
	bgr.CopyTo(&roi)

	return nil
}
