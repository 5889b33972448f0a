package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-roitrack/tracker"
	"gocv.io/x/gocv"
)

// boxLabel holds the details of a label to draw above a box
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// RegionBoxes renders the bounding boxes of the tracked regions with a label
// holding the region number.  Lost regions are drawn at their last known
// position in the LostColor so the user can see tracking has dropped.
func RegionBoxes(img *gocv.Mat, results []tracker.Result, font Font,
	lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(results))

	for _, res := range results {

		rect := res.Box.Rectangle()

		useClr := RegionColor(res.Index)

		if res.Lost {
			useClr = LostColor
		}

		// draw rectangle around tracked object
		gocv.Rectangle(img, rect, useClr, lineThickness)

		text := fmt.Sprintf("#%d", res.Index+1)

		if res.Lost {
			text += " lost"
		}

		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Calculate the alignment of text label
		var centerX int

		switch font.Alignment {
		case Center:
			centerX = (rect.Min.X + rect.Max.X) / 2

		case Right:
			centerX = rect.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

		case Left:
			fallthrough
		default:
			centerX = rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
		}

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, rect.Min.Y-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, rect.Min.Y)

		boxLabels = append(boxLabels, boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		})
	}

	// labels are drawn last so they sit on top of any overlapping boxes
	for _, box := range boxLabels {
		gocv.Rectangle(img, box.rect, box.clr, -1)

		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
