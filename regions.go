package roitrack

import (
	"image"

	"github.com/swdee/go-roitrack/tracker"
)

// DefaultMinRegionSize is the display pixel size a drawn box must exceed in
// both width and height
const DefaultMinRegionSize = 10

// RegionSet is the ordered list of user drawn regions in frame space.
// Regions are identified by their position; duplicates are allowed.
type RegionSet struct {
	regions []tracker.Rect
	// minSize is the display space drag threshold
	minSize int
}

// NewRegionSet returns an empty RegionSet rejecting drags not larger than
// minSize display pixels
func NewRegionSet(minSize int) *RegionSet {
	return &RegionSet{minSize: minSize}
}

// NormalizeDrag converts the two corner points of a drag gesture into a box
// with a top-left origin, regardless of drag direction
func NormalizeDrag(a, b image.Point) tracker.Rect {
	return tracker.RectFromRectangle(image.Rectangle{Min: a, Max: b})
}

// Add converts a display space drag between corners a and b into a frame
// space region and appends it.  Drags with a width or height not larger than
// the minimum size are rejected before any scaling.  The region is clamped to
// the frame.  Returns false and leaves the set unchanged on rejection.
func (rs *RegionSet) Add(a, b image.Point, display, frame Extent) bool {

	box := NormalizeDrag(a, b)

	if box.Width <= float32(rs.minSize) || box.Height <= float32(rs.minSize) {
		return false
	}

	m := Mapper{Display: display, Frame: frame}
	region := m.RectToFrame(box).Clamp(frame.Width, frame.Height)

	if region.Empty() {
		return false
	}

	rs.regions = append(rs.regions, region)

	return true
}

// RemoveLast pops the most recently added region.  Returns false if the set
// was already empty.
func (rs *RegionSet) RemoveLast() bool {

	if len(rs.regions) == 0 {
		return false
	}

	rs.regions = rs.regions[:len(rs.regions)-1]

	return true
}

// RemoveContaining maps the display space point into frame space and removes
// every region containing it, edges inclusive.  Returns the number of regions
// removed.
func (rs *RegionSet) RemoveContaining(p image.Point, display, frame Extent) int {

	fp := ToFrameSpace(PointFrom(p), display, frame)

	kept := make([]tracker.Rect, 0, len(rs.regions))

	for _, region := range rs.regions {
		if !region.Contains(fp.X, fp.Y) {
			kept = append(kept, region)
		}
	}

	removed := len(rs.regions) - len(kept)
	rs.regions = kept

	return removed
}

// Regions returns a copy of the regions in insertion order
func (rs *RegionSet) Regions() []tracker.Rect {
	out := make([]tracker.Rect, len(rs.regions))
	copy(out, rs.regions)
	return out
}

// Len returns the number of regions
func (rs *RegionSet) Len() int {
	return len(rs.regions)
}

// Reset removes all regions
func (rs *RegionSet) Reset() {
	rs.regions = nil
}
