package tracker

// Point represents the x,y coordinates of the center of a tracked box
type Point struct {
	X, Y int
}

// Trail keeps a history of box center points per tracked region, used for
// drawing a trail behind each region.  Regions are keyed by their position in
// the region set, so the history must be Reset whenever the set is rebuilt.
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size int
	// history of center points keyed by region index
	history map[int][]Point
}

// NewTrail returns a new trail history instance.  Size is the maximum
// length of the trail to maintain for each region
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.history = make(map[int][]Point)
}

// Add the center point of the box to the history of the given region
func (t *Trail) Add(index int, box Rect) {

	if t.size <= 0 {
		return
	}

	x, y := box.Center()
	points := append(t.history[index], Point{X: int(x), Y: int(y)})

	// drop oldest points once history is exceeded
	if len(points) > t.size {
		points = points[len(points)-t.size:]
	}

	t.history[index] = points
}

// GetPoints gets the point history for a specific region index
func (t *Trail) GetPoints(index int) []Point {
	return t.history[index]
}
