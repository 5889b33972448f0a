package tracker

// Result is the outcome of advancing one tracker by a frame
type Result struct {
	// Index of the region the tracker follows
	Index int
	// Box is the reported box in frame pixels.  On loss it is the last box
	// the tracker successfully reported.
	Box Rect
	// Lost is set when the tracker failed to locate its target this frame
	Lost bool
}
