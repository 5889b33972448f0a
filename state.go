package roitrack

// State is the playback state of a session
type State int

const (
	// Idle is the state before a video has been loaded
	Idle State = 0
	// Paused shows the current frame without advancing the video
	Paused State = 1
	// Playing advances the video one frame per tick
	Playing State = 2
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// Playback is the playback state machine.  Alongside the play state it holds
// the tracking latch, which once set persists across pause and play until the
// region set becomes empty or a new video is loaded.
type Playback struct {
	state    State
	tracking bool
}

// State returns the current play state
func (pb *Playback) State() State {
	return pb.state
}

// Tracking returns the tracking latch
func (pb *Playback) Tracking() bool {
	return pb.tracking
}

// Reset returns to Idle with tracking off, used when a video is (re)loaded
func (pb *Playback) Reset() {
	pb.state = Idle
	pb.tracking = false
}

// Loaded moves from Idle to Paused once the first frame has been read
func (pb *Playback) Loaded() {
	if pb.state == Idle {
		pb.state = Paused
	}
}

// Toggle flips between Paused and Playing.  Playing can only be entered when
// there are regions to track or tracking is already latched.  Returns
// whether the state changed.
func (pb *Playback) Toggle(haveRegions bool) bool {

	switch pb.state {
	case Playing:
		pb.state = Paused
		return true

	case Paused:
		if !haveRegions && !pb.tracking {
			return false
		}
		pb.state = Playing
		return true
	}

	return false
}

// Latch sets the tracking latch after the tracker pool has been built
func (pb *Playback) Latch() {
	pb.tracking = true
}

// Unlatch clears the tracking latch and pauses, used when the last region
// has been removed
func (pb *Playback) Unlatch() {
	pb.tracking = false

	if pb.state == Playing {
		pb.state = Paused
	}
}

// EndOfStream pauses playback after the video wrapped back to the start.
// The tracking latch is left unchanged.
func (pb *Playback) EndOfStream() {
	if pb.state == Playing {
		pb.state = Paused
	}
}

// CanDraw reports whether a new region may be drawn, which is only while
// paused and before tracking has started
func (pb *Playback) CanDraw() bool {
	return pb.state == Paused && !pb.tracking
}
