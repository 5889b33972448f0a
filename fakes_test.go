package roitrack

import (
	"image"

	"github.com/pkg/errors"
	"github.com/swdee/go-roitrack/tracker"
	"gocv.io/x/gocv"
)

// fakeTracker moves its box one pixel right per update, or reports loss
type fakeTracker struct {
	box      image.Rectangle
	initOK   bool
	lose     bool
	updates  int
	initials []image.Rectangle
	closed   bool
}

func (f *fakeTracker) Init(img gocv.Mat, box image.Rectangle) bool {
	f.box = box
	f.initials = append(f.initials, box)
	return f.initOK
}

func (f *fakeTracker) Update(img gocv.Mat) (image.Rectangle, bool) {
	f.updates++

	if f.lose {
		return image.Rectangle{}, false
	}

	f.box = f.box.Add(image.Pt(1, 0))

	return f.box, true
}

func (f *fakeTracker) Close() error {
	f.closed = true
	return nil
}

// fakeFactory records every tracker it creates
type fakeFactory struct {
	created []*fakeTracker
	// failInit makes new trackers fail to initialise
	failInit bool
}

func (ff *fakeFactory) factory() tracker.Factory {
	return func() tracker.Tracker {
		t := &fakeTracker{initOK: !ff.failInit}
		ff.created = append(ff.created, t)
		return t
	}
}

// live returns the trackers not yet closed
func (ff *fakeFactory) live() []*fakeTracker {
	var out []*fakeTracker
	for _, t := range ff.created {
		if !t.closed {
			out = append(out, t)
		}
	}
	return out
}

// fakeSource is an in memory video of solid frames, each frame's first pixel
// holds its frame number
type fakeSource struct {
	width, height int
	frames        int
	fps           float64
	pos           int
	seeks         []int
	closed        bool
}

func newFakeSource(width, height, frames int) *fakeSource {
	return &fakeSource{width: width, height: height, frames: frames}
}

func (f *fakeSource) Read(dst *gocv.Mat) bool {

	if f.pos >= f.frames {
		return false
	}

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		f.height, f.width, gocv.MatTypeCV8UC3)
	defer img.Close()

	img.SetUCharAt(0, 0, uint8(f.pos))
	img.CopyTo(dst)

	f.pos++

	return true
}

func (f *fakeSource) Seek(frame int) error {
	f.seeks = append(f.seeks, frame)
	f.pos = frame
	return nil
}

func (f *fakeSource) FPS() float64 {
	return f.fps
}

func (f *fakeSource) Frames() int {
	return f.frames
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// openerFor returns a SourceOpener handing out the given sources in order
func openerFor(sources ...*fakeSource) SourceOpener {
	return func(path string) (FrameSource, error) {
		if len(sources) == 0 {
			return nil, errors.New("file not found")
		}
		src := sources[0]
		sources = sources[1:]
		return src, nil
	}
}

// recordingDisplay counts the frames shown
type recordingDisplay struct {
	shown  int
	width  int
	height int
	onShow func()
}

func (d *recordingDisplay) Show(img gocv.Mat) error {
	d.shown++
	d.width = img.Cols()
	d.height = img.Rows()
	if d.onShow != nil {
		d.onShow()
	}
	return nil
}

// testConfig returns a config without the status bar for quick tests
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Overlay.StatusBar = false
	return cfg
}
