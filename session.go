package roitrack

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/swdee/go-roitrack/preprocess"
	"github.com/swdee/go-roitrack/render"
	"github.com/swdee/go-roitrack/tracker"
	"gocv.io/x/gocv"
)

// Display is a rendering surface of fixed size that presents each display
// frame produced by the session
type Display interface {
	Show(img gocv.Mat) error
}

// Status is a snapshot of the session state
type Status struct {
	State    State
	Tracking bool
	Regions  int
	Trackers int
	Lost     int
	// FrameNum is the zero based number of the frame currently shown
	FrameNum int
	// Frames is the total number of frames in the video or -1 if unknown
	Frames int
	// FPS is the frame rate reported by the source or 0 if unknown
	FPS     float64
	Frame   Extent
	Display Extent
	Video   string
}

// Session is the tracking session controller.  It owns the current frame,
// the region set, the tracker pool and the playback state.  A Session is not
// safe for concurrent use; drive it from a single goroutine with Run and
// send user input from other goroutines with Submit.
type Session struct {
	id      string
	cfg     Config
	factory tracker.Factory
	opener  SourceOpener
	source  FrameSource
	video   string
	// frame is the current raw video frame
	frame    gocv.Mat
	hasFrame bool
	// scratch receives reads so a failed read leaves frame intact
	scratch gocv.Mat
	// canvas is the copy of frame the overlay is drawn on
	canvas gocv.Mat
	// frameNum is the number of the current frame, nextFrame the one the
	// source will return next
	frameNum  int
	nextFrame int
	regions   *RegionSet
	pool      *Pool
	playback  Playback
	trail     *tracker.Trail
	results   []tracker.Result
	resizer   *preprocess.Resizer
	font      render.Font
	lineWidth int
	statusBar *render.StatusBar
	commands  chan Command
	log       *logrus.Entry
}

// NewSession creates an idle session.  If factory is nil the tracker named
// in the config is used, if opener is nil video files are opened with
// OpenVideoFile.
func NewSession(cfg Config, factory tracker.Factory, opener SourceOpener) (*Session, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if factory == nil {
		var err error
		factory, err = cfg.TrackerFactory()

		if err != nil {
			return nil, err
		}
	}

	if opener == nil {
		opener = OpenVideoFile
	}

	id := uuid.NewString()
	log := logrus.StandardLogger().WithField("session", id)

	s := &Session{
		id:        id,
		cfg:       cfg,
		factory:   factory,
		opener:    opener,
		frame:     gocv.NewMat(),
		scratch:   gocv.NewMat(),
		canvas:    gocv.NewMat(),
		regions:   NewRegionSet(cfg.MinRegionSize),
		pool:      NewPool(factory, cfg.Smoothing, log),
		trail:     tracker.NewTrail(cfg.Trail.Length),
		font:      render.DefaultFont(),
		lineWidth: cfg.Overlay.LineThickness,
		commands:  make(chan Command, cfg.CommandQueue),
		log:       log,
	}

	if cfg.Overlay.StatusBar {
		bar, err := render.NewStatusBar(cfg.Overlay.FontPath, cfg.Overlay.FontSize)

		if err != nil {
			s.Close()
			return nil, errors.Wrap(err, "error creating status bar")
		}

		s.statusBar = bar
	}

	return s, nil
}

// SetLogger replaces the logger used by the session
func (s *Session) SetLogger(logger *logrus.Logger) {
	s.log = logger.WithField("session", s.id)
	s.pool.log = s.log
}

// ID returns the unique session identifier used in log output
func (s *Session) ID() string {
	return s.id
}

// LoadVideo opens the video at path and shows its first frame paused.  All
// regions, trackers and the tracking latch are discarded.  If the video can
// not be opened or read the session is left untouched.
func (s *Session) LoadVideo(path string) error {

	if strings.TrimSpace(path) == "" {
		return ErrNoVideo
	}

	src, err := s.opener(path)

	if err != nil {
		return errors.Wrapf(ErrLoadFailure, "%s: %v", path, err)
	}

	// prime with the first frame for preview
	first := gocv.NewMat()

	if !src.Read(&first) || first.Empty() {
		first.Close()
		src.Close()
		return errors.Wrapf(ErrLoadFailure, "%s: no readable frames", path)
	}

	// playback starts from frame 0 even though it has been consumed
	if err := src.Seek(0); err != nil {
		first.Close()
		src.Close()
		return errors.Wrapf(ErrLoadFailure, "%s: %v", path, err)
	}

	s.closeSource()

	s.source = src
	s.video = path
	s.regions.Reset()
	s.pool.Close()
	s.trail.Reset()
	s.results = nil
	s.playback.Reset()

	s.frame.Close()
	s.frame = first
	s.hasFrame = true
	s.frameNum = 0
	s.nextFrame = 0

	s.configureOverlay()
	s.playback.Loaded()

	s.log.WithFields(logrus.Fields{
		"video":  path,
		"width":  first.Cols(),
		"height": first.Rows(),
		"frames": src.Frames(),
	}).Info("video loaded")

	return nil
}

// configureOverlay sizes the resizer and annotation styles for the loaded
// frame size.  Overlays are drawn in frame space then shrunk for display so
// line widths and labels are scaled up to stay visible.
func (s *Session) configureOverlay() {

	frame := s.FrameExtent()
	s.resizer = preprocess.NewResizer(frame.Width, frame.Height,
		s.cfg.Display.Width, s.cfg.Display.Height)

	m := s.mapper()
	factor := math.Max(float64(m.ScaleX()), float64(m.ScaleY()))

	s.font = render.DefaultFont().ScaledFont(factor)
	s.lineWidth = s.cfg.Overlay.LineThickness

	if factor > 1 {
		s.lineWidth = int(math.Round(float64(s.lineWidth) * factor))
	}
}

// TogglePlay switches between playing and paused.  The first time play is
// requested with regions drawn the tracker pool is built from the frame
// currently shown and the tracking latch is set.  Does nothing until a video
// is loaded.
func (s *Session) TogglePlay() {

	if s.source == nil || !s.hasFrame {
		return
	}

	if !s.playback.Tracking() && s.regions.Len() > 0 {
		s.pool.Rebuild(s.frame, s.regions.Regions())
		s.trail.Reset()
		s.playback.Latch()

		s.log.WithField("regions", s.regions.Len()).Info("tracking started")
	}

	before := s.playback.State()

	if s.playback.Toggle(s.regions.Len() > 0) {
		s.log.WithFields(logrus.Fields{
			"from": before,
			"to":   s.playback.State(),
		}).Debug("playback toggled")
	}
}

// DrawRegion adds a region from a display space drag between corners a and
// b.  Drawing is only allowed while paused before tracking has started.
func (s *Session) DrawRegion(a, b image.Point) error {

	if !s.hasFrame || !s.playback.CanDraw() {
		return ErrDrawNotAllowed
	}

	if !s.regions.Add(a, b, s.cfg.Display, s.FrameExtent()) {
		return errors.Wrapf(ErrRegionRejected, "drag %v to %v", a, b)
	}

	s.log.WithField("regions", s.regions.Len()).Debug("region added")

	return nil
}

// RemoveLast removes the most recently drawn region, rebuilding the trackers
// if tracking is active
func (s *Session) RemoveLast() {

	if !s.regions.RemoveLast() {
		return
	}

	s.log.WithField("regions", s.regions.Len()).Debug("last region removed")

	if s.playback.Tracking() {
		s.rebuildTrackers()
	}
}

// RemoveAt removes every region containing the display space point.  This
// only applies once tracking has started.  Returns the number of regions
// removed.
func (s *Session) RemoveAt(p image.Point) int {

	if !s.playback.Tracking() || !s.hasFrame {
		return 0
	}

	removed := s.regions.RemoveContaining(p, s.cfg.Display, s.FrameExtent())

	if removed == 0 {
		return 0
	}

	s.log.WithFields(logrus.Fields{
		"removed": removed,
		"regions": s.regions.Len(),
	}).Debug("regions removed at point")

	s.rebuildTrackers()

	return removed
}

// rebuildTrackers recreates the pool from the region set on the current
// frame.  An empty region set stops tracking and pauses.
func (s *Session) rebuildTrackers() {

	if !s.hasFrame {
		return
	}

	s.pool.Rebuild(s.frame, s.regions.Regions())
	s.trail.Reset()
	s.results = nil

	if s.regions.Len() == 0 {
		s.pool.Close()
		s.playback.Unlatch()

		s.log.Info("tracking stopped, no regions left")
	}
}

// Tick runs one step of the playback loop and renders the display frame
// into out.  When playing the next frame is read, wrapping to the start and
// pausing at the end of the video.  While tracking, every tracker is advanced
// on the current frame and its box drawn.  Returns false if there is no
// frame to show.
func (s *Session) Tick(out *gocv.Mat) bool {

	advanced := false

	if s.source != nil && s.playback.State() == Playing {
		advanced = s.advance()
	}

	if !s.hasFrame {
		return false
	}

	s.frame.CopyTo(&s.canvas)
	s.results = nil

	if s.playback.Tracking() && s.pool.Len() > 0 {
		s.results = s.pool.Update(s.frame)

		if s.cfg.Trail.Enabled {
			// a paused frame adds no motion to the trail
			if advanced {
				for _, res := range s.results {
					if !res.Lost {
						s.trail.Add(res.Index, res.Box)
					}
				}
			}

			render.Trail(&s.canvas, s.results, s.trail, render.DefaultTrailStyle())
		}

		render.RegionBoxes(&s.canvas, s.results, s.font, s.lineWidth)
	}

	s.resizer.Stretch(s.canvas, out)

	if s.statusBar != nil {
		if err := s.statusBar.Draw(out, s.statusText()); err != nil {
			s.log.WithError(err).Debug("status bar not drawn")
		}
	}

	return true
}

// advance reads the next frame, on end of stream the source is rewound and
// playback paused.  Returns true if a new frame was read.
func (s *Session) advance() bool {

	if s.source.Read(&s.scratch) {
		s.frame, s.scratch = s.scratch, s.frame
		s.frameNum = s.nextFrame
		s.nextFrame++
		return true
	}

	if err := s.source.Seek(0); err != nil {
		s.log.WithError(err).Warn("failed to rewind video")
	}

	s.nextFrame = 0
	s.playback.EndOfStream()

	s.log.WithField("frames", s.frameNum+1).Info("end of video, rewound and paused")

	return false
}

// Run drives the session until ctx is cancelled, ticking at the configured
// interval and applying submitted commands between ticks.  Each rendered
// frame is passed to display.  Returns ctx.Err() on cancellation or the
// error from display.
func (s *Session) Run(ctx context.Context, display Display) error {

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	out := gocv.NewMat()
	defer out.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-s.commands:
			s.Apply(cmd)

		case <-ticker.C:
			if !s.Tick(&out) {
				continue
			}

			if err := display.Show(out); err != nil {
				return errors.Wrap(err, "display error")
			}
		}
	}
}

// Submit queues a command to be applied by Run.  Returns false if the queue
// is full and the command was dropped.
func (s *Session) Submit(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		s.log.WithField("command", fmt.Sprintf("%T", cmd)).Warn("command queue full, dropped")
		return false
	}
}

// Apply runs a command immediately.  Rejected input is logged and otherwise
// ignored.
func (s *Session) Apply(cmd Command) error {

	err := cmd.Apply(s)

	switch {
	case err == nil:
	case errors.Is(err, ErrRegionRejected), errors.Is(err, ErrDrawNotAllowed):
		s.log.WithError(err).Debug("input ignored")
	default:
		s.log.WithError(err).Error("command failed")
	}

	return err
}

// State returns the playback state
func (s *Session) State() State {
	return s.playback.State()
}

// Tracking returns the tracking latch
func (s *Session) Tracking() bool {
	return s.playback.Tracking()
}

// Regions returns a copy of the regions in frame space
func (s *Session) Regions() []tracker.Rect {
	return s.regions.Regions()
}

// Trackers returns the number of trackers in the pool
func (s *Session) Trackers() int {
	return s.pool.Len()
}

// Results returns the tracker results drawn on the last tick
func (s *Session) Results() []tracker.Result {
	return s.results
}

// FrameExtent returns the size of the loaded video frames
func (s *Session) FrameExtent() Extent {
	if !s.hasFrame {
		return Extent{}
	}
	return Extent{Width: s.frame.Cols(), Height: s.frame.Rows()}
}

// DisplayExtent returns the fixed display size
func (s *Session) DisplayExtent() Extent {
	return s.cfg.Display
}

func (s *Session) mapper() Mapper {
	return Mapper{Display: s.cfg.Display, Frame: s.FrameExtent()}
}

// Snapshot returns the current status of the session
func (s *Session) Snapshot() Status {

	st := Status{
		State:    s.playback.State(),
		Tracking: s.playback.Tracking(),
		Regions:  s.regions.Len(),
		Trackers: s.pool.Len(),
		FrameNum: s.frameNum,
		Frames:   -1,
		Frame:    s.FrameExtent(),
		Display:  s.cfg.Display,
		Video:    s.video,
	}

	for _, res := range s.results {
		if res.Lost {
			st.Lost++
		}
	}

	if s.source != nil {
		st.Frames = s.source.Frames()

		if rated, ok := s.source.(frameRater); ok {
			st.FPS = rated.FPS()
		}
	}

	return st
}

// statusText is the line shown in the status bar
func (s *Session) statusText() string {

	st := s.Snapshot()

	text := fmt.Sprintf("%s  frame %d", strings.ToUpper(st.State.String()), st.FrameNum+1)

	if st.Frames > 0 {
		text += fmt.Sprintf("/%d", st.Frames)
	}

	text += fmt.Sprintf("  regions %d", st.Regions)

	if st.Tracking {
		text += fmt.Sprintf("  tracking %d", st.Trackers-st.Lost)

		if st.Lost > 0 {
			text += fmt.Sprintf(" (%d lost)", st.Lost)
		}
	}

	return text
}

func (s *Session) closeSource() {
	if s.source != nil {
		if err := s.source.Close(); err != nil {
			s.log.WithError(err).Warn("error closing video")
		}
		s.source = nil
	}
}

// Close releases the video, trackers and image buffers
func (s *Session) Close() {
	s.closeSource()
	s.pool.Close()
	s.frame.Close()
	s.scratch.Close()
	s.canvas.Close()
	s.hasFrame = false

	if s.statusBar != nil {
		s.statusBar.Close()
		s.statusBar = nil
	}
}
