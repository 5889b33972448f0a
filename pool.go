package roitrack

import (
	"github.com/sirupsen/logrus"
	"github.com/swdee/go-roitrack/tracker"
	"gocv.io/x/gocv"
)

// Pool holds one single object tracker per region.  The pool is always
// rebuilt as a whole from the region set, never partially, so entry i
// follows region i.
type Pool struct {
	// factory creates a new tracker instance per region
	factory tracker.Factory
	// entries parallel to the region set
	entries []*poolEntry
	// smoothing settings applied to each new entry
	smoothing SmoothingConfig
	log       *logrus.Entry
}

// poolEntry is a tracker and the last box it reported
type poolEntry struct {
	tracker  tracker.Tracker
	box      tracker.Rect
	lost     bool
	smoother *tracker.Smoother
	// initFailed entries never update, they keep the drawn region
	initFailed bool
}

// NewPool creates an empty tracker pool using factory to create trackers
func NewPool(factory tracker.Factory, smoothing SmoothingConfig, log *logrus.Entry) *Pool {

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Pool{
		factory:   factory,
		smoothing: smoothing,
		log:       log,
	}
}

// Rebuild discards all existing trackers and creates one fresh tracker per
// region initialised on the reference frame.  A tracker that fails to
// initialise is kept as a lost entry so the pool size always matches the
// number of regions.  Returns the number of trackers that failed to
// initialise.
func (p *Pool) Rebuild(ref gocv.Mat, regions []tracker.Rect) int {

	p.closeEntries()

	failed := 0
	p.entries = make([]*poolEntry, 0, len(regions))

	for i, region := range regions {

		entry := &poolEntry{
			tracker: p.factory(),
			box:     region,
		}

		if p.smoothing.Enabled {
			entry.smoother = tracker.NewSmoother(p.smoothing.PositionWeight,
				p.smoothing.VelocityWeight)
		}

		if ref.Empty() || !entry.tracker.Init(ref, region.Rectangle()) {
			entry.lost = true
			entry.initFailed = true
			failed++

			p.log.WithField("region", i).Warn("tracker failed to initialise")
		}

		p.entries = append(p.entries, entry)
	}

	p.log.WithFields(logrus.Fields{
		"trackers": len(p.entries),
		"failed":   failed,
	}).Debug("tracker pool rebuilt")

	return failed
}

// Update advances every tracker by one frame.  Each tracker is updated
// independently; when one loses its target its entry keeps the last box it
// reported and is flagged Lost.
func (p *Pool) Update(frame gocv.Mat) []tracker.Result {

	if frame.Empty() {
		return p.Results()
	}

	for i, entry := range p.entries {

		if entry.initFailed {
			continue
		}

		rect, ok := entry.tracker.Update(frame)

		if !ok || rect.Empty() {
			if !entry.lost {
				p.log.WithField("region", i).Debug("tracker lost target")
			}
			entry.lost = true
			continue
		}

		box := tracker.RectFromRectangle(rect)

		if entry.smoother != nil {
			// velocity from before the loss no longer applies
			if entry.lost {
				entry.smoother.Reset()
			}

			smoothed, err := entry.smoother.Smooth(box)

			if err != nil {
				p.log.WithField("region", i).WithError(err).Debug("smoothing skipped")
			}

			box = smoothed
		}

		entry.box = box
		entry.lost = false
	}

	return p.Results()
}

// Results returns the last reported box of every tracker
func (p *Pool) Results() []tracker.Result {

	results := make([]tracker.Result, len(p.entries))

	for i, entry := range p.entries {
		results[i] = tracker.Result{
			Index: i,
			Box:   entry.box,
			Lost:  entry.lost,
		}
	}

	return results
}

// Len returns the number of trackers in the pool
func (p *Pool) Len() int {
	return len(p.entries)
}

// Close releases all trackers and empties the pool
func (p *Pool) Close() {
	p.closeEntries()
	p.entries = nil
}

func (p *Pool) closeEntries() {
	for _, entry := range p.entries {
		if entry.tracker != nil {
			_ = entry.tracker.Close()
		}
	}
}
