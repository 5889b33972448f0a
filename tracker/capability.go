package tracker

import (
	"image"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Tracker is a single object tracker.  It is initialised once on a reference
// frame and box, then advanced one frame at a time.  gocv.Tracker satisfies
// this interface.
type Tracker interface {
	// Init the tracker with the reference frame and the box to follow
	Init(img gocv.Mat, box image.Rectangle) bool
	// Update advances the tracker to the given frame, the returned bool is
	// false when the target was lost
	Update(img gocv.Mat) (image.Rectangle, bool)
	// Close releases the native tracker
	Close() error
}

// Factory creates a new uninitialised Tracker
type Factory func() Tracker

// Kind names a tracking algorithm
type Kind string

const (
	// MIL is the OpenCV Multiple Instance Learning tracker
	MIL Kind = "mil"
	// KCF is the OpenCV Kernelized Correlation Filter tracker (contrib)
	KCF Kind = "kcf"
	// CSRT is the OpenCV Discriminative Correlation Filter with Channel and
	// Spatial Reliability tracker (contrib)
	CSRT Kind = "csrt"
)

// ErrUnknownKind is returned by NewFactory for an unsupported tracker name
var ErrUnknownKind = errors.New("unknown tracker kind")

// Kinds returns the supported tracker kinds
func Kinds() []Kind {
	return []Kind{CSRT, KCF, MIL}
}

// ParseKind converts a case insensitive tracker name to a Kind
func ParseKind(name string) (Kind, error) {

	kind := Kind(strings.ToLower(strings.TrimSpace(name)))

	for _, k := range Kinds() {
		if k == kind {
			return k, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownKind, "%q", name)
}

// NewFactory returns the Factory for the given tracking algorithm
func NewFactory(kind Kind) (Factory, error) {

	switch kind {
	case MIL:
		return func() Tracker { return gocv.NewTrackerMIL() }, nil
	case KCF:
		return func() Tracker { return contrib.NewTrackerKCF() }, nil
	case CSRT:
		return func() Tracker { return contrib.NewTrackerCSRT() }, nil
	}

	return nil, errors.Wrapf(ErrUnknownKind, "%q", string(kind))
}
