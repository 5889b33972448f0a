package roitrack

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoVideo is returned when a load is requested without a video path
	ErrNoVideo = errors.New("no video file chosen")
	// ErrLoadFailure is returned when a video can not be opened or has no
	// readable frames.  The session is left unchanged.
	ErrLoadFailure = errors.New("failed to load video")
	// ErrRegionRejected is returned when a drawn region is smaller than the
	// minimum draggable size or lies outside the frame
	ErrRegionRejected = errors.New("region rejected")
	// ErrDrawNotAllowed is returned when drawing is attempted while the video
	// is playing or tracking has started
	ErrDrawNotAllowed = errors.New("drawing not allowed while playing or tracking")
	// ErrInvalidConfig is returned by Config.Validate
	ErrInvalidConfig = errors.New("invalid configuration")
)
