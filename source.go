package roitrack

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FrameSource provides the frames of a video in order
type FrameSource interface {
	// Read the next frame into dst, returns false at the end of the stream
	Read(dst *gocv.Mat) bool
	// Seek to the given frame number, 0 being the start of the video
	Seek(frame int) error
	// Frames returns the number of frames in the video or -1 if unknown
	Frames() int
	// Close releases the source
	Close() error
}

// frameRater is implemented by sources that know their frame rate
type frameRater interface {
	FPS() float64
}

// SourceOpener opens the video at path
type SourceOpener func(path string) (FrameSource, error)

// VideoFile is a FrameSource reading a video file through OpenCV.  Any
// container and codec the local OpenCV build can decode is accepted.
type VideoFile struct {
	capture *gocv.VideoCapture
}

// OpenVideoFile opens the video file at path
func OpenVideoFile(path string) (FrameSource, error) {

	capture, err := gocv.VideoCaptureFile(path)

	if err != nil {
		return nil, errors.Wrapf(err, "error opening video %s", path)
	}

	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Errorf("video %s could not be opened", path)
	}

	return &VideoFile{
		capture: capture,
	}, nil
}

// Read the next frame, empty frames are treated as the end of the stream
func (v *VideoFile) Read(dst *gocv.Mat) bool {

	if ok := v.capture.Read(dst); !ok {
		return false
	}

	return !dst.Empty()
}

// Seek sets the position of the next frame to be read
func (v *VideoFile) Seek(frame int) error {

	if frame < 0 {
		return errors.Errorf("invalid frame position %d", frame)
	}

	v.capture.Set(gocv.VideoCapturePosFrames, float64(frame))

	return nil
}

// Frames returns the frame count reported by the container
func (v *VideoFile) Frames() int {

	count := int(v.capture.Get(gocv.VideoCaptureFrameCount))

	if count <= 0 {
		return -1
	}

	return count
}

// FPS returns the frame rate reported by the container, 0 if unknown
func (v *VideoFile) FPS() float64 {

	fps := v.capture.Get(gocv.VideoCaptureFPS)

	if fps <= 0 {
		return 0
	}

	return fps
}

// Close releases the video capture
func (v *VideoFile) Close() error {
	return v.capture.Close()
}
