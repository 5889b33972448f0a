// Command roitrack plays a video, lets regions of interest be drawn on the
// first frame and follows each of them with a single object tracker.
package main

import "runtime"

func init() {
	// OpenCV highgui windows must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	Execute()
}
