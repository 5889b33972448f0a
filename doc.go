/*
go-roitrack is an interactive region of interest tracker for video files.

A Session loads a video, lets the user draw rectangular regions on the
displayed frame and then follows each region from frame to frame with an
OpenCV single object tracker while the video plays.  Regions can be removed
while tracking, either the most recently added one or every region under a
clicked point.

The Session owns all mutable state and is driven from a single goroutine by
Run, which ticks at a fixed interval and applies queued user Commands between
ticks.  Display surfaces and frame sources are supplied by the caller, see the
cmd/roitrack program for a GoCV window front end and a headless runner.
*/
package roitrack
