package roitrack

import (
	"image"
)

// Command is a user intent applied to the session between ticks
type Command interface {
	Apply(s *Session) error
}

// LoadCommand loads a new video, replacing the current one
type LoadCommand struct {
	Path string
}

// Apply the command
func (c LoadCommand) Apply(s *Session) error {
	return s.LoadVideo(c.Path)
}

// ToggleCommand switches between play and pause
type ToggleCommand struct{}

// Apply the command
func (ToggleCommand) Apply(s *Session) error {
	s.TogglePlay()
	return nil
}

// DrawCommand adds a region from a display space drag gesture
type DrawCommand struct {
	From image.Point
	To   image.Point
}

// Apply the command
func (c DrawCommand) Apply(s *Session) error {
	return s.DrawRegion(c.From, c.To)
}

// RemoveLastCommand removes the most recently drawn region
type RemoveLastCommand struct{}

// Apply the command
func (RemoveLastCommand) Apply(s *Session) error {
	s.RemoveLast()
	return nil
}

// RemoveAtCommand removes every region under a display space point
type RemoveAtCommand struct {
	At image.Point
}

// Apply the command
func (c RemoveAtCommand) Apply(s *Session) error {
	s.RemoveAt(c.At)
	return nil
}
