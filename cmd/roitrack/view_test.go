package main

import (
	"context"
	"image"
	"strings"
	"testing"

	roitrack "github.com/swdee/go-roitrack"
)

func TestWatchPaths(t *testing.T) {

	var got []roitrack.Command

	submit := func(cmd roitrack.Command) bool {
		got = append(got, cmd)
		return true
	}

	input := "clips/first.mp4\n\n   \n  /videos/second one.mp4  \n"
	watchPaths(context.Background(), strings.NewReader(input), submit)

	expected := []roitrack.Command{
		roitrack.LoadCommand{Path: "clips/first.mp4"},
		roitrack.LoadCommand{Path: "/videos/second one.mp4"},
	}

	if len(got) != len(expected) {
		t.Fatalf("expected %d loads, got %v", len(expected), got)
	}

	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("load %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestWatchPathsStopsOnCancel(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	watchPaths(ctx, strings.NewReader("a.mp4\nb.mp4\n"), func(roitrack.Command) bool {
		calls++
		return true
	})

	if calls != 0 {
		t.Errorf("expected no loads after cancel, got %d", calls)
	}
}

func TestCenter(t *testing.T) {

	if got := center(image.Rect(10, 20, 30, 60)); got != image.Pt(20, 40) {
		t.Errorf("expected (20,40), got %v", got)
	}
}
