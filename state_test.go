package roitrack

import "testing"

func TestPlaybackLifecycle(t *testing.T) {

	var pb Playback

	if pb.State() != Idle || pb.Tracking() {
		t.Fatalf("expected new playback to be idle and not tracking")
	}

	if pb.Toggle(true) {
		t.Errorf("expected toggle while idle to do nothing")
	}

	pb.Loaded()

	if pb.State() != Paused {
		t.Fatalf("expected paused after load, got %s", pb.State())
	}

	if !pb.CanDraw() {
		t.Errorf("expected drawing allowed while paused before tracking")
	}

	if pb.Toggle(false) || pb.State() != Paused {
		t.Errorf("expected play refused without regions")
	}

	pb.Latch()

	if !pb.Toggle(true) || pb.State() != Playing {
		t.Fatalf("expected playing, got %s", pb.State())
	}

	if pb.CanDraw() {
		t.Errorf("expected drawing refused while playing")
	}

	pb.Toggle(true)

	if pb.State() != Paused || !pb.Tracking() {
		t.Errorf("expected tracking latch to persist across pause")
	}

	if pb.CanDraw() {
		t.Errorf("expected drawing refused once tracking has started")
	}
}

func TestPlaybackEndOfStream(t *testing.T) {

	var pb Playback
	pb.Loaded()
	pb.Latch()
	pb.Toggle(true)

	pb.EndOfStream()

	if pb.State() != Paused {
		t.Errorf("expected paused at end of stream, got %s", pb.State())
	}

	if !pb.Tracking() {
		t.Errorf("expected tracking latch unchanged at end of stream")
	}
}

func TestPlaybackUnlatchAndReset(t *testing.T) {

	var pb Playback
	pb.Loaded()
	pb.Latch()
	pb.Toggle(true)

	pb.Unlatch()

	if pb.Tracking() || pb.State() != Paused {
		t.Errorf("expected unlatch to stop tracking and pause, got %s tracking=%v",
			pb.State(), pb.Tracking())
	}

	pb.Latch()
	pb.Reset()

	if pb.Tracking() || pb.State() != Idle {
		t.Errorf("expected reset to idle without tracking")
	}
}

func TestStateString(t *testing.T) {

	tests := map[State]string{
		Idle:      "idle",
		Paused:    "paused",
		Playing:   "playing",
		State(99): "unknown",
	}

	for st, expected := range tests {
		if st.String() != expected {
			t.Errorf("expected %q, got %q", expected, st.String())
		}
	}
}
