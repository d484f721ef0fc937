package engine

import (
	"testing"
	"time"
)

func TestManualFramesOrderAndCancel(t *testing.T) {
	m := NewManualFrames()

	var got []int
	m.Request(func(uint64) { got = append(got, 1) })
	h := m.Request(func(uint64) { got = append(got, 2) })
	m.Request(func(uint64) { got = append(got, 3) })
	m.Cancel(h)

	if m.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", m.Pending())
	}
	if n := m.Advance(); n != 2 {
		t.Errorf("Advance() ran %d callbacks, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("callbacks = %v, want [1 3]", got)
	}
	if m.Pending() != 0 {
		t.Errorf("callbacks must fire once, Pending() = %d", m.Pending())
	}
}

func TestManualFramesRequestFromCallback(t *testing.T) {
	m := NewManualFrames()

	var frames []uint64
	var cb FrameCallback
	cb = func(frame uint64) {
		frames = append(frames, frame)
		m.Request(cb)
	}
	m.Request(cb)

	m.Advance()
	if len(frames) != 1 {
		t.Fatalf("re-requested callback ran in the same frame: %v", frames)
	}
	m.Advance()
	m.Advance()

	if len(frames) != 3 || frames[0] != 1 || frames[2] != 3 {
		t.Errorf("frames = %v, want [1 2 3]", frames)
	}
}

func TestTickerFramesFires(t *testing.T) {
	tf := NewTickerFrames(120)
	tf.Start()
	defer tf.Stop()

	done := make(chan uint64, 1)
	tf.Request(func(frame uint64) { done <- frame })

	select {
	case frame := <-done:
		if frame == 0 {
			t.Error("frame numbers start at 1")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not fire")
	}
}

func TestTickerFramesStopIdempotent(t *testing.T) {
	tf := NewTickerFrames(60)
	tf.Start()
	tf.Stop()
	tf.Stop()

	fired := make(chan struct{}, 1)
	tf.Request(func(uint64) { fired <- struct{}{} })
	select {
	case <-fired:
		t.Error("stopped source fired a frame")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewTickerFramesClamp(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{0, time.Second},
		{60, time.Second / 60},
		{1000, time.Second / 120},
	}
	for _, tt := range tests {
		if got := NewTickerFrames(tt.fps).Interval(); got != tt.want {
			t.Errorf("NewTickerFrames(%d).Interval() = %v, want %v", tt.fps, got, tt.want)
		}
	}
}
