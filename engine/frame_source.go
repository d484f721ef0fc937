// @lixen: #dev{feature[scheduler(frames)]}
package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/core"
)

// Handle identifies one requested frame callback, zero is never issued
type Handle uint64

// FrameCallback receives the frame number it fired on
type FrameCallback func(frame uint64)

// FrameSource abstracts the display refresh
// Each Request fires at most once, on the next frame after it was made
type FrameSource interface {
	Request(cb FrameCallback) Handle
	Cancel(h Handle)
}

// pendingSet is the callback bookkeeping shared by frame sources
type pendingSet struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]FrameCallback
	frame   uint64
}

func (p *pendingSet) request(cb FrameCallback) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		p.pending = make(map[Handle]FrameCallback)
	}
	p.next++
	p.pending[p.next] = cb
	return p.next
}

func (p *pendingSet) cancel(h Handle) {
	p.mu.Lock()
	delete(p.pending, h)
	p.mu.Unlock()
}

func (p *pendingSet) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// fire advances the frame counter and runs callbacks pending at entry, in request order
// Callbacks run outside the lock and may request the next frame
func (p *pendingSet) fire() int {
	p.mu.Lock()
	p.frame++
	frame := p.frame
	handles := make([]Handle, 0, len(p.pending))
	for h := range p.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	cbs := make([]FrameCallback, len(handles))
	for i, h := range handles {
		cbs[i] = p.pending[h]
		delete(p.pending, h)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(frame)
	}
	return len(cbs)
}

// ManualFrames is a FrameSource stepped explicitly, used by tests and headless rendering
type ManualFrames struct {
	set pendingSet
}

func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

func (m *ManualFrames) Request(cb FrameCallback) Handle { return m.set.request(cb) }
func (m *ManualFrames) Cancel(h Handle)                 { m.set.cancel(h) }

// Advance fires one frame and returns the number of callbacks run
func (m *ManualFrames) Advance() int {
	return m.set.fire()
}

// Pending returns the number of callbacks waiting for the next frame
func (m *ManualFrames) Pending() int {
	return m.set.len()
}

// TickerFrames fires frames from a background goroutine at a fixed interval
// Uses deadline tracking so slow callbacks do not accumulate drift
type TickerFrames struct {
	set      pendingSet
	interval time.Duration

	frameCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewTickerFrames creates a frame source ticking fps times per second, clamped to [MinFPS, MaxFPS]
func NewTickerFrames(fps int) *TickerFrames {
	if fps < constants.MinFPS {
		fps = constants.MinFPS
	}
	if fps > constants.MaxFPS {
		fps = constants.MaxFPS
	}
	return &TickerFrames{
		interval: time.Second / time.Duration(fps),
		stopChan: make(chan struct{}),
	}
}

func (t *TickerFrames) Request(cb FrameCallback) Handle { return t.set.request(cb) }
func (t *TickerFrames) Cancel(h Handle)                 { t.set.cancel(h) }

// Interval returns the frame period
func (t *TickerFrames) Interval() time.Duration {
	return t.interval
}

// Frames returns the number of frames fired so far
func (t *TickerFrames) Frames() uint64 {
	return t.frameCount.Load()
}

// Start begins the frame loop
func (t *TickerFrames) Start() {
	if t.running.CompareAndSwap(false, true) {
		t.wg.Add(1)
		core.Go(t.loop)
	}
}

// Stop halts the frame loop and waits for an in-flight frame to finish
func (t *TickerFrames) Stop() {
	t.stopOnce.Do(func() {
		if t.running.CompareAndSwap(true, false) {
			close(t.stopChan)
			t.wg.Wait()
		}
	})
}

func (t *TickerFrames) loop() {
	defer t.wg.Done()

	deadline := time.Now().Add(t.interval)
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-timer.C:
		}

		t.set.fire()
		t.frameCount.Add(1)

		now := time.Now()
		deadline = deadline.Add(t.interval)
		// Resync when more than two frames behind instead of bursting
		if now.Sub(deadline) > t.interval*2 {
			deadline = now.Add(t.interval)
		}
		sleep := deadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
