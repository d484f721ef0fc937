// @lixen: #dev{feature[scheduler(lifecycle,compositor)]}
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/systems"
	"github.com/lixenwraith/wxscene/viewport"
	"github.com/lixenwraith/wxscene/vmath"
	"github.com/lixenwraith/wxscene/weather"
)

// Options configures an engine, Display and Frames are required
type Options struct {
	Display render.Display
	Frames  FrameSource

	// Tracker is subscribed on Mount when set
	Tracker *viewport.Tracker

	// Rand defaults to a time-seeded FastRand
	Rand vmath.Source

	// Sky paints the category backdrop beneath the scene
	Sky bool

	Clock  Clock
	Logger *slog.Logger
}

// Observer is notified after every lifecycle restart, outside the engine lock
type Observer func(Stats)

// Engine owns the scene state and the per-frame loop
// Inputs may arrive from any goroutine; all state is guarded by mu
type Engine struct {
	mu sync.Mutex

	display render.Display
	frames  FrameSource
	tracker *viewport.Tracker
	logger  *slog.Logger

	state      State
	tornDown   bool
	generation uint64
	pending    Handle
	hasPending bool
	detach     func()

	snapshot *weather.Snapshot
	dims     viewport.Dimensions
	rs       RenderState

	particles *systems.ParticleSystem
	clouds    *systems.CloudSystem
	celestial *systems.CelestialSystem
	orch      *render.Orchestrator

	ticks     uint64
	skipped   uint64
	lastFrame uint64
	fps       fpsMeter

	observers []Observer
}

func New(opts Options) (*Engine, error) {
	if opts.Display == nil {
		return nil, fmt.Errorf("engine: display is required")
	}
	if opts.Frames == nil {
		return nil, fmt.Errorf("engine: frame source is required")
	}
	if opts.Rand == nil {
		opts.Rand = vmath.NewTimeSeededRand()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		display:   opts.Display,
		frames:    opts.Frames,
		tracker:   opts.Tracker,
		logger:    opts.Logger.With("component", "engine"),
		particles: systems.NewParticleSystem(opts.Rand),
		clouds:    systems.NewCloudSystem(opts.Rand),
		celestial: systems.NewCelestialSystem(),
		orch:      render.NewOrchestrator(),
		fps:       newFPSMeter(opts.Clock),
	}
	if opts.Tracker != nil {
		e.dims = opts.Tracker.Current()
	}

	e.orch.Register(systems.NewSkySystem(opts.Sky), render.PriorityBackground)
	e.orch.Register(e.particles, render.PriorityParticle)
	e.orch.Register(e.clouds, render.PriorityCloud)
	e.orch.Register(e.celestial, render.PriorityCelestial)

	return e, nil
}

// RegisterLayer adds an extra layer composited with the scene, must be called before Mount
func (e *Engine) RegisterLayer(l render.Layer, priority render.RenderPriority) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orch.Register(l, priority)
}

// OnRestart registers an observer of lifecycle restarts
func (e *Engine) OnRestart(fn Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Mount attaches the resize listener and starts the first lifecycle
func (e *Engine) Mount() error {
	e.mu.Lock()
	if e.tornDown {
		e.mu.Unlock()
		return ErrTornDown
	}
	if e.state == StateRunning {
		e.mu.Unlock()
		return nil
	}
	if e.tracker != nil && e.detach == nil {
		e.dims = e.tracker.Current()
		e.detach = e.tracker.Subscribe(func(d viewport.Dimensions) {
			if err := e.Resize(d); err != nil {
				e.logger.Debug("resize after teardown ignored", "dims", d.String())
			}
		})
	}
	e.restartLocked("mount")
	st := e.statsLocked()
	obs := e.observers
	e.mu.Unlock()

	notify(obs, st)
	return nil
}

// SetWeather replaces the active snapshot, nil selects the neutral scene
// A running engine restarts its lifecycle; a stopped one only records the snapshot
func (e *Engine) SetWeather(s *weather.Snapshot) error {
	e.mu.Lock()
	if e.tornDown {
		e.mu.Unlock()
		return ErrTornDown
	}
	e.snapshot = s
	if e.state != StateRunning {
		e.mu.Unlock()
		return nil
	}
	e.restartLocked("weather")
	st := e.statsLocked()
	obs := e.observers
	e.mu.Unlock()

	notify(obs, st)
	return nil
}

// Resize records new viewport dimensions and restarts a running lifecycle when they differ
func (e *Engine) Resize(d viewport.Dimensions) error {
	e.mu.Lock()
	if e.tornDown {
		e.mu.Unlock()
		return ErrTornDown
	}
	if d == e.dims {
		e.mu.Unlock()
		return nil
	}
	e.dims = d
	if e.state != StateRunning {
		e.mu.Unlock()
		return nil
	}
	e.restartLocked("resize")
	st := e.statsLocked()
	obs := e.observers
	e.mu.Unlock()

	notify(obs, st)
	return nil
}

// Teardown cancels the pending tick and detaches the resize listener, the engine cannot be mounted again
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tornDown {
		return
	}
	e.cancelLocked()
	if e.detach != nil {
		e.detach()
		e.detach = nil
	}
	e.generation++
	e.state = StateStopped
	e.tornDown = true
	e.particles.Reset()
	e.clouds.Clear()
	e.celestial.SetVisible(false)
	e.logger.Info("engine torn down", "ticks", e.ticks)
}

// Snapshot returns the active snapshot
func (e *Engine) Snapshot() *weather.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Stats returns a point-in-time view of the engine
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statsLocked()
}

func (e *Engine) statsLocked() Stats {
	return Stats{
		State:          e.state,
		TornDown:       e.tornDown,
		Generation:     e.generation,
		Ticks:          e.ticks,
		Skipped:        e.skipped,
		Frame:          e.lastFrame,
		Particles:      e.particles.Len(),
		Clouds:         e.clouds.Len(),
		SunVisible:     e.celestial.IsVisible(),
		Classification: e.rs.Classification,
		Profile:        e.rs.Profile,
		Rule:           e.rs.Rule,
		Dims:           e.dims,
		FPS:            e.fps.rate,
	}
}

func notify(obs []Observer, st Stats) {
	for _, fn := range obs {
		fn(st)
	}
}

// cancelLocked drops the in-flight tick, if any
func (e *Engine) cancelLocked() {
	if e.hasPending {
		e.frames.Cancel(e.pending)
		e.hasPending = false
	}
}

// restartLocked stops the current lifecycle and starts a new one for the current inputs
func (e *Engine) restartLocked(reason string) {
	e.cancelLocked()
	e.generation++
	e.state = StateRunning

	e.particles.Reset()
	e.clouds.Clear()
	e.celestial.SetVisible(false)
	e.rs = RenderState{}
	e.fps.reset()

	if e.dims.Valid() {
		e.prepareLocked(weather.Classify(e.snapshot))
	}

	e.logger.Info("lifecycle restarted",
		"reason", reason,
		"generation", e.generation,
		"dims", e.dims.String(),
		"category", e.rs.Classification.Category.String(),
		"code", e.rs.Classification.Code,
	)
	e.scheduleLocked()
}

func (e *Engine) scheduleLocked() {
	gen := e.generation
	e.pending = e.frames.Request(func(frame uint64) {
		e.tick(gen, frame)
	})
	e.hasPending = true
}

// prepareLocked brings pools in line with cl and the current dimensions
func (e *Engine) prepareLocked(cl weather.Classification) {
	sig := cl.Signature()
	if !e.rs.initialized || e.rs.Signature != sig || e.rs.Dims != e.dims {
		fam := profile.FamilyOf(cl.Category)
		p, rule := profile.Match(fam, cl.ProfileCode)
		if kind, ok := systems.KindOf(fam); ok {
			e.particles.Init(sig, kind, p, e.dims.Width, e.dims.Height)
		} else {
			e.particles.Reset()
		}

		// Clouds spawn from the dimensions captured here, so a dims change recreates them
		if e.rs.initialized && e.rs.Dims != e.dims {
			e.clouds.Clear()
		}
		e.celestial.Place(e.dims.Width, e.dims.Height)

		e.rs.Signature = sig
		e.rs.Dims = e.dims
		e.rs.Profile = p
		e.rs.Rule = rule
		e.rs.initialized = true
		e.logger.Debug("particle pool initialized",
			"family", fam.String(),
			"rule", rule,
			"count", e.particles.Len(),
		)
	}
	e.rs.Classification = cl

	isClear := cl.Category == weather.CategoryClear
	if isClear {
		e.clouds.Clear()
		e.celestial.SetVisible(cl.Daytime)
	} else {
		e.celestial.SetVisible(false)
		if e.rs.wasClear {
			e.clouds.Clear()
		}
		e.clouds.Populate(e.dims.Width, e.dims.Height)
	}
	e.rs.wasClear = isClear
}

// tick runs one frame of lifecycle gen, frames of a cancelled lifecycle are dropped
func (e *Engine) tick(gen, frame uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tornDown || e.state != StateRunning || gen != e.generation {
		return
	}
	e.hasPending = false
	e.lastFrame = frame

	var surf render.Surface
	if e.dims.Valid() {
		surf = e.display.Acquire(e.dims.Width, e.dims.Height)
	}
	if surf == nil {
		// Not attached yet, retry on the next frame
		e.skipped++
		e.scheduleLocked()
		return
	}

	e.prepareLocked(weather.Classify(e.snapshot))

	e.particles.Update()
	if e.clouds.IsVisible() {
		e.clouds.Update()
	}

	e.orch.RenderFrame(render.Frame{
		Number:  frame,
		Width:   e.dims.Width,
		Height:  e.dims.Height,
		Weather: e.rs.Classification,
	}, surf)

	if err := e.display.Present(surf); err != nil {
		e.logger.Warn("present failed", "error", err)
	}
	e.ticks++
	e.fps.mark()

	e.scheduleLocked()
}
