package engine

import (
	"errors"

	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/viewport"
	"github.com/lixenwraith/wxscene/weather"
)

// ErrTornDown is returned by operations on an engine after Teardown
var ErrTornDown = errors.New("engine torn down")

// State is the lifecycle state of an engine
type State uint8

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// RenderState is what the last tick observed, compared on the next tick to detect reinit
type RenderState struct {
	Classification weather.Classification
	Signature      weather.Signature
	Dims           viewport.Dimensions
	Profile        profile.Profile
	Rule           string

	// initialized is false until the first pool init of a lifecycle
	initialized bool
	wasClear    bool
}

// Stats is a point-in-time view of an engine
type Stats struct {
	State          State
	TornDown       bool
	Generation     uint64
	Ticks          uint64
	Skipped        uint64
	Frame          uint64
	Particles      int
	Clouds         int
	SunVisible     bool
	Classification weather.Classification
	Profile        profile.Profile
	Rule           string
	Dims           viewport.Dimensions
	FPS            float64
}
