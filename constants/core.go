package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the default frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinFPS and MaxFPS bound the configurable frame rate
	MinFPS = 1
	MaxFPS = 120

	// DefaultFPS matches FrameUpdateInterval
	DefaultFPS = 60

	// EventChannelSize is the buffer for terminal events forwarded to the main loop
	EventChannelSize = 64

	// StatusDimAlpha darkens the scene under the status overlay
	StatusDimAlpha = 0.7
)

// Viewport
const (
	// DefaultPixelsPerCell is the side of one half-block pixel square in scene pixels
	DefaultPixelsPerCell = 8

	// MaxPixelsPerCell bounds offscreen canvas size for large terminals
	MaxPixelsPerCell = 32

	// DefaultRenderWidth and DefaultRenderHeight size headless renders
	DefaultRenderWidth  = 1280
	DefaultRenderHeight = 720
)
