package render

import "github.com/lixenwraith/wxscene/weather"

// Frame provides per-tick state for layers, passed by value
type Frame struct {
	Number uint64

	// Viewport dimensions in scene pixels
	Width  int
	Height int

	Weather weather.Classification
}
