package systems

import (
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/weather"
)

// Page backdrop palette, top-left to bottom-right
var (
	skyDefault      = render.Gradient{From: render.MustHex("#60a5fa"), To: render.MustHex("#0284c7")}
	skyRain         = render.Gradient{From: render.MustHex("#374151"), To: render.MustHex("#1e3a8a")}
	skyThunderstorm = render.Gradient{From: render.MustHex("#1f2937"), To: render.MustHex("#111827")}
	skySnow         = render.Gradient{From: render.MustHex("#bfdbfe"), To: render.MustHex("#ffffff")}
	skyClear        = render.Gradient{From: render.MustHex("#93c5fd"), To: render.MustHex("#0ea5e9")}
	skyClouds       = render.Gradient{From: render.MustHex("#6b7280"), To: render.MustHex("#1d4ed8")}
)

// SkyGradient returns the backdrop for a category
func SkyGradient(c weather.Category) render.Gradient {
	switch c {
	case weather.CategoryRain:
		return skyRain
	case weather.CategoryThunderstorm:
		return skyThunderstorm
	case weather.CategorySnow:
		return skySnow
	case weather.CategoryClear:
		return skyClear
	case weather.CategoryClouds:
		return skyClouds
	default:
		return skyDefault
	}
}

// SkySystem paints the backdrop beneath every other layer
type SkySystem struct {
	enabled bool
}

func NewSkySystem(enabled bool) *SkySystem {
	return &SkySystem{enabled: enabled}
}

func (s *SkySystem) IsVisible() bool { return s.enabled }

func (s *SkySystem) Render(f render.Frame, surf render.Surface) {
	surf.FillGradient(SkyGradient(f.Weather.Category))
}
