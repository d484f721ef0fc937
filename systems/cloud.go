// @lixen: #dev{feature[clouds(render,system)]}
package systems

import (
	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/vmath"
	"github.com/lixenwraith/wxscene/weather"
)

// Cloud is one drifting puff
type Cloud struct {
	X, Y          float64
	Width, Height float64
	DriftSpeed    float64
	Opacity       float64
}

// Cloud tints by category group
var (
	TintRain        = render.Gray(150)
	TintSnow        = render.Gray(200)
	TintAtmospheric = render.Gray(180)
	TintDefault     = render.RGBWhite
)

// CloudTint returns the silhouette color for a category
func CloudTint(c weather.Category) render.RGB {
	switch {
	case c.RainFamily():
		return TintRain
	case c.SnowFamily():
		return TintSnow
	case c == weather.CategoryAtmospheric:
		return TintAtmospheric
	default:
		return TintDefault
	}
}

// lobe is a circle relative to the cloud anchor, in fractions of cloud size
type lobe struct {
	dx, dy float64 // offsets as fraction of width and height
	rDiv   float64 // radius is width / rDiv
}

var cloudLobes = [5]lobe{
	{0, 0, 4},
	{0.3, -0.2, 3.5},
	{0.6, 0, 4},
	{0.2, 0.1, 3},
	{0.45, 0.15, 3.2},
}

// Lobes returns the five circles composing c
func (c Cloud) Lobes() []render.Circle {
	return c.appendLobes(make([]render.Circle, 0, len(cloudLobes)))
}

func (c Cloud) appendLobes(dst []render.Circle) []render.Circle {
	for _, l := range cloudLobes {
		dst = append(dst, render.Circle{
			X: c.X + c.Width*l.dx,
			Y: c.Y + c.Height*l.dy,
			R: c.Width / l.rDiv,
		})
	}
	return dst
}

// CloudSystem owns the fixed-size cloud pool of the active lifecycle
type CloudSystem struct {
	rng    vmath.Source
	clouds []Cloud
	width  float64
	height float64

	// scratch reused for lobes during Render
	lobes []render.Circle
}

func NewCloudSystem(rng vmath.Source) *CloudSystem {
	return &CloudSystem{rng: rng}
}

// Populate spawns CloudCount clouds, no-op when already populated
func (s *CloudSystem) Populate(width, height int) bool {
	if len(s.clouds) > 0 {
		return false
	}
	s.width = float64(width)
	s.height = float64(height)

	s.clouds = make([]Cloud, constants.CloudCount)
	for i := range s.clouds {
		s.clouds[i] = Cloud{
			X:          vmath.Uniform(s.rng, 0, s.width),
			Y:          vmath.Uniform(s.rng, 0, s.height/constants.CloudBandDivisor),
			Width:      vmath.Uniform(s.rng, constants.CloudMinWidth, constants.CloudMaxWidth),
			Height:     vmath.Uniform(s.rng, constants.CloudMinHeight, constants.CloudMaxHeight),
			DriftSpeed: vmath.Uniform(s.rng, constants.CloudMinDrift, constants.CloudMaxDrift),
			Opacity:    vmath.Uniform(s.rng, constants.CloudMinOpacity, constants.CloudMaxOpacity),
		}
	}
	return true
}

// Clear empties the pool
func (s *CloudSystem) Clear() {
	s.clouds = nil
}

func (s *CloudSystem) Len() int { return len(s.clouds) }

// Clouds exposes the pool for inspection
func (s *CloudSystem) Clouds() []Cloud {
	return s.clouds
}

// Update drifts every cloud and wraps those past the right edge
func (s *CloudSystem) Update() {
	for i := range s.clouds {
		c := &s.clouds[i]
		c.X += c.DriftSpeed
		if c.X > s.width+c.Width/2 {
			c.X = -c.Width / 2
			c.Y = vmath.Uniform(s.rng, 0, s.height/constants.CloudBandDivisor)
		}
	}
}

func (s *CloudSystem) IsVisible() bool {
	return len(s.clouds) > 0
}

func (s *CloudSystem) Render(f render.Frame, surf render.Surface) {
	tint := CloudTint(f.Weather.Category)
	for i := range s.clouds {
		c := &s.clouds[i]
		s.lobes = c.appendLobes(s.lobes[:0])
		surf.FillCircles(s.lobes, tint.Alpha(c.Opacity))
	}
}
