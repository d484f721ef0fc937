// @lixen: #dev{feature[sun(render,system)]}
package systems

import (
	"math"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/render"
)

// SunColor is the disc, glow and ray color
var SunColor = render.RGB{R: 255, G: 223, B: 0}

// Sun is derived from the viewport, never persisted
type Sun struct {
	X, Y   float64
	Radius float64
}

// SunFor places the sun at 85% width, 15% height
func SunFor(width, height int) Sun {
	return Sun{
		X:      float64(width) * constants.SunXRatio,
		Y:      float64(height) * constants.SunYRatio,
		Radius: constants.SunRadius,
	}
}

// Ray is a segment from the inner to the outer endpoint
type Ray struct {
	X1, Y1, X2, Y2 float64
}

// Rays returns SunRayCount rays evenly spaced by angle
func (s Sun) Rays() []Ray {
	rays := make([]Ray, constants.SunRayCount)
	step := 2 * math.Pi / constants.SunRayCount
	inner := s.Radius + constants.SunRayInset
	outer := s.Radius + constants.SunRayOutset
	for i := range rays {
		angle := step * float64(i)
		cos, sin := math.Cos(angle), math.Sin(angle)
		rays[i] = Ray{
			X1: s.X + inner*cos,
			Y1: s.Y + inner*sin,
			X2: s.X + outer*cos,
			Y2: s.Y + outer*sin,
		}
	}
	return rays
}

// CelestialSystem draws the sun when the scheduler marks it visible
type CelestialSystem struct {
	sun     Sun
	visible bool
}

func NewCelestialSystem() *CelestialSystem {
	return &CelestialSystem{}
}

// Place recomputes the sun for the viewport
func (s *CelestialSystem) Place(width, height int) {
	s.sun = SunFor(width, height)
}

func (s *CelestialSystem) SetVisible(v bool) { s.visible = v }
func (s *CelestialSystem) IsVisible() bool   { return s.visible }
func (s *CelestialSystem) Sun() Sun          { return s.sun }

func (s *CelestialSystem) Render(f render.Frame, surf render.Surface) {
	sun := s.sun
	surf.FillGlow(sun.X, sun.Y, sun.Radius, sun.Radius+constants.SunGlowSpread, SunColor.Alpha(constants.SunGlowAlpha))
	surf.FillCircle(sun.X, sun.Y, sun.Radius, SunColor.Alpha(constants.SunDiscAlpha))

	rayColor := SunColor.Alpha(constants.SunRayAlpha)
	for _, r := range sun.Rays() {
		surf.StrokeLine(r.X1, r.Y1, r.X2, r.Y2, constants.SunRayWidth, rayColor)
	}
}
