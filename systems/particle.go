// @lixen: #dev{feature[precipitation(render,system)]}
package systems

import (
	"math"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/vmath"
	"github.com/lixenwraith/wxscene/weather"
)

// ParticleKind selects update and draw rules of a pool
type ParticleKind uint8

const (
	KindRain ParticleKind = iota
	KindSnow
)

func (k ParticleKind) String() string {
	if k == KindSnow {
		return "snow"
	}
	return "rain"
}

// KindOf maps a particle family to its kind, ok is false for FamilyNone
func KindOf(f profile.Family) (ParticleKind, bool) {
	switch f {
	case profile.FamilyRain:
		return KindRain, true
	case profile.FamilySnow:
		return KindSnow, true
	default:
		return KindRain, false
	}
}

// Particle is one falling drop or flake, recycled in place until reinit
type Particle struct {
	X, Y      float64
	Size      float64
	FallSpeed float64
	Opacity   float64
}

// ParticleSystem owns the precipitation pool of the active lifecycle
type ParticleSystem struct {
	rng       vmath.Source
	kind      ParticleKind
	particles []Particle
	signature weather.Signature
	profile   profile.Profile
	width     float64
	height    float64
}

func NewParticleSystem(rng vmath.Source) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// Init discards the pool and spawns p.Count particles across the viewport
func (s *ParticleSystem) Init(sig weather.Signature, kind ParticleKind, p profile.Profile, width, height int) {
	s.signature = sig
	s.kind = kind
	s.profile = p
	s.width = float64(width)
	s.height = float64(height)

	count := p.Count
	if count > constants.MaxParticles {
		count = constants.MaxParticles
	}
	if count < 0 {
		count = 0
	}

	// Fresh slice so a previous lifecycle's backing array is released
	s.particles = make([]Particle, count)
	for i := range s.particles {
		s.particles[i] = Particle{
			X:         vmath.Uniform(s.rng, 0, s.width),
			Y:         vmath.Uniform(s.rng, 0, s.height),
			Size:      vmath.Uniform(s.rng, p.MinSize, p.MaxSize),
			FallSpeed: vmath.Uniform(s.rng, p.MinSpeed, p.MaxSpeed),
			Opacity:   vmath.Uniform(s.rng, constants.ParticleMinOpacity, constants.ParticleMaxOpacity),
		}
	}
}

// Reset empties the pool
func (s *ParticleSystem) Reset() {
	s.particles = nil
	s.signature = weather.Signature{}
	s.profile = profile.Profile{}
}

// NeedsInit reports an empty pool or a signature change since the last Init
func (s *ParticleSystem) NeedsInit(sig weather.Signature) bool {
	return len(s.particles) == 0 || s.signature != sig
}

// Bounds returns the viewport captured at Init
func (s *ParticleSystem) Bounds() (width, height int) {
	return int(s.width), int(s.height)
}

func (s *ParticleSystem) Len() int {
	return len(s.particles)
}

func (s *ParticleSystem) Kind() ParticleKind {
	return s.kind
}

func (s *ParticleSystem) Profile() profile.Profile {
	return s.profile
}

func (s *ParticleSystem) Signature() weather.Signature {
	return s.signature
}

// Particles exposes the pool for inspection, callers must not retain it across ticks
func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

// Update advances every particle one tick and applies the wrap rules
func (s *ParticleSystem) Update() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Y += p.FallSpeed

		if s.kind == KindSnow {
			p.X += math.Sin(p.Y*constants.SnowDriftFrequency) * constants.SnowDriftAmplitude
			// Sway never leaves [0,width)
			if p.X < 0 {
				p.X += s.width
			} else if p.X >= s.width {
				p.X -= s.width
			}
		}

		if p.Y > s.height {
			p.Y = 0
			p.X = vmath.Uniform(s.rng, 0, s.width)
		}
	}
}

// IsVisible hides the layer while the pool is empty
func (s *ParticleSystem) IsVisible() bool {
	return len(s.particles) > 0
}

func (s *ParticleSystem) Render(f render.Frame, surf render.Surface) {
	for i := range s.particles {
		p := &s.particles[i]
		col := render.RGBWhite.Alpha(p.Opacity)
		if s.kind == KindSnow {
			surf.FillCircle(p.X, p.Y, p.Size, col)
			continue
		}
		surf.StrokeLine(p.X, p.Y, p.X, p.Y+p.Size*constants.RainStreakFactor, p.Size/constants.RainStrokeDivisor, col)
	}
}
