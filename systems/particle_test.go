package systems

import (
	"math"
	"testing"

	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/vmath"
	"github.com/lixenwraith/wxscene/weather"
)

var rainLight = profile.Profile{Count: 150, MinSpeed: 3, MaxSpeed: 6, MinSize: 1.5, MaxSize: 3}

func TestParticleInitRanges(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(1))
	sig := weather.Signature{Category: weather.CategoryRain, Code: 500}
	ps.Init(sig, KindRain, rainLight, 800, 600)

	if ps.Len() != 150 {
		t.Fatalf("Len() = %d, want 150", ps.Len())
	}
	for i, p := range ps.Particles() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Errorf("particle %d position (%v,%v) outside viewport", i, p.X, p.Y)
		}
		if p.Size < 1.5 || p.Size >= 3 {
			t.Errorf("particle %d size %v outside [1.5,3)", i, p.Size)
		}
		if p.FallSpeed < 3 || p.FallSpeed >= 6 {
			t.Errorf("particle %d speed %v outside [3,6)", i, p.FallSpeed)
		}
		if p.Opacity < 0.5 || p.Opacity >= 1 {
			t.Errorf("particle %d opacity %v outside [0.5,1)", i, p.Opacity)
		}
	}
}

func TestParticleInitReproducible(t *testing.T) {
	sig := weather.Signature{Category: weather.CategorySnow, Code: 601}
	p := profile.Resolve(profile.FamilySnow, 601)

	a := NewParticleSystem(vmath.NewFastRand(9))
	b := NewParticleSystem(vmath.NewFastRand(9))
	a.Init(sig, KindSnow, p, 320, 200)
	b.Init(sig, KindSnow, p, 320, 200)

	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs under identical seed", i)
		}
	}
}

func TestRainUpdateFallsStraight(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(3))
	ps.Init(weather.Signature{Category: weather.CategoryRain, Code: 500}, KindRain, rainLight, 800, 1e9)

	before := append([]Particle(nil), ps.Particles()...)
	ps.Update()
	for i, p := range ps.Particles() {
		if p.Y != before[i].Y+before[i].FallSpeed {
			t.Errorf("particle %d y = %v, want %v", i, p.Y, before[i].Y+before[i].FallSpeed)
		}
		if p.X != before[i].X {
			t.Errorf("rain particle %d moved horizontally: %v -> %v", i, before[i].X, p.X)
		}
	}
}

func TestSnowUpdateSways(t *testing.T) {
	// Fixed spawn: x=0.5*w, y=0.25*h, size, speed, opacity
	src := &vmath.SequenceSource{Values: []float64{0.5, 0.25, 0.5, 0.5, 0.5}}
	ps := NewParticleSystem(src)
	p := profile.Profile{Count: 1, MinSpeed: 2, MaxSpeed: 4, MinSize: 2.5, MaxSize: 4.5}
	ps.Init(weather.Signature{Category: weather.CategorySnow, Code: 601}, KindSnow, p, 1000, 1000)

	before := ps.Particles()[0]
	ps.Update()
	after := ps.Particles()[0]

	wantY := before.Y + before.FallSpeed
	if after.Y != wantY {
		t.Fatalf("y = %v, want %v", after.Y, wantY)
	}
	wantDX := math.Sin(wantY*0.01) * 0.5
	if dx := after.X - before.X; math.Abs(dx-wantDX) > 1e-9 {
		t.Errorf("dx = %v, want sin(y*0.01)*0.5 = %v", dx, wantDX)
	}
}

func TestParticleRespawnAtTop(t *testing.T) {
	// x, y, size, speed, opacity, then respawn x
	src := &vmath.SequenceSource{Values: []float64{0.1, 0.99, 0.5, 0.99, 0.5, 0.75}}
	ps := NewParticleSystem(src)
	p := profile.Profile{Count: 1, MinSpeed: 8, MaxSpeed: 15, MinSize: 3, MaxSize: 6}
	ps.Init(weather.Signature{Category: weather.CategoryRain, Code: 502}, KindRain, p, 400, 100)

	ps.Update()
	got := ps.Particles()[0]
	if got.Y != 0 {
		t.Errorf("respawned y = %v, want 0", got.Y)
	}
	if got.X != 300 {
		t.Errorf("respawned x = %v, want fresh draw 300", got.X)
	}
}

func TestParticlesStayInBounds(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(5))
	p := profile.Resolve(profile.FamilySnow, 602)
	ps.Init(weather.Signature{Category: weather.CategorySnow, Code: 602}, KindSnow, p, 200, 150)

	for tick := 0; tick < 500; tick++ {
		ps.Update()
		for i, pt := range ps.Particles() {
			if pt.X < 0 || pt.X >= 200 || pt.Y > 150 {
				t.Fatalf("tick %d particle %d at (%v,%v) outside bounds", tick, i, pt.X, pt.Y)
			}
		}
	}
	if ps.Len() != p.Count {
		t.Errorf("pool size changed: %d, want %d", ps.Len(), p.Count)
	}
}

func TestNeedsInit(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(1))
	sig := weather.Signature{Category: weather.CategoryRain, Code: 500}
	if !ps.NeedsInit(sig) {
		t.Error("empty pool must need init")
	}

	ps.Init(sig, KindRain, rainLight, 100, 100)
	if ps.NeedsInit(sig) {
		t.Error("same signature must not need init")
	}
	if !ps.NeedsInit(weather.Signature{Category: weather.CategoryRain, Code: 501}) {
		t.Error("code change must need init")
	}
	if !ps.NeedsInit(weather.Signature{Category: weather.CategoryDrizzle, Code: 500}) {
		t.Error("category change must need init")
	}

	ps.Reset()
	if ps.Len() != 0 || ps.IsVisible() {
		t.Error("Reset must empty the pool")
	}
}

func TestParticleInitCapsCount(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(1))
	ps.Init(weather.Signature{}, KindRain, profile.Profile{Count: 5000, MinSpeed: 1, MaxSpeed: 2, MinSize: 1, MaxSize: 2}, 10, 10)
	if ps.Len() != 500 {
		t.Errorf("Len() = %d, want cap 500", ps.Len())
	}
}

func TestParticleRenderRain(t *testing.T) {
	src := &vmath.SequenceSource{Values: []float64{0.5, 0.5, 0.5, 0.5, 0.5}}
	ps := NewParticleSystem(src)
	p := profile.Profile{Count: 1, MinSpeed: 3, MaxSpeed: 6, MinSize: 1.5, MaxSize: 3}
	ps.Init(weather.Signature{Category: weather.CategoryRain, Code: 500}, KindRain, p, 100, 100)

	rec := render.NewRecorder(100, 100)
	ps.Render(render.Frame{}, rec)

	lines := rec.Filter(render.OpLine)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	pt := ps.Particles()[0]
	op := lines[0]
	if op.X1 != pt.X || op.X2 != pt.X || op.Y1 != pt.Y || op.Y2 != pt.Y+pt.Size*6 {
		t.Errorf("streak = (%v,%v)-(%v,%v), want vertical of length size*6", op.X1, op.Y1, op.X2, op.Y2)
	}
	if op.Width != pt.Size/1.5 {
		t.Errorf("stroke width = %v, want %v", op.Width, pt.Size/1.5)
	}
	if op.Color.A != pt.Opacity || op.Color.RGB != render.RGBWhite {
		t.Errorf("color = %+v", op.Color)
	}
}

func TestParticleRenderSnow(t *testing.T) {
	ps := NewParticleSystem(vmath.NewFastRand(2))
	p := profile.Resolve(profile.FamilySnow, 601)
	ps.Init(weather.Signature{Category: weather.CategorySnow, Code: 601}, KindSnow, p, 100, 100)

	rec := render.NewRecorder(100, 100)
	ps.Render(render.Frame{}, rec)
	circles := rec.Filter(render.OpCircle)
	if len(circles) != 80 {
		t.Fatalf("discs = %d, want 80", len(circles))
	}
	for i, op := range circles {
		pt := ps.Particles()[i]
		if op.R != pt.Size || op.X1 != pt.X || op.Y1 != pt.Y {
			t.Errorf("disc %d = %+v, particle %+v", i, op, pt)
		}
	}
	if rec.Count(render.OpLine) != 0 {
		t.Error("snow must not draw streaks")
	}
}
