package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/wxscene/vmath"
)

// levelRamp is the per-sample step toward a new target level, avoids clicks on weather changes
const levelRamp = 1.0 / 22050

// NoiseBed is an endless lowpass-filtered noise streamer with an adjustable level
// Level is set from any goroutine; Stream runs on the speaker goroutine
type NoiseBed struct {
	rng    *vmath.FastRand
	cutoff float64

	// gust modulates amplitude over gustSamples, 0 disables it
	gustSamples int
	pos         int

	target  atomic.Uint64 // float64 bits
	current float64
	state   [2]float64
}

// NewNoiseBed creates a bed filtered by a one-pole lowpass with coefficient cutoff in (0,1]
func NewNoiseBed(seed uint64, cutoff float64, sr beep.SampleRate, gustPeriod time.Duration) *NoiseBed {
	n := &NoiseBed{
		rng:    vmath.NewFastRand(seed),
		cutoff: cutoff,
	}
	if gustPeriod > 0 {
		n.gustSamples = sr.N(gustPeriod)
	}
	return n
}

// SetLevel sets the target amplitude, clamped to [0,1]
func (n *NoiseBed) SetLevel(level float64) {
	level = math.Max(0, math.Min(1, level))
	n.target.Store(math.Float64bits(level))
}

// Level returns the target amplitude
func (n *NoiseBed) Level() float64 {
	return math.Float64frombits(n.target.Load())
}

func (n *NoiseBed) Stream(samples [][2]float64) (int, bool) {
	target := n.Level()
	for i := range samples {
		switch {
		case n.current < target:
			n.current = math.Min(target, n.current+levelRamp)
		case n.current > target:
			n.current = math.Max(target, n.current-levelRamp)
		}

		amp := n.current
		if n.gustSamples > 0 {
			phase := float64(n.pos%n.gustSamples) / float64(n.gustSamples)
			amp *= 0.6 + 0.4*math.Sin(2*math.Pi*phase)
			n.pos++
		}

		for ch := 0; ch < 2; ch++ {
			white := n.rng.Float64()*2 - 1
			n.state[ch] += n.cutoff * (white - n.state[ch])
			samples[i][ch] = n.state[ch] * amp
		}
	}
	return len(samples), true
}

func (n *NoiseBed) Err() error { return nil }
