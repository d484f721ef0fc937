// @lixen: #dev{feature[audio(ambient)]}
package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/weather"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// Soundscape plays ambient beds matching the active scene
// Rain hiss scales with particle count, wind follows the cloud layer
type Soundscape struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rain        *NoiseBed
	wind        *NoiseBed
	volume      float64
	initialized bool
	logger      *slog.Logger
}

func NewSoundscape(volume float64, logger *slog.Logger) *Soundscape {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Soundscape{
		mixer:  &beep.Mixer{},
		rain:   NewNoiseBed(0x5eed, constants.RainHissCutoff, sampleRate, 0),
		wind:   NewNoiseBed(0xa1a1, constants.WindCutoff, sampleRate, constants.WindGustPeriod),
		volume: math.Max(0, math.Min(1, volume)),
		logger: logger.With("component", "audio"),
	}
}

// Initialize opens the speaker and starts both beds
// Without an audio device the error is returned and the soundscape stays silent
func (s *Soundscape) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	s.mixer.Add(s.rain, s.wind)
	speaker.Play(newVolume(s.mixer, s.volume))
	s.initialized = true
	s.logger.Info("audio initialized", "volume", s.volume)
	return nil
}

// Initialized reports an open speaker
func (s *Soundscape) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Levels returns the target rain and wind amplitudes
func (s *Soundscape) Levels() (rain, wind float64) {
	return s.rain.Level(), s.wind.Level()
}

// Apply retargets the beds for a classification and its resolved profile
func (s *Soundscape) Apply(cl weather.Classification, p profile.Profile) {
	rain, wind := Levels(cl, p)
	s.rain.SetLevel(rain)
	s.wind.SetLevel(wind)
	s.logger.Debug("soundscape retargeted",
		"category", cl.Category.String(),
		"rain", rain,
		"wind", wind,
	)
}

// Levels maps a scene to bed amplitudes
func Levels(cl weather.Classification, p profile.Profile) (rain, wind float64) {
	if cl.Category.RainFamily() {
		rain = float64(p.Count) / constants.MaxParticles
	}
	switch {
	case cl.Category == weather.CategoryClear:
		wind = 0
	case cl.Category == weather.CategoryThunderstorm:
		wind = 2 * constants.CloudWindLevel
	default:
		wind = constants.CloudWindLevel
	}
	return rain, wind
}

// Cleanup silences the beds and closes the speaker
func (s *Soundscape) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// newVolume wraps s in a log2 volume, 0 mutes since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
