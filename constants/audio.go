package constants

import "time"

// Ambient soundscape
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultAudioVolume is the master volume in [0,1]
	DefaultAudioVolume = 0.5

	// RainHissCutoff is the one-pole lowpass coefficient for rain noise
	RainHissCutoff = 0.35

	// WindCutoff is the lowpass coefficient for the wind bed, much darker than rain
	WindCutoff = 0.02

	// WindGustPeriod is the length of one gust swell
	WindGustPeriod = 7 * time.Second

	// CloudWindLevel is the wind bed level when clouds are present
	CloudWindLevel = 0.25
)
