package constants

// Particle pools
const (
	// MaxParticles caps any resolved profile, bounding per-frame cost
	MaxParticles = 500

	// ParticleMinOpacity and ParticleMaxOpacity bound particle alpha at spawn
	ParticleMinOpacity = 0.5
	ParticleMaxOpacity = 1.0

	// RainStreakFactor is the streak length as a multiple of particle size
	RainStreakFactor = 6.0

	// RainStrokeDivisor divides particle size to get stroke width
	RainStrokeDivisor = 1.5

	// SnowDriftFrequency scales y before the sine in snow sway
	SnowDriftFrequency = 0.01

	// SnowDriftAmplitude is the peak horizontal sway per tick
	SnowDriftAmplitude = 0.5
)

// Cloud pool
const (
	// CloudCount is the fixed pool size for every non-clear category
	CloudCount = 5

	CloudMinWidth  = 100.0
	CloudMaxWidth  = 300.0
	CloudMinHeight = 40.0
	CloudMaxHeight = 120.0

	CloudMinDrift = 0.1
	CloudMaxDrift = 0.6

	CloudMinOpacity = 0.4
	CloudMaxOpacity = 1.0

	// CloudBandDivisor limits cloud y to the top 1/N of the viewport
	CloudBandDivisor = 3.0
)

// Sun
const (
	// SunXRatio and SunYRatio place the sun relative to the viewport
	SunXRatio = 0.85
	SunYRatio = 0.15

	SunRadius = 50.0

	// SunRayCount rays at equal angular spacing
	SunRayCount = 8

	// SunRayInset and SunRayOutset are ray endpoints measured from the disc edge
	SunRayInset  = 10.0
	SunRayOutset = 30.0

	SunRayWidth = 2.0

	// SunGlowSpread is the soft glow width beyond the disc
	SunGlowSpread = 30.0

	SunDiscAlpha = 0.8
	SunGlowAlpha = 0.6
	SunRayAlpha  = 0.6
)

// Thunderstorms always resolve through the heaviest rain tier
const ThunderstormProfileCode = 504
