// Package config loads wxscene settings from defaults, an optional file and the environment
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/wxscene/constants"
)

// ErrInvalid marks a configuration value outside its accepted range
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override, e.g. WXSCENE_RENDER_FPS
const EnvPrefix = "WXSCENE"

// Config holds all configuration for the application
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Log    LogConfig    `mapstructure:"log"`
}

// RenderConfig controls the frame loop and surfaces
type RenderConfig struct {
	FPS           int    `mapstructure:"fps"`
	PixelsPerCell int    `mapstructure:"pixels_per_cell"`
	Sky           bool   `mapstructure:"sky"`
	Seed          uint64 `mapstructure:"seed"` // 0 seeds from the clock
	Width         int    `mapstructure:"width"`  // headless render only
	Height        int    `mapstructure:"height"` // headless render only
}

// FeedConfig selects where snapshots come from
type FeedConfig struct {
	File    string `mapstructure:"file"`
	Listen  string `mapstructure:"listen"`
	Main    string `mapstructure:"main"`
	ID      int    `mapstructure:"id"`
	Daytime bool   `mapstructure:"daytime"`
}

// AudioConfig controls the ambient soundscape
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
	Debug  bool   `mapstructure:"debug"`  // write logs to Dir, discard otherwise
	Dir    string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.fps", constants.DefaultFPS)
	v.SetDefault("render.pixels_per_cell", constants.DefaultPixelsPerCell)
	v.SetDefault("render.sky", true)
	v.SetDefault("render.seed", 0)
	v.SetDefault("render.width", constants.DefaultRenderWidth)
	v.SetDefault("render.height", constants.DefaultRenderHeight)

	v.SetDefault("feed.file", "")
	v.SetDefault("feed.listen", "")
	v.SetDefault("feed.main", "")
	v.SetDefault("feed.id", 0)
	v.SetDefault("feed.daytime", true)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", constants.DefaultAudioVolume)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", "logs")
}

// Load reads configuration from defaults, a config file and environment variables
// An explicit path must exist; without one, wxscene.{toml,yaml,json} is searched and may be absent
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wxscene")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wxscene")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	if c.Render.FPS < constants.MinFPS || c.Render.FPS > constants.MaxFPS {
		return fmt.Errorf("%w: render.fps %d outside [%d,%d]", ErrInvalid, c.Render.FPS, constants.MinFPS, constants.MaxFPS)
	}
	if c.Render.PixelsPerCell < 1 || c.Render.PixelsPerCell > constants.MaxPixelsPerCell {
		return fmt.Errorf("%w: render.pixels_per_cell %d outside [1,%d]", ErrInvalid, c.Render.PixelsPerCell, constants.MaxPixelsPerCell)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Feed.ID < 0 {
		return fmt.Errorf("%w: feed.id %d is negative", ErrInvalid, c.Feed.ID)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	}
	if _, ok := ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name to its slog level
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewLogger creates a slog.Logger writing to w in the configured format
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
