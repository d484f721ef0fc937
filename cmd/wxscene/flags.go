package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/wxscene/config"
	"github.com/lixenwraith/wxscene/feed"
	"github.com/lixenwraith/wxscene/vmath"
	"github.com/lixenwraith/wxscene/weather"
)

// sceneFlags select the snapshot and are shared by every scene command
func sceneFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "main", Aliases: []string{"m"}, Usage: "weather category or provider name, e.g. Rain, Snow, Fog, none"},
		&cli.IntFlag{Name: "code", Usage: "condition code, 0 picks the category default"},
		&cli.BoolFlag{Name: "night", Usage: "place the preset outside the sunrise/sunset window"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "snapshot JSON file, reloaded on change"},
	}
}

// renderFlags tune the scene renderer
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 seeds from the clock"},
		&cli.IntFlag{Name: "fps", Usage: "frames per second"},
		&cli.IntFlag{Name: "ppc", Usage: "scene pixels per terminal cell edge"},
		&cli.BoolFlag{Name: "no-sky", Usage: "disable the category backdrop"},
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("main") {
		cfg.Feed.Main = c.String("main")
	}
	if c.IsSet("code") {
		cfg.Feed.ID = c.Int("code")
	}
	if c.IsSet("night") {
		cfg.Feed.Daytime = !c.Bool("night")
	}
	if c.IsSet("file") {
		cfg.Feed.File = c.String("file")
	}
	if c.IsSet("listen") {
		cfg.Feed.Listen = c.String("listen")
	}
	if c.IsSet("seed") {
		cfg.Render.Seed = c.Uint64("seed")
	}
	if c.IsSet("fps") {
		cfg.Render.FPS = c.Int("fps")
	}
	if c.IsSet("ppc") {
		cfg.Render.PixelsPerCell = c.Int("ppc")
	}
	if c.IsSet("no-sky") {
		cfg.Render.Sky = !c.Bool("no-sky")
	}
	if c.IsSet("width") {
		cfg.Render.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Render.Height = c.Int("height")
	}
	if c.IsSet("audio") {
		cfg.Audio.Enabled = c.Bool("audio")
	}
	if c.IsSet("debug") {
		cfg.Log.Debug = c.Bool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// presetSnapshot builds the configured preset, nil when no category is configured
func presetSnapshot(cfg *config.Config, now time.Time) (*weather.Snapshot, error) {
	if cfg.Feed.Main == "" {
		return nil, nil
	}
	snap, err := feed.Preset(cfg.Feed.Main, cfg.Feed.ID, cfg.Feed.Daytime, now)
	if err != nil {
		if errors.Is(err, weather.ErrUnknownCategory) {
			if s, ok := weather.Suggest(cfg.Feed.Main); ok {
				return nil, fmt.Errorf("%w (did you mean %q?)", err, s)
			}
		}
		return nil, err
	}
	return snap, nil
}

func newRand(cfg *config.Config) vmath.Source {
	if cfg.Render.Seed == 0 {
		return vmath.NewTimeSeededRand()
	}
	return vmath.NewFastRand(cfg.Render.Seed)
}
