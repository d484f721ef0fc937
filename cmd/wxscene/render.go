package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/wxscene/engine"
	"github.com/lixenwraith/wxscene/feed"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/viewport"
)

func renderCommand() *cli.Command {
	flags := append(sceneFlags(), renderFlags()...)
	flags = append(flags,
		&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Value: 60, Usage: "frames to simulate before saving"},
		&cli.IntFlag{Name: "width", Usage: "image width in pixels"},
		&cli.IntFlag{Name: "height", Usage: "image height in pixels"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "wxscene.png", Usage: "output PNG path"},
	)
	return &cli.Command{
		Name:   "render",
		Usage:  "simulate the scene headless and save the last frame as PNG",
		Flags:  flags,
		Action: renderScene,
	}
}

func renderScene(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	n := c.Int("frames")
	if n < 1 {
		return fmt.Errorf("frames must be positive, got %d", n)
	}
	logger, logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	display := render.NewPNGDisplay()
	frames := engine.NewManualFrames()
	eng, err := engine.New(engine.Options{
		Display: display,
		Frames:  frames,
		Tracker: viewport.NewTracker(viewport.Dimensions{Width: cfg.Render.Width, Height: cfg.Render.Height}),
		Rand:    newRand(cfg),
		Sky:     cfg.Render.Sky,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if cfg.Feed.File != "" {
		w, err := feed.NewFileWatcher(cfg.Feed.File, eng, logger)
		if err != nil {
			return err
		}
		if err := w.Load(); err != nil {
			return err
		}
	} else {
		snap, err := presetSnapshot(cfg, time.Now())
		if err != nil {
			return err
		}
		if err := eng.SetWeather(snap); err != nil {
			return err
		}
	}

	if err := eng.Mount(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		frames.Advance()
	}
	st := eng.Stats()
	eng.Teardown()

	out := c.String("out")
	if err := display.Save(out); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s: %d frames, %s %d, %d particles, %d clouds, sun %v\n",
		out, display.Frames(), st.Classification.Category, st.Classification.Code,
		st.Particles, st.Clouds, st.SunVisible)
	return nil
}
