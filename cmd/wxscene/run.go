package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/wxscene/audio"
	"github.com/lixenwraith/wxscene/config"
	"github.com/lixenwraith/wxscene/core"
	"github.com/lixenwraith/wxscene/engine"
	"github.com/lixenwraith/wxscene/feed"
	"github.com/lixenwraith/wxscene/terminal"
	"github.com/lixenwraith/wxscene/viewport"
)

// statusInterval is how often the overlay text is refreshed
const statusInterval = 250 * time.Millisecond

func runCommand() *cli.Command {
	flags := append(sceneFlags(), renderFlags()...)
	flags = append(flags,
		&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "serve the snapshot feed on this address, e.g. :8090"},
		&cli.BoolFlag{Name: "audio", Usage: "play the ambient soundscape"},
		&cli.BoolFlag{Name: "debug", Usage: "write logs to the log directory"},
	)
	return &cli.Command{
		Name:   "run",
		Usage:  "animate the scene in the terminal ('s' toggles status, 'q' quits)",
		Flags:  flags,
		Action: runScene,
	}
}

func runScene(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	snap, err := presetSnapshot(cfg, time.Now())
	if err != nil {
		return err
	}

	logger, logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	scr, err := terminal.New(cfg.Render.PixelsPerCell)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.RegisterTerminal(scr)
	defer core.RegisterTerminal(nil)
	defer scr.Fini()

	tracker := viewport.NewTracker(scr.Dimensions())
	frames := engine.NewTickerFrames(cfg.Render.FPS)
	eng, err := engine.New(engine.Options{
		Display: scr,
		Frames:  frames,
		Tracker: tracker,
		Rand:    newRand(cfg),
		Sky:     cfg.Render.Sky,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if cfg.Audio.Enabled {
		sc := startAudio(cfg, logger)
		if sc != nil {
			defer sc.Cleanup()
			eng.OnRestart(func(st engine.Stats) {
				sc.Apply(st.Classification, st.Profile)
			})
		}
	}

	if err := eng.SetWeather(snap); err != nil {
		return err
	}
	if err := eng.Mount(); err != nil {
		return err
	}
	defer eng.Teardown()

	if cfg.Feed.File != "" {
		w, err := feed.NewFileWatcher(cfg.Feed.File, eng, logger)
		if err != nil {
			return err
		}
		if err := w.Load(); err != nil {
			logger.Warn("initial snapshot not loaded", "error", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch snapshot file: %w", err)
		}
		defer w.Close()
	}

	if cfg.Feed.Listen != "" {
		gin.SetMode(gin.ReleaseMode)
		gin.DefaultWriter = io.Discard
		srv := feed.NewServer(eng, eng.Stats, logger)
		if err := srv.Start(cfg.Feed.Listen); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	frames.Start()
	defer frames.Stop()
	scr.Start()

	status := time.NewTicker(statusInterval)
	defer status.Stop()

	for {
		select {
		case ev := <-scr.Events():
			switch ev.Kind {
			case terminal.EventResize:
				tracker.Update(ev.Dims)
			case terminal.EventQuit:
				logger.Info("quit requested")
				return nil
			}
		case <-status.C:
			scr.SetStatus(formatStatus(eng.Stats()))
		}
	}
}

// startAudio opens the speaker, nil when no device is available
func startAudio(cfg *config.Config, logger *slog.Logger) *audio.Soundscape {
	sc := audio.NewSoundscape(cfg.Audio.Volume, logger)
	if err := sc.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil
	}
	return sc
}

func formatStatus(st engine.Stats) string {
	cl := st.Classification
	return fmt.Sprintf("%s %d | %s | particles %d | clouds %d | %.0f fps | %s",
		cl.Category, cl.Code, st.Rule, st.Particles, st.Clouds, st.FPS, st.Dims)
}
