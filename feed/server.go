// @lixen: #dev{feature[feed(http)]}
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/wxscene/core"
	"github.com/lixenwraith/wxscene/engine"
	"github.com/lixenwraith/wxscene/weather"
)

// StatsFunc reports the scene served by GET /v1/scene
type StatsFunc func() engine.Stats

// Server accepts snapshot pushes over HTTP
type Server struct {
	router *gin.Engine
	sink   Sink
	stats  StatsFunc
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
}

// PresetRequest is the body of POST /v1/preset
type PresetRequest struct {
	Main    string `json:"main" binding:"required"`
	ID      int    `json:"id"`
	Daytime *bool  `json:"daytime"`
}

// SceneView is the JSON form of engine stats
type SceneView struct {
	State       string  `json:"state"`
	Generation  uint64  `json:"generation"`
	Ticks       uint64  `json:"ticks"`
	Skipped     uint64  `json:"skipped"`
	Category    string  `json:"category"`
	Code        int     `json:"code"`
	ProfileCode int     `json:"profile_code"`
	Daytime     bool    `json:"daytime"`
	Rule        string  `json:"rule"`
	Particles   int     `json:"particles"`
	Clouds      int     `json:"clouds"`
	Sun         bool    `json:"sun"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FPS         float64 `json:"fps"`
}

// NewSceneView converts engine stats to their JSON form
func NewSceneView(st engine.Stats) SceneView {
	return SceneView{
		State:       st.State.String(),
		Generation:  st.Generation,
		Ticks:       st.Ticks,
		Skipped:     st.Skipped,
		Category:    st.Classification.Category.String(),
		Code:        st.Classification.Code,
		ProfileCode: st.Classification.ProfileCode,
		Daytime:     st.Classification.Daytime,
		Rule:        st.Rule,
		Particles:   st.Particles,
		Clouds:      st.Clouds,
		Sun:         st.SunVisible,
		Width:       st.Dims.Width,
		Height:      st.Dims.Height,
		FPS:         st.FPS,
	}
}

func NewServer(sink Sink, stats StatsFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		router: gin.New(),
		sink:   sink,
		stats:  stats,
		logger: logger.With("component", "feed.http"),
		now:    time.Now,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/v1")
	v1.POST("/snapshot", s.handlePostSnapshot)
	v1.DELETE("/snapshot", s.handleDeleteSnapshot)
	v1.POST("/preset", s.handlePostPreset)
	v1.GET("/scene", s.handleGetScene)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// apply hands snap to the sink and writes the resulting classification
func (s *Server) apply(c *gin.Context, snap *weather.Snapshot) {
	if err := s.sink.SetWeather(snap); err != nil {
		if errors.Is(err, engine.ErrTornDown) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("failed to apply snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply snapshot"})
		return
	}

	cl := weather.Classify(snap)
	c.JSON(http.StatusAccepted, gin.H{
		"category":     cl.Category.String(),
		"code":         cl.Code,
		"profile_code": cl.ProfileCode,
		"daytime":      cl.Daytime,
	})
}

func (s *Server) handlePostSnapshot(c *gin.Context) {
	snap, err := weather.DecodeSnapshot(c.Request.Body)
	if err != nil {
		s.logger.Warn("malformed snapshot ignored", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.apply(c, snap)
}

func (s *Server) handleDeleteSnapshot(c *gin.Context) {
	s.apply(c, nil)
}

func (s *Server) handlePostPreset(c *gin.Context) {
	var req PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	daytime := true
	if req.Daytime != nil {
		daytime = *req.Daytime
	}

	snap, err := Preset(req.Main, req.ID, daytime, s.now())
	if err != nil {
		body := gin.H{"error": err.Error()}
		if suggestion, ok := weather.Suggest(req.Main); ok {
			body["suggestion"] = suggestion
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}
	s.apply(c, snap)
}

func (s *Server) handleGetScene(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scene"})
		return
	}
	c.JSON(http.StatusOK, NewSceneView(s.stats()))
}

// Start listens on addr and serves in the background
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.logger.Info("snapshot feed listening", "addr", ln.Addr().String())
	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("feed server stopped", "error", err)
		}
	})
	return nil
}

// Addr returns the bound address once started
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown stops a started server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
