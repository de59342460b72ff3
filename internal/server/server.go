package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/crrsim/internal/config"
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/san-kum/crrsim/internal/storage"
)

// Server is the JSON API. Every request builds its own draft from the base
// and the query string, so handlers share no mutable state.
type Server struct {
	router *gin.Engine
	base   params.Draft
	store  *storage.Store
	logger *slog.Logger
}

// New builds the router. store may be nil, which disables the run routes.
func New(base params.Draft, store *storage.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		base:   base,
		store:  store,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/presets", s.listPresets)
		api.GET("/estimate", s.estimate)
		api.GET("/curve", s.curve)
		api.GET("/compare", s.compare)

		if s.store != nil {
			api.GET("/runs", s.listRuns)
			api.GET("/runs/:id", s.getRun)
		}
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// draft layers query parameters over the base draft. Field values go
// through the usual per-field fallback; a malformed auto flag is ignored.
func (s *Server) draft(c *gin.Context) params.Draft {
	d := s.base
	if name := c.Query("preset"); name != "" {
		if p, err := config.GetPreset(name); err == nil {
			d = p.Apply(d)
		}
	}
	for _, f := range params.Fields {
		if raw, ok := c.GetQuery(string(f.Key)); ok {
			d = d.With(f.Key, raw)
		}
	}
	if raw, ok := c.GetQuery("auto"); ok {
		if on, err := strconv.ParseBool(raw); err == nil {
			d = d.WithAutoA(on)
		}
	}
	return d
}

func components(c *gin.Context) curve.Components {
	return curve.Components{
		Hysteresis: queryBool(c, "hysteresis", true),
		Impact:     queryBool(c, "impact", true),
	}
}

func queryBool(c *gin.Context, key string, fallback bool) bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type presetResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params"`
}

func (s *Server) listPresets(c *gin.Context) {
	out := make([]presetResponse, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		out = append(out, presetResponse{Name: p.Name, Description: p.Description, Params: p.Params})
	}
	c.JSON(http.StatusOK, out)
}

type estimateResponse struct {
	TireWidthMm float64 `json:"tireWidthMm"`
	MassKg      float64 `json:"massKg"`
	Kappa       float64 `json:"kappa"`
	A           float64 `json:"A"`
	RadiusM     float64 `json:"radiusM"`
}

func (s *Server) estimate(c *gin.Context) {
	ps := s.draft(c).Resolve()
	s.respond(c, estimateResponse{
		TireWidthMm: ps.TireWidthMm,
		MassKg:      ps.MassKg,
		Kappa:       ps.Kappa,
		A:           physics.EstimateA(ps.TireWidthMm, ps.MassKg, ps.Kappa),
		RadiusM:     physics.EffectiveRadius(ps.TireWidthMm),
	})
}

type curveResponse struct {
	Params     params.ParameterSet `json:"params"`
	ASource    string              `json:"aSource"`
	RefCrr     float64             `json:"refCrr"`
	RefWatts   float64             `json:"refWatts"`
	Optimum    *optim.Optimum      `json:"optimum,omitempty"`
	Stationary *float64            `json:"stationaryPressure,omitempty"`
	Rows       []curve.Row         `json:"rows"`
}

func (s *Server) curve(c *gin.Context) {
	ps := sim.Apply(s.draft(c))
	crr, watts := curve.ReferencePoint(ps)
	rows := curve.Sample(ps, components(c))

	resp := curveResponse{
		Params:   ps,
		ASource:  sim.ASource(ps),
		RefCrr:   crr,
		RefWatts: watts,
		Rows:     rows,
	}
	if best, ok := optim.FromCurve(rows); ok {
		resp.Optimum = &best
	}
	if p, ok := optim.Stationary(ps); ok {
		resp.Stationary = &p
	}
	s.respond(c, resp)
}

func (s *Server) compare(c *gin.Context) {
	ps := sim.Apply(s.draft(c))
	s.respond(c, curve.SampleComparison(ps))
}

// respond encodes v before any header is written; a value JSON cannot
// represent answers 500.
func (s *Server) respond(c *gin.Context, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot encode response"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.store.List()
	if err != nil {
		s.logger.Error("list runs", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	id := c.Param("id")
	meta, err := s.store.Load(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("load run", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load run"})
		return
	}

	rows, err := s.store.LoadCurve(id)
	if err != nil {
		s.logger.Error("load run curve", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load run"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": meta, "rows": rows})
}
