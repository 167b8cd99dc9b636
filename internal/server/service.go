// Package server exposes a computed report over a read-only HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/ridewrap/internal/geo"
	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
)

// Config controls the HTTP API.
type Config struct {
	Addr         string
	HotspotLevel int
	HotspotLimit int
}

// Status is served at /v1/status.
type Status struct {
	StartedAt   time.Time `json:"started_at"`
	DataDir     string    `json:"data_dir"`
	Files       int       `json:"files"`
	ParseErrors int       `json:"parse_errors"`
	FileErrors  int       `json:"file_errors"`
	CacheHit    bool      `json:"cache_hit"`
	RunID       string    `json:"run_id,omitempty"`
	Years       []string  `json:"years"`
	Requests    int64     `json:"requests"`
}

// HotspotResponse is served at /v1/years/:year/hotspots.
type HotspotResponse struct {
	Year     string        `json:"year"`
	Kind     string        `json:"kind"`
	Level    int           `json:"level"`
	Hotspots []geo.Hotspot `json:"hotspots"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service serves one report. The report is computed before the service is
// created and never changes afterwards.
type Service struct {
	cfg       Config
	result    *pipeline.ReportResult
	startedAt time.Time
	requests  atomic.Int64
}

// New returns a service over res.
func New(cfg Config, res *pipeline.ReportResult) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.HotspotLevel <= 0 {
		cfg.HotspotLevel = geo.DefaultLevel
	}
	if cfg.HotspotLimit <= 0 {
		cfg.HotspotLimit = 10
	}
	return &Service{
		cfg:       cfg,
		result:    res,
		startedAt: time.Now(),
	}
}

// Handler returns the gin engine with every route registered.
func (s *Service) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/report", s.handleReport)
		v1.GET("/years", s.handleYears)
		v1.GET("/years/:year", s.handleYear)
		v1.GET("/years/:year/hotspots", s.handleHotspots)
	}
	return r
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("ridewrap serving %d buckets on http://%s", len(s.result.Report.Years), s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.requests.Add(1)
		log.Printf("[%s] %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, Status{
		StartedAt:   s.startedAt,
		DataDir:     s.result.DataDir,
		Files:       s.result.TotalFiles,
		ParseErrors: s.result.ParseErrors,
		FileErrors:  s.result.FileErrors,
		CacheHit:    s.result.CacheHit,
		RunID:       s.result.RunID,
		Years:       s.result.Report.Labels(),
		Requests:    s.requests.Load(),
	})
}

func (s *Service) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.result.Report)
}

func (s *Service) handleYears(c *gin.Context) {
	c.JSON(http.StatusOK, s.result.Report.Labels())
}

// lookup writes a 404 and returns false when the :year bucket is missing.
func (s *Service) lookup(c *gin.Context) (string, model.YearSummary, bool) {
	label := c.Param("year")
	ys, ok := s.result.Report.Year(label)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("no data for %q (available: %s)", label, strings.Join(s.result.Report.Labels(), ", ")),
		})
		return "", model.YearSummary{}, false
	}
	if strings.EqualFold(label, model.LifetimeLabel) {
		label = model.LifetimeLabel
	}
	return label, ys, true
}

func (s *Service) handleYear(c *gin.Context) {
	if _, ys, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, ys)
	}
}

func (s *Service) handleHotspots(c *gin.Context) {
	label, ys, ok := s.lookup(c)
	if !ok {
		return
	}

	kind := c.DefaultQuery("kind", "pickup")
	var points [][2]float64
	switch kind {
	case "pickup":
		points = ys.Trips.HeatmapData.Pickup
	case "dropoff":
		points = ys.Trips.HeatmapData.Dropoff
	default:
		c.JSON(http.StatusBadRequest, errorResponse{Error: "kind must be pickup or dropoff"})
		return
	}

	limit := s.cfg.HotspotLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, HotspotResponse{
		Year:     label,
		Kind:     kind,
		Level:    s.cfg.HotspotLevel,
		Hotspots: geo.Hotspots(points, s.cfg.HotspotLevel, limit),
	})
}
