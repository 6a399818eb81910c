package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/eventatlas/eventatlas/internal/config"
	"github.com/eventatlas/eventatlas/internal/dedupe"
	"github.com/eventatlas/eventatlas/internal/model"
	"github.com/eventatlas/eventatlas/internal/pipeline"
	"github.com/eventatlas/eventatlas/internal/segment"
	"github.com/eventatlas/eventatlas/internal/stats"
)

// EventStore is the store surface the HTTP layer needs.
type EventStore interface {
	Upsert(ctx context.Context, r model.NormalizedRecord, fp model.Fingerprint) (model.EventNode, error)
	FindByFingerprint(ctx context.Context, fp model.Fingerprint) (*model.EventNode, error)
	Snapshot(ctx context.Context) (model.AnalysisSnapshot, error)
	Wipe(ctx context.Context) error
}

type Server struct {
	Store EventStore
	Cfg   *config.Config
}

func NewServer(st EventStore, cfg *config.Config) *Server {
	return &Server{Store: st, Cfg: cfg}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/ingest", s.Ingest)
	r.GET("/analysis/report", s.FullReport)
	r.GET("/analysis/categories", s.Categories)
	r.GET("/analysis/anomalies", s.Anomalies)
	r.GET("/analysis/timeseries", s.TimeSeries)
	r.GET("/analysis/segments", s.PriceSegments)
	r.GET("/analysis/weekdays", s.Weekdays)
	r.POST("/admin/wipe", s.Wipe)
	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type IngestRequest struct {
	Records []model.CandidateRecord `json:"records"`
}

// Ingest runs one ingestion session over the posted batch. The
// deduplication context lives exactly as long as the run and is discarded
// afterwards.
func (s *Server) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session := dedupe.NewSession(s.Store)
	summary := pipeline.Run(c.Request.Context(), session, s.Store, req.Records, pipeline.Config{
		Workers:       s.Cfg.Ingest.Workers,
		StoreTimeout:  s.Cfg.Ingest.StoreTimeout(),
		RetryAttempts: s.Cfg.Ingest.RetryAttempts,
		RetryBackoff:  s.Cfg.Ingest.RetryBackoff(),
	})

	status := http.StatusOK
	if summary.Failed > 0 {
		// Partial failure: the caller should retry the batch; admitted
		// fingerprints of failed records were already released.
		status = http.StatusAccepted
	}
	c.JSON(status, summary)
}

func (s *Server) analysisOptions() stats.Options {
	return stats.Options{
		SkewThreshold: s.Cfg.Analysis.SkewThreshold,
		ZThreshold:    s.Cfg.Analysis.ZThreshold,
		IQRMultiplier: s.Cfg.Analysis.IQRMultiplier,
		Alpha:         s.Cfg.Analysis.Alpha,
	}
}

// snapshot takes a fresh consistent read for one analysis request.
func (s *Server) snapshot(c *gin.Context) (model.AnalysisSnapshot, bool) {
	snap, err := s.Store.Snapshot(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("snapshot failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return model.AnalysisSnapshot{}, false
	}
	return snap, true
}

func (s *Server) FullReport(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"taken_at":     snap.TakenAt,
		"statistics":   stats.Analyze(snap, s.analysisOptions()),
		"segmentation": segment.Build(snap),
	})
}

func (s *Server) Categories(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	report := stats.Analyze(snap, s.analysisOptions())
	c.JSON(http.StatusOK, gin.H{"categories": report.Categories})
}

func (s *Server) Anomalies(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	report := stats.Analyze(snap, s.analysisOptions())
	c.JSON(http.StatusOK, gin.H{"anomalies": report.Anomalies})
}

func (s *Server) TimeSeries(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_series": segment.Build(snap).TimeSeries})
}

func (s *Server) PriceSegments(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"price_segments": segment.Build(snap).PriceSegments})
}

func (s *Server) Weekdays(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"day_of_week": segment.Build(snap).DayOfWeek})
}

func (s *Server) Wipe(c *gin.Context) {
	if err := s.Store.Wipe(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("wipe failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "wiped"})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
