// Package httpserver exposes a small read-only API over the current
// run: health, the metrics snapshot, and recent attempts.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/divwatch/divwatch/internal/model"
)

// MetricsSource supplies the live counters.
type MetricsSource interface {
	Snapshot() model.Snapshot
}

// AttemptSource supplies persisted attempt history.
type AttemptSource interface {
	Recent(limit int) ([]model.Attempt, error)
}

// Server provides the HTTP API for one divwatch run.
type Server struct {
	addr      string
	metrics   MetricsSource
	attempts  AttemptSource // nil when history is disabled
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, metrics MetricsSource, attempts AttemptSource) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:     addr,
		metrics:  metrics,
		attempts: attempts,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/metrics", s.handleMetrics)
	r.GET("/api/attempts", s.handleAttempts)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"uptime":   time.Since(s.startTime).String(),
		"attempts": snap.Total,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap := s.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total":        snap.Total,
		"success":      snap.Success,
		"failure":      snap.Failure,
		"success_rate": snap.SuccessRate,
	})
}

func (s *Server) handleAttempts(c *gin.Context) {
	if s.attempts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	attempts, err := s.attempts.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read attempt history"})
		return
	}

	out := make([]gin.H, 0, len(attempts))
	for _, a := range attempts {
		row := gin.H{
			"timestamp": a.Timestamp,
			"dividend":  a.Dividend,
			"divisor":   a.Divisor,
			"ok":        a.OK,
			"source":    a.Source,
		}
		if a.OK {
			row["result"] = a.Result
		} else {
			row["error_kind"] = a.ErrorKind
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": out,
		"count":    len(out),
	})
}
