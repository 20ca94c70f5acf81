// Package api exposes the analyzer over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/templates"
)

// AnalysisRequest is the body of POST /v1/analyses and POST /v1/compare.
// Settings fields left out of the body keep their defaults. When Code is
// empty and Template names a catalog entry, the template's source is used,
// and its assumption applies unless the body sets one.
type AnalysisRequest struct {
	Code     string               `json:"code"`
	Template string               `json:"template"`
	Settings sim.AnalysisSettings `json:"settings"`
}

// EstimateRequest is the body of POST /v1/estimate. Either Samples or the
// parallel N / EmpiricalRT arrays may be given.
type EstimateRequest struct {
	Samples     []sim.Sample `json:"samples"`
	N           []int        `json:"n"`
	EmpiricalRT []float64    `json:"empirical_rt"`
}

// EstimateResponse is returned by POST /v1/estimate.
type EstimateResponse struct {
	Label sim.ComplexityLabel `json:"label"`
	Fit   *sim.Fit            `json:"fit,omitempty"`
	Shape *sim.ShapeFit       `json:"shape,omitempty"`
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	analyzer *sim.Analyzer
	metrics  *Metrics
	timeout  time.Duration
}

// NewServer creates a Server. A zero timeout leaves request deadlines to
// the client.
func NewServer(analyzer *sim.Analyzer, metrics *Metrics, timeout time.Duration) *Server {
	return &Server{analyzer: analyzer, metrics: metrics, timeout: timeout}
}

// Router builds the gin engine with every route registered. /metrics serves
// the given gatherer.
func (s *Server) Router(gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.GET("/templates", ListTemplates)
	v1.POST("/analyses", s.Analyze)
	v1.POST("/compare", s.Compare)
	v1.POST("/estimate", s.Estimate)
	return router
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListTemplates returns the algorithm template catalog and the default source.
func ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": templates.List(),
		"default":   templates.Default(),
	})
}

// Analyze runs one analysis and returns the full report.
func (s *Server) Analyze(c *gin.Context) {
	code, settings, ok := s.bindAnalysis(c)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	start := time.Now()
	report, err := s.analyzer.Analyze(ctx, code, settings)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.recordSuccess(string(report.Settings.ComplexityAssumption), string(report.Label),
		len(report.Samples), time.Since(start).Seconds())
	c.JSON(http.StatusOK, report)
}

// Compare analyzes the request under every assumption.
func (s *Server) Compare(c *gin.Context) {
	code, settings, ok := s.bindAnalysis(c)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	start := time.Now()
	cmp, err := s.analyzer.Compare(ctx, code, settings)
	if err != nil {
		s.fail(c, err)
		return
	}
	elapsed := time.Since(start).Seconds()
	for _, r := range cmp.Reports {
		s.metrics.recordSuccess(string(r.Settings.ComplexityAssumption), string(r.Label), len(r.Samples), elapsed)
	}
	c.JSON(http.StatusOK, cmp)
}

// Estimate labels caller-supplied observations without generating anything.
func (s *Server) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.recordError("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "bad_request"})
		return
	}
	samples := req.Samples
	if len(samples) == 0 {
		samples = sim.SamplesFromObservations(req.N, req.EmpiricalRT)
	}

	resp := EstimateResponse{Label: sim.EstimateComplexity(samples)}
	if fit, err := sim.FitPowerLaw(samples); err == nil {
		resp.Fit = &fit
	}
	if shape, err := sim.FitShapes(samples); err == nil {
		resp.Shape = &shape
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) bindAnalysis(c *gin.Context) (string, sim.AnalysisSettings, bool) {
	req := AnalysisRequest{Settings: sim.DefaultSettings()}
	req.Settings.ComplexityAssumption = ""
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.recordError("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "bad_request"})
		return "", sim.AnalysisSettings{}, false
	}

	code := req.Code
	if req.Template != "" {
		tpl, err := templates.Lookup(req.Template)
		if err != nil {
			s.metrics.recordError("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "bad_request"})
			return "", sim.AnalysisSettings{}, false
		}
		if code == "" {
			code = tpl.Code
		}
		if req.Settings.ComplexityAssumption == "" {
			req.Settings.ComplexityAssumption = tpl.Assumption
		}
	}
	if req.Settings.ComplexityAssumption == "" {
		req.Settings.ComplexityAssumption = sim.DefaultAssumption
	}
	return code, req.Settings, true
}

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), s.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

// fail maps analyzer errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status, reason := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, sim.ErrInvalidRange):
		status, reason = http.StatusBadRequest, "invalid_range"
	case errors.Is(err, sim.ErrInvalidRuns):
		status, reason = http.StatusBadRequest, "invalid_runs"
	case errors.Is(err, sim.ErrUnknownAssumption):
		status, reason = http.StatusBadRequest, "unknown_assumption"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, reason = http.StatusServiceUnavailable, "cancelled"
	}
	s.metrics.recordError(reason)
	if status == http.StatusInternalServerError {
		logrus.Errorf("analysis failed: %v", err)
	} else {
		logrus.Debugf("analysis rejected (%s): %v", reason, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "reason": reason})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request served")
	}
}
