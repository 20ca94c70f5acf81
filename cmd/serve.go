package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/complexity-sim/complexity-sim/api"
	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/trace"
)

var (
	serveAddr       string        // Listen address
	serveSeed       int64         // Master seed for request streams
	serveLatency    time.Duration // Simulated processing time per analysis
	serveTimeout    time.Duration // Per-request deadline
	serveStrict     bool          // Reject step > max_n
	serveTraceLevel string        // Generation trace verbosity
	serveLogLevel   string        // Log verbosity level
)

// serveCmd exposes the analyzer over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(serveLogLevel)
		if !trace.IsValidTraceLevel(serveTraceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid: none, samples", serveTraceLevel)
		}
		if logrus.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}

		opts := []sim.AnalyzerOption{
			sim.WithLatency(serveLatency),
			sim.WithTraceLevel(trace.TraceLevel(serveTraceLevel)),
		}
		if serveStrict {
			opts = append(opts, sim.WithStrictSettings())
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		analyzer := sim.NewAnalyzer(serveSeed, opts...)
		srv := api.NewServer(analyzer, api.NewMetrics(reg), serveTimeout)
		logrus.Infof("Starting analyzer: seed=%d latency=%v timeout=%v strict=%v trace=%s",
			analyzer.Seed(), serveLatency, serveTimeout, serveStrict, serveTraceLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := listenAndServe(ctx, serveAddr, srv.Router(reg)); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

// listenAndServe runs handler on addr until ctx is done, then drains
// in-flight requests for up to five seconds.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 42, "Seed for the noise streams")
	serveCmd.Flags().DurationVar(&serveLatency, "latency", sim.DefaultLatency, "Simulated processing time per analysis")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 30*time.Second, "Per-request deadline (0 disables)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Reject step > max_n instead of returning no samples")
	serveCmd.Flags().StringVar(&serveTraceLevel, "trace", string(trace.TraceLevelNone), "Generation trace level (none, samples)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
