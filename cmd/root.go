package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/report"
	"github.com/complexity-sim/complexity-sim/sim/trace"
)

// analysisOptions holds the flags shared by run and compare.
type analysisOptions struct {
	seed         int64         // Master seed for noise streams
	logLevel     string        // Log verbosity level
	maxN         int           // Largest input size
	step         int           // Input size increment
	runs         int           // Draws averaged per input size
	assumption   string        // Growth model name (n, nlogn, n2)
	configPath   string        // Optional YAML settings file
	codeFile     string        // Algorithm source file (not executed)
	templateName string        // Built-in algorithm template
	latency      time.Duration // Simulated processing time
	strict       bool          // Reject step > max-n
	format       string        // Output format
	traceLevel   string        // Generation trace verbosity
	server       string        // Remote API base URL; empty runs locally
}

var (
	runOpts     analysisOptions
	compareOpts analysisOptions
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "complexity-sim",
	Short: "Synthetic runtime samples and log-log complexity estimation",
}

// runCmd generates samples under one assumption and estimates their complexity
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate samples for one growth model and estimate its complexity",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(runOpts.logLevel)

		code, settings, err := resolveRun(cmd, &runOpts)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !report.IsValidFormat(runOpts.format) {
			logrus.Fatalf("Invalid format %q; valid: table, json, yaml, csv", runOpts.format)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var rep *sim.Report
		if runOpts.server != "" {
			rep, err = NewAPIClient(runOpts.server).Analyze(ctx, code, settings)
		} else {
			rep, err = newAnalyzer(&runOpts).Analyze(ctx, code, settings)
		}
		if err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}
		if err := report.Write(os.Stdout, report.Format(runOpts.format), rep); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

func newAnalyzer(opts *analysisOptions) *sim.Analyzer {
	aopts := []sim.AnalyzerOption{
		sim.WithLatency(opts.latency),
		sim.WithTraceLevel(trace.TraceLevel(opts.traceLevel)),
	}
	if opts.strict {
		aopts = append(aopts, sim.WithStrictSettings())
	}
	return sim.NewAnalyzer(opts.seed, aopts...)
}

// addAnalysisFlags registers the flags run and compare have in common.
func addAnalysisFlags(cmd *cobra.Command, opts *analysisOptions) {
	defaults := sim.DefaultSettings()
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "Seed for the noise streams")
	cmd.Flags().StringVar(&opts.logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().IntVar(&opts.maxN, "max-n", defaults.MaxN, "Largest input size")
	cmd.Flags().IntVar(&opts.step, "step", defaults.Step, "Input size increment")
	cmd.Flags().IntVar(&opts.runs, "runs", defaults.Runs, "Noise draws averaged per input size (1-20)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML settings file; explicit flags override it")
	cmd.Flags().StringVar(&opts.codeFile, "code-file", "", "Algorithm source file (recorded, never executed)")
	cmd.Flags().StringVar(&opts.templateName, "template", "", "Built-in algorithm template (see `templates`)")
	cmd.Flags().DurationVar(&opts.latency, "latency", 0, "Simulated processing time before results")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject step > max-n instead of returning no samples")
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatTable), "Output format (table, json, yaml, csv)")
	cmd.Flags().StringVar(&opts.traceLevel, "trace", string(trace.TraceLevelNone), "Generation trace level (none, samples)")
	cmd.Flags().StringVar(&opts.server, "server", "", "Base URL of a running `serve` instance; empty analyzes locally")
}

// init sets up CLI flags and subcommands
func init() {
	addAnalysisFlags(runCmd, &runOpts)
	runCmd.Flags().StringVar(&runOpts.assumption, "assumption", string(sim.DefaultAssumption), "Growth model (n, nlogn, n2)")

	addAnalysisFlags(compareCmd, &compareOpts)

	rootCmd.AddCommand(runCmd, compareCmd, templatesCmd, serveCmd)
}
