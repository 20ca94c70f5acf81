package sim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/complexity-sim/complexity-sim/sim/trace"
)

// DefaultLatency is the simulated processing time the interactive page
// showed before results appeared. The core defaults to no latency.
const DefaultLatency = 1500 * time.Millisecond

// Report is the complete outcome of one analysis.
type Report struct {
	ID          string                 `json:"id" yaml:"id"`
	Settings    AnalysisSettings       `json:"settings" yaml:"settings"`
	Seed        int64                  `json:"seed" yaml:"seed"`
	Stream      string                 `json:"stream" yaml:"stream"`
	Samples     []Sample               `json:"samples" yaml:"samples"`
	Label       ComplexityLabel        `json:"label" yaml:"label"`
	Fit         *Fit                   `json:"fit,omitempty" yaml:"fit,omitempty"`
	Shape       *ShapeFit              `json:"shape,omitempty" yaml:"shape,omitempty"`
	Trace       *trace.GenerationTrace `json:"trace,omitempty" yaml:"trace,omitempty"`
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
}

// Analyzer is the entry point the CLI and HTTP API use. Every call draws
// from its own RNG stream derived from the seed, so concurrent calls never
// share noise state or a running maximum ratio. Safe for concurrent use.
type Analyzer struct {
	key        AnalysisKey
	latency    time.Duration
	strict     bool
	traceLevel trace.TraceLevel
	next       atomic.Uint64
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLatency makes each RunAlgorithm wait d before generating, emulating
// analysis time. The wait is cancelled with the caller's context.
func WithLatency(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) { a.latency = d }
}

// WithStrictSettings rejects step > maxN instead of returning no samples.
func WithStrictSettings() AnalyzerOption {
	return func(a *Analyzer) { a.strict = true }
}

// WithTraceLevel attaches a generation trace to every Report.
func WithTraceLevel(level trace.TraceLevel) AnalyzerOption {
	return func(a *Analyzer) { a.traceLevel = level }
}

// NewAnalyzer creates an Analyzer whose streams derive from seed.
func NewAnalyzer(seed int64, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{key: NewAnalysisKey(seed), traceLevel: trace.TraceLevelNone}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Seed returns the master seed.
func (a *Analyzer) Seed() int64 {
	return int64(a.key)
}

// nextStream returns the subsystem name for the next call. The first call
// uses SubsystemNoise so a single seeded run matches a Generator built on
// rand.NewSource(seed).
func (a *Analyzer) nextStream() string {
	id := a.next.Add(1) - 1
	if id == 0 {
		return SubsystemNoise
	}
	return SubsystemAnalysis(id)
}

func (a *Analyzer) source(stream string) NoiseSource {
	return NewPartitionedRNG(a.key).ForSubsystem(stream)
}

// RunAlgorithm generates samples for settings. code is the submitted
// algorithm source. It is accepted for interface symmetry with a real
// executor and is never run or parsed, so it has no effect on the numbers.
func (a *Analyzer) RunAlgorithm(ctx context.Context, code string, settings AnalysisSettings) ([]Sample, error) {
	samples, _, _, err := a.run(ctx, code, settings, a.nextStream())
	return samples, err
}

// EstimateComplexity labels samples. See the package-level EstimateComplexity.
func (a *Analyzer) EstimateComplexity(samples []Sample) ComplexityLabel {
	return EstimateComplexity(samples)
}

// Analyze runs the generator and the estimator and bundles the result.
func (a *Analyzer) Analyze(ctx context.Context, code string, settings AnalysisSettings) (*Report, error) {
	return a.analyzeStream(ctx, code, settings, a.nextStream())
}

func (a *Analyzer) analyzeStream(ctx context.Context, code string, settings AnalysisSettings, stream string) (*Report, error) {
	samples, gt, settings, err := a.run(ctx, code, settings, stream)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.NewString(),
		Settings:    settings,
		Seed:        int64(a.key),
		Stream:      stream,
		Samples:     samples,
		Label:       LabelInsufficientData,
		GeneratedAt: time.Now().UTC(),
	}
	if gt.Enabled() {
		report.Trace = gt
	}
	if fit, err := FitPowerLaw(samples); err == nil {
		report.Fit = &fit
		report.Label = fit.Label
	} else {
		logrus.Debugf("analysis %s: %v", report.ID, err)
	}
	if shape, err := FitShapes(samples); err == nil {
		report.Shape = &shape
	}

	logrus.Infof("analysis %s: %d samples, assumption=%s, label=%s",
		report.ID, len(samples), settings.ComplexityAssumption, report.Label)
	return report, nil
}

func (a *Analyzer) run(ctx context.Context, code string, settings AnalysisSettings, stream string) ([]Sample, *trace.GenerationTrace, AnalysisSettings, error) {
	if settings.ComplexityAssumption == "" {
		settings.ComplexityAssumption = DefaultAssumption
	}
	if err := a.checkSettings(settings); err != nil {
		return nil, nil, settings, err
	}
	logrus.Debugf("source text (%d bytes) is not executed; runtimes are synthesized", len(code))

	if err := a.wait(ctx); err != nil {
		return nil, nil, settings, fmt.Errorf("waiting for analysis: %w", err)
	}

	gt := trace.NewGenerationTrace(a.traceLevel)
	opts := []GeneratorOption{WithTrace(gt)}
	if a.strict {
		opts = append(opts, WithStrictRange())
	}
	gen := NewGenerator(a.source(stream), opts...)
	samples, err := gen.GenerateRuns(settings.MaxN, settings.Step, settings.Runs, settings.ComplexityAssumption)
	if err != nil {
		return nil, nil, settings, err
	}
	return samples, gt, settings, nil
}

// checkSettings validates settings, plus the step > maxN rule in strict mode.
// An empty assumption is accepted and defaulted by the caller.
func (a *Analyzer) checkSettings(settings AnalysisSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if a.strict {
		return checkRange(settings.MaxN, settings.Step, true)
	}
	return nil
}

func (a *Analyzer) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
