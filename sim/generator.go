package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complexity-sim/complexity-sim/sim/trace"
)

// Noise model constants. A raw draw is uniform in [NoiseFloor, NoiseFloor+NoiseSpan).
const (
	NoiseFloor = 0.8
	NoiseSpan  = 0.4
	// RuntimeScale converts a dimensionless complexity value into ms-like units.
	RuntimeScale = 0.01
)

var (
	// ErrInvalidRange is returned for non-positive maxN or step, and for
	// step > maxN when the generator runs in strict mode.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidRuns is returned when fewer than one run per size is requested.
	ErrInvalidRuns = errors.New("invalid run count")
)

// Generator synthesizes performance samples for a declared assumption.
//
// Thread-safety: NOT thread-safe when its NoiseSource is not (as with
// *rand.Rand). Use one Generator per goroutine.
type Generator struct {
	noise  NoiseSource
	strict bool
	trace  *trace.GenerationTrace
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithStrictRange makes step > maxN an ErrInvalidRange instead of an
// empty result.
func WithStrictRange() GeneratorOption {
	return func(g *Generator) { g.strict = true }
}

// WithTrace attaches a trace that receives one record per generated sample.
func WithTrace(gt *trace.GenerationTrace) GeneratorOption {
	return func(g *Generator) { g.trace = gt }
}

// NewGenerator creates a Generator drawing noise from src. A nil src falls
// back to a time-seeded source, which makes output non-reproducible.
func NewGenerator(src NoiseSource, opts ...GeneratorOption) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Generator{noise: src}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces one sample per n in {step, 2·step, …, ≤ maxN} with a
// single noise draw per row.
func (g *Generator) Generate(maxN, step int, a ComplexityAssumption) ([]Sample, error) {
	return g.GenerateRuns(maxN, step, 1, a)
}

// GenerateRuns is Generate with each row's noise factor averaged over runs
// independent draws. With runs == 1 it is exactly Generate.
//
// The running maximum ratio that scales PredictedRT is local to this call.
func (g *Generator) GenerateRuns(maxN, step, runs int, a ComplexityAssumption) ([]Sample, error) {
	if err := checkRange(maxN, step, g.strict); err != nil {
		return nil, err
	}
	if runs < 1 {
		return nil, fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidRuns, runs)
	}

	count := maxN / step
	samples := make([]Sample, 0, count)
	scale := 0.0

	for k := 1; k <= count; k++ {
		n := k * step
		theoretical := a.TheoreticalRuntime(n)
		drift := a.Drift(n, step, maxN)

		var draws []float64
		if g.trace.Enabled() {
			draws = make([]float64, 0, runs)
		}
		sum := 0.0
		for r := 0; r < runs; r++ {
			d := NoiseFloor + g.noise.Float64()*NoiseSpan
			sum += d
			if draws != nil {
				draws = append(draws, d)
			}
		}
		noiseFactor := sum / float64(runs) * drift

		empirical := theoretical * noiseFactor * RuntimeScale
		// nlogn at n = 1 has a zero theoretical runtime; report a zero ratio
		// rather than 0/0 so the row stays serializable.
		ratio := 0.0
		if theoretical != 0 {
			ratio = empirical / theoretical
		}
		raised := ratio > scale
		if raised {
			scale = ratio
		}

		samples = append(samples, Sample{
			N:             n,
			TheoreticalRT: theoretical,
			EmpiricalRT:   empirical,
			Ratio:         ratio,
			PredictedRT:   scale * theoretical,
		})
		g.trace.Record(trace.NoiseRecord{
			N:           n,
			Draws:       draws,
			Drift:       drift,
			NoiseFactor: noiseFactor,
			Ratio:       ratio,
			Scale:       scale,
			ScaleRaised: raised,
		})
	}

	logrus.Debugf("generated %d samples (maxN=%d, step=%d, runs=%d, assumption=%s, scale=%.6f)",
		len(samples), maxN, step, runs, a, scale)
	return samples, nil
}

// checkRange rejects ranges that would loop forever or take ln(0).
func checkRange(maxN, step int, strict bool) error {
	if maxN <= 0 || step <= 0 {
		return fmt.Errorf("%w: maxN and step must be positive, got maxN=%d step=%d", ErrInvalidRange, maxN, step)
	}
	if strict && step > maxN {
		return fmt.Errorf("%w: step %d exceeds maxN %d", ErrInvalidRange, step, maxN)
	}
	return nil
}
