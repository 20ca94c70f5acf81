package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ComplexityLabel is the human-readable outcome of an estimate.
type ComplexityLabel string

const (
	LabelLinear           ComplexityLabel = "O(n)"
	LabelLinearithmic     ComplexityLabel = "O(n log n)"
	LabelQuadratic        ComplexityLabel = "O(n²)"
	LabelInsufficientData ComplexityLabel = "Insufficient data"
)

func (l ComplexityLabel) String() string {
	return string(l)
}

// Slope thresholds separating the three labels. A slope below
// LinearSlopeCeiling is O(n); below QuadraticSlopeFloor is O(n log n);
// anything else is O(n²).
const (
	LinearSlopeCeiling  = 1.2
	QuadraticSlopeFloor = 1.8
)

var (
	// ErrInsufficientData means fewer than two usable observations.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerateFit means every observation has the same input size.
	ErrDegenerateFit = errors.New("degenerate fit: all input sizes identical")
)

// Fit is the ordinary least-squares fit of ln(empiricalRT) against ln(n),
// i.e. the power law empiricalRT ≈ e^Intercept · n^Slope.
type Fit struct {
	Slope     float64         `json:"slope" yaml:"slope"`
	Intercept float64         `json:"intercept" yaml:"intercept"`
	RSquared  float64         `json:"r_squared" yaml:"r_squared"`
	Points    int             `json:"points" yaml:"points"`
	Label     ComplexityLabel `json:"label" yaml:"label"`
}

// Predict evaluates the fitted power law at n.
func (f Fit) Predict(n int) float64 {
	return math.Exp(f.Intercept) * math.Pow(float64(n), f.Slope)
}

func (f Fit) String() string {
	return fmt.Sprintf("%s (slope=%.4f, R²=%.4f, points=%d)", f.Label, f.Slope, f.RSquared, f.Points)
}

// Classify maps a log-log slope to a label.
func Classify(slope float64) ComplexityLabel {
	switch {
	case slope < LinearSlopeCeiling:
		return LabelLinear
	case slope < QuadraticSlopeFloor:
		return LabelLinearithmic
	default:
		return LabelQuadratic
	}
}

// EstimateComplexity labels the growth of samples' empirical runtimes.
// Fewer than two usable samples, or samples that all share one input size,
// yield LabelInsufficientData rather than an error. Rows whose log is
// undefined (n or empiricalRT <= 0, e.g. nlogn at n = 1) are dropped from
// the fit instead of turning the slope into NaN and the label into O(n²).
func EstimateComplexity(samples []Sample) ComplexityLabel {
	fit, err := FitPowerLaw(samples)
	if err != nil {
		return LabelInsufficientData
	}
	return fit.Label
}

// FitPowerLaw runs the log-log regression over samples' (n, empiricalRT)
// pairs. Observations with n <= 0 or empiricalRT <= 0 have no logarithm and
// are skipped before the two-point minimum is checked.
func FitPowerLaw(samples []Sample) (Fit, error) {
	xs, ys := logPairs(samples)
	m := len(xs)
	if m < 2 {
		return Fit{}, fmt.Errorf("%w: need at least 2 positive observations, got %d", ErrInsufficientData, m)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	mf := float64(m)
	denom := mf*sumXX - sumX*sumX
	if allEqual(xs) || denom == 0 {
		return Fit{}, fmt.Errorf("%w (%d observations)", ErrDegenerateFit, m)
	}

	slope := (mf*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / mf

	return Fit{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  stat.RSquared(xs, ys, nil, intercept, slope),
		Points:    m,
		Label:     Classify(slope),
	}, nil
}

// logPairs returns ln(n) and ln(empiricalRT) for every sample where both
// logarithms are finite.
func logPairs(samples []Sample) (xs, ys []float64) {
	xs = make([]float64, 0, len(samples))
	ys = make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.N <= 0 || !(s.EmpiricalRT > 0) || math.IsInf(s.EmpiricalRT, 0) {
			continue
		}
		xs = append(xs, math.Log(float64(s.N)))
		ys = append(ys, math.Log(s.EmpiricalRT))
	}
	return xs, ys
}

func allEqual(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
