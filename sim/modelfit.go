package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ModelScore is how well one assumption's growth function explains a curve.
// Residual is the variance of ln(empiricalRT) − ln(theoreticalRT(n)) across
// points: zero when the curve is exactly C·f(n) for some constant C.
type ModelScore struct {
	Assumption ComplexityAssumption `json:"assumption" yaml:"assumption"`
	Label      ComplexityLabel      `json:"label" yaml:"label"`
	Constant   float64              `json:"constant" yaml:"constant"`
	Residual   float64              `json:"residual" yaml:"residual"`
	Points     int                  `json:"points" yaml:"points"`
}

// ShapeFit ranks every assumption against a curve. Best is the entry with
// the smallest residual.
type ShapeFit struct {
	Best   ModelScore   `json:"best" yaml:"best"`
	Scores []ModelScore `json:"scores" yaml:"scores"`
}

// FitShapes compares the curve against each growth function directly instead
// of reading a log-log slope. It separates n·log n from n where the slope
// thresholds cannot: over typical ranges n·log n has a log-log slope near
// 1.1, which Classify labels O(n).
//
// Points where either logarithm is undefined are skipped per model, so the
// nlogn model ignores n = 1. Each model needs two distinct input sizes.
func FitShapes(samples []Sample) (ShapeFit, error) {
	var out ShapeFit
	for _, a := range Assumptions() {
		score, err := scoreShape(samples, a)
		if err != nil {
			return ShapeFit{}, err
		}
		out.Scores = append(out.Scores, score)
		if len(out.Scores) == 1 || score.Residual < out.Best.Residual {
			out.Best = score
		}
	}
	return out, nil
}

func scoreShape(samples []Sample, a ComplexityAssumption) (ModelScore, error) {
	logs := make([]float64, 0, len(samples))
	var first, distinct int
	for _, s := range samples {
		f := a.TheoreticalRuntime(s.N)
		if s.N <= 0 || !(f > 0) || !(s.EmpiricalRT > 0) {
			continue
		}
		if len(logs) == 0 {
			first = s.N
		} else if s.N != first {
			distinct++
		}
		logs = append(logs, math.Log(s.EmpiricalRT)-math.Log(f))
	}
	if len(logs) < 2 {
		return ModelScore{}, fmt.Errorf("%w: %s model has %d usable points", ErrInsufficientData, a, len(logs))
	}
	if distinct == 0 {
		return ModelScore{}, fmt.Errorf("%w (%s model)", ErrDegenerateFit, a)
	}
	mean, variance := stat.PopMeanVariance(logs, nil)
	return ModelScore{
		Assumption: a,
		Label:      a.ExpectedLabel(),
		Constant:   math.Exp(mean),
		Residual:   variance,
		Points:     len(logs),
	}, nil
}
