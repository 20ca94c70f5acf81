package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RatioStats summarizes the scaling ratios of one sample set.
type RatioStats struct {
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	P50   float64 `json:"p50" yaml:"p50"`
	P90   float64 `json:"p90" yaml:"p90"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// SummarizeRatios computes ratio statistics. Rows with a zero theoretical
// runtime carry no ratio and are skipped. Returns the zero value when no
// row qualifies.
func SummarizeRatios(samples []Sample) RatioStats {
	ratios := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.TheoreticalRT > 0 {
			ratios = append(ratios, s.Ratio)
		}
	}
	if len(ratios) == 0 {
		return RatioStats{}
	}
	sort.Float64s(ratios)
	return RatioStats{
		Count: len(ratios),
		Mean:  stat.Mean(ratios, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, ratios, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, ratios, nil),
		Min:   ratios[0],
		Max:   ratios[len(ratios)-1],
	}
}
