package trace

import "math"

// TraceSummary aggregates statistics from a GenerationTrace.
type TraceSummary struct {
	TotalSamples    int
	TotalDraws      int
	MeanNoiseFactor float64
	MinNoiseFactor  float64
	MaxNoiseFactor  float64
	ScaleRaises     int // rows that raised the running max ratio
	FinalScale      float64
}

// Summarize computes aggregate statistics from a GenerationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(gt *GenerationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if gt == nil || len(gt.Records) == 0 {
		return summary
	}

	summary.TotalSamples = len(gt.Records)
	summary.MinNoiseFactor = math.Inf(1)
	summary.MaxNoiseFactor = math.Inf(-1)
	total := 0.0
	for _, r := range gt.Records {
		summary.TotalDraws += len(r.Draws)
		total += r.NoiseFactor
		summary.MinNoiseFactor = math.Min(summary.MinNoiseFactor, r.NoiseFactor)
		summary.MaxNoiseFactor = math.Max(summary.MaxNoiseFactor, r.NoiseFactor)
		if r.ScaleRaised {
			summary.ScaleRaises++
		}
	}
	summary.MeanNoiseFactor = total / float64(len(gt.Records))
	summary.FinalScale = gt.Records[len(gt.Records)-1].Scale

	return summary
}
