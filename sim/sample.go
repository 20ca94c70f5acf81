package sim

// Sample is one row of an analysis result table.
type Sample struct {
	N             int     `json:"n" yaml:"n"`                           // input size
	TheoreticalRT float64 `json:"theoretical_rt" yaml:"theoretical_rt"` // growth function at N
	EmpiricalRT   float64 `json:"empirical_rt" yaml:"empirical_rt"`     // synthetic measurement, ms-like units
	Ratio         float64 `json:"ratio" yaml:"ratio"`                   // EmpiricalRT / TheoreticalRT
	PredictedRT   float64 `json:"predicted_rt" yaml:"predicted_rt"`     // running max ratio × TheoreticalRT
}

// Scale returns the proportionality constant used for PredictedRT, i.e. the
// running maximum ratio at this row. Zero when TheoreticalRT is zero.
func (s Sample) Scale() float64 {
	if s.TheoreticalRT == 0 {
		return 0
	}
	return s.PredictedRT / s.TheoreticalRT
}

// EmpiricalColumn extracts the (n, empiricalRT) pairs the estimator consumes.
func EmpiricalColumn(samples []Sample) (ns []int, rts []float64) {
	ns = make([]int, len(samples))
	rts = make([]float64, len(samples))
	for i, s := range samples {
		ns[i] = s.N
		rts[i] = s.EmpiricalRT
	}
	return ns, rts
}

// SamplesFromObservations builds estimator input from raw (n, runtime)
// pairs. Only N and EmpiricalRT are populated. The shorter slice bounds
// the result.
func SamplesFromObservations(ns []int, rts []float64) []Sample {
	m := len(ns)
	if len(rts) < m {
		m = len(rts)
	}
	out := make([]Sample, m)
	for i := 0; i < m; i++ {
		out[i] = Sample{N: ns[i], EmpiricalRT: rts[i]}
	}
	return out
}
