package trace

// NoiseRecord captures how one sample's noise factor was produced.
type NoiseRecord struct {
	N           int       `json:"n" yaml:"n"`
	Draws       []float64 `json:"draws" yaml:"draws"`               // uniform factors in [0.8, 1.2), one per run
	Drift       float64   `json:"drift" yaml:"drift"`               // assumption-specific multiplier at N
	NoiseFactor float64   `json:"noise_factor" yaml:"noise_factor"` // mean(Draws) × Drift
	Ratio       float64   `json:"ratio" yaml:"ratio"`
	Scale       float64   `json:"scale" yaml:"scale"`               // running max ratio after this row
	ScaleRaised bool      `json:"scale_raised" yaml:"scale_raised"` // true when this row set a new maximum
}
