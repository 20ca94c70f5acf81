// Package trace records how each generated sample's noise was composed.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of generation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSamples captures one NoiseRecord per generated sample.
	TraceLevelSamples TraceLevel = "samples"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelSamples: true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// GenerationTrace collects noise records during one generator call.
// Not safe for concurrent use; attach one trace per call.
type GenerationTrace struct {
	Level   TraceLevel    `json:"level" yaml:"level"`
	Records []NoiseRecord `json:"records" yaml:"records"`
}

// NewGenerationTrace creates a GenerationTrace ready for recording.
func NewGenerationTrace(level TraceLevel) *GenerationTrace {
	return &GenerationTrace{
		Level:   level,
		Records: make([]NoiseRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (gt *GenerationTrace) Enabled() bool {
	return gt != nil && gt.Level == TraceLevelSamples
}

// Record appends a noise record when tracing is enabled.
func (gt *GenerationTrace) Record(rec NoiseRecord) {
	if !gt.Enabled() {
		return
	}
	gt.Records = append(gt.Records, rec)
}
