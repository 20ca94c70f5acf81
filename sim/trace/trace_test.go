package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"samples", true},
		{"decisions", false},
		{"SAMPLES", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestGenerationTrace_Record_RespectsLevel(t *testing.T) {
	// GIVEN a trace at level none
	off := NewGenerationTrace(TraceLevelNone)
	// WHEN a record is added
	off.Record(NoiseRecord{N: 1000})
	// THEN nothing is kept
	if len(off.Records) != 0 {
		t.Errorf("level none kept %d records, want 0", len(off.Records))
	}

	on := NewGenerationTrace(TraceLevelSamples)
	on.Record(NoiseRecord{N: 1000})
	on.Record(NoiseRecord{N: 2000})
	if len(on.Records) != 2 {
		t.Errorf("level samples kept %d records, want 2", len(on.Records))
	}
}

func TestGenerationTrace_NilIsDisabled(t *testing.T) {
	var gt *GenerationTrace
	if gt.Enabled() {
		t.Error("nil trace reports enabled")
	}
	gt.Record(NoiseRecord{N: 1}) // must not panic
}
