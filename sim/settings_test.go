package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, AnalysisSettings{MaxN: 10000, Step: 1000, Runs: 5, ComplexityAssumption: AssumptionLinearithmic}, s)
	assert.Equal(t, 10, s.SampleCount())
}

func TestNewAnalysisSettings_FieldEquivalence(t *testing.T) {
	got := NewAnalysisSettings(5000, 250, 3, "")
	want := AnalysisSettings{MaxN: 5000, Step: 250, Runs: 3, ComplexityAssumption: DefaultAssumption}
	assert.Equal(t, want, got)
}

func TestAnalysisSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       AnalysisSettings
		wantErr error
	}{
		{"zero max_n", NewAnalysisSettings(0, 100, 1, AssumptionLinear), ErrInvalidRange},
		{"negative step", NewAnalysisSettings(1000, -1, 1, AssumptionLinear), ErrInvalidRange},
		{"zero runs", NewAnalysisSettings(1000, 100, 0, AssumptionLinear), ErrInvalidRuns},
		{"too many runs", NewAnalysisSettings(1000, 100, 21, AssumptionLinear), ErrInvalidRuns},
		{"unknown assumption", NewAnalysisSettings(1000, 100, 1, "cubic"), ErrUnknownAssumption},
		{"step exceeds max_n is allowed", NewAnalysisSettings(500, 1000, 1, AssumptionLinear), nil},
		{"max runs", NewAnalysisSettings(1000, 100, MaxRuns, AssumptionQuadratic), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalysisSettings_Validate_MessageNamesField(t *testing.T) {
	err := NewAnalysisSettings(0, 100, 1, AssumptionLinear).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_n")
}

func TestLoadSettings_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `
max_n: 20000
step: 500
runs: 3
complexity_assumption: n2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, NewAnalysisSettings(20000, 500, 3, AssumptionQuadratic), s)
}

func TestLoadSettings_PartialYAML_KeepsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("step: 250\n"))
	require.NoError(t, err)
	assert.Equal(t, 10000, s.MaxN)
	assert.Equal(t, 250, s.Step)
	assert.Equal(t, 5, s.Runs)
	assert.Equal(t, DefaultAssumption, s.ComplexityAssumption)
}

func TestLoadSettings_EmptyFile_Defaults(t *testing.T) {
	s, err := ParseSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_UnknownKey_ReturnsError(t *testing.T) {
	_, err := ParseSettings([]byte("max_n: 1000\nstepp: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stepp")
}

func TestLoadSettings_InvalidValue_ReturnsError(t *testing.T) {
	_, err := ParseSettings([]byte("complexity_assumption: exponential\n"))
	assert.ErrorIs(t, err, ErrUnknownAssumption)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
