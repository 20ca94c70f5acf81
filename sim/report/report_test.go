package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/trace"
)

func fixedReport() *sim.Report {
	return &sim.Report{
		ID:       "test",
		Settings: sim.NewAnalysisSettings(2000, 1000, 1, sim.AssumptionLinear),
		Seed:     42,
		Stream:   sim.SubsystemNoise,
		Samples: []sim.Sample{
			{N: 1000, TheoreticalRT: 1000, EmpiricalRT: 10.123456, Ratio: 0.01012346, PredictedRT: 10.123456},
			{N: 2000, TheoreticalRT: 2000, EmpiricalRT: 19.5, Ratio: 0.00975, PredictedRT: 20.246912},
		},
		Label: sim.LabelLinear,
		Fit:   &sim.Fit{Slope: 0.9456, RSquared: 1, Points: 2, Label: sim.LabelLinear},
	}
}

func TestWrite_Table_ColumnPrecision(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, fixedReport()))
	out := buf.String()

	assert.Contains(t, out, "Input Size (n)")
	assert.Contains(t, out, "10.12")
	assert.Contains(t, out, "0.0101")
	assert.Contains(t, out, "20.25")
	assert.Contains(t, out, "Estimated Complexity : O(n)")
	assert.Contains(t, out, "Log-Log Slope        : 0.9456")
	assert.NotContains(t, out, "10.123456")
}

func TestWrite_Table_EmptySamples(t *testing.T) {
	r := fixedReport()
	r.Samples = nil
	r.Fit = nil
	r.Label = sim.LabelInsufficientData

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, r))
	assert.Contains(t, buf.String(), "No data available")
	assert.Contains(t, buf.String(), "Insufficient data")
	assert.NotContains(t, buf.String(), "Log-Log Slope")
}

func TestWrite_Table_WithTraceSummary(t *testing.T) {
	r := fixedReport()
	r.Trace = trace.NewGenerationTrace(trace.TraceLevelSamples)
	r.Trace.Record(trace.NoiseRecord{N: 1000, Draws: []float64{1.0}, NoiseFactor: 1.0, ScaleRaised: true})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, r))
	assert.Contains(t, buf.String(), "1 draws, 1 scale raises")
}

func TestWrite_JSON_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, fixedReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "O(n)", decoded["label"])
	samples := decoded["samples"].([]interface{})
	first := samples[0].(map[string]interface{})
	for _, key := range []string{"n", "theoretical_rt", "empirical_rt", "ratio", "predicted_rt"} {
		assert.Contains(t, first, key)
	}
}

func TestWrite_YAML_Settings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, fixedReport()))

	var decoded struct {
		Settings sim.AnalysisSettings `yaml:"settings"`
		Label    string               `yaml:"label"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, fixedReport().Settings, decoded.Settings)
	assert.Equal(t, "O(n)", decoded.Label)
}

func TestWrite_CSV_Rows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, fixedReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"n", "theoretical_rt", "empirical_rt", "ratio", "predicted_rt"}, rows[0])
	assert.Equal(t, "2000", rows[2][0])
	assert.Equal(t, "19.5", rows[2][2])
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), fixedReport())
	require.Error(t, err)
	assert.False(t, IsValidFormat("xml"))
	assert.True(t, IsValidFormat("csv"))
}

func TestWriteComparison_Table(t *testing.T) {
	cmp, err := sim.NewAnalyzer(42).Compare(context.Background(), "", sim.DefaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, FormatTable, cmp))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "n "))
	assert.Contains(t, lines[3], "O(n²)")
}

func TestWriteComparison_CSV(t *testing.T) {
	cmp, err := sim.NewAnalyzer(42).Compare(context.Background(), "", sim.DefaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, FormatCSV, cmp))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "nlogn", rows[2][0])
}
