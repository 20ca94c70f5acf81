package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/complexity-sim/complexity-sim/sim/internal/testutil"
)

// curve builds noiseless samples for n = 1000, 2000, …, 10000.
func curve(f func(n float64) float64) []Sample {
	samples := make([]Sample, 0, 10)
	for n := 1000; n <= 10000; n += 1000 {
		samples = append(samples, Sample{N: n, EmpiricalRT: f(float64(n))})
	}
	return samples
}

func TestEstimateComplexity_FewerThanTwoSamples(t *testing.T) {
	assert.Equal(t, LabelInsufficientData, EstimateComplexity(nil))
	assert.Equal(t, LabelInsufficientData, EstimateComplexity([]Sample{}))
	assert.Equal(t, LabelInsufficientData, EstimateComplexity([]Sample{{N: 1000, EmpiricalRT: 10}}))
}

func TestEstimateComplexity_NoiselessCurves(t *testing.T) {
	tests := []struct {
		name string
		f    func(n float64) float64
		want ComplexityLabel
	}{
		{"linear", func(n float64) float64 { return n }, LabelLinear},
		{"quadratic", func(n float64) float64 { return n * n }, LabelQuadratic},
		{"n to the 1.5", func(n float64) float64 { return math.Pow(n, 1.5) }, LabelLinearithmic},
		{"linear scaled to ms", func(n float64) float64 { return n * 0.01 }, LabelLinear},
		{"cubic", func(n float64) float64 { return n * n * n }, LabelQuadratic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateComplexity(curve(tt.f)))
		})
	}
}

func TestEstimateComplexity_NLogN_SlopeBelowLinearCeiling(t *testing.T) {
	// GIVEN a noiseless n·log2(n) curve over 1000..10000
	samples := curve(func(n float64) float64 { return n * math.Log2(n) })

	// WHEN fitted on log-log axes
	fit, err := FitPowerLaw(samples)
	require.NoError(t, err)

	// THEN the slope is 1 + ~1/ln(n), which sits under the 1.2 ceiling
	assert.InDelta(t, 1.12, fit.Slope, 0.02)
	assert.Equal(t, LabelLinear, EstimateComplexity(samples))

	// AND the shape comparison still identifies n log n
	shape, err := FitShapes(samples)
	require.NoError(t, err)
	assert.Equal(t, AssumptionLinearithmic, shape.Best.Assumption)
	assert.Equal(t, LabelLinearithmic, shape.Best.Label)
}

func TestEstimateComplexity_AllSameN_Insufficient(t *testing.T) {
	samples := []Sample{
		{N: 500, EmpiricalRT: 1},
		{N: 500, EmpiricalRT: 2},
		{N: 500, EmpiricalRT: 3},
	}
	assert.Equal(t, LabelInsufficientData, EstimateComplexity(samples))

	_, err := FitPowerLaw(samples)
	assert.ErrorIs(t, err, ErrDegenerateFit)
}

func TestFitPowerLaw_SkipsNonPositiveObservations(t *testing.T) {
	samples := []Sample{
		{N: 1, EmpiricalRT: 0}, // nlogn at n = 1
		{N: 2, EmpiricalRT: 4},
		{N: 0, EmpiricalRT: 5},
		{N: 4, EmpiricalRT: 16},
	}
	fit, err := FitPowerLaw(samples)
	require.NoError(t, err)
	assert.Equal(t, 2, fit.Points)
	testutil.AssertFloat64Equal(t, "slope", 2, fit.Slope, 1e-12)

	_, err = FitPowerLaw(samples[:3])
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitPowerLaw_PerfectPowerLaw(t *testing.T) {
	samples := curve(func(n float64) float64 { return 3 * math.Pow(n, 1.7) })
	fit, err := FitPowerLaw(samples)
	require.NoError(t, err)

	testutil.AssertFloat64Equal(t, "slope", 1.7, fit.Slope, 1e-9)
	testutil.AssertFloat64Equal(t, "intercept", math.Log(3), fit.Intercept, 1e-9)
	testutil.AssertFloat64Equal(t, "r²", 1, fit.RSquared, 1e-9)
	testutil.AssertFloat64Equal(t, "predict", 3*math.Pow(5000, 1.7), fit.Predict(5000), 1e-9)
	assert.Equal(t, 10, fit.Points)
	assert.Equal(t, LabelLinearithmic, fit.Label)
}

func TestFitPowerLaw_MatchesGonumRegression(t *testing.T) {
	// GIVEN noisy generated samples
	samples, err := NewGenerator(rand.New(rand.NewSource(3))).Generate(30000, 700, AssumptionQuadratic)
	require.NoError(t, err)

	// WHEN fitted by both the closed form and gonum
	fit, err := FitPowerLaw(samples)
	require.NoError(t, err)
	xs, ys := logPairs(samples)
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	// THEN they agree
	testutil.AssertFloat64Equal(t, "slope", beta, fit.Slope, 1e-9)
	testutil.AssertFloat64Equal(t, "intercept", alpha, fit.Intercept, 1e-9)
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		slope float64
		want  ComplexityLabel
	}{
		{0.5, LabelLinear},
		{1.0, LabelLinear},
		{1.1999, LabelLinear},
		{1.2, LabelLinearithmic},
		{1.5, LabelLinearithmic},
		{1.7999, LabelLinearithmic},
		{1.8, LabelQuadratic},
		{2.0, LabelQuadratic},
		{3.0, LabelQuadratic},
	}
	for _, tt := range tests {
		if got := Classify(tt.slope); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.slope, got, tt.want)
		}
	}
}

func TestEstimateComplexity_GeneratedData(t *testing.T) {
	// Five averaged runs keep the slope noise well inside the label bands.
	tests := []struct {
		assumption ComplexityAssumption
		want       ComplexityLabel
	}{
		{AssumptionLinear, LabelLinear},
		{AssumptionQuadratic, LabelQuadratic},
	}
	for _, tt := range tests {
		t.Run(string(tt.assumption), func(t *testing.T) {
			g := NewGenerator(rand.New(rand.NewSource(42)))
			samples, err := g.GenerateRuns(10000, 1000, 5, tt.assumption)
			require.NoError(t, err)
			assert.Equal(t, tt.want, EstimateComplexity(samples))
		})
	}
}

func TestFitShapes_NoiselessCurves(t *testing.T) {
	tests := []struct {
		name string
		f    func(n float64) float64
		want ComplexityAssumption
	}{
		{"linear", func(n float64) float64 { return 0.01 * n }, AssumptionLinear},
		{"nlogn", func(n float64) float64 { return 0.01 * n * math.Log2(n) }, AssumptionLinearithmic},
		{"quadratic", func(n float64) float64 { return 0.01 * n * n }, AssumptionQuadratic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := FitShapes(curve(tt.f))
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape.Best.Assumption)
			assert.InDelta(t, 0.01, shape.Best.Constant, 1e-9)
			assert.Len(t, shape.Scores, 3)
		})
	}
}

func TestFitShapes_Degenerate(t *testing.T) {
	_, err := FitShapes([]Sample{{N: 8, EmpiricalRT: 1}, {N: 8, EmpiricalRT: 2}})
	assert.ErrorIs(t, err, ErrDegenerateFit)

	_, err = FitShapes([]Sample{{N: 8, EmpiricalRT: 1}})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSamplesFromObservations(t *testing.T) {
	samples := SamplesFromObservations([]int{10, 20, 30}, []float64{1, 4})
	require.Len(t, samples, 2)
	assert.Equal(t, Sample{N: 20, EmpiricalRT: 4}, samples[1])

	ns, rts := EmpiricalColumn(samples)
	assert.Equal(t, []int{10, 20}, ns)
	assert.Equal(t, []float64{1, 4}, rts)
}
