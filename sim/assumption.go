package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ComplexityAssumption names the closed-form growth function a run is
// declared to follow. It selects both the theoretical runtime and the
// drift applied to the synthetic noise.
type ComplexityAssumption string

const (
	AssumptionLinear       ComplexityAssumption = "n"
	AssumptionLinearithmic ComplexityAssumption = "nlogn"
	AssumptionQuadratic    ComplexityAssumption = "n2"

	// DefaultAssumption is used for empty or unrecognized assumptions.
	DefaultAssumption = AssumptionLinearithmic
)

// ErrUnknownAssumption is returned when parsing a name outside the registry.
var ErrUnknownAssumption = errors.New("unknown complexity assumption")

// validAssumptions is the registry of accepted assumption names.
var validAssumptions = map[ComplexityAssumption]bool{
	AssumptionLinear:       true,
	AssumptionLinearithmic: true,
	AssumptionQuadratic:    true,
}

// IsValidAssumption reports whether name is a recognized assumption.
func IsValidAssumption(name string) bool {
	return validAssumptions[ComplexityAssumption(name)]
}

// ValidAssumptionNames returns the sorted list of accepted names.
func ValidAssumptionNames() []string {
	names := make([]string, 0, len(validAssumptions))
	for a := range validAssumptions {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// Assumptions returns every supported assumption in growth order.
func Assumptions() []ComplexityAssumption {
	return []ComplexityAssumption{AssumptionLinear, AssumptionLinearithmic, AssumptionQuadratic}
}

// ParseComplexityAssumption converts a user-supplied name. Surrounding
// whitespace and case are ignored. The empty string maps to DefaultAssumption.
func ParseComplexityAssumption(name string) (ComplexityAssumption, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return DefaultAssumption, nil
	}
	a := ComplexityAssumption(trimmed)
	if !validAssumptions[a] {
		return "", fmt.Errorf("%w %q; valid: %s", ErrUnknownAssumption, name, strings.Join(ValidAssumptionNames(), ", "))
	}
	return a, nil
}

// TheoreticalRuntime evaluates the assumption's growth function at n.
// Unknown assumptions fall back to n·log2(n). Under nlogn, n = 1 yields 0.
func (a ComplexityAssumption) TheoreticalRuntime(n int) float64 {
	x := float64(n)
	switch a {
	case AssumptionLinear:
		return x
	case AssumptionQuadratic:
		return x * x
	default:
		return x * math.Log2(x)
	}
}

// Drift returns the multiplier applied to a raw noise draw at input size n,
// emulating measurement drift across the sampled range:
//   - n:     1 + 0.1·ln(n/step), growing mildly with n
//   - nlogn: 1 + 0.05·sin(π·n/maxN), zero deviation at both ends
//   - n2:    1 − 0.1·exp(−n/maxN), suppressed for small n
//
// Unrecognized assumptions get no drift.
func (a ComplexityAssumption) Drift(n, step, maxN int) float64 {
	x := float64(n)
	switch a {
	case AssumptionLinear:
		return 1 + 0.1*math.Log(x/float64(step))
	case AssumptionLinearithmic:
		return 1 + 0.05*math.Sin(x/float64(maxN)*math.Pi)
	case AssumptionQuadratic:
		return 1 - 0.1*math.Exp(-x/float64(maxN))
	default:
		return 1
	}
}

// ExpectedLabel is the label the estimator should produce for noiseless
// data following this assumption.
func (a ComplexityAssumption) ExpectedLabel() ComplexityLabel {
	switch a {
	case AssumptionLinear:
		return LabelLinear
	case AssumptionQuadratic:
		return LabelQuadratic
	default:
		return LabelLinearithmic
	}
}

func (a ComplexityAssumption) String() string {
	return string(a)
}
