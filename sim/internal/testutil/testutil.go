// Package testutil provides shared test infrastructure for the complexity
// simulator: float assertions and deterministic noise sources used across
// sim/ and its sub-packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// SequenceSource replays a fixed list of uniform draws, cycling when
// exhausted. The zero value always returns 0.
type SequenceSource struct {
	Values []float64
	calls  int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Float64 returns the next value in the sequence.
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.calls%len(s.Values)]
	s.calls++
	return v
}

// Calls reports how many draws have been taken.
func (s *SequenceSource) Calls() int {
	return s.calls
}
