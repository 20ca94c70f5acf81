package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxRuns caps the number of averaged draws per input size.
const MaxRuns = 20

// AnalysisSettings configures one analysis run.
type AnalysisSettings struct {
	MaxN                 int                  `yaml:"max_n" json:"max_n" validate:"gte=1"`
	Step                 int                  `yaml:"step" json:"step" validate:"gte=1"`
	Runs                 int                  `yaml:"runs" json:"runs" validate:"gte=1,lte=20"`
	ComplexityAssumption ComplexityAssumption `yaml:"complexity_assumption" json:"complexity_assumption" validate:"omitempty,oneof=n nlogn n2"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() AnalysisSettings {
	return AnalysisSettings{
		MaxN:                 10000,
		Step:                 1000,
		Runs:                 5,
		ComplexityAssumption: DefaultAssumption,
	}
}

// NewAnalysisSettings creates AnalysisSettings. An empty assumption
// becomes DefaultAssumption.
func NewAnalysisSettings(maxN, step, runs int, a ComplexityAssumption) AnalysisSettings {
	if a == "" {
		a = DefaultAssumption
	}
	return AnalysisSettings{MaxN: maxN, Step: step, Runs: runs, ComplexityAssumption: a}
}

// SampleCount is the number of rows these settings produce.
func (s AnalysisSettings) SampleCount() int {
	if s.MaxN <= 0 || s.Step <= 0 {
		return 0
	}
	return s.MaxN / s.Step
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field. Range violations wrap ErrInvalidRange,
// run counts wrap ErrInvalidRuns and assumptions wrap ErrUnknownAssumption,
// so callers can branch with errors.Is.
func (s AnalysisSettings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	var kind error
	for _, fe := range verrs {
		switch fe.Field() {
		case "MaxN", "Step":
			kind = firstErr(kind, ErrInvalidRange)
			msgs = append(msgs, fmt.Sprintf("%s must be a positive integer, got %v", yamlName(fe.Field()), fe.Value()))
		case "Runs":
			kind = firstErr(kind, ErrInvalidRuns)
			msgs = append(msgs, fmt.Sprintf("runs must be in [1, %d], got %v", MaxRuns, fe.Value()))
		case "ComplexityAssumption":
			kind = firstErr(kind, ErrUnknownAssumption)
			msgs = append(msgs, fmt.Sprintf("complexity_assumption %q; valid: %s", fe.Value(), strings.Join(ValidAssumptionNames(), ", ")))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	if kind == nil {
		return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %s", kind, strings.Join(msgs, "; "))
}

// LoadSettings reads a YAML settings file. Uses strict parsing:
// unrecognized keys (typos) are rejected. Fields absent from the file keep
// their DefaultSettings values.
func LoadSettings(path string) (AnalysisSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnalysisSettings{}, fmt.Errorf("reading settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings over DefaultSettings and validates them.
func ParseSettings(data []byte) (AnalysisSettings, error) {
	settings := DefaultSettings()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return AnalysisSettings{}, fmt.Errorf("parsing settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return AnalysisSettings{}, err
	}
	return settings, nil
}

func yamlName(field string) string {
	switch field {
	case "MaxN":
		return "max_n"
	case "Step":
		return "step"
	default:
		return strings.ToLower(field)
	}
}

func firstErr(cur, next error) error {
	if cur != nil {
		return cur
	}
	return next
}
