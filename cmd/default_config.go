package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/templates"
	"github.com/complexity-sim/complexity-sim/sim/trace"
)

// resolveRun layers the settings for one invocation: defaults, then the
// --config file, then the template's assumption, then every flag the user
// set explicitly. Flags left at their defaults never overwrite file values.
// The returned settings are validated.
func resolveRun(cmd *cobra.Command, opts *analysisOptions) (string, sim.AnalysisSettings, error) {
	settings := sim.DefaultSettings()
	if opts.configPath != "" {
		loaded, err := sim.LoadSettings(opts.configPath)
		if err != nil {
			return "", sim.AnalysisSettings{}, fmt.Errorf("config %s: %w", opts.configPath, err)
		}
		settings = loaded
		logrus.Debugf("loaded settings from %s: %+v", opts.configPath, settings)
	}

	code := templates.Default().Code
	if opts.templateName != "" {
		tpl, err := templates.Lookup(opts.templateName)
		if err != nil {
			return "", sim.AnalysisSettings{}, err
		}
		code = tpl.Code
		settings.ComplexityAssumption = tpl.Assumption
	}
	if opts.codeFile != "" {
		data, err := os.ReadFile(opts.codeFile)
		if err != nil {
			return "", sim.AnalysisSettings{}, fmt.Errorf("reading code file: %w", err)
		}
		code = string(data)
	}

	flags := cmd.Flags()
	if flags.Changed("max-n") {
		settings.MaxN = opts.maxN
	}
	if flags.Changed("step") {
		settings.Step = opts.step
	}
	if flags.Changed("runs") {
		settings.Runs = opts.runs
	}
	if flags.Lookup("assumption") != nil && flags.Changed("assumption") {
		a, err := sim.ParseComplexityAssumption(opts.assumption)
		if err != nil {
			return "", sim.AnalysisSettings{}, err
		}
		settings.ComplexityAssumption = a
	}
	if !trace.IsValidTraceLevel(opts.traceLevel) {
		return "", sim.AnalysisSettings{}, fmt.Errorf("invalid trace level %q; valid: none, samples", opts.traceLevel)
	}

	if err := settings.Validate(); err != nil {
		return "", sim.AnalysisSettings{}, err
	}
	return code, settings, nil
}
