// Package report renders analysis results for terminals and files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/trace"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

var validFormats = map[Format]bool{
	FormatTable: true,
	FormatJSON:  true,
	FormatYAML:  true,
	FormatCSV:   true,
}

// IsValidFormat reports whether name is a supported format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r *sim.Report) error {
	switch format {
	case FormatTable, "":
		return writeTable(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, r.Samples)
	default:
		return fmt.Errorf("unknown report format %q; valid: table, json, yaml, csv", format)
	}
}

// WriteComparison renders one summary line per assumption, or the full
// reports for structured formats.
func WriteComparison(w io.Writer, format Format, c *sim.Comparison) error {
	switch format {
	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Assumption\tEstimated\tSlope\tR²\tBest Shape")
		for _, r := range c.Reports {
			slope, r2, shape := "-", "-", "-"
			if r.Fit != nil {
				slope = strconv.FormatFloat(r.Fit.Slope, 'f', 4, 64)
				r2 = strconv.FormatFloat(r.Fit.RSquared, 'f', 4, 64)
			}
			if r.Shape != nil {
				shape = string(r.Shape.Best.Label)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Settings.ComplexityAssumption, r.Label, slope, r2, shape)
		}
		return tw.Flush()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(c)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"assumption", "label", "slope", "r_squared"}); err != nil {
			return err
		}
		for _, r := range c.Reports {
			slope, r2 := "", ""
			if r.Fit != nil {
				slope = strconv.FormatFloat(r.Fit.Slope, 'g', -1, 64)
				r2 = strconv.FormatFloat(r.Fit.RSquared, 'g', -1, 64)
			}
			if err := cw.Write([]string{string(r.Settings.ComplexityAssumption), string(r.Label), slope, r2}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown report format %q; valid: table, json, yaml, csv", format)
	}
}

// writeTable mirrors the results table: runtimes to 2 places, ratio to 4.
func writeTable(w io.Writer, r *sim.Report) error {
	fmt.Fprintln(w, "=== Detailed Results ===")
	if len(r.Samples) == 0 {
		fmt.Fprintln(w, "No data available")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Input Size (n)\tTheoretical Runtime\tEmpirical Runtime (ms)\tRatio\tPredicted Runtime\t")
		for _, s := range r.Samples {
			fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.4f\t%.2f\t\n", s.N, s.TheoreticalRT, s.EmpiricalRT, s.Ratio, s.PredictedRT)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Assumption           : %s\n", r.Settings.ComplexityAssumption)
	fmt.Fprintf(w, "Estimated Complexity : %s\n", r.Label)
	if r.Fit != nil {
		fmt.Fprintf(w, "Log-Log Slope        : %.4f (R² %.4f)\n", r.Fit.Slope, r.Fit.RSquared)
	}
	if r.Shape != nil {
		fmt.Fprintf(w, "Best Shape Match     : %s\n", r.Shape.Best.Label)
	}
	if stats := sim.SummarizeRatios(r.Samples); stats.Count > 0 {
		fmt.Fprintf(w, "Ratio mean/p90/max   : %.4f / %.4f / %.4f\n", stats.Mean, stats.P90, stats.Max)
	}
	if r.Trace != nil {
		ts := trace.Summarize(r.Trace)
		fmt.Fprintf(w, "Noise factor min/max : %.4f / %.4f (%d draws, %d scale raises)\n",
			ts.MinNoiseFactor, ts.MaxNoiseFactor, ts.TotalDraws, ts.ScaleRaises)
	}
	_, err := fmt.Fprintf(w, "Seed / Stream        : %d / %s\n", r.Seed, r.Stream)
	return err
}

func writeCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "theoretical_rt", "empirical_rt", "ratio", "predicted_rt"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.TheoreticalRT, 'g', -1, 64),
			strconv.FormatFloat(s.EmpiricalRT, 'g', -1, 64),
			strconv.FormatFloat(s.Ratio, 'g', -1, 64),
			strconv.FormatFloat(s.PredictedRT, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
