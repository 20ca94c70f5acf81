package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Comparison holds one report per assumption, generated side by side over
// the same range.
type Comparison struct {
	Reports []*Report `json:"reports" yaml:"reports"`
}

// Label returns the label estimated for assumption a, or
// LabelInsufficientData when a was not part of the comparison.
func (c *Comparison) Label(a ComplexityAssumption) ComplexityLabel {
	for _, r := range c.Reports {
		if r.Settings.ComplexityAssumption == a {
			return r.Label
		}
	}
	return LabelInsufficientData
}

// Compare analyzes settings under every assumption concurrently. Each
// assumption draws from its own stream, so the goroutines share no state.
// The assumption in settings is ignored. Settings are validated once before
// any goroutine starts. Reports come back in Assumptions() order.
func (a *Analyzer) Compare(ctx context.Context, code string, settings AnalysisSettings) (*Comparison, error) {
	shared := settings
	shared.ComplexityAssumption = ""
	if err := a.checkSettings(shared); err != nil {
		return nil, err
	}
	base := a.nextStream()
	assumptions := Assumptions()
	reports := make([]*Report, len(assumptions))

	g, gCtx := errgroup.WithContext(ctx)
	for i, assumption := range assumptions {
		s := settings
		s.ComplexityAssumption = assumption
		stream := base + "/" + SubsystemAssumption(assumption)
		g.Go(func() error {
			r, err := a.analyzeStream(gCtx, code, s, stream)
			if err != nil {
				return fmt.Errorf("assumption %s: %w", assumption, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Comparison{Reports: reports}, nil
}
