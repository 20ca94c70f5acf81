// Package sim provides the core of the complexity simulator: a synthetic
// performance-sample generator and a log-log complexity estimator.
//
// # Reading Guide
//
// Start with these files:
//   - assumption.go: the declared complexity assumptions (n, nlogn, n2),
//     their closed-form runtime and the drift applied to measurement noise
//   - generator.go: produces one Sample row per input size
//   - estimator.go: fits ln(empiricalRT) against ln(n) and labels the slope
//   - analyzer.go: the facade the CLI and HTTP API call
//
// Submitted source text is never executed. Runtimes are synthesized from the
// declared assumption plus noise drawn from an injected NoiseSource, so a
// fixed seed reproduces a run bit-for-bit.
//
// # Sub-packages
//   - sim/trace/: optional per-row noise trace
//   - sim/templates/: algorithm source templates
//   - sim/report/: table, JSON, YAML and CSV rendering of a Report
package sim
