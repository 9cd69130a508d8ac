package ipv

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// TolerancePolicy holds the thresholds the reconciliation verdict and its
// diagnostics are judged against.
type TolerancePolicy struct {
	TolAbs        float64 `yaml:"tol_abs" json:"tol_abs"`               // Absolute floor in currency units
	TolBps        float64 `yaml:"tol_bps" json:"tol_bps"`               // Relative band in bps of the baseline forward
	QGapBps       float64 `yaml:"q_gap_bps" json:"q_gap_bps"`           // Net-carry gap that triggers the dividends/borrow hint
	TopHints      int     `yaml:"top_hints" json:"top_hints"`           // Hints shown in the text report
	RoundDecimals int     `yaml:"round_decimals" json:"round_decimals"` // Price rounding in the JSON view
}

// DefaultTolerancePolicy returns the desk defaults: a 20 cent absolute floor
// that widens to 5 bps of the baseline forward on larger underlyings.
func DefaultTolerancePolicy() *TolerancePolicy {
	return &TolerancePolicy{
		TolAbs:        0.20,
		TolBps:        5.0,
		QGapBps:       50.0,
		TopHints:      3,
		RoundDecimals: 6,
	}
}

// EffectiveTolerance resolves the verdict band for a given baseline forward,
// taking the looser of the absolute and relative thresholds:
//
//	tol_eff = max(tol_abs, |tol_bps| * F_carry / 10000)
func (p *TolerancePolicy) EffectiveTolerance(baselineForward float64) float64 {
	rel := math.Abs(p.TolBps) * baselineForward / 10000.0
	if p.TolAbs > rel {
		return p.TolAbs
	}
	return rel
}

// Validate ensures the policy values are usable before a check runs.
func (p *TolerancePolicy) Validate() error {
	if p.TolAbs < 0 {
		return fmt.Errorf("invalid tol_abs: %.4f (must be >= 0)", p.TolAbs)
	}
	if math.Abs(p.TolBps) > 10000 {
		return fmt.Errorf("invalid tol_bps: %.2f (must be between -10000 and 10000)", p.TolBps)
	}
	if p.TolAbs == 0 && p.TolBps == 0 {
		return fmt.Errorf("tolerance band is zero: set tol_abs or tol_bps")
	}
	if p.QGapBps <= 0 || p.QGapBps > 10000 {
		return fmt.Errorf("invalid q_gap_bps: %.1f (must be 0-10000)", p.QGapBps)
	}
	if p.TopHints < 0 || p.TopHints > 20 {
		return fmt.Errorf("invalid top_hints: %d (must be 0-20)", p.TopHints)
	}
	if p.RoundDecimals < 0 || p.RoundDecimals > 12 {
		return fmt.Errorf("invalid round_decimals: %d (must be 0-12)", p.RoundDecimals)
	}
	return nil
}

// LoadTolerancePolicy reads a policy from a YAML file. Keys absent from the
// file keep their default values, so partial overrides are fine.
func LoadTolerancePolicy(path string) (*TolerancePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tolerance policy %s: %w", path, err)
	}

	policy := DefaultTolerancePolicy()
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("failed to parse tolerance policy %s: %w", path, err)
	}

	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tolerance policy %s: %w", path, err)
	}

	return policy, nil
}
