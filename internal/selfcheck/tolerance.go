package selfcheck

import (
	"fmt"
	"math"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

// ToleranceSection verifies the effective tolerance rule and the verdict edge
type ToleranceSection struct{}

// NewToleranceSection creates the tolerance rule section
func NewToleranceSection() *ToleranceSection {
	return &ToleranceSection{}
}

// Name returns the section name
func (ts *ToleranceSection) Name() string {
	return "Tolerance Rule"
}

// Description returns the section description
func (ts *ToleranceSection) Description() string {
	return "tol_eff takes the looser band and the verdict boundary is inclusive"
}

// RunChecks executes all tolerance rule verifications
func (ts *ToleranceSection) RunChecks() []CheckResult {
	var results []CheckResult

	results = append(results, ts.checkAbsoluteFloorDominates())
	results = append(results, ts.checkRelativeBandDominates())
	results = append(results, ts.checkNegativeBpsMagnitude())
	results = append(results, ts.checkBoundaryInclusive())

	return results
}

func (ts *ToleranceSection) checkAbsoluteFloorDominates() CheckResult {
	check := NewCheckResult("AbsoluteFloorDominates", "Small forwards fall back to the absolute floor")

	policy := ipv.DefaultTolerancePolicy()
	got := policy.EffectiveTolerance(100.0)
	if got != 0.20 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("tol_eff for F=100 is %.6f, expected 0.20", got))
	}

	return check.WithDetails("5 bps of 100 is 0.05; the 0.20 floor wins")
}

func (ts *ToleranceSection) checkRelativeBandDominates() CheckResult {
	check := NewCheckResult("RelativeBandDominates", "Large forwards widen the band through tol_bps")

	policy := ipv.DefaultTolerancePolicy()
	got := policy.EffectiveTolerance(10000.0)
	if got != 5.0 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("tol_eff for F=10000 is %.6f, expected 5.0", got))
	}

	return check.WithDetails("5 bps of 10000 is 5.0; the floor is left behind")
}

func (ts *ToleranceSection) checkNegativeBpsMagnitude() CheckResult {
	check := NewCheckResult("NegativeBpsMagnitude", "A mis-signed tol_bps contributes through its magnitude")

	policy := ipv.DefaultTolerancePolicy()
	policy.TolBps = -5.0
	got := policy.EffectiveTolerance(10000.0)
	if got != 5.0 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("tol_eff with tol_bps=-5 is %.6f, expected 5.0", got))
	}

	return check
}

func (ts *ToleranceSection) checkBoundaryInclusive() CheckResult {
	check := NewCheckResult("BoundaryInclusive", "A spread exactly on tol_eff passes")

	// r=0 keeps every term exact in binary: F_carry=100, F_parity=100.25,
	// |ΔF| == tol_abs == 0.25.
	policy := ipv.DefaultTolerancePolicy()
	policy.TolAbs = 0.25
	call, put := 1.25, 1.00
	in := ipv.Inputs{Spot: 100.0, Rate: 0.0, NetCarry: 0.0, TimeToMaturity: 1.0, Strike: 100.0, Call: &call, Put: &put}

	result, err := ipv.NewChecker(policy).Run(in)
	if err != nil {
		return NewFailedCheckResult(check.Name, check.Description, err.Error())
	}
	if result.Status != ipv.StatusPass {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("boundary spread %.6f vs tol_eff %.6f gave %s", *result.SpreadAbs, *result.Tolerances.TolEff, result.Status))
	}
	if math.Abs(*result.SpreadAbs) != *result.Tolerances.TolEff {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("construction drifted: |ΔF| %.17f != tol_eff %.17f", math.Abs(*result.SpreadAbs), *result.Tolerances.TolEff))
	}

	return check.WithDetails("|ΔF| == tol_eff == 0.25 returns PASS")
}
