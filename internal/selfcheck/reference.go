package selfcheck

import (
	"fmt"
	"math"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

// ReferenceSection replays reviewed reconciliations and compares every field
type ReferenceSection struct{}

// NewReferenceSection creates the reference case section
func NewReferenceSection() *ReferenceSection {
	return &ReferenceSection{}
}

// Name returns the section name
func (rs *ReferenceSection) Name() string {
	return "Reference Cases"
}

// Description returns the section description
func (rs *ReferenceSection) Description() string {
	return "Known PASS, FAIL and carry-only snapshots reproduce their reviewed numbers"
}

// RunChecks executes all reference case verifications
func (rs *ReferenceSection) RunChecks() []CheckResult {
	var results []CheckResult

	results = append(results, rs.checkBenchmarkPass())
	results = append(results, rs.checkDeskFail())
	results = append(results, rs.checkCarryOnly())

	return results
}

// checkBenchmarkPass replays the one-year ATM snapshot that sits inside the band
func (rs *ReferenceSection) checkBenchmarkPass() CheckResult {
	check := NewCheckResult("BenchmarkPass", "1y ATM pair reconciles within the default band")

	call, put := 5.20, 3.30
	in := ipv.Inputs{Spot: 100.0, Rate: 0.03, NetCarry: 0.01, TimeToMaturity: 1.0, Strike: 100.0, Call: &call, Put: &put}

	result, err := ipv.NewChecker(nil).Run(in)
	if err != nil {
		return NewFailedCheckResult(check.Name, check.Description, err.Error())
	}

	if result.Status != ipv.StatusPass {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("expected PASS, got %s", result.Status))
	}
	if math.Abs(result.BaselineForward-102.02013400267558) > 1e-9 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("F_carry %.12f departed from reviewed value", result.BaselineForward))
	}
	if math.Abs(*result.ParityForward-101.95786361451168) > 1e-9 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("F_parity %.12f departed from reviewed value", *result.ParityForward))
	}
	if math.Abs(*result.SpreadAbs-(-0.062270388164)) > 1e-9 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("ΔF %.12f departed from reviewed value", *result.SpreadAbs))
	}
	if len(result.Hints) != 0 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("a passing run produced %d hints", len(result.Hints)))
	}

	return check.WithDetails(fmt.Sprintf("ΔF %.6f within tol_eff %.3f", *result.SpreadAbs, *result.Tolerances.TolEff))
}

// checkDeskFail replays the half-year snapshot whose parity forward sits 59 bps low
func (rs *ReferenceSection) checkDeskFail() CheckResult {
	check := NewCheckResult("DeskFail", "0.5y pair breaches the band and flags the carry mismatch")

	call, put := 5.20, 4.80
	in := ipv.Inputs{Spot: 100.0, Rate: 0.03, NetCarry: 0.01, TimeToMaturity: 0.5, Strike: 100.0, Call: &call, Put: &put}

	result, err := ipv.NewChecker(nil).Run(in)
	if err != nil {
		return NewFailedCheckResult(check.Name, check.Description, err.Error())
	}

	if result.Status != ipv.StatusFail {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("expected FAIL, got %s", result.Status))
	}
	if math.Abs(*result.SpreadBpsVsForward-(-59.301162)) > 1e-4 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("spread %.6f bps vs F departed from reviewed value", *result.SpreadBpsVsForward))
	}
	if math.Abs(*result.CarryGapBps-118.955383) > 1e-4 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("carry gap %.6f bps departed from reviewed value", *result.CarryGapBps))
	}
	if len(result.Hints) != 6 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("expected 6 hints, got %d", len(result.Hints)))
	}
	if result.Hints[3] != "Dividends / repo-borrow (net carry mismatch)." {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("carry-mismatch hint missing, slot 3 held %q", result.Hints[3]))
	}

	return check.WithDetails("ΔF -59.30 bps, carry gap +119.0 bps over the 50 bps threshold")
}

// checkCarryOnly replays a snapshot without an options leg
func (rs *ReferenceSection) checkCarryOnly() CheckResult {
	check := NewCheckResult("CarryOnly", "Missing options leg degrades to an N/A report")

	in := ipv.Inputs{Spot: 100.0, Rate: 0.03, NetCarry: 0.01, TimeToMaturity: 1.0, Strike: 100.0}

	result, err := ipv.NewChecker(nil).Run(in)
	if err != nil {
		return NewFailedCheckResult(check.Name, check.Description, err.Error())
	}

	if result.Status != ipv.StatusNoOptions {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("expected N/A status, got %s", result.Status))
	}
	if result.ParityForward != nil || result.SpreadAbs != nil || result.Passed != nil {
		return NewFailedCheckResult(check.Name, check.Description,
			"parity diagnostics should be absent without an options leg")
	}
	if math.Abs(result.BaselineForward-102.02013400267558) > 1e-9 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("F_carry %.12f departed from reviewed value", result.BaselineForward))
	}

	return check.WithDetails("Baseline forward still reported for the desk")
}
