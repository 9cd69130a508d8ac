// Package ipv reconciles an equity forward priced from cost of carry against
// the forward implied by a same-strike option pair, and classifies the spread
// against a tolerance policy.
package ipv

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/pricing"
)

// Status is the reconciliation verdict.
type Status string

const (
	StatusPass      Status = "PASS"
	StatusFail      Status = "FAIL"
	StatusNoOptions Status = "N/A (no options provided)"
)

// PassRule states the verdict rule exactly as it is applied.
const PassRule = "|ΔF| <= tol_eff (tol_eff = max(tol_abs, tol_bps * F_carry / 10000))"

// Tolerances echoes the thresholds a result was judged against. TolEff is
// resolved per run and absent when no options were provided.
type Tolerances struct {
	TolAbs  float64  `json:"tol_abs"`
	TolBps  float64  `json:"tol_bps"`
	TolEff  *float64 `json:"tol_eff"`
	QGapBps float64  `json:"tol_q_gap_bps"`
}

// Assumptions documents the conventions baked into the formulas.
type Assumptions struct {
	Compounding string `json:"compounding"`
	NetCarry    string `json:"net_carry"`
}

// Result is one reconciliation outcome. Parity-side diagnostics are pointers:
// nil means the options leg was absent (or, for the implied-carry fields, the
// inversion was undefined), and they serialize as JSON null.
type Result struct {
	RunID              string      `json:"run_id"`
	GeneratedAt        time.Time   `json:"generated_at"`
	Status             Status      `json:"status"`
	PassRule           string      `json:"pass_rule"`
	BaselineForward    float64     `json:"baseline_forward"`
	ParityForward      *float64    `json:"market_implied_forward"`
	SpreadAbs          *float64    `json:"abs_spread"`
	SpreadBpsVsForward *float64    `json:"rel_spread_bps_vs_fbase"`
	SpreadBpsVsSpot    *float64    `json:"rel_spread_bps_vs_spot"`
	NetCarryInput      float64     `json:"net_carry_input"`
	NetCarryInputPct   float64     `json:"net_carry_input_pct"`
	NetCarryImplied    *float64    `json:"net_carry_implied"`
	NetCarryImpliedPct *float64    `json:"net_carry_implied_pct"`
	CarryGapBps        *float64    `json:"net_carry_gap_bps"`
	Passed             *bool       `json:"pass_eff"`
	Tolerances         Tolerances  `json:"tolerances"`
	Hints              []string    `json:"root_cause_hints"`
	Assumptions        Assumptions `json:"assumptions"`
}

// Checker runs reconciliations under one tolerance policy.
type Checker struct {
	policy *TolerancePolicy
}

// NewChecker creates a checker; a nil policy selects the desk defaults.
func NewChecker(policy *TolerancePolicy) *Checker {
	if policy == nil {
		policy = DefaultTolerancePolicy()
	}
	return &Checker{policy: policy}
}

// Policy returns the tolerance policy this checker applies.
func (c *Checker) Policy() *TolerancePolicy {
	return c.policy
}

// Run reconciles one snapshot. Input violations return an error; numeric
// conditions inside the check (an undefined carry inversion) degrade to
// report caveats instead.
func (c *Checker) Run(in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	baseline := pricing.CarryForward(in.Spot, in.Rate, in.NetCarry, in.TimeToMaturity)

	result := &Result{
		RunID:            uuid.New().String(),
		GeneratedAt:      time.Now().UTC(),
		Status:           StatusNoOptions,
		PassRule:         PassRule,
		BaselineForward:  baseline,
		NetCarryInput:    in.NetCarry,
		NetCarryInputPct: in.NetCarry * 100.0,
		Tolerances: Tolerances{
			TolAbs:  c.policy.TolAbs,
			TolBps:  c.policy.TolBps,
			QGapBps: c.policy.QGapBps,
		},
		Hints: []string{},
		Assumptions: Assumptions{
			Compounding: "continuous",
			NetCarry:    "dividend_yield - repo/borrow",
		},
	}

	if !in.HasOptions() {
		return result, nil
	}

	parity := pricing.ParityImpliedForward(in.Strike, *in.Call, *in.Put, in.Rate, in.TimeToMaturity)
	spread := parity - baseline
	bpsVsForward := (spread / baseline) * 10000.0
	bpsVsSpot := (spread / in.Spot) * 10000.0

	tolEff := c.policy.EffectiveTolerance(baseline)
	passed := math.Abs(spread) <= tolEff

	result.Status = StatusFail
	if passed {
		result.Status = StatusPass
	}
	result.ParityForward = &parity
	result.SpreadAbs = &spread
	result.SpreadBpsVsForward = &bpsVsForward
	result.SpreadBpsVsSpot = &bpsVsSpot
	result.Passed = &passed
	result.Tolerances.TolEff = &tolEff

	// Diagnostic only: a deep net credit pair can push F_parity <= 0, which
	// leaves the inversion undefined but never fails the run.
	var gapBps *float64
	if impliedCarry, err := pricing.ImpliedNetCarry(in.Spot, parity, in.Rate, in.TimeToMaturity); err == nil {
		impliedPct := impliedCarry * 100.0
		gap := (impliedCarry - in.NetCarry) * 10000.0
		result.NetCarryImplied = &impliedCarry
		result.NetCarryImpliedPct = &impliedPct
		result.CarryGapBps = &gap
		gapBps = &gap
	}

	if !passed {
		result.Hints = c.buildHints(spread, gapBps)
	}

	return result, nil
}

// buildHints orders the likely root causes for a breached tolerance, most
// actionable first.
func (c *Checker) buildHints(spread float64, gapBps *float64) []string {
	hints := []string{
		"Timestamp alignment (spot vs options).",
		"Conventions (T, day count, compounding, curve).",
	}

	if spread < 0 {
		hints = append(hints, "Market-implied forward LOWER: check higher dividends / higher borrow-repo / stale spot.")
	} else {
		hints = append(hints, "Market-implied forward HIGHER: check lower dividends / lower borrow-repo / stale options.")
	}

	if gapBps != nil {
		if math.Abs(*gapBps) >= c.policy.QGapBps {
			hints = append(hints, "Dividends / repo-borrow (net carry mismatch).")
		}
	} else {
		hints = append(hints, "Implied net carry not available (invalid inputs or F<=0).")
	}

	hints = append(hints,
		"Settlement & corporate actions (ex-div, specials, splits).",
		"Bid/ask consistency (mid vs executable, stale quotes).",
	)

	return hints
}

// Summary returns a one-line verdict for logs and console output.
func (r *Result) Summary() string {
	switch r.Status {
	case StatusPass:
		return fmt.Sprintf("✅ IPV PASS — ΔF %+.4f within tol_eff %.4f (F_carry %.4f vs F_parity %.4f)",
			*r.SpreadAbs, *r.Tolerances.TolEff, r.BaselineForward, *r.ParityForward)
	case StatusFail:
		return fmt.Sprintf("❌ IPV FAIL — ΔF %+.4f breaches tol_eff %.4f (F_carry %.4f vs F_parity %.4f)",
			*r.SpreadAbs, *r.Tolerances.TolEff, r.BaselineForward, *r.ParityForward)
	default:
		return fmt.Sprintf("IPV N/A — baseline forward %.4f, no options leg to reconcile", r.BaselineForward)
	}
}
