package selfcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/pricing"
)

// PricingSection verifies the forward formulas against closed-form identities
type PricingSection struct{}

// NewPricingSection creates the pricing identity section
func NewPricingSection() *PricingSection {
	return &PricingSection{}
}

// Name returns the section name
func (ps *PricingSection) Name() string {
	return "Pricing Identities"
}

// Description returns the section description
func (ps *PricingSection) Description() string {
	return "Carry and parity forwards satisfy their closed-form identities"
}

// RunChecks executes all pricing identity verifications
func (ps *PricingSection) RunChecks() []CheckResult {
	var results []CheckResult

	results = append(results, ps.checkCarryBenchmark())
	results = append(results, ps.checkShortTenorConvergence())
	results = append(results, ps.checkParityPinsStrike())
	results = append(results, ps.checkImpliedCarryRoundTrip())
	results = append(results, ps.checkImpliedCarryDomain())

	return results
}

// checkCarryBenchmark verifies the baseline forward against a precomputed value
func (ps *PricingSection) checkCarryBenchmark() CheckResult {
	check := NewCheckResult("CarryBenchmark", "F_carry reproduces the precomputed reference value")

	got := pricing.CarryForward(100.0, 0.03, 0.01, 1.0)
	want := 102.02013400267558
	if math.Abs(got-want) > 1e-9 {
		return NewFailedCheckResult(check.Name, check.Description,
			fmt.Sprintf("CarryForward(100, 0.03, 0.01, 1) = %.12f, expected %.12f", got, want))
	}

	return check.WithDetails(fmt.Sprintf("F_carry = %.6f", got))
}

// checkShortTenorConvergence verifies F -> S as T -> 0
func (ps *PricingSection) checkShortTenorConvergence() CheckResult {
	check := NewCheckResult("ShortTenorConvergence", "Carry forward converges to spot as the tenor vanishes")

	spot := 123.45
	for _, ttm := range []float64{1e-4, 1e-6, 1e-8} {
		got := pricing.CarryForward(spot, 0.05, 0.02, ttm)
		if math.Abs(got-spot) > spot*ttm*0.05 {
			return NewFailedCheckResult(check.Name, check.Description,
				fmt.Sprintf("T=%g: forward %.10f drifted from spot %.2f", ttm, got, spot))
		}
	}

	return check.WithDetails("Forward within drift bound of spot down to T=1e-8")
}

// checkParityPinsStrike verifies F_parity == K when call and put premiums match
func (ps *PricingSection) checkParityPinsStrike() CheckResult {
	check := NewCheckResult("ParityPinsStrike", "Equal premiums pin the parity forward to the strike")

	for _, strike := range []float64{10.0, 100.0, 2500.0} {
		for _, premium := range []float64{0.0, 1.5, 40.0} {
			got := pricing.ParityImpliedForward(strike, premium, premium, 0.04, 0.75)
			if got != strike {
				return NewFailedCheckResult(check.Name, check.Description,
					fmt.Sprintf("K=%.2f C=P=%.2f: parity forward %.10f != strike", strike, premium, got))
			}
		}
	}

	return check.WithDetails("F_parity == K exactly for C == P across the grid")
}

// checkImpliedCarryRoundTrip verifies the inversion recovers the input carry
func (ps *PricingSection) checkImpliedCarryRoundTrip() CheckResult {
	check := NewCheckResult("ImpliedCarryRoundTrip", "Inverting the carry forward recovers the input net carry")

	for _, rate := range []float64{-0.01, 0.0, 0.03, 0.10} {
		for _, netCarry := range []float64{-0.02, 0.0, 0.015, 0.06} {
			for _, ttm := range []float64{0.1, 0.5, 1.0, 3.0} {
				forward := pricing.CarryForward(100.0, rate, netCarry, ttm)
				got, err := pricing.ImpliedNetCarry(100.0, forward, rate, ttm)
				if err != nil {
					return NewFailedCheckResult(check.Name, check.Description,
						fmt.Sprintf("r=%.3f q=%.3f T=%.1f: unexpected error %v", rate, netCarry, ttm, err))
				}
				if math.Abs(got-netCarry) > 1e-12 {
					return NewFailedCheckResult(check.Name, check.Description,
						fmt.Sprintf("r=%.3f q=%.3f T=%.1f: recovered %.15f", rate, netCarry, ttm, got))
				}
			}
		}
	}

	return check.WithDetails("Round trip exact to 1e-12 across 64 parameter combinations")
}

// checkImpliedCarryDomain verifies the inversion rejects ill-posed inputs
func (ps *PricingSection) checkImpliedCarryDomain() CheckResult {
	check := NewCheckResult("ImpliedCarryDomain", "Inversion reports undefined for non-positive spot, forward or tenor")

	cases := []struct {
		spot, forward, ttm float64
	}{
		{0.0, 100.0, 1.0},
		{100.0, 0.0, 1.0},
		{100.0, -40.0, 1.0},
		{100.0, 101.0, 0.0},
	}

	for _, c := range cases {
		if _, err := pricing.ImpliedNetCarry(c.spot, c.forward, 0.03, c.ttm); !errors.Is(err, pricing.ErrImpliedCarryUndefined) {
			return NewFailedCheckResult(check.Name, check.Description,
				fmt.Sprintf("spot=%.1f forward=%.1f T=%.1f: expected undefined-carry error, got %v", c.spot, c.forward, c.ttm, err))
		}
	}

	return check.WithDetails("All ill-posed inversions rejected with the sentinel error")
}
