// Package pricing implements the forward valuation formulas used by the IPV
// reconciliation. All rates use continuous compounding and ACT-style year
// fractions; callers own day-count conventions.
package pricing

import (
	"errors"
	"math"
)

// ErrImpliedCarryUndefined is returned when the carry inversion has no
// solution: ln(F/S) requires S > 0, F > 0 and a strictly positive tenor.
var ErrImpliedCarryUndefined = errors.New("implied net carry undefined: requires spot > 0, forward > 0, ttm > 0")

// CarryForward prices the baseline forward from cost of carry:
//
//	F = S * e^((r - q) * T)
//
// where q is the net carry (dividend yield minus repo/borrow).
func CarryForward(spot, rate, netCarry, ttm float64) float64 {
	return spot * math.Exp((rate-netCarry)*ttm)
}

// ParityImpliedForward recovers the forward embedded in an option pair via
// put-call parity:
//
//	C - P = e^(-r*T) * (F - K)  =>  F = K + e^(r*T) * (C - P)
//
// Call and put must share the same strike and expiry.
func ParityImpliedForward(strike, call, put, rate, ttm float64) float64 {
	return strike + math.Exp(rate*ttm)*(call-put)
}

// ImpliedNetCarry inverts the cost-of-carry relation to back out the net
// carry a given forward implies:
//
//	q = r - ln(F/S) / T
//
// A deep net credit option pair can push the parity forward to zero or
// below; the inversion is undefined there and ErrImpliedCarryUndefined is
// returned.
func ImpliedNetCarry(spot, forward, rate, ttm float64) (float64, error) {
	if spot <= 0 || forward <= 0 || ttm <= 0 {
		return 0, ErrImpliedCarryUndefined
	}
	return rate - math.Log(forward/spot)/ttm, nil
}
