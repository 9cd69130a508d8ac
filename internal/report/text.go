// Package report renders reconciliation results: a fixed-width text block
// for the desk terminal and a rounded JSON view for downstream tooling.
package report

import (
	"fmt"
	"strings"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

const reportWidth = 40

// RenderText produces the desk-style report. topHints caps the root-cause
// list; diagnostics missing from the run render as N/A.
func RenderText(res *ipv.Result, topHints int) string {
	var b strings.Builder
	border := strings.Repeat("=", reportWidth)

	b.WriteString(border + "\n")
	b.WriteString(" EQUITY FORWARD IPV REPORT\n")
	b.WriteString(border + "\n")

	fmt.Fprintf(&b, "STATUS            : %s\n", res.Status)
	if res.PassRule != "" {
		fmt.Fprintf(&b, "Rule              : %s\n", res.PassRule)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "F_baseline (carry): %.3f\n", res.BaselineForward)
	fmt.Fprintf(&b, "F_implied (parity): %s\n", fmtNum(res.ParityForward, 3))
	b.WriteString("\n")

	fmt.Fprintf(&b, "ΔF (abs)          : %s   (%s)\n", fmtNum(res.SpreadAbs, 3), toleranceLine(res.Tolerances))
	fmt.Fprintf(&b, "ΔF (bps vs F)     : %s\n", fmtNum(res.SpreadBpsVsForward, 2))
	fmt.Fprintf(&b, "ΔF (bps vs S)     : %s\n", fmtNum(res.SpreadBpsVsSpot, 2))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Net carry (input) : %.3f%%\n", res.NetCarryInputPct)
	if res.NetCarryImpliedPct != nil {
		fmt.Fprintf(&b, "Net carry (impl.) : %.3f%%\n", *res.NetCarryImpliedPct)
	} else {
		b.WriteString("Net carry (impl.) : N/A\n")
	}
	if res.CarryGapBps != nil {
		fmt.Fprintf(&b, "Δq (bps)          : %+.1f\n", *res.CarryGapBps)
	}

	if len(res.Hints) > 0 && topHints > 0 {
		b.WriteString("\n")
		b.WriteString("Next checks        :\n")
		shown := topHints
		if shown > len(res.Hints) {
			shown = len(res.Hints)
		}
		for _, hint := range res.Hints[:shown] {
			fmt.Fprintf(&b, "- %s\n", hint)
		}
	}

	b.WriteString(border + "\n")
	return b.String()
}

func fmtNum(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// toleranceLine compacts the thresholds next to the spread they bound. Until
// a parity leg has been checked there is no effective tolerance to show.
func toleranceLine(t ipv.Tolerances) string {
	if t.TolEff == nil {
		return "N/A"
	}
	return fmt.Sprintf("tol_abs: %.2f, tol_bps: %.2f, tol_eff: %.3f", t.TolAbs, t.TolBps, *t.TolEff)
}
