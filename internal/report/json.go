package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

// WriteJSON emits the machine-readable view of a result. Prices round to
// decimals places; bps spreads round to 2, percentages to 3 and the carry
// gap to 1, which is all the resolution a reconciliation sign-off needs.
func WriteJSON(w io.Writer, res *ipv.Result, decimals int) error {
	view := *res
	view.BaselineForward = round(res.BaselineForward, decimals)
	view.ParityForward = roundPtr(res.ParityForward, decimals)
	view.SpreadAbs = roundPtr(res.SpreadAbs, decimals)
	view.SpreadBpsVsForward = roundPtr(res.SpreadBpsVsForward, 2)
	view.SpreadBpsVsSpot = roundPtr(res.SpreadBpsVsSpot, 2)
	view.NetCarryInputPct = round(res.NetCarryInputPct, 3)
	view.NetCarryImplied = roundPtr(res.NetCarryImplied, decimals)
	view.NetCarryImpliedPct = roundPtr(res.NetCarryImpliedPct, 3)
	view.CarryGapBps = roundPtr(res.CarryGapBps, 1)

	data, err := json.MarshalIndent(&view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	rounded := round(*v, decimals)
	return &rounded
}
