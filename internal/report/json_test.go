package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeReport(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	return doc
}

func TestWriteJSON_PassReport(t *testing.T) {
	res := runCheck(t, benchmarkInputs(), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, 6))
	doc := decodeReport(t, &buf)

	for _, key := range []string{
		"run_id", "generated_at", "status", "pass_rule", "baseline_forward",
		"market_implied_forward", "abs_spread", "rel_spread_bps_vs_fbase",
		"rel_spread_bps_vs_spot", "net_carry_input", "net_carry_input_pct",
		"net_carry_implied", "net_carry_implied_pct", "net_carry_gap_bps",
		"pass_eff", "tolerances", "root_cause_hints", "assumptions",
	} {
		assert.Contains(t, doc, key)
	}

	assert.Equal(t, "PASS", doc["status"])
	assert.Equal(t, true, doc["pass_eff"])
	assert.NotEmpty(t, doc["run_id"])

	assert.InDelta(t, 102.020134, doc["baseline_forward"].(float64), 1e-9)
	assert.InDelta(t, 101.957864, doc["market_implied_forward"].(float64), 1e-9)
	assert.InDelta(t, -0.062270, doc["abs_spread"].(float64), 1e-9)
	assert.InDelta(t, -6.10, doc["rel_spread_bps_vs_fbase"].(float64), 1e-9)
	assert.InDelta(t, -6.23, doc["rel_spread_bps_vs_spot"].(float64), 1e-9)
	assert.InDelta(t, 0.01, doc["net_carry_input"].(float64), 1e-12)
	assert.InDelta(t, 1.0, doc["net_carry_input_pct"].(float64), 1e-12)
	assert.InDelta(t, 0.010611, doc["net_carry_implied"].(float64), 1e-9)
	assert.InDelta(t, 1.061, doc["net_carry_implied_pct"].(float64), 1e-9)
	assert.InDelta(t, 6.1, doc["net_carry_gap_bps"].(float64), 1e-9)

	tolerances := doc["tolerances"].(map[string]interface{})
	assert.InDelta(t, 0.20, tolerances["tol_abs"].(float64), 1e-12)
	assert.InDelta(t, 5.0, tolerances["tol_bps"].(float64), 1e-12)
	assert.InDelta(t, 0.20, tolerances["tol_eff"].(float64), 1e-12)
	assert.InDelta(t, 50.0, tolerances["tol_q_gap_bps"].(float64), 1e-12)

	assert.Empty(t, doc["root_cause_hints"].([]interface{}))

	assumptions := doc["assumptions"].(map[string]interface{})
	assert.Equal(t, "continuous", assumptions["compounding"])
	assert.Equal(t, "dividend_yield - repo/borrow", assumptions["net_carry"])
}

func TestWriteJSON_FailReportCarriesHints(t *testing.T) {
	in := benchmarkInputs()
	in.TimeToMaturity = 0.5
	in.Put = fptr(4.80)
	res := runCheck(t, in, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, 6))
	doc := decodeReport(t, &buf)

	assert.Equal(t, "FAIL", doc["status"])
	assert.Equal(t, false, doc["pass_eff"])
	assert.InDelta(t, -0.598971, doc["abs_spread"].(float64), 1e-9)
	assert.InDelta(t, -59.30, doc["rel_spread_bps_vs_fbase"].(float64), 1e-9)
	assert.InDelta(t, 119.0, doc["net_carry_gap_bps"].(float64), 1e-9)

	hints := doc["root_cause_hints"].([]interface{})
	require.Len(t, hints, 6)
	assert.Equal(t, "Timestamp alignment (spot vs options).", hints[0])
}

func TestWriteJSON_NoOptionsEmitsNulls(t *testing.T) {
	in := benchmarkInputs()
	in.Call, in.Put = nil, nil
	res := runCheck(t, in, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, 6))
	doc := decodeReport(t, &buf)

	assert.Equal(t, "N/A (no options provided)", doc["status"])
	assert.Nil(t, doc["market_implied_forward"])
	assert.Nil(t, doc["abs_spread"])
	assert.Nil(t, doc["rel_spread_bps_vs_fbase"])
	assert.Nil(t, doc["rel_spread_bps_vs_spot"])
	assert.Nil(t, doc["net_carry_implied"])
	assert.Nil(t, doc["net_carry_gap_bps"])
	assert.Nil(t, doc["pass_eff"])

	tolerances := doc["tolerances"].(map[string]interface{})
	assert.Nil(t, tolerances["tol_eff"])
	assert.InDelta(t, 0.20, tolerances["tol_abs"].(float64), 1e-12)
}

func TestWriteJSON_RoundingControl(t *testing.T) {
	res := runCheck(t, benchmarkInputs(), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, 2))
	doc := decodeReport(t, &buf)

	assert.InDelta(t, 102.02, doc["baseline_forward"].(float64), 1e-12)
	assert.InDelta(t, 101.96, doc["market_implied_forward"].(float64), 1e-12)
	assert.InDelta(t, -0.06, doc["abs_spread"].(float64), 1e-12)
}

func TestWriteJSON_DoesNotMutateResult(t *testing.T) {
	res := runCheck(t, benchmarkInputs(), nil)
	parityBefore := *res.ParityForward
	spreadBefore := *res.SpreadAbs

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, 2))

	assert.Equal(t, parityBefore, *res.ParityForward)
	assert.Equal(t, spreadBefore, *res.SpreadAbs)
}
