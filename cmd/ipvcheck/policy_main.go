package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

// runPolicyDump displays the tolerance policy the check commands would apply.
func runPolicyDump(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var policy *ipv.TolerancePolicy
	if configPath != "" {
		loaded, err := ipv.LoadTolerancePolicy(configPath)
		if err != nil {
			return err
		}
		policy = loaded
	} else {
		policy = ipv.DefaultTolerancePolicy()
	}

	if jsonOutput {
		data, err := json.MarshalIndent(policy, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON serialization failed: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if configPath != "" {
		fmt.Printf("📁 Loaded tolerance policy from: %s\n\n", configPath)
	} else {
		fmt.Printf("📁 Using built-in default tolerance policy\n\n")
	}

	fmt.Printf("📏 TOLERANCE POLICY\n")
	fmt.Printf("═══════════════════════════════════════════════\n\n")
	fmt.Printf("   tol_abs:        %.4f price units (absolute floor)\n", policy.TolAbs)
	fmt.Printf("   tol_bps:        %.2f bps of the baseline forward\n", policy.TolBps)
	fmt.Printf("   q_gap_bps:      %.1f bps net-carry gap before the dividend hint\n", policy.QGapBps)
	fmt.Printf("   top_hints:      %d hints in the text report\n", policy.TopHints)
	fmt.Printf("   round_decimals: %d decimals for report prices\n\n", policy.RoundDecimals)

	fmt.Printf("📊 EFFECTIVE TOLERANCE BY FORWARD LEVEL\n")
	fmt.Printf("%-12s │ %10s │ %s\n", "Forward", "tol_eff", "Binding band")
	fmt.Printf("─────────────┼────────────┼─────────────\n")
	for _, level := range []float64{50, 100, 500, 1000, 5000} {
		eff := policy.EffectiveTolerance(level)
		binding := "absolute floor"
		if eff > policy.TolAbs {
			binding = "relative bps"
		}
		fmt.Printf("%-12.0f │ %10.4f │ %s\n", level, eff, binding)
	}

	fmt.Printf("\n💡 Verdict rule: %s\n", ipv.PassRule)

	return nil
}
