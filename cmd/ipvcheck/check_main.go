package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/config"
	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/report"
)

// runCheck handles the check CLI command. Precedence for tolerances is
// defaults, then --config file, then the scenario's tolerance block, then
// explicit flags. Input flags override the scenario the same way.
func runCheck(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()

	format, _ := fs.GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format: %s (use text|json)", format)
	}

	policy, err := resolvePolicy(fs)
	if err != nil {
		return err
	}

	in := config.ExampleScenario().Inputs
	inputsPath, _ := fs.GetString("inputs")
	if inputsPath != "" {
		scenario, err := config.LoadScenario(inputsPath)
		if err != nil {
			return err
		}
		in = scenario.Inputs
		if scenario.Tolerances != nil {
			override := scenario.Tolerances.TolerancePolicy
			policy = &override
		}
		log.Info().Str("scenario", scenario.Name).Str("path", inputsPath).Msg("Loaded scenario")
	}

	applyInputFlags(fs, &in)
	applyPolicyFlags(fs, policy)

	if err := policy.Validate(); err != nil {
		return err
	}

	log.Info().
		Float64("spot", in.Spot).
		Float64("ttm", in.TimeToMaturity).
		Bool("options", in.HasOptions()).
		Msg("Starting IPV reconciliation")

	return executeCheck(in, policy, format)
}

// executeCheck runs one reconciliation and renders it. A FAIL verdict exits
// non-zero after the report is printed so pipelines can gate on it.
func executeCheck(in ipv.Inputs, policy *ipv.TolerancePolicy, format string) error {
	checker := ipv.NewChecker(policy)

	res, err := checker.Run(in)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	evt := log.Info().Str("run_id", res.RunID).Str("status", string(res.Status))
	if res.SpreadBpsVsForward != nil {
		evt = evt.Float64("spread_bps", *res.SpreadBpsVsForward)
	}
	evt.Msg("Reconciliation complete")

	applied := checker.Policy()
	switch format {
	case "json":
		if err := report.WriteJSON(os.Stdout, res, applied.RoundDecimals); err != nil {
			return fmt.Errorf("failed to render JSON report: %w", err)
		}
	default:
		fmt.Print(report.RenderText(res, applied.TopHints))
	}

	if res.Status == ipv.StatusFail {
		os.Exit(1)
	}

	return nil
}

// resolvePolicy loads the tolerance policy file when given, defaults otherwise.
func resolvePolicy(fs *pflag.FlagSet) (*ipv.TolerancePolicy, error) {
	configPath, _ := fs.GetString("config")
	if configPath == "" {
		return ipv.DefaultTolerancePolicy(), nil
	}

	policy, err := ipv.LoadTolerancePolicy(configPath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", configPath).Msg("Loaded tolerance policy")
	return policy, nil
}

func applyInputFlags(fs *pflag.FlagSet, in *ipv.Inputs) {
	if v := floatFlagIfChanged(fs, "spot"); v != nil {
		in.Spot = *v
	}
	if v := floatFlagIfChanged(fs, "rate"); v != nil {
		in.Rate = *v
	}
	if v := floatFlagIfChanged(fs, "carry"); v != nil {
		in.NetCarry = *v
	}
	if v := floatFlagIfChanged(fs, "ttm"); v != nil {
		in.TimeToMaturity = *v
	}
	if v := floatFlagIfChanged(fs, "strike"); v != nil {
		in.Strike = *v
	}
	if v := floatFlagIfChanged(fs, "call"); v != nil {
		in.Call = v
	}
	if v := floatFlagIfChanged(fs, "put"); v != nil {
		in.Put = v
	}
}

func applyPolicyFlags(fs *pflag.FlagSet, policy *ipv.TolerancePolicy) {
	if v := floatFlagIfChanged(fs, "tol-abs"); v != nil {
		policy.TolAbs = *v
	}
	if v := floatFlagIfChanged(fs, "tol-bps"); v != nil {
		policy.TolBps = *v
	}
	if v := floatFlagIfChanged(fs, "q-gap-bps"); v != nil {
		policy.QGapBps = *v
	}
	if fs.Changed("top-hints") {
		if v, err := fs.GetInt("top-hints"); err == nil {
			policy.TopHints = v
		}
	}
}

// floatFlagIfChanged returns the flag value as a pointer only when the user
// set it, so unchanged defaults never clobber scenario or policy values.
func floatFlagIfChanged(fs *pflag.FlagSet, name string) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	if v, err := fs.GetFloat64(name); err == nil {
		return &v
	}
	return nil
}
