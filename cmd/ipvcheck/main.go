package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/config"
)

const (
	appName = "ipvcheck"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Independent price verification for equity forwards",
		Version: version,
		Long: `ipvcheck reconciles a cost-of-carry equity forward against the forward
implied by a European call/put pair through put-call parity.

Run with no arguments to check the built-in benchmark snapshot, or use
'ipvcheck check' with flags or a scenario file for desk inputs. Reports go
to stdout; logs go to stderr. A FAIL verdict exits non-zero so the check
can gate a pipeline.`,
		RunE: runDefaultCheck,
	}

	// Add check command for direct reconciliation
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile the carry forward against the parity-implied forward",
		Long: `Computes F_carry from spot/rate/net-carry, F_parity from the option pair,
and judges the spread against the effective tolerance band.

Input flags override the scenario file when one is given, and the built-in
benchmark snapshot otherwise. A scenario without call/put premiums runs the
carry-only baseline and reports N/A for the parity side.`,
		RunE: runCheck,
	}

	checkCmd.Flags().Float64P("spot", "s", 100.0, "Spot price of the underlying")
	checkCmd.Flags().Float64P("rate", "r", 0.03, "Continuously compounded risk-free rate")
	checkCmd.Flags().Float64P("carry", "q", 0.01, "Net carry (dividend yield minus repo/borrow)")
	checkCmd.Flags().Float64P("ttm", "t", 1.0, "Time to maturity in years")
	checkCmd.Flags().Float64P("strike", "k", 100.0, "Strike shared by the call/put pair")
	checkCmd.Flags().Float64("call", 5.20, "Call mid premium (same strike and expiry as --put)")
	checkCmd.Flags().Float64("put", 3.30, "Put mid premium (same strike and expiry as --call)")
	checkCmd.Flags().String("inputs", "", "Scenario YAML with inputs and optional tolerance overrides")
	checkCmd.Flags().String("config", "", "Tolerance policy YAML file")
	checkCmd.Flags().Float64("tol-abs", 0.20, "Absolute tolerance floor in price units")
	checkCmd.Flags().Float64("tol-bps", 5.0, "Relative tolerance in bps of the baseline forward")
	checkCmd.Flags().Float64("q-gap-bps", 50.0, "Net-carry gap threshold for the dividend hint (bps)")
	checkCmd.Flags().Int("top-hints", 3, "Maximum hints shown in the text report")
	checkCmd.Flags().String("format", "text", "Report format (text|json)")

	// Add policy command for tolerance inspection
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Display the effective tolerance policy",
		Long:  "Shows the tolerance policy the check commands would apply, and the effective band at representative forward levels",
		RunE:  runPolicyDump,
	}

	policyCmd.Flags().StringP("config", "c", "", "Path to tolerance policy YAML file")
	policyCmd.Flags().BoolP("json", "j", false, "Output in JSON format")

	// Add scenario command for scenario file management
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Scenario file management",
		Long:  "Commands for creating and maintaining scenario YAML files",
	}

	scenarioInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the example scenario YAML for editing",
		Long:  "Writes the benchmark snapshot as a scenario file so a desk can edit it into their own market inputs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenarioInit,
	}

	scenarioInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	scenarioCmd.AddCommand(scenarioInitCmd)

	// Add selfcheck command for offline verification
	selfcheckCmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the built-in verification suite",
		Long:  "Validates pricing identities, the tolerance rule, and reference cases against reviewed numbers (no network)",
		RunE:  runSelfCheck,
	}

	selfcheckCmd.Flags().Bool("compact", false, "Compact checklist output")

	rootCmd.AddCommand(checkCmd)     // Primary functionality
	rootCmd.AddCommand(policyCmd)    // Tolerance inspection
	rootCmd.AddCommand(scenarioCmd)  // Scenario management
	rootCmd.AddCommand(selfcheckCmd) // Verification

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// runDefaultCheck reconciles the built-in benchmark snapshot at the default
// tolerances, preserving the original no-arguments behavior.
func runDefaultCheck(cmd *cobra.Command, args []string) error {
	scenario := config.ExampleScenario()
	log.Info().Str("scenario", scenario.Name).Msg("No subcommand given, checking the built-in example")
	return executeCheck(scenario.Inputs, nil, "text")
}
