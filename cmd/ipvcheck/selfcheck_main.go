package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/selfcheck"
)

// runSelfCheck executes the verification suite and gates the exit code on it.
func runSelfCheck(cmd *cobra.Command, args []string) error {
	compact, _ := cmd.Flags().GetBool("compact")

	runner := selfcheck.NewRunner()
	summary := runner.RunAll()

	if compact {
		runner.PrintCompactChecklist(summary)
	} else {
		runner.PrintResults(summary)
	}

	if !summary.OverallPassed {
		os.Exit(1)
	}

	return nil
}
