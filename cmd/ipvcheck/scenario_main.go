package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/config"
)

// runScenarioInit writes the example scenario so a desk can edit it into
// their own market snapshot.
func runScenarioInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultScenarioPath()
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	scenario := config.ExampleScenario()
	if err := config.SaveScenario(scenario, path); err != nil {
		return err
	}

	log.Info().Str("path", path).Str("scenario", scenario.Name).Msg("Scenario written")
	fmt.Printf("Wrote %s (%s)\n", path, scenario.Name)
	fmt.Printf("Edit the inputs, then run: %s check --inputs %s\n", appName, path)

	return nil
}
