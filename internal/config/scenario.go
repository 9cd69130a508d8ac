// Package config loads and saves the scenario files a desk keeps under
// version control: one reviewed market snapshot per file, with an optional
// tolerance override.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/fabiodigiovanni/equity-forward-ipv-check/internal/ipv"
)

// Scenario bundles one reconciliation's inputs with an optional tolerance
// block. A file holds exactly one scenario; batch runs are out of scope.
type Scenario struct {
	Name       string              `yaml:"name"`
	Notes      string              `yaml:"notes,omitempty"`
	Inputs     ipv.Inputs          `yaml:"inputs"`
	Tolerances *ScenarioTolerances `yaml:"tolerances,omitempty"`
}

// ScenarioTolerances wraps TolerancePolicy so a scenario block only needs to
// name the keys it overrides; the rest backfill from the desk defaults.
type ScenarioTolerances struct {
	ipv.TolerancePolicy `yaml:",inline"`
}

// UnmarshalYAML pre-fills the defaults before decoding the block.
func (st *ScenarioTolerances) UnmarshalYAML(unmarshal func(interface{}) error) error {
	policy := *ipv.DefaultTolerancePolicy()
	if err := unmarshal(&policy); err != nil {
		return err
	}
	st.TolerancePolicy = policy
	return nil
}

// LoadScenario reads a scenario file. The tolerance block, when present, is
// validated here; the inputs are validated by the checker after any flag
// overrides have been applied.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if scenario.Tolerances != nil {
		if err := scenario.Tolerances.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario tolerances: %w", err)
		}
	}

	return &scenario, nil
}

// SaveScenario writes a scenario file.
func SaveScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario %s: %w", path, err)
	}

	return nil
}

// ExampleScenario returns the benchmark snapshot shipped with the tool: a
// one-year forward on a 100.00 spot with an at-the-money option pair.
func ExampleScenario() *Scenario {
	call, put := 5.20, 3.30
	return &Scenario{
		Name:  "benchmark-1y",
		Notes: "ATM pair one year out; passes at the default tolerances.",
		Inputs: ipv.Inputs{
			Spot:           100.0,
			Rate:           0.03,
			NetCarry:       0.01,
			TimeToMaturity: 1.0,
			Strike:         100.0,
			Call:           &call,
			Put:            &put,
		},
	}
}

// DefaultScenarioPath is where `scenario init` writes when no path is given.
func DefaultScenarioPath() string {
	return filepath.Join("examples", "scenario.yaml")
}
