package ipv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultTolerancePolicy(t *testing.T) {
	policy := DefaultTolerancePolicy()

	if policy.TolAbs != 0.20 {
		t.Errorf("Expected default tol_abs 0.20, got %.4f", policy.TolAbs)
	}
	if policy.TolBps != 5.0 {
		t.Errorf("Expected default tol_bps 5.0, got %.2f", policy.TolBps)
	}
	if policy.QGapBps != 50.0 {
		t.Errorf("Expected default q_gap_bps 50.0, got %.1f", policy.QGapBps)
	}
	if policy.TopHints != 3 {
		t.Errorf("Expected default top_hints 3, got %d", policy.TopHints)
	}
	if policy.RoundDecimals != 6 {
		t.Errorf("Expected default round_decimals 6, got %d", policy.RoundDecimals)
	}

	if err := policy.Validate(); err != nil {
		t.Errorf("Default policy should pass validation: %v", err)
	}
}

func TestEffectiveTolerance(t *testing.T) {
	policy := DefaultTolerancePolicy()

	// Small forward: the absolute floor dominates (5 bps of 100 is 0.05).
	if got := policy.EffectiveTolerance(100.0); got != 0.20 {
		t.Errorf("Expected tol_eff 0.20 for F=100, got %.4f", got)
	}

	// Large forward: the relative band dominates (5 bps of 10000 is 5.0).
	if got := policy.EffectiveTolerance(10000.0); got != 5.0 {
		t.Errorf("Expected tol_eff 5.0 for F=10000, got %.4f", got)
	}

	// A negative tol_bps contributes through its magnitude.
	policy.TolBps = -5.0
	if got := policy.EffectiveTolerance(10000.0); got != 5.0 {
		t.Errorf("Expected tol_eff 5.0 with tol_bps=-5.0, got %.4f", got)
	}
}

func TestLoadTolerancePolicy(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tolerances.yaml")

	testPolicy := TolerancePolicy{
		TolAbs:        0.10,
		TolBps:        3.0,
		QGapBps:       40.0,
		TopHints:      5,
		RoundDecimals: 4,
	}

	yamlData, err := yaml.Marshal(&testPolicy)
	if err != nil {
		t.Fatalf("Failed to marshal test policy: %v", err)
	}
	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		t.Fatalf("Failed to write test policy: %v", err)
	}

	policy, err := LoadTolerancePolicy(configPath)
	if err != nil {
		t.Fatalf("Failed to load tolerance policy: %v", err)
	}

	if policy.TolAbs != 0.10 {
		t.Errorf("Expected tol_abs 0.10, got %.4f", policy.TolAbs)
	}
	if policy.TolBps != 3.0 {
		t.Errorf("Expected tol_bps 3.0, got %.2f", policy.TolBps)
	}
	if policy.QGapBps != 40.0 {
		t.Errorf("Expected q_gap_bps 40.0, got %.1f", policy.QGapBps)
	}
	if policy.TopHints != 5 {
		t.Errorf("Expected top_hints 5, got %d", policy.TopHints)
	}
	if policy.RoundDecimals != 4 {
		t.Errorf("Expected round_decimals 4, got %d", policy.RoundDecimals)
	}
}

func TestLoadTolerancePolicy_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tolerances.yaml")

	if err := os.WriteFile(configPath, []byte("tol_abs: 0.50\n"), 0644); err != nil {
		t.Fatalf("Failed to write test policy: %v", err)
	}

	policy, err := LoadTolerancePolicy(configPath)
	if err != nil {
		t.Fatalf("Failed to load partial policy: %v", err)
	}

	if policy.TolAbs != 0.50 {
		t.Errorf("Expected overridden tol_abs 0.50, got %.4f", policy.TolAbs)
	}
	if policy.TolBps != 5.0 {
		t.Errorf("Expected default tol_bps 5.0 to survive, got %.2f", policy.TolBps)
	}
	if policy.TopHints != 3 {
		t.Errorf("Expected default top_hints 3 to survive, got %d", policy.TopHints)
	}
}

func TestLoadTolerancePolicy_MissingFile(t *testing.T) {
	_, err := LoadTolerancePolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Loading a missing policy file should fail")
	}
}

func TestLoadTolerancePolicy_BadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "broken.yaml")

	if err := os.WriteFile(configPath, []byte("tol_abs: [not a number"), 0644); err != nil {
		t.Fatalf("Failed to write broken policy: %v", err)
	}

	if _, err := LoadTolerancePolicy(configPath); err == nil {
		t.Error("Loading malformed YAML should fail")
	}
}

func TestTolerancePolicyValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*TolerancePolicy)
		wantErr string
	}{
		{"negative_tol_abs", func(p *TolerancePolicy) { p.TolAbs = -0.1 }, "tol_abs"},
		{"excessive_tol_bps", func(p *TolerancePolicy) { p.TolBps = 20000.0 }, "tol_bps"},
		{"excessive_negative_tol_bps", func(p *TolerancePolicy) { p.TolBps = -20000.0 }, "tol_bps"},
		{"zero_band", func(p *TolerancePolicy) { p.TolAbs = 0; p.TolBps = 0 }, "tolerance band"},
		{"zero_q_gap", func(p *TolerancePolicy) { p.QGapBps = 0 }, "q_gap_bps"},
		{"negative_top_hints", func(p *TolerancePolicy) { p.TopHints = -1 }, "top_hints"},
		{"excessive_round_decimals", func(p *TolerancePolicy) { p.RoundDecimals = 13 }, "round_decimals"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy := DefaultTolerancePolicy()
			tc.mutate(policy)

			err := policy.Validate()
			if err == nil {
				t.Fatalf("Expected validation error mentioning %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error mentioning %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestTolerancePolicyValidate_AcceptsNegativeTolBps(t *testing.T) {
	policy := DefaultTolerancePolicy()
	policy.TolBps = -5.0

	if err := policy.Validate(); err != nil {
		t.Errorf("A negative tol_bps is applied through its magnitude and should validate: %v", err)
	}
}
