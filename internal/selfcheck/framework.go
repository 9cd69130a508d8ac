// Package selfcheck verifies a build of the calculator against pricing
// identities, the tolerance rule and reference reconciliations before the
// desk relies on its verdicts.
package selfcheck

import (
	"fmt"
	"time"
)

// CheckResult represents the outcome of a single verification
type CheckResult struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Passed      bool      `json:"passed"`
	Error       string    `json:"error,omitempty"`
	Details     string    `json:"details,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Section represents a collection of related verifications
type Section interface {
	Name() string
	Description() string
	RunChecks() []CheckResult
}

// Summary represents the overall results of all verification sections
type Summary struct {
	TotalSections  int              `json:"total_sections"`
	PassedSections int              `json:"passed_sections"`
	FailedSections int              `json:"failed_sections"`
	TotalChecks    int              `json:"total_checks"`
	PassedChecks   int              `json:"passed_checks"`
	FailedChecks   int              `json:"failed_checks"`
	Sections       []SectionSummary `json:"sections"`
	ExecutionTime  time.Duration    `json:"execution_time"`
	OverallPassed  bool             `json:"overall_passed"`
	Timestamp      time.Time        `json:"timestamp"`
}

// SectionSummary represents the results of a single verification section
type SectionSummary struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Passed      bool          `json:"passed"`
	CheckCount  int           `json:"check_count"`
	PassedCount int           `json:"passed_count"`
	FailedCount int           `json:"failed_count"`
	Results     []CheckResult `json:"results"`
}

// Runner coordinates the execution of all verification sections
type Runner struct {
	sections []Section
}

// NewRunner creates a runner with the full suite
func NewRunner() *Runner {
	return &Runner{
		sections: []Section{
			NewPricingSection(),
			NewToleranceSection(),
			NewReferenceSection(),
		},
	}
}

// NewRunnerWithSections creates a Runner with the provided sections
func NewRunnerWithSections(sections []Section) *Runner {
	return &Runner{
		sections: sections,
	}
}

// RunAll executes all verification sections and returns a summary
func (r *Runner) RunAll() Summary {
	startTime := time.Now()

	summary := Summary{
		TotalSections: len(r.sections),
		Sections:      make([]SectionSummary, 0, len(r.sections)),
		Timestamp:     startTime.UTC(),
	}

	for _, section := range r.sections {
		results := section.RunChecks()

		sectionSummary := SectionSummary{
			Name:        section.Name(),
			Description: section.Description(),
			CheckCount:  len(results),
			Results:     results,
		}

		for _, result := range results {
			if result.Passed {
				sectionSummary.PassedCount++
			} else {
				sectionSummary.FailedCount++
			}
		}

		// Section passes only when every check passes
		sectionSummary.Passed = sectionSummary.FailedCount == 0

		summary.TotalChecks += sectionSummary.CheckCount
		summary.PassedChecks += sectionSummary.PassedCount
		summary.FailedChecks += sectionSummary.FailedCount

		if sectionSummary.Passed {
			summary.PassedSections++
		} else {
			summary.FailedSections++
		}

		summary.Sections = append(summary.Sections, sectionSummary)
	}

	summary.ExecutionTime = time.Since(startTime)
	summary.OverallPassed = summary.FailedSections == 0

	return summary
}

// PrintResults prints detailed results to stdout
func (r *Runner) PrintResults(summary Summary) {
	fmt.Printf("\n=== Equity Forward IPV Self-Check ===\n")
	fmt.Printf("Executed: %s\n", summary.Timestamp.Format(time.RFC3339))
	fmt.Printf("Duration: %.1fms\n\n", float64(summary.ExecutionTime.Nanoseconds())/1e6)

	for _, section := range summary.Sections {
		status := "✅ PASS"
		if !section.Passed {
			status = "❌ FAIL"
		}

		fmt.Printf("%s %s: %s\n", status, section.Name, section.Description)
		fmt.Printf("    Checks: %d/%d passed\n", section.PassedCount, section.CheckCount)

		for _, result := range section.Results {
			if !result.Passed {
				fmt.Printf("    ❌ %s: %s\n", result.Name, result.Description)
				if result.Error != "" {
					fmt.Printf("       Error: %s\n", result.Error)
				}
				if result.Details != "" {
					fmt.Printf("       Details: %s\n", result.Details)
				}
			}
		}
		fmt.Println()
	}

	overallStatus := "✅ PASS"
	if !summary.OverallPassed {
		overallStatus = "❌ FAIL"
	}

	fmt.Printf("=== OVERALL RESULT: %s ===\n", overallStatus)
	fmt.Printf("Sections: %d/%d passed\n", summary.PassedSections, summary.TotalSections)
	fmt.Printf("Checks: %d/%d passed\n", summary.PassedChecks, summary.TotalChecks)
}

// PrintCompactChecklist prints the one-line-per-section form
func (r *Runner) PrintCompactChecklist(summary Summary) {
	fmt.Print(summary.CompactChecklist())
}

// NewCheckResult creates a passing CheckResult
func NewCheckResult(name, description string) CheckResult {
	return CheckResult{
		Name:        name,
		Description: description,
		Passed:      true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewFailedCheckResult creates a failing CheckResult
func NewFailedCheckResult(name, description, errorMsg string) CheckResult {
	return CheckResult{
		Name:        name,
		Description: description,
		Passed:      false,
		Error:       errorMsg,
		Timestamp:   time.Now().UTC(),
	}
}

// WithDetails adds additional details to a CheckResult
func (cr CheckResult) WithDetails(details string) CheckResult {
	cr.Details = details
	return cr
}

// String provides a human-readable representation of the CheckResult
func (cr CheckResult) String() string {
	status := "PASS"
	if !cr.Passed {
		status = "FAIL"
	}

	result := fmt.Sprintf("[%s] %s: %s", status, cr.Name, cr.Description)

	if cr.Error != "" {
		result += fmt.Sprintf(" - ERROR: %s", cr.Error)
	}

	if cr.Details != "" {
		result += fmt.Sprintf(" (%s)", cr.Details)
	}

	return result
}

// String provides a human-readable representation of the Summary
func (s Summary) String() string {
	status := "PASS"
	if !s.OverallPassed {
		status = "FAIL"
	}

	return fmt.Sprintf("Self-Check [%s]: %d/%d sections passed, %d/%d checks passed (%.1fms)",
		status, s.PassedSections, s.TotalSections, s.PassedChecks, s.TotalChecks,
		float64(s.ExecutionTime.Nanoseconds())/1e6)
}

// CompactChecklist returns a compact checklist for console display
func (s Summary) CompactChecklist() string {
	result := "Self-Check Checklist:\n"

	for _, section := range s.Sections {
		status := "✅"
		if !section.Passed {
			status = "❌"
		}
		result += fmt.Sprintf("  %s %s (%d/%d checks)\n",
			status, section.Name, section.PassedCount, section.CheckCount)
	}

	overallStatus := "✅ PASS"
	if !s.OverallPassed {
		overallStatus = "❌ FAIL"
	}
	result += fmt.Sprintf("\nOverall: %s (%d/%d sections passed)\n",
		overallStatus, s.PassedSections, s.TotalSections)

	return result
}
