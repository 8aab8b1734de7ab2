package stylegen

import (
	"fmt"
	"io"
)

// OutputFormat selects how check results are printed
type OutputFormat string

// Output formats
const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint style issues (default)
	OutputSummary OutputFormat = "summary" // statistics and suggested replacements
	OutputFull    OutputFormat = "full"    // issues followed by the summary
	OutputJSON    OutputFormat = "json"    // machine-readable export
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown or empty values fall back to issues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet output is suppressed by the caller; exit code only
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}
	return OutputIssues
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config CheckConfig) error {
	switch format {
	case OutputSummary:
		stats := NewStatsReporter(w, shouldUseColors(config))
		stats.PrintStatistics(*result)
		stats.PrintSuggestions(*result)
		stats.PrintDiagnostics(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		stats := NewStatsReporter(w, reporter.UseColors())
		stats.PrintStatistics(*result)
		stats.PrintSuggestions(*result)
		stats.PrintDiagnostics(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}
	return nil
}
