package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yacobolo/stylegen"
)

// errIssuesFound fails the command after the issues were printed.
var errIssuesFound = errors.New("deprecated style references found")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Find code that still uses deprecated styles",
	Long: `Scan the project for references to styles the last export marked
deprecated and suggest the closest current style for each.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd.OutOrStdout())
	},
}

func init() {
	f := checkCmd.Flags()
	f.Bool("strict", false, "Report issues as errors and exit 1 (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (stylecheck) suffix on issues")
}

// runCheck is shared between `stylegen check` and `stylegen generate --check`.
func runCheck(w io.Writer) error {
	config := buildCheckConfig()
	config.Logger = newLogger()

	result, err := stylegen.Check(config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := stylegen.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := stylegen.WriteOutput(w, result, format, config); err != nil {
			return err
		}
	}

	// "Soft Gate": warnings pass, errors (strict mode) fail the build
	for _, issue := range result.Issues {
		if issue.Severity == stylegen.SeverityError {
			return errIssuesFound
		}
	}
	return nil
}
