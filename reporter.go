package stylegen

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter prints check results in golangci-lint format
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config CheckConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config CheckConfig) bool {
	if config.UseColors {
		return true
	}

	// CI providers that render ANSI colors
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues sorted by file, line and column
func (r *Reporter) PrintIssues(issues []Issue) {
	sortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue as "file:line:col: message (linter)"
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result CheckResult) {
	totalIssues := len(result.Issues)
	errors, warnings := countSeverities(result.Issues)

	fmt.Fprintln(r.w, "")

	counts := pluralizeCount(totalIssues, "issue", "issues")
	var details []string
	if errors > 0 && warnings > 0 {
		details = append(details,
			pluralizeCount(errors, "error", "errors")+", "+pluralizeCount(warnings, "warning", "warnings"))
	}
	if result.TruncatedCount > 0 {
		details = append(details, pluralizeCount(result.TruncatedCount, "issue", "issues")+" truncated")
	}
	if len(details) > 0 {
		counts += " (" + strings.Join(details, "; ") + ")"
	}
	fmt.Fprintf(r.w, "%s:\n", counts)

	styleNames := make([]string, 0, len(result.References))
	for name := range result.References {
		styleNames = append(styleNames, name)
	}
	sort.Strings(styleNames)
	for _, name := range styleNames {
		fmt.Fprintf(r.w, "* %s: %s\n", name, pluralizeCount(len(result.References[name]), "file", "files"))
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: deprecated styles are removed from generated code once nothing references them", r.useColors))
	}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

func countSeverities(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// StatsReporter prints check statistics and suggested replacements
type StatsReporter struct {
	w         io.Writer
	useColors bool
}

// NewStatsReporter creates a statistics reporter
func NewStatsReporter(w io.Writer, useColors bool) *StatsReporter {
	return &StatsReporter{w: w, useColors: useColors}
}

// PrintStatistics outputs reference statistics
func (r *StatsReporter) PrintStatistics(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Deprecated Style Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------------")

	fmt.Fprintf(r.w, "Deprecated Styles:  %d\n", result.DeprecatedStyles)
	fmt.Fprintf(r.w, "Still Referenced:   %d\n", result.ReferencedStyles)
	fmt.Fprintf(r.w, "Safe To Remove:     %d\n", result.DeprecatedStyles-result.ReferencedStyles)
	fmt.Fprintf(r.w, "References:         %d\n", len(result.Issues)+result.TruncatedCount)
	fmt.Fprintf(r.w, "Files Scanned:      %d\n", result.FilesScanned)
}

// PrintSuggestions lists each suggested replacement once with its count
func (r *StatsReporter) PrintSuggestions(result CheckResult) {
	type suggestion struct {
		from, to string
		count    int
	}
	byKey := make(map[string]*suggestion)
	var order []string
	for _, issue := range result.Issues {
		if issue.Replacement == nil {
			continue
		}
		from := replacedText(issue)
		key := from + "\x00" + issue.Replacement.NewText
		if s, ok := byKey[key]; ok {
			s.count++
			continue
		}
		byKey[key] = &suggestion{from: from, to: issue.Replacement.NewText, count: 1}
		order = append(order, key)
	}
	if len(order) == 0 {
		return
	}
	sort.Strings(order)

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Suggested Replacements", r.useColors))
	fmt.Fprintln(r.w, "----------------------")
	for i, key := range order {
		s := byKey[key]
		fmt.Fprintf(r.w, "%d. %s → %s (%s)\n", i+1, s.from, s.to, pluralizeCount(s.count, "occurrence", "occurrences"))
	}
}

// PrintDiagnostics shows non-fatal problems found while checking
func (r *StatsReporter) PrintDiagnostics(result CheckResult) {
	if len(result.Diagnostics) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, d := range result.Diagnostics {
		fmt.Fprintf(r.w, "• %s\n", d)
	}
}

// replacedText returns the source text an issue's replacement would overwrite.
func replacedText(issue Issue) string {
	if len(issue.SourceLines) == 0 || issue.Replacement == nil {
		return ""
	}
	line := issue.SourceLines[0]
	start := issue.Pos.Column - 1
	end := start + issue.Replacement.InlineLength
	if start < 0 || end > len(line) {
		return ""
	}
	return line[start:end]
}
