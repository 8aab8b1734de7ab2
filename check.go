package stylegen

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/yacobolo/stylegen/internal/styles"
)

// CheckResult contains the deprecated style references found in the project
type CheckResult struct {
	Issues           []Issue
	FilesScanned     int
	DeprecatedStyles int // Deprecated styles in the snapshot
	ReferencedStyles int // Deprecated styles with at least one reference
	TruncatedCount   int // Issues removed due to MaxIssues

	// Files per referenced style name, sorted
	References  map[string][]string
	Diagnostics []styles.Diagnostic
}

// Check is the reference checking entry point
func Check(config CheckConfig) (*CheckResult, error) {
	return CheckContext(context.Background(), config)
}

// CheckContext scans the project for code that still uses styles the last
// export marked deprecated. Each occurrence becomes an Issue, with the
// closest current style suggested as replacement.
func CheckContext(ctx context.Context, config CheckConfig) (*CheckResult, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := config.Logger
	result := &CheckResult{References: map[string][]string{}}

	snapshot, diags, err := LoadSnapshot(config.FS, config.SnapshotFile)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = diags

	deprecated, current := partitionCodeNames(snapshot)
	result.DeprecatedStyles = len(deprecated)
	if len(deprecated) == 0 {
		log.Debug("no deprecated styles, nothing to check")
		return result, nil
	}

	scanner := NewScanner(config.FS, config.ScanExclude, log)
	files, stats, err := scanner.Scan(ctx, config.ScanPaths)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesScanned

	refs := LocateReferences(files, deprecated)
	log.WithFields(logrus.Fields{"count": len(refs), "files": len(files)}).Debug("located deprecated references")

	severity := SeverityWarning
	if config.Strict {
		severity = SeverityError
	}

	suggestions := make(map[string]string)
	for _, ref := range refs {
		result.References[ref.StyleName] = append(result.References[ref.StyleName], ref.Location.File)

		suggestion, cached := suggestions[ref.CodeName]
		if !cached {
			suggestion = SuggestReplacement(ref.CodeName, current).OrEmpty()
			suggestions[ref.CodeName] = suggestion
		}
		result.Issues = append(result.Issues, newDeprecatedIssue(ref, suggestion, severity))
	}

	for name, files := range result.References {
		files = lo.Uniq(files)
		sort.Strings(files)
		result.References[name] = files
	}
	result.ReferencedStyles = len(result.References)

	if config.MaxIssues > 0 && len(result.Issues) > config.MaxIssues {
		sortIssues(result.Issues)
		result.TruncatedCount = len(result.Issues) - config.MaxIssues
		result.Issues = result.Issues[:config.MaxIssues]
	}

	return result, nil
}

// partitionCodeNames splits the snapshot into deprecated styles (display
// name to code name) and the code names of current styles.
func partitionCodeNames(set styles.StyleSet) (deprecated map[string]string, current []string) {
	deprecated = make(map[string]string)
	for _, c := range set.Colors {
		if c.Deprecated {
			deprecated[c.Name] = c.CodeName()
		} else {
			current = append(current, c.CodeName())
		}
	}
	for _, t := range set.TextStyles {
		if t.Deprecated {
			deprecated[t.Name] = t.CodeName()
		} else {
			current = append(current, t.CodeName())
		}
	}
	return deprecated, lo.Uniq(current)
}

func newDeprecatedIssue(ref StyleReference, suggestion, severity string) Issue {
	text := fmt.Sprintf(IssueDeprecatedStyle, ref.StyleName, ref.CodeName)
	issue := Issue{
		FromLinter:  LinterName,
		Severity:    severity,
		SourceLines: []string{ref.Location.Text},
		Pos: IssuePos{
			Filename: ref.Location.File,
			Line:     ref.Location.Line,
			Column:   ref.Location.Column,
		},
	}
	if suggestion != "" {
		text += fmt.Sprintf(IssueSuggestion, suggestion)
		issue.Replacement = &Replacement{NewText: suggestion, InlineLength: len(ref.CodeName)}
	}
	issue.Text = text
	return issue
}

// sortIssues orders issues by file, then line, then column.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}
