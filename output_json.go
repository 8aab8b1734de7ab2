package stylegen

import (
	"encoding/json"
	"io"
	"sort"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version     string          `json:"version"`
	Timestamp   string          `json:"timestamp"`
	Summary     JSONSummary     `json:"summary"`
	Issues      []JSONIssue     `json:"issues"`
	References  []JSONReference `json:"references"`
	Diagnostics []string        `json:"diagnostics"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TotalIssues      int `json:"total_issues"`
	Errors           int `json:"errors"`
	Warnings         int `json:"warnings"`
	Truncated        int `json:"truncated"`
	FilesScanned     int `json:"files_scanned"`
	DeprecatedStyles int `json:"deprecated_styles"`
	ReferencedStyles int `json:"referenced_styles"`
}

// JSONIssue represents a single check issue
type JSONIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Linter      string `json:"linter"`
	Source      string `json:"source,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

// JSONReference lists the files still using one deprecated style
type JSONReference struct {
	Style string   `json:"style"`
	Files []string `json:"files"`
}

// now is replaced in tests
var now = time.Now

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult) JSONOutput {
	errors, warnings := countSeverities(result.Issues)

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		replacement := ""
		if issue.Replacement != nil {
			replacement = issue.Replacement.NewText
		}
		issues[i] = JSONIssue{
			File:        issue.Pos.Filename,
			Line:        issue.Pos.Line,
			Column:      issue.Pos.Column,
			Severity:    issue.Severity,
			Message:     issue.Text,
			Linter:      issue.FromLinter,
			Source:      source,
			Replacement: replacement,
		}
	}

	references := make([]JSONReference, 0, len(result.References))
	for style, files := range result.References {
		references = append(references, JSONReference{Style: style, Files: files})
	}
	sort.Slice(references, func(i, j int) bool { return references[i].Style < references[j].Style })

	diagnostics := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diagnostics[i] = d.String()
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:      len(result.Issues),
			Errors:           errors,
			Warnings:         warnings,
			Truncated:        result.TruncatedCount,
			FilesScanned:     result.FilesScanned,
			DeprecatedStyles: result.DeprecatedStyles,
			ReferencedStyles: result.ReferencedStyles,
		},
		Issues:      issues,
		References:  references,
		Diagnostics: diagnostics,
	}
}
