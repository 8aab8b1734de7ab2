package stylegen

// Issue represents a single check violation in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "stylecheck"
	Text        string       `json:"Text"`        // "deprecated style \"Old Red\" (oldRed) is still referenced"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	Replacement *Replacement `json:"Replacement"` // Optional fix suggestion
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "Sources/App/ProfileView.swift"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the code name)
}

// Replacement suggests the current style to use instead
type Replacement struct {
	NewText      string // "brandRed"
	InlineLength int    // Length of text to replace
}

// LinterName is reported as FromLinter on every issue
const LinterName = "stylecheck"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueDeprecatedStyle = "deprecated style %q (%s) is still referenced"
	IssueSuggestion      = "; use %s instead"
)
