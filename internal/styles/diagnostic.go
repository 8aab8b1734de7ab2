package styles

import "fmt"

// DiagnosticKind classifies a non-fatal problem found during an export run.
type DiagnosticKind string

// Diagnostic kinds
const (
	KindStyleParseFailure     DiagnosticKind = "style-parse-failure"
	KindUnresolvedPlaceholder DiagnosticKind = "unresolved-placeholder"
	KindSnapshotDecodeFailure DiagnosticKind = "snapshot-decode-failure"
)

// Diagnostic is a warning collected instead of being printed.
// Callers decide how to surface it.
type Diagnostic struct {
	Kind    DiagnosticKind
	Source  string // template, document or snapshot the problem came from
	Line    int    // 1-based, 0 when not line-specific
	Message string
}

// String formats the diagnostic as "source:line: message".
func (d Diagnostic) String() string {
	switch {
	case d.Source != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d: %s", d.Source, d.Line, d.Message)
	case d.Source != "":
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	default:
		return d.Message
	}
}
