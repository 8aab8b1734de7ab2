package styles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// <#@fileExtension=swift#> or <#@swift#>
	metadataPattern = regexp.MustCompile(`<#@\s*([^#]*?)\s*#>`)
	// <#=name#>
	inlinePattern = regexp.MustCompile(`<#=\s*([^#]*?)\s*#>`)
	// <#?isDeprecated=true#>
	conditionPattern = regexp.MustCompile(`<#\?\s*([^=#]*?)\s*=\s*([^#]*?)\s*#>`)
)

const (
	fileExtensionKey = "fileExtension"
	inlineOpener     = "<#="
	deprecatedKey    = "isDeprecated"
)

// CodeGenerator expands a template document against groups of replacable items.
type CodeGenerator struct {
	lines         []string
	fileExtension string
}

// Rendered is the output of one Generate call.
type Rendered struct {
	FileExtension string
	Lines         []string
	Diagnostics   []Diagnostic
}

// Content joins the rendered lines with newlines.
func (r *Rendered) Content() string {
	return strings.Join(r.Lines, "\n")
}

// NewCodeGenerator parses template and strips its file extension line.
func NewCodeGenerator(template string) (*CodeGenerator, error) {
	lines := strings.Split(strings.ReplaceAll(template, "\r\n", "\n"), "\n")

	for i, line := range lines {
		match := metadataPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		ext := parseFileExtension(match[1])
		if ext == "" {
			continue
		}

		kept := make([]string, 0, len(lines)-1)
		kept = append(kept, lines[:i]...)
		kept = append(kept, lines[i+1:]...)

		return &CodeGenerator{lines: kept, fileExtension: ext}, nil
	}

	return nil, ErrMissingFileExtension
}

// parseFileExtension accepts "fileExtension=swift" and the bare "swift".
func parseFileExtension(metadata string) string {
	key, value, found := strings.Cut(metadata, "=")
	if !found {
		value = key
	} else if strings.TrimSpace(key) != fileExtensionKey {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(value), ".")
}

// FileExtension returns the extension declared by the template, without a dot.
func (g *CodeGenerator) FileExtension() string {
	return g.fileExtension
}

// WithoutDeclarations returns a copy of g with every block of the named
// declarations removed, for groups that have nothing to render.
func (g *CodeGenerator) WithoutDeclarations(names ...string) *CodeGenerator {
	lines := g.lines
	for _, name := range names {
		lines = expandDeclaration(lines, name, nil)
	}
	return &CodeGenerator{lines: lines, fileExtension: g.fileExtension}
}

// Generate renders the template. A header group is always rendered first,
// then each group in order. Every group must be non-empty and share one
// declaration name. Lines still holding inline placeholders afterwards are
// reported as diagnostics; they do not fail the call.
func (g *CodeGenerator) Generate(groups ...[]Replacable) (*Rendered, error) {
	all := make([][]Replacable, 0, len(groups)+1)
	all = append(all, headerGroup())
	all = append(all, groups...)

	lines := g.lines
	for i, group := range all {
		name, err := groupDeclaration(group)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		lines = expandDeclaration(lines, name, group)
	}

	return &Rendered{
		FileExtension: g.fileExtension,
		Lines:         append([]string(nil), lines...),
		Diagnostics:   unresolvedPlaceholders(lines),
	}, nil
}

func groupDeclaration(group []Replacable) (string, error) {
	if len(group) == 0 {
		return "", ErrEmptyGroup
	}
	name := group[0].DeclarationName()
	for _, item := range group[1:] {
		if item.DeclarationName() != name {
			return "", fmt.Errorf("%w: %q and %q", ErrMixedGroup, name, item.DeclarationName())
		}
	}
	return name, nil
}

// expandDeclaration replaces every <name>...</name> block with one rendered
// copy of its body per item. It never writes into lines; each splice builds
// a new buffer and scanning resumes after the inserted output.
func expandDeclaration(lines []string, name string, group []Replacable) []string {
	startMarker := "<" + name + ">"
	endMarker := "</" + name + ">"

	from := 0
	for {
		start, end, ok := findBlock(lines, startMarker, endMarker, from)
		if !ok {
			return lines
		}

		body := lines[start+1 : end]
		var rendered []string
		for _, item := range group {
			rendered = append(rendered, renderItem(body, item)...)
		}

		next := make([]string, 0, len(lines)-(end-start+1)+len(rendered))
		next = append(next, lines[:start]...)
		next = append(next, rendered...)
		next = append(next, lines[end+1:]...)

		lines = next
		from = start + len(rendered)
	}
}

// findBlock returns the first start marker at or after from and the first
// end marker after it.
func findBlock(lines []string, startMarker, endMarker string, from int) (start, end int, ok bool) {
	start = -1
	for i := from; i < len(lines); i++ {
		if strings.Contains(lines[i], startMarker) {
			start = i
			break
		}
	}
	if start == -1 {
		return 0, 0, false
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], endMarker) {
			return start, i, true
		}
	}
	return 0, 0, false
}

// renderItem renders one copy of body for item.
func renderItem(body []string, item Replacable) []string {
	dict := item.ReplacementDictionary()
	if d, ok := item.(deprecatable); ok {
		if _, exists := dict[deprecatedKey]; !exists {
			withFlag := make(map[string]string, len(dict)+1)
			for k, v := range dict {
				withFlag[k] = v
			}
			withFlag[deprecatedKey] = strconv.FormatBool(d.IsDeprecated())
			dict = withFlag
		}
	}

	out := make([]string, 0, len(body))
	for _, line := range body {
		line, keep := resolveConditions(line, dict)
		if !keep {
			continue
		}
		out = append(out, substitute(line, dict))
	}
	return out
}

// resolveConditions strips conditional markers whose condition holds and
// reports false when any marker on the line does not hold.
func resolveConditions(line string, dict map[string]string) (string, bool) {
	matches := conditionPattern.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return line, true
	}

	for _, m := range matches {
		value, exists := dict[m[1]]
		if !exists || value != m[2] {
			return "", false
		}
	}

	return conditionPattern.ReplaceAllString(line, ""), true
}

// substitute fills inline placeholders. Unknown keys are left in place so
// the residual scan can report them.
func substitute(line string, dict map[string]string) string {
	if !strings.Contains(line, inlineOpener) {
		return line
	}
	return inlinePattern.ReplaceAllStringFunc(line, func(placeholder string) string {
		key := inlinePattern.FindStringSubmatch(placeholder)[1]
		if value, ok := dict[key]; ok {
			return value
		}
		return placeholder
	})
}

func unresolvedPlaceholders(lines []string) []Diagnostic {
	var diags []Diagnostic
	for i, line := range lines {
		if !strings.Contains(line, inlineOpener) {
			continue
		}

		matches := inlinePattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			diags = append(diags, Diagnostic{
				Kind:    KindUnresolvedPlaceholder,
				Line:    i + 1,
				Message: fmt.Sprintf("malformed placeholder in %q", strings.TrimSpace(line)),
			})
			continue
		}

		for _, m := range matches {
			diags = append(diags, Diagnostic{
				Kind:    KindUnresolvedPlaceholder,
				Line:    i + 1,
				Message: fmt.Sprintf("unresolved placeholder %q", m[0]),
			})
		}
	}
	return diags
}
