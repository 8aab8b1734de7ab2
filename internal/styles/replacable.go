package styles

import (
	"strconv"
	"strings"
)

// Declaration names for the non-style replacable items.
const (
	HeaderDeclaration             = "headerDeclaration"
	UpdatedStyleDeclaration       = "styleDeclaration"
	ColorMigrationDeclaration     = "colorMigrationDeclaration"
	TextStyleMigrationDeclaration = "textStyleMigrationDeclaration"
	DeprecationNoteDeclaration    = "deprecationDeclaration"
)

// Replacable is anything the template engine can render: it names the
// declaration block it belongs to and supplies the placeholder values.
type Replacable interface {
	DeclarationName() string
	ReplacementDictionary() map[string]string
	// IgnoredUpdateAttributes lists dictionary keys excluded from attribute diffs.
	IgnoredUpdateAttributes() []string
}

// deprecatable is implemented by items whose isDeprecated flag can satisfy
// a conditional marker even when the dictionary does not carry it.
type deprecatable interface {
	IsDeprecated() bool
}

// HeaderLine is one line of the provenance header every generated file starts with.
type HeaderLine struct {
	Text string
}

func (h HeaderLine) DeclarationName() string { return HeaderDeclaration }

func (h HeaderLine) ReplacementDictionary() map[string]string {
	return map[string]string{"headerLine": h.Text}
}

func (h HeaderLine) IgnoredUpdateAttributes() []string { return nil }

// HeaderMessage is the fixed provenance message rendered into every file.
var HeaderMessage = []string{
	"This file was generated by stylegen from the exported design styles.",
	"Do not edit it by hand: changes are overwritten on the next export.",
}

func headerGroup() []Replacable {
	group := make([]Replacable, len(HeaderMessage))
	for i, line := range HeaderMessage {
		group[i] = HeaderLine{Text: line}
	}
	return group
}

// Migration pairs a previously exported style with its renamed successor.
type Migration[S Style[S]] struct {
	Old S
	New S
}

// StyleMigration renders a rename so generated code can keep the old code
// name as an alias of the new one.
type StyleMigration struct {
	declaration  string
	OldName      string
	NewName      string
	OldStyleName string
	NewStyleName string
}

// NewStyleMigration converts a migrated pair into a replacable alias item.
func NewStyleMigration[S Style[S]](m Migration[S]) StyleMigration {
	declaration := ColorMigrationDeclaration
	if m.New.DeclarationName() == TextStyleDeclaration {
		declaration = TextStyleMigrationDeclaration
	}
	return StyleMigration{
		declaration:  declaration,
		OldName:      ToCodeName(m.Old.StyleName()),
		NewName:      ToCodeName(m.New.StyleName()),
		OldStyleName: m.Old.StyleName(),
		NewStyleName: m.New.StyleName(),
	}
}

func (m StyleMigration) DeclarationName() string { return m.declaration }

func (m StyleMigration) ReplacementDictionary() map[string]string {
	return map[string]string{
		"oldName":      m.OldName,
		"newName":      m.NewName,
		"oldStyleName": m.OldStyleName,
		"newStyleName": m.NewStyleName,
	}
}

func (m StyleMigration) IgnoredUpdateAttributes() []string { return nil }

// DeprecationNote is a changelog line for a style removed upstream.
type DeprecationNote struct {
	StyleName    string
	CodeName     string
	ReferencedIn []string
}

func (d DeprecationNote) DeclarationName() string { return DeprecationNoteDeclaration }

func (d DeprecationNote) ReplacementDictionary() map[string]string {
	return map[string]string{
		"styleName":      d.StyleName,
		"name":           d.CodeName,
		"referencedIn":   strings.Join(d.ReferencedIn, ", "),
		"referenceCount": strconv.Itoa(len(d.ReferencedIn)),
	}
}

func (d DeprecationNote) IgnoredUpdateAttributes() []string { return nil }

// IsDeprecated is always true; it lets templates use <#?isDeprecated=true#>.
func (d DeprecationNote) IsDeprecated() bool { return true }

// Group converts a slice of concrete replacable values into a template group.
func Group[T Replacable](items []T) []Replacable {
	group := make([]Replacable, len(items))
	for i, item := range items {
		group[i] = item
	}
	return group
}
