package styles

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// SourceFile is a project text file scanned for deprecated style references.
type SourceFile struct {
	Name    string
	Content string
}

// StyleExporter combines the latest styles with the previously exported
// snapshot: deprecated carry-overs, renames and the attribute changelog.
type StyleExporter struct {
	latest   StyleSet
	previous StyleSet
	colors   *StyleParser[ColorStyle]
	texts    *StyleParser[TextStyle]
}

// NewStyleExporter prepares an export of latest against previous.
func NewStyleExporter(latest, previous StyleSet) *StyleExporter {
	return &StyleExporter{
		latest:   latest,
		previous: previous,
		colors:   NewStyleParser(latest.Colors),
		texts:    NewStyleParser(latest.TextStyles),
	}
}

// DeprecatedStyles returns the previously exported styles that disappeared upstream.
func (e *StyleExporter) DeprecatedStyles() StyleSet {
	return StyleSet{
		Colors:     e.colors.DeprecatedStyles(e.previous.Colors),
		TextStyles: e.texts.DeprecatedStyles(e.previous.TextStyles),
	}
}

// NewStyles returns the styles to emit: the latest set followed by the
// deprecated carry-overs. Every previous identifier is present in the result.
func (e *StyleExporter) NewStyles() StyleSet {
	deprecated := e.DeprecatedStyles()

	colors := make([]ColorStyle, 0, len(e.latest.Colors)+len(deprecated.Colors))
	colors = append(colors, e.latest.Colors...)
	colors = append(colors, deprecated.Colors...)

	texts := make([]TextStyle, 0, len(e.latest.TextStyles)+len(deprecated.TextStyles))
	texts = append(texts, e.latest.TextStyles...)
	texts = append(texts, deprecated.TextStyles...)

	return StyleSet{Colors: colors, TextStyles: texts}
}

// Migrations returns the renamed colors and text styles.
func (e *StyleExporter) Migrations() ([]Migration[ColorStyle], []Migration[TextStyle]) {
	return e.colors.MigratedPairs(e.previous.Colors), e.texts.MigratedPairs(e.previous.TextStyles)
}

// MigrationItems returns the renames as replacable alias items, colors first.
func (e *StyleExporter) MigrationItems() (colors, texts []StyleMigration) {
	colorPairs, textPairs := e.Migrations()
	colors = lo.Map(colorPairs, func(m Migration[ColorStyle], _ int) StyleMigration {
		return NewStyleMigration(m)
	})
	texts = lo.Map(textPairs, func(m Migration[TextStyle], _ int) StyleMigration {
		return NewStyleMigration(m)
	})
	return colors, texts
}

// Changelog compares every style present in both the previous and latest
// sets, renamed ones included, and returns the styles whose rendered
// attributes changed. Colors come first, each in previous order.
func (e *StyleExporter) Changelog() []UpdatedStyle {
	var changelog []UpdatedStyle
	changelog = append(changelog, changelogFor(e.colors, e.previous.Colors)...)
	changelog = append(changelog, changelogFor(e.texts, e.previous.TextStyles)...)
	return changelog
}

func changelogFor[S Style[S]](parser *StyleParser[S], previous []S) []UpdatedStyle {
	seen := make(map[string]bool, len(previous))
	return lo.FilterMap(previous, func(old S, _ int) (UpdatedStyle, bool) {
		id := old.StyleIdentifier()
		if seen[id] {
			return UpdatedStyle{}, false
		}
		seen[id] = true

		current, exists := parser.Lookup(id)
		if !exists {
			return UpdatedStyle{}, false
		}
		return NewUpdatedStyle(old, current).Get()
	})
}

// DeprecatedReferences maps each deprecated style's display name to the
// sorted names of the files that mention its code name literally. Styles
// without references are omitted. Files are only read, never modified.
func (e *StyleExporter) DeprecatedReferences(files []SourceFile) map[string][]string {
	deprecated := e.DeprecatedStyles()

	codeNames := make(map[string]string, deprecated.Len())
	for _, c := range deprecated.Colors {
		codeNames[c.Name] = c.CodeName()
	}
	for _, t := range deprecated.TextStyles {
		codeNames[t.Name] = t.CodeName()
	}

	return FindReferences(codeNames, files)
}

// FindReferences maps each key of codeNames to the sorted, de-duplicated
// names of the files containing its code name.
func FindReferences(codeNames map[string]string, files []SourceFile) map[string][]string {
	refs := make(map[string][]string)
	for styleName, codeName := range codeNames {
		if codeName == "" {
			continue
		}
		var found []string
		for _, f := range files {
			if strings.Contains(f.Content, codeName) {
				found = append(found, f.Name)
			}
		}
		if len(found) == 0 {
			continue
		}
		found = lo.Uniq(found)
		sort.Strings(found)
		refs[styleName] = found
	}
	return refs
}

// DeprecationNotes turns the deprecated styles into changelog items, with
// the files that still reference them.
func (e *StyleExporter) DeprecationNotes(references map[string][]string) []DeprecationNote {
	deprecated := e.DeprecatedStyles()

	notes := make([]DeprecationNote, 0, deprecated.Len())
	for _, c := range deprecated.Colors {
		notes = append(notes, DeprecationNote{StyleName: c.Name, CodeName: c.CodeName(), ReferencedIn: references[c.Name]})
	}
	for _, t := range deprecated.TextStyles {
		notes = append(notes, DeprecationNote{StyleName: t.Name, CodeName: t.CodeName(), ReferencedIn: references[t.Name]})
	}
	return notes
}
