package styles

import "github.com/samber/lo"

// StyleParser compares one style variant's current set against a previous
// export. Instantiate it once for colors and once for text styles.
type StyleParser[S Style[S]] struct {
	byID map[string]S
}

// NewStyleParser indexes current by identifier. When identifiers repeat the
// first style wins.
func NewStyleParser[S Style[S]](current []S) *StyleParser[S] {
	unique := lo.UniqBy(current, func(s S) string { return s.StyleIdentifier() })
	return &StyleParser[S]{
		byID: lo.KeyBy(unique, func(s S) string { return s.StyleIdentifier() }),
	}
}

// Lookup returns the current style with the given identifier.
func (p *StyleParser[S]) Lookup(identifier string) (S, bool) {
	s, ok := p.byID[identifier]
	return s, ok
}

// DeprecatedStyles returns the previous styles that no longer exist upstream,
// each marked deprecated, in previous order.
func (p *StyleParser[S]) DeprecatedStyles(previous []S) []S {
	return lo.FilterMap(previous, func(old S, _ int) (S, bool) {
		if _, exists := p.byID[old.StyleIdentifier()]; exists {
			return old, false
		}
		return old.AsDeprecated(), true
	})
}

// MigratedPairs returns the previous styles whose identifier still exists
// under a different name, paired with the renamed current style.
func (p *StyleParser[S]) MigratedPairs(previous []S) []Migration[S] {
	return lo.FilterMap(previous, func(old S, _ int) (Migration[S], bool) {
		current, exists := p.byID[old.StyleIdentifier()]
		if !exists || current.StyleName() == old.StyleName() {
			return Migration[S]{}, false
		}
		return Migration[S]{Old: old, New: current}, true
	})
}
