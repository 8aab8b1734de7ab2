package styles

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeprecatedStyles(t *testing.T) {
	previous := []ColorStyle{
		sampleColor("C1", "Kept"),
		sampleColor("C2", "Removed"),
		sampleColor("C3", "Also Removed").AsDeprecated(),
	}
	current := []ColorStyle{sampleColor("C1", "Kept Renamed"), sampleColor("C4", "Added")}

	got := NewStyleParser(current).DeprecatedStyles(previous)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"C2", "C3"}, lo.Map(got, func(c ColorStyle, _ int) string { return c.Identifier }))
	for _, c := range got {
		assert.True(t, c.Deprecated)
	}
	assert.False(t, previous[1].Deprecated, "input must not change")
}

func TestDeprecatedStylesEmptyPrevious(t *testing.T) {
	parser := NewStyleParser([]TextStyle{sampleText("T1", "Body")})
	assert.Empty(t, parser.DeprecatedStyles(nil))
}

func TestMigratedPairs(t *testing.T) {
	tests := []struct {
		name     string
		previous []ColorStyle
		current  []ColorStyle
		want     []Migration[ColorStyle]
	}{
		{
			name:     "renamed",
			previous: []ColorStyle{sampleColor("C2", "Old")},
			current:  []ColorStyle{sampleColor("C2", "New")},
			want:     []Migration[ColorStyle]{{Old: sampleColor("C2", "Old"), New: sampleColor("C2", "New")}},
		},
		{
			name:     "unchanged name",
			previous: []ColorStyle{sampleColor("C2", "Same")},
			current:  []ColorStyle{NewColorStyle("Same", "C2", 1, 1, 1, 1)},
		},
		{
			name:     "removed",
			previous: []ColorStyle{sampleColor("C2", "Gone")},
		},
		{
			name:     "added",
			current:  []ColorStyle{sampleColor("C9", "Fresh")},
		},
		{
			name:     "previous order kept",
			previous: []ColorStyle{sampleColor("B", "b1"), sampleColor("A", "a1")},
			current:  []ColorStyle{sampleColor("A", "a2"), sampleColor("B", "b2")},
			want: []Migration[ColorStyle]{
				{Old: sampleColor("B", "b1"), New: sampleColor("B", "b2")},
				{Old: sampleColor("A", "a1"), New: sampleColor("A", "a2")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewStyleParser(tt.current).MigratedPairs(tt.previous)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyleParserDuplicateIdentifiers(t *testing.T) {
	parser := NewStyleParser([]ColorStyle{sampleColor("C1", "First"), sampleColor("C1", "Second")})

	got, ok := parser.Lookup("C1")
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)

	_, ok = parser.Lookup("missing")
	assert.False(t, ok)
}
