package stylegen

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func TestSuggestReplacement(t *testing.T) {
	tests := []struct {
		name       string
		deprecated string
		candidates []string
		expected   mo.Option[string]
	}{
		{"fragment of a longer name", "red", []string{"surface", "redAccent", "brandRed"}, mo.Some("brandRed")},
		{"ties go to the first name", "ab", []string{"zab", "yab"}, mo.Some("yab")},
		{"closest edit distance", "oldRed", []string{"surface", "newRed"}, mo.Some("newRed")},
		{"nothing close enough", "x", []string{"averyverylongname"}, mo.None[string]()},
		{"no candidates", "oldRed", nil, mo.None[string]()},
		{"empty name", "", []string{"brandRed"}, mo.None[string]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestReplacement(tt.deprecated, tt.candidates))
		})
	}
}
