// Package styles implements the style-versioning and template code-generation
// pipeline: the color/text style model, the diff engine that compares the
// current style set with the previously exported snapshot, and the
// placeholder template engine that renders styles into source code.
package styles

import (
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Declaration names used by the style variants.
const (
	ColorDeclaration     = "colorDeclaration"
	TextStyleDeclaration = "textStyleDeclaration"
)

// Style is the accessor set shared by the two style variants.
// S is the concrete variant so AsDeprecated can return it without a downcast.
type Style[S any] interface {
	Replacable
	StyleName() string
	StyleIdentifier() string
	IsDeprecated() bool
	AsDeprecated() S
}

// SameStyle reports whether a and b denote the same style across versions.
// Unlike ==, only the identifier is compared.
func SameStyle[S Style[S]](a, b S) bool {
	return a.StyleIdentifier() == b.StyleIdentifier()
}

// ColorStyle is a named color. Components are fractions in [0,1].
type ColorStyle struct {
	Name       string
	Identifier string
	Red        float64
	Green      float64
	Blue       float64
	Alpha      float64
	Deprecated bool
}

// NewColorStyle returns a color style with alpha rounded to two decimals.
func NewColorStyle(name, identifier string, red, green, blue, alpha float64) ColorStyle {
	return ColorStyle{
		Name:       name,
		Identifier: identifier,
		Red:        red,
		Green:      green,
		Blue:       blue,
		Alpha:      round2(alpha),
	}
}

func (c ColorStyle) StyleName() string       { return c.Name }
func (c ColorStyle) StyleIdentifier() string { return c.Identifier }
func (c ColorStyle) IsDeprecated() bool      { return c.Deprecated }

// AsDeprecated returns a copy of c marked as deprecated.
func (c ColorStyle) AsDeprecated() ColorStyle {
	c.Deprecated = true
	return c
}

// CodeName is the identifier generated code uses for this color.
func (c ColorStyle) CodeName() string { return ToCodeName(c.Name) }

// RGB255 returns the red, green and blue components quantized to 0-255.
func (c ColorStyle) RGB255() (r, g, b int) {
	return to255(c.Red), to255(c.Green), to255(c.Blue)
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c ColorStyle) Hex() string {
	return colorful.Color{R: c.Red, G: c.Green, B: c.Blue}.Clamped().Hex()
}

func (c ColorStyle) DeclarationName() string { return ColorDeclaration }

func (c ColorStyle) ReplacementDictionary() map[string]string {
	r, g, b := c.RGB255()
	return map[string]string{
		"name":         c.CodeName(),
		"styleName":    c.Name,
		"identifier":   c.Identifier,
		"red":          strconv.Itoa(r),
		"green":        strconv.Itoa(g),
		"blue":         strconv.Itoa(b),
		"alpha":        formatNumber(c.Alpha),
		"hex":          c.Hex(),
		"isDeprecated": strconv.FormatBool(c.Deprecated),
	}
}

func (c ColorStyle) IgnoredUpdateAttributes() []string {
	return []string{"identifier", "styleName"}
}

// TextStyle is a named text formatting rule with an embedded text color.
type TextStyle struct {
	Name       string
	Identifier string
	FontName   string
	FontSize   float64
	Kerning    float64
	LineHeight float64
	Color      ColorStyle
	Deprecated bool
}

// NewTextStyle returns a text style with its numeric attributes rounded to
// two decimals so repeated exports do not drift.
func NewTextStyle(name, identifier, fontName string, fontSize, kerning, lineHeight float64, color ColorStyle) TextStyle {
	return TextStyle{
		Name:       name,
		Identifier: identifier,
		FontName:   fontName,
		FontSize:   round2(fontSize),
		Kerning:    round2(kerning),
		LineHeight: round2(lineHeight),
		Color:      color,
	}
}

func (t TextStyle) StyleName() string       { return t.Name }
func (t TextStyle) StyleIdentifier() string { return t.Identifier }
func (t TextStyle) IsDeprecated() bool      { return t.Deprecated }

// AsDeprecated returns a copy of t marked as deprecated.
func (t TextStyle) AsDeprecated() TextStyle {
	t.Deprecated = true
	return t
}

// CodeName is the identifier generated code uses for this text style.
func (t TextStyle) CodeName() string { return ToCodeName(t.Name) }

func (t TextStyle) DeclarationName() string { return TextStyleDeclaration }

func (t TextStyle) ReplacementDictionary() map[string]string {
	r, g, b := t.Color.RGB255()
	return map[string]string{
		"name":         t.CodeName(),
		"styleName":    t.Name,
		"identifier":   t.Identifier,
		"fontName":     t.FontName,
		"fontSize":     formatNumber(t.FontSize),
		"kerning":      formatNumber(t.Kerning),
		"lineHeight":   formatNumber(t.LineHeight),
		"colorName":    t.Color.CodeName(),
		"colorRed":     strconv.Itoa(r),
		"colorGreen":   strconv.Itoa(g),
		"colorBlue":    strconv.Itoa(b),
		"colorAlpha":   formatNumber(t.Color.Alpha),
		"colorHex":     t.Color.Hex(),
		"isDeprecated": strconv.FormatBool(t.Deprecated),
	}
}

func (t TextStyle) IgnoredUpdateAttributes() []string {
	return []string{"identifier", "styleName"}
}

// StyleSet holds one run's colors and text styles.
type StyleSet struct {
	Colors     []ColorStyle
	TextStyles []TextStyle
}

// Len returns the total number of styles in the set.
func (s StyleSet) Len() int { return len(s.Colors) + len(s.TextStyles) }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func to255(v float64) int {
	n := int(math.Round(v * 255))
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return n
}

// formatNumber renders v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	r := round2(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
