package styles

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Record types as exported by the design tool plugin.
const (
	RecordTypeFill = "FILL"
	RecordTypeText = "TEXT"

	paintSolid = "SOLID"
)

// DocumentFormat selects the decoder for a style document.
type DocumentFormat string

// Supported document formats
const (
	FormatJSON DocumentFormat = "json"
	FormatYAML DocumentFormat = "yaml"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) DocumentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// StyleDocument is the decoded export of the design tool's published styles.
type StyleDocument struct {
	Name   string        `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"description=Source file name in the design tool"`
	Styles []StyleRecord `json:"styles" yaml:"styles" jsonschema:"required"`
}

// StyleRecord is one published style. Type FILL records become colors and
// TEXT records become text styles.
type StyleRecord struct {
	ID    string     `json:"id" yaml:"id" jsonschema:"required"`
	Name  string     `json:"name" yaml:"name" jsonschema:"required"`
	Type  string     `json:"type" yaml:"type" jsonschema:"required,enum=FILL,enum=TEXT"`
	Fills []Paint    `json:"fills,omitempty" yaml:"fills,omitempty"`
	Style *TypeStyle `json:"style,omitempty" yaml:"style,omitempty"`
}

// Paint is a fill applied by a style.
type Paint struct {
	Type    string   `json:"type" yaml:"type"`
	Visible *bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Color   *RGBA    `json:"color,omitempty" yaml:"color,omitempty"`
}

// RGBA is a color with 0-1 components.
type RGBA struct {
	R float64 `json:"r" yaml:"r" jsonschema:"minimum=0,maximum=1"`
	G float64 `json:"g" yaml:"g" jsonschema:"minimum=0,maximum=1"`
	B float64 `json:"b" yaml:"b" jsonschema:"minimum=0,maximum=1"`
	A float64 `json:"a" yaml:"a" jsonschema:"minimum=0,maximum=1"`
}

// TypeStyle holds the typography attributes of a TEXT record.
type TypeStyle struct {
	FontFamily    string  `json:"fontFamily" yaml:"fontFamily"`
	FontSize      float64 `json:"fontSize" yaml:"fontSize"`
	LetterSpacing float64 `json:"letterSpacing" yaml:"letterSpacing"`
	LineHeightPx  float64 `json:"lineHeightPx" yaml:"lineHeightPx"`
}

// Validate checks the attributes every record needs.
func (r StyleRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(RecordTypeFill, RecordTypeText)),
		validation.Field(&r.Fills, validation.When(r.Type == RecordTypeFill, validation.Required)),
		validation.Field(&r.Style, validation.When(r.Type == RecordTypeText, validation.Required)),
	)
}

// Validate checks the typography attributes.
func (t TypeStyle) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.FontFamily, validation.Required),
		validation.Field(&t.FontSize, validation.Required, validation.Min(0.0)),
		validation.Field(&t.LineHeightPx, validation.Min(0.0)),
	)
}

// Validate checks that every component is a 0-1 fraction.
func (c RGBA) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.R, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.G, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.B, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.A, validation.Min(0.0), validation.Max(1.0)),
	)
}

// DecodeStyleDocument decodes data in the given format.
func DecodeStyleDocument(data []byte, format DocumentFormat) (StyleDocument, error) {
	var doc StyleDocument
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return StyleDocument{}, fmt.Errorf("decode %s style document: %w", format, err)
	}
	return doc, nil
}

// ParseStyleDocument decodes data and converts its records into a style set.
// A malformed record is skipped with a StyleParseFailure diagnostic; only an
// undecodable document is an error.
func ParseStyleDocument(data []byte, format DocumentFormat) (StyleSet, []Diagnostic, error) {
	doc, err := DecodeStyleDocument(data, format)
	if err != nil {
		return StyleSet{}, nil, err
	}
	set, diags := doc.StyleSet()
	return set, diags, nil
}

// StyleSet converts the document's records, in document order.
func (d StyleDocument) StyleSet() (StyleSet, []Diagnostic) {
	var set StyleSet
	var diags []Diagnostic

	for i, record := range d.Styles {
		switch record.Type {
		case RecordTypeFill:
			color, err := record.ColorStyle()
			if err != nil {
				diags = append(diags, recordDiagnostic(i, record, err))
				continue
			}
			set.Colors = append(set.Colors, color)
		default:
			text, err := record.TextStyle()
			if err != nil {
				diags = append(diags, recordDiagnostic(i, record, err))
				continue
			}
			set.TextStyles = append(set.TextStyles, text)
		}
	}

	return set, diags
}

func recordDiagnostic(index int, record StyleRecord, err error) Diagnostic {
	label := record.Name
	if label == "" {
		label = fmt.Sprintf("#%d", index)
	}
	return Diagnostic{
		Kind:    KindStyleParseFailure,
		Message: fmt.Sprintf("skipping style %q: %v", label, err),
	}
}

// ColorStyle converts a FILL record using its first visible solid paint.
func (r StyleRecord) ColorStyle() (ColorStyle, error) {
	if err := r.Validate(); err != nil {
		return ColorStyle{}, fmt.Errorf("%w: %v", ErrStyleParse, err)
	}
	if r.Type != RecordTypeFill {
		return ColorStyle{}, fmt.Errorf("%w: record type %s is not %s", ErrStyleParse, r.Type, RecordTypeFill)
	}

	paint, ok := firstSolidPaint(r.Fills)
	if !ok {
		return ColorStyle{}, fmt.Errorf("%w: no visible solid fill", ErrStyleParse)
	}
	if err := paint.Color.Validate(); err != nil {
		return ColorStyle{}, fmt.Errorf("%w: %v", ErrStyleParse, err)
	}

	alpha := paint.Color.A
	if paint.Opacity != nil {
		alpha *= *paint.Opacity
	}

	return NewColorStyle(r.Name, r.ID, round2(paint.Color.R), round2(paint.Color.G), round2(paint.Color.B), alpha), nil
}

// TextStyle converts a TEXT record. The text color comes from the first
// visible solid fill and defaults to opaque black.
func (r StyleRecord) TextStyle() (TextStyle, error) {
	if err := r.Validate(); err != nil {
		return TextStyle{}, fmt.Errorf("%w: %v", ErrStyleParse, err)
	}
	if r.Type != RecordTypeText {
		return TextStyle{}, fmt.Errorf("%w: record type %s is not %s", ErrStyleParse, r.Type, RecordTypeText)
	}

	color := NewColorStyle(r.Name+" Color", r.ID+":color", 0, 0, 0, 1)
	if paint, ok := firstSolidPaint(r.Fills); ok {
		if err := paint.Color.Validate(); err != nil {
			return TextStyle{}, fmt.Errorf("%w: %v", ErrStyleParse, err)
		}
		alpha := paint.Color.A
		if paint.Opacity != nil {
			alpha *= *paint.Opacity
		}
		color = NewColorStyle(color.Name, color.Identifier, round2(paint.Color.R), round2(paint.Color.G), round2(paint.Color.B), alpha)
	}

	s := r.Style
	return NewTextStyle(r.Name, r.ID, s.FontFamily, s.FontSize, s.LetterSpacing, s.LineHeightPx, color), nil
}

// firstSolidPaint returns the first visible SOLID paint carrying a color.
func firstSolidPaint(fills []Paint) (Paint, bool) {
	for _, p := range fills {
		if p.Type != paintSolid || p.Color == nil {
			continue
		}
		if p.Visible != nil && !*p.Visible {
			continue
		}
		return p, true
	}
	return Paint{}, false
}

// DocumentSchema returns the JSON Schema of the style document format.
func DocumentSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&StyleDocument{})
	return json.MarshalIndent(schema, "", "  ")
}
