package styles

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentJSON = `{
  "name": "Design System",
  "styles": [
    {
      "id": "S:1",
      "name": "Brand/Primary",
      "type": "FILL",
      "fills": [
        {"type": "GRADIENT_LINEAR", "color": {"r": 0, "g": 1, "b": 0, "a": 1}},
        {"type": "SOLID", "visible": false, "color": {"r": 1, "g": 1, "b": 1, "a": 1}},
        {"type": "SOLID", "opacity": 0.5, "color": {"r": 0.2, "g": 0.4, "b": 1, "a": 1}},
        {"type": "SOLID", "color": {"r": 1, "g": 0, "b": 0, "a": 1}}
      ]
    },
    {
      "id": "S:2",
      "name": "Body",
      "type": "TEXT",
      "fills": [{"type": "SOLID", "color": {"r": 0.1, "g": 0.1, "b": 0.1, "a": 1}}],
      "style": {"fontFamily": "Inter", "fontSize": 16.004, "letterSpacing": 0.2, "lineHeightPx": 24}
    },
    {
      "id": "S:3",
      "name": "Broken",
      "type": "TEXT"
    },
    {
      "id": "S:4",
      "name": "Caption",
      "type": "TEXT",
      "style": {"fontFamily": "Inter", "fontSize": 12, "letterSpacing": 0, "lineHeightPx": 16}
    }
  ]
}`

func TestParseStyleDocumentJSON(t *testing.T) {
	set, diags, err := ParseStyleDocument([]byte(documentJSON), FormatJSON)
	require.NoError(t, err)

	require.Len(t, set.Colors, 1)
	brand := set.Colors[0]
	assert.Equal(t, "Brand/Primary", brand.Name)
	assert.Equal(t, "S:1", brand.Identifier)
	assert.InDelta(t, 0.2, brand.Red, 1e-9, "first visible solid fill wins")
	assert.InDelta(t, 0.5, brand.Alpha, 1e-9, "opacity multiplies alpha")

	require.Len(t, set.TextStyles, 2)
	body := set.TextStyles[0]
	assert.Equal(t, "Inter", body.FontName)
	assert.InDelta(t, 16.0, body.FontSize, 1e-9)
	assert.InDelta(t, 0.1, body.Color.Red, 1e-9)
	assert.Equal(t, "Body Color", body.Color.Name)
	assert.Equal(t, "S:2:color", body.Color.Identifier)

	caption := set.TextStyles[1]
	assert.Equal(t, "#000000", caption.Color.Hex(), "text color defaults to black")

	require.Len(t, diags, 1)
	assert.Equal(t, KindStyleParseFailure, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "Broken")
}

func TestParseStyleDocumentYAML(t *testing.T) {
	doc := `
styles:
  - id: "C1"
    name: Surface
    type: FILL
    fills:
      - type: SOLID
        color: {r: 1, g: 1, b: 1, a: 0.9}
  - id: "T1"
    name: Title
    type: TEXT
    style:
      fontFamily: Inter Bold
      fontSize: 24
      letterSpacing: -0.5
      lineHeightPx: 32
`
	set, diags, err := ParseStyleDocument([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, set.Colors, 1)
	assert.Equal(t, "#ffffff", set.Colors[0].Hex())
	assert.InDelta(t, 0.9, set.Colors[0].Alpha, 1e-9)

	require.Len(t, set.TextStyles, 1)
	assert.Equal(t, "Inter Bold", set.TextStyles[0].FontName)
	assert.InDelta(t, -0.5, set.TextStyles[0].Kerning, 1e-9)
}

func TestStyleRecordInvalid(t *testing.T) {
	tests := []struct {
		name   string
		record StyleRecord
	}{
		{"missing id", StyleRecord{Name: "X", Type: RecordTypeFill, Fills: []Paint{{Type: "SOLID", Color: &RGBA{A: 1}}}}},
		{"unknown type", StyleRecord{ID: "1", Name: "X", Type: "EFFECT"}},
		{"fill without paints", StyleRecord{ID: "1", Name: "X", Type: RecordTypeFill}},
		{"fill without solid paint", StyleRecord{ID: "1", Name: "X", Type: RecordTypeFill, Fills: []Paint{{Type: "IMAGE"}}}},
		{"component out of range", StyleRecord{ID: "1", Name: "X", Type: RecordTypeFill, Fills: []Paint{{Type: "SOLID", Color: &RGBA{R: 2, A: 1}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.record.ColorStyle()
			assert.ErrorIs(t, err, ErrStyleParse)
		})
	}

	t.Run("text without font", func(t *testing.T) {
		_, err := StyleRecord{ID: "1", Name: "X", Type: RecordTypeText, Style: &TypeStyle{FontSize: 12}}.TextStyle()
		assert.ErrorIs(t, err, ErrStyleParse)
	})
}

func TestParseStyleDocumentUndecodable(t *testing.T) {
	_, _, err := ParseStyleDocument([]byte("not json"), FormatJSON)
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("styles.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("styles.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("styles.json"))
	assert.Equal(t, FormatJSON, FormatForPath("styles"))
}

func TestDocumentSchema(t *testing.T) {
	data, err := DocumentSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Contains(t, schema, "properties")
	assert.Contains(t, string(data), "styles")
}
