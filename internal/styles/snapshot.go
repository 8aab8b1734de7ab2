package styles

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// snapshotVersion is bumped when the persisted layout changes.
const snapshotVersion = 1

// Snapshot is the persisted form of the previously exported style set.
// Color components are stored as 0-255 integers; alpha stays a 0-1 fraction.
type Snapshot struct {
	Version    int             `json:"version"`
	Colors     []SnapshotColor `json:"colors"`
	TextStyles []SnapshotText  `json:"textStyles"`
}

// SnapshotColor is a persisted color style.
type SnapshotColor struct {
	Name         string  `json:"name"`
	Identifier   string  `json:"identifier"`
	Red          int     `json:"red"`
	Green        int     `json:"green"`
	Blue         int     `json:"blue"`
	Alpha        float64 `json:"alpha"`
	IsDeprecated bool    `json:"isDeprecated"`
}

// SnapshotText is a persisted text style.
type SnapshotText struct {
	Name         string        `json:"name"`
	Identifier   string        `json:"identifier"`
	FontName     string        `json:"fontName"`
	FontSize     float64       `json:"fontSize"`
	Kerning      float64       `json:"kerning"`
	LineHeight   float64       `json:"lineHeight"`
	Color        SnapshotColor `json:"color"`
	IsDeprecated bool          `json:"isDeprecated"`
}

// EncodeSnapshot serializes set as indented JSON.
func EncodeSnapshot(set StyleSet) ([]byte, error) {
	snap := Snapshot{
		Version:    snapshotVersion,
		Colors:     lo.Map(set.Colors, func(c ColorStyle, _ int) SnapshotColor { return encodeColor(c) }),
		TextStyles: lo.Map(set.TextStyles, func(t TextStyle, _ int) SnapshotText { return encodeText(t) }),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses data written by EncodeSnapshot. Every failure wraps
// ErrSnapshotDecode.
func DecodeSnapshot(data []byte) (StyleSet, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return StyleSet{}, fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}
	if snap.Version > snapshotVersion {
		return StyleSet{}, fmt.Errorf("%w: unsupported version %d", ErrSnapshotDecode, snap.Version)
	}

	return StyleSet{
		Colors:     lo.Map(snap.Colors, func(c SnapshotColor, _ int) ColorStyle { return decodeColor(c) }),
		TextStyles: lo.Map(snap.TextStyles, func(t SnapshotText, _ int) TextStyle { return decodeText(t) }),
	}, nil
}

func encodeColor(c ColorStyle) SnapshotColor {
	r, g, b := c.RGB255()
	return SnapshotColor{
		Name:         c.Name,
		Identifier:   c.Identifier,
		Red:          r,
		Green:        g,
		Blue:         b,
		Alpha:        round2(c.Alpha),
		IsDeprecated: c.Deprecated,
	}
}

func decodeColor(c SnapshotColor) ColorStyle {
	return ColorStyle{
		Name:       c.Name,
		Identifier: c.Identifier,
		Red:        float64(c.Red) / 255,
		Green:      float64(c.Green) / 255,
		Blue:       float64(c.Blue) / 255,
		Alpha:      round2(c.Alpha),
		Deprecated: c.IsDeprecated,
	}
}

func encodeText(t TextStyle) SnapshotText {
	return SnapshotText{
		Name:         t.Name,
		Identifier:   t.Identifier,
		FontName:     t.FontName,
		FontSize:     round2(t.FontSize),
		Kerning:      round2(t.Kerning),
		LineHeight:   round2(t.LineHeight),
		Color:        encodeColor(t.Color),
		IsDeprecated: t.Deprecated,
	}
}

func decodeText(t SnapshotText) TextStyle {
	return TextStyle{
		Name:       t.Name,
		Identifier: t.Identifier,
		FontName:   t.FontName,
		FontSize:   round2(t.FontSize),
		Kerning:    round2(t.Kerning),
		LineHeight: round2(t.LineHeight),
		Color:      decodeColor(t.Color),
		Deprecated: t.IsDeprecated,
	}
}
