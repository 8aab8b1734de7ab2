package styles

import "errors"

var (
	// ErrMissingFileExtension is returned when a template has no <#@fileExtension=...#> line.
	ErrMissingFileExtension = errors.New("template is missing the file extension placeholder")
	// ErrEmptyGroup is returned when Generate receives a group without items.
	ErrEmptyGroup = errors.New("replacable group is empty")
	// ErrMixedGroup is returned when a group mixes declaration names.
	ErrMixedGroup = errors.New("replacable group mixes declaration names")
	// ErrSnapshotDecode wraps every snapshot decoding failure.
	ErrSnapshotDecode = errors.New("snapshot decode failed")
	// ErrStyleParse wraps every style record that could not be converted.
	ErrStyleParse = errors.New("style parse failed")
)
