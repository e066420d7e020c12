// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/label/geom"

// Mode selects how label text is drawn.
type Mode int

const (
	// ModeGlyphRun always draws text as glyph runs.
	ModeGlyphRun Mode = iota
	// ModeOutline always fills glyph outlines.
	ModeOutline
	// ModeAdaptive fills outlines under rotated or sheared transforms and
	// draws glyph runs otherwise.
	ModeAdaptive
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeGlyphRun:
		return "glyphrun"
	case ModeOutline:
		return "outline"
	case ModeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode named s, or false.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeGlyphRun, ModeOutline, ModeAdaptive} {
		if m.String() == s {
			return m, true
		}
	}
	return ModeGlyphRun, false
}

// UseOutline reports whether text drawn under m should be filled as
// outlines.
func (m Mode) UseOutline(t geom.Matrix) bool {
	switch m {
	case ModeOutline:
		return true
	case ModeAdaptive:
		return !t.IsScaleOnly()
	default:
		return false
	}
}
