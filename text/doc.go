// Package text lays out label text.
//
// A Font holds parsed font data and hands out Faces at pixel sizes. A
// Library maps style font families to fonts. A Shaper turns a string and a
// Face into a Run of positioned glyphs; GoTextShaper does this with the
// HarfBuzz port of go-text/typesetting, splitting bidirectional text with
// golang.org/x/text/unicode/bidi.
//
// Engine.Layout produces a Layout: the label broken into lines at explicit
// newlines and at the auto-wrap width, each line split into runs of the
// first face able to display them, with word and character spacing applied.
// The label box is the union of the line boxes, each spanning the logical
// advance horizontally and the glyph ink vertically.
//
// # Coordinates
//
// Layouts use pixel coordinates with y pointing down. The first baseline
// is at y = 0 and the first line starts at x = 0.
//
// # Example
//
//	lib, _ := text.DefaultLibrary()
//	face, _ := lib.Resolve(style.Font{Family: "sans-serif", Size: 12})
//	engine := text.NewEngine(text.NewGoTextShaper(""))
//	layout, err := engine.Layout("Main Street", []text.Face{face}, text.Options{})
package text
