package text

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/paulmach/orb"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/label/geom"
)

// Face is a font at a specific pixel size.
type Face interface {
	// Name identifies the face in log messages.
	Name() string

	// Size returns the size of the face in pixels.
	Size() float64

	// Metrics returns the font metrics at this face's size.
	Metrics() Metrics

	// HasGlyph reports whether the face can display r.
	HasGlyph(r rune) bool
}

// Outliner is implemented by faces that can produce glyph outlines.
type Outliner interface {
	// Outline returns the outline of glyph gid in pixels, relative to the
	// glyph origin on the baseline, with y pointing down.
	Outline(gid GlyphID) (*geom.Path, error)
}

// GlyphID is a glyph index in a font.
type GlyphID uint32

// fontFace is a Face backed by a Font. The shaping face and the outline
// buffer carry per-call state and are guarded by mu.
type fontFace struct {
	font    *Font
	size    float64
	metrics Metrics

	mu      sync.Mutex
	shaping *font.Face
	buf     sfnt.Buffer
}

func newFontFace(f *Font, size float64) *fontFace {
	ff := &fontFace{font: f, size: size, shaping: font.NewFace(f.shaping)}
	if ext, ok := ff.shaping.FontHExtents(); ok {
		scale := size / float64(f.shaping.Upem())
		ff.metrics = Metrics{
			Ascent:  float64(ext.Ascender) * scale,
			Descent: -float64(ext.Descender) * scale,
			LineGap: float64(ext.LineGap) * scale,
		}
	} else {
		ff.metrics = Metrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	return ff
}

func (f *fontFace) Name() string {
	return fmt.Sprintf("%s@%g", f.font.name, f.size)
}

func (f *fontFace) Size() float64 { return f.size }

func (f *fontFace) Metrics() Metrics { return f.metrics }

func (f *fontFace) HasGlyph(r rune) bool {
	if r == '\t' {
		return true
	}
	_, ok := f.font.shaping.NominalGlyph(r)
	return ok
}

// Outline loads the glyph outline through sfnt.
func (f *fontFace) Outline(gid GlyphID) (*geom.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs, err := f.font.outline.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), floatToFixed(f.size), nil)
	if err != nil {
		return nil, fmt.Errorf("text: glyph %d: %w", gid, err)
	}
	p := geom.NewPath()
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(fixedPoint(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(fixedPoint(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(fixedPoint(s.Args[0]), fixedPoint(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubeTo(fixedPoint(s.Args[0]), fixedPoint(s.Args[1]), fixedPoint(s.Args[2]))
		}
	}
	if open {
		p.Close()
	}
	return p, nil
}

func fixedPoint(p fixed.Point26_6) orb.Point {
	return orb.Point{fixedToFloat(p.X), fixedToFloat(p.Y)}
}

// floatToFixed converts a float64 to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
