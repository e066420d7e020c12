package text

import (
	"github.com/paulmach/orb"

	"github.com/gogpu/label/geom"
)

// Glyph is a shaped glyph. Positions are relative to the run origin on the
// baseline, with y pointing down.
type Glyph struct {
	ID GlyphID

	// Cluster is the index of the first rune of the glyph cluster in the
	// run text.
	Cluster int

	// X and Y are the pen position with shaping offsets applied.
	X, Y float64

	// Advance is the horizontal advance of the glyph.
	Advance float64

	// Bounds is the ink box of the glyph, empty for blank glyphs.
	Bounds orb.Bound
	Inked  bool
}

// Run is a piece of text shaped with a single face, in visual order.
type Run struct {
	Text   string
	Face   Face
	Glyphs []Glyph

	// Advance is the total horizontal advance.
	Advance float64

	// Ascent and Descent are the face metrics, Descent positive.
	Ascent, Descent float64

	// RTL reports a right-to-left run.
	RTL bool

	visual orb.Bound
	inked  bool
}

// Shaper turns text into a shaped run.
type Shaper interface {
	Shape(text string, face Face) (*Run, error)
}

// NewRun builds a run from positioned glyphs, computing its advance and ink
// bounds.
func NewRun(text string, face Face, glyphs []Glyph) *Run {
	r := &Run{Text: text, Face: face, Glyphs: glyphs}
	if face != nil {
		m := face.Metrics()
		r.Ascent, r.Descent = m.Ascent, m.Descent
	}
	r.measure()
	return r
}

func (r *Run) measure() {
	r.Advance = 0
	r.inked = false
	for _, g := range r.Glyphs {
		r.Advance += g.Advance
		if !g.Inked {
			continue
		}
		if !r.inked {
			r.visual = g.Bounds
			r.inked = true
			continue
		}
		r.visual = r.visual.Union(g.Bounds)
	}
	if !r.inked {
		r.visual = orb.Bound{}
	}
}

// Logical returns the logical box of the run: the advance horizontally and
// the face ascent and descent vertically.
func (r *Run) Logical() orb.Bound {
	return orb.Bound{
		Min: orb.Point{0, -r.Ascent},
		Max: orb.Point{r.Advance, r.Descent},
	}
}

// Visual returns the union of the glyph ink boxes, or false for a run
// without ink, such as whitespace.
func (r *Run) Visual() (orb.Bound, bool) {
	return r.visual, r.inked
}

// Track returns a copy of the run with extra pixels of advance added after
// every glyph.
func (r *Run) Track(extra float64) *Run {
	out := *r
	out.Glyphs = make([]Glyph, len(r.Glyphs))
	shift := 0.0
	for i, g := range r.Glyphs {
		g.X += shift
		if g.Inked {
			g.Bounds = translateBound(g.Bounds, shift, 0)
		}
		g.Advance += extra
		shift += extra
		out.Glyphs[i] = g
	}
	out.measure()
	return &out
}

// GlyphOutline returns the outline of g relative to its own pen position.
// The run face must implement Outliner.
func (r *Run) GlyphOutline(g Glyph) (*geom.Path, error) {
	o, ok := r.Face.(Outliner)
	if !ok {
		return nil, ErrUnsupportedFace
	}
	return o.Outline(g.ID)
}

// Outline returns the outline of the whole run transformed by m.
func (r *Run) Outline(m geom.Matrix) (*geom.Path, error) {
	out := geom.NewPath()
	for _, g := range r.Glyphs {
		if !g.Inked {
			continue
		}
		p, err := r.GlyphOutline(g)
		if err != nil {
			return nil, err
		}
		out.Append(p.Transform(m.Multiply(geom.Translate(g.X, g.Y))))
	}
	return out, nil
}

func translateBound(b orb.Bound, dx, dy float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] + dx, b.Min[1] + dy},
		Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy},
	}
}
