package text

import (
	"iter"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/style"
)

// minBoxSize is the side of the box substituted for a degenerate label box.
const minBoxSize = 2

// Options controls how a label is laid out.
type Options struct {
	// AutoWrap is the maximum line width in pixels; 0 disables wrapping.
	AutoWrap float64

	// WordSpacing is extra space added between words.
	WordSpacing float64

	// CharSpacing is extra space added after every glyph.
	CharSpacing float64

	// Align positions lines shorter than the widest one: 0 flush left,
	// 0.5 centered, 1 flush right.
	Align float64
}

// LayoutOptions derives layout options from a style. Lines align with the
// horizontal anchor.
func LayoutOptions(st *style.Text) Options {
	return Options{
		AutoWrap:    st.Options.AutoWrap,
		WordSpacing: st.Options.WordSpacing,
		CharSpacing: st.Options.CharSpacing,
		Align:       st.Anchor.X,
	}
}

// Component is a run placed on a line.
type Component struct {
	Run *Run

	// X is the offset of the run from the start of the line.
	X     float64
	Width float64

	// Logical and Visual are the run boxes in line coordinates. Visual is
	// only meaningful when Inked is set.
	Logical orb.Bound
	Visual  orb.Bound
	Inked   bool

	// Spacer components only carry word spacing and are not drawn.
	Spacer bool
}

// Line is one line of a label.
type Line struct {
	Components []Component

	Width   float64
	Ascent  float64
	Descent float64
	Leading float64

	// X is the alignment offset of the line; Y is its baseline. Both are in
	// label coordinates, where the first baseline is at y = 0 and y points
	// down.
	X, Y float64

	// Bounds is the logical horizontal extent times the visual vertical
	// extent, in label coordinates.
	Bounds orb.Bound
}

// Height returns the distance from this baseline to the next.
func (l *Line) Height() float64 {
	return l.Ascent + l.Descent + l.Leading
}

// Layout is the shaped, line-broken form of a label.
type Layout struct {
	Text   string
	Lines  []Line
	Bounds orb.Bound
}

// Width returns the width of the label box.
func (l *Layout) Width() float64 { return l.Bounds.Max[0] - l.Bounds.Min[0] }

// Height returns the height of the label box.
func (l *Layout) Height() float64 { return l.Bounds.Max[1] - l.Bounds.Min[1] }

// Ascent returns the ascent of the first line.
func (l *Layout) Ascent() float64 {
	if len(l.Lines) == 0 {
		return 0
	}
	return l.Lines[0].Ascent
}

// SingleRun reports whether the label is one line of one run.
func (l *Layout) SingleRun() bool {
	return len(l.Lines) == 1 && len(l.Lines[0].Components) == 1
}

// Runs yields every drawn run with its origin in label coordinates.
func (l *Layout) Runs() iter.Seq2[orb.Point, *Run] {
	return func(yield func(orb.Point, *Run) bool) {
		for i := range l.Lines {
			line := &l.Lines[i]
			for _, c := range line.Components {
				if c.Spacer {
					continue
				}
				if !yield(orb.Point{line.X + c.X, line.Y}, c.Run) {
					return
				}
			}
		}
	}
}

// PlacedGlyph is a glyph of a label with its pen position in label
// coordinates.
type PlacedGlyph struct {
	Run    *Run
	Glyph  Glyph
	Origin orb.Point
	Char   rune
}

// Glyphs yields every inked glyph of the label in visual order.
func (l *Layout) Glyphs() iter.Seq[PlacedGlyph] {
	return func(yield func(PlacedGlyph) bool) {
		for origin, run := range l.Runs() {
			for _, g := range run.Glyphs {
				if !g.Inked {
					continue
				}
				pg := PlacedGlyph{
					Run:    run,
					Glyph:  g,
					Origin: orb.Point{origin[0] + g.X, origin[1] + g.Y},
					Char:   runeAt(run.Text, g.Cluster),
				}
				if !yield(pg) {
					return
				}
			}
		}
	}
}

// FullBounds returns the label box grown by the halo and joined with the
// shield footprint.
func (l *Layout) FullBounds(halo float64, shield *style.Shield) orb.Bound {
	return FullBounds(l.Bounds, halo, shield)
}

// Engine lays out labels.
type Engine struct {
	shaper Shaper

	// Logger receives diagnostics about dropped characters. Nil discards.
	Logger *slog.Logger
}

// NewEngine returns an engine shaping with s.
func NewEngine(s Shaper) *Engine {
	return &Engine{shaper: s}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Layout shapes label with faces and breaks it into lines.
//
// Text without newlines, wrapping or word spacing that one face covers is
// shaped as a single run. Otherwise the text is split on newlines, each
// line is wrapped at AutoWrap, and every line is split into runs of the
// first face able to display them.
func (e *Engine) Layout(label string, faces []Face, opts Options) (*Layout, error) {
	if len(faces) == 0 {
		return nil, ErrNoFaces
	}
	label = strings.ReplaceAll(label, "\r\n", "\n")
	out := &Layout{Text: label}

	if !strings.Contains(label, "\n") && opts.AutoWrap <= 0 && opts.WordSpacing <= 0 {
		if runs := splitFontRuns(label, faces, e.logger()); len(runs) == 1 {
			line, err := e.lineFromRuns(runs, opts)
			if err != nil {
				return nil, err
			}
			out.Lines = []Line{line}
			out.stack(opts.Align)
			return out, nil
		}
	}

	for _, para := range strings.Split(label, "\n") {
		texts := []string{para}
		if opts.AutoWrap > 0 {
			wrapped, err := wrapLine(para, opts.AutoWrap, func(s string) (float64, error) {
				return e.measure(s, faces, opts)
			})
			if err != nil {
				return nil, err
			}
			texts = wrapped
		}
		for _, t := range texts {
			line, err := e.buildLine(t, faces, opts)
			if err != nil {
				return nil, err
			}
			out.Lines = append(out.Lines, line)
		}
	}
	out.stack(opts.Align)
	return out, nil
}

// buildLine shapes one line of text. Word spacing turns the whitespace
// between words into spacer components.
func (e *Engine) buildLine(text string, faces []Face, opts Options) (Line, error) {
	pieces := []piece{{text: text}}
	if opts.WordSpacing > 0 {
		pieces = wordPieces(text)
	}

	var comps []Component
	x := 0.0
	for _, p := range pieces {
		if p.space && opts.WordSpacing > 0 {
			run, err := e.spacer(p.text, faces, opts.WordSpacing)
			if err != nil {
				return Line{}, err
			}
			if run != nil {
				comps = append(comps, component(run, x, true))
				x += run.Advance
			}
			continue
		}
		for _, fr := range splitFontRuns(p.text, faces, e.logger()) {
			run, err := e.shape(fr, opts.CharSpacing)
			if err != nil {
				return Line{}, err
			}
			comps = append(comps, component(run, x, false))
			x += run.Advance
		}
	}

	if len(comps) == 0 {
		run, err := e.shape(fontRun{text: " ", face: faces[0]}, 0)
		if err != nil {
			return Line{}, err
		}
		comps = append(comps, component(run, 0, false))
	}
	return newLine(comps), nil
}

func (e *Engine) lineFromRuns(runs []fontRun, opts Options) (Line, error) {
	comps := make([]Component, 0, len(runs))
	x := 0.0
	for _, fr := range runs {
		run, err := e.shape(fr, opts.CharSpacing)
		if err != nil {
			return Line{}, err
		}
		comps = append(comps, component(run, x, false))
		x += run.Advance
	}
	return newLine(comps), nil
}

// spacer returns a single space run tracked to the natural width of sep
// plus extra.
func (e *Engine) spacer(sep string, faces []Face, extra float64) (*Run, error) {
	face := firstCapable(faces, ' ')
	if face == nil {
		return nil, nil
	}
	natural, err := e.measure(sep, faces, Options{})
	if err != nil {
		return nil, err
	}
	space, err := e.shape(fontRun{text: " ", face: face}, 0)
	if err != nil {
		return nil, err
	}
	if len(space.Glyphs) == 0 {
		return space, nil
	}
	return space.Track(natural + extra - space.Advance), nil
}

func (e *Engine) shape(fr fontRun, charSpacing float64) (*Run, error) {
	run, err := e.shaper.Shape(fr.text, fr.face)
	if err != nil {
		return nil, err
	}
	if charSpacing != 0 {
		run = run.Track(charSpacing)
	}
	return run, nil
}

// measure returns the advance of s as it would be laid out on one line.
func (e *Engine) measure(s string, faces []Face, opts Options) (float64, error) {
	w := 0.0
	for _, fr := range splitFontRuns(s, faces, e.logger()) {
		run, err := e.shape(fr, opts.CharSpacing)
		if err != nil {
			return 0, err
		}
		w += run.Advance
	}
	return w, nil
}

func component(run *Run, x float64, spacer bool) Component {
	c := Component{
		Run:     run,
		X:       x,
		Width:   run.Advance,
		Logical: translateBound(run.Logical(), x, 0),
		Spacer:  spacer,
	}
	if v, ok := run.Visual(); ok && !spacer {
		c.Visual = translateBound(v, x, 0)
		c.Inked = true
	}
	return c
}

func newLine(comps []Component) Line {
	l := Line{Components: comps}
	var m Metrics
	for _, c := range comps {
		l.Width += c.Width
		if c.Run.Face != nil {
			m = m.merge(c.Run.Face.Metrics())
		} else {
			m = m.merge(Metrics{Ascent: c.Run.Ascent, Descent: c.Run.Descent})
		}
	}
	l.Ascent, l.Descent, l.Leading = m.Ascent, m.Descent, m.LineGap
	return l
}

// stack positions the lines below each other, aligns them and computes the
// label bounds.
func (l *Layout) stack(align float64) {
	maxWidth := 0.0
	for _, line := range l.Lines {
		maxWidth = max(maxWidth, line.Width)
	}

	y := 0.0
	for i := range l.Lines {
		line := &l.Lines[i]
		line.Y = y
		line.X = (maxWidth - line.Width) * align
		y += line.Height()

		top, bottom := line.Y, line.Y
		inked := false
		for _, c := range line.Components {
			if !c.Inked {
				continue
			}
			if !inked {
				top, bottom = c.Visual.Min[1]+line.Y, c.Visual.Max[1]+line.Y
				inked = true
				continue
			}
			top = min(top, c.Visual.Min[1]+line.Y)
			bottom = max(bottom, c.Visual.Max[1]+line.Y)
		}
		line.Bounds = orb.Bound{
			Min: orb.Point{line.X, top},
			Max: orb.Point{line.X + line.Width, bottom},
		}
		if i == 0 {
			l.Bounds = line.Bounds
		} else {
			l.Bounds = l.Bounds.Union(line.Bounds)
		}
	}

	if l.Width() <= 0 || l.Height() <= 0 {
		c := l.Bounds.Center()
		l.Bounds = orb.Bound{
			Min: orb.Point{c[0] - minBoxSize/2, c[1] - minBoxSize/2},
			Max: orb.Point{c[0] + minBoxSize/2, c[1] + minBoxSize/2},
		}
	}
}

// FullBounds returns b grown by halo on every side and joined with the
// footprint of shield around b.
func FullBounds(b orb.Bound, halo float64, shield *style.Shield) orb.Bound {
	full := b
	if halo > 0 {
		full = full.Pad(halo)
	}
	if sb, ok := ShieldBounds(b, shield); ok {
		full = full.Union(sb)
	}
	return full
}

// ShieldBounds returns the footprint of shield drawn behind a label with
// box b, or false without a shield.
//
// ResizeNone centers the graphic at its natural size, ResizeStretch covers
// b plus the margins, and ResizeProportional scales the graphic uniformly
// so its width matches a wider box, or its height a taller one.
func ShieldBounds(b orb.Bound, shield *style.Shield) (orb.Bound, bool) {
	if shield == nil {
		return orb.Bound{}, false
	}
	m := shield.Margins
	grown := orb.Bound{
		Min: orb.Point{b.Min[0] - m.Left, b.Min[1] - m.Top},
		Max: orb.Point{b.Max[0] + m.Right, b.Max[1] + m.Bottom},
	}

	switch shield.Resize {
	case style.ResizeStretch:
		return grown, true
	case style.ResizeProportional:
		if shield.Width <= 0 || shield.Height <= 0 {
			return grown, true
		}
		w, h := grown.Max[0]-grown.Min[0], grown.Max[1]-grown.Min[1]
		scale := h / shield.Height
		if w >= h {
			scale = w / shield.Width
		}
		return centered(grown.Center(), shield.Width*scale, shield.Height*scale), true
	default:
		if shield.Width <= 0 || shield.Height <= 0 {
			return orb.Bound{}, false
		}
		return centered(b.Center(), shield.Width, shield.Height), true
	}
}

func centered(c orb.Point, w, h float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{c[0] - w/2, c[1] - h/2},
		Max: orb.Point{c[0] + w/2, c[1] + h/2},
	}
}

// runeAt returns the rune starting at rune index i of s.
func runeAt(s string, i int) rune {
	n := 0
	for _, r := range s {
		if n == i {
			return r
		}
		n++
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
