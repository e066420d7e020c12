package placement

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/index"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/style"
	"github.com/gogpu/label/text"
)

// curvedThreshold is the largest turn, in radians, under which a label
// following a line is still drawn straight.
const curvedThreshold = math.Pi / 60

// minStep is the smallest displacement search step in pixels.
const minStep = 2

// decimateTolerance removes sub-pixel wiggles from lines that labels follow.
const decimateTolerance = 0.5

// ErrNoText is returned for labels with empty text.
var ErrNoText = errors.New("placement: label has no text")

// Label is one label to place. Geometries are in screen coordinates.
type Label struct {
	Text       string
	Geometries []orb.Geometry
	Style      *style.Text
}

// FontResolver resolves the fonts of a style to faces. *text.Library
// implements it.
type FontResolver interface {
	ResolveAll(fonts []style.Font) ([]text.Face, error)
}

// Placement is an accepted label position.
type Placement struct {
	// Bounds is the screen area registered in the conflict index.
	Bounds orb.Bound

	// Transform maps label coordinates to the screen. It is the identity
	// for curved placements, whose glyphs are positioned one by one.
	Transform geom.Matrix

	Curved bool
}

// Painter places labels against a shared conflict index and draws the
// accepted ones.
//
// Painter is not safe for concurrent use; placements depend on the index
// state left by earlier labels.
type Painter struct {
	Index  *index.Index
	Engine *text.Engine
	Fonts  FontResolver

	// Target receives the drawing. A nil Target places labels without
	// drawing them.
	Target render.Target
	Mode   render.Mode

	// Display is the visible screen area.
	Display orb.Bound

	// Logger receives per-label diagnostics. Nil discards them.
	Logger *slog.Logger
}

func (p *Painter) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return discard
}

var discard = slog.New(slog.DiscardHandler)

// Paint places l and draws it, returning the accepted placements.
//
// Polygons are labelled inside, or along their boundary when the style
// follows lines; lines are labelled along their length; anything else is
// labelled at a point. Finding no acceptable position is not an error.
func (p *Painter) Paint(l Label) ([]Placement, error) {
	if l.Text == "" {
		return nil, ErrNoText
	}
	if l.Style == nil {
		return nil, fmt.Errorf("placement: label %q has no style", l.Text)
	}
	layout, err := p.layout(l)
	if err != nil {
		return nil, fmt.Errorf("placement: layout %q: %w", l.Text, err)
	}

	lc := &labelContext{
		painter: p,
		label:   l,
		style:   l.Style,
		opts:    l.Style.Options,
		layout:  layout,
		full:    layout.FullBounds(l.Style.HaloRadius(), l.Style.Shield),
	}

	switch geom.Dimension(l.Geometries) {
	case 2:
		if lc.opts.FollowLine {
			return lc.placeLines()
		}
		return lc.placePolygon()
	case 1:
		return lc.placeLines()
	case 0:
		return lc.placePoint()
	}
	return nil, nil
}

func (p *Painter) layout(l Label) (*text.Layout, error) {
	faces, err := p.Fonts.ResolveAll(l.Style.Fonts)
	if err != nil {
		return nil, err
	}
	return p.Engine.Layout(l.Text, faces, text.LayoutOptions(l.Style))
}

// labelContext carries the state of placing one label.
type labelContext struct {
	painter *Painter
	label   Label
	style   *style.Text
	opts    style.Options
	layout  *text.Layout

	// full is the label box grown by the halo and shield, in label
	// coordinates.
	full orb.Bound
}

func (lc *labelContext) reducer() geom.Reducer {
	return geom.Reducer{Display: lc.painter.Display, RemoveOverlaps: lc.opts.RemoveOverlaps}
}

// step returns the displacement search step.
func (lc *labelContext) step() float64 {
	return max(lc.layout.Ascent(), minStep)
}

// anchorPoint returns the point of the label box at anchor a, in label
// coordinates. Anchor Y counts from the bottom of the box.
func (lc *labelContext) anchorPoint(a style.Anchor) orb.Point {
	b := lc.layout.Bounds
	return orb.Point{
		b.Min[0] + (b.Max[0]-b.Min[0])*a.X,
		b.Max[1] - (b.Max[1]-b.Min[1])*a.Y,
	}
}

// straightTransform maps label coordinates onto the screen so that the
// anchor lands on at, rotated by angle radians clockwise.
func (lc *labelContext) straightTransform(at orb.Point, angle float64, a style.Anchor) geom.Matrix {
	ap := lc.anchorPoint(a)
	return geom.Translate(at[0], at[1]).
		Multiply(geom.Rotate(angle)).
		Multiply(geom.Translate(-ap[0], -ap[1]))
}

// fits reports whether b is acceptable against the display and the
// conflict index.
func (lc *labelContext) fits(b orb.Bound) bool {
	d := lc.painter.Display
	if lc.opts.Partials {
		if !d.Intersects(b) {
			return false
		}
	} else if !d.Contains(b.Min) || !d.Contains(b.Max) {
		return false
	}
	if lc.opts.ConflictResolution && lc.painter.Index.WithinDistance(b, lc.opts.SpaceAround) {
		return false
	}
	return true
}

// accept registers b in the conflict index.
func (lc *labelContext) accept(b orb.Bound) {
	if lc.opts.ConflictResolution {
		lc.painter.Index.Insert(b, lc.label.Text)
	}
}

// place accepts a straight placement and draws it.
func (lc *labelContext) place(m geom.Matrix, b orb.Bound) (Placement, error) {
	lc.accept(b)
	pl := Placement{Bounds: b, Transform: m}
	if lc.painter.Target == nil {
		return pl, nil
	}
	return pl, lc.drawStraight(m)
}

// ringAngles returns the eight search directions, starting from the
// multiple of 45 degrees nearest to start and alternating to either side.
func ringAngles(start float64) []float64 {
	const eighth = math.Pi / 4
	base := math.Round(start/eighth) * eighth
	out := []float64{base}
	for k := 1; k <= 3; k++ {
		out = append(out, base+float64(k)*eighth, base-float64(k)*eighth)
	}
	return append(out, base+math.Pi)
}
