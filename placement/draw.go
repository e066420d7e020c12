package placement

import (
	"github.com/gogpu/label/curve"
	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/style"
	"github.com/gogpu/label/text"
)

// curvedGlyph is a glyph laid along a line.
type curvedGlyph struct {
	text.PlacedGlyph

	// Transform maps the glyph pen position frame onto the screen.
	Transform geom.Matrix

	// Angle is the line direction at the glyph center.
	Angle float64
}

// eachCurvedGlyph lays the glyphs of the first label line along c starting
// at ordinate start, centering each glyph advance on the line and rotating
// it with the local direction. It stops when fn returns false.
func (lc *labelContext) eachCurvedGlyph(c *curve.Cursor, start float64, fn func(curvedGlyph) bool) {
	b := lc.layout.Bounds
	ay := lc.anchorPoint(style.Anchor{Y: lc.style.Anchor.Y})[1]
	dy := lc.style.Displacement.Y
	w := c.Copy()
	for g := range lc.layout.Glyphs() {
		half := g.Glyph.Advance / 2
		w.MoveTo(start + g.Origin[0] - b.Min[0] + half)
		pos := w.Position()
		a := w.Angle()
		m := geom.Translate(pos[0], pos[1]).
			Multiply(geom.Rotate(a)).
			Multiply(geom.Translate(-half, g.Origin[1]-ay-dy))
		if !fn(curvedGlyph{PlacedGlyph: g, Transform: m, Angle: a}) {
			return
		}
	}
}

// drawStraight draws the label under m: shield, halo, then text.
func (lc *labelContext) drawStraight(m geom.Matrix) error {
	t := lc.painter.Target
	t.Push(m)
	defer t.Pop()

	if err := lc.drawShield(t); err != nil {
		return err
	}

	var outline *geom.Path
	if lc.style.Halo != nil || lc.painter.Mode.UseOutline(t.Transform()) {
		p, err := lc.outline()
		if err != nil {
			return err
		}
		outline = p
	}
	if err := lc.drawHalo(t, outline); err != nil {
		return err
	}

	fill := lc.style.Fill
	return render.WithOpacity(t, fill.Opacity, func(t render.Target) error {
		t.SetPaint(render.SolidPaint(fill.Color))
		if outline != nil && lc.painter.Mode.UseOutline(t.Transform()) {
			t.Fill(outline)
			return nil
		}
		for origin, run := range lc.layout.Runs() {
			if err := t.DrawGlyphRun(render.GlyphRun{Run: run, Origin: origin}); err != nil {
				return err
			}
		}
		return nil
	})
}

// drawCurved draws the label glyph by glyph along c. Curved text is always
// filled as outlines.
func (lc *labelContext) drawCurved(c *curve.Cursor, start float64) error {
	outline := geom.NewPath()
	var err error
	lc.eachCurvedGlyph(c, start, func(g curvedGlyph) bool {
		var p *geom.Path
		if p, err = g.Run.GlyphOutline(g.Glyph); err != nil {
			return false
		}
		outline.Append(p.Transform(g.Transform))
		return true
	})
	if err != nil {
		return err
	}

	t := lc.painter.Target
	if err := lc.drawHalo(t, outline); err != nil {
		return err
	}
	fill := lc.style.Fill
	return render.WithOpacity(t, fill.Opacity, func(t render.Target) error {
		t.SetPaint(render.SolidPaint(fill.Color))
		t.Fill(outline)
		return nil
	})
}

// outline returns the glyph outlines of the label in label coordinates.
func (lc *labelContext) outline() (*geom.Path, error) {
	out := geom.NewPath()
	for origin, run := range lc.layout.Runs() {
		p, err := run.Outline(geom.Translate(origin[0], origin[1]))
		if err != nil {
			return nil, err
		}
		out.Append(p)
	}
	return out, nil
}

func (lc *labelContext) drawHalo(t render.Target, outline *geom.Path) error {
	h := lc.style.Halo
	if h == nil || outline.IsEmpty() {
		return nil
	}
	return render.WithOpacity(t, h.Fill.Opacity, func(t render.Target) error {
		t.SetPaint(render.SolidPaint(h.Fill.Color))
		t.Stroke(outline, render.HaloStroke(h.Radius))
		return nil
	})
}

func (lc *labelContext) drawShield(t render.Target) error {
	sh := lc.style.Shield
	b, ok := text.ShieldBounds(lc.layout.Bounds, sh)
	if !ok {
		return nil
	}
	p := geom.NewPath()
	p.Rect(b)
	return render.WithOpacity(t, sh.Fill.Opacity, func(t render.Target) error {
		t.SetPaint(render.SolidPaint(sh.Fill.Color))
		t.Fill(p)
		if sh.Stroke != nil && sh.StrokeWidth > 0 {
			t.SetPaint(render.SolidPaint(sh.Stroke.Color))
			s := render.DefaultStroke()
			s.Width = sh.StrokeWidth
			t.Stroke(p, s)
		}
		return nil
	})
}
