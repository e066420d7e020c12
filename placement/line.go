package placement

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/curve"
	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/index"
	"github.com/gogpu/label/style"
)

// placeLines labels the longest visible line, or every line when the
// whole group is labelled. Repeats of the label are kept apart through a
// group index shared by all lines of the label.
func (lc *labelContext) placeLines() ([]Placement, error) {
	lines := lc.reducer().Lines(lc.label.Geometries)
	if len(lines) == 0 {
		lc.painter.logger().Debug("placement: no visible line", "label", lc.label.Text)
		return nil, nil
	}
	if !lc.opts.LabelAllGroup {
		lines = lines[:1]
	}

	group := index.New()
	var out []Placement
	for _, ls := range lines {
		pls, err := lc.placeOnLine(ls, group)
		out = append(out, pls...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (lc *labelContext) placeOnLine(ls orb.LineString, group *index.Index) ([]Placement, error) {
	if lc.opts.FollowLine {
		ls = geom.Decimate(ls, decimateTolerance)
	}
	cur, err := curve.New(ls)
	if err != nil {
		lc.painter.logger().Debug("placement: unusable line", "label", lc.label.Text, "error", err)
		return nil, nil
	}
	if cur.Length() < lc.layout.Width() && !lc.opts.AllowOverruns {
		return nil, nil
	}

	var out []Placement
	for _, pos := range RepeatPositions(cur.Length(), lc.opts.Repeat) {
		for _, d := range Displacements(lc.step(), 2*lc.opts.MaxDisplacement) {
			pl, ok, err := lc.tryLineAt(cur, pos+d, group)
			if err != nil {
				return out, err
			}
			if ok {
				out = append(out, pl)
				break
			}
		}
	}
	return out, nil
}

// RepeatPositions returns the ordinates at which a label is tried along a
// line of the given length: the midpoint, then alternately before and after
// it every repeat pixels. Without repeat, or with a repeat of at least half
// the length, only the midpoint is returned.
func RepeatPositions(length, repeat float64) []float64 {
	mid := length / 2
	out := []float64{mid}
	if repeat <= 0 || repeat >= mid {
		return out
	}
	for k := 1.0; ; k++ {
		lo, hi := mid-k*repeat, mid+k*repeat
		if lo < 0 && hi > length {
			return out
		}
		if lo >= 0 {
			out = append(out, lo)
		}
		if hi <= length {
			out = append(out, hi)
		}
	}
}

// Displacements returns the search offsets 0, +step, -step, +2*step, ...
// up to limit.
func Displacements(step, limit float64) []float64 {
	out := []float64{0}
	if step <= 0 {
		return out
	}
	for d := step; d <= limit; d += step {
		out = append(out, d, -d)
	}
	return out
}

// tryLineAt tests the label centered at ordinate center of cur.
func (lc *labelContext) tryLineAt(cur *curve.Cursor, center float64, group *index.Index) (Placement, bool, error) {
	w := lc.layout.Width()
	start, end := center-w/2, center+w/2

	if lc.opts.FollowLine && len(lc.layout.Lines) == 1 {
		turn, err := cur.MaxAngleChange(max(start, 0), min(end, cur.Length()))
		if err == nil && turn >= curvedThreshold {
			return lc.tryCurved(cur, start, end, group)
		}
	}
	return lc.tryStraight(cur, start, end, group)
}

func (lc *labelContext) tryStraight(cur *curve.Cursor, start, end float64, group *index.Index) (Placement, bool, error) {
	if (start < 0 || end > cur.Length()) && !lc.opts.AllowOverruns {
		return Placement{}, false, nil
	}

	w := cur.Copy()
	w.MoveTo(start)
	p0 := w.Position()
	w.MoveTo(end)
	p1 := w.Position()
	w.MoveTo((start + end) / 2)
	mid := w.Position()

	angle := w.Angle()
	if p0 != p1 {
		angle = math.Atan2(p1[1]-p0[1], p1[0]-p0[0])
	}
	if lc.opts.ForceLeftToRight {
		angle = curve.FoldOrientation(angle)
	}

	ap := lc.anchorPoint(style.Anchor{X: 0.5, Y: lc.style.Anchor.Y})
	m := geom.Translate(mid[0], mid[1]).
		Multiply(geom.Rotate(angle)).
		Multiply(geom.Translate(-ap[0], -ap[1]-lc.style.Displacement.Y))
	b := m.ApplyBound(lc.full)
	if !lc.fitsGroup(b, group) {
		return Placement{}, false, nil
	}
	group.Insert(b, lc.label.Text)
	pl, err := lc.place(m, b)
	return pl, true, err
}

func (lc *labelContext) tryCurved(cur *curve.Cursor, start, end float64, group *index.Index) (Placement, bool, error) {
	length := cur.Length()
	if start < 0 || end > length {
		return Placement{}, false, nil
	}

	c := cur
	if lc.opts.ForceLeftToRight {
		w := cur.Copy()
		w.MoveTo(start)
		p0 := w.Position()
		w.MoveTo(end)
		if w.Position()[0] < p0[0] {
			c = cur.Reverse()
			start, end = length-end, length-start
		}
	}

	if !lc.curveTurnsWithin(c, start) {
		return Placement{}, false, nil
	}

	b := c.SubLine(start, end).Bound().Pad(lc.curvedPad())
	if !lc.fitsGroup(b, group) {
		return Placement{}, false, nil
	}
	group.Insert(b, lc.label.Text)
	lc.accept(b)

	pl := Placement{Bounds: b, Transform: geom.Identity(), Curved: true}
	if lc.painter.Target == nil {
		return pl, true, nil
	}
	return pl, true, lc.drawCurved(c, start)
}

// fitsGroup reports whether b fits the display, the conflict index and the
// label's own group index.
func (lc *labelContext) fitsGroup(b orb.Bound, group *index.Index) bool {
	return lc.fits(b) && !group.WithinDistance(b, max(lc.opts.MinGroupDistance, 0))
}

// curvedPad returns how far a curved label may extend from its line.
func (lc *labelContext) curvedPad() float64 {
	b := lc.layout.Bounds
	ay := lc.anchorPoint(style.Anchor{Y: lc.style.Anchor.Y})[1]
	return max(ay-b.Min[1], b.Max[1]-ay) + math.Abs(lc.style.Displacement.Y) + lc.style.HaloRadius()
}

// curveTurnsWithin reports whether no two consecutive glyphs laid from
// start turn by more than the maximum angle delta.
func (lc *labelContext) curveTurnsWithin(c *curve.Cursor, start float64) bool {
	limit := lc.opts.MaxAngleDelta * math.Pi / 180
	if limit <= 0 {
		return true
	}
	ok := true
	prev := math.NaN()
	lc.eachCurvedGlyph(c, start, func(g curvedGlyph) bool {
		if !math.IsNaN(prev) && math.Abs(angleDiff(g.Angle, prev)) > limit {
			ok = false
			return false
		}
		prev = g.Angle
		return true
	})
	return ok
}

// angleDiff returns a - b mapped into [-pi, pi].
func angleDiff(a, b float64) float64 {
	return math.Remainder(a-b, 2*math.Pi)
}
