package placement

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/gogpu/label/curve"
	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/style"
)

// fitColumns is the number of sample columns across a label when measuring
// how much of it lies inside a polygon.
const fitColumns = 10

// Attempt is one rotation tried for a polygon label.
type Attempt struct {
	// Rotation is in radians, clockwise on screen.
	Rotation float64

	// Alternate marks the rotation derived from the polygon alignment
	// option rather than the style.
	Alternate bool
}

// Attempts returns the rotations to try for a label in poly: the style
// rotation, then the alignment alternate when it differs. The ortho
// alternate is vertical for a horizontal or slanted style rotation and
// horizontal for a vertical one.
func Attempts(st *style.Text, poly orb.Polygon) []Attempt {
	primary := Attempt{Rotation: st.RotationRadians()}
	var alt float64
	switch st.Options.PolygonAlign {
	case style.AlignOrtho:
		alt = -math.Pi / 2
		if isVertical(primary.Rotation) {
			alt = 0
		}
	case style.AlignMBR:
		a, ok := geom.MinimumRectangle(poly)
		if !ok {
			return []Attempt{primary}
		}
		alt = curve.FoldOrientation(a)
	default:
		return []Attempt{primary}
	}
	if math.Abs(alt-primary.Rotation) < 1e-9 {
		return []Attempt{primary}
	}
	return []Attempt{primary, {Rotation: alt, Alternate: true}}
}

// isVertical reports whether angle runs along the screen y axis.
func isVertical(angle float64) bool {
	return math.Abs(math.Abs(math.Remainder(angle, math.Pi))-math.Pi/2) < 1e-9
}

// placePolygon places the label inside the largest visible polygon, at its
// centroid or at positions around it that lie inside the polygon.
func (lc *labelContext) placePolygon() ([]Placement, error) {
	log := lc.painter.logger()
	poly, ok := lc.reducer().Polygon(lc.label.Geometries)
	if !ok {
		log.Debug("placement: no visible polygon", "label", lc.label.Text)
		return nil, nil
	}

	c, err := geom.Centroid(poly)
	if err != nil {
		log.Debug("placement: polygon has no centroid", "label", lc.label.Text, "error", err)
		return nil, nil
	}
	if !geom.Contains(poly, c) {
		if c, ok = geom.ScanlineCenter(poly, c[1]); !ok {
			log.Debug("placement: centroid outside polygon", "label", lc.label.Text)
			return nil, nil
		}
	}

	attempts := Attempts(lc.style, poly)
	if pl, ok, err := lc.tryPolygonAt(poly, c, attempts); ok || err != nil {
		return []Placement{pl}, err
	}

	step := lc.step()
	for r := step; r <= lc.opts.MaxDisplacement; r += step {
		for _, a := range ringAngles(0) {
			sin, cos := math.Sincos(a)
			at := orb.Point{c[0] + r*cos, c[1] + r*sin}
			if !geom.Contains(poly, at) {
				continue
			}
			if pl, ok, err := lc.tryPolygonAt(poly, at, attempts); ok || err != nil {
				return []Placement{pl}, err
			}
		}
	}
	return nil, nil
}

// tryPolygonAt tests the label centered on at with each attempt in turn.
func (lc *labelContext) tryPolygonAt(poly orb.Polygon, at orb.Point, attempts []Attempt) (Placement, bool, error) {
	for _, att := range attempts {
		m := lc.straightTransform(at, att.Rotation, lc.style.Anchor)
		b := m.ApplyBound(lc.full)
		if !lc.fits(b) {
			continue
		}
		if lc.goodnessOfFit(poly, m) < lc.opts.GoodnessOfFit {
			continue
		}
		pl, err := lc.place(m, b)
		return pl, true, err
	}
	return Placement{}, false, nil
}

// goodnessOfFit returns the fraction of the label box inside poly, sampled
// on a grid of one row per line and fitColumns columns.
func (lc *labelContext) goodnessOfFit(poly orb.Polygon, m geom.Matrix) (fit float64) {
	b := lc.layout.Bounds
	defer func() {
		if r := recover(); r != nil {
			lc.painter.logger().Debug("placement: sampling fit failed, using box overlap",
				"label", lc.label.Text, "panic", r)
			fit = boxOverlap(poly.Bound(), m.ApplyBound(b))
		}
	}()

	rows := max(len(lc.layout.Lines), 1)
	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	inside := 0
	for i := range rows {
		y := b.Min[1] + (float64(i)+0.5)*h/float64(rows)
		for j := range fitColumns {
			x := b.Min[0] + (float64(j)+0.5)*w/fitColumns
			if planar.PolygonContains(poly, m.Apply(orb.Point{x, y})) {
				inside++
			}
		}
	}
	return float64(inside) / float64(rows*fitColumns)
}

// boxOverlap returns the share of label covered by the polygon bounds.
func boxOverlap(poly, label orb.Bound) float64 {
	area := (label.Max[0] - label.Min[0]) * (label.Max[1] - label.Min[1])
	if area <= 0 || !poly.Intersects(label) {
		return 0
	}
	w := min(poly.Max[0], label.Max[0]) - max(poly.Min[0], label.Min[0])
	h := min(poly.Max[1], label.Max[1]) - max(poly.Min[1], label.Min[1])
	return w * h / area
}
