package placement

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/style"
)

// placePoint places the label at the representative point, first as the
// style asks, then orbiting the point in rings up to the maximum
// displacement.
func (lc *labelContext) placePoint() ([]Placement, error) {
	pt, ok := lc.reducer().Point(lc.label.Geometries)
	if !ok {
		lc.painter.logger().Debug("placement: no point inside display", "label", lc.label.Text)
		return nil, nil
	}

	st := lc.style
	rot := st.RotationRadians()
	d := st.Displacement
	at := orb.Point{pt[0] + d.X, pt[1] - d.Y}
	m := lc.straightTransform(at, rot, st.Anchor)
	if b := m.ApplyBound(lc.full); lc.fits(b) {
		pl, err := lc.place(m, b)
		return []Placement{pl}, err
	}

	step := lc.step()
	for r := step; r <= lc.opts.MaxDisplacement; r += step {
		for _, a := range ringAngles(d.Angle()) {
			sin, cos := math.Sincos(a)
			at := orb.Point{pt[0] + r*cos, pt[1] + r*sin}
			for _, anchor := range ringAnchors(a) {
				m := lc.straightTransform(at, rot, anchor)
				if b := m.ApplyBound(lc.full); lc.fits(b) {
					pl, err := lc.place(m, b)
					return []Placement{pl}, err
				}
			}
		}
	}
	return nil, nil
}

// ringAnchors returns the anchors tried at a ring position in direction
// angle: the label is anchored on the side facing the point, then slid
// along that side.
func ringAnchors(angle float64) []style.Anchor {
	const eps = 1e-9
	sin, cos := math.Sincos(angle)

	x := 0.5
	switch {
	case cos > eps:
		x = 0
	case cos < -eps:
		x = 1
	}
	// Screen y points down: a direction with negative sine goes up the
	// screen, so the label sits on its bottom edge.
	y := 0.5
	switch {
	case sin < -eps:
		y = 0
	case sin > eps:
		y = 1
	}

	switch {
	case x == 0.5:
		return []style.Anchor{{X: 0.5, Y: y}, {X: 0, Y: y}, {X: 1, Y: y}}
	case y == 0.5:
		return []style.Anchor{{X: x, Y: 0.5}, {X: x, Y: 0}, {X: x, Y: 1}}
	default:
		return []style.Anchor{{X: x, Y: y}, {X: x, Y: 0.5}, {X: 0.5, Y: y}}
	}
}
