package geom

import (
	"errors"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// ErrNoCentroid is returned when no usable centroid can be derived from a
// polygon.
var ErrNoCentroid = errors.New("geom: polygon has no usable centroid")

// Centroid returns the area centroid of p. When that fails it falls back to
// the centroid of the exterior ring and then to the first finite vertex.
func Centroid(p orb.Polygon) (orb.Point, error) {
	if len(p) == 0 || len(p[0]) == 0 {
		return orb.Point{}, ErrNoCentroid
	}
	if c, ok := safeCentroid(p); ok {
		return c, nil
	}
	if c, ok := safeCentroid(p[0]); ok {
		return c, nil
	}
	for _, v := range p[0] {
		if finite(v) {
			return v, nil
		}
	}
	return orb.Point{}, ErrNoCentroid
}

// Contains reports whether pt lies inside p, holes excluded.
func Contains(p orb.Polygon, pt orb.Point) bool {
	return planar.PolygonContains(p, pt)
}

// ScanlineCenter intersects p with the horizontal line at y and returns the
// midpoint of the longest run inside the polygon.
func ScanlineCenter(p orb.Polygon, y float64) (orb.Point, bool) {
	var xs []float64
	for _, ring := range p {
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			if a == b || (a[1] > y) == (b[1] > y) {
				continue
			}
			t := (y - a[1]) / (b[1] - a[1])
			xs = append(xs, a[0]+t*(b[0]-a[0]))
		}
	}
	if len(xs) < 2 {
		return orb.Point{}, false
	}
	sort.Float64s(xs)

	best := -1.0
	var mid float64
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > best {
			best = w
			mid = (xs[i] + xs[i+1]) / 2
		}
	}
	if best <= 0 {
		return orb.Point{}, false
	}
	return orb.Point{mid, y}, true
}

// MinimumRectangle returns the direction of the longer side of the minimum
// area rectangle enclosing p, folded into (-pi/2, pi/2]. It reports false
// when the exterior ring has fewer than three distinct hull points.
func MinimumRectangle(p orb.Polygon) (float64, bool) {
	if len(p) == 0 {
		return 0, false
	}
	hull := convexHull(p[0])
	if len(hull) < 3 {
		return 0, false
	}

	bestArea := math.Inf(1)
	bestAngle := 0.0
	for i := range hull {
		a, b := hull[i], hull[(i+1)%len(hull)]
		theta := math.Atan2(b[1]-a[1], b[0]-a[0])
		sin, cos := math.Sincos(-theta)
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, q := range hull {
			x := q[0]*cos - q[1]*sin
			y := q[0]*sin + q[1]*cos
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		w, h := maxX-minX, maxY-minY
		if area := w * h; area < bestArea {
			bestArea = area
			bestAngle = theta
			if h > w {
				bestAngle += math.Pi / 2
			}
		}
	}
	return foldHalfTurn(bestAngle), true
}

// convexHull returns the convex hull of pts in counter-clockwise order
// (monotone chain), without repeating the first point.
func convexHull(pts []orb.Point) []orb.Point {
	ps := make([]orb.Point, 0, len(pts))
	for _, q := range pts {
		if finite(q) {
			ps = append(ps, q)
		}
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i][0] != ps[j][0] {
			return ps[i][0] < ps[j][0]
		}
		return ps[i][1] < ps[j][1]
	})
	if len(ps) < 3 {
		return ps
	}
	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}
	hull := make([]orb.Point, 0, 2*len(ps))
	for _, q := range ps {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], q) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		q := ps[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], q) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	return hull[:len(hull)-1]
}

// Decimate removes vertices deviating less than tolerance from the line,
// smoothing away sub-pixel wiggles. The input is not modified.
func Decimate(ls orb.LineString, tolerance float64) orb.LineString {
	if tolerance <= 0 || len(ls) < 3 {
		return ls
	}
	return simplify.DouglasPeucker(tolerance).LineString(ls.Clone())
}

// foldHalfTurn maps an angle into (-pi/2, pi/2].
func foldHalfTurn(a float64) float64 {
	a = math.Mod(a, math.Pi)
	if a > math.Pi/2 {
		a -= math.Pi
	} else if a <= -math.Pi/2 {
		a += math.Pi
	}
	return a
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
