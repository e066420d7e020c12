package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// overlapDistance is the buffer, in pixels, around already accepted lines
// inside which new lines are discarded when removing overlaps.
const overlapDistance = 2

// Reducer reduces feature geometry to the representative shape used for
// placement. All geometry is expected in screen coordinates.
type Reducer struct {
	// Display is the visible area; results are clipped to it.
	Display orb.Bound
	// RemoveOverlaps drops line parts lying within two pixels of lines
	// already collected from the same feature set.
	RemoveOverlaps bool
}

// Point returns the first point part, or the centroid of the first
// non-point part, that lies inside the display.
func (r Reducer) Point(geoms []orb.Geometry) (orb.Point, bool) {
	for _, g := range geoms {
		if p, ok := r.point(g); ok {
			return p, true
		}
	}
	return orb.Point{}, false
}

func (r Reducer) point(g orb.Geometry) (orb.Point, bool) {
	switch g := g.(type) {
	case nil:
		return orb.Point{}, false
	case orb.Point:
		return g, r.Display.Contains(g)
	case orb.MultiPoint:
		for _, p := range g {
			if r.Display.Contains(p) {
				return p, true
			}
		}
		return orb.Point{}, false
	case orb.Collection:
		for _, sub := range g {
			if p, ok := r.point(sub); ok {
				return p, true
			}
		}
		return orb.Point{}, false
	}
	c, ok := safeCentroid(g)
	if !ok {
		return orb.Point{}, false
	}
	return c, r.Display.Contains(c)
}

// Lines collects every line-like part (polygon rings included), clips them
// to the display, optionally removes overlaps, merges touching lines into
// maximal chains and returns the chains longest first.
func (r Reducer) Lines(geoms []orb.Geometry) []orb.LineString {
	var parts []orb.LineString
	for _, g := range geoms {
		parts = appendLines(parts, g)
	}

	var clipped []orb.LineString
	for _, ls := range parts {
		clipped = append(clipped, r.clipLine(ls)...)
	}
	if r.RemoveOverlaps {
		clipped = removeOverlaps(clipped)
	}

	m := NewMerger()
	for _, ls := range clipped {
		m.Add(ls)
	}
	return m.Merge()
}

// Polygon returns the largest polygon part after clipping to the display.
// Parts with no area are ignored.
func (r Reducer) Polygon(geoms []orb.Geometry) (orb.Polygon, bool) {
	var polys []orb.Polygon
	for _, g := range geoms {
		polys = appendPolygons(polys, g)
	}

	var best orb.Polygon
	bestArea := 0.0
	for _, p := range polys {
		c := r.clipPolygon(p)
		if len(c) == 0 {
			continue
		}
		if a := planar.Area(c); a > bestArea {
			best, bestArea = c, a
		}
	}
	return best, best != nil
}

func (r Reducer) inside(b orb.Bound) bool {
	return r.Display.Contains(b.Min) && r.Display.Contains(b.Max)
}

func (r Reducer) clipLine(ls orb.LineString) (out []orb.LineString) {
	if len(ls) < 2 {
		return nil
	}
	b := ls.Bound()
	if r.inside(b) {
		return []orb.LineString{ls}
	}
	if !r.Display.Intersects(b) {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = []orb.LineString{ls}
		}
	}()
	for _, part := range clip.LineString(r.Display, ls.Clone()) {
		if len(part) >= 2 {
			out = append(out, part)
		}
	}
	return out
}

func (r Reducer) clipPolygon(p orb.Polygon) (out orb.Polygon) {
	if len(p) == 0 || len(p[0]) < 3 {
		return nil
	}
	b := p.Bound()
	if r.inside(b) {
		return p
	}
	if !r.Display.Intersects(b) {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = p
		}
	}()
	return clip.Polygon(r.Display, p.Clone())
}

func appendLines(dst []orb.LineString, g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return append(dst, g)
	case orb.MultiLineString:
		return append(dst, g...)
	case orb.Ring:
		return append(dst, orb.LineString(g))
	case orb.Polygon:
		for _, ring := range g {
			dst = append(dst, orb.LineString(ring))
		}
	case orb.MultiPolygon:
		for _, p := range g {
			dst = appendLines(dst, p)
		}
	case orb.Collection:
		for _, sub := range g {
			dst = appendLines(dst, sub)
		}
	}
	return dst
}

func appendPolygons(dst []orb.Polygon, g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return append(dst, g)
	case orb.MultiPolygon:
		return append(dst, g...)
	case orb.Ring:
		return append(dst, orb.Polygon{g})
	case orb.Collection:
		for _, sub := range g {
			dst = appendPolygons(dst, sub)
		}
	}
	return dst
}

// removeOverlaps keeps, for each line in turn, only the stretches lying
// farther than overlapDistance from every line kept before it.
func removeOverlaps(lines []orb.LineString) []orb.LineString {
	var kept []orb.LineString
	for _, ls := range lines {
		var near []orb.LineString
		reach := ls.Bound().Pad(overlapDistance)
		for _, k := range kept {
			if reach.Intersects(k.Bound()) {
				near = append(near, k)
			}
		}
		if len(near) == 0 {
			kept = append(kept, ls)
			continue
		}
		kept = append(kept, uncovered(ls, near)...)
	}
	return kept
}

// uncovered splits ls into the runs whose sample points are not within
// overlapDistance of any of the near lines. Segments are sampled every pixel.
func uncovered(ls orb.LineString, near []orb.LineString) []orb.LineString {
	covered := func(p orb.Point) bool {
		for _, k := range near {
			if planar.DistanceFrom(k, p) <= overlapDistance {
				return true
			}
		}
		return false
	}

	var out []orb.LineString
	var run orb.LineString
	flush := func() {
		if len(run) >= 2 {
			out = append(out, run)
		}
		run = nil
	}
	visit := func(p orb.Point) {
		if covered(p) {
			flush()
			return
		}
		if len(run) == 0 || run[len(run)-1] != p {
			run = append(run, p)
		}
	}

	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		n := int(planar.Distance(a, b))
		if n < 1 {
			n = 1
		}
		for s := 0; s < n; s++ {
			t := float64(s) / float64(n)
			visit(orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t})
		}
	}
	visit(ls[len(ls)-1])
	flush()
	return out
}

// safeCentroid returns the planar centroid of g, reporting false when the
// computation panics or yields a non-finite point.
func safeCentroid(g orb.Geometry) (c orb.Point, ok bool) {
	defer func() {
		if recover() != nil {
			c, ok = orb.Point{}, false
		}
	}()
	c, _ = planar.CentroidArea(g)
	return c, finite(c)
}

// Dimension returns the highest topological dimension among geoms: 0 for
// points, 1 for lines and 2 for polygons. It returns -1 when geoms holds no
// geometry.
func Dimension(geoms []orb.Geometry) int {
	d := -1
	for _, g := range geoms {
		if g == nil {
			continue
		}
		if gd := g.Dimensions(); gd > d {
			d = gd
		}
	}
	return d
}

// Describe returns a short description of g for log messages.
func Describe(g orb.Geometry) string {
	if g == nil {
		return "nil"
	}
	return fmt.Sprintf("%s%v", g.GeoJSONType(), g.Bound())
}
