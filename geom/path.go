package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// PathOp is the operation of a path segment.
type PathOp uint8

// Path operations.
const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// String returns the name of the operation.
func (op PathOp) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubeTo:
		return "CubeTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// PathSegment is one path element. MoveTo and LineTo use Points[0]; QuadTo
// uses a control point and an end point; CubeTo uses two controls and an
// end point.
type PathSegment struct {
	Op     PathOp
	Points [3]orb.Point
}

// End returns the end point of the segment.
func (s PathSegment) End() orb.Point {
	switch s.Op {
	case OpQuadTo:
		return s.Points[1]
	case OpCubeTo:
		return s.Points[2]
	default:
		return s.Points[0]
	}
}

// Path is a vector path made of one or more subpaths.
type Path struct {
	Segments []PathSegment
	start    orb.Point
	current  orb.Point
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{Segments: make([]PathSegment, 0, 16)}
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt orb.Point) {
	p.Segments = append(p.Segments, PathSegment{Op: OpMoveTo, Points: [3]orb.Point{pt}})
	p.start, p.current = pt, pt
}

// LineTo adds a line to pt.
func (p *Path) LineTo(pt orb.Point) {
	p.Segments = append(p.Segments, PathSegment{Op: OpLineTo, Points: [3]orb.Point{pt}})
	p.current = pt
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(c, pt orb.Point) {
	p.Segments = append(p.Segments, PathSegment{Op: OpQuadTo, Points: [3]orb.Point{c, pt}})
	p.current = pt
}

// CubeTo adds a cubic Bezier curve.
func (p *Path) CubeTo(c1, c2, pt orb.Point) {
	p.Segments = append(p.Segments, PathSegment{Op: OpCubeTo, Points: [3]orb.Point{c1, c2, pt}})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.Segments = append(p.Segments, PathSegment{Op: OpClose})
	p.current = p.start
}

// Current returns the current point.
func (p *Path) Current() orb.Point { return p.current }

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool { return p == nil || len(p.Segments) == 0 }

// Rect adds the closed rectangle b.
func (p *Path) Rect(b orb.Bound) {
	p.MoveTo(b.Min)
	p.LineTo(orb.Point{b.Max[0], b.Min[1]})
	p.LineTo(b.Max)
	p.LineTo(orb.Point{b.Min[0], b.Max[1]})
	p.Close()
}

// Circle adds a circle approximated with four cubic curves.
func (p *Path) Circle(c orb.Point, r float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	o := r * k
	x, y := c[0], c[1]
	p.MoveTo(orb.Point{x + r, y})
	p.CubeTo(orb.Point{x + r, y + o}, orb.Point{x + o, y + r}, orb.Point{x, y + r})
	p.CubeTo(orb.Point{x - o, y + r}, orb.Point{x - r, y + o}, orb.Point{x - r, y})
	p.CubeTo(orb.Point{x - r, y - o}, orb.Point{x - o, y - r}, orb.Point{x, y - r})
	p.CubeTo(orb.Point{x + o, y - r}, orb.Point{x + r, y - o}, orb.Point{x + r, y})
	p.Close()
}

// Append adds every segment of other to p.
func (p *Path) Append(other *Path) {
	if other.IsEmpty() {
		return
	}
	p.Segments = append(p.Segments, other.Segments...)
	p.start, p.current = other.start, other.current
}

// Transform returns a copy of the path with every point transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{Segments: make([]PathSegment, len(p.Segments))}
	for i, s := range p.Segments {
		for j := range s.Points {
			s.Points[j] = m.Apply(s.Points[j])
		}
		out.Segments[i] = s
	}
	out.start, out.current = m.Apply(p.start), m.Apply(p.current)
	return out
}

// Bound returns the bounds of all points, control points included.
func (p *Path) Bound() orb.Bound {
	b := orb.Bound{Min: orb.Point{math.Inf(1), math.Inf(1)}, Max: orb.Point{math.Inf(-1), math.Inf(-1)}}
	for _, s := range p.Segments {
		n := 0
		switch s.Op {
		case OpMoveTo, OpLineTo:
			n = 1
		case OpQuadTo:
			n = 2
		case OpCubeTo:
			n = 3
		}
		for _, pt := range s.Points[:n] {
			b = b.Extend(pt)
		}
	}
	return b
}
