// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/geom"
)

// defaultTolerance is the curve flattening tolerance in pixels.
const defaultTolerance = 0.25

// ExpandStroke converts a stroked path into a path that, filled with the
// non-zero rule, covers the stroke.
//
// Each subpath is offset to both sides: the forward offset is emitted as
// is, the backward offset reversed, and caps (open subpaths) or a closing
// join (closed subpaths) connect them. Curves are flattened first.
func ExpandStroke(p *geom.Path, s Stroke) *geom.Path {
	if p.IsEmpty() || s.Width <= 0 {
		return geom.NewPath()
	}
	e := &strokeExpander{style: s, tolerance: defaultTolerance}
	return e.expand(p)
}

type strokeExpander struct {
	style     Stroke
	tolerance float64

	forward  *geom.Path
	backward *geom.Path
	output   *geom.Path

	startPt   orb.Point
	startNorm orb.Point
	startTan  orb.Point
	lastPt    orb.Point
	lastTan   orb.Point
	lastNorm  orb.Point

	joinThresh float64
}

func (e *strokeExpander) expand(p *geom.Path) *geom.Path {
	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
	e.output = geom.NewPath()
	e.joinThresh = 2 * e.tolerance / e.style.Width

	for _, seg := range p.Segments {
		switch seg.Op {
		case geom.OpMoveTo:
			e.finish()
			e.startPt = seg.Points[0]
			e.lastPt = seg.Points[0]
		case geom.OpLineTo:
			e.lineTo(seg.Points[0])
		case geom.OpQuadTo:
			pts := []orb.Point{e.lastPt}
			e.flattenQuad(e.lastPt, seg.Points[0], seg.Points[1], &pts)
			e.polyline(pts)
		case geom.OpCubeTo:
			pts := []orb.Point{e.lastPt}
			e.flattenCubic(e.lastPt, seg.Points[0], seg.Points[1], seg.Points[2], &pts)
			e.polyline(pts)
		case geom.OpClose:
			e.lineTo(e.startPt)
			e.finishClosed()
		}
	}
	e.finish()
	return e.output
}

func (e *strokeExpander) lineTo(pt orb.Point) {
	if pt == e.lastPt {
		return
	}
	tan := sub(pt, e.lastPt)
	e.join(tan)
	e.lastTan = tan
	e.line(tan, pt)
}

func (e *strokeExpander) polyline(pts []orb.Point) {
	for i := 1; i < len(pts); i++ {
		tan := sub(pts[i], pts[i-1])
		if dot(tan, tan) > 1e-10 {
			e.join(tan)
			e.lastTan = tan
			e.line(tan, pts[i])
		}
	}
}

// join connects the segment starting with tangent tan0 to the previous one.
func (e *strokeExpander) join(tan0 orb.Point) {
	norm := scale(perp(tan0), 0.5*e.style.Width/length(tan0))
	p0 := e.lastPt

	if e.forward.IsEmpty() {
		e.forward.MoveTo(add(p0, neg(norm)))
		e.backward.MoveTo(add(p0, norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan0
	cross := crossProduct(ab, cd)
	d := dot(ab, cd)
	hypot := math.Hypot(cross, d)

	// Nearly collinear segments still need connecting lines.
	if d > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.LineTo(add(p0, neg(norm)))
		e.backward.LineTo(add(p0, norm))
		return
	}

	switch e.style.Join {
	case JoinMiter:
		limit := e.style.MiterLimit * e.style.MiterLimit
		if 2*hypot < (hypot+d)*limit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.LineTo(add(p0, neg(norm)))
		e.backward.LineTo(add(p0, norm))
	case JoinRound:
		lastNorm := scale(perp(e.lastTan), 0.5*e.style.Width/length(e.lastTan))
		angle := math.Atan2(cross, d)
		if angle > 0 {
			e.backward.LineTo(add(p0, norm))
			arc(e.forward, p0, neg(lastNorm), angle)
		} else {
			e.forward.LineTo(add(p0, neg(norm)))
			arc(e.backward, p0, lastNorm, angle)
		}
	default:
		e.forward.LineTo(add(p0, neg(norm)))
		e.backward.LineTo(add(p0, norm))
	}
}

func (e *strokeExpander) miter(p0, norm, ab, cd orb.Point, cross float64) {
	lastNorm := scale(perp(ab), 0.5*e.style.Width/length(ab))
	switch {
	case cross > 0:
		fpLast := add(p0, neg(lastNorm))
		fpThis := add(p0, neg(norm))
		h := crossProduct(ab, sub(fpThis, fpLast)) / cross
		e.forward.LineTo(add(fpThis, scale(cd, -h)))
		e.backward.LineTo(p0)
	case cross < 0:
		fpLast := add(p0, lastNorm)
		fpThis := add(p0, norm)
		h := crossProduct(ab, sub(fpThis, fpLast)) / cross
		e.backward.LineTo(add(fpThis, scale(cd, -h)))
		e.forward.LineTo(p0)
	}
}

func (e *strokeExpander) line(tan, p1 orb.Point) {
	norm := scale(perp(tan), 0.5*e.style.Width/length(tan))
	e.forward.LineTo(add(p1, neg(norm)))
	e.backward.LineTo(add(p1, norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish closes an open subpath with caps at both ends.
func (e *strokeExpander) finish() {
	if e.forward.IsEmpty() {
		return
	}
	e.output.Append(e.forward)
	e.cap(e.lastPt, neg(e.lastNorm), false)
	e.appendReversed(e.backward)
	e.cap(e.startPt, e.startNorm, true)
	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
}

// finishClosed joins a closed subpath back to its start and emits both
// offsets as separate closed rings.
func (e *strokeExpander) finishClosed() {
	if e.forward.IsEmpty() {
		return
	}
	e.join(e.startTan)
	e.output.Append(e.forward)
	e.output.Close()

	if n := len(e.backward.Segments); n > 0 {
		e.output.MoveTo(e.backward.Segments[n-1].End())
	}
	e.appendReversed(e.backward)
	e.output.Close()

	e.forward = geom.NewPath()
	e.backward = geom.NewPath()
}

func (e *strokeExpander) cap(center, norm orb.Point, closePath bool) {
	switch e.style.Cap {
	case CapRound:
		arc(e.output, center, norm, math.Pi)
		if closePath {
			e.output.Close()
		}
	case CapSquare:
		e.output.LineTo(capPoint(center, norm, orb.Point{1, 1}))
		e.output.LineTo(capPoint(center, norm, orb.Point{-1, 1}))
		if closePath {
			e.output.Close()
		} else {
			e.output.LineTo(capPoint(center, norm, orb.Point{-1, 0}))
		}
	default:
		if closePath {
			e.output.Close()
		} else {
			e.output.LineTo(add(center, neg(norm)))
		}
	}
}

// appendReversed appends the segments of p, last to first.
func (e *strokeExpander) appendReversed(p *geom.Path) {
	segs := p.Segments
	for i := len(segs) - 1; i >= 1; i-- {
		end := segs[i-1].End()
		switch s := segs[i]; s.Op {
		case geom.OpLineTo:
			e.output.LineTo(end)
		case geom.OpQuadTo:
			e.output.QuadTo(s.Points[0], end)
		case geom.OpCubeTo:
			e.output.CubeTo(s.Points[1], s.Points[0], end)
		}
	}
}

// arc appends a circular arc around center starting at center+norm and
// sweeping angle radians, as cubic segments of at most a quarter turn.
func arc(out *geom.Path, center, norm orb.Point, angle float64) {
	n := max(int(math.Ceil(math.Abs(angle)/(math.Pi/2))), 1)
	step := angle / float64(n)
	a := math.Atan2(norm[1], norm[0])
	r := length(norm)
	for range n {
		arcSegment(out, center, r, a, a+step)
		a += step
	}
}

func arcSegment(out *geom.Path, center orb.Point, r, a0, a1 float64) {
	da := a1 - a0
	t := math.Tan(da / 2)
	alpha := math.Sin(da) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p1 := orb.Point{center[0] + r*cos0, center[1] + r*sin0}
	p2 := orb.Point{center[0] + r*cos1, center[1] + r*sin1}
	c1 := orb.Point{p1[0] - alpha*r*sin0, p1[1] + alpha*r*cos0}
	c2 := orb.Point{p2[0] + alpha*r*sin1, p2[1] - alpha*r*cos1}
	out.CubeTo(c1, c2, p2)
}

// capPoint maps p through the frame with x along norm and y along its
// perpendicular, centered on center.
func capPoint(center, norm, p orb.Point) orb.Point {
	return orb.Point{
		norm[0]*p[0] - norm[1]*p[1] + center[0],
		norm[1]*p[0] + norm[0]*p[1] + center[1],
	}
}

func (e *strokeExpander) flattenQuad(p0, p1, p2 orb.Point, pts *[]orb.Point) {
	if distanceToSegment(p1, p0, p2) < e.tolerance {
		*pts = append(*pts, p2)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)
	e.flattenQuad(p0, q0, q2, pts)
	e.flattenQuad(q2, q1, p2, pts)
}

func (e *strokeExpander) flattenCubic(p0, p1, p2, p3 orb.Point, pts *[]orb.Point) {
	if max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3)) < e.tolerance {
		*pts = append(*pts, p3)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	e.flattenCubic(p0, q0, r0, s, pts)
	e.flattenCubic(s, r1, q2, p3, pts)
}

func distanceToSegment(p, a, b orb.Point) float64 {
	ab := sub(b, a)
	l2 := dot(ab, ab)
	if l2 < 1e-20 {
		return length(sub(p, a))
	}
	t := dot(sub(p, a), ab) / l2
	switch {
	case t < 0:
		return length(sub(p, a))
	case t > 1:
		return length(sub(p, b))
	}
	return length(sub(p, add(a, scale(ab, t))))
}

func add(a, b orb.Point) orb.Point          { return orb.Point{a[0] + b[0], a[1] + b[1]} }
func sub(a, b orb.Point) orb.Point          { return orb.Point{a[0] - b[0], a[1] - b[1]} }
func neg(a orb.Point) orb.Point             { return orb.Point{-a[0], -a[1]} }
func scale(a orb.Point, s float64) orb.Point { return orb.Point{a[0] * s, a[1] * s} }
func perp(a orb.Point) orb.Point            { return orb.Point{-a[1], a[0]} }
func dot(a, b orb.Point) float64            { return a[0]*b[0] + a[1]*b[1] }
func crossProduct(a, b orb.Point) float64   { return a[0]*b[1] - a[1]*b[0] }
func length(a orb.Point) float64            { return math.Hypot(a[0], a[1]) }

func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}
