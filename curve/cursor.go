// Package curve walks polylines in arc-length coordinates.
//
// A Cursor converts an ordinate (distance travelled along the line from its
// first vertex) into a position and a direction, and answers questions about
// how much the line turns between two ordinates. Line labels use it both to
// pick candidate positions and to lay glyphs along curved geometry.
package curve

import (
	"errors"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// Errors returned by the cursor.
var (
	ErrTooFewPoints  = errors.New("curve: line needs at least two points")
	ErrInvertedRange = errors.New("curve: start ordinate is past end ordinate")
)

// oneDegree is the tolerance used when folding near-vertical orientations.
const oneDegree = math.Pi / 180

// Cursor is a position on a polyline. Copies share the segment tables; the
// segment angles are filled in lazily and may be written through any copy.
type Cursor struct {
	coords   orb.LineString
	segLen   []float64
	segStart []float64
	angles   []float64
	length   float64

	segment int
	offset  float64
}

// New returns a cursor at the start of ls. The line is not copied and must
// not be modified while the cursor is in use.
func New(ls orb.LineString) (*Cursor, error) {
	if len(ls) < 2 {
		return nil, ErrTooFewPoints
	}
	n := len(ls) - 1
	c := &Cursor{
		coords:   ls,
		segLen:   make([]float64, n),
		segStart: make([]float64, n),
		angles:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		c.segStart[i] = c.length
		c.segLen[i] = math.Hypot(ls[i+1][0]-ls[i][0], ls[i+1][1]-ls[i][1])
		c.length += c.segLen[i]
		c.angles[i] = math.NaN()
	}
	return c, nil
}

// Length returns the total arc length of the line.
func (c *Cursor) Length() float64 { return c.length }

// LineString returns the line the cursor walks.
func (c *Cursor) LineString() orb.LineString { return c.coords }

// Segment returns the index of the current segment.
func (c *Cursor) Segment() int { return c.segment }

// Offset returns the distance from the start of the current segment.
func (c *Cursor) Offset() float64 { return c.offset }

// Ordinate returns the current arc-length position.
func (c *Cursor) Ordinate() float64 {
	return c.segStart[c.segment] + c.offset
}

// Copy returns an independent cursor at the same position.
func (c *Cursor) Copy() *Cursor {
	cp := *c
	return &cp
}

// MoveTo moves the cursor to ordinate, clamped to [0, Length].
func (c *Cursor) MoveTo(ordinate float64) {
	switch {
	case ordinate <= 0:
		c.segment, c.offset = 0, 0
		return
	case ordinate >= c.length:
		c.segment = len(c.segLen) - 1
		c.offset = c.segLen[c.segment]
		return
	}
	c.segment = c.segmentAt(ordinate)
	c.offset = math.Min(ordinate-c.segStart[c.segment], c.segLen[c.segment])
}

// segmentAt returns the last segment whose start is at or before ordinate.
func (c *Cursor) segmentAt(ordinate float64) int {
	i := sort.Search(len(c.segStart), func(i int) bool {
		return c.segStart[i] > ordinate
	}) - 1
	if i < 0 {
		i = 0
	}
	return i
}

// segmentEndingAt returns the last segment starting before ordinate, so an
// ordinate on a vertex belongs to the segment that ends there.
func (c *Cursor) segmentEndingAt(ordinate float64) int {
	return max(sort.Search(len(c.segStart), func(i int) bool {
		return c.segStart[i] >= ordinate
	})-1, 0)
}

// MoveRelative moves the cursor by delta along the line, crossing segment
// boundaries as needed. It reports false, leaving the cursor clamped at the
// corresponding end, when the move would run off the line.
func (c *Cursor) MoveRelative(delta float64) bool {
	tol := 1e-9 * math.Max(1, c.length)
	if delta >= 0 {
		for {
			rem := c.segLen[c.segment] - c.offset
			if delta <= rem || (c.segment == len(c.segLen)-1 && delta-rem <= tol) {
				c.offset = math.Min(c.offset+delta, c.segLen[c.segment])
				return true
			}
			if c.segment == len(c.segLen)-1 {
				c.offset = c.segLen[c.segment]
				return false
			}
			delta -= rem
			c.segment++
			c.offset = 0
		}
	}
	delta = -delta
	for {
		if delta <= c.offset || (c.segment == 0 && delta-c.offset <= tol) {
			c.offset = math.Max(c.offset-delta, 0)
			return true
		}
		if c.segment == 0 {
			c.offset = 0
			return false
		}
		delta -= c.offset
		c.segment--
		c.offset = c.segLen[c.segment]
	}
}

// Position returns the point at the current ordinate.
func (c *Cursor) Position() orb.Point {
	p := c.coords[c.segment]
	if c.offset == 0 {
		return p
	}
	a := c.SegmentAngle(c.segment)
	return orb.Point{p[0] + c.offset*math.Cos(a), p[1] + c.offset*math.Sin(a)}
}

// Angle returns the direction of the current segment in radians.
func (c *Cursor) Angle() float64 {
	return c.SegmentAngle(c.segment)
}

// SegmentAngle returns the direction of segment i. A zero-length segment
// takes the direction of the nearest segment that has a length; a line with
// no length at all reports 0.
func (c *Cursor) SegmentAngle(i int) float64 {
	if a := c.angles[i]; !math.IsNaN(a) {
		return a
	}
	a := 0.0
	if j := c.nearestNonDegenerate(i); j >= 0 {
		p, q := c.coords[j], c.coords[j+1]
		a = math.Atan2(q[1]-p[1], q[0]-p[0])
	}
	c.angles[i] = a
	return a
}

func (c *Cursor) nearestNonDegenerate(i int) int {
	for d := 0; d < len(c.segLen); d++ {
		if j := i + d; j < len(c.segLen) && c.segLen[j] > 0 {
			return j
		}
		if j := i - d; j >= 0 && c.segLen[j] > 0 {
			return j
		}
	}
	return -1
}

// LabelOrientation returns the current direction folded into [-pi/2, pi/2]
// so text never reads upside down. Directions within one degree of pi/2 are
// folded onto the -pi/2 side so near-vertical labels all face the same way.
func (c *Cursor) LabelOrientation() float64 {
	return FoldOrientation(c.Angle())
}

// FoldOrientation folds angle as LabelOrientation does.
func FoldOrientation(angle float64) float64 {
	angle = normalize(angle)
	switch {
	case math.Abs(angle-math.Pi/2) < oneDegree:
		return -math.Pi/2 + math.Abs(angle-math.Pi/2)
	case angle > math.Pi/2:
		return angle - math.Pi
	case angle < -math.Pi/2:
		return angle + math.Pi
	}
	return angle
}

// MaxAngleChange returns the largest absolute turn between consecutive
// segments crossed between the two ordinates. Zero-length segments do not
// contribute a turn.
func (c *Cursor) MaxAngleChange(start, end float64) (float64, error) {
	if start > end {
		return 0, ErrInvertedRange
	}
	s := c.segmentAt(clamp(start, 0, c.length))
	e := max(c.segmentEndingAt(clamp(end, 0, c.length)), s)
	if s == e {
		return 0, nil
	}
	maxTurn := 0.0
	prev := math.NaN()
	for i := s; i <= e; i++ {
		if c.segLen[i] == 0 {
			continue
		}
		a := c.SegmentAngle(i)
		if !math.IsNaN(prev) {
			if d := math.Abs(normalize(a - prev)); d > maxTurn {
				maxTurn = d
			}
		}
		prev = a
	}
	return maxTurn, nil
}

// Reverse returns a cursor over the reversed line, positioned at the same
// point of the line.
func (c *Cursor) Reverse() *Cursor {
	rev := make(orb.LineString, len(c.coords))
	for i, p := range c.coords {
		rev[len(c.coords)-1-i] = p
	}
	r, _ := New(rev)
	r.MoveTo(c.length - c.Ordinate())
	return r
}

// SubLine returns the part of the line between two ordinates, including the
// interpolated end points.
func (c *Cursor) SubLine(start, end float64) orb.LineString {
	if start > end {
		start, end = end, start
	}
	w := c.Copy()
	w.MoveTo(start)
	out := orb.LineString{w.Position()}
	first := w.segment
	w.MoveTo(end)
	for i := first + 1; i <= w.segment; i++ {
		if v := c.coords[i]; v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	if p := w.Position(); p != out[len(out)-1] || len(out) == 1 {
		out = append(out, p)
	}
	return out
}

// normalize maps an angle into [-pi, pi].
func normalize(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
