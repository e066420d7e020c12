// Package index holds the rectangles of placed labels and reserved screen
// areas, and answers proximity queries against them.
package index

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// Index is a 2D rectangle index. Entries are never removed during a pass;
// a new Index is built for every pass.
//
// Index is not safe for concurrent use.
type Index struct {
	tree     rtree.RTreeG[any]
	reserved int
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Reserve inserts ownerless rectangles that block any placement.
func (ix *Index) Reserve(bounds ...orb.Bound) {
	for _, b := range bounds {
		if b.IsEmpty() {
			continue
		}
		ix.tree.Insert(b.Min, b.Max, nil)
		ix.reserved++
	}
}

// Insert adds the bounds of an accepted placement. The owner is kept for
// inspection only and may be nil.
func (ix *Index) Insert(b orb.Bound, owner any) {
	ix.tree.Insert(b.Min, b.Max, owner)
}

// WithinDistance reports whether any indexed rectangle intersects b grown by
// distance on every side. A negative distance disables the check and always
// reports false.
func (ix *Index) WithinDistance(b orb.Bound, distance float64) bool {
	if distance < 0 || ix.tree.Len() == 0 {
		return false
	}
	q := b.Pad(distance)
	hit := false
	ix.tree.Search(q.Min, q.Max, func(_, _ [2]float64, _ any) bool {
		hit = true
		return false
	})
	return hit
}

// Len returns the number of entries, reserved areas included.
func (ix *Index) Len() int {
	return ix.tree.Len()
}

// Reserved returns the number of reserved areas.
func (ix *Index) Reserved() int {
	return ix.reserved
}

// Entry is one indexed rectangle.
type Entry struct {
	Bound orb.Bound
	Owner any
}

// Entries returns every entry in unspecified order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, ix.tree.Len())
	ix.tree.Scan(func(min, max [2]float64, owner any) bool {
		out = append(out, Entry{Bound: orb.Bound{Min: min, Max: max}, Owner: owner})
		return true
	})
	return out
}
