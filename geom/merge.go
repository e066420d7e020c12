package geom

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Merger fuses lines that share end points into maximal chains.
//
// Lines are kept in an adjacency structure keyed by end point coordinate.
// Merge repeatedly takes the longest line that can still grow, fuses it with
// the longest line touching each of its ends and puts the result back, until
// no line has a neighbour left. Ties are broken by insertion order so the
// result is deterministic.
type Merger struct {
	lines  []mergeLine
	nodes  map[orb.Point][]int
	live   int
	frozen map[int]bool
}

type mergeLine struct {
	ls     orb.LineString
	length float64
	alive  bool
}

// NewMerger returns an empty merger.
func NewMerger() *Merger {
	return &Merger{
		nodes:  make(map[orb.Point][]int),
		frozen: make(map[int]bool),
	}
}

// Add inserts a line and returns its id. Lines with fewer than two points
// are ignored and get id -1.
func (m *Merger) Add(ls orb.LineString) int {
	if len(ls) < 2 {
		return -1
	}
	id := len(m.lines)
	m.lines = append(m.lines, mergeLine{ls: ls, length: planar.Length(ls), alive: true})
	m.live++
	first, last := ls[0], ls[len(ls)-1]
	m.nodes[first] = append(m.nodes[first], id)
	if last != first {
		m.nodes[last] = append(m.nodes[last], id)
	}
	return id
}

// remove drops a line from the adjacency structure.
func (m *Merger) remove(id int) {
	l := &m.lines[id]
	if !l.alive {
		return
	}
	l.alive = false
	m.live--
	for _, p := range []orb.Point{l.ls[0], l.ls[len(l.ls)-1]} {
		ids := m.nodes[p]
		for i, other := range ids {
			if other == id {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(m.nodes, p)
		} else {
			m.nodes[p] = ids
		}
	}
}

// Len returns the number of lines currently held.
func (m *Merger) Len() int { return m.live }

// neighbour returns the longest live line other than id touching p, or -1.
func (m *Merger) neighbour(id int, p orb.Point) int {
	best := -1
	for _, other := range m.nodes[p] {
		if other == id {
			continue
		}
		if best < 0 || m.lines[other].length > m.lines[best].length {
			best = other
		}
	}
	return best
}

// longest returns the longest live line that is not frozen, or -1.
func (m *Merger) longest() int {
	best := -1
	for id := range m.lines {
		l := &m.lines[id]
		if !l.alive || m.frozen[id] {
			continue
		}
		if best < 0 || l.length > m.lines[best].length {
			best = id
		}
	}
	return best
}

// fuse joins b onto the end (atEnd) or the start of a and returns the id of
// the fused line.
func (m *Merger) fuse(a, b int, atEnd bool) int {
	la, lb := m.lines[a].ls, m.lines[b].ls
	var out orb.LineString
	if atEnd {
		join := la[len(la)-1]
		if lb[0] != join {
			lb = reversed(lb)
		}
		out = append(append(out, la...), lb[1:]...)
	} else {
		join := la[0]
		if lb[len(lb)-1] != join {
			lb = reversed(lb)
		}
		out = append(append(out, lb...), la[1:]...)
	}
	m.remove(a)
	m.remove(b)
	return m.Add(out)
}

// Merge fuses all lines and returns the chains longest first. The merger is
// left holding the result.
func (m *Merger) Merge() []orb.LineString {
	for {
		id := m.longest()
		if id < 0 {
			break
		}
		grown := false
		ls := m.lines[id].ls
		if first, last := ls[0], ls[len(ls)-1]; first != last {
			if n := m.neighbour(id, last); n >= 0 {
				id = m.fuse(id, n, true)
				grown = true
			}
			ls = m.lines[id].ls
			if first := ls[0]; first != ls[len(ls)-1] {
				if n := m.neighbour(id, first); n >= 0 {
					id = m.fuse(id, n, false)
					grown = true
				}
			}
		}
		if !grown {
			m.frozen[id] = true
		}
	}

	var ids []int
	for id := range m.lines {
		if m.lines[id].alive {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return m.lines[ids[i]].length > m.lines[ids[j]].length
	})
	out := make([]orb.LineString, len(ids))
	for i, id := range ids {
		out[i] = m.lines[id].ls
	}
	return out
}

func reversed(ls orb.LineString) orb.LineString {
	out := ls.Clone()
	out.Reverse()
	return out
}
