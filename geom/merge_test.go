package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func TestMergerChains(t *testing.T) {
	m := NewMerger()
	m.Add(orb.LineString{{0, 0}, {10, 0}})
	m.Add(orb.LineString{{20, 0}, {10, 0}})
	m.Add(orb.LineString{{20, 0}, {20, 30}})
	m.Add(orb.LineString{{50, 50}, {60, 50}})
	if m.Add(orb.LineString{{1, 1}}) != -1 {
		t.Error("single point line should be ignored")
	}

	out := m.Merge()
	if len(out) != 2 {
		t.Fatalf("Merge returned %d lines: %v", len(out), out)
	}
	if l := planar.Length(out[0]); math.Abs(l-50) > 1e-9 {
		t.Errorf("first chain length = %v, want 50", l)
	}
	if m.Len() != 2 {
		t.Errorf("Len after merge = %d", m.Len())
	}
	for i := 1; i < len(out[0]); i++ {
		if planar.Distance(out[0][i-1], out[0][i]) == 0 {
			t.Errorf("chain repeats a vertex: %v", out[0])
		}
	}
}

func TestMergerPrefersLongestNeighbour(t *testing.T) {
	m := NewMerger()
	m.Add(orb.LineString{{0, 0}, {100, 0}})
	m.Add(orb.LineString{{100, 0}, {100, 5}})
	m.Add(orb.LineString{{100, 0}, {200, 0}})

	out := m.Merge()
	if len(out) != 2 {
		t.Fatalf("Merge returned %d lines", len(out))
	}
	if l := planar.Length(out[0]); math.Abs(l-200) > 1e-9 {
		t.Errorf("longest chain = %v, want 200", l)
	}
}

func TestMergerRingStaysClosed(t *testing.T) {
	m := NewMerger()
	m.Add(orb.LineString{{0, 0}, {10, 0}, {10, 10}})
	m.Add(orb.LineString{{10, 10}, {0, 10}, {0, 0}})
	out := m.Merge()
	if len(out) != 1 {
		t.Fatalf("Merge returned %v", out)
	}
	if out[0][0] != out[0][len(out[0])-1] {
		t.Errorf("merged loop not closed: %v", out[0])
	}
}

func TestMergerDeterministic(t *testing.T) {
	build := func() []orb.LineString {
		m := NewMerger()
		m.Add(orb.LineString{{0, 0}, {10, 0}})
		m.Add(orb.LineString{{10, 0}, {10, 10}})
		m.Add(orb.LineString{{10, 0}, {20, 0}})
		m.Add(orb.LineString{{10, 0}, {10, -10}})
		return m.Merge()
	}
	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatal("different chain counts")
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("run differs: %v vs %v", a, b)
		}
	}
}
