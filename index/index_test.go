package index

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func box(x0, y0, x1, y1 float64) orb.Bound {
	return orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
}

func TestWithinDistance(t *testing.T) {
	ix := New()
	ix.Insert(box(10, 10, 20, 20), "a")

	tests := []struct {
		name string
		b    orb.Bound
		d    float64
		want bool
	}{
		{"overlap", box(15, 15, 25, 25), 0, true},
		{"touching", box(20, 10, 30, 20), 0, true},
		{"gap", box(23, 10, 30, 20), 0, false},
		{"gap closed by distance", box(23, 10, 30, 20), 3, true},
		{"gap wider than distance", box(23, 10, 30, 20), 2.5, false},
		{"negative disables", box(15, 15, 25, 25), -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.WithinDistance(tt.b, tt.d); got != tt.want {
				t.Errorf("WithinDistance(%v, %v) = %v, want %v", tt.b, tt.d, got, tt.want)
			}
		})
	}
}

func TestReserve(t *testing.T) {
	ix := New()
	ix.Reserve(box(0, 0, 100, 20), orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{0, 0}})
	if ix.Len() != 1 || ix.Reserved() != 1 {
		t.Fatalf("Len = %d, Reserved = %d, want 1, 1", ix.Len(), ix.Reserved())
	}
	if !ix.WithinDistance(box(50, 10, 60, 30), 0) {
		t.Error("reserved area should block overlapping rectangle")
	}
	for _, e := range ix.Entries() {
		if e.Owner != nil {
			t.Errorf("reserved entry owner = %v, want nil", e.Owner)
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	if New().WithinDistance(box(0, 0, 1, 1), 100) {
		t.Error("empty index reported a hit")
	}
}

// TestAcceptedRectanglesNeverConflict inserts random rectangles only when
// they pass the query and checks that no accepted pair is closer than the
// query distance.
func TestAcceptedRectanglesNeverConflict(t *testing.T) {
	const space = 5.0
	rng := rand.New(rand.NewSource(42))
	ix := New()
	var accepted []orb.Bound
	for i := 0; i < 500; i++ {
		x, y := rng.Float64()*500, rng.Float64()*500
		b := box(x, y, x+10+rng.Float64()*40, y+5+rng.Float64()*15)
		if ix.WithinDistance(b, space) {
			continue
		}
		ix.Insert(b, i)
		accepted = append(accepted, b)
	}
	if len(accepted) < 2 {
		t.Fatalf("only %d rectangles accepted", len(accepted))
	}
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			if accepted[i].Pad(space).Intersects(accepted[j]) {
				t.Fatalf("accepted %v and %v closer than %v", accepted[i], accepted[j], space)
			}
		}
	}
}

func BenchmarkWithinDistance(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	ix := New()
	for i := 0; i < 10000; i++ {
		x, y := rng.Float64()*4000, rng.Float64()*4000
		ix.Insert(box(x, y, x+30, y+10), i)
	}
	q := box(2000, 2000, 2060, 2012)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.WithinDistance(q, 3)
	}
}
