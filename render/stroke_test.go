// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/geom"
)

func horizontalLine() *geom.Path {
	p := geom.NewPath()
	p.MoveTo(orb.Point{0, 0})
	p.LineTo(orb.Point{10, 0})
	return p
}

func assertBound(t *testing.T, got, want orb.Bound) {
	t.Helper()
	const eps = 1e-9
	for i := range 2 {
		if math.Abs(got.Min[i]-want.Min[i]) > eps || math.Abs(got.Max[i]-want.Max[i]) > eps {
			t.Fatalf("bound = %v, want %v", got, want)
		}
	}
}

// TestExpandStroke_Caps tests the outline extent for each cap style.
func TestExpandStroke_Caps(t *testing.T) {
	tests := []struct {
		name string
		cap  LineCap
		want orb.Bound
	}{
		{"butt", CapButt, orb.Bound{Min: orb.Point{0, -1}, Max: orb.Point{10, 1}}},
		{"square", CapSquare, orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{11, 1}}},
		{"round", CapRound, orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{11, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stroke{Width: 2, Cap: tt.cap, Join: JoinMiter, MiterLimit: 4}
			out := ExpandStroke(horizontalLine(), s)
			if out.IsEmpty() {
				t.Fatal("empty outline")
			}
			assertBound(t, out.Bound(), tt.want)
		})
	}
}

// TestExpandStroke_Empty tests degenerate inputs.
func TestExpandStroke_Empty(t *testing.T) {
	if !ExpandStroke(geom.NewPath(), DefaultStroke()).IsEmpty() {
		t.Error("empty path should expand to nothing")
	}
	if !ExpandStroke(horizontalLine(), Stroke{Width: 0}).IsEmpty() {
		t.Error("zero width should expand to nothing")
	}

	p := geom.NewPath()
	p.MoveTo(orb.Point{3, 3})
	if !ExpandStroke(p, DefaultStroke()).IsEmpty() {
		t.Error("lone MoveTo should expand to nothing")
	}
}

// TestExpandStroke_ClosedSquare tests that a closed subpath produces an
// outer and an inner ring.
func TestExpandStroke_ClosedSquare(t *testing.T) {
	p := geom.NewPath()
	p.Rect(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}})

	out := ExpandStroke(p, Stroke{Width: 2, Join: JoinMiter, MiterLimit: 4})

	moves, closes := 0, 0
	for _, s := range out.Segments {
		switch s.Op {
		case geom.OpMoveTo:
			moves++
		case geom.OpClose:
			closes++
		}
	}
	if moves != 2 || closes != 2 {
		t.Errorf("moves = %d, closes = %d, want 2 rings", moves, closes)
	}
	assertBound(t, out.Bound(), orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{11, 11}})
}

// TestExpandStroke_BevelJoin tests that bevel joins do not extend past the
// offset corners.
func TestExpandStroke_BevelJoin(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(orb.Point{0, 0})
	p.LineTo(orb.Point{10, 0})
	p.LineTo(orb.Point{10, 10})

	miter := ExpandStroke(p, Stroke{Width: 2, Join: JoinMiter, MiterLimit: 4}).Bound()
	bevel := ExpandStroke(p, Stroke{Width: 2, Join: JoinBevel}).Bound()

	if miter.Max[0] != 11 || miter.Min[1] != -1 {
		t.Errorf("miter bound = %v, want corner at (11, -1)", miter)
	}
	if bevel.Max[0] != 11 || bevel.Min[1] != -1 {
		t.Errorf("bevel bound = %v", bevel)
	}
}

// TestExpandStroke_Curve tests that curves are flattened within the stroke
// extent.
func TestExpandStroke_Curve(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(orb.Point{0, 0})
	p.QuadTo(orb.Point{10, 10}, orb.Point{20, 0})

	out := ExpandStroke(p, Stroke{Width: 2, Cap: CapButt})
	for _, s := range out.Segments {
		if s.Op == geom.OpQuadTo {
			t.Fatal("curve segment left in outline")
		}
	}
	b := out.Bound()
	if b.Max[1] < 5 || b.Max[1] > 6.5 {
		t.Errorf("max y = %v, want about 5 + 1", b.Max[1])
	}
}

// TestHaloStroke tests the halo stroke parameters.
func TestHaloStroke(t *testing.T) {
	s := HaloStroke(2)
	if s.Width != 4 || s.Cap != CapRound || s.Join != JoinRound {
		t.Errorf("HaloStroke(2) = %+v", s)
	}
}
