package placement

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/style"
)

func rect(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

// TestPaint_PolygonCentroid tests a label centered in a square.
func TestPaint_PolygonCentroid(t *testing.T) {
	p := newPainter(bound(0, 0, 300, 300))
	pls, err := p.Paint(Label{Text: label10, Style: newStyle(t, nil), Geometries: []orb.Geometry{rect(0, 0, 200, 200)}})
	if err != nil || len(pls) != 1 {
		t.Fatalf("Paint() = %v, %v", pls, err)
	}
	assertBoundNear(t, pls[0].Bounds, bound(60, 96.5, 140, 103.5))
}

// TestPaint_PolygonConcave tests a polygon whose centroid falls outside it.
func TestPaint_PolygonConcave(t *testing.T) {
	u := orb.Polygon{{
		{0, 0}, {300, 0}, {300, 300}, {200, 300}, {200, 100},
		{100, 100}, {100, 300}, {0, 300}, {0, 0},
	}}
	p := newPainter(bound(-10, -10, 310, 310))
	pls, err := p.Paint(Label{Text: label10, Style: newStyle(t, nil), Geometries: []orb.Geometry{u}})
	if err != nil || len(pls) != 1 {
		t.Fatalf("Paint() = %v, %v", pls, err)
	}
	c := pls[0].Bounds.Center()
	if math.Abs(c[0]-50) > 1e-6 && math.Abs(c[0]-250) > 1e-6 {
		t.Errorf("label centered at %v, want inside one leg of the U", c)
	}
	if c[1] < 100 {
		t.Errorf("label centered at %v, want on the centroid scanline", c)
	}
}

// TestPaint_PolygonGoodnessOfFit tests that labels mostly outside a thin
// polygon are rejected unless an alternate rotation fits.
func TestPaint_PolygonGoodnessOfFit(t *testing.T) {
	tall := []orb.Geometry{rect(0, 0, 20, 200)}

	p := newPainter(bound(-100, -100, 300, 300))
	pls, _ := p.Paint(Label{Text: label10, Style: newStyle(t, nil), Geometries: tall})
	if len(pls) != 0 {
		t.Fatalf("label placed across a thin polygon: %v", pls)
	}

	st := newStyle(t, map[string]string{style.OptPolygonAlign: "ortho"})
	pls, _ = p.Paint(Label{Text: label10, Style: st, Geometries: tall})
	if len(pls) != 1 {
		t.Fatal("vertical alternate not placed")
	}
	assertBoundNear(t, pls[0].Bounds, bound(6.5, 60, 13.5, 140))
	if m := pls[0].Transform; math.Abs(m.A) > 1e-9 {
		t.Errorf("transform %v is not vertical", m)
	}
}

// TestPaint_PolygonDisplaced tests the search around a blocked centroid.
func TestPaint_PolygonDisplaced(t *testing.T) {
	p := newPainter(bound(0, 0, 300, 300))
	p.Index.Reserve(bound(90, 90, 110, 110))
	st := newStyle(t, map[string]string{style.OptMaxDisplacement: "40"})

	pls, err := p.Paint(Label{Text: label10, Style: st, Geometries: []orb.Geometry{rect(0, 0, 200, 200)}})
	if err != nil || len(pls) != 1 {
		t.Fatalf("Paint() = %v, %v", pls, err)
	}
	if b := pls[0].Bounds; b.Intersects(bound(90, 90, 110, 110)) {
		t.Errorf("placement %v overlaps the reserved area", b)
	}
}

// TestAttempts tests the rotations tried per polygon alignment.
func TestAttempts(t *testing.T) {
	square := rect(0, 0, 100, 100)
	tilted := orb.Polygon{{{0, 0}, {100, 100}, {90, 110}, {-10, 10}, {0, 0}}}

	tests := []struct {
		name     string
		vendor   map[string]string
		rotation float64
		poly     orb.Polygon
		want     []Attempt
	}{
		{"manual", nil, 0, square, []Attempt{{Rotation: 0}}},
		{"ortho", map[string]string{style.OptPolygonAlign: "ortho"}, 0, square,
			[]Attempt{{Rotation: 0}, {Rotation: -math.Pi / 2, Alternate: true}}},
		{"ortho already vertical", map[string]string{style.OptPolygonAlign: "ortho"}, -90, square,
			[]Attempt{{Rotation: -math.Pi / 2}, {Rotation: 0, Alternate: true}}},
		{"ortho slanted", map[string]string{style.OptPolygonAlign: "ortho"}, 30, square,
			[]Attempt{{Rotation: math.Pi / 6}, {Rotation: -math.Pi / 2, Alternate: true}}},
		{"mbr", map[string]string{style.OptPolygonAlign: "mbr"}, 0, tilted,
			[]Attempt{{Rotation: 0}, {Rotation: math.Pi / 4, Alternate: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStyle(t, tt.vendor)
			st.Rotation = tt.rotation
			got := Attempts(st, tt.poly)
			if len(got) != len(tt.want) {
				t.Fatalf("Attempts() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i].Rotation-tt.want[i].Rotation) > 1e-9 || got[i].Alternate != tt.want[i].Alternate {
					t.Errorf("attempt %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestBoxOverlap tests the fallback fit measure.
func TestBoxOverlap(t *testing.T) {
	poly := bound(0, 0, 10, 10)
	tests := []struct {
		label orb.Bound
		want  float64
	}{
		{bound(2, 2, 8, 8), 1},
		{bound(5, 5, 15, 15), 0.25},
		{bound(20, 20, 30, 30), 0},
		{bound(3, 3, 3, 3), 0},
	}
	for _, tt := range tests {
		if got := boxOverlap(poly, tt.label); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("boxOverlap(%v) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
