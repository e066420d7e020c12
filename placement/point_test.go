package placement

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/style"
)

// TestPaint_PointNatural tests that a free label sits centered on its
// point.
func TestPaint_PointNatural(t *testing.T) {
	p := newPainter(bound(0, 0, 200, 200))
	pls, err := p.Paint(Label{Text: label10, Style: newStyle(t, nil), Geometries: []orb.Geometry{orb.Point{100, 100}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 1 {
		t.Fatalf("placed %d, want 1", len(pls))
	}
	assertBoundNear(t, pls[0].Bounds, bound(60, 96.5, 140, 103.5))
	if p.Index.Len() != 1 {
		t.Errorf("index len = %d, want 1", p.Index.Len())
	}
}

// TestPaint_PointDisplacement tests the style anchor and displacement.
func TestPaint_PointDisplacement(t *testing.T) {
	p := newPainter(bound(0, 0, 200, 200))
	st, err := style.NewText(style.Spec{
		Fonts:        []style.Font{{Family: "box", Size: 10}},
		Anchor:       &style.AnchorLowerLeft,
		Displacement: style.Displacement{X: 5, Y: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	pls, err := p.Paint(Label{Text: label10, Style: st, Geometries: []orb.Geometry{orb.Point{100, 100}}})
	if err != nil || len(pls) != 1 {
		t.Fatalf("Paint() = %v, %v", pls, err)
	}
	// Lower left corner at (105, 90): displacement Y points up the screen.
	assertBoundNear(t, pls[0].Bounds, bound(105, 83, 185, 90))
}

// TestPaint_PointRingSearch tests that a blocked label orbits its point.
func TestPaint_PointRingSearch(t *testing.T) {
	blocked := bound(55, 95, 145, 105)
	at := []orb.Geometry{orb.Point{100, 100}}

	p := newPainter(bound(0, 0, 200, 200))
	p.Index.Reserve(blocked)
	pls, err := p.Paint(Label{Text: label10, Style: newStyle(t, nil), Geometries: at})
	if err != nil || len(pls) != 0 {
		t.Fatalf("Paint() = %v, %v; want no placement without displacement", pls, err)
	}

	st := newStyle(t, map[string]string{style.OptMaxDisplacement: "20"})
	pls, err = p.Paint(Label{Text: label10, Style: st, Geometries: at})
	if err != nil || len(pls) != 1 {
		t.Fatalf("Paint() = %v, %v; want one placement", pls, err)
	}
	b := pls[0].Bounds
	if b.Intersects(blocked) {
		t.Errorf("placement %v overlaps reserved %v", b, blocked)
	}
	// First hit: 8 pixels out at 45 degrees, label hanging below right.
	if b.Min[0] < 100 || b.Min[1] < 105 {
		t.Errorf("placement %v, want below right of the point", b)
	}
}

// TestPaint_PointOutsideDisplay tests points outside the display.
func TestPaint_PointOutsideDisplay(t *testing.T) {
	p := newPainter(bound(0, 0, 200, 200))
	pls, err := p.Paint(Label{Text: "a", Style: newStyle(t, nil), Geometries: []orb.Geometry{orb.Point{300, 300}}})
	if err != nil || len(pls) != 0 {
		t.Errorf("Paint() = %v, %v; want nothing", pls, err)
	}
}

// TestRingAnchors tests that labels are anchored on the side facing the
// point.
func TestRingAnchors(t *testing.T) {
	const pi4 = 0.7853981633974483
	tests := []struct {
		name  string
		angle float64
		first style.Anchor
	}{
		{"right", 0, style.Anchor{X: 0, Y: 0.5}},
		{"left", 4 * pi4, style.Anchor{X: 1, Y: 0.5}},
		{"up", -2 * pi4, style.Anchor{X: 0.5, Y: 0}},
		{"down", 2 * pi4, style.Anchor{X: 0.5, Y: 1}},
		{"up right", -pi4, style.Anchor{X: 0, Y: 0}},
		{"down left", 3 * pi4, style.Anchor{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ringAnchors(tt.angle)
			if len(got) != 3 {
				t.Fatalf("got %d anchors, want 3", len(got))
			}
			if got[0] != tt.first {
				t.Errorf("first anchor = %+v, want %+v", got[0], tt.first)
			}
		})
	}
}
