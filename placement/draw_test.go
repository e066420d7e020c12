package placement

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/index"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/style"
	"github.com/gogpu/label/text"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func paintRecorded(t *testing.T, mode render.Mode, spec style.Spec) (*render.Recorder, []Placement) {
	t.Helper()
	spec.Fonts = []style.Font{{Family: "box", Size: 10}}
	st, err := style.NewText(spec)
	if err != nil {
		t.Fatal(err)
	}
	p := newPainter(bound(0, 0, 200, 200))
	rec := render.NewRecorder()
	p.Target = rec
	p.Mode = mode
	pls, err := p.Paint(Label{Text: label10, Style: st, Geometries: []orb.Geometry{orb.Point{100, 100}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 1 {
		t.Fatalf("placed %d, want 1", len(pls))
	}
	return rec, pls
}

// TestDraw_Modes tests the commands drawn per render mode.
func TestDraw_Modes(t *testing.T) {
	halo := &style.Halo{Radius: 2, Fill: style.SolidFill(white)}
	tests := []struct {
		name      string
		mode      render.Mode
		rotation  float64
		halo      *style.Halo
		fills     int
		strokes   int
		glyphRuns int
	}{
		{"glyph run", render.ModeGlyphRun, 0, nil, 0, 0, 1},
		{"glyph run halo", render.ModeGlyphRun, 0, halo, 0, 1, 1},
		{"outline", render.ModeOutline, 0, nil, 1, 0, 0},
		{"outline halo", render.ModeOutline, 0, halo, 1, 1, 0},
		{"adaptive upright", render.ModeAdaptive, 0, nil, 0, 0, 1},
		{"adaptive rotated", render.ModeAdaptive, 30, nil, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := paintRecorded(t, tt.mode, style.Spec{Halo: tt.halo, Rotation: tt.rotation})
			if got := rec.Count(render.CmdFill); got != tt.fills {
				t.Errorf("fills = %d, want %d", got, tt.fills)
			}
			if got := rec.Count(render.CmdStroke); got != tt.strokes {
				t.Errorf("strokes = %d, want %d", got, tt.strokes)
			}
			if got := rec.Count(render.CmdDrawGlyphRun); got != tt.glyphRuns {
				t.Errorf("glyph runs = %d, want %d", got, tt.glyphRuns)
			}
			if rec.Count(render.CmdPush) != rec.Count(render.CmdPop) {
				t.Error("unbalanced transform stack")
			}
		})
	}
}

// TestDraw_Order tests that the halo is drawn under the text.
func TestDraw_Order(t *testing.T) {
	halo := &style.Halo{Radius: 2, Fill: style.SolidFill(white)}
	rec, _ := paintRecorded(t, render.ModeGlyphRun, style.Spec{Halo: halo})

	var order []render.CommandType
	for _, c := range rec.Commands() {
		if ct := c.Type(); ct == render.CmdStroke || ct == render.CmdDrawGlyphRun {
			order = append(order, ct)
		}
	}
	if len(order) != 2 || order[0] != render.CmdStroke {
		t.Errorf("draw order = %v, want halo stroke first", order)
	}
	for _, c := range rec.Commands() {
		if s, ok := c.(render.StrokeCommand); ok && s.Paint.Color != white {
			t.Errorf("halo paint = %v, want white", s.Paint.Color)
		}
	}
}

// TestDraw_Opacity tests that translucent fills and halos draw into layers.
func TestDraw_Opacity(t *testing.T) {
	halo := &style.Halo{Radius: 2, Fill: style.Fill{Color: white, Opacity: 0.5}}
	fill := style.Fill{Color: color.NRGBA{A: 255}, Opacity: 0.5}
	rec, _ := paintRecorded(t, render.ModeGlyphRun, style.Spec{Halo: halo, Fill: fill})

	if got := rec.Count(render.CmdBeginLayer); got != 2 {
		t.Errorf("layers = %d, want 2", got)
	}
	if rec.Count(render.CmdBeginLayer) != rec.Count(render.CmdEndLayer) {
		t.Error("unbalanced layers")
	}
}

// TestDraw_Shield tests that a shield grows the placement and is filled
// behind the text.
func TestDraw_Shield(t *testing.T) {
	shield := &style.Shield{Width: 100, Height: 20, Fill: style.SolidFill(white)}
	rec, pls := paintRecorded(t, render.ModeGlyphRun, style.Spec{Shield: shield})

	assertBoundNear(t, pls[0].Bounds, bound(50, 90, 150, 110))
	if got := rec.Count(render.CmdFill); got != 1 {
		t.Errorf("fills = %d, want 1 for the shield", got)
	}
	cmds := rec.Commands()
	for i, c := range cmds {
		if c.Type() == render.CmdDrawGlyphRun {
			for _, after := range cmds[i:] {
				if after.Type() == render.CmdFill {
					t.Fatal("shield drawn over the text")
				}
			}
		}
	}
}

// TestDraw_Raster tests drawing a label with a real font.
func TestDraw_Raster(t *testing.T) {
	lib, err := text.DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	st, err := style.NewText(style.Spec{
		Fonts: []style.Font{{Family: "sans-serif", Size: 16}},
		Halo:  &style.Halo{Radius: 1.5, Fill: style.SolidFill(white)},
	})
	if err != nil {
		t.Fatal(err)
	}

	r := render.NewRaster(200, 100)
	p := &Painter{
		Index:   index.New(),
		Engine:  text.NewEngine(text.NewGoTextShaper("en")),
		Fonts:   lib,
		Target:  r,
		Display: bound(0, 0, 200, 100),
	}
	pls, err := p.Paint(Label{Text: "Label", Style: st, Geometries: []orb.Geometry{orb.Point{100, 50}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 1 {
		t.Fatalf("placed %d, want 1", len(pls))
	}

	img := r.Image()
	b := pls[0].Bounds
	var dark, light int
	for y := int(b.Min[1]); y < int(b.Max[1]); y++ {
		for x := int(b.Min[0]); x < int(b.Max[0]); x++ {
			c := img.RGBAAt(x, y)
			switch {
			case c.A == 0:
			case c.R < 64:
				dark++
			case c.R > 192:
				light++
			}
		}
	}
	if dark == 0 || light == 0 {
		t.Errorf("dark = %d, light = %d; want text and halo pixels", dark, light)
	}
	if c := img.RGBAAt(5, 5); c.A != 0 {
		t.Errorf("pixel outside the label = %v, want transparent", c)
	}
}
