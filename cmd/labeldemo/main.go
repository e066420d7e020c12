// Command labeldemo renders the labels of GeoJSON layers to a PNG.
//
//	labeldemo -layer cities=cities.geojson -layer rivers=rivers.geojson \
//	    -prop name -priority population -output labels.png
//
// Layers are labelled in the order given. Feature geometries are drawn in
// light gray under the labels.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/label"
	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/style"
	"github.com/gogpu/label/text"
)

// pairs collects repeated name=value flags.
type pairs [][2]string

func (p *pairs) String() string {
	parts := make([]string, len(*p))
	for i, kv := range *p {
		parts[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(parts, ",")
}

func (p *pairs) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	*p = append(*p, [2]string{k, v})
	return nil
}

type layer struct {
	name     string
	features []*geojson.Feature
}

func main() {
	var layers, vendor pairs
	var (
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 600, "image height")
		output   = flag.String("output", "labels.png", "output file")
		fontPath = flag.String("font", "", "TrueType font file (default Go Regular)")
		size     = flag.Float64("size", 12, "font size in pixels")
		halo     = flag.Float64("halo", 1.5, "halo radius, 0 for none")
		prop     = flag.String("prop", "name", "feature property holding the label text")
		priority = flag.String("priority", "", "feature property holding the label priority")
		modeName = flag.String("mode", "adaptive", "text drawing: glyphrun, outline or adaptive")
		verbose  = flag.Bool("verbose", false, "log placement diagnostics")
	)
	flag.Var(&layers, "layer", "layer as name=file.geojson (repeatable)")
	flag.Var(&vendor, "vendor", "placement option as name=value (repeatable)")
	flag.Parse()

	if len(layers) == 0 {
		log.Fatal("no layers: pass at least one -layer name=file.geojson")
	}
	if *verbose {
		label.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	mode, ok := render.ParseMode(*modeName)
	if !ok {
		log.Fatalf("unknown mode %q", *modeName)
	}

	var loaded []layer
	for _, kv := range layers {
		fc, err := readLayer(kv[1])
		if err != nil {
			log.Fatalf("layer %s: %v", kv[0], err)
		}
		loaded = append(loaded, layer{name: kv[0], features: fc.Features})
	}

	fonts, family, err := loadFonts(*fontPath)
	if err != nil {
		log.Fatalf("fonts: %v", err)
	}
	spec := style.Spec{
		Fonts:  []style.Font{{Family: family, Size: *size}},
		Vendor: map[string]string{},
	}
	if *halo > 0 {
		spec.Halo = &style.Halo{Radius: *halo, Fill: style.SolidFill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})}
	}
	for _, kv := range vendor {
		spec.Vendor[kv[0]] = kv[1]
	}
	st, err := style.NewText(spec)
	if err != nil {
		log.Fatalf("style: %v", err)
	}

	w, h := *width, *height
	toScreen := fit(loaded, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	target := render.NewRasterFor(img)
	drawFeatures(target, loaded, toScreen)

	s := label.New(
		label.WithRenderMode(mode),
		label.WithFontLibrary(fonts),
		label.WithWorldToScreen(toScreen),
	)
	s.Start()
	for _, l := range loaded {
		s.StartLayer(l.name)
		for _, f := range l.features {
			v, ok := f.Properties[*prop]
			if !ok || v == nil {
				continue
			}
			req := label.Request{
				LayerID: l.name,
				Style:   st,
				Feature: f,
				Label:   fmt.Sprint(v),
			}
			if *priority != "" {
				req.Priority = label.Property(*priority)
			}
			if err := s.Submit(req); err != nil {
				log.Fatalf("layer %s: %v", l.name, err)
			}
		}
		if err := s.EndLayer(l.name); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	display := orb.Bound{Max: orb.Point{float64(w), float64(h)}}
	stats, err := s.RunPass(ctx, target, display)
	if err != nil {
		log.Fatalf("placement: %v", err)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Labels saved to %s (%dx%d): %d of %d placed, %d failed\n",
		*output, w, h, stats.Placed, stats.Candidates, stats.Failed)
}

func readLayer(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(data)
}

// loadFonts returns the Go fonts, plus the font at path when given, and the
// family labels use.
func loadFonts(path string) (*text.Library, string, error) {
	lib, err := text.DefaultLibrary()
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return lib, "sans-serif", nil
	}
	f, err := text.LoadFont(path)
	if err != nil {
		return nil, "", err
	}
	lib.Register("custom", f)
	return lib, "custom", nil
}

// fit returns the transform showing every feature in a w by h image, north
// up, with a small margin.
func fit(layers []layer, w, h float64) geom.Matrix {
	var b orb.Bound
	first := true
	for _, l := range layers {
		for _, f := range l.features {
			if f.Geometry == nil {
				continue
			}
			if first {
				b, first = f.Geometry.Bound(), false
			} else {
				b = b.Union(f.Geometry.Bound())
			}
		}
	}
	bw, bh := b.Right()-b.Left(), b.Top()-b.Bottom()
	scale := 1.0
	if bw > 0 && bh > 0 {
		scale = 0.9 * min(w/bw, h/bh)
	} else if bw > 0 {
		scale = 0.9 * w / bw
	} else if bh > 0 {
		scale = 0.9 * h / bh
	}
	c := b.Center()
	return geom.Translate(w/2, h/2).
		Multiply(geom.Scale(scale, -scale)).
		Multiply(geom.Translate(-c[0], -c[1]))
}

// drawFeatures strokes line and polygon outlines and marks points.
func drawFeatures(t render.Target, layers []layer, m geom.Matrix) {
	t.SetPaint(render.SolidPaint(color.NRGBA{R: 200, G: 200, B: 200, A: 255}))
	s := render.DefaultStroke()
	for _, l := range layers {
		for _, f := range l.features {
			p := geom.NewPath()
			appendGeometry(p, f.Geometry, m)
			if !p.IsEmpty() {
				t.Stroke(p, s)
			}
		}
	}
}

func appendGeometry(p *geom.Path, g orb.Geometry, m geom.Matrix) {
	switch g := g.(type) {
	case orb.Point:
		p.Circle(m.Apply(g), 2)
	case orb.MultiPoint:
		for _, pt := range g {
			appendGeometry(p, pt, m)
		}
	case orb.LineString:
		for i, pt := range g {
			if i == 0 {
				p.MoveTo(m.Apply(pt))
			} else {
				p.LineTo(m.Apply(pt))
			}
		}
	case orb.Ring:
		appendGeometry(p, orb.LineString(g), m)
		p.Close()
	case orb.MultiLineString:
		for _, ls := range g {
			appendGeometry(p, ls, m)
		}
	case orb.Polygon:
		for _, r := range g {
			appendGeometry(p, r, m)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			appendGeometry(p, poly, m)
		}
	case orb.Collection:
		for _, c := range g {
			appendGeometry(p, c, m)
		}
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
