// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/vector"

	"github.com/gogpu/label/geom"
)

// Raster is a Target rasterizing into an *image.RGBA with anti-aliasing.
//
// Raster is not safe for concurrent use.
type Raster struct {
	layers    []*image.RGBA
	saved     []geom.Matrix
	transform geom.Matrix
	paint     Paint
	composite Composite
	rast      vector.Rasterizer
}

var _ Layered = (*Raster)(nil)

// NewRaster returns a raster target over a new transparent image of the
// given size.
func NewRaster(width, height int) *Raster {
	return NewRasterFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewRasterFor returns a raster target drawing into img.
func NewRasterFor(img *image.RGBA) *Raster {
	return &Raster{
		layers:    []*image.RGBA{img},
		transform: geom.Identity(),
		paint:     SolidPaint(color.NRGBA{A: 255}),
		composite: Opaque,
	}
}

// Image returns the base image.
func (r *Raster) Image() *image.RGBA {
	return r.layers[0]
}

// Push implements Target.
func (r *Raster) Push(m geom.Matrix) {
	r.saved = append(r.saved, r.transform)
	r.transform = r.transform.Multiply(m)
}

// Pop implements Target.
func (r *Raster) Pop() {
	n := len(r.saved)
	if n == 0 {
		return
	}
	r.transform = r.saved[n-1]
	r.saved = r.saved[:n-1]
}

// Transform implements Target.
func (r *Raster) Transform() geom.Matrix { return r.transform }

// SetPaint implements Target.
func (r *Raster) SetPaint(p Paint) { r.paint = p }

// SetComposite implements Target.
func (r *Raster) SetComposite(c Composite) { r.composite = c }

// Fill implements Target.
func (r *Raster) Fill(p *geom.Path) {
	if p.IsEmpty() {
		return
	}
	r.fillDevice(p.Transform(r.transform))
}

// Stroke implements Target. The stroke is expanded in user space, so its
// width scales with the transform.
func (r *Raster) Stroke(p *geom.Path, s Stroke) {
	outline := ExpandStroke(p, s)
	if outline.IsEmpty() {
		return
	}
	r.fillDevice(outline.Transform(r.transform))
}

// DrawGlyphRun implements Target by filling the glyph outlines.
func (r *Raster) DrawGlyphRun(g GlyphRun) error {
	if g.Run == nil {
		return nil
	}
	m := r.transform.Multiply(geom.Translate(g.Origin[0], g.Origin[1]))
	p, err := g.Run.Outline(m)
	if err != nil {
		return err
	}
	r.fillDevice(p)
	return nil
}

// BeginLayer implements Layered.
func (r *Raster) BeginLayer() {
	r.layers = append(r.layers, image.NewRGBA(r.layers[0].Bounds()))
}

// EndLayer implements Layered. Without a matching BeginLayer it is a no-op.
func (r *Raster) EndLayer(alpha float64) {
	n := len(r.layers)
	if n < 2 {
		return
	}
	top, below := r.layers[n-1], r.layers[n-2]
	r.layers = r.layers[:n-1]
	a := uint8(math.Round(clamp01(alpha) * 255))
	if a == 0 {
		return
	}
	mask := image.NewUniform(color.Alpha{A: a})
	draw.DrawMask(below, top.Bounds(), top, top.Bounds().Min, mask, image.Point{}, draw.Over)
}

// fillDevice fills a path already in device coordinates.
func (r *Raster) fillDevice(p *geom.Path) {
	dst := r.layers[len(r.layers)-1]
	area := clipRect(p.Bound(), dst.Bounds())
	if area.Empty() {
		return
	}
	off := area.Min

	r.rast.Reset(area.Dx(), area.Dy())
	r.rast.DrawOp = draw.Over
	pt := func(q orb.Point) (float32, float32) {
		return float32(q[0] - float64(off.X)), float32(q[1] - float64(off.Y))
	}
	for _, s := range p.Segments {
		switch s.Op {
		case geom.OpMoveTo:
			r.rast.MoveTo(pt(s.Points[0]))
		case geom.OpLineTo:
			r.rast.LineTo(pt(s.Points[0]))
		case geom.OpQuadTo:
			cx, cy := pt(s.Points[0])
			x, y := pt(s.Points[1])
			r.rast.QuadTo(cx, cy, x, y)
		case geom.OpCubeTo:
			c1x, c1y := pt(s.Points[0])
			c2x, c2y := pt(s.Points[1])
			x, y := pt(s.Points[2])
			r.rast.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case geom.OpClose:
			r.rast.ClosePath()
		}
	}
	r.rast.Draw(dst, area, image.NewUniform(r.color()), image.Point{})
}

// color returns the paint color with the composite alpha applied.
func (r *Raster) color() color.NRGBA {
	c := r.paint.Color
	c.A = uint8(math.Round(float64(c.A) * clamp01(r.composite.Alpha)))
	return c
}

// clipRect returns the pixel rectangle covering b, clipped to bounds.
func clipRect(b orb.Bound, bounds image.Rectangle) image.Rectangle {
	if math.IsInf(b.Min[0], 0) || math.IsNaN(b.Min[0]) {
		return image.Rectangle{}
	}
	rect := image.Rect(
		int(math.Floor(b.Min[0])), int(math.Floor(b.Min[1])),
		int(math.Ceil(b.Max[0])), int(math.Ceil(b.Max[1])),
	)
	return rect.Intersect(bounds)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
