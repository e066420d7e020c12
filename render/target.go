// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/text"
)

// Target is a drawing surface. Coordinates passed to drawing operations are
// transformed by the current transform.
type Target interface {
	// Push concatenates m onto the current transform, saving the previous
	// one. Drawing coordinates are mapped by m first.
	Push(m geom.Matrix)

	// Pop restores the transform saved by the matching Push. Pop without a
	// matching Push is a no-op.
	Pop()

	// Transform returns the current transform.
	Transform() geom.Matrix

	SetPaint(p Paint)
	SetComposite(c Composite)

	// DrawGlyphRun draws a shaped run with its baseline origin at Origin.
	DrawGlyphRun(run GlyphRun) error

	// Fill fills a path with the non-zero winding rule.
	Fill(p *geom.Path)

	// Stroke strokes a path.
	Stroke(p *geom.Path, s Stroke)
}

// Layered is implemented by targets able to draw into offscreen layers.
type Layered interface {
	Target

	// BeginLayer redirects drawing into a new transparent layer.
	BeginLayer()

	// EndLayer composites the current layer onto the one below it with a
	// uniform alpha and releases it.
	EndLayer(alpha float64)
}

// Paint is a solid color.
type Paint struct {
	Color color.NRGBA
}

// SolidPaint returns a paint of color c.
func SolidPaint(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Composite is source-over compositing with an extra uniform alpha.
type Composite struct {
	Alpha float64
}

// Opaque is the default composite.
var Opaque = Composite{Alpha: 1}

// GlyphRun is a shaped run positioned at a baseline origin.
type GlyphRun struct {
	Run    *text.Run
	Origin orb.Point
}

// LineCap is the shape of the ends of an open stroked subpath.
type LineCap int

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt LineCap = iota
	// CapRound ends the stroke with a half circle.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

// LineJoin is the shape of corners between stroked segments.
type LineJoin int

const (
	// JoinMiter extends the outer edges until they meet, up to MiterLimit.
	JoinMiter LineJoin = iota
	// JoinRound rounds corners with an arc.
	JoinRound
	// JoinBevel cuts corners flat.
	JoinBevel
)

// Stroke describes how a path is stroked.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a 1 pixel stroke with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
}

// HaloStroke returns the stroke drawing a halo of the given radius around
// glyph outlines.
func HaloStroke(radius float64) Stroke {
	return Stroke{Width: 2 * radius, Cap: CapRound, Join: JoinRound, MiterLimit: 4}
}

// WithOpacity runs fn with everything it draws composited at alpha as a
// single layer. Opaque blocks are drawn directly. Targets that are not
// Layered get a composite alpha for the duration of fn instead.
func WithOpacity(t Target, alpha float64, fn func(Target) error) error {
	if alpha >= 1 {
		return fn(t)
	}
	if alpha <= 0 {
		return nil
	}
	if l, ok := t.(Layered); ok {
		l.BeginLayer()
		err := fn(t)
		l.EndLayer(alpha)
		return err
	}
	t.SetComposite(Composite{Alpha: alpha})
	defer t.SetComposite(Opaque)
	return fn(t)
}
