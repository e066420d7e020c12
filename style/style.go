// Package style defines the immutable text style value consumed by the label
// engine, together with the vendor option parser that produces it.
//
// A Text value describes how one label is drawn (fonts, fill, halo, shield)
// and how it may be placed (anchor, displacement, rotation and the placement
// Options). The engine never modifies a Text after NewText returns it; any
// per-attempt variation (such as an alternate polygon rotation) is carried
// by the placement package instead.
package style

import (
	"errors"
	"image/color"
	"math"
)

// ErrNoFonts is returned by NewText when the spec names no font.
var ErrNoFonts = errors.New("style: at least one font is required")

// Font requests a font family at a pixel size. Families are resolved to
// loaded fonts by text.Library.
type Font struct {
	Family string
	Size   float64
}

// Fill is a solid paint with an opacity in [0, 1].
type Fill struct {
	Color   color.NRGBA
	Opacity float64
}

// SolidFill returns an opaque fill of the given color.
func SolidFill(c color.NRGBA) Fill {
	return Fill{Color: c, Opacity: 1}
}

// Halo is an outline drawn around the glyphs, Radius pixels wide.
type Halo struct {
	Radius float64
	Fill   Fill
}

// Anchor positions the label box relative to the anchor point, as fractions
// of the label width and height. X runs left (0) to right (1); Y runs from
// the bottom (0) to the top (1) of the box, following SLD.
type Anchor struct {
	X, Y float64
}

// Common anchors.
var (
	AnchorCenter     = Anchor{X: 0.5, Y: 0.5}
	AnchorLowerLeft  = Anchor{X: 0, Y: 0}
	AnchorLowerRight = Anchor{X: 1, Y: 0}
	AnchorUpperLeft  = Anchor{X: 0, Y: 1}
	AnchorUpperRight = Anchor{X: 1, Y: 1}
)

// Displacement offsets the label from its anchor point in pixels. Positive
// Y moves the label up the screen, following SLD.
type Displacement struct {
	X, Y float64
}

// IsZero reports whether the displacement is the zero vector.
func (d Displacement) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// Angle returns the screen-space direction of the displacement in radians,
// measured with y pointing down.
func (d Displacement) Angle() float64 {
	return math.Atan2(-d.Y, d.X)
}

// Shield is a graphic drawn underneath the label text.
type Shield struct {
	// Width and Height are the natural graphic size in pixels.
	Width, Height float64

	Fill        Fill
	Stroke      *Fill
	StrokeWidth float64

	Resize  ShieldResize
	Margins Margins
}

// Text is the resolved style of one label.
type Text struct {
	Fonts []Font
	Fill  Fill
	Halo  *Halo

	// Rotation is the label rotation in degrees, clockwise on screen.
	Rotation     float64
	Anchor       Anchor
	Displacement Displacement

	Shield *Shield

	Options Options
}

// Spec collects the inputs of NewText. Raw vendor options are parsed with
// ParseOptions; options that configure the shield graphic are applied to
// Shield.
type Spec struct {
	Fonts        []Font
	Fill         Fill
	Halo         *Halo
	Rotation     float64
	Anchor       *Anchor
	Displacement Displacement
	Shield       *Shield
	Vendor       map[string]string
}

// NewText validates spec and returns the resulting style.
//
// Malformed numeric, boolean and enum vendor options silently fall back to
// their defaults. A malformed graphic-margin value is rejected.
func NewText(spec Spec) (*Text, error) {
	if len(spec.Fonts) == 0 {
		return nil, ErrNoFonts
	}
	opts, err := ParseOptions(spec.Vendor)
	if err != nil {
		return nil, err
	}

	t := &Text{
		Fonts:        append([]Font(nil), spec.Fonts...),
		Fill:         spec.Fill,
		Rotation:     spec.Rotation,
		Anchor:       AnchorCenter,
		Displacement: spec.Displacement,
		Options:      opts,
	}
	if t.Fill.Opacity == 0 && t.Fill.Color == (color.NRGBA{}) {
		t.Fill = SolidFill(color.NRGBA{A: 255})
	}
	if spec.Anchor != nil {
		t.Anchor = *spec.Anchor
	}
	if spec.Halo != nil && spec.Halo.Radius > 0 {
		h := *spec.Halo
		t.Halo = &h
	}
	if spec.Shield != nil {
		s := *spec.Shield
		s.Resize = opts.GraphicResize
		s.Margins = opts.GraphicMargins
		t.Shield = &s
	}
	return t, nil
}

// RotationRadians returns Rotation converted to radians.
func (t *Text) RotationRadians() float64 {
	return t.Rotation * math.Pi / 180
}

// HaloRadius returns the halo radius, or 0 without a halo.
func (t *Text) HaloRadius() float64 {
	if t.Halo == nil {
		return 0
	}
	return t.Halo.Radius
}
