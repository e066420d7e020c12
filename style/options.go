package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMargins is returned for a margin shorthand that does not hold
// one to four numbers.
var ErrInvalidMargins = errors.New("style: margin shorthand needs 1 to 4 numeric values")

// Vendor option names understood by ParseOptions.
const (
	OptSpaceAround        = "spaceAround"
	OptMaxDisplacement    = "maxDisplacement"
	OptMinGroupDistance   = "minGroupDistance"
	OptRepeat             = "repeat"
	OptGroup              = "group"
	OptLabelAllGroup      = "labelAllGroup"
	OptRemoveOverlaps     = "removeOverlaps"
	OptAllowOverruns      = "allowOverruns"
	OptFollowLine         = "followLine"
	OptForceLeftToRight   = "forceLeftToRight"
	OptConflictResolution = "conflictResolution"
	OptGoodnessOfFit      = "goodnessOfFit"
	OptMaxAngleDelta      = "maxAngleDelta"
	OptAutoWrap           = "autoWrap"
	OptWordSpacing        = "wordSpacing"
	OptCharSpacing        = "charSpacing"
	OptPolygonAlign       = "polygonAlign"
	OptPartials           = "partials"
	OptGraphicResize      = "graphic-resize"
	OptGraphicMargin      = "graphic-margin"
)

// Default option values.
const (
	DefaultSpaceAround      = 0
	DefaultMaxDisplacement  = 0
	DefaultMinGroupDistance = -1
	DefaultRepeat           = 0
	DefaultGoodnessOfFit    = 0.5
	DefaultMaxAngleDelta    = 22.5
	DefaultAutoWrap         = 0
	DefaultWordSpacing      = 0
	DefaultCharSpacing      = 0
)

// ShieldResize selects how a shield graphic is sized around its label.
type ShieldResize int

const (
	// ResizeNone draws the graphic at its natural size.
	ResizeNone ShieldResize = iota
	// ResizeStretch stretches the graphic to the label box plus margins.
	ResizeStretch
	// ResizeProportional scales the graphic uniformly to cover the larger
	// label dimension plus margins.
	ResizeProportional
)

// String returns the vendor option spelling of the mode.
func (r ShieldResize) String() string {
	switch r {
	case ResizeNone:
		return "none"
	case ResizeStretch:
		return "stretch"
	case ResizeProportional:
		return "proportional"
	default:
		return "unknown"
	}
}

// PolygonAlign selects the rotation applied to labels placed in polygons.
type PolygonAlign int

const (
	// AlignManual keeps the style rotation.
	AlignManual PolygonAlign = iota
	// AlignOrtho tries a vertical label, or a horizontal one when the style
	// rotation is already vertical.
	AlignOrtho
	// AlignMBR aligns with the longer edge of the minimum bounding rectangle.
	AlignMBR
)

// String returns the vendor option spelling of the mode.
func (a PolygonAlign) String() string {
	switch a {
	case AlignManual:
		return "manual"
	case AlignOrtho:
		return "ortho"
	case AlignMBR:
		return "mbr"
	default:
		return "unknown"
	}
}

// Margins are per-side distances in pixels, in CSS order.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Options are the placement parameters of a label.
type Options struct {
	// SpaceAround is the minimum distance to other labels. Negative values
	// disable conflict checking entirely.
	SpaceAround float64
	// MaxDisplacement bounds the displacement search radius.
	MaxDisplacement float64
	// MinGroupDistance is the distance kept between repeats of the same
	// label along a line.
	MinGroupDistance float64
	// Repeat is the distance between repeated line labels; 0 disables it.
	Repeat float64

	Group              bool
	LabelAllGroup      bool
	RemoveOverlaps     bool
	AllowOverruns      bool
	FollowLine         bool
	ForceLeftToRight   bool
	ConflictResolution bool
	Partials           bool

	// GoodnessOfFit is the minimum fraction of a polygon label that must
	// fall inside the polygon.
	GoodnessOfFit float64
	// MaxAngleDelta is the largest turn in degrees allowed between two
	// consecutive characters of a curved label.
	MaxAngleDelta float64

	AutoWrap     float64
	WordSpacing  float64
	CharSpacing  float64
	PolygonAlign PolygonAlign

	GraphicResize  ShieldResize
	GraphicMargins Margins
}

// DefaultOptions returns the documented option defaults.
func DefaultOptions() Options {
	return Options{
		SpaceAround:        DefaultSpaceAround,
		MaxDisplacement:    DefaultMaxDisplacement,
		MinGroupDistance:   DefaultMinGroupDistance,
		Repeat:             DefaultRepeat,
		AllowOverruns:      true,
		ForceLeftToRight:   true,
		ConflictResolution: true,
		GoodnessOfFit:      DefaultGoodnessOfFit,
		MaxAngleDelta:      DefaultMaxAngleDelta,
		AutoWrap:           DefaultAutoWrap,
		WordSpacing:        DefaultWordSpacing,
		CharSpacing:        DefaultCharSpacing,
		PolygonAlign:       AlignManual,
		GraphicResize:      ResizeNone,
	}
}

// ParseOptions reads vendor options over DefaultOptions. Unknown keys are
// ignored. Only a malformed graphic-margin is reported as an error.
func ParseOptions(raw map[string]string) (Options, error) {
	o := DefaultOptions()
	r := optionReader(raw)

	o.SpaceAround = r.float(OptSpaceAround, o.SpaceAround)
	o.MaxDisplacement = r.float(OptMaxDisplacement, o.MaxDisplacement)
	o.MinGroupDistance = r.float(OptMinGroupDistance, o.MinGroupDistance)
	o.Repeat = r.float(OptRepeat, o.Repeat)
	o.Group = r.bool(OptGroup, o.Group)
	o.LabelAllGroup = r.bool(OptLabelAllGroup, o.LabelAllGroup)
	o.RemoveOverlaps = r.bool(OptRemoveOverlaps, o.RemoveOverlaps)
	o.AllowOverruns = r.bool(OptAllowOverruns, o.AllowOverruns)
	o.FollowLine = r.bool(OptFollowLine, o.FollowLine)
	o.ForceLeftToRight = r.bool(OptForceLeftToRight, o.ForceLeftToRight)
	o.ConflictResolution = r.bool(OptConflictResolution, o.ConflictResolution)
	o.Partials = r.bool(OptPartials, o.Partials)
	o.GoodnessOfFit = clamp01(r.float(OptGoodnessOfFit, o.GoodnessOfFit))
	o.MaxAngleDelta = r.float(OptMaxAngleDelta, o.MaxAngleDelta)
	o.AutoWrap = r.float(OptAutoWrap, o.AutoWrap)
	o.WordSpacing = r.float(OptWordSpacing, o.WordSpacing)
	o.CharSpacing = r.float(OptCharSpacing, o.CharSpacing)

	switch r.enum(OptPolygonAlign, "manual", "ortho", "mbr") {
	case "ortho":
		o.PolygonAlign = AlignOrtho
	case "mbr":
		o.PolygonAlign = AlignMBR
	}
	switch r.enum(OptGraphicResize, "none", "stretch", "proportional") {
	case "stretch":
		o.GraphicResize = ResizeStretch
	case "proportional":
		o.GraphicResize = ResizeProportional
	}

	if v, ok := raw[OptGraphicMargin]; ok {
		m, err := ParseMargins(v)
		if err != nil {
			return Options{}, fmt.Errorf("style: option %s: %w", OptGraphicMargin, err)
		}
		o.GraphicMargins = m
	}
	return o, nil
}

// ParseMargins parses a CSS-like margin shorthand. Values may be separated
// by spaces or commas:
//
//	"5"           all sides
//	"5 10"        top/bottom, left/right
//	"5 10 2"      top, left/right, bottom
//	"5 10 2 8"    top, right, bottom, left
func ParseMargins(s string) (Margins, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 0 || len(fields) > 4 {
		return Margins{}, ErrInvalidMargins
	}
	v := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return Margins{}, fmt.Errorf("%w: %q", ErrInvalidMargins, f)
		}
		v[i] = n
	}

	switch len(v) {
	case 1:
		return Margins{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}, nil
	case 2:
		return Margins{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}, nil
	case 3:
		return Margins{Top: v[0], Right: v[1], Bottom: v[2], Left: v[1]}, nil
	default:
		return Margins{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
	}
}

// optionReader reads typed values out of raw vendor options, returning the
// default for missing or malformed entries.
type optionReader map[string]string

func (r optionReader) float(key string, def float64) float64 {
	v, ok := r[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func (r optionReader) bool(key string, def bool) bool {
	v, ok := r[key]
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	default:
		return def
	}
}

// enum returns the lower-cased value when it is one of allowed, otherwise
// the first allowed value.
func (r optionReader) enum(key string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(r[key]))
	for _, a := range allowed {
		if v == a {
			return a
		}
	}
	return allowed[0]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
