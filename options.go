package label

import (
	"log/slog"

	"github.com/gogpu/label/geom"
	"github.com/gogpu/label/placement"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/text"
)

// Option configures a Scheduler during creation.
//
// Example:
//
//	s := label.New(
//	    label.WithRenderMode(render.ModeAdaptive),
//	    label.WithWorldToScreen(worldToScreen),
//	)
type Option func(*schedulerOptions)

// schedulerOptions holds optional configuration for Scheduler creation.
type schedulerOptions struct {
	mode          render.Mode
	shaper        text.Shaper
	fonts         placement.FontResolver
	worldToScreen geom.Matrix
	scale         float64
	logger        *slog.Logger
}

// defaultOptions returns the default scheduler options.
func defaultOptions() schedulerOptions {
	return schedulerOptions{
		mode:          render.ModeAdaptive,
		worldToScreen: geom.Identity(),
	}
}

// WithRenderMode selects how label text is drawn. The default is
// render.ModeAdaptive.
func WithRenderMode(m render.Mode) Option {
	return func(o *schedulerOptions) {
		o.mode = m
	}
}

// WithShaper sets the text shaper. The default shapes with go-text
// HarfBuzz for English.
func WithShaper(s text.Shaper) Option {
	return func(o *schedulerOptions) {
		o.shaper = s
	}
}

// WithFontLibrary sets the fonts labels are resolved against, usually a
// *text.Library. The default is text.DefaultLibrary, loaded on the first
// pass.
func WithFontLibrary(fonts placement.FontResolver) Option {
	return func(o *schedulerOptions) {
		o.fonts = fonts
	}
}

// WithWorldToScreen sets the transform applied to submitted feature
// geometries. The default is the identity: geometries are already in
// screen pixels.
func WithWorldToScreen(m geom.Matrix) Option {
	return func(o *schedulerOptions) {
		o.worldToScreen = m
	}
}

// WithScaleDenominator sets the map scale checked against request scale
// ranges. Zero, the default, accepts every request.
func WithScaleDenominator(d float64) Option {
	return func(o *schedulerOptions) {
		o.scale = d
	}
}

// WithLogger sets the scheduler logger, overriding the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *schedulerOptions) {
		o.logger = l
	}
}
