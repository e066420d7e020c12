// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the drawing surface labels are painted on.
//
// The label engine only needs a small set of operations: a transform
// stack, a solid paint with a uniform opacity, filling and stroking vector
// paths, and drawing shaped glyph runs. Target captures exactly that.
//
// # Targets
//
//   - Raster: anti-aliased CPU rasterization into an *image.RGBA using
//     golang.org/x/image/vector. Supports offscreen layers.
//   - Recorder: captures drawing commands for inspection and replay.
//
// # Opacity
//
// WithOpacity draws a block into an offscreen layer and composites it
// with a uniform alpha, so overlapping parts of the block (a halo and the
// text above it) do not show through each other:
//
//	err := render.WithOpacity(target, 0.5, func(t render.Target) error {
//		t.Fill(halo)
//		return t.DrawGlyphRun(run)
//	})
//
// Targets that cannot allocate layers fall back to a composite alpha.
//
// # Strokes
//
// Strokes are expanded into fill outlines with ExpandStroke, which handles
// butt, round and square caps and miter, round and bevel joins.
package render
