// Package label places map labels without overlap.
//
// # Overview
//
// A Scheduler collects label requests while map layers render, then places
// them in one pass, highest priority first. Every accepted label reserves
// its screen rectangle in a conflict index, so later labels must find room
// elsewhere or are dropped.
//
//	s := label.New(label.WithWorldToScreen(worldToScreen))
//
//	s.StartLayer("roads")
//	for _, f := range roads.Features {
//	    s.Submit(label.Request{
//	        LayerID:  "roads",
//	        Style:    roadStyle,
//	        Feature:  f,
//	        Label:    f.Properties.MustString("name", ""),
//	        Priority: label.Property("rank"),
//	    })
//	}
//	s.EndLayer("roads")
//
//	stats, err := s.RunPass(ctx, render.NewRasterFor(img), display)
//
// # Packages
//
// The work is split across sub-packages:
//   - style: immutable text styles and vendor placement options
//   - text: fonts, shaping and multi-line label layout
//   - geom: affine matrices, paths and geometry reduction to the display
//   - curve: arc-length cursors over polylines
//   - index: the R-tree conflict index
//   - placement: point, line and polygon placement strategies
//   - render: drawing targets, including a raster and a command recorder
//
// # Coordinate System
//
// Placement works in screen pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotations are clockwise on screen
//
// Feature geometries are mapped from world coordinates with the matrix
// given to WithWorldToScreen.
package label
