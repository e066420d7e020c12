// Package placement finds positions for labels and draws them.
//
// A Painter places one label at a time against a shared index.Index of
// accepted rectangles. The label geometry decides the strategy:
//
//   - Points: the style anchor, rotation and displacement are tried first,
//     then rings of growing radius around the point, eight directions per
//     ring and three anchors per direction.
//   - Lines: the longest visible line (or all of them with labelAllGroup)
//     is tried at its midpoint and at repeat intervals, each position
//     displaced along the line when it conflicts. Labels following a line
//     that turns more than three degrees under them are laid glyph by
//     glyph along the curve.
//   - Polygons: the label is centered on the centroid, or on positions
//     around it inside the polygon, and accepted only when enough of it
//     lies inside. An alternate rotation from polygonAlign is tried at
//     every position.
//
// A placement is accepted when it lies inside the display (or crosses it,
// with partials), keeps spaceAround pixels from every indexed rectangle
// and, for line labels, keeps minGroupDistance from its own repeats.
// Accepted bounds are inserted into the index before the next label is
// placed, so placement order decides conflicts.
package placement
