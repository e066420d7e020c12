// Package geom reduces feature geometry to the shapes labels are placed on.
//
// Features arrive as arbitrary orb geometries in screen coordinates. A
// Reducer picks the representative point, the merged and clipped lines, or
// the largest clipped polygon of a feature. The package also provides the
// polygon helpers placement relies on (robust centroids, scanline
// recentering, minimum bounding rectangles) and the affine Matrix shared
// with the render package.
package geom
