package geo

import (
	"github.com/paulmach/orb"
)

// TransformFromBbox derives the north-up affine transform of a raster from
// its projected bounding box and pixel shape (rows, cols).
func TransformFromBbox(bbox []float64, shape [2]int) []float64 {
	rows := float64(shape[0])
	cols := float64(shape[1])
	return []float64{
		(bbox[2] - bbox[0]) / cols, 0, bbox[0],
		0, -(bbox[3] - bbox[1]) / rows, bbox[3],
	}
}

// Bounds returns the [minx, miny, maxx, maxy] bounding box of a geometry
func Bounds(geometry orb.Geometry) []float64 {
	bound := geometry.Bound()
	return []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
}
