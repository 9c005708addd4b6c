package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces the vertex count of a footprint with the given tolerance.
// Satellite footprints must stay topologically valid after simplification, so
// if a simplified ring degenerates or self-intersects the original geometry
// is returned instead.
func Simplify(geometry orb.Geometry, tolerance float64) orb.Geometry {
	if tolerance <= 0 {
		return geometry
	}
	simplified := simplify.DouglasPeucker(tolerance).Simplify(orb.Clone(geometry))
	if !geometryValid(simplified) {
		return geometry
	}
	return simplified
}

func geometryValid(geometry orb.Geometry) bool {
	switch g := geometry.(type) {
	case orb.Polygon:
		return polygonValid(g)
	case orb.MultiPolygon:
		for _, polygon := range g {
			if !polygonValid(polygon) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func polygonValid(polygon orb.Polygon) bool {
	for _, ring := range polygon {
		if len(ring) < 4 || !ring.Closed() {
			return false
		}
		if ringSelfIntersects(ring) {
			return false
		}
	}
	return len(polygon) > 0
}

// ringSelfIntersects checks every non-adjacent segment pair of a closed ring.
// Footprint rings are small after simplification, so the quadratic scan is fine.
func ringSelfIntersects(ring orb.Ring) bool {
	n := len(ring) - 1 // closing point duplicates the first
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // first and last segments share the ring's start point
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(a, b, c, d orb.Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear overlaps also break topology
	return (o1 == 0 && onSegment(a, b, c)) ||
		(o2 == 0 && onSegment(a, b, d)) ||
		(o3 == 0 && onSegment(c, d, a)) ||
		(o4 == 0 && onSegment(c, d, b))
}

func orientation(p, q, r orb.Point) int {
	cross := (q[0]-p[0])*(r[1]-p[1]) - (q[1]-p[1])*(r[0]-p[0])
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(p, q, r orb.Point) bool {
	return r[0] >= min(p[0], q[0]) && r[0] <= max(p[0], q[0]) &&
		r[1] >= min(p[1], q[1]) && r[1] <= max(p[1], q[1])
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
