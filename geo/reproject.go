// Package geo handles the coordinate math behind scene footprints:
// reprojection between EPSG-coded reference systems, footprint
// simplification, and raster georeferencing transforms.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

// Reproject transforms all coordinates of a geometry from the source EPSG
// coordinate reference system to the destination one.
func Reproject(srcEPSG int, dstEPSG int, geometry orb.Geometry) (orb.Geometry, error) {
	epsg := wgs84.EPSG()
	from := epsg.Code(srcEPSG)
	if from == nil {
		return nil, fmt.Errorf("unknown source EPSG code: %d", srcEPSG)
	}
	to := epsg.Code(dstEPSG)
	if to == nil {
		return nil, fmt.Errorf("unknown destination EPSG code: %d", dstEPSG)
	}

	transform := wgs84.Transform(from, to)
	projectPoint := func(p orb.Point) orb.Point {
		x, y, _ := transform(p[0], p[1], 0)
		return orb.Point{x, y}
	}
	return mapPoints(geometry, projectPoint)
}

func mapPoints(geometry orb.Geometry, project func(orb.Point) orb.Point) (orb.Geometry, error) {
	switch g := geometry.(type) {
	case orb.Point:
		return project(g), nil
	case orb.LineString:
		out := make(orb.LineString, len(g))
		for i, p := range g {
			out[i] = project(p)
		}
		return out, nil
	case orb.Ring:
		out := make(orb.Ring, len(g))
		for i, p := range g {
			out[i] = project(p)
		}
		return out, nil
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, ring := range g {
			mapped, err := mapPoints(ring, project)
			if err != nil {
				return nil, err
			}
			out[i] = mapped.(orb.Ring)
		}
		return out, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, polygon := range g {
			mapped, err := mapPoints(polygon, project)
			if err != nil {
				return nil, err
			}
			out[i] = mapped.(orb.Polygon)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type for reprojection: %T", geometry)
	}
}
