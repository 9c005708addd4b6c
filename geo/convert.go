package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/venicegeo/geojson-go/geojson"
)

// The item record carries geojson-go geometry values while the coordinate
// math runs on orb geometries; these two convert between them.

// FromGeoJSON converts a geojson-go geometry value into an orb geometry
func FromGeoJSON(value interface{}) (orb.Geometry, error) {
	switch g := value.(type) {
	case *geojson.Point:
		return orb.Point{g.Coordinates[0], g.Coordinates[1]}, nil
	case *geojson.Polygon:
		return polygonFromCoordinates(g.Coordinates), nil
	case *geojson.MultiPolygon:
		polygons := make(orb.MultiPolygon, len(g.Coordinates))
		for i, coordinates := range g.Coordinates {
			polygons[i] = polygonFromCoordinates(coordinates)
		}
		return polygons, nil
	default:
		return nil, fmt.Errorf("unsupported GeoJSON geometry type: %T", value)
	}
}

// ToGeoJSON converts an orb geometry into its geojson-go value
func ToGeoJSON(geometry orb.Geometry) (interface{}, error) {
	switch g := geometry.(type) {
	case orb.Point:
		return geojson.NewPoint([]float64{g[0], g[1]}), nil
	case orb.Polygon:
		return geojson.NewPolygon(polygonToCoordinates(g)), nil
	case orb.MultiPolygon:
		coordinates := make([][][][]float64, len(g))
		for i, polygon := range g {
			coordinates[i] = polygonToCoordinates(polygon)
		}
		return geojson.NewMultiPolygon(coordinates), nil
	default:
		return nil, fmt.Errorf("unsupported orb geometry type: %T", geometry)
	}
}

func polygonFromCoordinates(coordinates [][][]float64) orb.Polygon {
	polygon := make(orb.Polygon, len(coordinates))
	for i, ringCoordinates := range coordinates {
		ring := make(orb.Ring, len(ringCoordinates))
		for j, position := range ringCoordinates {
			ring[j] = orb.Point{position[0], position[1]}
		}
		polygon[i] = ring
	}
	return polygon
}

func polygonToCoordinates(polygon orb.Polygon) [][][]float64 {
	coordinates := make([][][]float64, len(polygon))
	for i, ring := range polygon {
		ringCoordinates := make([][]float64, len(ring))
		for j, point := range ring {
			ringCoordinates[j] = []float64{point[0], point[1]}
		}
		coordinates[i] = ringCoordinates
	}
	return coordinates
}
