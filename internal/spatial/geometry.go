package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// PolygonArea calculates the area of a polygon using the shoelace formula.
// Points should be in ring order (clockwise or counter-clockwise); the ring
// is closed implicitly. Returns area in square meters (flat-earth
// approximation, fine for geofence-sized polygons).
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < len(points); i++ {
		j := (i + 1) % len(points)
		sum += (points[j].Lon - points[i].Lon) * (points[j].Lat + points[i].Lat)
	}

	// Convert degrees to meters at the polygon's latitude
	latRad := points[0].Lat * math.Pi / 180
	metersPerDegreeLat := 111320.0
	metersPerDegreeLon := 111320.0 * math.Cos(latRad)

	return math.Abs(sum) * metersPerDegreeLat * metersPerDegreeLon / 2.0
}

// PointInPolygon checks if a point is inside a polygon using ray casting.
// The polygon ring is closed implicitly (last vertex connects to the first).
// Points exactly on an edge are implementation-defined but consistent.
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lon < (polygon[j].Lon-polygon[i].Lon)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}
