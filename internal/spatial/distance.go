package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using S2 spherical geometry
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// MaxDistanceFrom returns the largest great-circle distance in meters from
// origin to any of the given points. Used to report a region's approximate
// radius around its centroid.
func MaxDistanceFrom(origin Point, points []Point) float64 {
	var max float64
	for _, p := range points {
		d := HaversineDistance(origin.Lat, origin.Lon, p.Lat, p.Lon)
		if d > max {
			max = d
		}
	}
	return max
}
