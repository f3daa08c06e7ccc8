package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DegreeDistance returns the planar Euclidean distance between two points in raw
// degree space. It is not a geodesic measure: one unit of longitude shrinks toward
// the poles, so a fixed radius only approximates a fixed ground distance at
// mid-latitudes.
func DegreeDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0
