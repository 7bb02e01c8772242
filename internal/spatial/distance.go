package spatial

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the Earth's mean radius
const EarthRadiusMeters = 6371000.0

// PlanarDistance is the Euclidean distance between two coordinates treated as
// plane points (latitude, longitude) in degrees. No geodesic correction.
func PlanarDistance(a, b Coordinate) float64 {
	return a.point().Sub(b.point()).Norm()
}

// HaversineDistance calculates the great-circle distance between two coordinates in meters
func HaversineDistance(a, b Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

func (c Coordinate) point() r2.Point {
	return r2.Point{X: c.Lat, Y: c.Lon}
}
