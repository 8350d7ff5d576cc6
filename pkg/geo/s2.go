package geo

import (
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// GreatCircleDistanceMeters. exact great-circle distance on the s2 sphere,
// used to rank nearest-node candidates returned by the spatial index.
func GreatCircleDistanceMeters(a Coordinate, b Coordinate) float64 {
	aLatLng := s2.LatLngFromDegrees(a.GetLat(), a.GetLon())
	bLatLng := s2.LatLngFromDegrees(b.GetLat(), b.GetLon())
	return aLatLng.Distance(bLatLng).Radians() * earthRadiusMeters
}
