package datastructure

import "github.com/safewalk-labs/safewalk/pkg/geo"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewGeoCoordinates(coords []Coordinate) []geo.Coordinate {
	geoCoords := make([]geo.Coordinate, len(coords))
	for i, coord := range coords {
		geoCoords[i] = geo.NewCoordinate(coord.GetLat(), coord.GetLon())
	}
	return geoCoords
}

// RoutePath. result of one route query: the traversed vertex coordinates in
// order, the real (unweighted) walking distance, and the mean safety score of
// the traversed edges. lives only for the duration of a request.
type RoutePath struct {
	coords         []Coordinate
	distanceMeters float64
	meanSafety     float32
}

func NewRoutePath(coords []Coordinate, distanceMeters float64, meanSafety float32) *RoutePath {
	return &RoutePath{
		coords:         coords,
		distanceMeters: distanceMeters,
		meanSafety:     meanSafety,
	}
}

func (rp *RoutePath) GetCoords() []Coordinate {
	return rp.coords
}

func (rp *RoutePath) GetDistanceMeters() float64 {
	return rp.distanceMeters
}

func (rp *RoutePath) GetMeanSafety() float32 {
	return rp.meanSafety
}
