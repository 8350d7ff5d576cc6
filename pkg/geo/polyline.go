package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. encode path coordinates as a google encoded polyline.
func PolylineFromCoords(coords []Coordinate) string {
	latLngs := make([][]float64, len(coords))
	for i, c := range coords {
		latLngs[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return string(polyline.EncodeCoords(latLngs))
}
