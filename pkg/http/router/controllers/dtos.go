package controllers

import (
	"github.com/safewalk-labs/safewalk/pkg/datastructure"
)

const (
	statusOK      = "ok"
	statusNoRoute = "no_route"
)

type routeRequest struct {
	Origin      []float64 `json:"origin" validate:"required,len=2"`      // [lat, lon]
	Destination []float64 `json:"destination" validate:"required,len=2"` // [lat, lon]
	Alpha       float64   `json:"alpha" validate:"min=0"`
}

// geoJSONLineString. coordinates are [lon, lat] per the geojson convention,
// swapped relative to the request's [lat, lon] order.
type geoJSONLineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type routeResponse struct {
	Status        string            `json:"status"`
	Geometry      geoJSONLineString `json:"geometry"`
	Polyline      string            `json:"polyline,omitempty"`
	TotalDistance float64           `json:"total_distance"`
	AverageSafety float32           `json:"average_safety"`
}

func NewRouteResponse(path *datastructure.RoutePath, pathPolyline string) routeResponse {
	coordinates := make([][2]float64, len(path.GetCoords()))
	for i, c := range path.GetCoords() {
		coordinates[i] = [2]float64{c.GetLon(), c.GetLat()}
	}

	return routeResponse{
		Status: statusOK,
		Geometry: geoJSONLineString{
			Type:        "LineString",
			Coordinates: coordinates,
		},
		Polyline:      pathPolyline,
		TotalDistance: path.GetDistanceMeters(),
		AverageSafety: path.GetMeanSafety(),
	}
}

// NewEmptyRouteResponse. empty-geometry shape for "endpoint not snappable"
// and "no path exists": still a 200, flagged via status.
func NewEmptyRouteResponse() routeResponse {
	return routeResponse{
		Status: statusNoRoute,
		Geometry: geoJSONLineString{
			Type:        "LineString",
			Coordinates: [][2]float64{},
		},
		TotalDistance: 0,
		AverageSafety: 0,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
