package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/costfunction"
	"github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/engine/routing"
	"github.com/safewalk-labs/safewalk/pkg/geo"
)

type RoutingService struct {
	log          *zap.Logger
	graph        *datastructure.WalkGraph
	spatialIndex SpatialIndex
	// maximum distance (km) a query endpoint may lie from its snapped
	// vertex. beyond it the endpoint counts as outside the loaded extract.
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, graph *datastructure.WalkGraph,
	spatialIndex SpatialIndex, searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		graph:        graph,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

func (rs *RoutingService) snap(lat, lon float64) (datastructure.Index, bool) {
	v, ok := rs.spatialIndex.NearestNode(lat, lon)
	if !ok {
		return datastructure.INVALID_VERTEX_ID, false
	}
	vLat, vLon := rs.graph.GetVertexCoordinates(v)
	if geo.CalculateHaversineDistance(vLat, vLon, lat, lon) > rs.searchRadius {
		return datastructure.INVALID_VERTEX_ID, false
	}
	return v, true
}

/*
SafestPath. snap both endpoints to graph vertices, then run the
safety-weighted search. returns found=false (no error) when either endpoint
cannot be snapped or no path exists; the transport layer renders that as the
empty-geometry result. every call builds its own search state, the shared
graph is read-only.
*/
func (rs *RoutingService) SafestPath(ctx context.Context, origLat, origLon, dstLat, dstLon,
	alpha float64) (*datastructure.RoutePath, string, bool, error) {

	source, okSource := rs.snap(origLat, origLon)
	target, okTarget := rs.snap(dstLat, dstLon)
	if !okSource || !okTarget {
		rs.log.Debug("endpoint not snappable",
			zap.Float64("origLat", origLat), zap.Float64("origLon", origLon),
			zap.Float64("dstLat", dstLat), zap.Float64("dstLon", dstLon))
		return nil, "", false, nil
	}

	astar := routing.NewAStar(rs.graph, costfunction.NewSafetyCostFunction(alpha))
	path, found, err := astar.ShortestPath(ctx, source, target)
	if err != nil {
		return nil, "", false, err
	}
	if !found {
		rs.log.Debug("no path between snapped endpoints",
			zap.Uint32("source", uint32(source)), zap.Uint32("target", uint32(target)))
		return nil, "", false, nil
	}

	pathPolyline := geo.PolylineFromCoords(datastructure.NewGeoCoordinates(path.GetCoords()))
	return path, pathPolyline, true, nil
}
