package spatialindex

import (
	"math"

	"github.com/tidwall/rtree"
	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/geo"
)

// Rtree. spatial index over the graph's vertex points, used to snap query
// coordinates to graph vertices without scanning the whole vertex table.
// honors the same contract as WalkGraph.NearestNode: nearest by great-circle
// distance, ties broken by lowest vertex index.
type Rtree struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.WalkGraph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(graph *datastructure.WalkGraph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph
	graph.ForVertices(func(v datastructure.Index, lat, lon float64) {
		rt.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, v)
	})
	log.Info("R-tree spatial index built.", zap.Int("vertices", graph.NumberOfVertices()))
}

// searchWithinRadius collects all vertices inside a bounding box with the
// given radius (in km) around the query point.
func (rt *Rtree) searchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, v datastructure.Index) bool {
			results = append(results, v)
			return true
		})
	return results
}

/*
NearestNode snap the query coordinate to the closest graph vertex. candidate
boxes grow from 100m outward; candidates are ranked by exact great-circle
distance on the s2 sphere. when even the widest box is empty (query far
outside the loaded extract) the exhaustive scan decides, so the result always
matches the linear-scan contract.
*/
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.Index, bool) {
	if rt.graph == nil || rt.graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, false
	}

	for radius := 0.1; radius <= 51.2; radius *= 2 {
		candidates := rt.searchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}

		query := geo.NewCoordinate(qLat, qLon)
		best := candidates[0]
		bestDist := rt.vertexDistance(best, query)
		for _, v := range candidates[1:] {
			dist := rt.vertexDistance(v, query)
			if dist < bestDist || (dist == bestDist && v < best) {
				bestDist = dist
				best = v
			}
		}

		// the box corners sit at radius km, so its half-width per axis is
		// only radius/sqrt(2). a candidate inside the box can still be
		// farther than an unseen vertex just outside it; only accept when
		// the best distance is covered by the box half-width.
		if bestDist <= radius*1000.0/math.Sqrt2 {
			return best, true
		}
	}

	return rt.graph.NearestNode(qLat, qLon)
}

func (rt *Rtree) vertexDistance(v datastructure.Index, query geo.Coordinate) float64 {
	lat, lon := rt.graph.GetVertexCoordinates(v)
	return geo.GreatCircleDistanceMeters(geo.NewCoordinate(lat, lon), query)
}
