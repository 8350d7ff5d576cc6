package routing

import (
	"context"
	"math"

	"github.com/safewalk-labs/safewalk/pkg"
	"github.com/safewalk-labs/safewalk/pkg/costfunction"
	da "github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/util"
)

/*
AStar. informed best-first search over the walkability graph, priority =
accumulated blended cost + straight-line heuristic to the goal. every query
allocates its own AStar so that concurrent requests never share mutable
search state; the underlying graph is immutable and shared.
*/
type AStar struct {
	graph        *da.WalkGraph
	costFunction costfunction.CostFunction

	distSoFar  []float64
	parent     []da.Index
	parentEdge []da.WalkEdge
	settled    []bool

	pq      *da.MinHeap[da.Index]
	pqNodes []*da.PriorityQueueNode[da.Index]

	numSettledNodes int
}

func NewAStar(graph *da.WalkGraph, costFunction costfunction.CostFunction) *AStar {
	n := graph.NumberOfVertices()

	distSoFar := make([]float64, n)
	parent := make([]da.Index, n)
	for i := 0; i < n; i++ {
		distSoFar[i] = pkg.INF_WEIGHT
		parent[i] = da.INVALID_VERTEX_ID
	}

	return &AStar{
		graph:        graph,
		costFunction: costFunction,
		distSoFar:    distSoFar,
		parent:       parent,
		parentEdge:   make([]da.WalkEdge, n),
		settled:      make([]bool, n),
		// frontier entries with equal priority are ordered by vertex index so
		// extraction order is reproducible across runs.
		pq:      da.NewFourAryHeap[da.Index](func(a, b da.Index) bool { return a < b }),
		pqNodes: make([]*da.PriorityQueueNode[da.Index], n),
	}
}

/*
heuristic. straight-line angular distance to the goal converted to approximate
meters with a fixed degrees-to-meters factor. never overestimates the true
remaining cost: blended edge cost >= physical distance for every alpha, and
the flat approximation stays below the real shortest walking distance at the
local scales the engine targets.
*/
func (us *AStar) heuristic(v, target da.Index) float64 {
	vLat, vLon := us.graph.GetVertexCoordinates(v)
	tLat, tLon := us.graph.GetVertexCoordinates(target)

	dLat := vLat - tLat
	dLon := vLon - tLon
	return math.Sqrt(dLat*dLat+dLon*dLon) * pkg.DEGREE_TO_METERS
}

// ShortestPath runs the search from source to target. returns (path, true,
// nil) on success, (nil, false, nil) when the frontier exhausts without
// reaching the target, and an error when ctx is cancelled mid-search.
func (us *AStar) ShortestPath(ctx context.Context, source, target da.Index) (*da.RoutePath, bool, error) {
	us.distSoFar[source] = 0
	sourceNode := da.NewPriorityQueueNode(us.heuristic(source, target), source)
	us.pqNodes[source] = sourceNode
	us.pq.Insert(sourceNode)

	for !us.pq.IsEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return nil, false, util.WrapErrorf(ctx.Err(), util.ErrInternalServerError,
				"route search cancelled after settling %d nodes", us.numSettledNodes)
		}

		pqNode, _ := us.pq.ExtractMin()
		u := pqNode.GetItem()
		if us.settled[u] {
			continue
		}
		us.settled[u] = true
		us.numSettledNodes++

		if u == target {
			return us.reconstructPath(source, target), true, nil
		}

		us.graph.ForOutEdgesOf(u, func(e *da.WalkEdge) {
			v := e.GetHead()
			if us.settled[v] {
				return
			}

			newDist := us.distSoFar[u] + us.costFunction.GetWeight(*e)
			if newDist >= us.distSoFar[v] {
				return
			}

			us.distSoFar[v] = newDist
			us.parent[v] = u
			us.parentEdge[v] = *e

			rank := newDist + us.heuristic(v, target)
			if us.pqNodes[v] == nil {
				us.pqNodes[v] = da.NewPriorityQueueNode(rank, v)
				us.pq.Insert(us.pqNodes[v])
			} else if err := us.pq.DecreaseKey(us.pqNodes[v], rank); err != nil {
				// already popped with a stale rank, reinsert
				us.pqNodes[v] = da.NewPriorityQueueNode(rank, v)
				us.pq.Insert(us.pqNodes[v])
			}
		})
	}

	return nil, false, nil
}

// reconstructPath walks the predecessor links back from the target and
// recomputes real distance and mean safety from the traversed edges. the
// search's weighted cost is deliberately not reused: the caller needs true
// physical meters, separate from the safety-biased cost.
func (us *AStar) reconstructPath(source, target da.Index) *da.RoutePath {
	vertices := make([]da.Index, 0)
	for v := target; v != source; v = us.parent[v] {
		vertices = append(vertices, v)
	}
	vertices = append(vertices, source)
	vertices = util.ReverseG(vertices)

	coords := make([]da.Coordinate, len(vertices))
	for i, v := range vertices {
		lat, lon := us.graph.GetVertexCoordinates(v)
		coords[i] = da.NewCoordinate(lat, lon)
	}

	realDistance := 0.0
	safetySum := float32(0.0)
	edgeCount := 0
	for _, v := range vertices[1:] {
		e := us.parentEdge[v]
		realDistance += e.GetDistanceMeters()
		safetySum += e.GetSafetyScore()
		edgeCount++
	}

	meanSafety := float32(0.0)
	if edgeCount > 0 {
		meanSafety = safetySum / float32(edgeCount)
	}

	return da.NewRoutePath(coords, realDistance, meanSafety)
}
