package datastructure

import (
	"math"

	"github.com/safewalk-labs/safewalk/pkg"
	"github.com/safewalk-labs/safewalk/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

// GeoNode. graph vertex, identified by its position in the vertex table.
type GeoNode struct {
	lat float64
	lon float64
}

func NewGeoNode(lat, lon float64) GeoNode {
	return GeoNode{lat: lat, lon: lon}
}

func (n GeoNode) GetLat() float64 {
	return n.lat
}

func (n GeoNode) GetLon() float64 {
	return n.lon
}

// WalkEdge. directed edge of the walkability graph.
type WalkEdge struct {
	head           Index
	distanceMeters float64
	safetyScore    float32
}

func NewWalkEdge(head Index, distanceMeters float64, safetyScore float32) WalkEdge {
	return WalkEdge{
		head:           head,
		distanceMeters: distanceMeters,
		safetyScore:    safetyScore,
	}
}

func (e WalkEdge) GetHead() Index {
	return e.head
}

func (e WalkEdge) GetDistanceMeters() float64 {
	return e.distanceMeters
}

func (e WalkEdge) GetSafetyScore() float32 {
	return e.safetyScore
}

/*
WalkGraph. pedestrian graph in compressed-sparse-row form. outEdges of vertex u
live in outEdges[firstOut[u]:firstOut[u+1]]. built once by GraphBuilder.Freeze,
immutable afterwards, shared read-only across concurrent route queries.
*/
type WalkGraph struct {
	vertices []GeoNode
	firstOut []Index
	outEdges []WalkEdge
}

func (g *WalkGraph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *WalkGraph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *WalkGraph) GetVertex(v Index) GeoNode {
	return g.vertices[v]
}

func (g *WalkGraph) GetVertexCoordinates(v Index) (float64, float64) {
	vertex := g.vertices[v]
	return vertex.lat, vertex.lon
}

func (g *WalkGraph) ForOutEdgesOf(u Index, fn func(e *WalkEdge)) {
	for i := g.firstOut[u]; i < g.firstOut[u+1]; i++ {
		fn(&g.outEdges[i])
	}
}

func (g *WalkGraph) ForVertices(fn func(v Index, lat, lon float64)) {
	for v := range g.vertices {
		fn(Index(v), g.vertices[v].lat, g.vertices[v].lon)
	}
}

/*
NearestNode. exhaustive scan over all vertices, returning the one with minimum
great-circle distance to the query point. ties broken by lowest vertex index
(strict less keeps the first minimum found). returns false only on an empty
graph. linear in vertex count, fine for city-scale extracts; the r-tree in
pkg/spatialindex serves larger graphs with the same tie-break contract.
*/
func (g *WalkGraph) NearestNode(lat, lon float64) (Index, bool) {
	if len(g.vertices) == 0 {
		return INVALID_VERTEX_ID, false
	}

	best := Index(0)
	bestDist := pkg.INF_WEIGHT
	for v := range g.vertices {
		dist := geo.CalculateHaversineDistance(g.vertices[v].lat, g.vertices[v].lon, lat, lon)
		if dist < bestDist {
			bestDist = dist
			best = Index(v)
		}
	}
	return best, true
}

/*
GraphBuilder. accumulates walkable-way segments, interning openstreetmap node
ids into dense vertex indices lazily so that ways sharing a node share one
vertex. a segment whose endpoint is missing from the point table is skipped
silently (the way leaves the loaded extract). self-loops are never created.
parallel edges from distinct ways are kept as-is.
*/
type GraphBuilder struct {
	nodeCoords map[int64]geo.Coordinate
	nodeIDMap  map[int64]Index

	vertices []GeoNode
	adjacent [][]WalkEdge
	numEdges int
}

func NewGraphBuilder(nodeCoords map[int64]geo.Coordinate) *GraphBuilder {
	return &GraphBuilder{
		nodeCoords: nodeCoords,
		nodeIDMap:  make(map[int64]Index),
	}
}

func (b *GraphBuilder) internVertex(osmID int64, coord geo.Coordinate) Index {
	if v, ok := b.nodeIDMap[osmID]; ok {
		return v
	}
	v := Index(len(b.vertices))
	b.nodeIDMap[osmID] = v
	b.vertices = append(b.vertices, NewGeoNode(coord.GetLat(), coord.GetLon()))
	b.adjacent = append(b.adjacent, nil)
	return v
}

// AddWay. insert both traversal directions of every consecutive node pair of a
// walkable way, each edge carrying the haversine segment length and the way's
// safety score.
func (b *GraphBuilder) AddWay(nodeIDs []int64, safetyScore float32) {
	for i := 0; i+1 < len(nodeIDs); i++ {
		idA := nodeIDs[i]
		idB := nodeIDs[i+1]
		if idA == idB {
			continue
		}

		coordA, okA := b.nodeCoords[idA]
		coordB, okB := b.nodeCoords[idB]
		if !okA || !okB {
			continue
		}

		u := b.internVertex(idA, coordA)
		v := b.internVertex(idB, coordB)

		dist := geo.HaversineDistanceMeters(coordA.GetLat(), coordA.GetLon(),
			coordB.GetLat(), coordB.GetLon())

		b.adjacent[u] = append(b.adjacent[u], NewWalkEdge(v, dist, safetyScore))
		b.adjacent[v] = append(b.adjacent[v], NewWalkEdge(u, dist, safetyScore))
		b.numEdges += 2
	}
}

// GetVertexID. dense vertex index of an openstreetmap node id.
func (b *GraphBuilder) GetVertexID(osmID int64) (Index, bool) {
	v, ok := b.nodeIDMap[osmID]
	return v, ok
}

// Freeze. flatten the adjacency lists into compressed-sparse-row arrays. the
// builder must not be reused afterwards.
func (b *GraphBuilder) Freeze() *WalkGraph {
	n := len(b.vertices)

	firstOut := make([]Index, n+1)
	outEdges := make([]WalkEdge, 0, b.numEdges)
	for u := 0; u < n; u++ {
		firstOut[u] = Index(len(outEdges))
		outEdges = append(outEdges, b.adjacent[u]...)
	}
	firstOut[n] = Index(len(outEdges))

	return &WalkGraph{
		vertices: b.vertices,
		firstOut: firstOut,
		outEdges: outEdges,
	}
}
