package datastructure

import (
	"testing"

	"github.com/safewalk-labs/safewalk/pkg/geo"
)

func testNodeCoords() map[int64]geo.Coordinate {
	return map[int64]geo.Coordinate{
		10: geo.NewCoordinate(0, 0),
		11: geo.NewCoordinate(0, 0.001),
		12: geo.NewCoordinate(0.001, 0.001),
		13: geo.NewCoordinate(0.001, 0),
	}
}

func collectEdges(g *WalkGraph) map[[2]Index][]WalkEdge {
	edges := make(map[[2]Index][]WalkEdge)
	for u := Index(0); u < Index(g.NumberOfVertices()); u++ {
		g.ForOutEdgesOf(u, func(e *WalkEdge) {
			key := [2]Index{u, e.GetHead()}
			edges[key] = append(edges[key], *e)
		})
	}
	return edges
}

func TestGraphBuilderSymmetry(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	builder.AddWay([]int64{10, 11, 12}, 0.3)
	builder.AddWay([]int64{12, 13}, 0.9)
	g := builder.Freeze()

	if g.NumberOfVertices() != 4 {
		t.Fatalf("want 4 vertices, got %d", g.NumberOfVertices())
	}
	if g.NumberOfEdges() != 6 {
		t.Fatalf("want 6 directed edges, got %d", g.NumberOfEdges())
	}

	edges := collectEdges(g)
	for key, forward := range edges {
		backward, ok := edges[[2]Index{key[1], key[0]}]
		if !ok {
			t.Fatalf("edge %v->%v has no reverse edge", key[0], key[1])
		}
		if len(backward) != len(forward) {
			t.Fatalf("edge %v->%v: %d forward vs %d backward", key[0], key[1], len(forward), len(backward))
		}
		for i := range forward {
			if forward[i].GetDistanceMeters() != backward[i].GetDistanceMeters() {
				t.Errorf("edge %v<->%v distance asymmetric", key[0], key[1])
			}
			if forward[i].GetSafetyScore() != backward[i].GetSafetyScore() {
				t.Errorf("edge %v<->%v safety asymmetric", key[0], key[1])
			}
		}
	}
}

func TestGraphBuilderSharedNodeInternedOnce(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	builder.AddWay([]int64{10, 11}, 0.1)
	builder.AddWay([]int64{11, 12}, 0.5)

	first, ok := builder.GetVertexID(11)
	if !ok {
		t.Fatal("node 11 should be interned")
	}

	g := builder.Freeze()
	if g.NumberOfVertices() != 3 {
		t.Fatalf("node 11 shared by two ways must produce one vertex, got %d vertices", g.NumberOfVertices())
	}
	lat, lon := g.GetVertexCoordinates(first)
	if lat != 0 || lon != 0.001 {
		t.Errorf("vertex %d has coordinates (%v, %v), want (0, 0.001)", first, lat, lon)
	}
}

func TestGraphBuilderSkipsUnknownNodes(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	// node 99 is outside the loaded extract, the gap is simply not connected
	builder.AddWay([]int64{10, 99, 11}, 0.1)
	g := builder.Freeze()

	if g.NumberOfVertices() != 2 {
		t.Fatalf("want 2 vertices, got %d", g.NumberOfVertices())
	}
	if g.NumberOfEdges() != 0 {
		t.Fatalf("pairs with an unresolved endpoint must be skipped, got %d edges", g.NumberOfEdges())
	}
}

func TestGraphBuilderSkipsSelfLoops(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	builder.AddWay([]int64{10, 10, 11}, 0.1)
	g := builder.Freeze()

	if g.NumberOfEdges() != 2 {
		t.Fatalf("want 2 directed edges, got %d", g.NumberOfEdges())
	}
	edges := collectEdges(g)
	for key := range edges {
		if key[0] == key[1] {
			t.Fatalf("graph contains self-loop at vertex %d", key[0])
		}
	}
}

func TestGraphBuilderKeepsParallelEdges(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	builder.AddWay([]int64{10, 11}, 0.1)
	builder.AddWay([]int64{10, 11}, 0.9)
	g := builder.Freeze()

	if g.NumberOfEdges() != 4 {
		t.Fatalf("parallel edges must not be deduplicated, got %d edges", g.NumberOfEdges())
	}
}

func TestNearestNodeExactCoordinate(t *testing.T) {
	builder := NewGraphBuilder(testNodeCoords())
	builder.AddWay([]int64{10, 11, 12, 13}, 0.1)
	g := builder.Freeze()

	want, ok := builder.GetVertexID(12)
	if !ok {
		t.Fatal("node 12 should be interned")
	}

	got, ok := g.NearestNode(0.001, 0.001)
	if !ok {
		t.Fatal("nearest node lookup failed on non-empty graph")
	}
	if got != want {
		t.Errorf("NearestNode at an existing vertex coordinate = %d, want %d", got, want)
	}

	lat, lon := g.GetVertexCoordinates(got)
	if dist := geo.CalculateHaversineDistance(lat, lon, 0.001, 0.001); dist != 0 {
		t.Errorf("distance to exact-coordinate vertex = %v, want 0", dist)
	}
}

func TestNearestNodeEmptyGraph(t *testing.T) {
	g := NewGraphBuilder(map[int64]geo.Coordinate{}).Freeze()

	if _, ok := g.NearestNode(1, 1); ok {
		t.Error("nearest node on empty graph must report no nodes exist")
	}
}
