package routing

import (
	"context"
	"math"
	"testing"

	"github.com/safewalk-labs/safewalk/pkg"
	"github.com/safewalk-labs/safewalk/pkg/costfunction"
	da "github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/geo"
)

/*
square test graph:

	A(0,0) --- B(0,0.001)
	  |   \        |
	  |    \       |
	D(0.001,0) - C(0.001,0.001)

the direct way A-C is short but risky (0.9); the perimeter way A-B-D-C is
longer but safe (0.1).
*/
func buildSquareGraph() (*da.WalkGraph, *da.GraphBuilder) {
	coords := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(0, 0),         // A
		2: geo.NewCoordinate(0, 0.001),     // B
		3: geo.NewCoordinate(0.001, 0.001), // C
		4: geo.NewCoordinate(0.001, 0),     // D
	}

	builder := da.NewGraphBuilder(coords)
	builder.AddWay([]int64{1, 3}, 0.9)       // risky direct way
	builder.AddWay([]int64{1, 2, 4, 3}, 0.1) // safe perimeter way
	return builder.Freeze(), builder
}

func planPath(t *testing.T, g *da.WalkGraph, source, target da.Index, alpha float64) (*da.RoutePath, bool) {
	t.Helper()
	astar := NewAStar(g, costfunction.NewSafetyCostFunction(alpha))
	path, found, err := astar.ShortestPath(context.Background(), source, target)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return path, found
}

func TestAlphaZeroTakesShortestPath(t *testing.T) {
	g, builder := buildSquareGraph()
	a, _ := builder.GetVertexID(1)
	c, _ := builder.GetVertexID(3)

	path, found := planPath(t, g, a, c, 0)
	if !found {
		t.Fatal("expected a path")
	}
	if len(path.GetCoords()) != 2 {
		t.Fatalf("alpha=0 must take the direct risky edge, got %d path vertices", len(path.GetCoords()))
	}

	wantDist := geo.HaversineDistanceMeters(0, 0, 0.001, 0.001)
	if math.Abs(path.GetDistanceMeters()-wantDist) > 1e-9 {
		t.Errorf("real distance = %v, want %v", path.GetDistanceMeters(), wantDist)
	}
	if path.GetMeanSafety() != 0.9 {
		t.Errorf("mean safety = %v, want 0.9", path.GetMeanSafety())
	}
}

func TestHighAlphaPrefersSaferDetour(t *testing.T) {
	g, builder := buildSquareGraph()
	a, _ := builder.GetVertexID(1)
	c, _ := builder.GetVertexID(3)

	path, found := planPath(t, g, a, c, 5)
	if !found {
		t.Fatal("expected a path")
	}
	if len(path.GetCoords()) != 4 {
		t.Fatalf("alpha=5 must take the perimeter way, got %d path vertices", len(path.GetCoords()))
	}
	if math.Abs(float64(path.GetMeanSafety())-0.1) > 1e-6 {
		t.Errorf("mean safety = %v, want 0.1", path.GetMeanSafety())
	}
}

// increasing alpha must never increase the mean safety score of the chosen
// path.
func TestMeanSafetyMonotonicInAlpha(t *testing.T) {
	g, builder := buildSquareGraph()
	a, _ := builder.GetVertexID(1)
	c, _ := builder.GetVertexID(3)

	prev := float32(math.Inf(1))
	for _, alpha := range []float64{0, 0.5, 1, 2, 5, 10, 100} {
		path, found := planPath(t, g, a, c, alpha)
		if !found {
			t.Fatalf("alpha=%v: expected a path", alpha)
		}
		if path.GetMeanSafety() > prev {
			t.Fatalf("alpha=%v: mean safety %v exceeds %v at lower alpha",
				alpha, path.GetMeanSafety(), prev)
		}
		prev = path.GetMeanSafety()
	}
}

// brute-force all simple paths and verify the planner's alpha=0 result is the
// minimum-distance one.
func TestAlphaZeroMatchesBruteForce(t *testing.T) {
	coords := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(0, 0),
		2: geo.NewCoordinate(0.001, 0.0005),
		3: geo.NewCoordinate(0.0004, 0.0012),
		4: geo.NewCoordinate(0.0015, 0.0015),
		5: geo.NewCoordinate(0.0008, 0.0021),
		6: geo.NewCoordinate(0.002, 0.0025),
	}
	builder := da.NewGraphBuilder(coords)
	builder.AddWay([]int64{1, 2, 4}, 0.5)
	builder.AddWay([]int64{1, 3, 5}, 0.2)
	builder.AddWay([]int64{3, 4}, 0.8)
	builder.AddWay([]int64{4, 6}, 0.4)
	builder.AddWay([]int64{5, 6}, 0.6)
	builder.AddWay([]int64{2, 5}, 0.9)
	g := builder.Freeze()

	source, _ := builder.GetVertexID(1)
	target, _ := builder.GetVertexID(6)

	path, found := planPath(t, g, source, target, 0)
	if !found {
		t.Fatal("expected a path")
	}

	want := bruteForceShortestDistance(g, source, target)
	if math.Abs(path.GetDistanceMeters()-want) > 1e-9 {
		t.Errorf("planner distance %v, brute force %v", path.GetDistanceMeters(), want)
	}
}

func bruteForceShortestDistance(g *da.WalkGraph, source, target da.Index) float64 {
	visited := make([]bool, g.NumberOfVertices())
	best := pkg.INF_WEIGHT

	var dfs func(u da.Index, dist float64)
	dfs = func(u da.Index, dist float64) {
		if u == target {
			if dist < best {
				best = dist
			}
			return
		}
		visited[u] = true
		g.ForOutEdgesOf(u, func(e *da.WalkEdge) {
			if !visited[e.GetHead()] {
				dfs(e.GetHead(), dist+e.GetDistanceMeters())
			}
		})
		visited[u] = false
	}

	dfs(source, 0)
	return best
}

func TestNoPathBetweenComponents(t *testing.T) {
	coords := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(0, 0),
		2: geo.NewCoordinate(0, 0.001),
		3: geo.NewCoordinate(0.5, 0.5),
		4: geo.NewCoordinate(0.5, 0.501),
	}
	builder := da.NewGraphBuilder(coords)
	builder.AddWay([]int64{1, 2}, 0.1)
	builder.AddWay([]int64{3, 4}, 0.1)
	g := builder.Freeze()

	source, _ := builder.GetVertexID(1)
	target, _ := builder.GetVertexID(4)

	_, found := planPath(t, g, source, target, 1)
	if found {
		t.Fatal("disconnected components must report no path")
	}
}

func TestSourceEqualsTarget(t *testing.T) {
	g, builder := buildSquareGraph()
	a, _ := builder.GetVertexID(1)

	path, found := planPath(t, g, a, a, 1)
	if !found {
		t.Fatal("expected a trivial path")
	}
	if len(path.GetCoords()) != 1 {
		t.Errorf("trivial path should contain the single vertex, got %d", len(path.GetCoords()))
	}
	if path.GetDistanceMeters() != 0 || path.GetMeanSafety() != 0 {
		t.Errorf("trivial path should have zero distance and zero safety, got %v / %v",
			path.GetDistanceMeters(), path.GetMeanSafety())
	}
}

func TestCancelledContextAbortsSearch(t *testing.T) {
	g, builder := buildSquareGraph()
	a, _ := builder.GetVertexID(1)
	c, _ := builder.GetVertexID(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	astar := NewAStar(g, costfunction.NewSafetyCostFunction(0))
	_, _, err := astar.ShortestPath(ctx, a, c)
	if err == nil {
		t.Fatal("cancelled context must abort the search with an error")
	}
}
