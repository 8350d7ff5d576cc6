package osmparser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/geo"
)

type OsmParser struct {
	nodeCoords map[int64]geo.Coordinate
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		nodeCoords: make(map[int64]geo.Coordinate),
	}
}

/*
Parse builds the pedestrian walkability graph from an openstreetmap extract
(.osm.pbf, or bzip2-compressed .osm.bz2 xml).

two full passes over the file: way records may precede the nodes they
reference, so the node coordinate table must be complete before any segment
can be resolved. pass 1 collects every node (the pbf scanner delivers plain
and dense node encodings uniformly as *osm.Node). pass 2 visits ways,
classifies walkability, scores risk, and hands accepted ways to the graph
builder. any structural scanner error is fatal for the whole ingestion.
*/
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.WalkGraph, error) {
	countNodes := 0
	err := p.scanExtract(mapFile, func(o osm.Object) {
		node, ok := o.(*osm.Node)
		if !ok {
			return
		}
		if (countNodes+1)%500000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++
		p.nodeCoords[int64(node.ID)] = geo.NewCoordinate(node.Lat, node.Lon)
	})
	if err != nil {
		return nil, err
	}
	logger.Sugar().Infof("loaded %d openstreetmap nodes, building edges...", len(p.nodeCoords))

	builder := datastructure.NewGraphBuilder(p.nodeCoords)

	countWays := 0
	err = p.scanExtract(mapFile, func(o osm.Object) {
		way, ok := o.(*osm.Way)
		if !ok {
			return
		}
		if len(way.Nodes) < 2 {
			return
		}
		if (countWays+1)%100000 == 0 {
			logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		if !IsWalkable(way.Tags) {
			return
		}
		score := RiskScore(way.Tags)

		refs := make([]int64, len(way.Nodes))
		for i, node := range way.Nodes {
			refs[i] = int64(node.ID)
		}
		builder.AddWay(refs, score)
	})
	if err != nil {
		return nil, err
	}

	// node coordinates are only needed during the build.
	p.nodeCoords = nil

	graph := builder.Freeze()
	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

// scanExtract runs one full streaming pass over the extract file.
func (p *OsmParser) scanExtract(mapFile string, visit func(o osm.Object)) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return err
	}
	defer f.Close()

	var scanner osm.Scanner
	switch filepath.Ext(mapFile) {
	case ".pbf":
		scanner = osmpbf.New(context.Background(), f, 0)
	case ".bz2":
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return err
		}
		defer bz.Close()
		scanner = osmxml.New(context.Background(), bz)
	default:
		return fmt.Errorf("unsupported map extract format: %s", mapFile)
	}
	// must not be parallel
	defer scanner.Close()

	for scanner.Scan() {
		visit(scanner.Object())
	}
	return scanner.Err()
}
