package engine

import (
	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/datastructure"
	"github.com/safewalk-labs/safewalk/pkg/osmparser"
)

// Engine owns the walkability graph for the lifetime of the process. the
// graph is built exactly once at startup, before any query is accepted, and
// never mutated afterwards.
type Engine struct {
	graph *datastructure.WalkGraph
}

func (e *Engine) GetGraph() *datastructure.WalkGraph {
	return e.graph
}

func NewEngine(mapFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting safety-weighted pedestrian routing engine...")

	logger.Info("Building walkability graph from map extract", zap.String("mapFilePath", mapFilePath))
	parser := osmparser.NewOsmParser()
	graph, err := parser.Parse(mapFilePath, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		graph: graph,
	}, nil
}
