package main

import (
	"context"
	"flag"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/engine"
	"github.com/safewalk-labs/safewalk/pkg/http"
	"github.com/safewalk-labs/safewalk/pkg/http/usecases"
	"github.com/safewalk-labs/safewalk/pkg/logger"
	"github.com/safewalk-labs/safewalk/pkg/spatialindex"
	"github.com/safewalk-labs/safewalk/pkg/util"
)

var (
	mapFile      = flag.String("map_file", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf or .osm.bz2)")
	useRateLimit = flag.Bool("rate_limit", false, "enable request rate limiting")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("config file not found, using defaults", zap.Error(err))
	}

	// the graph must be fully built (or startup must fail) before the first
	// query is accepted.
	routingEngine, err := engine.NewEngine(*mapFile, logger)
	if err != nil {
		logger.Fatal("building walkability graph", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetGraph(), logger)

	api := http.NewServer(logger)

	viper.SetDefault("SNAP_SEARCH_RADIUS_KM", 2.0)
	routingService := usecases.NewRoutingService(logger, routingEngine.GetGraph(), rtree,
		viper.GetFloat64("SNAP_SEARCH_RADIUS_KM"))

	ctx, cleanup := NewContext()
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		logger.Fatal("starting api server", zap.Error(err))
	}

	if err := api.GracefulShutdown(); err != nil {
		cleanup()
		logger.Fatal("api server stopped unexpectedly", zap.Error(err))
	}

	logger.Info("Safewalk Routing Engine Server Stopped")
	cleanup()
}

func NewContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb
}
