package controllers

import (
	"context"

	"github.com/safewalk-labs/safewalk/pkg/datastructure"
)

type RoutingService interface {
	SafestPath(ctx context.Context, origLat, origLon, dstLat, dstLon, alpha float64) (*datastructure.RoutePath, string, bool, error)
}
