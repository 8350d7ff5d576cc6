package usecases

import (
	"github.com/safewalk-labs/safewalk/pkg/datastructure"
)

type SpatialIndex interface {
	NearestNode(lat, lon float64) (datastructure.Index, bool)
}
