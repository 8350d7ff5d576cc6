package osmparser

import (
	"github.com/paulmach/osm"
)

// highway classes pedestrians may use without further evidence:
// pedestrian-oriented or low-speed roads.
var walkableHighway = map[string]struct{}{
	"footway":       {},
	"path":          {},
	"steps":         {},
	"pedestrian":    {},
	"living_street": {},
	"residential":   {},
	"tertiary":      {},
	"service":       {},
	"unclassified":  {},
}

// high-speed roads, walkable only with explicit pedestrian accommodation.
var motorRoadHighway = map[string]struct{}{
	"motorway":  {},
	"trunk":     {},
	"primary":   {},
	"secondary": {},
}

// standard osm values for allowed foot access
var footAccessAllowed = map[string]struct{}{
	"yes":        {},
	"designated": {},
	"permissive": {},
}

// sidewalk tag values indicating a sidewalk is present
var sidewalkPresent = map[string]struct{}{
	"both":     {},
	"left":     {},
	"right":    {},
	"yes":      {},
	"separate": {},
}

// IsWalkable reports whether pedestrians may traverse a way with the given
// tags. a way with no matching evidence is excluded entirely; its nodes only
// become graph vertices if another walkable way reuses them.
func IsWalkable(tags osm.Tags) bool {
	highway := tags.Find("highway")

	if _, ok := walkableHighway[highway]; ok {
		return true
	}

	if _, ok := motorRoadHighway[highway]; !ok {
		return false
	}

	if _, ok := footAccessAllowed[tags.Find("foot")]; ok {
		return true
	}
	_, ok := sidewalkPresent[tags.Find("sidewalk")]
	return ok
}
