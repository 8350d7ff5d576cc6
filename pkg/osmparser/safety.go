package osmparser

import (
	"github.com/paulmach/osm"

	"github.com/safewalk-labs/safewalk/pkg"
	"github.com/safewalk-labs/safewalk/pkg/util"
)

/*
RiskScore estimates personal-safety risk of a way from its tags: 0.05 = very
safe, 1.0 = very risky. the score is a categorical baseline by highway class,
cumulatively adjusted by lighting, sidewalk, surface and foot-designation
evidence, then clamped to [0.05, 1.0]. a missing tag contributes no
adjustment. one score per way, applied to every edge derived from it.
*/
func RiskScore(tags osm.Tags) float32 {
	score := baselineRisk(tags.Find("highway"))

	switch tags.Find("lit") {
	case "yes", "24/7", "24-7", "automatic", "good":
		score -= 0.2
	case "no":
		score += 0.3
	}

	switch tags.Find("sidewalk") {
	case "both", "yes", "separate", "left", "right":
		score -= 0.2
	case "no", "none":
		score += 0.2
	}

	switch tags.Find("surface") {
	case "paved", "asphalt", "concrete", "paving_stones":
		score -= 0.05
	case "unpaved", "dirt", "earth", "gravel", "mud":
		score += 0.1
	}

	if tags.Find("foot") == "designated" {
		score -= 0.1
	}

	// the lower bound keeps even a perfectly safe way from a cost multiplier
	// of exactly 1 in the planner's formula.
	return util.Clamp32(score, pkg.MIN_SAFETY_SCORE, pkg.MAX_SAFETY_SCORE)
}

func baselineRisk(highway string) float32 {
	switch highway {
	case "pedestrian", "footway", "path", "steps":
		return 0.1
	case "living_street", "residential":
		return 0.3
	case "service":
		return 0.5
	case "tertiary", "secondary":
		return 0.7
	case "primary", "trunk":
		return 0.9
	default:
		return 0.5
	}
}
