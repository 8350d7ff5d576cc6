package costfunction

type EdgeAttributes interface {
	GetDistanceMeters() float64
	GetSafetyScore() float32
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}

/*
SafetyCostFunction. blended distance/safety edge cost:

	distance_meters * (1 + alpha * safety_score)

alpha = 0 ignores risk entirely (pure shortest distance); larger alpha
increasingly avoids risky edges. with safety_score of 1.0 and alpha of 5 an
edge costs 6x its length. cost is always >= physical distance, which keeps
the planner's straight-line heuristic admissible for every alpha.
*/
type SafetyCostFunction struct {
	alpha float64
}

func NewSafetyCostFunction(alpha float64) *SafetyCostFunction {
	return &SafetyCostFunction{alpha: alpha}
}

func (cf *SafetyCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetDistanceMeters() * (1.0 + cf.alpha*float64(e.GetSafetyScore()))
}
