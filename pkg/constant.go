package pkg

const (
	INF_WEIGHT float64 = 1e15

	// rough meters per degree of latitude, used by the planner heuristic.
	DEGREE_TO_METERS = 111_000.0

	MIN_SAFETY_SCORE float32 = 0.05
	MAX_SAFETY_SCORE float32 = 1.0
)

const (
	DEBUG = false
)
