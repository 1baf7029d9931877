package gallery

// Coverage is the aggregate result of one full evaluation pass
type Coverage struct {
	// Percent is the visible fraction of floor samples, in [0, 1]
	Percent    float64
	IsComplete bool

	GuardsWatchingArt int
	ArtIsWatched      bool
	Score             int

	Covered int
	Total   int

	// Visible flags each floor sample, in sample order
	Visible []bool
}

// Evaluate computes coverage for a guard configuration from scratch
func Evaluate(env *Environment, guards []Guard, cfg Config) Coverage {
	return EvaluatePolygons(env, guards, VisibilityPolygons(env, guards, cfg), cfg)
}

// VisibilityPolygons computes one visibility polygon per guard, in guard order
func VisibilityPolygons(env *Environment, guards []Guard, cfg Config) [][]Point {
	polys := make([][]Point, len(guards))
	for i, g := range guards {
		polys[i] = env.Visibility(g, cfg)
	}
	return polys
}

// EvaluatePolygons scores a guard configuration whose visibility polygons
// are already known. polys[i] must belong to guards[i].
func EvaluatePolygons(env *Environment, guards []Guard, polys [][]Point, cfg Config) Coverage {
	samples := env.Samples()
	c := Coverage{
		Total:   len(samples),
		Visible: make([]bool, len(samples)),
	}
	if len(guards) == 0 {
		return c
	}

	for i, p := range samples {
		for _, poly := range polys {
			if PointInPolygon(p, poly) {
				c.Visible[i] = true
				c.Covered++
				break
			}
		}
	}
	if c.Total > 0 {
		c.Percent = float64(c.Covered) / float64(c.Total)
	}

	for _, poly := range polys {
		if PointInPolygon(env.Level.Art, poly) {
			c.GuardsWatchingArt++
		}
	}
	c.ArtIsWatched = c.GuardsWatchingArt > 0
	c.IsComplete = c.Percent >= env.Level.CoverageThreshold
	c.Score = Score(cfg.BaseScore, env.Level.RequiredGuards, len(guards), c.GuardsWatchingArt)
	return c
}

// Score rewards beating the guard par and watching the art, floored at zero
func Score(base, required, used, watchingArt int) int {
	return max(0, base+2*(required-used)+watchingArt)
}
