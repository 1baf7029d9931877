package gallery

import (
	"math"
	"slices"
)

const twoPi = 2 * math.Pi

// VisibilityPolygon computes the region a guard at origin facing angle can
// see through the given walls. The result starts and ends at origin and sweeps
// the cone in ascending angle order.
func VisibilityPolygon(origin Point, angle float64, walls []Segment, cfg Config) []Point {
	startAngle := angle - cfg.ConeAngle/2
	endAngle := angle + cfg.ConeAngle/2

	// Re-express a raw angle in [startAngle, startAngle+2π) so the sweep sorts
	// monotonically no matter how many turns the guard has made.
	adjust := func(a float64) float64 {
		delta := a - startAngle
		delta -= math.Floor(delta/twoPi) * twoPi
		return startAngle + delta
	}

	eps := cfg.CornerEpsilon
	angles := make([]float64, 0, len(walls)*6+cfg.RaysInCone+3)
	for _, w := range walls {
		for _, v := range [2]Point{w.A, w.B} {
			a := adjust(math.Atan2(v.Y-origin.Y, v.X-origin.X))
			if a <= endAngle+eps {
				angles = append(angles, a-eps, a, a+eps)
			}
		}
	}

	for i := 0; i <= cfg.RaysInCone; i++ {
		angles = append(angles, startAngle+float64(i)/float64(cfg.RaysInCone)*cfg.ConeAngle)
	}
	angles = append(angles, startAngle, endAngle)

	slices.Sort(angles)
	angles = slices.Compact(angles)

	points := make([]Point, 1, len(angles)+2)
	points[0] = origin
	for _, a := range angles {
		hit := CastRay(origin, a, walls, cfg.MaxRange)
		last := points[len(points)-1]
		if len(points) == 1 ||
			math.Abs(last.X-hit.X) > cfg.DuplicateTolerance ||
			math.Abs(last.Y-hit.Y) > cfg.DuplicateTolerance {
			points = append(points, hit)
		}
	}
	return append(points, origin)
}

// Visibility computes the visibility polygon of one guard in an environment
func (e *Environment) Visibility(g Guard, cfg Config) []Point {
	return VisibilityPolygon(g.Pos, g.Angle, e.walls, cfg)
}
