package gallery

// Environment holds the derived geometry of the active level. It is built
// once per level and read-only afterwards.
type Environment struct {
	Level   Level
	Bounds  Bounds
	walls   []Segment
	samples []Point
}

// NewEnvironment validates the level and precomputes its walls and floor samples
func NewEnvironment(level Level, cfg Config) (*Environment, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	level = level.clone()
	return &Environment{
		Level:   level,
		Bounds:  BoundsOf(level.Room),
		walls:   WallSegments(level),
		samples: FloorSamples(level.Room, cfg.SampleSpacing, cfg.SampleMargin),
	}, nil
}

// Walls returns the cached wall set. Callers must not modify it.
func (e *Environment) Walls() []Segment {
	return e.walls
}

// Samples returns the cached floor sample set. Callers must not modify it.
func (e *Environment) Samples() []Point {
	return e.samples
}

// WallSegments returns the room boundary edges followed by the interior walls
func WallSegments(level Level) []Segment {
	n := len(level.Room) - 1
	if n < 0 {
		n = 0
	}
	segments := make([]Segment, 0, n+len(level.InteriorWalls))
	for i := 0; i < n; i++ {
		segments = append(segments, Segment{A: level.Room[i], B: level.Room[i+1]})
	}
	return append(segments, level.InteriorWalls...)
}

// FloorSamples walks a uniform grid over the room bounds, inset by margin,
// and keeps the points that fall inside the room polygon
func FloorSamples(room []Point, spacing, margin float64) []Point {
	if len(room) == 0 || spacing <= 0 {
		return nil
	}
	b := BoundsOf(room)
	var points []Point
	for x := b.MinX + margin; x < b.MaxX-margin; x += spacing {
		for y := b.MinY + margin; y < b.MaxY-margin; y += spacing {
			p := Point{X: x, Y: y}
			if PointInPolygon(p, room) {
				points = append(points, p)
			}
		}
	}
	return points
}
