package gallery

import (
	"math"
	"slices"
)

// Guard is a player-placed watcher
type Guard struct {
	ID    int
	Pos   Point
	Angle float64 // radians, any range
}

// ArrowHandle returns the rotation handle position
func (g Guard) ArrowHandle(distance float64) Point {
	return Point{
		X: g.Pos.X + math.Cos(g.Angle)*distance,
		Y: g.Pos.Y + math.Sin(g.Angle)*distance,
	}
}

// GuardSet is the guard list owned by one play session. Every mutation
// replaces the backing slice so a slice handed out earlier never changes.
type GuardSet struct {
	guards []Guard
	nextID int
}

// Len returns the number of guards
func (s *GuardSet) Len() int {
	return len(s.guards)
}

// All returns the current guards. The slice must not be modified.
func (s *GuardSet) All() []Guard {
	return s.guards
}

// At returns the guard at index i
func (s *GuardSet) At(i int) (Guard, bool) {
	if i < 0 || i >= len(s.guards) {
		return Guard{}, false
	}
	return s.guards[i], true
}

// NextID returns the id the next added guard will get
func (s *GuardSet) NextID() int {
	return s.nextID
}

// Reset replaces the guards with the level's required count at the default layout
func (s *GuardSet) Reset(level Level, cfg Config) {
	guards := make([]Guard, level.RequiredGuards)
	for i := range guards {
		guards[i] = Guard{ID: i, Pos: ResetPosition(level, cfg, i)}
	}
	s.guards = guards
	s.nextID = level.RequiredGuards
}

// ResetPosition is where guard i stands after a reset
func ResetPosition(level Level, cfg Config, i int) Point {
	offset := float64(i) * 50
	first := level.Room[0]
	return Point{
		X: math.Max(300+offset, first.X+cfg.GuardRadius+20),
		Y: math.Max(300, first.Y+cfg.GuardRadius+20),
	}
}

// Add appends a guard at the spawn point. It is a no-op at the level's limit.
func (s *GuardSet) Add(level Level, cfg Config) bool {
	if len(s.guards) >= level.MaxGuards {
		return false
	}
	g := Guard{ID: s.nextID, Pos: cfg.SpawnPoint}
	s.nextID++
	s.guards = append(slices.Clip(s.guards), g)
	return true
}

// RemoveLast drops the most recently added guard. It is a no-op when empty.
func (s *GuardSet) RemoveLast() bool {
	if len(s.guards) == 0 {
		return false
	}
	s.guards = slices.Clone(s.guards[:len(s.guards)-1])
	return true
}

// Move places guard i at p clamped to the bounds shrunk by radius
func (s *GuardSet) Move(i int, p Point, b Bounds, radius float64) bool {
	return s.update(i, func(g *Guard) { g.Pos = b.Clamp(p, radius) })
}

// FaceTowards turns guard i to look at p
func (s *GuardSet) FaceTowards(i int, p Point) bool {
	return s.update(i, func(g *Guard) { g.Angle = math.Atan2(p.Y-g.Pos.Y, p.X-g.Pos.X) })
}

// Set replaces guard i wholesale, keeping its id
func (s *GuardSet) Set(i int, pos Point, angle float64) bool {
	return s.update(i, func(g *Guard) {
		g.Pos = pos
		g.Angle = angle
	})
}

func (s *GuardSet) update(i int, fn func(g *Guard)) bool {
	if i < 0 || i >= len(s.guards) {
		return false
	}
	next := slices.Clone(s.guards)
	fn(&next[i])
	s.guards = next
	return true
}
