package gallery

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrTooFewVertices = errors.New("room needs at least 3 vertices")
	ErrRoomNotClosed  = errors.New("room polygon is not closed")
	ErrZeroLengthWall = errors.New("zero-length wall")
	ErrGuardLimits    = errors.New("invalid guard limits")
	ErrThreshold      = errors.New("coverage threshold outside [0, 1]")
	ErrLevelIndex     = errors.New("level index out of range")
)

// Difficulty tags a level for display
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Level is the static description of one gallery
type Level struct {
	ID          int
	Name        string
	Description string
	Difficulty  Difficulty

	// RequiredGuards is both the reset guard count and the par used for scoring
	RequiredGuards int
	MaxGuards      int

	// Room is a closed polygon: the last vertex repeats the first
	Room          []Point
	InteriorWalls []Segment
	Art           Point

	// CoverageThreshold is the visible fraction of floor samples needed to complete the level
	CoverageThreshold float64
}

// Validate rejects levels that must never be played
func (l Level) Validate() error {
	if len(l.Room) < 4 {
		return fmt.Errorf("level %d %q: %w (got %d)", l.ID, l.Name, ErrTooFewVertices, max(len(l.Room)-1, 0))
	}
	if l.Room[0] != l.Room[len(l.Room)-1] {
		return fmt.Errorf("level %d %q: %w", l.ID, l.Name, ErrRoomNotClosed)
	}
	for i := 0; i < len(l.Room)-1; i++ {
		if l.Room[i] == l.Room[i+1] {
			return fmt.Errorf("level %d %q: room edge %d: %w", l.ID, l.Name, i, ErrZeroLengthWall)
		}
	}
	for i, w := range l.InteriorWalls {
		if w.A == w.B {
			return fmt.Errorf("level %d %q: interior wall %d: %w", l.ID, l.Name, i, ErrZeroLengthWall)
		}
	}
	if l.RequiredGuards < 0 || l.MaxGuards < l.RequiredGuards {
		return fmt.Errorf("level %d %q: %w (required %d, max %d)", l.ID, l.Name, ErrGuardLimits, l.RequiredGuards, l.MaxGuards)
	}
	if l.CoverageThreshold < 0 || l.CoverageThreshold > 1 {
		return fmt.Errorf("level %d %q: %w (got %v)", l.ID, l.Name, ErrThreshold, l.CoverageThreshold)
	}
	return nil
}

func (l Level) clone() Level {
	l.Room = slices.Clone(l.Room)
	l.InteriorWalls = slices.Clone(l.InteriorWalls)
	return l
}

// rect returns the closed vertex list of an axis-aligned rectangle
func rect(minX, minY, maxX, maxY float64) []Point {
	return []Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
	}
}

func wall(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{X: x1, Y: y1}, B: Point{X: x2, Y: y2}}
}

var catalog = []Level{
	{
		ID:             1,
		Name:           "The Entrance Hall",
		Description:    "A simple L-shaped gallery. Perfect for beginners.",
		Difficulty:     DifficultyEasy,
		RequiredGuards: 2,
		MaxGuards:      4,
		Room: []Point{
			{X: 100, Y: 100},
			{X: 700, Y: 100},
			{X: 700, Y: 350},
			{X: 400, Y: 350},
			{X: 400, Y: 500},
			{X: 100, Y: 500},
			{X: 100, Y: 100},
		},
		Art:               Point{X: 250, Y: 450},
		CoverageThreshold: 0.95,
	},
	{
		ID:             2,
		Name:           "The Divided Wing",
		Description:    "Two chambers connected by a narrow passage.",
		Difficulty:     DifficultyEasy,
		RequiredGuards: 2,
		MaxGuards:      4,
		Room:           rect(100, 100, 700, 500),
		InteriorWalls: []Segment{
			wall(100, 300, 350, 300),
			wall(450, 300, 700, 300),
		},
		Art:               Point{X: 250, Y: 200},
		CoverageThreshold: 0.95,
	},
	{
		ID:             3,
		Name:           "The Central Hall",
		Description:    "A hall with a central pillar blocking sight lines.",
		Difficulty:     DifficultyMedium,
		RequiredGuards: 3,
		MaxGuards:      5,
		Room:           rect(100, 100, 700, 500),
		InteriorWalls: []Segment{
			// pillar
			wall(350, 250, 450, 250),
			wall(450, 250, 450, 350),
			wall(450, 350, 350, 350),
			wall(350, 350, 350, 250),
			wall(250, 100, 250, 200),
			wall(550, 400, 550, 500),
		},
		Art:               Point{X: 650, Y: 450},
		CoverageThreshold: 0.90,
	},
	{
		ID:             4,
		Name:           "The Comb Gallery",
		Description:    "Multiple corridors create complex sight lines.",
		Difficulty:     DifficultyMedium,
		RequiredGuards: 3,
		MaxGuards:      5,
		Room:           rect(100, 100, 700, 500),
		InteriorWalls: []Segment{
			wall(250, 100, 250, 300),
			wall(400, 200, 400, 500),
			wall(550, 100, 550, 350),
			wall(100, 300, 200, 300),
		},
		Art:               Point{X: 650, Y: 450},
		CoverageThreshold: 0.90,
	},
	{
		ID:             5,
		Name:           "The Master's Maze",
		Description:    "The ultimate challenge - a complex maze of walls.",
		Difficulty:     DifficultyHard,
		RequiredGuards: 5,
		MaxGuards:      7,
		Room:           rect(100, 100, 700, 500),
		InteriorWalls: []Segment{
			wall(200, 100, 200, 200),
			wall(350, 100, 350, 250),
			wall(500, 100, 500, 200),
			wall(600, 100, 600, 300),
			wall(100, 250, 250, 250),
			wall(450, 250, 700, 250),
			wall(200, 350, 200, 500),
			wall(400, 300, 400, 500),
			wall(550, 350, 550, 450),
			wall(100, 400, 150, 400),
			wall(500, 400, 650, 400),
		},
		Art:               Point{X: 650, Y: 150},
		CoverageThreshold: 0.85,
	},
}

// Levels returns a copy of the built-in level catalog in play order
func Levels() []Level {
	out := make([]Level, len(catalog))
	for i, l := range catalog {
		out[i] = l.clone()
	}
	return out
}

// ValidateCatalog checks every level up front so a bad one is never presented
func ValidateCatalog(levels []Level) error {
	if len(levels) == 0 {
		return errors.New("level catalog is empty")
	}
	for _, l := range levels {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}
