package gallery

import (
	"fmt"
	"slices"
)

// GuardView is the drawable state of one guard
type GuardView struct {
	ID           int
	Label        string
	Pos          Point
	Angle        float64
	Arrow        Point
	Visibility   []Point
	BodyHovered  bool
	ArrowHovered bool
	BodyDragged  bool
	ArrowDragged bool
}

// Frame is a read-only snapshot for the drawing layer
type Frame struct {
	LevelIndex  int
	LevelCount  int
	LevelName   string
	Description string
	Difficulty  Difficulty

	RequiredGuards int
	MaxGuards      int
	Threshold      float64

	Room          []Point
	InteriorWalls []Segment
	Art           Point
	Samples       []Point

	GuardRadius float64
	Guards      []GuardView
	Coverage    Coverage

	Completed      []int
	CanAddGuard    bool
	CanRemoveGuard bool
}

// Frame projects the session into plain data. Every slice in the result is
// a copy the caller may keep.
func (s *Session) Frame() Frame {
	lvl := s.env.Level
	f := Frame{
		LevelIndex:     s.index,
		LevelCount:     len(s.levels),
		LevelName:      lvl.Name,
		Description:    lvl.Description,
		Difficulty:     lvl.Difficulty,
		RequiredGuards: lvl.RequiredGuards,
		MaxGuards:      lvl.MaxGuards,
		Threshold:      lvl.CoverageThreshold,
		Room:           slices.Clone(lvl.Room),
		InteriorWalls:  slices.Clone(lvl.InteriorWalls),
		Art:            lvl.Art,
		Samples:        slices.Clone(s.env.samples),
		GuardRadius:    s.cfg.GuardRadius,
		Coverage:       s.coverage,
		CanAddGuard:    s.CanAddGuard(),
		CanRemoveGuard: s.CanRemoveGuard(),
	}
	f.Coverage.Visible = slices.Clone(s.coverage.Visible)
	if s.recorder != nil {
		f.Completed = s.recorder.Completed()
	}

	guards := s.guards.All()
	f.Guards = make([]GuardView, len(guards))
	for i, g := range guards {
		v := GuardView{
			ID:    g.ID,
			Label: fmt.Sprintf("G%d", i+1),
			Pos:   g.Pos,
			Angle: g.Angle,
			Arrow: g.ArrowHandle(s.cfg.ArrowDistance),
		}
		if i < len(s.polygons) {
			v.Visibility = slices.Clone(s.polygons[i])
		}
		if s.drag.GuardIndex == i {
			v.BodyDragged = s.drag.Kind == DragBody
			v.ArrowDragged = s.drag.Kind == DragArrow
		}
		if s.hover.GuardIndex == i {
			v.BodyHovered = s.hover.Kind == DragBody
			v.ArrowHovered = s.hover.Kind == DragArrow
		}
		f.Guards[i] = v
	}
	return f
}
