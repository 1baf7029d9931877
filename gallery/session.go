package gallery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"museumguard/logger"
)

// Recorder persists level completions. Record is only called on a
// false→true completion transition and reports whether that completion
// raised the win signal.
type Recorder interface {
	Record(ctx context.Context, level int) (won bool)
	IsCompleted(level int) bool
	Completed() []int
}

// Session is one play session: the active level, its guards, the pointer
// state and the coverage derived from them. It is not safe for concurrent use;
// the input loop that owns it is the only writer.
type Session struct {
	id       string
	cfg      Config
	levels   []Level
	index    int
	env      *Environment
	guards   GuardSet
	drag     DragState
	hover    DragState
	recorder Recorder

	coverage    Coverage
	polygons    [][]Point
	wasComplete bool

	log *logrus.Entry
}

// NewSession validates the catalog and starts on level start with its required guards
func NewSession(ctx context.Context, levels []Level, cfg Config, recorder Recorder, start int) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := ValidateCatalog(levels); err != nil {
		return nil, fmt.Errorf("invalid level catalog: %w", err)
	}
	if start < 0 || start >= len(levels) {
		return nil, fmt.Errorf("start level %d: %w", start, ErrLevelIndex)
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		cfg:      cfg,
		levels:   make([]Level, len(levels)),
		drag:     idle,
		hover:    idle,
		recorder: recorder,
		log: logger.Log.WithFields(logrus.Fields{
			"component":  "session",
			"session_id": id,
		}),
	}
	for i, l := range levels {
		s.levels[i] = l.clone()
	}
	if err := s.ChangeLevel(ctx, start); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session id used in logs
func (s *Session) ID() string { return s.id }

// Config returns the model configuration
func (s *Session) Config() Config { return s.cfg }

// Level returns the active level
func (s *Session) Level() Level { return s.env.Level }

// LevelIndex returns the catalog index of the active level
func (s *Session) LevelIndex() int { return s.index }

// LevelCount returns the catalog size
func (s *Session) LevelCount() int { return len(s.levels) }

// Environment returns the active level geometry
func (s *Session) Environment() *Environment { return s.env }

// Guards returns the current guards. The slice must not be modified.
func (s *Session) Guards() []Guard { return s.guards.All() }

// Coverage returns the coverage of the current guard configuration
func (s *Session) Coverage() Coverage { return s.coverage }

// Drag returns the pointer state
func (s *Session) Drag() DragState { return s.drag }

// ChangeLevel switches to level i, discarding the guards and rebuilding the
// level geometry. Out of range indices return ErrLevelIndex and change nothing.
func (s *Session) ChangeLevel(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.levels) {
		return fmt.Errorf("change to level %d: %w", i, ErrLevelIndex)
	}
	env, err := NewEnvironment(s.levels[i], s.cfg)
	if err != nil {
		return err
	}

	s.index = i
	s.env = env
	s.drag = idle
	s.hover = idle
	s.wasComplete = false
	s.guards.Reset(env.Level, s.cfg)

	s.log.WithFields(logrus.Fields{
		"level":         i,
		"name":          env.Level.Name,
		"wall_segments": len(env.walls),
		"floor_samples": len(env.samples),
	}).Info("Level loaded.")

	s.refresh(ctx)
	return nil
}

// NextLevel advances one level; it is a no-op on the last level
func (s *Session) NextLevel(ctx context.Context) bool {
	if s.index >= len(s.levels)-1 {
		return false
	}
	return s.ChangeLevel(ctx, s.index+1) == nil
}

// PreviousLevel goes back one level; it is a no-op on the first level
func (s *Session) PreviousLevel(ctx context.Context) bool {
	if s.index <= 0 {
		return false
	}
	return s.ChangeLevel(ctx, s.index-1) == nil
}

// ResetLevel restores the required guards at their default positions
func (s *Session) ResetLevel(ctx context.Context) {
	s.guards.Reset(s.env.Level, s.cfg)
	s.drag = idle
	s.hover = idle
	s.wasComplete = false
	s.log.WithField("level", s.index).Debug("Level reset.")
	s.refresh(ctx)
}

// CanAddGuard reports whether another guard fits under the level maximum
func (s *Session) CanAddGuard() bool {
	return s.guards.Len() < s.env.Level.MaxGuards
}

// CanRemoveGuard reports whether there is a guard to remove
func (s *Session) CanRemoveGuard() bool {
	return s.guards.Len() > 0
}

// AddGuard places a new guard at the spawn point. Past the level maximum it is a no-op.
func (s *Session) AddGuard(ctx context.Context) bool {
	if !s.guards.Add(s.env.Level, s.cfg) {
		return false
	}
	s.drag = idle
	s.refresh(ctx)
	return true
}

// RemoveGuard removes the newest guard. With no guards it is a no-op.
func (s *Session) RemoveGuard(ctx context.Context) bool {
	if !s.guards.RemoveLast() {
		return false
	}
	s.drag = idle
	s.hover = idle
	s.refresh(ctx)
	return true
}

// PlaceGuard moves and turns guard i directly, with the same clamp as dragging
func (s *Session) PlaceGuard(ctx context.Context, i int, pos Point, angle float64) bool {
	if !s.guards.Set(i, s.env.Bounds.Clamp(pos, s.cfg.GuardRadius), angle) {
		return false
	}
	s.refresh(ctx)
	return true
}

// PointerDown starts a drag if p is on a guard's arrow handle or body
func (s *Session) PointerDown(p Point) bool {
	if s.drag.Active() {
		return false
	}
	hit, ok := HitTest(s.guards.All(), p, s.cfg)
	if !ok {
		return false
	}
	s.drag = hit
	s.hover = idle
	return true
}

// PointerMove drags the grabbed guard, or updates the hover target when idle.
// Coverage is re-evaluated while dragging but completion is only committed
// when the pointer is released.
func (s *Session) PointerMove(p Point) {
	switch s.drag.Kind {
	case DragBody:
		// Clamped to the bounding box, not the room polygon: a guard can sit
		// in a notch of a concave room.
		s.guards.Move(s.drag.GuardIndex, p, s.env.Bounds, s.cfg.GuardRadius)
		s.evaluate()
	case DragArrow:
		s.guards.FaceTowards(s.drag.GuardIndex, p)
		s.evaluate()
	default:
		hit, ok := HitTest(s.guards.All(), p, s.cfg)
		if !ok {
			hit = idle
		}
		s.hover = hit
	}
}

// PointerUp ends a drag and commits the resulting coverage
func (s *Session) PointerUp(ctx context.Context) {
	if !s.drag.Active() {
		return
	}
	s.drag = idle
	s.refresh(ctx)
}

// refresh re-evaluates coverage and records a completion transition
func (s *Session) refresh(ctx context.Context) {
	s.evaluate()

	complete := s.coverage.IsComplete
	if complete && !s.wasComplete && s.recorder != nil && !s.recorder.IsCompleted(s.index) {
		won := s.recorder.Record(ctx, s.index)
		s.log.WithFields(logrus.Fields{
			"level":    s.index,
			"coverage": s.coverage.Percent,
			"score":    s.coverage.Score,
			"won":      won,
		}).Info("Level completed.")
	}
	s.wasComplete = complete
}

func (s *Session) evaluate() {
	guards := s.guards.All()
	s.polygons = VisibilityPolygons(s.env, guards, s.cfg)
	s.coverage = EvaluatePolygons(s.env, guards, s.polygons, s.cfg)

	s.log.WithFields(logrus.Fields{
		"level":    s.index,
		"guards":   len(guards),
		"covered":  s.coverage.Covered,
		"samples":  s.coverage.Total,
		"coverage": s.coverage.Percent,
	}).Debug("Coverage evaluated.")
}
