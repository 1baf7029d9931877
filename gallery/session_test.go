package gallery

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

type fakeRecorder struct {
	done  map[int]bool
	calls []int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{done: make(map[int]bool)}
}

func (r *fakeRecorder) Record(_ context.Context, level int) bool {
	r.calls = append(r.calls, level)
	r.done[level] = true
	return false
}

func (r *fakeRecorder) IsCompleted(level int) bool {
	return r.done[level]
}

func (r *fakeRecorder) Completed() []int {
	out := make([]int, 0, len(r.done))
	for l := range r.done {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

func newTestSession(t *testing.T, levels []Level, rec Recorder) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), levels, DefaultConfig(), rec, 0)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, Levels(), nil)

	if s.ID() == "" {
		t.Error("session id is empty")
	}
	if s.LevelIndex() != 0 || s.LevelCount() != 5 {
		t.Errorf("level %d of %d", s.LevelIndex(), s.LevelCount())
	}
	guards := s.Guards()
	if len(guards) != 2 {
		t.Fatalf("expected 2 guards, got %d", len(guards))
	}
	for i, g := range guards {
		if g.ID != i {
			t.Errorf("guard %d has id %d", i, g.ID)
		}
		if g.Angle != 0 {
			t.Errorf("guard %d starts at angle %v", i, g.Angle)
		}
	}
	if s.Coverage().Total == 0 {
		t.Error("coverage was not evaluated on start")
	}
	if s.Drag().Active() {
		t.Error("session starts mid-drag")
	}
}

func TestNewSessionErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewSession(ctx, Levels(), DefaultConfig(), nil, 5); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("start past the end: got %v", err)
	}
	if _, err := NewSession(ctx, Levels(), DefaultConfig(), nil, -1); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("negative start: got %v", err)
	}
	if _, err := NewSession(ctx, nil, DefaultConfig(), nil, 0); err == nil {
		t.Error("empty catalog accepted")
	}

	bad := Levels()
	bad[3].MaxGuards = 1
	if _, err := NewSession(ctx, bad, DefaultConfig(), nil, 0); !errors.Is(err, ErrGuardLimits) {
		t.Errorf("invalid level accepted: %v", err)
	}

	cfg := DefaultConfig()
	cfg.RaysInCone = 0
	if _, err := NewSession(ctx, Levels(), cfg, nil, 0); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestSessionAddRemoveGuards(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)
	cfg := s.Config()

	if !s.AddGuard(ctx) || !s.AddGuard(ctx) {
		t.Fatal("adding up to the maximum failed")
	}
	if s.CanAddGuard() || s.AddGuard(ctx) {
		t.Fatal("added past the maximum")
	}
	if n := len(s.Guards()); n != 4 {
		t.Fatalf("expected 4 guards, got %d", n)
	}
	if last := s.Guards()[3]; last.ID != 3 || last.Pos != cfg.SpawnPoint || last.Angle != 0 {
		t.Errorf("new guard = %+v", last)
	}

	if !s.RemoveGuard(ctx) {
		t.Fatal("remove failed")
	}
	s.AddGuard(ctx)
	if id := s.Guards()[3].ID; id != 4 {
		t.Errorf("ids must not be reused, got %d", id)
	}

	for s.CanRemoveGuard() {
		s.RemoveGuard(ctx)
	}
	if s.RemoveGuard(ctx) {
		t.Error("removed from an empty set")
	}
	if c := s.Coverage(); c.Percent != 0 || c.Score != 0 {
		t.Errorf("no guards should mean no coverage, got %+v", c)
	}
}

func TestSessionChangeLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)
	s.AddGuard(ctx)

	if err := s.ChangeLevel(ctx, 2); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	if s.LevelIndex() != 2 || len(s.Guards()) != 3 {
		t.Errorf("level %d with %d guards", s.LevelIndex(), len(s.Guards()))
	}

	if err := s.ChangeLevel(ctx, 99); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("expected ErrLevelIndex, got %v", err)
	}
	if s.LevelIndex() != 2 {
		t.Error("failed level change modified the session")
	}

	s.ChangeLevel(ctx, 4)
	if s.NextLevel(ctx) {
		t.Error("advanced past the last level")
	}
	s.ChangeLevel(ctx, 0)
	if s.PreviousLevel(ctx) {
		t.Error("went back before the first level")
	}
	if !s.NextLevel(ctx) || s.LevelIndex() != 1 {
		t.Error("NextLevel did not advance")
	}
}

func TestSessionResetLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)
	s.AddGuard(ctx)
	s.PlaceGuard(ctx, 0, Point{X: 150, Y: 150}, math.Pi)

	s.ResetLevel(ctx)
	guards := s.Guards()
	if len(guards) != 2 {
		t.Fatalf("expected 2 guards after reset, got %d", len(guards))
	}
	if guards[0].Pos != (Point{X: 300, Y: 300}) || guards[1].Pos != (Point{X: 350, Y: 300}) {
		t.Errorf("reset positions = %+v, %+v", guards[0].Pos, guards[1].Pos)
	}
}

func TestHitTestPriority(t *testing.T) {
	cfg := DefaultConfig()
	guards := []Guard{
		{ID: 0, Pos: Point{X: 300, Y: 300}},
		{ID: 1, Pos: Point{X: 370, Y: 300}},
	}

	tests := []struct {
		name string
		p    Point
		want DragState
		ok   bool
	}{
		{"body", Point{X: 305, Y: 300}, DragState{Kind: DragBody, GuardIndex: 0}, true},
		{"arrow over another body", Point{X: 370, Y: 300}, DragState{Kind: DragArrow, GuardIndex: 0}, true},
		{"second guard body", Point{X: 370, Y: 318}, DragState{Kind: DragBody, GuardIndex: 1}, true},
		{"empty floor", Point{X: 200, Y: 200}, idle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(guards, tt.p, cfg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("HitTest(%+v) = %+v, %v; want %+v, %v", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHitTestArrowBeatsOwnBody(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArrowDistance = 10
	guards := []Guard{{Pos: Point{X: 300, Y: 300}}}

	got, ok := HitTest(guards, Point{X: 310, Y: 300}, cfg)
	if !ok || got.Kind != DragArrow {
		t.Errorf("expected arrow hit, got %v", got.Kind)
	}
}

func TestSessionDragBodyClamps(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)

	if !s.PointerDown(Point{X: 300, Y: 300}) {
		t.Fatal("pointer down on a guard body missed")
	}
	if d := s.Drag(); d.Kind != DragBody || d.GuardIndex != 0 {
		t.Fatalf("drag = %+v", d)
	}

	s.PointerMove(Point{X: 0, Y: 1000})
	if pos := s.Guards()[0].Pos; pos != (Point{X: 120, Y: 480}) {
		t.Errorf("clamped position = %+v, want (120, 480)", pos)
	}

	// the notch of the L-room is inside the bounding box
	s.PointerMove(Point{X: 600, Y: 450})
	if pos := s.Guards()[0].Pos; pos != (Point{X: 600, Y: 450}) {
		t.Errorf("position = %+v, want (600, 450)", pos)
	}

	s.PointerUp(ctx)
	if s.Drag().Active() {
		t.Error("drag still active after pointer up")
	}
}

func TestSessionDragArrowRotates(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)
	before := s.Guards()[0].Pos

	if !s.PointerDown(Point{X: 372, Y: 300}) {
		t.Fatal("pointer down on the arrow handle missed")
	}
	if s.Drag().Kind != DragArrow {
		t.Fatalf("drag kind = %v", s.Drag().Kind)
	}
	s.PointerMove(Point{X: 300, Y: 400})
	s.PointerUp(ctx)

	g := s.Guards()[0]
	if math.Abs(g.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %v, want π/2", g.Angle)
	}
	if g.Pos != before {
		t.Error("rotating moved the guard")
	}
}

func TestSessionPointerIdle(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, Levels(), nil)
	before := s.Guards()

	if s.PointerDown(Point{X: 650, Y: 150}) {
		t.Error("pointer down on empty floor started a drag")
	}
	s.PointerMove(Point{X: 660, Y: 160})
	s.PointerUp(ctx)

	if !slices.Equal(before, s.Guards()) {
		t.Error("idle pointer events moved a guard")
	}
}

func TestSessionHover(t *testing.T) {
	s := newTestSession(t, Levels(), nil)

	s.PointerMove(Point{X: 350, Y: 305})
	f := s.Frame()
	if !f.Guards[1].BodyHovered || f.Guards[0].BodyHovered {
		t.Errorf("hover flags = %+v / %+v", f.Guards[0], f.Guards[1])
	}

	s.PointerMove(Point{X: 650, Y: 150})
	f = s.Frame()
	for i, g := range f.Guards {
		if g.BodyHovered || g.ArrowHovered {
			t.Errorf("guard %d still hovered", i)
		}
	}
}

func TestGuardsSnapshotIsStable(t *testing.T) {
	s := newTestSession(t, Levels(), nil)
	snapshot := s.Guards()
	want := snapshot[0]

	s.PointerDown(Point{X: 300, Y: 300})
	s.PointerMove(Point{X: 200, Y: 200})

	if snapshot[0] != want {
		t.Error("an earlier guard slice changed after a drag")
	}
}

// wideRoom is incomplete with the reset layout and complete once the guard
// is dragged to the west wall.
func wideRoom() []Level {
	l := testLevel(rect(100, 100, 900, 500))
	l.CoverageThreshold = 0.8
	return []Level{l}
}

func TestSessionCommitsCompletionOnPointerUp(t *testing.T) {
	ctx := context.Background()
	rec := newFakeRecorder()
	s := newTestSession(t, wideRoom(), rec)

	if s.Coverage().IsComplete {
		t.Fatalf("reset layout already complete at %.3f", s.Coverage().Percent)
	}

	s.PointerDown(Point{X: 300, Y: 300})
	s.PointerMove(Point{X: 0, Y: 300})
	if !s.Coverage().IsComplete {
		t.Fatalf("dragged layout incomplete at %.3f", s.Coverage().Percent)
	}
	if len(rec.calls) != 0 {
		t.Fatal("completion recorded mid-drag")
	}

	s.PointerUp(ctx)
	if !slices.Equal(rec.calls, []int{0}) {
		t.Fatalf("recorded %v, want [0]", rec.calls)
	}

	// already completed levels are not recorded again
	s.ResetLevel(ctx)
	s.PointerDown(Point{X: 300, Y: 300})
	s.PointerMove(Point{X: 0, Y: 300})
	s.PointerUp(ctx)
	if len(rec.calls) != 1 {
		t.Errorf("recorded %d times", len(rec.calls))
	}
}

func TestSessionRecordsOnAddGuard(t *testing.T) {
	ctx := context.Background()
	rec := newFakeRecorder()
	l := testLevel(rect(100, 100, 500, 500))
	l.RequiredGuards = 0
	l.CoverageThreshold = 0
	s := newTestSession(t, []Level{l}, rec)

	if len(rec.calls) != 0 {
		t.Fatal("empty room recorded as complete")
	}
	s.AddGuard(ctx)
	if !slices.Equal(rec.calls, []int{0}) {
		t.Errorf("recorded %v, want [0]", rec.calls)
	}
	if !slices.Equal(s.Frame().Completed, []int{0}) {
		t.Errorf("frame completed = %v", s.Frame().Completed)
	}
}

func TestFrame(t *testing.T) {
	s := newTestSession(t, Levels(), nil)
	f := s.Frame()

	if f.LevelName != "The Entrance Hall" || f.LevelCount != 5 || f.Difficulty != DifficultyEasy {
		t.Errorf("frame header = %q %d %v", f.LevelName, f.LevelCount, f.Difficulty)
	}
	if len(f.Guards) != 2 || f.Guards[0].Label != "G1" || f.Guards[1].Label != "G2" {
		t.Fatalf("guard views = %+v", f.Guards)
	}
	if f.Guards[0].Arrow != (Point{X: 372, Y: 300}) {
		t.Errorf("arrow handle = %+v", f.Guards[0].Arrow)
	}
	if len(f.Guards[0].Visibility) < 3 {
		t.Error("guard view has no visibility polygon")
	}
	if len(f.Samples) != f.Coverage.Total || len(f.Coverage.Visible) != f.Coverage.Total {
		t.Error("sample and coverage counts disagree")
	}
	if !f.CanAddGuard || !f.CanRemoveGuard {
		t.Error("add/remove flags wrong")
	}

	f.Room[0] = Point{}
	f.Guards[0].Visibility[0] = Point{X: -1}
	if s.Level().Room[0] != (Point{X: 100, Y: 100}) {
		t.Error("frame room aliases the session level")
	}
	if s.Frame().Guards[0].Visibility[0] != s.Guards()[0].Pos {
		t.Error("frame polygon aliases the session polygons")
	}
}
