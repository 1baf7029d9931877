package progress

import (
	"context"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"museumguard/logger"
	"museumguard/store"
)

// RequiredLevels are the level indices that together win the museum guard game.
var RequiredLevels = []int{0, 1, 2}

// WinSignal is told when a game is won.
type WinSignal interface {
	SetWon(ctx context.Context, game GameID, won bool) error
}

// StoreWinSignal keeps won flags in a Store under WonKey.
type StoreWinSignal struct {
	Store store.Store
}

func (s StoreWinSignal) SetWon(ctx context.Context, game GameID, won bool) error {
	return s.Store.Set(ctx, WonKey(game), strconv.FormatBool(won))
}

// IsWon reads a game's won flag. A missing or unreadable flag counts as not won.
func IsWon(ctx context.Context, st store.Store, game GameID) bool {
	v, ok, err := st.Get(ctx, WonKey(game))
	return err == nil && ok && v == "true"
}

// Tracker owns the completed level set of the museum guard game and raises
// the win signal when the required levels first become complete.
type Tracker struct {
	store     store.Store
	signal    WinSignal
	completed map[int]bool
	log       *logrus.Entry
}

// NewTracker loads the completed set from st. Missing or corrupt data starts an empty set.
func NewTracker(ctx context.Context, st store.Store, signal WinSignal) *Tracker {
	t := &Tracker{
		store:     st,
		signal:    signal,
		completed: make(map[int]bool),
		log:       logger.Log.WithField("component", "progress"),
	}
	t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) {
	raw, ok, err := t.store.Get(ctx, CompletedLevelsKey)
	if err != nil {
		t.log.WithError(err).Warn("Could not read completed levels, starting empty.")
		return
	}
	if !ok {
		return
	}
	levels, err := DecodeLevels(raw)
	if err != nil {
		t.log.WithError(err).WithField("payload", raw).Warn("Discarding corrupt completed levels.")
		return
	}
	for _, l := range levels {
		t.completed[l] = true
	}
	t.log.WithField("completed", levels).Debug("Completed levels loaded.")
}

// IsCompleted reports whether level was ever completed.
func (t *Tracker) IsCompleted(level int) bool {
	return t.completed[level]
}

// Completed returns the completed level indices in ascending order.
func (t *Tracker) Completed() []int {
	out := make([]int, 0, len(t.completed))
	for l := range t.completed {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Won reports whether every required level is complete.
func (t *Tracker) Won() bool {
	for _, l := range RequiredLevels {
		if !t.completed[l] {
			return false
		}
	}
	return true
}

// Record adds level to the completed set and persists it. It reports true
// only when this completion made the game won; the win signal fires then
// and at no other time. Storage failures are logged, never returned.
func (t *Tracker) Record(ctx context.Context, level int) bool {
	if level < 0 || t.completed[level] {
		return false
	}
	wasWon := t.Won()
	t.completed[level] = true

	if err := t.store.Set(ctx, CompletedLevelsKey, EncodeLevels(t.Completed())); err != nil {
		t.log.WithError(err).WithField("level", level).Warn("Could not persist completed levels.")
	}

	if wasWon || !t.Won() {
		return false
	}
	t.log.WithField("game", MuseumGuard.String()).Info("All required levels complete, game won.")
	if t.signal != nil {
		if err := t.signal.SetWon(ctx, MuseumGuard, true); err != nil {
			t.log.WithError(err).Warn("Could not persist win flag.")
		}
	}
	return true
}
