package game

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"museumguard/gallery"
	"museumguard/logger"
)

// Game adapts a gallery session to the ebiten loop. Input is applied to the
// session in Update; Draw only reads the session's frame.
type Game struct {
	ctx      context.Context
	config   Config
	session  *gallery.Session
	input    *Input
	renderer *Renderer
	profiler *Profiler
	started  time.Time
	log      *logrus.Entry
}

// profileWarmup skips slow-tick detection while the window and GPU settle
const profileWarmup = 3 * time.Second

// NewGame creates a new game instance around an existing session
func NewGame(ctx context.Context, config Config, session *gallery.Session) (*Game, error) {
	artSprite, err := loadArtSprite()
	if err != nil {
		return nil, fmt.Errorf("load art sprite: %w", err)
	}

	GetDebugState().ShowSamples = config.ShowSamples

	log := logger.Log.WithFields(logrus.Fields{
		"component":  "frontend",
		"session_id": session.ID(),
	})
	return &Game{
		ctx:      ctx,
		config:   config,
		session:  session,
		input:    NewInput(),
		renderer: NewRenderer(artSprite),
		profiler: NewProfiler(config.ProfileDir, log),
		started:  time.Now(),
		log:      log,
	}, nil
}

// Update applies this tick's input to the session
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	tickStart := time.Now()

	g.input.Update()

	for _, action := range g.input.Actions() {
		g.handleAction(action)
	}

	for _, ev := range g.input.Events() {
		switch ev.Kind {
		case PointerDown:
			g.session.PointerDown(ev.Pos)
		case PointerMove:
			g.session.PointerMove(ev.Pos)
		case PointerUp:
			g.session.PointerMove(ev.Pos)
			g.session.PointerUp(g.ctx)
		}
	}

	g.checkTick(time.Since(tickStart))
	return nil
}

// checkTick profiles ticks slower than the configured budget
func (g *Game) checkTick(elapsed time.Duration) {
	if g.profiler == nil || elapsed < g.config.SlowTick || time.Since(g.started) < profileWarmup {
		return
	}
	reason := fmt.Sprintf("%dms-level%d-guards%d", elapsed.Milliseconds(), g.session.LevelIndex(), len(g.session.Guards()))
	if err := g.profiler.Capture(reason); err != nil {
		g.log.WithError(err).Debug("Slow tick not profiled.")
		return
	}
	g.log.WithFields(logrus.Fields{
		"elapsed": elapsed,
		"level":   g.session.LevelIndex(),
		"guards":  len(g.session.Guards()),
	}).Warn("Slow update tick, capturing CPU profile.")
}

func (g *Game) handleAction(action Action) {
	switch action {
	case ActionAddGuard:
		g.session.AddGuard(g.ctx)
	case ActionRemoveGuard:
		g.session.RemoveGuard(g.ctx)
	case ActionReset:
		g.session.ResetLevel(g.ctx)
	case ActionNextLevel:
		g.session.NextLevel(g.ctx)
	case ActionPreviousLevel:
		g.session.PreviousLevel(g.ctx)
	case ActionToggleSamples:
		debug := GetDebugState()
		debug.ShowSamples = !debug.ShowSamples
		g.log.WithField("show_samples", debug.ShowSamples).Debug("Sample overlay toggled.")
	case ActionToggleFullscreen:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// Draw renders the current frame
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.session.Frame(), GetDebugState())
}

// Layout keeps a fixed logical canvas so pointer positions arrive in level coordinates
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
