package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"museumguard/gallery"
)

// PointerEventKind is the phase of a pointer event
type PointerEventKind int

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse or touch event in canvas coordinates
type PointerEvent struct {
	Kind PointerEventKind
	Pos  gallery.Point
}

// Action is a keyboard command
type Action int

const (
	ActionAddGuard Action = iota
	ActionRemoveGuard
	ActionReset
	ActionNextLevel
	ActionPreviousLevel
	ActionToggleSamples
	ActionToggleFullscreen
)

// keyBindings maps each action to the keys that trigger it
var keyBindings = map[Action][]ebiten.Key{
	ActionAddGuard:      {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	ActionRemoveGuard:   {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	ActionReset:         {ebiten.KeyR},
	ActionNextLevel:     {ebiten.KeyN, ebiten.KeyBracketRight},
	ActionPreviousLevel: {ebiten.KeyP, ebiten.KeyBracketLeft},
	ActionToggleSamples: {ebiten.KeyF3},
}

// actionOrder keeps per-frame action handling deterministic
var actionOrder = []Action{
	ActionAddGuard,
	ActionRemoveGuard,
	ActionReset,
	ActionNextLevel,
	ActionPreviousLevel,
	ActionToggleSamples,
}

// Input collects mouse, touch and keyboard input once per tick. Mouse and
// touch feed the same pointer stream; the session does not care which.
type Input struct {
	events  []PointerEvent
	actions []Action

	touchID      ebiten.TouchID
	touching     bool
	lastX        int
	lastY        int
	prevAltEnter bool

	touchIDs []ebiten.TouchID
}

// NewInput creates a new input collector
func NewInput() *Input {
	return &Input{
		events:  make([]PointerEvent, 0, 4),
		actions: make([]Action, 0, 4),
		lastX:   -1,
		lastY:   -1,
	}
}

// Events returns the pointer events gathered by the last Update
func (in *Input) Events() []PointerEvent {
	return in.events
}

// Actions returns the keyboard actions gathered by the last Update
func (in *Input) Actions() []Action {
	return in.actions
}

// Update polls ebiten for this tick's input
func (in *Input) Update() {
	in.events = in.events[:0]
	in.actions = in.actions[:0]

	in.updateTouch()
	if !in.touching {
		in.updateMouse()
	}
	in.updateKeys()
}

func (in *Input) updateMouse() {
	x, y := ebiten.CursorPosition()
	pos := gallery.Point{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.events = append(in.events, PointerEvent{Kind: PointerDown, Pos: pos})
	}
	if x != in.lastX || y != in.lastY {
		in.events = append(in.events, PointerEvent{Kind: PointerMove, Pos: pos})
		in.lastX, in.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.events = append(in.events, PointerEvent{Kind: PointerUp, Pos: pos})
	}
}

// updateTouch follows the first finger down until it lifts
func (in *Input) updateTouch() {
	if !in.touching {
		in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
		if len(in.touchIDs) == 0 {
			return
		}
		in.touchID = in.touchIDs[0]
		in.touching = true
		x, y := ebiten.TouchPosition(in.touchID)
		in.lastX, in.lastY = x, y
		in.events = append(in.events, PointerEvent{Kind: PointerDown, Pos: gallery.Point{X: float64(x), Y: float64(y)}})
		return
	}

	if inpututil.IsTouchJustReleased(in.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(in.touchID)
		in.events = append(in.events, PointerEvent{Kind: PointerUp, Pos: gallery.Point{X: float64(x), Y: float64(y)}})
		in.touching = false
		return
	}

	x, y := ebiten.TouchPosition(in.touchID)
	if x != in.lastX || y != in.lastY {
		in.events = append(in.events, PointerEvent{Kind: PointerMove, Pos: gallery.Point{X: float64(x), Y: float64(y)}})
		in.lastX, in.lastY = x, y
	}
}

func (in *Input) updateKeys() {
	for _, action := range actionOrder {
		for _, key := range keyBindings[action] {
			if inpututil.IsKeyJustPressed(key) {
				in.actions = append(in.actions, action)
				break
			}
		}
	}

	// Alt+Enter toggles fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	altEnterPressed := altPressed && ebiten.IsKeyPressed(ebiten.KeyEnter)
	if altEnterPressed && !in.prevAltEnter {
		in.actions = append(in.actions, ActionToggleFullscreen)
	}
	in.prevAltEnter = altEnterPressed
}
