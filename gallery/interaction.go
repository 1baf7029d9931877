package gallery

// DragKind is what part of a guard the pointer grabbed
type DragKind int

const (
	DragNone DragKind = iota
	DragBody
	DragArrow
)

func (k DragKind) String() string {
	switch k {
	case DragBody:
		return "body"
	case DragArrow:
		return "arrow"
	default:
		return "none"
	}
}

// DragState is the pointer state machine: idle, draggingBody(i) or draggingArrow(i)
type DragState struct {
	Kind       DragKind
	GuardIndex int
}

// Active reports whether a drag is in progress
func (d DragState) Active() bool {
	return d.Kind != DragNone
}

var idle = DragState{Kind: DragNone, GuardIndex: -1}

// hitPriority is the order parts are tested within one guard. The arrow
// handle comes first so it can be grabbed even where it overlaps a body.
var hitPriority = []DragKind{DragArrow, DragBody}

// HitTest finds the guard part under p. Guards are scanned in index order
// and, within a guard, parts in hitPriority order; the first hit wins.
func HitTest(guards []Guard, p Point, cfg Config) (DragState, bool) {
	for i, g := range guards {
		for _, kind := range hitPriority {
			if hitsPart(g, kind, p, cfg) {
				return DragState{Kind: kind, GuardIndex: i}, true
			}
		}
	}
	return idle, false
}

func hitsPart(g Guard, kind DragKind, p Point, cfg Config) bool {
	switch kind {
	case DragArrow:
		return p.DistanceTo(g.ArrowHandle(cfg.ArrowDistance)) < cfg.ArrowHitRadius
	case DragBody:
		return p.DistanceTo(g.Pos) < cfg.GuardRadius
	}
	return false
}
