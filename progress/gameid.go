package progress

import "fmt"

// GameID names one of the mini-games whose wins reveal a puzzle cell.
type GameID int

const (
	InvisibleHeart GameID = iota
	UnwrappedUV
	MuseumGuard
)

// AllGames lists every known game in reveal order.
var AllGames = []GameID{InvisibleHeart, UnwrappedUV, MuseumGuard}

func (g GameID) String() string {
	switch g {
	case InvisibleHeart:
		return "invisible-heart"
	case UnwrappedUV:
		return "unwrapped-uv"
	case MuseumGuard:
		return "museum-guard"
	default:
		return fmt.Sprintf("GameID(%d)", int(g))
	}
}

// ParseGameID maps a game slug back to its id.
func ParseGameID(s string) (GameID, error) {
	for _, g := range AllGames {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown game id %q", s)
}

// WonKey is the storage key of a game's won flag.
func WonKey(g GameID) string {
	return "game_won_" + g.String()
}
