package core

// GameKind selects a mini-game and, with it, the persisted progress schema.
type GameKind int

const (
	GameBubblePop GameKind = iota
	GamePlinko
	GameCardReveal
	GameWordMatch
)

// String returns the game identifier used on the command line.
func (k GameKind) String() string {
	switch k {
	case GameBubblePop:
		return "bubblepop"
	case GamePlinko:
		return "plinko"
	case GameCardReveal:
		return "cardreveal"
	case GameWordMatch:
		return "wordmatch"
	default:
		return "unknown"
	}
}

// ProgressKey returns the persistence key holding the game's progress blob,
// or empty for games that keep no session between runs.
func (k GameKind) ProgressKey() string {
	switch k {
	case GameBubblePop:
		return "bubblePopProgress"
	case GamePlinko:
		return "plinkoProgress"
	case GameCardReveal:
		return "cardRevealProgress"
	default:
		return ""
	}
}

// Kinds lists every game kind in menu order.
func Kinds() []GameKind {
	return []GameKind{GameBubblePop, GamePlinko, GameCardReveal, GameWordMatch}
}

// Persistent reports whether the game saves its session.
func (k GameKind) Persistent() bool {
	return k.ProgressKey() != ""
}

// ParseGameKind maps a game identifier back to its kind.
func ParseGameKind(s string) (GameKind, bool) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
