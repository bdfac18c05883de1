package tui

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/cardquest/internal/core"
)

// bridgeBuffer is how many signals wait for the next redraw before
// progress and points updates are dropped.
const bridgeBuffer = 64

// Bridge is a core.Notifier that hands game signals to the UI goroutine.
// Sends never block. When the UI falls behind, progress and points updates
// are dropped first; card wins and out-of-points signals are always kept.
type Bridge struct {
	mu      sync.Mutex
	pending []core.Signal
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{pending: make([]core.Signal, 0, bridgeBuffer)}
}

// urgent reports whether a signal must reach the player.
func urgent(s core.Signal) bool {
	return s.Kind == core.SignalCardWon || s.Kind == core.SignalOutOfPoints
}

func (b *Bridge) send(s core.Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) < bridgeBuffer {
		b.pending = append(b.pending, s)
		return
	}
	if !urgent(s) {
		return
	}
	// Make room by evicting the oldest routine update.
	if i := slices.IndexFunc(b.pending, func(p core.Signal) bool { return !urgent(p) }); i >= 0 {
		b.pending = slices.Delete(b.pending, i, i+1)
	}
	b.pending = append(b.pending, s)
}

// OutOfPoints queues the banner shown when a game could not spend a point.
func (b *Bridge) OutOfPoints(game core.GameKind) {
	b.send(core.Signal{Kind: core.SignalOutOfPoints, Game: game})
}

// CardWon queues the banner for a newly won card.
func (b *Bridge) CardWon(game core.GameKind, category, card string) {
	b.send(core.Signal{Kind: core.SignalCardWon, Game: game, Category: category, Card: card})
}

// ProgressChanged queues a progress update for the HUD.
func (b *Bridge) ProgressChanged(game core.GameKind, percent float64) {
	b.send(core.Signal{Kind: core.SignalProgress, Game: game, Percent: percent})
}

// PointsChanged queues a new balance for the HUD.
func (b *Bridge) PointsChanged(balance int) {
	b.send(core.Signal{Kind: core.SignalPoints, Balance: balance})
}

// Drain returns every pending signal in the order it was sent.
func (b *Bridge) Drain() []core.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = make([]core.Signal, 0, bridgeBuffer)
	return out
}

// toastFor returns the banner shown for a signal, if any.
func toastFor(s core.Signal) (string, bool) {
	switch s.Kind {
	case core.SignalCardWon:
		return fmt.Sprintf("★ New card: %s ★", core.CardName(s.Card)), true
	case core.SignalOutOfPoints:
		return "Out of points!", true
	}
	return "", false
}
