package core

import "sync"

// Notifier receives fire-and-forget UI signals from the games.
// Implementations must not block.
type Notifier interface {
	OutOfPoints(game GameKind)
	CardWon(game GameKind, category, card string)
	ProgressChanged(game GameKind, percent float64)
	PointsChanged(balance int)
}

// NopNotifier discards every signal.
type NopNotifier struct{}

func (NopNotifier) OutOfPoints(GameKind) {}
func (NopNotifier) CardWon(GameKind, string, string) {}
func (NopNotifier) ProgressChanged(GameKind, float64) {}
func (NopNotifier) PointsChanged(int) {}

// Notifiers fans every signal out to each non-nil notifier in order.
func Notifiers(ns ...Notifier) Notifier {
	var out multiNotifier
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type multiNotifier []Notifier

func (m multiNotifier) OutOfPoints(game GameKind) {
	for _, n := range m {
		n.OutOfPoints(game)
	}
}

func (m multiNotifier) CardWon(game GameKind, category, card string) {
	for _, n := range m {
		n.CardWon(game, category, card)
	}
}

func (m multiNotifier) ProgressChanged(game GameKind, percent float64) {
	for _, n := range m {
		n.ProgressChanged(game, percent)
	}
}

func (m multiNotifier) PointsChanged(balance int) {
	for _, n := range m {
		n.PointsChanged(balance)
	}
}

// Recorded signal kinds.
const (
	SignalOutOfPoints = "out_of_points"
	SignalCardWon     = "card_won"
	SignalProgress    = "progress"
	SignalPoints      = "points"
)

// Signal is one recorded notification.
type Signal struct {
	Kind     string
	Game     GameKind
	Category string
	Card     string
	Percent  float64
	Balance  int
}

// Recorder is a Notifier that keeps every signal it receives.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

func (r *Recorder) add(s Signal) {
	r.mu.Lock()
	r.signals = append(r.signals, s)
	r.mu.Unlock()
}

func (r *Recorder) OutOfPoints(game GameKind) {
	r.add(Signal{Kind: SignalOutOfPoints, Game: game})
}

func (r *Recorder) CardWon(game GameKind, category, card string) {
	r.add(Signal{Kind: SignalCardWon, Game: game, Category: category, Card: card})
}

func (r *Recorder) ProgressChanged(game GameKind, percent float64) {
	r.add(Signal{Kind: SignalProgress, Game: game, Percent: percent})
}

func (r *Recorder) PointsChanged(balance int) {
	r.add(Signal{Kind: SignalPoints, Balance: balance})
}

// Signals returns a copy of everything recorded so far.
func (r *Recorder) Signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Signal(nil), r.signals...)
}

// Count returns how many signals of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.signals {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets all recorded signals.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.signals = nil
	r.mu.Unlock()
}
