// Package cardreveal implements the Card-Reveal unlock game: the reward
// card is hidden under a grid of blocks and each block costs one point to
// uncover.
package cardreveal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/registry"
)

// Title is the display name of the game.
const Title = "Card Reveal"

// Session phases
const (
	PhaseLoading  = "loading"  // Card not chosen yet
	PhasePlaying  = "playing"  // Accepting reveals
	PhaseResolved = "resolved" // Card won; Load picks the next one
)

// BlockSize is the side of one block in board units.
const BlockSize = 80

var errMissingDeps = errors.New("cardreveal: points, progress and rewards are required")

// Game is a Card-Reveal session.
type Game struct {
	deps       registry.Deps
	rows, cols int
	logger     *log.Logger

	mu          sync.Mutex
	ctx         context.Context
	revealed    [progress.RevealBlocks]bool
	cursor      int
	phase       string
	card        string
	needNewCard bool
	wonCard     string
	outOfPoints bool
}

// New creates a Card-Reveal session. Call Load before stepping it.
func New(deps registry.Deps) *Game {
	cfg := deps.Config.CardReveal
	if cfg.Rows*cfg.Cols != progress.RevealBlocks || cfg.Rows <= 0 {
		cfg = config.DefaultCardRevealConfig()
	}
	if deps.Notifier == nil {
		deps.Notifier = core.NopNotifier{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Game{
		deps:   deps,
		rows:   cfg.Rows,
		cols:   cfg.Cols,
		logger: logger.With("game", core.GameCardReveal),
		ctx:    context.Background(),
		phase:  PhaseLoading,
	}
}

// Kind returns core.GameCardReveal.
func (g *Game) Kind() core.GameKind {
	return core.GameCardReveal
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// BoardSize returns the block grid size in board units.
func (g *Game) BoardSize() (float64, float64) {
	return float64(g.cols * BlockSize), float64(g.rows * BlockSize)
}

// Load restores the partly revealed card or picks a new one.
func (g *Game) Load(ctx context.Context, rc core.RuntimeConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deps.Points == nil || g.deps.Progress == nil || g.deps.Rewards == nil {
		return errMissingDeps
	}
	if err := g.deps.Rewards.Validate(g.deps.Category); err != nil {
		g.logger.Warn("cannot start", "category", g.deps.Category, "error", err)
		return fmt.Errorf("cardreveal: %w", err)
	}

	g.ctx = ctx
	g.cursor = 0
	g.wonCard = ""
	g.outOfPoints = false
	g.phase = PhaseLoading

	if p, ok := g.deps.Progress.LoadCardReveal(ctx); ok {
		g.revealed = p.Revealed
		g.card = p.CurrentCard
		g.needNewCard = p.NeedNewCard
		g.logger.Debug("restored progress", "revealed", p.RevealedCount())
	} else {
		g.revealed = [progress.RevealBlocks]bool{}
		g.card = ""
		g.needNewCard = true
	}

	if g.needNewCard || g.card == "" || g.count() == progress.RevealBlocks {
		card, err := g.deps.Rewards.Pick(g.deps.Category)
		if err != nil {
			return fmt.Errorf("cardreveal: %w", err)
		}
		g.card = card
		g.revealed = [progress.RevealBlocks]bool{}
		g.needNewCard = false
		g.save()
	}

	g.phase = PhasePlaying
	g.deps.Notifier.ProgressChanged(core.GameCardReveal, g.percent())
	g.logger.Info("session loaded", "card", g.card, "revealed", g.count())
	return nil
}

// Step applies one frame of input. Card-Reveal has no motion, so dt is unused.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return core.StepResult{State: g.state()}
	}

	g.moveCursor(in)
	if in.Pointer != nil {
		if i := g.blockAt(in.Pointer.Pos); i >= 0 {
			g.cursor = i
			if in.Pointer.Down {
				g.reveal(i)
			}
		}
	}
	if in.Has(core.ActionFire) || in.Has(core.ActionConfirm) {
		g.reveal(g.cursor)
	}

	return core.StepResult{State: g.state()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	row, col := g.cursor/g.cols, g.cursor%g.cols
	if in.Has(core.ActionLeft) {
		col--
	}
	if in.Has(core.ActionRight) {
		col++
	}
	if in.Has(core.ActionUp) {
		row--
	}
	if in.Has(core.ActionDown) {
		row++
	}
	row = core.Clamp(row, 0, g.rows-1)
	col = core.Clamp(col, 0, g.cols-1)
	g.cursor = row*g.cols + col
}

// blockAt returns the block under a board point, or -1.
func (g *Game) blockAt(p core.Vec) int {
	w, h := g.BoardSize()
	if !p.Finite() || p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return -1
	}
	return int(p.Y/BlockSize)*g.cols + int(p.X/BlockSize)
}

// reveal uncovers block i for one point. Revealed blocks cost nothing.
func (g *Game) reveal(i int) {
	if g.phase != PhasePlaying || g.revealed[i] {
		return
	}

	ok, err := g.deps.Points.Spend(g.ctx)
	if err != nil {
		g.logger.Debug("spend not persisted", "error", err)
	}
	if !ok {
		g.outOfPoints = true
		g.deps.Notifier.OutOfPoints(core.GameCardReveal)
		return
	}
	g.outOfPoints = false

	g.revealed[i] = true
	g.save()
	g.deps.Notifier.ProgressChanged(core.GameCardReveal, g.percent())

	if g.count() == progress.RevealBlocks {
		g.win()
	}
}

// win awards the card. The grid stays uncovered on screen while the saved
// progress starts over.
func (g *Game) win() {
	if err := g.deps.Rewards.Award(g.ctx, core.GameCardReveal, g.deps.Category, g.card); err != nil {
		g.logger.Error("could not record reward", "card", g.card, "error", err)
	}
	g.wonCard = g.card
	g.needNewCard = true

	err := g.deps.Progress.SaveCardReveal(g.ctx, progress.CardReveal{CurrentCard: g.card, NeedNewCard: true})
	if err != nil {
		g.logger.Debug("progress not saved", "error", err)
	}
	g.deps.Notifier.ProgressChanged(core.GameCardReveal, 0)
	g.phase = PhaseResolved
}

func (g *Game) save() {
	err := g.deps.Progress.SaveCardReveal(g.ctx, progress.CardReveal{
		Revealed:    g.revealed,
		CurrentCard: g.card,
		NeedNewCard: g.needNewCard,
	})
	if err != nil {
		g.logger.Debug("progress not saved", "error", err)
	}
}

func (g *Game) count() int {
	n := 0
	for _, r := range g.revealed {
		if r {
			n++
		}
	}
	return n
}

func (g *Game) percent() float64 {
	return g.fraction() * 100
}

func (g *Game) fraction() float64 {
	if g.needNewCard {
		return 0
	}
	return float64(g.count()) / progress.RevealBlocks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() core.GameState {
	s := core.GameState{
		Phase:    g.phase,
		Progress: g.fraction(),
		Card:     g.card,
		WonCard:  g.wonCard,
		Resolved: g.phase == PhaseResolved,
	}
	if g.deps.Points != nil {
		s.Points = g.deps.Points.Balance()
	}
	return s
}

// Register the game with the registry
func init() {
	registry.Register(core.GameCardReveal, Title, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
