// Package bubblepop implements the Bubble-Pop unlock game: shoot balls at a
// grid of bubbles, one point per shot, and clear every visible bubble to win
// the current reward card.
package bubblepop

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/physics"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/registry"
)

// Title is the display name of the game.
const Title = "Bubble Pop"

// Session phases
const (
	PhaseLoading  = "loading"  // Board not built yet
	PhasePlaying  = "playing"  // Accepting shots
	PhaseEnding   = "ending"   // Last bubble cleared, reward in progress
	PhaseResolved = "resolved" // Card won; Load picks the next one
)

var errMissingDeps = errors.New("bubblepop: points, progress and rewards are required")

// Game is a Bubble-Pop session.
type Game struct {
	deps   registry.Deps
	cfg    config.BubblePopConfig
	logger *log.Logger

	mu          sync.Mutex
	ctx         context.Context
	rng         *rand.Rand
	stepper     *physics.Stepper
	board       Board
	shapes      []core.Shape
	balls       []*physics.Ball
	shooter     core.Vec
	angle       float64 // Radians from straight up, clockwise
	phase       string
	cleared     int
	card        string
	needNewCard bool
	wonCard     string
	outOfPoints bool // Last shot was refused
}

// New creates a Bubble-Pop session. Call Load before stepping it.
func New(deps registry.Deps) *Game {
	cfg := deps.Config.BubblePop
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 || cfg.Bubbles.Cols <= 0 {
		cfg = config.DefaultBubblePopConfig()
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
		cfg:    cfg,
		logger: logger.With("game", core.GameBubblePop),
		ctx:    context.Background(),
		phase:  PhaseLoading,
	}
}

// Kind returns core.GameBubblePop.
func (g *Game) Kind() core.GameKind {
	return core.GameBubblePop
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// BoardSize returns the board dimensions in board units.
func (g *Game) BoardSize() (float64, float64) {
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Load restores the saved board or generates a fresh one, and picks a new
// card when the last one was won. ctx is kept for the persistence done by
// later steps.
func (g *Game) Load(ctx context.Context, rc core.RuntimeConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deps.Points == nil || g.deps.Progress == nil || g.deps.Rewards == nil {
		return errMissingDeps
	}
	if err := g.deps.Rewards.Validate(g.deps.Category); err != nil {
		g.logger.Warn("cannot start", "category", g.deps.Category, "error", err)
		return fmt.Errorf("bubblepop: %w", err)
	}

	g.ctx = ctx
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	w, h, pad := g.cfg.Board.Width, g.cfg.Board.Height, g.cfg.Board.Padding
	g.stepper = physics.NewStepper(physics.Params{
		Bounds:    core.NewRect(pad, pad, w-2*pad, h-pad),
		ExitInset: g.cfg.Ball.Radius,
	}, nil)
	g.shooter = core.V(w/2, h-g.cfg.Shooter.BottomOffset)
	g.angle = 0
	g.balls = nil
	g.wonCard = ""
	g.outOfPoints = false
	g.phase = PhaseLoading

	if p, ok := g.deps.Progress.LoadBubblePop(ctx); ok && len(p.Bubbles) > 0 {
		g.board = boardFromProgress(p, g.cfg.Bubbles.Size/2)
		g.cleared = min(p.Cleared, g.board.TotalVisible)
		g.card = p.CurrentCard
		g.needNewCard = p.NeedNewCard
		g.logger.Debug("restored progress", "cleared", g.cleared, "total", g.board.TotalVisible)
	} else {
		g.board = NewBoard(g.cfg, g.rng)
		g.cleared = 0
		g.card = ""
		g.needNewCard = true
	}

	if g.needNewCard || g.card == "" {
		card, err := g.deps.Rewards.Pick(g.deps.Category)
		if err != nil {
			return fmt.Errorf("bubblepop: %w", err)
		}
		g.card = card
		if g.needNewCard {
			g.board = NewBoard(g.cfg, g.rng)
			g.cleared = 0
			g.needNewCard = false
		}
	}
	g.shapes = g.board.Shapes()
	g.phase = PhasePlaying

	// A restored board with nothing left to clear is paid out before any shot.
	if g.board.TotalVisible > 0 && g.cleared >= g.board.TotalVisible {
		g.logger.Info("restored progress already won", "card", g.card, "cleared", g.cleared)
		g.win()
		return nil
	}

	g.save()
	g.deps.Notifier.ProgressChanged(core.GameBubblePop, g.percent())
	g.logger.Info("session loaded", "card", g.card, "visible", g.board.Visible())
	return nil
}

// Step advances the session by dt frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return core.StepResult{State: g.state()}
	}

	g.aim(in)
	if in.Has(core.ActionFire) || (in.Pointer != nil && in.Pointer.Down) {
		g.shoot()
	}
	g.advance(dt)

	return core.StepResult{State: g.state()}
}

// aim turns the shooter toward the pointer, or by a fixed step per key.
func (g *Game) aim(in core.InputFrame) {
	step, limit := g.cfg.Shooter.TurnStep, g.cfg.Shooter.MaxAngle
	if in.Pointer != nil && in.Pointer.Pos != g.shooter {
		if a := g.shooter.AngleTo(in.Pointer.Pos); !math.IsNaN(a) {
			g.angle = core.ClampF(a, -limit, limit)
		}
	}

	if in.Has(core.ActionLeft) {
		g.angle = max(g.angle-step, -limit)
	}
	if in.Has(core.ActionRight) {
		g.angle = min(g.angle+step, limit)
	}
}

// shoot spends a point and spawns a ball at the shooter's tip.
func (g *Game) shoot() {
	ok, err := g.deps.Points.Spend(g.ctx)
	if err != nil {
		g.logger.Debug("spend not persisted", "error", err)
	}
	if !ok {
		g.outOfPoints = true
		g.deps.Notifier.OutOfPoints(core.GameBubblePop)
		return
	}
	g.outOfPoints = false

	dir := core.FromAngle(g.angle)
	pos := g.shooter.Add(dir.Scale(g.cfg.Shooter.Size + g.cfg.Ball.Radius))
	g.balls = append(g.balls, physics.NewBall(pos, dir.Scale(g.cfg.Shooter.Speed), g.cfg.Ball.Radius))
}

// advance moves every ball, then clears the bubbles they touch.
func (g *Game) advance(dt float64) {
	live := g.balls[:0]
	for _, b := range g.balls {
		res := g.stepper.Advance(b, dt, g.shapes)
		if res.Stalled {
			b.Active = false
		}
		if b.Active {
			live = append(live, b)
		}
	}
	g.balls = live

	hit := false
scan:
	for _, b := range g.balls {
		ball := b.Circle()
		for i := range g.board.Targets {
			t := &g.board.Targets[i]
			if !t.Visible || !ball.Overlaps(t.Circle) {
				continue
			}
			t.Visible = false
			g.cleared++
			hit = true

			if g.cleared >= g.board.TotalVisible {
				g.win()
				break scan
			}
		}
	}

	if hit && g.phase == PhasePlaying {
		g.deps.Notifier.ProgressChanged(core.GameBubblePop, g.percent())
		g.save()
	}
}

// win awards the current card once and resets progress for the next one.
func (g *Game) win() {
	if g.phase != PhasePlaying {
		return
	}
	g.phase = PhaseEnding

	if err := g.deps.Rewards.Award(g.ctx, core.GameBubblePop, g.deps.Category, g.card); err != nil {
		g.logger.Error("could not record reward", "card", g.card, "error", err)
	}
	g.wonCard = g.card
	g.cleared = 0
	g.needNewCard = true
	g.balls = nil
	g.save()

	g.deps.Notifier.ProgressChanged(core.GameBubblePop, 0)
	g.phase = PhaseResolved
}

func (g *Game) save() {
	bubbles, obstacles := g.board.progressBubbles()
	err := g.deps.Progress.SaveBubblePop(g.ctx, progress.BubblePop{
		Cleared:      g.cleared,
		TotalVisible: g.board.TotalVisible,
		CurrentCard:  g.card,
		NeedNewCard:  g.needNewCard,
		Bubbles:      bubbles,
		Obstacles:    obstacles,
	})
	if err != nil {
		g.logger.Debug("progress not saved", "error", err)
	}
}

func (g *Game) percent() float64 {
	return g.fraction() * 100
}

func (g *Game) fraction() float64 {
	if g.board.TotalVisible <= 0 {
		return 0
	}
	return float64(g.cleared) / float64(g.board.TotalVisible)
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
		Busy:     len(g.balls) > 0,
		Resolved: g.phase == PhaseResolved,
	}
	if g.deps.Points != nil {
		s.Points = g.deps.Points.Balance()
	}
	return s
}

// Register the game with the registry
func init() {
	registry.Register(core.GameBubblePop, Title, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
