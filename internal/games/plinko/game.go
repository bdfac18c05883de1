// Package plinko implements the Plinko unlock game: drop a ball through a
// peg board, one point per drop, and collect lane values until the reward
// card is won.
package plinko

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
const Title = "Plinko"

// Session phases
const (
	PhaseLoading  = "loading"  // Board not built yet
	PhaseIdle     = "idle"     // Waiting for a drop
	PhaseDropping = "dropping" // One ball in flight
	PhaseResolved = "resolved" // Card won; Load picks the next one
)

var errMissingDeps = errors.New("plinko: points, progress and rewards are required")

// Game is a Plinko session.
type Game struct {
	deps   registry.Deps
	cfg    config.PlinkoConfig
	logger *log.Logger

	mu          sync.Mutex
	ctx         context.Context
	rng         *rand.Rand
	stepper     *physics.Stepper
	layout      Layout
	shapes      []core.Shape
	ball        *physics.Ball
	dropX       float64 // Drop cursor
	elapsed     float64 // Frames the current ball has been falling
	phase       string
	fill        int
	card        string
	needNewCard bool
	wonCard     string
	lastValue   int  // Value of the last lane landed in, 0 before any drop
	lastLane    int  // Index of the last lane landed in, -1 before any drop
	outOfPoints bool // Last drop was refused
}

// New creates a Plinko session. Call Load before stepping it.
func New(deps registry.Deps) *Game {
	cfg := deps.Config.Plinko
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 || len(cfg.LaneValues) == 0 {
		cfg = config.DefaultPlinkoConfig()
	}
	if deps.Notifier == nil {
		deps.Notifier = core.NopNotifier{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	g := &Game{
		deps:     deps,
		cfg:      cfg,
		logger:   logger.With("game", core.GamePlinko),
		ctx:      context.Background(),
		phase:    PhaseLoading,
		lastLane: -1,
	}
	g.relayout(cfg.Board.Width, cfg.Board.Height)
	return g
}

// Kind returns core.GamePlinko.
func (g *Game) Kind() core.GameKind {
	return core.GamePlinko
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// BoardSize returns the current board dimensions.
func (g *Game) BoardSize() (float64, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.layout.Width, g.layout.Height
}

// Resize refits pegs and lanes to a new board size. A ball in flight is
// pulled back inside the new walls. Degenerate sizes are ignored.
func (g *Game) Resize(w, h float64) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.relayout(w, h)
	if g.ball != nil {
		g.ball.Pos = core.ContainPoint(g.ball.Pos, g.ball.R, g.stepper.Params.Bounds)
	}
	g.dropX = g.clampDrop(g.dropX)
}

func (g *Game) relayout(w, h float64) {
	g.layout = NewLayout(g.cfg, w, h)
	g.shapes = g.layout.Shapes()

	p := g.cfg.Physics
	params := physics.Params{
		Gravity:         p.Gravity,
		WallDamping:     p.WallDamping,
		ObstacleDamping: p.PegDamping,
		Jitter:          p.Jitter,
		ExitInset:       p.ExitInset,
		Bounds:          core.NewRect(0, 0, w, h),
	}
	if g.stepper == nil {
		g.stepper = physics.NewStepper(params, g.rng)
	} else {
		g.stepper.Params = params
	}
}

// Load restores saved progress and picks a new card when the last one was
// won. rc.BoardW and rc.BoardH, when set, replace the default board size.
func (g *Game) Load(ctx context.Context, rc core.RuntimeConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deps.Points == nil || g.deps.Progress == nil || g.deps.Rewards == nil {
		return errMissingDeps
	}
	if err := g.deps.Rewards.Validate(g.deps.Category); err != nil {
		g.logger.Warn("cannot start", "category", g.deps.Category, "error", err)
		return fmt.Errorf("plinko: %w", err)
	}

	g.ctx = ctx
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	if rc.BoardW > 0 && rc.BoardH > 0 {
		w, h = rc.BoardW, rc.BoardH
	}
	g.stepper = nil
	g.relayout(w, h)

	g.ball = nil
	g.elapsed = 0
	g.dropX = w / 2
	g.wonCard = ""
	g.lastLane, g.lastValue = -1, 0
	g.outOfPoints = false
	g.phase = PhaseLoading

	if p, ok := g.deps.Progress.LoadPlinko(ctx); ok {
		g.fill = p.Fill
		g.card = p.CurrentCard
		g.needNewCard = p.NeedNewCard
		g.logger.Debug("restored progress", "fill", g.fill)
	} else {
		g.fill = 0
		g.card = ""
		g.needNewCard = true
	}

	if g.needNewCard || g.card == "" {
		card, err := g.deps.Rewards.Pick(g.deps.Category)
		if err != nil {
			return fmt.Errorf("plinko: %w", err)
		}
		if g.needNewCard {
			g.fill = 0
		}
		g.card = card
		g.needNewCard = false
		g.save()
	}

	// A restored fill already at the threshold is paid out before any drop.
	if g.fill >= g.cfg.Threshold {
		g.logger.Info("restored progress already won", "card", g.card, "fill", g.fill)
		g.win()
		return nil
	}

	g.phase = PhaseIdle
	g.deps.Notifier.ProgressChanged(core.GamePlinko, g.percent())
	g.logger.Info("session loaded", "card", g.card, "fill", g.fill)
	return nil
}

// Step advances the session by dt frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case PhaseIdle:
		g.moveCursor(in)
		if in.Has(core.ActionFire) || (in.Pointer != nil && in.Pointer.Down) {
			g.drop()
		}
	case PhaseDropping:
		g.advance(dt)
	}

	return core.StepResult{State: g.state()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	if in.Pointer != nil && !math.IsNaN(in.Pointer.Pos.X) {
		g.dropX = in.Pointer.Pos.X
	}
	if in.Has(core.ActionLeft) {
		g.dropX -= g.cfg.CursorStep
	}
	if in.Has(core.ActionRight) {
		g.dropX += g.cfg.CursorStep
	}
	g.dropX = g.clampDrop(g.dropX)
}

// clampDrop keeps a drop position inside the walls.
func (g *Game) clampDrop(x float64) float64 {
	r := g.cfg.Ball.Radius
	w := g.layout.Width
	if w < 2*r {
		return w / 2
	}
	return core.ClampF(x, r, w-r)
}

// drop spends a point and releases a ball at the cursor.
func (g *Game) drop() {
	ok, err := g.deps.Points.Spend(g.ctx)
	if err != nil {
		g.logger.Debug("spend not persisted", "error", err)
	}
	if !ok {
		g.outOfPoints = true
		g.deps.Notifier.OutOfPoints(core.GamePlinko)
		return
	}
	g.outOfPoints = false

	r := g.cfg.Ball.Radius
	g.ball = physics.NewBall(core.V(g.dropX, r), core.Vec{}, r)
	g.elapsed = 0
	g.phase = PhaseDropping
}

// advance steps the ball. A ball that stalls or outlives the frame budget is
// treated as exiting where it is.
func (g *Game) advance(dt float64) {
	res := g.stepper.Advance(g.ball, dt, g.shapes)
	if !math.IsNaN(dt) && dt > 0 {
		g.elapsed += dt
	}

	switch {
	case res.Exited:
		g.land(res.ExitX)
	case res.Stalled:
		g.logger.Warn("ball stalled, forcing exit", "x", g.ball.Pos.X)
		g.land(g.ball.Pos.X)
	case g.cfg.MaxDropFrames > 0 && g.elapsed >= float64(g.cfg.MaxDropFrames):
		g.logger.Debug("drop timed out, forcing exit", "x", g.ball.Pos.X, "frames", g.elapsed)
		g.land(g.ball.Pos.X)
	}
}

// land scores the lane under x and checks the win condition.
func (g *Game) land(x float64) {
	lanes := g.layout.Lanes
	g.lastLane = lanes.Index(x)
	g.lastValue = lanes.Value(x)
	g.fill += g.lastValue
	g.ball = nil
	g.phase = PhaseIdle

	g.logger.Debug("ball landed", "lane", g.lastLane, "value", g.lastValue, "fill", g.fill)
	g.save()
	g.deps.Notifier.ProgressChanged(core.GamePlinko, g.percent())

	if g.fill >= g.cfg.Threshold {
		g.win()
	}
}

// win awards the current card and resets progress for the next one.
func (g *Game) win() {
	if err := g.deps.Rewards.Award(g.ctx, core.GamePlinko, g.deps.Category, g.card); err != nil {
		g.logger.Error("could not record reward", "card", g.card, "error", err)
	}
	g.wonCard = g.card
	g.fill = 0
	g.needNewCard = true
	g.save()

	g.deps.Notifier.ProgressChanged(core.GamePlinko, 0)
	g.phase = PhaseResolved
}

func (g *Game) save() {
	err := g.deps.Progress.SavePlinko(g.ctx, progress.Plinko{
		Fill:        g.fill,
		CurrentCard: g.card,
		NeedNewCard: g.needNewCard,
	})
	if err != nil {
		g.logger.Debug("progress not saved", "error", err)
	}
}

func (g *Game) percent() float64 {
	return g.fraction() * 100
}

func (g *Game) fraction() float64 {
	if g.cfg.Threshold <= 0 {
		return 0
	}
	return math.Min(float64(g.fill)/float64(g.cfg.Threshold), 1)
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
		Busy:     g.phase == PhaseDropping,
		Resolved: g.phase == PhaseResolved,
	}
	if g.deps.Points != nil {
		s.Points = g.deps.Points.Balance()
	}
	return s
}

// Register the game with the registry
func init() {
	registry.Register(core.GamePlinko, Title, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
