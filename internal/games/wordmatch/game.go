// Package wordmatch implements the Word-Match game that earns points: a
// word is shown with a row of cards and the player picks the matching one.
package wordmatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/registry"
)

// Title is the display name of the game.
const Title = "Word Match"

// Session phases
const (
	PhaseLoading  = "loading"  // Round not dealt yet
	PhasePlaying  = "playing"  // Accepting picks
	PhaseResolved = "resolved" // Round over; Load deals the next one
)

// Board geometry in board units. The word sits above a row of option tiles.
const (
	OptionW = 100
	OptionH = 100
	WordH   = 60
	TileGap = 6
)

var errMissingDeps = errors.New("wordmatch: points and rewards are required")

// Game is a Word-Match round.
type Game struct {
	deps   registry.Deps
	cfg    config.WordMatchConfig
	logger *log.Logger
	rng    *rand.Rand

	mu      sync.Mutex
	ctx     context.Context
	words   []string // Cards asked this round, in order
	level   int      // Index into words
	options []string // Cards offered for the current word
	missed  []bool   // Options already picked wrongly
	cursor  int
	earned  int // Net points earned this round, never below zero
	last    string
	phase   string
}

// New creates a Word-Match session. Call Load before stepping it.
func New(deps registry.Deps) *Game {
	cfg := deps.Config.WordMatch
	if cfg.Options < 2 || cfg.Words < 1 {
		cfg = config.DefaultWordMatchConfig()
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
		logger: logger.With("game", core.GameWordMatch),
		ctx:    context.Background(),
		phase:  PhaseLoading,
	}
}

// Kind returns core.GameWordMatch.
func (g *Game) Kind() core.GameKind {
	return core.GameWordMatch
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// BoardSize returns the board size in board units.
func (g *Game) BoardSize() (float64, float64) {
	return float64(g.cfg.Options * OptionW), WordH + OptionH
}

// Load deals a fresh round. Rounds are not saved; points already earned
// stay in the ledger.
func (g *Game) Load(ctx context.Context, rc core.RuntimeConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deps.Points == nil || g.deps.Rewards == nil {
		return errMissingDeps
	}
	if err := g.deps.Rewards.Validate(g.deps.Category); err != nil {
		g.logger.Warn("cannot start", "category", g.deps.Category, "error", err)
		return fmt.Errorf("wordmatch: %w", err)
	}

	g.ctx = ctx
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.phase = PhaseLoading

	words, err := g.deps.Rewards.Deal(g.deps.Category, g.cfg.Words)
	if err != nil {
		return fmt.Errorf("wordmatch: %w", err)
	}
	g.words = words
	g.level = 0
	g.earned = 0
	g.last = ""
	if err := g.deal(); err != nil {
		return err
	}

	g.phase = PhasePlaying
	g.deps.Notifier.ProgressChanged(core.GameWordMatch, 0)
	g.logger.Info("round dealt", "words", len(g.words), "options", len(g.options))
	return nil
}

// deal lays out the options for the current word: the word's own card and
// distractors from the same category, in random order.
func (g *Game) deal() error {
	word := g.words[g.level]
	deck, err := g.deps.Rewards.Deal(g.deps.Category, 0)
	if err != nil {
		return fmt.Errorf("wordmatch: %w", err)
	}

	options := []string{word}
	for _, c := range deck {
		if len(options) == g.cfg.Options {
			break
		}
		if c != word {
			options = append(options, c)
		}
	}
	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	g.options = options
	g.missed = make([]bool, len(options))
	g.cursor = 0
	return nil
}

// Step applies one frame of input. Word-Match has no motion, so dt is unused.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return core.StepResult{State: g.state()}
	}

	if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
		g.cursor = max(g.cursor-1, 0)
	}
	if in.Has(core.ActionRight) || in.Has(core.ActionDown) {
		g.cursor = min(g.cursor+1, len(g.options)-1)
	}
	if in.Pointer != nil {
		if i := g.optionAt(in.Pointer.Pos); i >= 0 {
			g.cursor = i
			if in.Pointer.Down {
				g.pick(i)
			}
		}
	}
	if in.Has(core.ActionFire) || in.Has(core.ActionConfirm) {
		g.pick(g.cursor)
	}

	return core.StepResult{State: g.state()}
}

// optionAt returns the option tile under a board point, or -1.
func (g *Game) optionAt(p core.Vec) int {
	w, h := g.BoardSize()
	if !p.Finite() || p.X < 0 || p.X >= w || p.Y < WordH || p.Y >= h {
		return -1
	}
	i := int(p.X / OptionW)
	if i >= len(g.options) {
		return -1
	}
	return i
}

// pick answers the current word with option i. A right answer earns a
// point and moves on. A wrong one takes a point back only while the round
// is ahead, so a round never costs more than it earned.
func (g *Game) pick(i int) {
	if g.phase != PhasePlaying || g.missed[i] {
		return
	}

	word := g.words[g.level]
	if g.options[i] != word {
		g.missed[i] = true
		g.last = "Try again!"
		if g.earned > 0 {
			g.earned--
			g.addPoints(-1)
		}
		g.logger.Debug("wrong pick", "word", word, "picked", g.options[i], "earned", g.earned)
		return
	}

	g.earned++
	g.addPoints(1)
	g.last = fmt.Sprintf("Yes! %s", core.CardName(word))
	g.level++
	g.deps.Notifier.ProgressChanged(core.GameWordMatch, g.percent())

	if g.level >= len(g.words) {
		g.phase = PhaseResolved
		g.logger.Info("round over", "earned", g.earned)
		return
	}
	if err := g.deal(); err != nil {
		g.logger.Error("cannot deal next word", "error", err)
		g.phase = PhaseResolved
	}
}

func (g *Game) addPoints(n int) {
	if _, err := g.deps.Points.Add(g.ctx, n); err != nil {
		g.logger.Debug("points not persisted", "error", err)
	}
}

func (g *Game) percent() float64 {
	return g.fraction() * 100
}

func (g *Game) fraction() float64 {
	if len(g.words) == 0 {
		return 0
	}
	return float64(g.level) / float64(len(g.words))
}

// Earned returns the net points earned this round.
func (g *Game) Earned() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.earned
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
		Resolved: g.phase == PhaseResolved,
	}
	if g.phase == PhasePlaying {
		s.Card = g.words[g.level]
	}
	if g.deps.Points != nil {
		s.Points = g.deps.Points.Balance()
	}
	return s
}

// Register the game with the registry
func init() {
	registry.Register(core.GameWordMatch, Title, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
