package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/registry"
)

// toastTicks is how many redraws a banner stays on screen.
const toastTicks = 90

// Board heights the host may ask a resizable game for, as multiples of
// the board width.
const (
	minBoardRatio = 1.5
	maxBoardRatio = 2.5
)

// loadedMsg reports the end of a game Load.
type loadedMsg struct {
	game registry.Game
	err  error
}

// GameModel is the Bubble Tea model for one game session. The game steps
// on its own runner; the model only forwards input and redraws.
type GameModel struct {
	game       registry.Game
	runner     *registry.Runner
	bridge     *Bridge
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	loading    bool
	loadErr    error
	toast      string
	toastLeft  int
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. bridge must be the notifier the
// game's collaborators were built with; it may be nil. Cancelling parent
// stops the game.
func NewGameModel(parent context.Context, game registry.Game, bridge *Bridge, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if bridge == nil {
		bridge = NewBridge()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	return GameModel{
		game:      game,
		runner:    registry.NewRunner(game, cfg.TickRate),
		bridge:    bridge,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		logger:    logger.With("game", game.Kind()),
		ctx:       ctx,
		cancel:    cancel,
		loading:   true,
	}
}

// Init loads the game and starts the redraw ticker.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd(m.config.TickRate))
}

func (m GameModel) loadCmd() tea.Cmd {
	game, ctx, cfg := m.game, m.ctx, m.config
	return func() tea.Msg {
		return loadedMsg{game: game, err: game.Load(ctx, cfg)}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case loadedMsg:
		return m.handleLoaded(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.stop()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionReload:
		if m.loading || !m.game.State().Resolved {
			return m, nil
		}
		m.loading = true
		m.config.Seed = time.Now().UnixNano()
		return m, m.loadCmd()

	case action != core.ActionNone && m.loadErr == nil:
		m.runner.Send(action)
	}

	return m, nil
}

// handleMouse maps pointer cells onto the game board.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	board, ok := m.game.(registry.Board)
	if !ok || m.loadErr != nil || msg.Action == tea.MouseActionRelease {
		return m, nil
	}
	w, h := board.BoardSize()
	if pos, down, inside := MapMouse(msg, w, h, m.screen.Width(), m.screen.Height()); inside {
		m.runner.SendPointer(pos, down)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.fitBoard()
	return m, nil
}

// fitBoard reshapes a resizable board to the terminal.
func (m *GameModel) fitBoard() {
	r, ok := m.game.(registry.Resizer)
	if !ok {
		return
	}
	b, ok := m.game.(registry.Board)
	if !ok {
		return
	}
	w, _ := b.BoardSize()
	h := fitBoardHeight(w, m.screen.Width(), m.screen.Height())
	m.config.BoardW, m.config.BoardH = w, h
	r.Resize(w, h)
}

// fitBoardHeight returns the height whose viewport fills the screen area
// under the HUD for a board w units wide.
func fitBoardHeight(w float64, screenW, screenH int) float64 {
	cols := screenW - 2
	rows := screenH - core.HUDRows - core.FooterRows - 2
	if w <= 0 || cols <= 0 || rows <= 0 {
		return w * minBoardRatio
	}
	h := w * float64(rows) * core.CellAspect / float64(cols)
	return core.ClampF(h, w*minBoardRatio, w*maxBoardRatio)
}

func (m GameModel) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.game != m.game {
		return m, nil
	}
	m.loading = false
	m.loadErr = msg.err
	if msg.err != nil {
		m.logger.Warn("cannot start game", "error", msg.err)
		return m, nil
	}
	m.fitBoard()
	if !m.runner.Running() {
		m.runner.Start(m.ctx)
	}
	return m, nil
}

// handleTick drains game signals and schedules the next redraw.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	for _, s := range m.bridge.Drain() {
		m.logger.Debug("signal", "kind", s.Kind, "card", s.Card, "percent", s.Percent, "balance", s.Balance)
		if text, ok := toastFor(s); ok {
			m.toast = text
			m.toastLeft = toastTicks
		}
	}
	if m.toastLeft > 0 {
		m.toastLeft--
		if m.toastLeft == 0 {
			m.toast = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// stop halts the runner and cancels in-flight persistence.
func (m *GameModel) stop() {
	m.runner.Stop()
	m.cancel()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".cardquest", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.Kind(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.loadErr != nil {
		m.screen.Clear()
		core.DrawMessageBox(m.screen, "Cannot start "+m.game.Title(), m.loadErr.Error())
		core.DrawFooter(m.screen, "B back  Q quit")
		return RenderScreen(m.screen)
	}

	m.game.Render(m.screen)
	if m.toast != "" {
		return RenderScreenWithToast(m.screen, core.HUDRows, m.toast)
	}
	return RenderScreen(m.screen)
}

// Game returns the hosted game.
func (m GameModel) Game() registry.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits or backs out.
func Run(ctx context.Context, game registry.Game, bridge *Bridge, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(ctx, game, bridge, cfg, logger)
	model.exitOnBack = true
	defer model.stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer aim follows the mouse
	)

	_, err := p.Run()
	return err
}
