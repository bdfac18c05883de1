package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/profile"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// recentWins is how many wins the album asks for.
const recentWins = 20

// WinLister returns a player's latest card wins, newest first.
type WinLister func(ctx context.Context, limit int) ([]storage.CardWin, error)

// SessionConfig configures a menu session.
type SessionConfig struct {
	Context context.Context // Parent of every game; nil means background
	Profile *profile.Profile
	Bridge  *Bridge // Notifier the profile was opened with
	Wins    WinLister
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// SessionModel manages the full session flow: menu -> game or album -> menu.
type SessionModel struct {
	cfg      SessionConfig
	menu     MenuModel
	game     *GameModel
	album    *AlbumModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	if cfg.Bridge == nil {
		cfg.Bridge = NewBridge()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	return SessionModel{
		cfg:  cfg,
		menu: NewMenuModel(cfg.Profile, cfg.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.album != nil:
		return m.updateAlbum(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.menu.selected = nil

	if selected.Album {
		album := NewAlbumModel(m.cfg.Profile, m.recent(), m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		m.album = &album
		return m, album.Init()
	}

	game, err := m.cfg.Profile.NewGame(selected.Kind)
	if err != nil {
		m.cfg.Logger.Error("cannot create game", "game", selected.Kind, "error", err)
		return m, nil
	}
	m.cfg.Bridge.Drain()
	gm := NewGameModel(m.cfg.Context, game, m.cfg.Bridge, m.cfg.Runtime, m.cfg.Logger)
	m.game = &gm
	m.cfg.Logger.Info("game started", "game", selected.Kind)
	return m, gm.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.cfg.Logger.Info("game left", "game", m.game.Game().Kind())
		m.game = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateAlbum handles updates when the album is open.
func (m SessionModel) updateAlbum(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.album.Update(msg)
	if albumModel, ok := newModel.(AlbumModel); ok {
		m.album = &albumModel
	}

	if m.album.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.album.IsGoingBack() {
		m.album = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// freshMenu rebuilds the menu, keeping the cursor.
func (m SessionModel) freshMenu() MenuModel {
	menu := NewMenuModel(m.cfg.Profile, m.cfg.Runtime)
	menu.cursor = min(m.menu.cursor, len(menu.items)-1)
	return menu
}

func (m SessionModel) recent() []storage.CardWin {
	if m.cfg.Wins == nil {
		return nil
	}
	wins, err := m.cfg.Wins(context.Background(), recentWins)
	if err != nil {
		m.cfg.Logger.Warn("cannot read recent wins", "error", err)
		return nil
	}
	return wins
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.game != nil:
		return m.game.View()
	case m.album != nil:
		return m.album.View()
	}
	return m.menu.View()
}

// Close stops a game left running when the program ends.
func (m SessionModel) Close() {
	if m.game != nil {
		m.game.stop()
	}
}

// RunSession runs the menu session in the local terminal.
func RunSession(cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(cfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Close()
	}
	return err
}
