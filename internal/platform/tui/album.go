package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/profile"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// Album layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the category sidebar
	sidebarWidth       = 24 // Width of the category sidebar
	recentShown        = 5  // Recent wins listed under the categories
)

// AlbumKeyMap defines the key bindings for the card album.
type AlbumKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextCat  key.Binding
	PrevCat  key.Binding
	ShowHelp key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k AlbumKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCat, k.Back, k.ShowHelp}
}

// FullHelp returns key bindings for the full help view.
func (k AlbumKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextCat, k.PrevCat, k.Left, k.Right},
		{k.Back, k.Quit, k.ShowHelp},
	}
}

// DefaultAlbumKeyMap returns default key bindings.
func DefaultAlbumKeyMap() AlbumKeyMap {
	return AlbumKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev category"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next category"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev category"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// AlbumModel is the Bubble Tea model for the card album: every card of a
// category with the ones already won marked.
type AlbumModel struct {
	profile     *profile.Profile
	categories  []string
	catCursor   int
	album       profile.Album
	albumErr    error
	recent      []storage.CardWin
	table       table.Model
	help        help.Model
	keys        AlbumKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	standalone  bool // Back quits the program
}

// NewAlbumModel creates an album opened on the profile's category. recent
// lists the latest wins, newest first; it may be empty.
func NewAlbumModel(p *profile.Profile, recent []storage.CardWin, width, height int) AlbumModel {
	h := help.New()
	h.ShowAll = false

	m := AlbumModel{
		profile:     p,
		categories:  p.Catalog.Categories(),
		recent:      recent,
		keys:        DefaultAlbumKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, c := range m.categories {
		if c == p.Category() {
			m.catCursor = i
		}
	}

	m.table = m.createTable()
	m.loadAlbum()
	return m
}

// createTable creates a new table sized to the window.
func (m *AlbumModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Card", Width: 16},
		{Title: "Status", Width: 10},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 40 {
		columns[1].Width = min(tableWidth-18, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadAlbum reads the album of the selected category.
func (m *AlbumModel) loadAlbum() {
	category := ""
	if len(m.categories) > 0 {
		category = m.categories[m.catCursor]
	}
	m.album, m.albumErr = m.profile.Album(context.Background(), category)
	m.updateTableRows()
}

// updateTableRows fills the table from the current album.
func (m *AlbumModel) updateTableRows() {
	rows := make([]table.Row, len(m.album.Cards))
	for i, c := range m.album.Cards {
		status := "locked"
		if c.Won {
			status = "★ won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			core.CardName(c.Card),
			status,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *AlbumModel) moveCategory(delta int) {
	if len(m.categories) == 0 {
		return
	}
	n := len(m.categories)
	m.catCursor = ((m.catCursor+delta)%n + n) % n
	m.loadAlbum()
}

// Init initializes the album model.
func (m AlbumModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the album.
func (m AlbumModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextCat), key.Matches(msg, m.keys.Right):
			m.moveCategory(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevCat), key.Matches(msg, m.keys.Left):
			m.moveCategory(-1)
			return m, nil

		case key.Matches(msg, m.keys.ShowHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the album.
func (m AlbumModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("CARD ALBUM - %s  (%d/%d)", m.album.Category, m.album.Won, len(m.album.Cards))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the album with a category sidebar.
func (m AlbumModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Categories\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, c := range m.categories {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.catCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(truncate(cursor+c, sidebarWidth-4)))
		sidebar.WriteString("\n")
	}

	if len(m.recent) > 0 {
		sidebar.WriteString("\nRecent wins\n")
		sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
		sidebar.WriteString("\n")
		for _, w := range m.recent[:min(len(m.recent), recentShown)] {
			line := fmt.Sprintf("%s (%s)", core.CardName(w.Card), w.Game)
			sidebar.WriteString(truncate(line, sidebarWidth-4))
			sidebar.WriteString("\n")
		}
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders category tabs above the table.
func (m AlbumModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		name := truncate(c, 10)
		if i == m.catCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.categories) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.categories[m.catCursor])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an explanation.
func (m AlbumModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.albumErr != nil {
		return emptyStyle.Render("This category cannot be shown:\n" + m.albumErr.Error())
	}
	if len(m.album.Cards) == 0 {
		return emptyStyle.Render("No cards in this category.")
	}
	return m.table.View()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m AlbumModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m AlbumModel) IsQuitting() bool {
	return m.quitting
}

// RunAlbum shows the album on its own.
func RunAlbum(p *profile.Profile, recent []storage.CardWin, width, height int) error {
	model := NewAlbumModel(p, recent, width, height)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
