package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/games/plinko"
	"github.com/vovakirdan/cardquest/internal/profile"
	"github.com/vovakirdan/cardquest/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testProfile(t *testing.T, bridge *Bridge) *profile.Profile {
	t.Helper()
	opts := profile.Options{
		KV: storage.NewMemory(),
		Config: config.Set{Catalog: config.CatalogConfig{Categories: map[string][]string{
			"animals": {"cat.png", "dog.png"},
			"food":    {"jam.png"},
		}}},
		Category: "animals",
		Seed:     1,
	}
	if bridge != nil {
		opts.Notifier = bridge
	}
	p, err := profile.Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("profile.Open() failed: %v", err)
	}
	return p
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"r", runeKey('r'), core.ActionReload, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}

	frame := core.NewInputFrame()
	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame) || !frame.Has(core.ActionFire) {
		t.Error("space should set Fire without quitting")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionAlbum},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapMouse(t *testing.T) {
	// 400x600 board on 80x24: 19 rows, 25 cols, centered from x=27.
	vp := core.BoardLayout(400, 600, 80, 24)

	press := tea.MouseMsg{X: vp.X0 + vp.Cols/2, Y: vp.Y0 + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	pos, down, ok := MapMouse(press, 400, 600, 80, 24)
	if !ok || !down {
		t.Fatalf("MapMouse(press) = (%v, %v, %v), expected a press inside the board", pos, down, ok)
	}
	if pos != vp.FromCell(press.X, press.Y) {
		t.Errorf("pos = %+v, expected %+v", pos, vp.FromCell(press.X, press.Y))
	}

	move := tea.MouseMsg{X: vp.X0, Y: vp.Y0, Action: tea.MouseActionMotion}
	if _, down, ok := MapMouse(move, 400, 600, 80, 24); !ok || down {
		t.Errorf("motion should map without a press, got down=%v ok=%v", down, ok)
	}

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if _, _, ok := MapMouse(outside, 400, 600, 80, 24); ok {
		t.Error("a click on the HUD should not reach the board")
	}
}

func TestFitBoardHeight(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect float64
	}{
		{"wide terminal clamps to the minimum", 80, 24, 600},
		{"tall terminal clamps to the maximum", 40, 60, 1000},
		{"no room", 2, 2, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitBoardHeight(400, tt.w, tt.h); got != tt.expect {
				t.Errorf("fitBoardHeight(400, %d, %d) = %v, expected %v", tt.w, tt.h, got, tt.expect)
			}
		})
	}

	// 60x50 leaves 58x45 cells: 400*45*2/58.
	got := fitBoardHeight(400, 60, 50)
	if want := 400.0 * 45 * core.CellAspect / 58; got != want {
		t.Errorf("fitBoardHeight(400, 60, 50) = %v, expected %v", got, want)
	}
}

func TestBridge(t *testing.T) {
	b := NewBridge()
	b.CardWon(core.GamePlinko, "animals", "cat.png")
	b.OutOfPoints(core.GameBubblePop)
	b.PointsChanged(3)

	got := b.Drain()
	if len(got) != 3 || got[0].Card != "cat.png" || got[1].Kind != core.SignalOutOfPoints || got[2].Balance != 3 {
		t.Fatalf("Drain() = %+v", got)
	}
	if len(b.Drain()) != 0 {
		t.Error("second Drain() should be empty")
	}

	// A full bridge drops instead of blocking.
	for i := 0; i < bridgeBuffer*2; i++ {
		b.ProgressChanged(core.GamePlinko, float64(i))
	}
	if n := len(b.Drain()); n != bridgeBuffer {
		t.Errorf("Drain() after overflow = %d signals, expected %d", n, bridgeBuffer)
	}

	// Card wins survive a bridge already full of progress updates.
	for i := 0; i < bridgeBuffer; i++ {
		b.ProgressChanged(core.GamePlinko, float64(i))
	}
	b.CardWon(core.GamePlinko, "animals", "owl.png")
	b.OutOfPoints(core.GamePlinko)
	b.PointsChanged(9)
	got = b.Drain()
	if len(got) != bridgeBuffer {
		t.Fatalf("Drain() = %d signals, expected %d", len(got), bridgeBuffer)
	}
	if got[0].Percent != 2 {
		t.Errorf("first signal = %+v, expected the oldest progress updates evicted", got[0])
	}
	if last := got[len(got)-2:]; last[0].Card != "owl.png" || last[1].Kind != core.SignalOutOfPoints {
		t.Errorf("tail = %+v, expected card_won then out_of_points", last)
	}
	for _, s := range got {
		if s.Kind == core.SignalPoints {
			t.Error("points update should be dropped from a full bridge")
		}
	}

	if text, ok := toastFor(core.Signal{Kind: core.SignalCardWon, Card: "owl.png"}); !ok || !strings.Contains(text, "owl") {
		t.Errorf("toastFor(card_won) = %q, %v", text, ok)
	}
	if _, ok := toastFor(core.Signal{Kind: core.SignalProgress}); ok {
		t.Error("progress signals should not raise a toast")
	}
}

func TestRenderScreenWithToast(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawText(0, 1, "abcdefghijklmnopqrst")

	out := RenderScreenWithToast(s, 1, "hi")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], " hi ") || !strings.Contains(lines[1], "abcdefg") {
		t.Errorf("toast row = %q", lines[1])
	}

	if plain := RenderScreen(s); strings.Contains(plain, " hi ") {
		t.Error("RenderScreen should not draw a toast")
	}
}

func TestMenuNavigation(t *testing.T) {
	p := testProfile(t, nil)
	m := NewMenuModel(p, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	if last := m.items[len(m.items)-1]; !last.Album {
		t.Fatalf("last menu item = %+v, expected the album", last)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving up from the top", m.cursor)
	}

	for range m.items {
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = model.(MenuModel)
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected clamp at %d", m.cursor, len(m.items)-1)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)
	if sel := m.Selected(); sel == nil || !sel.Album {
		t.Errorf("Selected() = %+v, expected the album", sel)
	}

	view := m.View()
	if !strings.Contains(view, "Points: 0") || !strings.Contains(view, "animals") {
		t.Errorf("menu view is missing the profile summary:\n%s", view)
	}
}

func TestAlbum(t *testing.T) {
	ctx := context.Background()
	p := testProfile(t, nil)
	if err := p.Rewards.Award(ctx, core.GamePlinko, "animals", "dog.png"); err != nil {
		t.Fatal(err)
	}

	recent := []storage.CardWin{{Card: "dog.png", Game: "plinko"}}
	m := NewAlbumModel(p, recent, 100, 30)
	if m.album.Category != "animals" || m.album.Won != 1 || len(m.table.Rows()) != 2 {
		t.Fatalf("album = %+v with %d rows", m.album, len(m.table.Rows()))
	}

	view := m.View()
	for _, want := range []string{"CARD ALBUM - animals  (1/2)", "★ won", "locked", "Recent wins", "dog (plinko)"} {
		if !strings.Contains(view, want) {
			t.Errorf("album view is missing %q", want)
		}
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(AlbumModel)
	if m.album.Category != "food" || len(m.table.Rows()) != 1 {
		t.Errorf("after tab: album = %+v", m.album)
	}

	model, _ = m.Update(runeKey('b'))
	m = model.(AlbumModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}
}

func TestGameModelLifecycle(t *testing.T) {
	bridge := NewBridge()
	p := testProfile(t, bridge)
	if _, err := p.Points.Add(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	bridge.Drain()

	game := plinko.New(p.Deps())
	m := NewGameModel(context.Background(), game, bridge, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 120, Seed: 1}, nil)

	model, _ := m.Update(m.loadCmd()())
	m = model.(GameModel)
	if m.loadErr != nil || m.loading {
		t.Fatalf("load: err=%v loading=%v", m.loadErr, m.loading)
	}
	if !m.runner.Running() {
		t.Fatal("runner should start after a successful load")
	}
	if w, h := game.BoardSize(); w != 400 || h != 600 {
		t.Errorf("BoardSize() = %vx%v, expected the board fitted to 400x600", w, h)
	}
	if view := m.View(); !strings.Contains(view, plinko.Title) {
		t.Error("game view should show the title")
	}

	model, _ = m.Update(runeKey('b'))
	m = model.(GameModel)
	if !m.BackToMenu() || m.runner.Running() {
		t.Error("back should stop the runner and return to the menu")
	}
}

func TestGameModelLoadError(t *testing.T) {
	p := testProfile(t, nil)
	deps := p.Deps()
	deps.Category = "planets"

	game := plinko.New(deps)
	m := NewGameModel(context.Background(), game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)

	model, _ := m.Update(m.loadCmd()())
	m = model.(GameModel)
	if m.loadErr == nil || m.runner.Running() {
		t.Fatal("an unknown category must block the game")
	}
	if view := m.View(); !strings.Contains(view, "Cannot start") {
		t.Error("load error should be shown")
	}

	// Input is ignored while blocked.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(GameModel)
	if p.Points.Balance() != 0 {
		t.Error("blocked game must not spend")
	}
}

func TestSessionAlbumRoundTrip(t *testing.T) {
	p := testProfile(t, nil)
	s := NewSessionModel(SessionConfig{Profile: p, Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30}})

	model, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = model.(SessionModel)
	if s.album == nil {
		t.Fatal("tab should open the album")
	}
	if !strings.Contains(s.View(), "CARD ALBUM") {
		t.Error("session should render the album")
	}

	model, _ = s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	s = model.(SessionModel)
	if s.album != nil || s.quitting {
		t.Error("esc should return to the menu")
	}
	if !strings.Contains(s.View(), "C A R D") {
		t.Error("session should render the menu again")
	}
}

func TestSessionStartsAndLeavesGame(t *testing.T) {
	bridge := NewBridge()
	p := testProfile(t, bridge)
	s := NewSessionModel(SessionConfig{
		Profile: p,
		Bridge:  bridge,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 120, Seed: 1},
	})

	// The first menu entry is the first registered game.
	model, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = model.(SessionModel)
	if s.game == nil {
		t.Fatal("enter should start a game")
	}
	defer s.Close()

	model, _ = s.Update(s.game.loadCmd()())
	s = model.(SessionModel)
	if !s.game.runner.Running() {
		t.Fatal("game should be running after load")
	}

	model, _ = s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	s = model.(SessionModel)
	if s.game != nil || s.quitting {
		t.Error("esc should leave the game for the menu")
	}
}
