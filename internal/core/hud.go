package core

import (
	"fmt"
	"math"
	"path"
	"strings"
)

// Screen rows reserved around a game board.
const (
	HUDRows    = 2 // Title, balance, card and progress
	FooterRows = 1 // Key hints
)

// BoardLayout fits a board between the HUD and the footer, leaving room
// for a one-cell frame on every side.
func BoardLayout(boardW, boardH float64, screenW, screenH int) Viewport {
	return Fit(boardW, boardH, 1, HUDRows+1, screenW-2, screenH-HUDRows-FooterRows-2)
}

// CardName returns the display name of a card id ("cat.png" -> "cat").
func CardName(card string) string {
	return strings.TrimSuffix(card, path.Ext(card))
}

// ProgressBar renders frac (0..1) as a bar of width cells.
func ProgressBar(frac float64, width int) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	frac = ClampF(frac, 0, 1)
	filled := int(math.Round(frac * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

// DrawHUD draws the header shared by every game.
func DrawHUD(dst *Screen, title string, s GameState) {
	dst.DrawTextColored(1, 0, title, ColorTitle)

	pts := fmt.Sprintf("Points: %d", s.Points)
	dst.DrawTextColored(dst.Width()-len(pts)-1, 0, pts, ColorScore)

	card := "?"
	if s.Card != "" {
		card = CardName(s.Card)
	}
	frac := s.Progress
	if math.IsNaN(frac) {
		frac = 0
	}
	frac = ClampF(frac, 0, 1)
	line := fmt.Sprintf("Card: %-10s %s %3.0f%%", card, ProgressBar(frac, 20), frac*100)
	dst.DrawText(1, 1, line)
}

// DrawFooter draws a hint line on the last row.
func DrawFooter(dst *Screen, hint string) {
	dst.DrawTextCentered(dst.Height()-1, hint)
}

// DrawMessageBox draws a centered box with a title and a subtitle.
func DrawMessageBox(dst *Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.FillRect(x, y, w, h, ' ', ColorDefault)
	dst.DrawBox(x, y, w, h)
	dst.DrawTextColored(x+(w-len([]rune(title)))/2, y+1, title, ColorBanner)
	dst.DrawText(x+(w-len([]rune(subtitle)))/2, y+3, subtitle)
}

// DrawTooSmall reports a screen that cannot fit the board.
func DrawTooSmall(dst *Screen, minW, minH int) {
	dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
	dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
}
