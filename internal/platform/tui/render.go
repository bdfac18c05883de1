package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardquest/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// toastStyle highlights the transient banner drawn over the board.
var toastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func RenderScreen(s *core.Screen) string {
	return renderRows(s, -1, "")
}

// RenderScreenWithToast is RenderScreen with banner centered on row y.
func RenderScreenWithToast(s *core.Screen, y int, banner string) string {
	return renderRows(s, y, banner)
}

func renderRows(s *core.Screen, toastRow int, banner string) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if y == toastRow && banner != "" {
			writeToastRow(&sb, s, y, banner)
			continue
		}
		writeCells(&sb, s, y, 0, s.Width())
	}
	return sb.String()
}

// writeCells writes cells [from, to) of row y as color runs.
func writeCells(sb *strings.Builder, s *core.Screen, y, from, to int) {
	var run strings.Builder
	x := from
	for x < to {
		color := s.GetCell(x, y).Color
		run.Reset()
		for x < to {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}

		style, ok := colorStyles[color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
}

// writeToastRow replaces the middle of row y with the styled banner.
func writeToastRow(sb *strings.Builder, s *core.Screen, y int, banner string) {
	text := " " + banner + " "
	n := len([]rune(text))
	if n > s.Width() {
		writeCells(sb, s, y, 0, s.Width())
		return
	}
	start := (s.Width() - n) / 2
	writeCells(sb, s, y, 0, start)
	sb.WriteString(toastStyle.Render(text))
	writeCells(sb, s, y, start+n, s.Width())
}
