package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-candy/internal/core"
)

// cellColor is how one core.Color looks in the terminal. Bright colours are
// bold so selected and hinted candies stay visible on 16-colour terminals.
type cellColor struct {
	fg   string
	bold bool
}

var cellColors = map[core.Color]cellColor{
	core.ColorRed:           {fg: "1"},
	core.ColorGreen:         {fg: "2"},
	core.ColorYellow:        {fg: "3"},
	core.ColorBlue:          {fg: "4"},
	core.ColorMagenta:       {fg: "5"},
	core.ColorCyan:          {fg: "6"},
	core.ColorWhite:         {fg: "7"},
	core.ColorBrightRed:     {fg: "9", bold: true},
	core.ColorBrightGreen:   {fg: "10", bold: true},
	core.ColorBrightYellow:  {fg: "11", bold: true},
	core.ColorBrightBlue:    {fg: "12", bold: true},
	core.ColorBrightMagenta: {fg: "13", bold: true},
	core.ColorBrightCyan:    {fg: "14", bold: true},
	core.ColorBrightWhite:   {fg: "15", bold: true},
	core.ColorOrange:        {fg: "208"},
	core.ColorGray:          {fg: "245"},
	core.ColorPink:          {fg: "213"},
	core.ColorPurple:        {fg: "135"},
}

var cellStyles = buildCellStyles()

func buildCellStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(cellColors)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, cc := range cellColors {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(cc.fg)).Bold(cc.bold)
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := cellStyles[c]; ok {
		return s
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen draws the screen buffer as styled text, one line per row.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = renderRow(s, y)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles each run of equally coloured cells in row y once.
func renderRow(s *core.Screen, y int) string {
	var sb strings.Builder
	run := make([]rune, 0, s.Width())
	cur := core.ColorDefault

	flush := func() {
		if len(run) > 0 {
			sb.WriteString(styleFor(cur).Render(string(run)))
			run = run[:0]
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != cur {
			flush()
			cur = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
	return sb.String()
}
