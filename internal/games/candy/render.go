package candy

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
)

const (
	cellWidth  = 4 // Marker, glyph, marker, gap
	cellHeight = 2 // Candy row plus a spacer row
	hudHeight  = 4 // Title, level, stats, blank
	footerRows = 2 // Status message and key hints
	minWidth   = 44
)

// layout is the screen geometry of the board.
type layout struct {
	frame core.Rect
	ox    int // Screen x of column 0's left marker
	oy    int // Screen y of row 0
}

// layout computes the board position (centered below the HUD).
func (g *Game) layout() layout {
	w := g.board.Cols()*cellWidth + 3
	h := g.board.Rows()*cellHeight + 1
	x := (g.screenW - w) / 2
	y := hudHeight
	return layout{
		frame: core.NewRect(x, y, w, h),
		ox:    x + 2,
		oy:    y + 1,
	}
}

// minScreenSize returns the smallest screen that fits the current level.
func (g *Game) minScreenSize() (int, int) {
	w := g.board.Cols()*cellWidth + 3
	h := hudHeight + g.board.Rows()*cellHeight + 1 + footerRows
	return max(w, minWidth), h
}

// cellAt maps a screen cell to a board position. Clicks anywhere inside a
// cell's area, spacer row included, select that cell.
func (g *Game) cellAt(x, y int) (engine.Pos, bool) {
	l := g.layout()
	dx, dy := x-l.ox, y-l.oy
	if dx < 0 || dy < 0 {
		return engine.Pos{}, false
	}
	p := engine.P(dy/cellHeight, dx/cellWidth)
	if !g.board.InBounds(p.Row, p.Col) {
		return engine.Pos{}, false
	}
	return p, true
}

// screenPos converts a (possibly fractional) board position to the screen
// cell of its glyph.
func (l layout) screenPos(row, col float64) (int, int) {
	x := l.ox + int(math.Round(col*cellWidth)) + 1
	y := l.oy + int(math.Round(row*cellHeight))
	return x, y
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst)
	dst.DrawBox(l.frame, core.ColorMagenta)
	g.renderCandies(dst, l)
	g.renderMarkers(dst, l)
	g.renderFooter(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, level and score lines.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColored(0, "Candy Crush", core.ColorPink)

	levelStr := fmt.Sprintf("Level %d/%d: %s (%s)", g.levelIndex+1, g.catalog.Count(), g.level.Name, g.level.Difficulty)
	dst.DrawTextCentered(1, levelStr)

	statsStr := fmt.Sprintf("Score: %d/%d  Moves: %d  Total: %d", g.score, g.level.ScoreGoal, g.movesLeft, g.total)
	color := core.ColorDefault
	switch {
	case g.score >= g.level.ScoreGoal:
		color = core.ColorBrightGreen
	case g.movesLeft <= 3:
		color = core.ColorBrightRed
	}
	dst.DrawTextCenteredColored(2, statsStr, color)
}

// renderCandies draws every candy, moving the animated ones.
func (g *Game) renderCandies(dst *core.Screen, l layout) {
	flash := g.phase == PhaseClear && g.anim.flashing(g.tick)

	for r := range g.board.Rows() {
		for c := range g.board.Cols() {
			p := engine.P(r, c)
			sprite := g.palette.Sprite(g.board.At(r, c))
			row, col := float64(r), float64(c)

			if sr, sc, ok := g.anim.swapOffset(p); ok {
				row, col = sr, sc
			} else if fr, ok := g.anim.rowOffset(r, c); ok {
				row = fr
			}

			if g.anim.clearing.Contains(p) && flash {
				sprite = Sprite{Glyph: '✦', Color: core.ColorBrightWhite}
			}

			x, y := l.screenPos(row, col)
			if y < l.oy {
				continue // Still above the board
			}
			dst.SetColored(x, y, sprite.Glyph, sprite.Color)
		}
	}
}

// renderMarkers draws the cursor, the selection and the hint brackets.
func (g *Game) renderMarkers(dst *core.Screen, l layout) {
	mark := func(p engine.Pos, left, right rune, color core.Color) {
		x, y := l.screenPos(float64(p.Row), float64(p.Col))
		dst.SetColored(x-1, y, left, color)
		dst.SetColored(x+1, y, right, color)
	}

	if g.hint != nil {
		mark(g.hint.A, '»', '«', core.ColorYellow)
		mark(g.hint.B, '»', '«', core.ColorYellow)
	}
	if g.phase == PhaseIdle && !g.autoPlay {
		mark(g.cursor, '[', ']', core.ColorBrightWhite)
	}
	if g.selected != nil {
		mark(*g.selected, '<', '>', core.ColorBrightYellow)
	}
}

// renderFooter draws the status message and the key hints.
func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.frame.Bottom()

	status := g.message
	color := g.messageColor
	if status == "" && g.autoPlay {
		status = "Auto-play"
		color = core.ColorBrightGreen
	}
	if status != "" {
		dst.DrawTextCenteredColored(y, status, color)
	}

	hints := "Space select  H hint  T auto  X shuffle  R restart  Esc menu"
	if utf8.RuneCountInString(hints) > g.screenW {
		hints = "Spc H T X R Esc"
	}
	dst.DrawTextCenteredColored(g.screenH-1, hints, core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	cx, cy := l.frame.Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, cx, cy, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case g.phase == PhaseLevelCleared:
		next := fmt.Sprintf("Next: Level %d", g.levelIndex+2)
		if lvl, ok := g.catalog.Get(g.levelIndex + 1); ok {
			next = fmt.Sprintf("Next: %s", lvl.Name)
		}
		g.drawOverlay(dst, cx, cy, core.ColorBrightGreen,
			fmt.Sprintf("Level %d complete!", g.levelIndex+1),
			fmt.Sprintf("Total: %d", g.total),
			next)
	case g.phase == PhaseLevelFailed:
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed,
			"Out of moves!",
			fmt.Sprintf("Score: %d/%d", g.score, g.level.ScoreGoal),
			fmt.Sprintf("Enter: retry (+%d moves)", g.cfg.Rules.RetryBonus*g.failedAttempts),
			"Esc: give up")
	case g.phase == PhaseVictory:
		g.drawOverlay(dst, cx, cy, core.ColorBrightYellow,
			"ALL LEVELS COMPLETE!",
			fmt.Sprintf("Total score: %d", g.total),
			"Press R to play again")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}
