package candy

import (
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
)

// animation holds the data the renderer needs for the current phase.
type animation struct {
	progress float64 // 0.0 → 1.0

	// Swap phase: the candies at swap.A and swap.B are already exchanged
	// on the board and slide in from each other's cell.
	swap *engine.Move

	// Clear phase: cells about to be removed.
	clearing engine.MatchSet

	// Fall phase: where each candy came from, and per column how many rows
	// above the board spawned candies start.
	falls      engine.FallGrid
	spawnDepth []int
}

// startSwapAnimation begins the slide of an accepted swap.
func (g *Game) startSwapAnimation(m engine.Move) {
	g.anim = animation{swap: &m}
	g.enterPhase(PhaseSwap)
	g.skipInstantPhase()
}

// progress returns ticks/duration clamped to [0, 1].
func progress(ticks, duration int) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(ticks) / float64(duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// easeInQuad accelerates, which reads as gravity.
func easeInQuad(t float64) float64 {
	return t * t
}

// spawnDepths counts the spawned candies of every column.
func spawnDepths(falls engine.FallGrid) []int {
	if len(falls) == 0 {
		return nil
	}
	depth := make([]int, len(falls[0]))
	for _, row := range falls {
		for c, f := range row {
			if f.Spawned() {
				depth[c]++
			}
		}
	}
	return depth
}

// fallOrigin returns the row a candy starts falling from. Spawned candies
// start above the board, stacked in the order they appear.
func (a *animation) fallOrigin(r, c int) (float64, bool) {
	if a.falls == nil || r >= len(a.falls) || c >= len(a.falls[r]) {
		return 0, false
	}
	f := a.falls[r][c]
	switch {
	case f.Spawned():
		return float64(r - a.spawnDepth[c]), true
	case f.Moved():
		return float64(f.From), true
	default:
		return 0, false
	}
}

// rowOffset returns the current row of a falling candy that lands on row r.
// The second value is false if the candy at (r, c) is not moving.
func (a *animation) rowOffset(r, c int) (float64, bool) {
	from, ok := a.fallOrigin(r, c)
	if !ok {
		return 0, false
	}
	t := easeInQuad(a.progress)
	return from + (float64(r)-from)*t, true
}

// swapOffset returns the current cell of a swapped candy now at p.
func (a *animation) swapOffset(p engine.Pos) (row, col float64, ok bool) {
	if a.swap == nil {
		return 0, 0, false
	}
	var from engine.Pos
	switch p {
	case a.swap.A:
		from = a.swap.B
	case a.swap.B:
		from = a.swap.A
	default:
		return 0, 0, false
	}
	t := easeOutQuad(a.progress)
	row = float64(from.Row) + float64(p.Row-from.Row)*t
	col = float64(from.Col) + float64(p.Col-from.Col)*t
	return row, col, true
}

// flashing reports whether cleared candies are drawn highlighted this tick.
func (a *animation) flashing(tick uint64) bool {
	return (tick/4)%2 == 0
}
