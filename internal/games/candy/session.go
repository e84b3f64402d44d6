package candy

import (
	"github.com/vovakirdan/tui-candy/internal/core"
)

// Phase is a step of the turn state machine.
type Phase string

const (
	PhaseIdle         Phase = "idle"          // Waiting for the player
	PhaseSwap         Phase = "swap"          // Swapped candies slide into place
	PhaseClear        Phase = "clear"         // Matched candies flash before removal
	PhaseFall         Phase = "fall"          // Candies drop and new ones spawn
	PhaseSettle       Phase = "settle"        // Pause before a cascade is cleared
	PhaseLevelCleared Phase = "level_cleared" // Goal reached, next level pending
	PhaseLevelFailed  Phase = "level_failed"  // Out of moves, waiting for retry
	PhaseVictory      Phase = "victory"       // Last level cleared
)

// enterPhase switches the state machine and restarts the phase clock.
func (g *Game) enterPhase(p Phase) {
	g.phase = p
	g.phaseTicks = 0
}

// stepTurn advances the animation of a resolving turn.
func (g *Game) stepTurn() {
	g.phaseTicks++
	g.anim.progress = progress(g.phaseTicks, g.phaseDuration())
	if g.phaseTicks < g.phaseDuration() {
		return
	}

	switch g.phase {
	case PhaseSwap:
		g.startClear()
	case PhaseClear:
		g.finishClear()
	case PhaseFall:
		g.finishFall()
	case PhaseSettle:
		g.startClear()
	}
}

// phaseDuration returns the length of the current animated phase in ticks.
func (g *Game) phaseDuration() int {
	switch g.phase {
	case PhaseSwap:
		return g.timing.swap
	case PhaseClear:
		return g.timing.clear
	case PhaseFall:
		return g.timing.fall
	case PhaseSettle:
		return g.timing.cascade
	default:
		return 0
	}
}

// startClear scans the board and flashes the matched candies.
func (g *Game) startClear() {
	if !g.board.ScanMatches() {
		g.resolveTurn()
		return
	}
	g.anim = animation{clearing: g.board.Matches()}
	g.enterPhase(PhaseClear)
	g.skipInstantPhase()
}

// finishClear scores the matched candies and lets the rest fall.
func (g *Game) finishClear() {
	// Refill consumes the match set, so count first.
	g.score += g.board.Matches().Len() * g.cfg.Scoring.PointsPerCandy
	falls := g.board.Refill()
	g.anim = animation{falls: falls, spawnDepth: spawnDepths(falls)}
	g.enterPhase(PhaseFall)
	g.skipInstantPhase()
}

// finishFall looks for cascades once the candies have landed.
func (g *Game) finishFall() {
	g.anim = animation{}
	if g.board.ScanMatches() {
		g.enterPhase(PhaseSettle)
		g.skipInstantPhase()
		return
	}
	g.resolveTurn()
}

// skipInstantPhase completes phases configured with a zero duration.
func (g *Game) skipInstantPhase() {
	if g.phaseDuration() == 0 {
		g.phaseTicks = -1
		g.stepTurn()
	}
}

// resolveTurn decides what follows a fully settled board.
func (g *Game) resolveTurn() {
	g.anim = animation{}

	switch {
	case g.score >= g.level.ScoreGoal:
		g.levelCleared()
	case g.movesLeft <= 0:
		g.levelFailed()
	case g.autoPlay:
		g.autoDelay = g.timing.autoPlay
		g.enterPhase(PhaseIdle)
	default:
		g.enterPhase(PhaseIdle)
		g.resetIdle()
	}
}

// levelCleared records the win and moves on.
func (g *Game) levelCleared() {
	g.events = append(g.events, g.levelEvent(core.EventLevelCleared))
	g.total += g.score
	g.score = 0
	g.failedAttempts = 0
	g.autoPlay = false

	if g.levelIndex >= g.catalog.Count()-1 {
		g.events = append(g.events, core.Event{Kind: core.EventVictory, Level: g.levelIndex + 1, Score: g.total})
		g.gameOver = true
		g.enterPhase(PhaseVictory)
		return
	}
	g.enterPhase(PhaseLevelCleared)
}

// levelFailed records the loss; the player may retry with bonus moves.
func (g *Game) levelFailed() {
	g.events = append(g.events, g.levelEvent(core.EventLevelFailed))
	g.failedAttempts++
	g.autoPlay = false
	g.enterPhase(PhaseLevelFailed)
}

// advanceLevel loads the next level of the catalog.
func (g *Game) advanceLevel() {
	g.levelIndex++
	g.loadLevel()
}

func (g *Game) levelEvent(kind core.EventKind) core.Event {
	return core.Event{
		Kind:      kind,
		Level:     g.levelIndex + 1,
		Score:     g.score,
		MovesUsed: g.movesUsed,
		Attempt:   g.failedAttempts + 1,
	}
}
