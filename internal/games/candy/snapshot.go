package candy

import (
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int // Current level (1-indexed for display)
	LevelID   string
	Goal      int
	Score     int
	Total     int
	MovesLeft int
	Failed    int
	Phase     Phase
	AutoPlay  bool
	Board     [][]engine.CandyType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Level:     g.levelIndex + 1,
		LevelID:   g.level.ID,
		Goal:      g.level.ScoreGoal,
		Score:     g.score,
		Total:     g.total,
		MovesLeft: g.movesLeft,
		Failed:    g.failedAttempts,
		Phase:     g.phase,
		AutoPlay:  g.autoPlay,
		Board:     g.board.Grid(),
	}
}
