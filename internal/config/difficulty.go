package config

// minMoves keeps scaled levels playable.
const minMoves = 1

// ApplyCandyPreset modifies the config based on a difficulty preset.
func ApplyCandyPreset(cfg *CandyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.ExtraMoves = 5
		cfg.Difficulty.GoalPercent = 90
		cfg.Rules.RetryBonus = 7
	case DifficultyNormal:
		cfg.Difficulty.ExtraMoves = 0
		cfg.Difficulty.GoalPercent = 100
		cfg.Rules.RetryBonus = 5
	case DifficultyHard:
		cfg.Difficulty.ExtraMoves = -3
		cfg.Difficulty.GoalPercent = 110
		cfg.Rules.RetryBonus = 3
		cfg.Rules.ShuffleOnStuck = false
	}
}

// Goal returns the scaled score goal for a level.
// A zero GoalPercent leaves the goal unchanged.
func (d DifficultyConfig) Goal(base int) int {
	if d.GoalPercent <= 0 {
		return base
	}
	goal := base * d.GoalPercent / 100
	// Keep goals on the 10-point grid used by scoring.
	goal = (goal + 9) / 10 * 10
	if goal < 10 {
		goal = 10
	}
	return goal
}

// Moves returns the scaled move budget for a level.
func (d DifficultyConfig) Moves(base int) int {
	moves := base + d.ExtraMoves
	if moves < minMoves {
		moves = minMoves
	}
	return moves
}
