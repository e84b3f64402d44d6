package config

import (
	_ "embed"
)

//go:embed defaults/candy.yaml
var defaultCandyYAML []byte

// DefaultCandyConfig returns the default Candy Crush configuration.
func DefaultCandyConfig() CandyConfig {
	return CandyConfig{
		Timing: TimingConfig{
			SwapMS:       200,
			ClearMS:      200,
			FallMS:       250,
			CascadeMS:    300,
			HintMS:       700,
			IdleHintMS:   5000,
			AutoPlayMS:   500,
			LevelClearMS: 2000,
			MessageMS:    1500,
		},
		Scoring: ScoringConfig{
			PointsPerCandy: 10,
		},
		Rules: RulesConfig{
			RetryBonus:     5,
			ShuffleOnStuck: false,
		},
		Difficulty: DifficultyConfig{
			ExtraMoves:  0,
			GoalPercent: 100,
		},
	}
}
