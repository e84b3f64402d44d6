// Package config provides YAML-based game configuration loading and
// difficulty presets for the candy game.
package config

// CandyConfig contains all configuration for the Candy Crush game.
type CandyConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TimingConfig defines animation and assist delays in milliseconds.
// The game converts them to ticks using its tick rate.
type TimingConfig struct {
	SwapMS       int `yaml:"swap_ms"`        // Swap slide animation
	ClearMS      int `yaml:"clear_ms"`       // Matched candies flash before removal
	FallMS       int `yaml:"fall_ms"`        // Candies drop into place
	CascadeMS    int `yaml:"cascade_ms"`     // Pause before looking for cascades
	HintMS       int `yaml:"hint_ms"`        // How long a hint stays highlighted
	IdleHintMS   int `yaml:"idle_hint_ms"`   // Idle time before an automatic hint, 0 disables
	AutoPlayMS   int `yaml:"autoplay_ms"`    // Delay between auto-play moves
	LevelClearMS int `yaml:"level_clear_ms"` // Level cleared banner before advancing
	MessageMS    int `yaml:"message_ms"`     // Status message lifetime
}

// ScoringConfig defines how removed candies are scored.
type ScoringConfig struct {
	PointsPerCandy int `yaml:"points_per_candy"`
}

// RulesConfig defines campaign rules.
type RulesConfig struct {
	RetryBonus     int  `yaml:"retry_bonus"`      // Extra moves per failed attempt
	ShuffleOnStuck bool `yaml:"shuffle_on_stuck"` // Reshuffle automatically when no move exists
}

// DifficultyConfig scales every level of the catalog.
type DifficultyConfig struct {
	ExtraMoves  int `yaml:"extra_moves"`  // Added to each level's move budget (may be negative)
	GoalPercent int `yaml:"goal_percent"` // Score goal as a percentage of the level's goal
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset.
// Unknown values return false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// MillisToTicks converts a duration in milliseconds to simulation ticks.
// Any positive duration lasts at least one tick.
func MillisToTicks(ms, tickRate int) int {
	if ms <= 0 {
		return 0
	}
	ticks := ms * tickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
