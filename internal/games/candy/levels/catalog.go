// Package levels provides the Candy Crush level catalog.
// This package depends on nothing from the game driver; the driver consumes
// catalogs by index.
package levels

import (
	"errors"
	"fmt"
)

// DefaultRetryBonus is the number of extra moves granted per failed attempt.
const DefaultRetryBonus = 5

// ErrEmptyCatalog is returned when a catalog has no levels.
var ErrEmptyCatalog = errors.New("levels: catalog is empty")

// Difficulty is the label shown next to a level.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyHard     Difficulty = "Hard"
	DifficultyVeryHard Difficulty = "Very Hard"
	DifficultyExpert   Difficulty = "Expert"
)

// LevelConfig is an immutable level definition.
type LevelConfig struct {
	ID         string
	Name       string
	ScoreGoal  int
	MoveBudget int
	Rows       int
	Cols       int
	NumTypes   int
	Difficulty Difficulty
}

// Moves returns the move budget for an attempt after failedAttempts
// failures, adding bonus moves per failure.
func (l LevelConfig) Moves(failedAttempts, bonus int) int {
	if failedAttempts < 0 {
		failedAttempts = 0
	}
	return l.MoveBudget + bonus*failedAttempts
}

// Validate checks that the level can be played.
func (l LevelConfig) Validate() error {
	switch {
	case l.Rows <= 0 || l.Cols <= 0:
		return fmt.Errorf("levels: %s: invalid board size %dx%d", l.ID, l.Rows, l.Cols)
	case l.NumTypes < 3:
		return fmt.Errorf("levels: %s: need at least 3 candy types, got %d", l.ID, l.NumTypes)
	case l.ScoreGoal <= 0:
		return fmt.Errorf("levels: %s: score goal must be positive", l.ID)
	case l.MoveBudget <= 0:
		return fmt.Errorf("levels: %s: move budget must be positive", l.ID)
	}
	return nil
}

// Catalog is an ordered, read-only list of levels.
type Catalog struct {
	levels []LevelConfig
}

// NewCatalog creates a catalog from the given levels after validating them.
// The slice is copied.
func NewCatalog(lvls []LevelConfig) (*Catalog, error) {
	if len(lvls) == 0 {
		return nil, ErrEmptyCatalog
	}
	for _, l := range lvls {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	own := make([]LevelConfig, len(lvls))
	copy(own, lvls)
	return &Catalog{levels: own}, nil
}

// Get returns the level at the given index (0-based).
// Returns false if index is out of range.
func (c *Catalog) Get(index int) (LevelConfig, bool) {
	if index < 0 || index >= len(c.levels) {
		return LevelConfig{}, false
	}
	return c.levels[index], true
}

// Count returns the number of levels.
func (c *Catalog) Count() int {
	return len(c.levels)
}

// All returns a copy of every level in order.
func (c *Catalog) All() []LevelConfig {
	out := make([]LevelConfig, len(c.levels))
	copy(out, c.levels)
	return out
}

// defaultLevels is the built-in 10 level ramp.
var defaultLevels = []LevelConfig{
	{ID: "lvl01", Name: "Sugar Rush", ScoreGoal: 550, MoveBudget: 15, Rows: 5, Cols: 5, NumTypes: 4, Difficulty: DifficultyEasy},
	{ID: "lvl02", Name: "Gumdrop Lane", ScoreGoal: 700, MoveBudget: 13, Rows: 5, Cols: 5, NumTypes: 5, Difficulty: DifficultyEasy},
	{ID: "lvl03", Name: "Lollipop Grove", ScoreGoal: 800, MoveBudget: 15, Rows: 6, Cols: 6, NumTypes: 5, Difficulty: DifficultyMedium},
	{ID: "lvl04", Name: "Toffee Falls", ScoreGoal: 900, MoveBudget: 20, Rows: 6, Cols: 6, NumTypes: 6, Difficulty: DifficultyMedium},
	{ID: "lvl05", Name: "Caramel Canyon", ScoreGoal: 1000, MoveBudget: 20, Rows: 7, Cols: 7, NumTypes: 6, Difficulty: DifficultyHard},
	{ID: "lvl06", Name: "Licorice Maze", ScoreGoal: 1100, MoveBudget: 20, Rows: 7, Cols: 7, NumTypes: 7, Difficulty: DifficultyHard},
	{ID: "lvl07", Name: "Jellybean Peaks", ScoreGoal: 1200, MoveBudget: 20, Rows: 8, Cols: 8, NumTypes: 7, Difficulty: DifficultyVeryHard},
	{ID: "lvl08", Name: "Fudge Fortress", ScoreGoal: 1300, MoveBudget: 20, Rows: 8, Cols: 8, NumTypes: 8, Difficulty: DifficultyVeryHard},
	{ID: "lvl09", Name: "Marzipan Keep", ScoreGoal: 1400, MoveBudget: 20, Rows: 8, Cols: 8, NumTypes: 8, Difficulty: DifficultyExpert},
	{ID: "lvl10", Name: "Candy Kingdom", ScoreGoal: 1500, MoveBudget: 20, Rows: 8, Cols: 8, NumTypes: 9, Difficulty: DifficultyExpert},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("levels: invalid built-in catalog: %v", err))
	}
	return c
}
