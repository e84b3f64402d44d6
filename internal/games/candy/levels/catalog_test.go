package levels

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Count() != 10 {
		t.Fatalf("Count() = %d, want 10", c.Count())
	}

	first, ok := c.Get(0)
	if !ok {
		t.Fatal("Get(0) failed")
	}
	if first.ScoreGoal != 550 || first.MoveBudget != 15 || first.Rows != 5 || first.Cols != 5 || first.NumTypes != 4 {
		t.Errorf("unexpected first level: %+v", first)
	}
	if first.Difficulty != DifficultyEasy {
		t.Errorf("first level difficulty = %q", first.Difficulty)
	}

	last, ok := c.Get(9)
	if !ok {
		t.Fatal("Get(9) failed")
	}
	if last.ScoreGoal != 1500 || last.NumTypes != 9 || last.Difficulty != DifficultyExpert {
		t.Errorf("unexpected last level: %+v", last)
	}
}

func TestDefaultCatalogRamp(t *testing.T) {
	c := Default()
	prev, _ := c.Get(0)
	for i := 1; i < c.Count(); i++ {
		lvl, _ := c.Get(i)
		if lvl.ScoreGoal <= prev.ScoreGoal {
			t.Errorf("level %d goal %d does not exceed level %d goal %d", i+1, lvl.ScoreGoal, i, prev.ScoreGoal)
		}
		if lvl.NumTypes < prev.NumTypes {
			t.Errorf("level %d has fewer candy types than level %d", i+1, i)
		}
		prev = lvl
	}
}

func TestCatalogGetOutOfRange(t *testing.T) {
	c := Default()
	for _, idx := range []int{-1, 10, 100} {
		if _, ok := c.Get(idx); ok {
			t.Errorf("Get(%d) should fail", idx)
		}
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []LevelConfig{
		{ID: "a", ScoreGoal: 10, MoveBudget: 3, Rows: 4, Cols: 4, NumTypes: 3},
	}
	c, err := NewCatalog(src)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	src[0].ScoreGoal = 999
	all := c.All()
	all[0].MoveBudget = 999

	lvl, _ := c.Get(0)
	if lvl.ScoreGoal != 10 || lvl.MoveBudget != 3 {
		t.Errorf("catalog changed through caller slices: %+v", lvl)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	if _, err := NewCatalog(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty catalog error = %v", err)
	}

	tests := []struct {
		name string
		lvl  LevelConfig
	}{
		{"two types", LevelConfig{ID: "x", ScoreGoal: 10, MoveBudget: 3, Rows: 4, Cols: 4, NumTypes: 2}},
		{"zero rows", LevelConfig{ID: "x", ScoreGoal: 10, MoveBudget: 3, Rows: 0, Cols: 4, NumTypes: 3}},
		{"no goal", LevelConfig{ID: "x", ScoreGoal: 0, MoveBudget: 3, Rows: 4, Cols: 4, NumTypes: 3}},
		{"no moves", LevelConfig{ID: "x", ScoreGoal: 10, MoveBudget: 0, Rows: 4, Cols: 4, NumTypes: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog([]LevelConfig{tt.lvl}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLevelMovesWithRetryBonus(t *testing.T) {
	lvl := LevelConfig{MoveBudget: 15}

	tests := []struct {
		failed, bonus, want int
	}{
		{0, DefaultRetryBonus, 15},
		{1, DefaultRetryBonus, 20},
		{3, DefaultRetryBonus, 30},
		{2, 0, 15},
		{-1, DefaultRetryBonus, 15},
	}
	for _, tt := range tests {
		if got := lvl.Moves(tt.failed, tt.bonus); got != tt.want {
			t.Errorf("Moves(%d, %d) = %d, want %d", tt.failed, tt.bonus, got, tt.want)
		}
	}
}
