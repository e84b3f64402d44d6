package levels

import (
	"path/filepath"
	"runtime"
	"testing"
)

// testdataPath returns the path of a file under testdata.
func testdataPath(name ...string) string {
	_, filename, _, _ := runtime.Caller(0)
	parts := append([]string{filepath.Dir(filename), "testdata"}, name...)
	return filepath.Join(parts...)
}

func TestLoaderLoadFile(t *testing.T) {
	c, err := NewLoader(testdataPath("basic.yaml")).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}

	first, _ := c.Get(0)
	if first.ID != "t01" || first.Name != "Practice" {
		t.Errorf("unexpected first level: %+v", first)
	}
	if first.Rows != 4 || first.Cols != 5 || first.NumTypes != 3 {
		t.Errorf("expected 4x5 with 3 types, got %dx%d with %d", first.Rows, first.Cols, first.NumTypes)
	}
	if first.ScoreGoal != 100 || first.MoveBudget != 5 {
		t.Errorf("expected goal 100 in 5 moves, got %d in %d", first.ScoreGoal, first.MoveBudget)
	}

	second, _ := c.Get(1)
	if second.Name != "t02" {
		t.Errorf("name should default to ID, got %q", second.Name)
	}
	if second.Difficulty != "Custom" {
		t.Errorf("difficulty should default to Custom, got %q", second.Difficulty)
	}
}

func TestLoaderLoadDirSortsByID(t *testing.T) {
	c, err := NewLoader(testdataPath("set")).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}
	a, _ := c.Get(0)
	b, _ := c.Get(1)
	if a.ID != "s01" || b.ID != "s02" {
		t.Errorf("levels not sorted: %s, %s", a.ID, b.ID)
	}
}

func TestLoaderRejectsInvalidLevel(t *testing.T) {
	if _, err := NewLoader(testdataPath("invalid.yaml")).Load(); err == nil {
		t.Error("expected error for level with two candy types")
	}
}

func TestLoaderMissingPath(t *testing.T) {
	if _, err := NewLoader(testdataPath("missing.yaml")).Load(); err == nil {
		t.Error("expected error for missing file")
	}
}
