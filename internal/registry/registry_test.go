package registry

import (
	"testing"

	"github.com/vovakirdan/tui-candy/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "test_b", Description: "second"}, func() Game { return &stubGame{id: "test_b"} })
	Register(GameInfo{ID: "test_a", Title: "Alpha"}, func() Game { return &stubGame{id: "test_a"} })

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("created game ID = %q", g.ID())
	}

	info, ok := Info("test_b")
	if !ok {
		t.Fatal("Info should find test_b")
	}
	if info.Title != "Stub test_b" {
		t.Errorf("title should come from the game, got %q", info.Title)
	}

	info, _ = Info("test_a")
	if info.Title != "Alpha" {
		t.Errorf("explicit title should win, got %q", info.Title)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("expected error for unknown game")
	}
	if _, ok := Info("does_not_exist"); ok {
		t.Error("Info should not find unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "test_dup"}, func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "test_dup"}, func() Game { return &stubGame{id: "test_dup"} })
}
