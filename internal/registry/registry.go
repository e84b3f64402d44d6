// Package registry lets game packages announce themselves from init() so the
// CLI, the menus and the SSH server can create them by ID.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-candy/internal/core"
)

// Game is a tick-driven game with no terminal dependencies. The platform
// owns input mapping, timing and drawing the screen buffer.
type Game interface {
	// ID is the stable identifier used by the CLI and the score tables.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run for the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the input gathered since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score and lifecycle flags without advancing the game.
	State() core.GameState
}

// Controller is implemented by games that describe their key bindings.
type Controller interface {
	Controls() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. An empty Title is taken from a new instance.
// Registering the same ID twice panics.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = f().Title()
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// Create returns a new instance of the game with the given ID.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Info returns the description of a registered game.
func Info(id string) (GameInfo, bool) {
	e, ok := lookup(id)
	return e.info, ok
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e, ok
}
