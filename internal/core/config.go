package core

import "time"

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform tells a game about its surroundings:
// the terminal size, the simulation rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Ticks per second; <= 0 means DefaultTickRate
	Seed     int64 // 0 lets the platform pick a time based seed
}

// DefaultConfig returns an 80x24 config at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Rate returns the tick rate, falling back to DefaultTickRate.
func (c RuntimeConfig) Rate() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// TickInterval is the wall-clock time between two ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Rate())
}

// Resized returns a copy of c for a terminal of w x h cells.
func (c RuntimeConfig) Resized(w, h int) RuntimeConfig {
	c.ScreenW = w
	c.ScreenH = h
	return c
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // Whether an animation is running and input is ignored
	Exit     bool // Whether the game asked to leave (back to menu)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	// Events lists notable things that happened during the tick, in order.
	Events []Event
}

// EventKind classifies an Event.
type EventKind int

const (
	EventLevelCleared EventKind = iota + 1
	EventLevelFailed
	EventVictory
)

// Event reports a game milestone to the platform (for example to store
// results). Level is 1-based.
type Event struct {
	Kind      EventKind
	Level     int
	Score     int
	MovesUsed int
	Attempt   int
}
