// Package engine implements the match-3 board simulation for Candy Crush.
// The package is UI-agnostic and deterministic for a given random source.
package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// CandyType identifies a candy kind. Valid types are in [0, numTypes).
type CandyType int

// Empty marks a cell whose candy was removed and not yet refilled.
const Empty CandyType = -1

// MinTypes is the smallest candy-type count a board can be built with.
const MinTypes = 3

// minRun is the shortest line of equal candies that counts as a match.
const minRun = 3

// Source is the part of *rand.Rand the board needs to spawn candies.
// Tests inject a seeded generator for reproducible boards.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source. Seed 0 uses the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Pos is a board position. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether two positions share an edge.
func (p Pos) Adjacent(other Pos) bool {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Move is a pair of adjacent positions to swap.
type Move struct {
	A Pos
	B Pos
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.A, m.B)
}

// MatchSet is the set of positions found by a match scan.
type MatchSet map[Pos]struct{}

// Len returns the number of matched positions.
func (s MatchSet) Len() int {
	return len(s)
}

// Contains reports whether p is in the set.
func (s MatchSet) Contains(p Pos) bool {
	_, ok := s[p]
	return ok
}

// Positions returns the matched positions in row-major order.
func (s MatchSet) Positions() []Pos {
	out := make([]Pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Fall describes where the candy now at row To came from during gravity.
// From is -1 for a newly spawned candy. From == To means it did not move.
type Fall struct {
	From int
	To   int
}

// Spawned reports whether the candy was created by the refill.
func (f Fall) Spawned() bool {
	return f.From < 0
}

// Moved reports whether the candy slid down.
func (f Fall) Moved() bool {
	return f.From >= 0 && f.From != f.To
}

// FallGrid holds one Fall per cell, indexed [row][col] by destination.
type FallGrid [][]Fall
