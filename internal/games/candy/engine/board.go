package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooFewTypes is returned when a board is requested with fewer than
	// MinTypes candy types. Such boards cannot reach a match-free state.
	ErrTooFewTypes = errors.New("engine: at least 3 candy types are required")

	// ErrInvalidSize is returned for non-positive or ragged dimensions.
	ErrInvalidSize = errors.New("engine: invalid board size")

	// ErrInvalidCandy is returned when a literal grid holds a type outside
	// [0, numTypes).
	ErrInvalidCandy = errors.New("engine: candy type out of range")
)

// maxShuffleAttempts bounds Shuffle on boards where no arrangement has a move.
const maxShuffleAttempts = 64

// Board is the match-3 grid. Cells are stored in row-major order:
// index = row*cols + col.
//
// The board is not safe for concurrent use; the session driver serializes
// all calls.
type Board struct {
	rows     int
	cols     int
	numTypes int
	cells    []CandyType
	matches  MatchSet
	rng      Source
}

// New creates a board filled with random candies and resolves every
// pre-existing match, so the returned board is stable.
// A nil rng uses a time-seeded source.
func New(rows, cols, numTypes int, rng Source) (*Board, error) {
	if err := validateDims(rows, cols, numTypes); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSource(0)
	}

	b := &Board{
		rows:     rows,
		cols:     cols,
		numTypes: numTypes,
		cells:    make([]CandyType, rows*cols),
		matches:  make(MatchSet),
		rng:      rng,
	}
	for i := range b.cells {
		b.cells[i] = b.spawn()
	}
	b.ResolveUntilStable()
	return b, nil
}

// FromGrid builds a board from a literal grid (grid[row][col]).
// Unlike New it does not resolve existing matches, which makes it suitable
// for planting specific layouts.
func FromGrid(grid [][]CandyType, numTypes int, rng Source) (*Board, error) {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	if err := validateDims(rows, cols, numTypes); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSource(0)
	}

	b := &Board{
		rows:     rows,
		cols:     cols,
		numTypes: numTypes,
		cells:    make([]CandyType, 0, rows*cols),
		matches:  make(MatchSet),
		rng:      rng,
	}
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), cols)
		}
		for c, t := range row {
			if t < 0 || int(t) >= numTypes {
				return nil, fmt.Errorf("%w: %d at %v", ErrInvalidCandy, t, P(r, c))
			}
			b.cells = append(b.cells, t)
		}
	}
	return b, nil
}

func validateDims(rows, cols, numTypes int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if numTypes < MinTypes {
		return fmt.Errorf("%w: got %d", ErrTooFewTypes, numTypes)
	}
	return nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// NumTypes returns the candy-type cardinality.
func (b *Board) NumTypes() int { return b.numTypes }

// InBounds reports whether (r, c) lies on the board.
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.cols
}

// At returns the candy at (r, c), or Empty when out of bounds.
func (b *Board) At(r, c int) CandyType {
	if !b.InBounds(r, c) {
		return Empty
	}
	return b.cells[r*b.cols+c]
}

func (b *Board) set(r, c int, t CandyType) {
	b.cells[r*b.cols+c] = t
}

func (b *Board) spawn() CandyType {
	return CandyType(b.rng.Intn(b.numTypes))
}

// exchange swaps two cells without any validation.
func (b *Board) exchange(a, o Pos) {
	ia := a.Row*b.cols + a.Col
	io := o.Row*b.cols + o.Col
	b.cells[ia], b.cells[io] = b.cells[io], b.cells[ia]
}

// IsValidSwap reports whether both positions are on the board and share an
// edge. Diagonal and same-cell swaps are invalid.
func (b *Board) IsValidSwap(r1, c1, r2, c2 int) bool {
	if !b.InBounds(r1, c1) || !b.InBounds(r2, c2) {
		return false
	}
	return P(r1, c1).Adjacent(P(r2, c2))
}

// Swap exchanges two adjacent candies if that creates a match at either
// position. On failure the grid is left exactly as it was.
// Scoring and cascades are the caller's job (ScanMatches, Refill).
func (b *Board) Swap(r1, c1, r2, c2 int) bool {
	if !b.IsValidSwap(r1, c1, r2, c2) {
		return false
	}

	a, o := P(r1, c1), P(r2, c2)
	b.exchange(a, o)
	if !b.HasLocalMatch(r1, c1) && !b.HasLocalMatch(r2, c2) {
		b.exchange(a, o)
		return false
	}
	return true
}

// HasLocalMatch reports whether the candy at (r, c) is part of a run of at
// least three, horizontally or vertically. At most two cells are probed in
// each direction.
func (b *Board) HasLocalMatch(r, c int) bool {
	t := b.At(r, c)
	if t == Empty {
		return false
	}

	h := 1 + b.runLength(r, c, 0, -1, t) + b.runLength(r, c, 0, 1, t)
	if h >= minRun {
		return true
	}
	v := 1 + b.runLength(r, c, -1, 0, t) + b.runLength(r, c, 1, 0, t)
	return v >= minRun
}

// runLength counts candies of type t next to (r, c) in direction (dr, dc),
// capped at minRun-1.
func (b *Board) runLength(r, c, dr, dc int, t CandyType) int {
	n := 0
	for i := 1; i < minRun; i++ {
		if b.At(r+dr*i, c+dc*i) != t {
			break
		}
		n++
	}
	return n
}

// ScanMatches finds every horizontal and vertical run of three or more and
// stores the union of their positions for the following Refill.
// Returns true if any match exists.
func (b *Board) ScanMatches() bool {
	matches := make(MatchSet)

	for r := range b.rows {
		start := 0
		for c := 1; c <= b.cols; c++ {
			if c < b.cols && b.At(r, c) == b.At(r, start) {
				continue
			}
			if c-start >= minRun && b.At(r, start) != Empty {
				for i := start; i < c; i++ {
					matches[P(r, i)] = struct{}{}
				}
			}
			start = c
		}
	}

	for c := range b.cols {
		start := 0
		for r := 1; r <= b.rows; r++ {
			if r < b.rows && b.At(r, c) == b.At(start, c) {
				continue
			}
			if r-start >= minRun && b.At(start, c) != Empty {
				for i := start; i < r; i++ {
					matches[P(i, c)] = struct{}{}
				}
			}
			start = r
		}
	}

	b.matches = matches
	return len(matches) > 0
}

// Matches returns a copy of the match set from the last ScanMatches.
func (b *Board) Matches() MatchSet {
	out := make(MatchSet, len(b.matches))
	for p := range b.matches {
		out[p] = struct{}{}
	}
	return out
}

// clearMatches empties every matched cell and returns how many were cleared.
func (b *Board) clearMatches() int {
	for p := range b.matches {
		b.set(p.Row, p.Col, Empty)
	}
	return len(b.matches)
}

// ResolveUntilStable removes matches, applies gravity and refills until the
// board has no match left. Returns the total number of removed candies.
func (b *Board) ResolveUntilStable() int {
	removed := 0
	for b.ScanMatches() {
		removed += b.clearMatches()
		b.collapse(nil)
	}
	return removed
}

// Refill clears the cells of the stored match set, lets candies fall and
// spawns new ones at the top of each column. The returned grid tells, for
// every destination cell, where its candy came from.
// Calling Refill without a pending match set is a no-op that returns nil.
func (b *Board) Refill() FallGrid {
	if len(b.matches) == 0 {
		return nil
	}

	b.clearMatches()
	falls := make(FallGrid, b.rows)
	for r := range falls {
		falls[r] = make([]Fall, b.cols)
		for c := range falls[r] {
			falls[r][c] = Fall{From: r, To: r}
		}
	}
	b.collapse(falls)
	b.matches = make(MatchSet)
	return falls
}

// collapse compacts every column downwards, keeping the relative order of
// the candies, and fills the holes left at the top with new candies.
// When falls is non-nil it records a descriptor for each moved or spawned
// cell. Returns the number of spawned candies.
func (b *Board) collapse(falls FallGrid) int {
	spawned := 0
	for c := range b.cols {
		empty := 0
		for r := b.rows - 1; r >= 0; r-- {
			t := b.At(r, c)
			if t == Empty {
				empty++
				continue
			}
			if empty == 0 {
				continue
			}
			dst := r + empty
			b.set(dst, c, t)
			b.set(r, c, Empty)
			if falls != nil {
				falls[dst][c] = Fall{From: r, To: dst}
			}
		}

		for r := range empty {
			b.set(r, c, b.spawn())
			if falls != nil {
				falls[r][c] = Fall{From: -1, To: r}
			}
		}
		spawned += empty
	}
	return spawned
}

// Shuffle rearranges the candies already on the board until the result is
// stable and offers at least one valid move. It is meant for the driver to
// call on board exhaustion; the board never reshuffles itself.
// Returns false if no such arrangement was found; the board is still stable.
func (b *Board) Shuffle() bool {
	for range maxShuffleAttempts {
		for i := len(b.cells) - 1; i > 0; i-- {
			j := b.rng.Intn(i + 1)
			b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
		}
		b.ResolveUntilStable()
		if HasValidMove(b) {
			return true
		}
	}
	return false
}

// Grid returns a copy of the cells as grid[row][col].
func (b *Board) Grid() [][]CandyType {
	grid := make([][]CandyType, b.rows)
	for r := range grid {
		grid[r] = make([]CandyType, b.cols)
		copy(grid[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return grid
}

// Clone returns a deep copy of the board. The copy shares the random source.
func (b *Board) Clone() *Board {
	cells := make([]CandyType, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:     b.rows,
		cols:     b.cols,
		numTypes: b.numTypes,
		cells:    cells,
		matches:  b.Matches(),
		rng:      b.rng,
	}
}

// Equal reports whether two boards have the same dimensions and cells.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i, t := range b.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid with one character per cell, '.' for Empty.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.cols {
			t := b.At(r, c)
			switch {
			case t == Empty:
				sb.WriteByte('.')
			case t < 10:
				sb.WriteByte(byte('0' + t))
			default:
				sb.WriteByte(byte('a' + t - 10))
			}
		}
	}
	return sb.String()
}
