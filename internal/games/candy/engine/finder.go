package engine

// FindFirstValidMove scans the board in row-major order and returns the
// first swap that produces an immediate match. For each cell the right
// neighbour is tried before the one below.
//
// The search is greedy: it does not rank moves by score. Every tentative
// swap is undone, so the board is unchanged when the call returns; the
// caller performs the real swap with Board.Swap.
// Returns false when the board has no productive move.
func FindFirstValidMove(b *Board) (Move, bool) {
	for r := range b.rows {
		for c := range b.cols {
			here := P(r, c)
			if c+1 < b.cols && b.tryExchange(here, P(r, c+1)) {
				return Move{A: here, B: P(r, c+1)}, true
			}
			if r+1 < b.rows && b.tryExchange(here, P(r+1, c)) {
				return Move{A: here, B: P(r+1, c)}, true
			}
		}
	}
	return Move{}, false
}

// HasValidMove reports whether any swap on the board produces a match.
func HasValidMove(b *Board) bool {
	_, ok := FindFirstValidMove(b)
	return ok
}

// tryExchange swaps a and o, checks both cells for a local match and swaps
// them back.
func (b *Board) tryExchange(a, o Pos) bool {
	b.exchange(a, o)
	ok := b.HasLocalMatch(a.Row, a.Col) || b.HasLocalMatch(o.Row, o.Col)
	b.exchange(a, o)
	return ok
}
