package game

// Rand is the random source used for tie-breaking and forced moves.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// RandomEmptyCell picks a uniformly random empty cell, or -1 on a full board.
func RandomEmptyCell(b Board, rng Rand) int {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return -1
	}
	return cells[rng.IntN(len(cells))]
}
