package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

// Board boundaries, row-major indices 0..8.
const (
	BorderMin = 0
	BorderMax = 8
	Center    = 4
)

// Lines lists the winning triples in detection order: rows top to bottom,
// columns left to right, then the two diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Corners are the four corner cells.
var Corners = [4]int{0, 2, 6, 8}

// Board is a 3x3 board stored row-major.
type Board [9]PlayerMark

// Outcome is the result of scanning a board.
type Outcome struct {
	Status Status
	Winner PlayerMark
	Line   []int
}

// Other returns the opposing mark.
func (m PlayerMark) Other() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// InBounds reports whether index addresses a cell.
func InBounds(index int) bool {
	return index >= BorderMin && index <= BorderMax
}

// Detect scans the board for a completed triple and reports the first match.
// Without one, a full board is a draw and anything else is still playing.
func Detect(b Board) Outcome {
	for _, line := range Lines {
		a := b[line[0]]
		if a != None && a == b[line[1]] && a == b[line[2]] {
			return Outcome{Status: StatusWon, Winner: a, Line: []int{line[0], line[1], line[2]}}
		}
	}

	if b.IsFull() {
		return Outcome{Status: StatusDraw}
	}
	return Outcome{Status: StatusPlaying}
}

// IsFull reports whether every cell is occupied.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no mark has been placed yet.
func (b Board) IsEmpty() bool {
	for _, cell := range b {
		if cell != None {
			return false
		}
	}
	return true
}

// EmptyCells returns the indices of unoccupied cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b))
	for i, cell := range b {
		if cell == None {
			cells = append(cells, i)
		}
	}
	return cells
}
