package bot

import (
	"ctchen222/tictactoe-session/internal/game"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d names a known difficulty.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// BotMoveCalculator implements the room.MoveCalculator interface.
type BotMoveCalculator struct {
	rng game.Rand
}

// NewBotMoveCalculator returns a calculator breaking ties with rng.
func NewBotMoveCalculator(rng game.Rand) *BotMoveCalculator {
	return &BotMoveCalculator{rng: rng}
}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *BotMoveCalculator) CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty string) int {
	return CalculateNextMove(board, mark, difficulty, c.rng)
}

// CalculateNextMove determines the bot's next move based on the specified difficulty.
// It returns -1 when the board is full.
func CalculateNextMove(board game.Board, botMark game.PlayerMark, difficulty string, rng game.Rand) int {
	switch difficulty {
	case DifficultyEasy:
		return easyMove(board, rng)
	case DifficultyMedium:
		return mediumMove(board, botMark, rng)
	default:
		return hardMove(board, botMark, rng)
	}
}

// easyMove makes a completely random move.
func easyMove(board game.Board, rng game.Rand) int {
	return game.RandomEmptyCell(board, rng)
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(board game.Board, botMark game.PlayerMark, rng game.Rand) int {
	if idx, ok := findWinningMove(board, botMark); ok {
		return idx
	}
	if idx, ok := findWinningMove(board, botMark.Other()); ok {
		return idx
	}
	return easyMove(board, rng)
}

// hardMove is a greedy one-ply heuristic: win, block, center, corner, anything.
func hardMove(board game.Board, botMark game.PlayerMark, rng game.Rand) int {
	// 1. Win
	if idx, ok := findWinningMove(board, botMark); ok {
		return idx
	}

	// 2. Block
	if idx, ok := findWinningMove(board, botMark.Other()); ok {
		return idx
	}

	// 3. Center
	if board[game.Center] == game.None {
		return game.Center
	}

	// 4. Corners
	availableCorners := make([]int, 0, len(game.Corners))
	for _, corner := range game.Corners {
		if board[corner] == game.None {
			availableCorners = append(availableCorners, corner)
		}
	}
	if len(availableCorners) > 0 {
		return availableCorners[rng.IntN(len(availableCorners))]
	}

	// 5. Whatever is left
	return easyMove(board, rng)
}

// findWinningMove returns the first empty cell, in board order, where placing
// mark completes a triple.
func findWinningMove(board game.Board, mark game.PlayerMark) (int, bool) {
	for _, idx := range board.EmptyCells() {
		trial := board
		trial[idx] = mark
		if outcome := game.Detect(trial); outcome.Winner == mark {
			return idx, true
		}
	}
	return -1, false
}
