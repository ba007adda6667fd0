package room

import (
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/player"
)

// Event is a discrete input to the room's state machine.
type Event interface {
	eventName() string
}

// SelectCell is a click on a cell by whichever mark may move now.
type SelectCell struct {
	Index int
}

// NewRound starts a new round, keeping mode and scoreboard.
type NewRound struct{}

// ResetScores starts a new round and zeroes the scoreboard.
type ResetScores struct{}

// SetMode switches between PvP and PvAI before the first move of a round.
type SetMode struct {
	Mode game.Mode
}

type (
	tickEvent     struct{}
	aiMoveEvent   struct{}
	snapshotEvent struct{}
	attachViewer  struct{ conn player.Connection }
	detachViewer  struct{ conn player.Connection }
	notifyError   struct {
		conn   player.Connection
		reason string
	}
)

func (SelectCell) eventName() string    { return "select_cell" }
func (NewRound) eventName() string      { return "new_round" }
func (ResetScores) eventName() string   { return "reset_scores" }
func (SetMode) eventName() string       { return "set_mode" }
func (tickEvent) eventName() string     { return "tick" }
func (aiMoveEvent) eventName() string   { return "ai_move" }
func (snapshotEvent) eventName() string { return "snapshot" }
func (attachViewer) eventName() string  { return "attach_viewer" }
func (detachViewer) eventName() string  { return "detach_viewer" }
func (notifyError) eventName() string   { return "notify_error" }
