package proto

import (
	"ctchen222/tictactoe-session/internal/events"
	"ctchen222/tictactoe-session/internal/game"
)

// Client message types.
const (
	TypeMove        = "move"
	TypeNewRound    = "new_round"
	TypeResetScores = "reset_scores"
	TypeSetMode     = "set_mode"
)

// Server message types.
const (
	TypeAssignment = "assignment"
	TypeState      = "state"
	TypeRoundEnded = "round_ended"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type  string `json:"type" validate:"required,oneof=move new_round reset_scores set_mode"`
	Index *int   `json:"index,omitempty" validate:"omitempty,min=0,max=8"`
	Mode  string `json:"mode,omitempty" validate:"omitempty,game_mode"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type         string                    `json:"type" validate:"required"`
	Reason       string                    `json:"reason,omitempty"`
	State        *game.State               `json:"state,omitempty"`
	Notification *events.RoundEndedPayload `json:"notification,omitempty"`
}

// SessionAssignmentMessage tells a viewer which session it is attached to.
type SessionAssignmentMessage struct {
	Type       string          `json:"type"`
	SessionID  string          `json:"sessionId"`
	Difficulty string          `json:"difficulty,omitempty"`
	HumanMark  game.PlayerMark `json:"humanMark,omitempty"`
}
