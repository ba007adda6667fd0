package models

import (
	"ctchen222/tictactoe-session/internal/game"
)

// CreateSessionRequest defines the body of a session creation request.
// Both fields are optional.
type CreateSessionRequest struct {
	Mode       string `json:"mode" binding:"omitempty,game_mode"`
	Difficulty string `json:"difficulty" binding:"omitempty,difficulty"`
}

// MoveRequest selects a cell for whichever mark may move now.
type MoveRequest struct {
	Index *int `json:"index" binding:"required,min=0,max=8"`
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required,game_mode"`
}

// SessionResponse is the view of a session returned by every endpoint.
type SessionResponse struct {
	SessionID  string     `json:"sessionId"`
	Difficulty string     `json:"difficulty"`
	State      game.State `json:"state"`
}
