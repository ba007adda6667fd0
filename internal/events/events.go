package events

import (
	"fmt"

	"ctchen222/tictactoe-session/internal/game"
)

// Kind tells how a round ended.
type Kind string

const (
	KindWon  Kind = "won"
	KindDraw Kind = "draw"
)

// RoundEndedPayload is the transient notification shown when a round finishes.
type RoundEndedPayload struct {
	Kind    Kind            `json:"kind"`
	Winner  game.PlayerMark `json:"winner,omitempty"`
	Mode    game.Mode       `json:"mode"`
	Message string          `json:"message"`
}

// NewRoundEnded builds the notification for a finished round. ok is false
// while the round is still being played.
func NewRoundEnded(round game.RoundState) (payload RoundEndedPayload, ok bool) {
	switch round.Status {
	case game.StatusWon:
		return RoundEndedPayload{
			Kind:    KindWon,
			Winner:  round.Winner,
			Mode:    round.Mode,
			Message: winMessage(round.Mode, round.Winner),
		}, true
	case game.StatusDraw:
		return RoundEndedPayload{
			Kind:    KindDraw,
			Mode:    round.Mode,
			Message: "It's a draw!",
		}, true
	default:
		return RoundEndedPayload{}, false
	}
}

func winMessage(mode game.Mode, winner game.PlayerMark) string {
	if mode == game.ModePlayerVsAI {
		if winner == game.HumanMark {
			return "You win!"
		}
		return "The opponent wins!"
	}
	return fmt.Sprintf("Player %s wins!", winner)
}
