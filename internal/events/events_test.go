package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ctchen222/tictactoe-session/internal/game"
)

func TestNewRoundEnded(t *testing.T) {
	tests := []struct {
		name   string
		round  game.RoundState
		want   RoundEndedPayload
		wantOK bool
	}{
		{
			name:   "still playing",
			round:  game.NewRoundState(game.ModePlayerVsPlayer),
			wantOK: false,
		},
		{
			name:   "pvp names the winning mark",
			round:  game.RoundState{Status: game.StatusWon, Winner: game.PlayerO, Mode: game.ModePlayerVsPlayer},
			want:   RoundEndedPayload{Kind: KindWon, Winner: game.PlayerO, Mode: game.ModePlayerVsPlayer, Message: "Player O wins!"},
			wantOK: true,
		},
		{
			name:   "pvai human wins",
			round:  game.RoundState{Status: game.StatusWon, Winner: game.PlayerX, Mode: game.ModePlayerVsAI},
			want:   RoundEndedPayload{Kind: KindWon, Winner: game.PlayerX, Mode: game.ModePlayerVsAI, Message: "You win!"},
			wantOK: true,
		},
		{
			name:   "pvai opponent wins",
			round:  game.RoundState{Status: game.StatusWon, Winner: game.PlayerO, Mode: game.ModePlayerVsAI},
			want:   RoundEndedPayload{Kind: KindWon, Winner: game.PlayerO, Mode: game.ModePlayerVsAI, Message: "The opponent wins!"},
			wantOK: true,
		},
		{
			name:   "draw",
			round:  game.RoundState{Status: game.StatusDraw, Mode: game.ModePlayerVsAI},
			want:   RoundEndedPayload{Kind: KindDraw, Mode: game.ModePlayerVsAI, Message: "It's a draw!"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewRoundEnded(tt.round)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
