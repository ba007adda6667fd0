package room

import (
	"context"
	"io"
	"testing"

	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/player/mock"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Event
		wantErr bool
	}{
		{name: "move", raw: `{"type":"move","index":4}`, want: SelectCell{Index: 4}},
		{name: "move on cell zero", raw: `{"type":"move","index":0}`, want: SelectCell{Index: 0}},
		{name: "new round", raw: `{"type":"new_round"}`, want: NewRound{}},
		{name: "reset scores", raw: `{"type":"reset_scores"}`, want: ResetScores{}},
		{name: "set mode", raw: `{"type":"set_mode","mode":"pvai"}`, want: SetMode{Mode: game.ModePlayerVsAI}},
		{name: "move without index", raw: `{"type":"move"}`, wantErr: true},
		{name: "index out of range", raw: `{"type":"move","index":9}`, wantErr: true},
		{name: "unknown mode", raw: `{"type":"set_mode","mode":"online"}`, wantErr: true},
		{name: "set mode without mode", raw: `{"type":"set_mode"}`, wantErr: true},
		{name: "unknown type", raw: `{"type":"undo"}`, wantErr: true},
		{name: "missing type", raw: `{}`, wantErr: true},
		{name: "not json", raw: `move 4`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMessage([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPump(t *testing.T) {
	r, _ := newTestRoom(t, game.ModePlayerVsPlayer)
	r.Start()
	defer r.Close()
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnection(ctrl)
	conn.EXPECT().WriteMessage(websocket.TextMessage, gomock.Any()).Return(nil).AnyTimes()
	gomock.InOrder(
		conn.EXPECT().ReadMessage().Return(websocket.TextMessage, []byte(`{"type":"move","index":4}`), nil),
		conn.EXPECT().ReadMessage().Return(websocket.TextMessage, []byte(`{"type":"bogus"}`), nil),
		conn.EXPECT().ReadMessage().Return(0, nil, io.EOF),
	)
	conn.EXPECT().Close().Return(nil).MinTimes(1)

	require.NoError(t, r.AddViewer(ctx, conn))
	require.Equal(t, 1, r.ViewerCount())

	r.ReadPump(conn)

	s, err := r.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, X, s.Round.Board[4])
	assert.Equal(t, 0, r.ViewerCount())
}
