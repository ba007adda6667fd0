package room

import (
	"context"
	"time"

	"ctchen222/tictactoe-session/internal/player"
)

// AddViewer attaches a connection to the room. It receives the session
// assignment, the current state, and every update after that.
func (r *Room) AddViewer(ctx context.Context, conn player.Connection) error {
	_, err := r.Dispatch(ctx, attachViewer{conn: conn})
	return err
}

// ViewerCount returns the number of attached viewers.
func (r *Room) ViewerCount() int {
	return int(r.viewerCount.Load())
}

// LastActive returns the time of the last external event.
func (r *Room) LastActive() time.Time {
	return time.Unix(0, r.lastActive.Load())
}
