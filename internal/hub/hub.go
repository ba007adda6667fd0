package hub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tictactoe-session/internal/room"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Options are the defaults applied to every room the hub creates.
type Options struct {
	TurnSeconds       int
	TickInterval      time.Duration
	AIDelay           time.Duration
	DefaultDifficulty string
	IdleTimeout       time.Duration
	ReapInterval      time.Duration
	Clock             clock.Clock
}

// Hub manages all the sessions of this process.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
	opts  Options
	clock clock.Clock
}

// NewHub creates a new hub.
func NewHub(opts Options) *Hub {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 10 * time.Minute
	}
	if opts.ReapInterval <= 0 {
		opts.ReapInterval = time.Minute
	}
	return &Hub{
		rooms: make(map[string]*room.Room),
		opts:  opts,
		clock: opts.Clock,
	}
}

// Room looks up a session by id.
func (h *Hub) Room(id string) (*room.Room, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.rooms[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return r, nil
}

// CloseRoom stops a session and forgets it.
func (h *Hub) CloseRoom(ctx context.Context, id string) error {
	h.mu.Lock()
	r, ok := h.rooms[id]
	delete(h.rooms, id)
	h.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	r.Close()
	slog.InfoContext(ctx, "Room closed", "room.id", id)
	return nil
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Shutdown closes every session.
func (h *Hub) Shutdown(ctx context.Context) {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]*room.Room)
	h.mu.Unlock()

	for id, r := range rooms {
		r.Close()
		slog.InfoContext(ctx, "Room closed on shutdown", "room.id", id)
	}
}
