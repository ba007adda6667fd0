package hub

import (
	"context"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-session/internal/bot"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/room"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CreateRoom starts a new session. Empty mode and difficulty fall back to
// PvP and the configured default difficulty.
func (h *Hub) CreateRoom(ctx context.Context, mode game.Mode, difficulty string) (*room.Room, error) {
	ctx, span := tracer.Start(ctx, "hub.CreateRoom", trace.WithAttributes(
		attribute.String("game.mode", string(mode)),
		attribute.String("bot.difficulty", difficulty),
	))
	defer span.End()

	if mode == "" {
		mode = game.ModePlayerVsPlayer
	}
	if !mode.Valid() {
		span.SetStatus(codes.Error, "Invalid mode")
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if difficulty == "" {
		difficulty = h.opts.DefaultDifficulty
	}
	if difficulty == "" {
		difficulty = bot.DifficultyHard
	}
	if !bot.ValidDifficulty(difficulty) {
		span.SetStatus(codes.Error, "Invalid difficulty")
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}

	roomID := uuid.New().String()
	span.SetAttributes(attribute.String("room.id", roomID))

	r, err := room.NewRoom(roomID, room.Config{
		Mode:         mode,
		Difficulty:   difficulty,
		TurnSeconds:  h.opts.TurnSeconds,
		TickInterval: h.opts.TickInterval,
		AIDelay:      h.opts.AIDelay,
		Clock:        h.clock,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create room")
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	h.mu.Lock()
	h.rooms[roomID] = r
	h.mu.Unlock()

	r.Start()
	slog.InfoContext(ctx, "Room created", "room.id", roomID, "mode", mode, "bot.difficulty", difficulty)
	return r, nil
}
