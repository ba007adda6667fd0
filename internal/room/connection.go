package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"

	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/player"
	"ctchen222/tictactoe-session/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Broadcast sends a message to every viewer attached to the room.
// It must only be called from the run goroutine.
func (r *Room) Broadcast(ctx context.Context, message *proto.ServerToClientMessage) {
	_, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("message.type", message.Type),
	))
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}

	for _, conn := range r.viewers {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.WarnContext(ctx, "error writing message to viewer", "room.id", r.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Error writing message to viewer")
		}
	}
}

func (r *Room) sendTo(ctx context.Context, conn player.Connection, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.WarnContext(ctx, "error writing message to viewer", "room.id", r.ID, "error", err)
	}
}

// addViewer registers conn and sends it the session assignment and the
// current state.
func (r *Room) addViewer(ctx context.Context, conn player.Connection) {
	if slices.Contains(r.viewers, conn) {
		return
	}
	r.viewers = append(r.viewers, conn)
	r.viewerCount.Store(int32(len(r.viewers)))

	assignment := proto.SessionAssignmentMessage{
		Type:       proto.TypeAssignment,
		SessionID:  r.ID,
		Difficulty: r.difficulty,
	}
	if r.state.Round.Mode == game.ModePlayerVsAI {
		assignment.HumanMark = game.HumanMark
	}
	r.sendTo(ctx, conn, assignment)

	snapshot := r.state
	r.sendTo(ctx, conn, &proto.ServerToClientMessage{Type: proto.TypeState, State: &snapshot})
	slog.InfoContext(ctx, "Viewer attached", "room.id", r.ID, "viewers", len(r.viewers))
}

func (r *Room) removeViewer(ctx context.Context, conn player.Connection) {
	r.viewers = slices.DeleteFunc(r.viewers, func(c player.Connection) bool { return c == conn })
	r.viewerCount.Store(int32(len(r.viewers)))
	slog.InfoContext(ctx, "Viewer detached", "room.id", r.ID, "viewers", len(r.viewers))
}

// ReadPump pumps messages from a viewer's websocket connection into the
// room's event loop until the connection fails.
func (r *Room) ReadPump(conn player.Connection) {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	defer func() {
		conn.Close()
		if _, err := r.Dispatch(context.Background(), detachViewer{conn: conn}); err != nil && !errors.Is(err, ErrClosed) {
			slog.ErrorContext(ctx, "Failed to detach viewer", "room.id", r.ID, "error", err)
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			slog.InfoContext(ctx, "Viewer connection closed", "room.id", r.ID, "error", err)
			return
		}

		err = r.HandleMessage(ctx, msg)
		switch {
		case err == nil:
		case errors.Is(err, ErrClosed):
			return
		default:
			slog.WarnContext(ctx, "invalid message from viewer", "room.id", r.ID, "error", err)
			span.RecordError(err)
			if _, err := r.Dispatch(ctx, notifyError{conn: conn, reason: err.Error()}); err != nil {
				return
			}
		}
	}
}
