package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/validator"
	"ctchen222/tictactoe-session/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidMessage wraps every decoding or validation failure of a client message.
var ErrInvalidMessage = errors.New("invalid message")

// HandleMessage decodes a client message and dispatches the matching event.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) error {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	ev, err := DecodeMessage(rawMessage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message")
		return err
	}
	span.SetAttributes(attribute.String("event.type", ev.eventName()))

	if _, err := r.Dispatch(ctx, ev); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Dispatch failed")
		return err
	}
	return nil
}

// DecodeMessage turns a raw client message into an event.
func DecodeMessage(rawMessage []byte) (Event, error) {
	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if err := validator.GetValidator().Struct(message); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	switch message.Type {
	case proto.TypeMove:
		if message.Index == nil {
			return nil, fmt.Errorf("%w: move requires an index", ErrInvalidMessage)
		}
		return SelectCell{Index: *message.Index}, nil
	case proto.TypeNewRound:
		return NewRound{}, nil
	case proto.TypeResetScores:
		return ResetScores{}, nil
	case proto.TypeSetMode:
		if message.Mode == "" {
			return nil, fmt.Errorf("%w: set_mode requires a mode", ErrInvalidMessage)
		}
		return SetMode{Mode: game.Mode(message.Mode)}, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, message.Type)
}
