package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler_FansOut(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("room.id", "r1")

	log.Debug("move applied")
	log.Warn("viewer dropped")

	assert.Contains(t, debugBuf.String(), "move applied")
	assert.Contains(t, debugBuf.String(), "room.id=r1")
	assert.Contains(t, debugBuf.String(), "viewer dropped")
	assert.NotContains(t, warnBuf.String(), "move applied")
	assert.Contains(t, warnBuf.String(), "viewer dropped")
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{Handler: slog.NewTextHandler(&buf, nil), err: boom},
		slog.NewTextHandler(&buf, nil),
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "hello", 0))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "hello", "later handlers still run")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
