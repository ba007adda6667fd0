package hub

import (
	"context"
	"log/slog"
)

// Run closes idle sessions until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := h.clock.Ticker(h.opts.ReapInterval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Session reaper started", "idle_timeout", h.opts.IdleTimeout)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.reapIdle(ctx)
		}
	}
}

// reapIdle closes rooms nobody is watching that have seen no event for
// longer than the idle timeout.
func (h *Hub) reapIdle(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "hub.reapIdle")
	defer span.End()

	now := h.clock.Now()
	var idle []string

	h.mu.RLock()
	for id, r := range h.rooms {
		if r.ViewerCount() == 0 && now.Sub(r.LastActive()) > h.opts.IdleTimeout {
			idle = append(idle, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range idle {
		if err := h.CloseRoom(ctx, id); err == nil {
			slog.InfoContext(ctx, "Idle session reaped", "room.id", id)
		}
	}
}
