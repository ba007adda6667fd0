package room

import (
	"context"
	"log/slog"

	"ctchen222/tictactoe-session/internal/events"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Who decided the cell of a move.
const (
	sourceHuman   = "human"
	sourceAI      = "ai"
	sourceTimeout = "timeout"
)

// handle applies one event. The resulting state and any round-ended
// notification are broadcast together before the next event is read.
func (r *Room) handle(ctx context.Context, ev Event) {
	ctx, span := tracer.Start(ctx, "room.handle", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("event.type", ev.eventName()),
	))
	defer span.End()

	var changed bool
	switch e := ev.(type) {
	case SelectCell:
		changed = r.selectCell(ctx, e.Index)
	case NewRound:
		changed = r.startRound(ctx, false)
	case ResetScores:
		changed = r.startRound(ctx, true)
	case SetMode:
		changed = r.setMode(ctx, e.Mode)
	case tickEvent:
		changed = r.tick(ctx)
	case aiMoveEvent:
		changed = r.playAI(ctx)
	case attachViewer:
		r.addViewer(ctx, e.conn)
	case detachViewer:
		r.removeViewer(ctx, e.conn)
	case notifyError:
		r.sendTo(ctx, e.conn, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: e.reason})
	case snapshotEvent:
	}
	span.SetAttributes(attribute.Bool("state.changed", changed))

	if !changed {
		return
	}
	snapshot := r.state
	r.Broadcast(ctx, &proto.ServerToClientMessage{Type: proto.TypeState, State: &snapshot})
	for i := range r.pending {
		r.Broadcast(ctx, &proto.ServerToClientMessage{Type: proto.TypeRoundEnded, Notification: &r.pending[i]})
	}
	r.pending = r.pending[:0]
}

// selectCell attributes a click to the mark allowed to move now.
func (r *Room) selectCell(ctx context.Context, index int) bool {
	round := r.state.Round
	if round.Status != game.StatusPlaying {
		slog.DebugContext(ctx, "ignoring move on finished round", "room.id", r.ID, "move.index", index)
		return false
	}
	if round.Mode == game.ModePlayerVsAI && round.CurrentTurn != game.HumanMark {
		slog.DebugContext(ctx, "ignoring move during the AI's turn", "room.id", r.ID, "move.index", index)
		return false
	}
	return r.play(ctx, index, round.CurrentTurn, sourceHuman)
}

// play applies a move and sets up whatever comes next: the result, or the
// next turn's countdown and AI task.
func (r *Room) play(ctx context.Context, index int, mark game.PlayerMark, source string) bool {
	next := game.ApplyMove(r.state, index, mark)
	if next.Round.Board == r.state.Round.Board {
		slog.DebugContext(ctx, "move rejected", "room.id", r.ID, "move.index", index, "move.mark", mark)
		return false
	}
	r.state = next
	r.movesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("move.source", source)))
	slog.DebugContext(ctx, "move applied", "room.id", r.ID, "move.index", index, "move.mark", mark, "move.source", source)

	payload, ended := events.NewRoundEnded(next.Round)
	if !ended {
		r.beginTurn()
		return true
	}

	r.stopTasks()
	r.state.Timer = game.NewTimer(r.state.Round, r.turnSeconds)
	r.pending = append(r.pending, payload)
	r.roundsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("round.outcome", string(next.Round.Status))))
	slog.InfoContext(ctx, "Round finished", "room.id", r.ID, "round.status", next.Round.Status, "round.winner", next.Round.Winner,
		"score.x", next.Score.XWins, "score.o", next.Score.OWins, "score.draws", next.Score.Draws)
	return true
}

// beginTurn replaces any pending tasks with the ones the current turn needs.
func (r *Room) beginTurn() {
	r.stopTasks()
	r.state.Timer = game.NewTimer(r.state.Round, r.turnSeconds)
	if r.state.Timer.Active {
		r.ticker = r.clock.Ticker(r.tickInterval)
	}
	if r.aiToMove() {
		r.aiTimer = r.clock.Timer(r.aiDelay)
	}
}

// stopTasks cancels the countdown and any scheduled AI move. Dropping the
// references means a fire that already happened is never read.
func (r *Room) stopTasks() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	if r.aiTimer != nil {
		r.aiTimer.Stop()
		r.aiTimer = nil
	}
}

func (r *Room) aiToMove() bool {
	round := r.state.Round
	return round.Status == game.StatusPlaying && round.Mode == game.ModePlayerVsAI && round.CurrentTurn == game.AIMark
}

// tick counts the current turn down and forces a random move on expiry.
func (r *Room) tick(ctx context.Context) bool {
	next, expired := game.Tick(r.state)
	changed := next.Timer != r.state.Timer
	r.state = next
	if !expired {
		return changed
	}

	mover := game.TimeoutMover(r.state.Round)
	index := game.RandomEmptyCell(r.state.Round.Board, r.rng)
	slog.InfoContext(ctx, "Player timed out", "room.id", r.ID, "turn", r.state.Round.CurrentTurn, "move.mark", mover, "move.index", index)

	if !r.play(ctx, index, mover, sourceTimeout) {
		r.beginTurn()
	}
	return true
}

func (r *Room) playAI(ctx context.Context) bool {
	if !r.aiToMove() {
		return false
	}
	index := r.moveCalculator.CalculateNextMove(r.state.Round.Board, game.AIMark, r.difficulty)
	return r.play(ctx, index, game.AIMark, sourceAI)
}

// startRound begins a fresh round, optionally zeroing the scoreboard.
func (r *Room) startRound(ctx context.Context, resetScores bool) bool {
	if resetScores {
		r.state = game.ResetScores(r.state, r.turnSeconds)
	} else {
		r.state = game.StartRound(r.state, r.turnSeconds)
	}
	r.beginTurn()
	slog.InfoContext(ctx, "New round", "room.id", r.ID, "mode", r.state.Round.Mode, "scores.reset", resetScores)
	return true
}

func (r *Room) setMode(ctx context.Context, mode game.Mode) bool {
	next, ok := game.ChangeMode(r.state, mode, r.turnSeconds)
	if !ok {
		slog.DebugContext(ctx, "mode change rejected", "room.id", r.ID, "mode", mode)
		return false
	}
	r.state = next
	r.beginTurn()
	slog.InfoContext(ctx, "Mode changed", "room.id", r.ID, "mode", mode)
	return true
}
