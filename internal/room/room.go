package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"ctchen222/tictactoe-session/internal/bot"
	"ctchen222/tictactoe-session/internal/events"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/player"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultTickInterval = time.Second
	defaultAIDelay      = time.Second
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")
)

// ErrClosed is returned when an event is sent to a room that has shut down.
var ErrClosed = errors.New("room closed")

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty string) int
}

// Config holds the per-session settings. Zero values fall back to defaults.
type Config struct {
	Mode           game.Mode
	Difficulty     string
	TurnSeconds    int
	TickInterval   time.Duration
	AIDelay        time.Duration
	Clock          clock.Clock
	Rand           game.Rand
	MoveCalculator MoveCalculator
}

type request struct {
	ctx   context.Context
	ev    Event
	reply chan game.State
}

// Room is one game session. All state is owned by the run goroutine; every
// transition happens there, one event at a time.
type Room struct {
	ID string

	clock          clock.Clock
	rng            game.Rand
	moveCalculator MoveCalculator
	difficulty     string
	turnSeconds    int
	tickInterval   time.Duration
	aiDelay        time.Duration

	// Owned by the run goroutine.
	state   game.State
	ticker  *clock.Ticker
	aiTimer *clock.Timer
	viewers []player.Connection
	pending []events.RoundEndedPayload

	movesCounter  metric.Int64Counter
	roundsCounter metric.Int64Counter

	viewerCount atomic.Int32
	lastActive  atomic.Int64

	requests  chan request
	done      chan struct{}
	stopped   chan struct{}
	started   atomic.Bool
	closeOnce sync.Once
}

// NewRoom creates a new game session. The countdown for X starts once the
// room is started.
func NewRoom(id string, cfg Config) (*Room, error) {
	if cfg.Mode == "" {
		cfg.Mode = game.ModePlayerVsPlayer
	}
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("invalid mode %q", cfg.Mode)
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = bot.DifficultyHard
	}
	if cfg.TurnSeconds <= 0 {
		cfg.TurnSeconds = game.DefaultTurnSeconds
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.AIDelay <= 0 {
		cfg.AIDelay = defaultAIDelay
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.MoveCalculator == nil {
		cfg.MoveCalculator = bot.NewBotMoveCalculator(cfg.Rand)
	}

	movesCounter, err := meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Marks placed, by who decided the cell"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves counter: %w", err)
	}
	roundsCounter, err := meter.Int64Counter("tictactoe.rounds.completed",
		metric.WithDescription("Rounds that ended in a win or a draw"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rounds counter: %w", err)
	}

	r := &Room{
		ID:             id,
		clock:          cfg.Clock,
		rng:            cfg.Rand,
		moveCalculator: cfg.MoveCalculator,
		difficulty:     cfg.Difficulty,
		turnSeconds:    cfg.TurnSeconds,
		tickInterval:   cfg.TickInterval,
		aiDelay:        cfg.AIDelay,
		state:          game.NewState(cfg.Mode, cfg.TurnSeconds),
		movesCounter:   movesCounter,
		roundsCounter:  roundsCounter,
		requests:       make(chan request),
		done:           make(chan struct{}),
		stopped:        make(chan struct{}),
	}
	r.touch()
	r.beginTurn()
	return r, nil
}

// Difficulty is the AI difficulty fixed at creation.
func (r *Room) Difficulty() string {
	return r.difficulty
}

// Start launches the room's event loop.
func (r *Room) Start() {
	if r.started.CompareAndSwap(false, true) {
		go r.run()
	}
}

// Close stops the event loop, cancels pending tasks and disconnects viewers.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	if r.started.Load() {
		<-r.stopped
	}
}

// Dispatch hands ev to the event loop and returns the state after it was applied.
func (r *Room) Dispatch(ctx context.Context, ev Event) (game.State, error) {
	req := request{ctx: ctx, ev: ev, reply: make(chan game.State, 1)}

	select {
	case r.requests <- req:
	case <-r.done:
		return game.State{}, ErrClosed
	case <-ctx.Done():
		return game.State{}, ctx.Err()
	}

	select {
	case s := <-req.reply:
		return s, nil
	case <-r.stopped:
		return game.State{}, ErrClosed
	case <-ctx.Done():
		return game.State{}, ctx.Err()
	}
}

// Snapshot returns the current state.
func (r *Room) Snapshot(ctx context.Context) (game.State, error) {
	return r.Dispatch(ctx, snapshotEvent{})
}

// run is the main event loop for the room.
func (r *Room) run() {
	defer close(r.stopped)
	defer r.shutdown()

	for {
		select {
		case <-r.done:
			slog.Info("Room run goroutine stopping.", "room.id", r.ID)
			return

		case req := <-r.requests:
			r.touch()
			r.handle(req.ctx, req.ev)
			req.reply <- r.state

		case <-r.tickC():
			r.handle(context.Background(), tickEvent{})

		case <-r.aiC():
			r.aiTimer = nil
			r.handle(context.Background(), aiMoveEvent{})
		}
	}
}

func (r *Room) tickC() <-chan time.Time {
	if r.ticker == nil {
		return nil
	}
	return r.ticker.C
}

func (r *Room) aiC() <-chan time.Time {
	if r.aiTimer == nil {
		return nil
	}
	return r.aiTimer.C
}

func (r *Room) shutdown() {
	r.stopTasks()
	for _, conn := range r.viewers {
		if err := conn.Close(); err != nil {
			slog.Warn("Failed to close viewer connection", "room.id", r.ID, "error", err)
		}
	}
	r.viewers = nil
	r.viewerCount.Store(0)
}

func (r *Room) touch() {
	r.lastActive.Store(r.clock.Now().UnixNano())
}
