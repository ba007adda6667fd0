package service

import (
	"context"

	"ctchen222/tictactoe-session/internal/api/models"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/hub"
	"ctchen222/tictactoe-session/internal/room"
)

// SessionService defines the session operations exposed over HTTP.
type SessionService interface {
	Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
	Get(ctx context.Context, id string) (*models.SessionResponse, error)
	Move(ctx context.Context, id string, index int) (*models.SessionResponse, error)
	NewRound(ctx context.Context, id string) (*models.SessionResponse, error)
	ResetScores(ctx context.Context, id string) (*models.SessionResponse, error)
	SetMode(ctx context.Context, id string, mode game.Mode) (*models.SessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	hub *hub.Hub
}

// NewSessionService creates a new SessionService backed by the hub.
func NewSessionService(h *hub.Hub) SessionService {
	return &sessionService{hub: h}
}

func (s *sessionService) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	r, err := s.hub.CreateRoom(ctx, game.Mode(req.Mode), req.Difficulty)
	if err != nil {
		return nil, err
	}
	state, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return newSessionResponse(r, state), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.dispatch(ctx, id, nil)
}

func (s *sessionService) Move(ctx context.Context, id string, index int) (*models.SessionResponse, error) {
	return s.dispatch(ctx, id, room.SelectCell{Index: index})
}

func (s *sessionService) NewRound(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.dispatch(ctx, id, room.NewRound{})
}

func (s *sessionService) ResetScores(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.dispatch(ctx, id, room.ResetScores{})
}

func (s *sessionService) SetMode(ctx context.Context, id string, mode game.Mode) (*models.SessionResponse, error) {
	return s.dispatch(ctx, id, room.SetMode{Mode: mode})
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.hub.CloseRoom(ctx, id)
}

// dispatch applies ev to the session and returns the resulting view. A nil
// event only reads the state.
func (s *sessionService) dispatch(ctx context.Context, id string, ev room.Event) (*models.SessionResponse, error) {
	r, err := s.hub.Room(id)
	if err != nil {
		return nil, err
	}

	var state game.State
	if ev == nil {
		state, err = r.Snapshot(ctx)
	} else {
		state, err = r.Dispatch(ctx, ev)
	}
	if err != nil {
		return nil, err
	}
	return newSessionResponse(r, state), nil
}

func newSessionResponse(r *room.Room, state game.State) *models.SessionResponse {
	return &models.SessionResponse{
		SessionID:  r.ID,
		Difficulty: r.Difficulty(),
		State:      state,
	}
}
