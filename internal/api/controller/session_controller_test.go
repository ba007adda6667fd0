package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctchen222/tictactoe-session/internal/api/models"
	"ctchen222/tictactoe-session/internal/api/service"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/hub"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterBindings(); err != nil {
		panic(err)
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := hub.NewHub(hub.Options{Clock: clock.NewMock(), IdleTimeout: time.Hour})
	t.Cleanup(func() { h.Shutdown(t.Context()) })

	router := gin.New()
	NewSessionController(service.NewSessionService(h)).RegisterRoutes(router.Group("/api"))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func createSession(t *testing.T, router *gin.Engine, body any) models.SessionResponse {
	t.Helper()
	w, env := do(t, router, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(env.Extras, &session))
	return session
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(t)

	session := createSession(t, router, nil)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, game.ModePlayerVsPlayer, session.State.Round.Mode)
	assert.Equal(t, game.PlayerX, session.State.Round.CurrentTurn)
	assert.True(t, session.State.Timer.Active)

	session = createSession(t, router, gin.H{"mode": "pvai", "difficulty": "easy"})
	assert.Equal(t, game.ModePlayerVsAI, session.State.Round.Mode)
	assert.Equal(t, "easy", session.Difficulty)
}

func TestCreateSession_Invalid(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown mode", gin.H{"mode": "online"}},
		{"unknown difficulty", gin.H{"mode": "pvai", "difficulty": "impossible"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, router, http.MethodPost, "/api/sessions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestMove(t *testing.T) {
	router := newTestRouter(t)
	session := createSession(t, router, nil)
	path := "/api/sessions/" + session.SessionID

	w, env := do(t, router, http.MethodPost, path+"/moves", gin.H{"index": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.SessionResponse
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.PlayerX, got.State.Round.Board[0])
	assert.Equal(t, game.PlayerO, got.State.Round.CurrentTurn)

	// Occupied cell: silently rejected.
	w, env = do(t, router, http.MethodPost, path+"/moves", gin.H{"index": 0})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.PlayerO, got.State.Round.CurrentTurn)

	for _, body := range []any{gin.H{"index": 9}, gin.H{"index": -1}, gin.H{}} {
		w, _ = do(t, router, http.MethodPost, path+"/moves", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestRoundsScoresAndMode(t *testing.T) {
	router := newTestRouter(t)
	session := createSession(t, router, nil)
	path := "/api/sessions/" + session.SessionID

	for _, idx := range []int{0, 4, 1, 8, 2} {
		w, _ := do(t, router, http.MethodPost, path+"/moves", gin.H{"index": idx})
		require.Equal(t, http.StatusOK, w.Code)
	}

	var got models.SessionResponse
	_, env := do(t, router, http.MethodGet, path, nil)
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.StatusWon, got.State.Round.Status)
	assert.Equal(t, 1, got.State.Score.XWins)

	_, env = do(t, router, http.MethodPost, path+"/rounds", nil)
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.StatusPlaying, got.State.Round.Status)
	assert.Equal(t, 1, got.State.Score.XWins)

	_, env = do(t, router, http.MethodPut, path+"/mode", gin.H{"mode": "pvai"})
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.ModePlayerVsAI, got.State.Round.Mode)

	_, env = do(t, router, http.MethodPost, path+"/scores/reset", nil)
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, game.Scoreboard{}, got.State.Score)
	assert.Equal(t, game.ModePlayerVsAI, got.State.Round.Mode)

	w, _ := do(t, router, http.MethodPut, path+"/mode", gin.H{"mode": "solo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSession(t *testing.T) {
	router := newTestRouter(t)
	session := createSession(t, router, nil)
	path := "/api/sessions/" + session.SessionID

	w, env := do(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = do(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.Code)

	w, _ = do(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
